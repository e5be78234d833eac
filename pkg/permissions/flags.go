package permissions

import (
	"strings"

	"github.com/cperrin88/fsops/pkg/errors"
)

// Triple holds the read, write and execute bits of one permission class.
type Triple struct {
	Read    bool `yaml:"read" json:"read"`
	Write   bool `yaml:"write" json:"write"`
	Execute bool `yaml:"execute" json:"execute"`
}

// Flags is the structured form of the low nine mode bits. It is only available
// on hosts with POSIX permissions.
type Flags struct {
	Owner  Triple `yaml:"owner" json:"owner"`
	Group  Triple `yaml:"group" json:"group"`
	Others Triple `yaml:"others" json:"others"`
}

// FlagsFromMode unpacks the rwx bits of mode. Bits outside PermMask are dropped.
func FlagsFromMode(mode Mode) (Flags, error) {
	if !posix {
		return Flags{}, errors.Wrap(errors.ErrUnsupportedPlatform, "permission flags")
	}
	return Flags{
		Owner:  tripleFrom(mode >> 6),
		Group:  tripleFrom(mode >> 3),
		Others: tripleFrom(mode),
	}, nil
}

// Mode packs f back into a numeric mode.
func (f Flags) Mode() (Mode, error) {
	if !posix {
		return 0, errors.Wrap(errors.ErrUnsupportedPlatform, "permission flags")
	}
	return f.Owner.bits()<<6 | f.Group.bits()<<3 | f.Others.bits(), nil
}

// String renders f in ls style, e.g. "rwxr-xr-x".
func (f Flags) String() string {
	var b strings.Builder
	for _, t := range []Triple{f.Owner, f.Group, f.Others} {
		b.WriteString(t.String())
	}
	return b.String()
}

// String renders t as three characters, e.g. "r-x".
func (t Triple) String() string {
	out := []byte("---")
	if t.Read {
		out[0] = 'r'
	}
	if t.Write {
		out[1] = 'w'
	}
	if t.Execute {
		out[2] = 'x'
	}
	return string(out)
}

func (t Triple) bits() Mode {
	var m Mode
	if t.Read {
		m |= OthersRead
	}
	if t.Write {
		m |= OthersWrite
	}
	if t.Execute {
		m |= OthersExecute
	}
	return m
}

func tripleFrom(m Mode) Triple {
	return Triple{
		Read:    m&OthersRead != 0,
		Write:   m&OthersWrite != 0,
		Execute: m&OthersExecute != 0,
	}
}

// SetFlags applies f to path, leaving setuid, setgid and sticky untouched.
func SetFlags(path string, f Flags) error {
	mode, err := f.Mode()
	if err != nil {
		return err
	}
	current, err := Get(path)
	if err != nil {
		return err
	}
	return Set(path, current&^PermMask|mode)
}

// GetFlags reads the permissions of path in structured form.
func GetFlags(path string) (Flags, error) {
	if !posix {
		return Flags{}, errors.Wrap(errors.ErrUnsupportedPlatform, "permission flags")
	}
	mode, err := Get(path)
	if err != nil {
		return Flags{}, err
	}
	return FlagsFromMode(mode)
}
