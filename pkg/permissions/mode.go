// Package permissions translates a single numeric permission mode onto the host's
// permission primitives.
//
// On unix hosts the mode maps bit-for-bit onto the file's permission bits,
// including setuid, setgid and sticky. Elsewhere only the owner-write bit (0o200)
// is meaningful: it selects between a read-only and a writable file, and reading
// permissions back can only report ModeReadOnly or ModeWritable.
package permissions

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cperrin88/fsops/pkg/errors"
)

// Mode is a POSIX-style permission mode such as 0o755.
type Mode uint32

// Permission bits.
const (
	OwnerRead    Mode = 0o400
	OwnerWrite   Mode = 0o200
	OwnerExecute Mode = 0o100

	GroupRead    Mode = 0o040
	GroupWrite   Mode = 0o020
	GroupExecute Mode = 0o010

	OthersRead    Mode = 0o004
	OthersWrite   Mode = 0o002
	OthersExecute Mode = 0o001

	SetUID Mode = 0o4000
	SetGID Mode = 0o2000
	Sticky Mode = 0o1000
)

// Masks and well-known modes.
const (
	PermMask Mode = 0o777  // rwx bits for owner, group and others
	ModeMask Mode = 0o7777 // PermMask plus setuid, setgid and sticky

	ModeReadOnly Mode = 0o444 // what a read-only file reports on non-POSIX hosts
	ModeWritable Mode = 0o666 // what a writable file reports on non-POSIX hosts

	FileModeDefault Mode = 0o644 // -rw-r--r--
	DirModeDefault  Mode = 0o755 // drwxr-xr-x
)

// FileMode converts m to an os.FileMode carrying only the permission bits.
func (m Mode) FileMode() os.FileMode {
	return os.FileMode(m & PermMask)
}

// String renders the mode as a zero-prefixed octal number, e.g. "0644".
func (m Mode) String() string {
	return fmt.Sprintf("0%o", uint32(m))
}

// ParseMode parses an octal mode such as "755", "0755" or "0o755".
func ParseMode(s string) (Mode, error) {
	if len(s) > 2 && (s[:2] == "0o" || s[:2] == "0O") {
		s = s[2:]
	}
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidMode, "%q", s)
	}
	if Mode(v)&^ModeMask != 0 {
		return 0, errors.Wrapf(errors.ErrInvalidMode, "%q exceeds %s", s, ModeMask)
	}
	return Mode(v), nil
}

// Set changes the permissions of path. It never creates path; a missing path
// yields errors.ErrNotFound.
func Set(path string, mode Mode) error {
	return errors.Classify(set(path, mode))
}

// Get reads the permissions of path, masked to the bits meaningful on this host.
func Get(path string) (Mode, error) {
	mode, err := get(path)
	if err != nil {
		return 0, errors.Classify(err)
	}
	return mode, nil
}

// POSIX reports whether the host supports the full POSIX permission model.
func POSIX() bool {
	return posix
}

// Model names the permission model in force on this host.
func Model() string {
	if posix {
		return "posix"
	}
	return "read-only attribute"
}
