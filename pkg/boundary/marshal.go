package boundary

import (
	"unicode/utf8"
	"unsafe"

	"github.com/cperrin88/fsops/pkg/errors"
)

// Path is a validated, owned UTF-8 path. It is passed to the host filesystem
// unchanged: no cleaning, no resolution against the working directory.
type Path string

// String returns the path text.
func (p Path) String() string {
	return string(p)
}

// PathFromHandle copies the NUL-terminated string at handle into an owned Path.
//
// The handle is only borrowed for the duration of the call; the caller keeps
// ownership of the memory behind it. A nil handle yields errors.ErrNullPointer
// and bytes that are not valid UTF-8 yield errors.ErrInvalidEncoding. The path
// is not checked for existence or accessibility.
//
// A non-nil handle must point to readable memory terminated by a NUL byte.
func PathFromHandle(handle unsafe.Pointer) (Path, error) {
	if handle == nil {
		return "", errors.ErrNullPointer
	}
	b := borrowBytes(handle)
	if !utf8.Valid(b) {
		return "", errors.ErrInvalidEncoding
	}
	return Path(string(b)), nil
}

// borrowBytes views the bytes before the terminating NUL without copying them.
func borrowBytes(handle unsafe.Pointer) []byte {
	n := 0
	for *(*byte)(unsafe.Add(handle, n)) != 0 {
		n++
	}
	return unsafe.Slice((*byte)(handle), n)
}
