//go:build windows

package permissions

import (
	"os"

	"golang.org/x/sys/windows"
)

const posix = false

// set only honors OwnerWrite: present clears the read-only attribute, absent sets it.
func set(path string, mode Mode) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return &os.PathError{Op: "chmod", Path: path, Err: err}
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return &os.PathError{Op: "chmod", Path: path, Err: err}
	}
	if mode&OwnerWrite != 0 {
		attrs &^= windows.FILE_ATTRIBUTE_READONLY
	} else {
		attrs |= windows.FILE_ATTRIBUTE_READONLY
	}
	if err := windows.SetFileAttributes(p, attrs); err != nil {
		return &os.PathError{Op: "chmod", Path: path, Err: err}
	}
	return nil
}

func get(path string) (Mode, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return 0, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	if attrs&windows.FILE_ATTRIBUTE_READONLY != 0 {
		return ModeReadOnly, nil
	}
	return ModeWritable, nil
}
