//go:build unix

package permissions

import (
	"os"

	"golang.org/x/sys/unix"
)

const posix = true

func set(path string, mode Mode) error {
	if err := unix.Chmod(path, uint32(mode&ModeMask)); err != nil {
		return &os.PathError{Op: "chmod", Path: path, Err: err}
	}
	return nil
}

func get(path string) (Mode, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return Mode(st.Mode) & ModeMask, nil
}
