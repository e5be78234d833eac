//go:build !unix && !windows

package permissions

import "os"

const posix = false

func set(path string, mode Mode) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	if mode&OwnerWrite != 0 {
		return os.Chmod(path, ModeWritable.FileMode())
	}
	return os.Chmod(path, ModeReadOnly.FileMode())
}

func get(path string) (Mode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if info.Mode().Perm()&OwnerWrite.FileMode() != 0 {
		return ModeWritable, nil
	}
	return ModeReadOnly, nil
}
