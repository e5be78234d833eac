package fsutil

import (
	"os"
	"path/filepath"

	"github.com/cperrin88/fsops/pkg/errors"
	"github.com/cperrin88/fsops/pkg/permissions"
)

// EnsureDir creates a directory and all necessary parent directories with default permissions if they don't exist.
// Returns an error if the directory cannot be created or if the path exists but is not a directory.
func EnsureDir(path string) error {
	return os.MkdirAll(path, permissions.DirModeDefault.FileMode())
}

// EnsureFileDir creates the parent directory of a file path if it doesn't exist.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

// CreateFolder creates path and any missing ancestors. It succeeds without
// touching anything when the folder already exists.
func (e *Engine) CreateFolder(path string) error {
	if err := EnsureDir(path); err != nil {
		return errors.Classify(err)
	}
	e.log.Debug().Str("path", path).Msg("folder created")
	return nil
}

// Delete removes path. Directories are removed recursively together with every
// descendant, including special files; anything else is removed on its own.
// Symbolic links are removed, never followed.
func (e *Engine) Delete(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return errors.Classify(err)
	}

	if info.IsDir() {
		err = removeAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return errors.Classify(err)
	}

	e.log.Debug().Str("path", path).Bool("dir", info.IsDir()).Msg("deleted")
	return nil
}
