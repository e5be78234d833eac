package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cperrin88/fsops/pkg/errors"
)

// Host calls swapped out by tests to simulate cross-volume moves and failed
// cleanups.
var (
	rename    = os.Rename
	removeAll = os.RemoveAll
)

// CreateFile creates an empty file at path, truncating it if it already exists.
func (e *Engine) CreateFile(path string) error {
	f, err := CreateFilePerm(path, 0o666)
	if err != nil {
		return errors.Classify(err)
	}
	if err := f.Close(); err != nil {
		return errors.Classify(err)
	}
	e.log.Debug().Str("path", path).Msg("file created")
	return nil
}

// CreateFilePerm creates or truncates a file with the specified permissions (before umask).
func CreateFilePerm(name string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
}

// Rename renames oldPath to newPath with the host's rename semantics. Renaming
// across storage volumes fails with errors.ErrCrossVolume.
func (e *Engine) Rename(oldPath, newPath string) error {
	if err := rename(oldPath, newPath); err != nil {
		return errors.Classify(err)
	}
	e.log.Debug().Str("from", oldPath).Str("to", newPath).Msg("renamed")
	return nil
}

// Move relocates src to dst. It is a rename; when Options.CrossVolumeFallback
// is set and the host reports a cross-volume rename, src is copied to dst and
// then deleted.
func (e *Engine) Move(src, dst string) error {
	err := rename(src, dst)
	if err == nil {
		e.log.Debug().Str("from", src).Str("to", dst).Msg("moved")
		return nil
	}
	if !e.opts.CrossVolumeFallback || !errors.IsCrossVolume(err) {
		return errors.Classify(err)
	}

	e.log.Debug().Str("from", src).Str("to", dst).Msg("cross-volume move, falling back to copy and delete")
	if err := e.Copy(src, dst); err != nil {
		return errors.Wrap(err, "cross-volume move")
	}
	if err := e.Delete(src); err != nil {
		return errors.Wrapf(err, "cross-volume move: copied to %s but failed to remove source", dst)
	}
	return nil
}

// Copy duplicates src at dst. A regular file is copied byte for byte together
// with its permission bits. A directory is mirrored recursively: child
// directories are recursed into, regular files are copied and everything else
// (symbolic links, devices, sockets, pipes) is skipped. The first failure aborts
// the copy; children copied so far are left in place.
func (e *Engine) Copy(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Classify(err)
	}

	switch {
	case info.IsDir():
		if err := checkNotNested(src, dst); err != nil {
			return errors.Classify(err)
		}
		err = e.copyTree(src, dst)
	case info.Mode().IsRegular():
		err = copyFile(src, dst, info.Mode())
	default:
		err = fmt.Errorf("%w: %s is not a regular file or directory", errors.ErrIO, src)
	}
	if err != nil {
		return errors.Classify(err)
	}

	e.log.Debug().Str("from", src).Str("to", dst).Bool("dir", info.IsDir()).Msg("copied")
	return nil
}

// copyTree walks src in the order the host returns entries; callers must not
// depend on that order.
func (e *Engine) copyTree(src, dst string) error {
	if err := EnsureDir(dst); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := e.copyTree(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			info, err := entry.Info()
			if err != nil {
				return err
			}
			if err := copyFile(srcPath, dstPath, info.Mode()); err != nil {
				return err
			}
		default:
			e.log.Debug().Str("path", srcPath).Str("type", entry.Type().String()).Msg("skipping non-regular entry")
		}
	}
	return nil
}

// copyFile copies the contents of srcFile to dstFile and applies the permission
// bits of mode to the result. Copying a file onto itself, directly or through a
// link, is refused since truncating the destination would empty the source.
func copyFile(srcFile, dstFile string, mode os.FileMode) error {
	src, err := os.Open(srcFile)
	if err != nil {
		return err
	}
	defer src.Close()

	srcInfo, err := src.Stat()
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(dstFile); err == nil && os.SameFile(srcInfo, dstInfo) {
		return fmt.Errorf("%w: %s and %s are the same file", errors.ErrIO, srcFile, dstFile)
	}

	dst, err := CreateFilePerm(dstFile, mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}

	// An existing destination keeps its old mode through O_TRUNC, and a new one
	// is subject to umask.
	return os.Chmod(dstFile, mode.Perm())
}

// checkNotNested refuses to copy a directory into its own subtree, which would
// otherwise recurse until the path length limit. Both paths are compared after
// resolving symbolic links so an alias of src inside dst is caught too.
func checkNotNested(src, dst string) error {
	realSrc, err := resolvePath(src)
	if err != nil {
		return err
	}
	realDst, err := resolvePath(dst)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(realSrc, realDst)
	if err != nil {
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return fmt.Errorf("%w: cannot copy directory %s into itself (%s)", errors.ErrIO, src, dst)
	}
	return nil
}

// resolvePath returns the absolute form of path with symbolic links in its
// longest existing prefix resolved. Components that do not exist yet are
// appended unchanged.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	var missing []string
	for cur := abs; ; {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(append([]string{resolved}, missing...)...), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs, nil
		}
		missing = append([]string{filepath.Base(cur)}, missing...)
		cur = parent
	}
}
