// Package boundary turns raw C string handles into filesystem operations and
// packs their outcome into C-compatible results.
//
// Nothing in this package imports cgo. The shared library in cmd/libfsops
// converts between C types and the unsafe.Pointer handles used here, and
// supplies an Allocator backed by the C heap.
package boundary

import (
	"fmt"
	"unsafe"

	"github.com/rs/zerolog"

	"github.com/cperrin88/fsops/internal/logger"
	"github.com/cperrin88/fsops/pkg/errors"
)

//go:generate mockgen -destination=./mocks/fileops.go . FileOps

// FileOps is the filesystem engine behind the bridge. *fsutil.Engine
// implements it.
type FileOps interface {
	CreateFolder(path string) error
	CreateFile(path string) error
	Delete(path string) error
	Rename(oldPath, newPath string) error
	Move(src, dst string) error
	Copy(src, dst string) error
	SetPermissions(path string, mode uint32) error
}

// Bridge serves the boundary entry points. It holds no mutable state after
// construction and may be shared between goroutines.
type Bridge struct {
	ops   FileOps
	alloc Allocator
	log   zerolog.Logger
}

// New creates a bridge over ops. alloc may be nil for bridges that only serve
// Do; calling a handle-based entry point on such a bridge panics.
func New(ops FileOps, alloc Allocator) *Bridge {
	return &Bridge{
		ops:   ops,
		alloc: alloc,
		log:   logger.Component("boundary"),
	}
}

// CreateFolder creates a directory and any missing parents.
func (b *Bridge) CreateFolder(path unsafe.Pointer) Result {
	return b.pathOperation(OpCreateFolder, path, 0)
}

// CreateFile creates or truncates a regular file.
func (b *Bridge) CreateFile(path unsafe.Pointer) Result {
	return b.pathOperation(OpCreateFile, path, 0)
}

// Rename renames oldPath to newPath on the same volume.
func (b *Bridge) Rename(oldPath, newPath unsafe.Pointer) Result {
	return b.dualPathOperation(OpRename, oldPath, newPath)
}

// Delete removes a file, or a directory with everything below it.
func (b *Bridge) Delete(path unsafe.Pointer) Result {
	return b.pathOperation(OpDelete, path, 0)
}

// SetPermissions applies mode to path.
func (b *Bridge) SetPermissions(path unsafe.Pointer, mode uint32) Result {
	return b.pathOperation(OpSetPermissions, path, mode)
}

// Move relocates src to dst.
func (b *Bridge) Move(src, dst unsafe.Pointer) Result {
	return b.dualPathOperation(OpMove, src, dst)
}

// Copy copies a file, or mirrors a directory tree without its symlinks.
func (b *Bridge) Copy(src, dst unsafe.Pointer) Result {
	return b.dualPathOperation(OpCopy, src, dst)
}

func (b *Bridge) pathOperation(op Op, handle unsafe.Pointer, mode uint32) Result {
	path, err := PathFromHandle(handle)
	if err != nil {
		return b.rejected(op, "path", err)
	}
	return b.fromOutcome(b.Do(Request{Op: op, Path: path.String(), Mode: mode}))
}

func (b *Bridge) dualPathOperation(op Op, srcHandle, dstHandle unsafe.Pointer) Result {
	src, err := PathFromHandle(srcHandle)
	if err != nil {
		return b.rejected(op, "source path", err)
	}
	dst, err := PathFromHandle(dstHandle)
	if err != nil {
		return b.rejected(op, "destination path", err)
	}
	return b.fromOutcome(b.Do(Request{Op: op, Path: src.String(), Target: dst.String()}))
}

func (b *Bridge) rejected(op Op, arg string, err error) Result {
	b.log.Debug().
		Str("op", op.String()).
		Str("code", string(errors.GetCode(err))).
		Msgf("rejected %s", arg)
	return b.failure(fmt.Sprintf("%s: invalid %s: %v", opTable[op].failure, arg, err))
}

// Do runs an already-marshaled request. It never panics: a panic raised by the
// engine is reported as a failed outcome.
func (b *Bridge) Do(req Request) (out Outcome) {
	entry, ok := opTable[req.Op]
	if !ok {
		return Outcome{Message: fmt.Sprintf("%v: %s", errors.ErrUnknownOperation, req.Op)}
	}

	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Str("op", entry.name).Interface("panic", r).Msg("operation panicked")
			out = Outcome{Message: fmt.Sprintf("%s: internal error: %v", entry.failure, r)}
		}
	}()

	event := b.log.Debug().Str("op", entry.name).Str("path", req.Path)
	if entry.dual {
		event = event.Str("target", req.Target)
	}
	event.Msg("running operation")

	if err := entry.run(b.ops, req); err != nil {
		b.log.Debug().
			Str("op", entry.name).
			Str("code", string(errors.GetCode(err))).
			Err(err).
			Msg("operation failed")
		return Outcome{Message: fmt.Sprintf("%s: %v", entry.failure, err)}
	}
	return Outcome{Success: true, Message: entry.done(req)}
}
