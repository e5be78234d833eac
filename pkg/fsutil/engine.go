// Package fsutil implements the filesystem operations exposed through the
// boundary: create, delete, rename, move, copy and permission changes.
//
// Every operation fails fast on the first host error, never retries and never
// rolls back work that already completed. A recursive copy that fails halfway
// leaves the destination partially populated.
package fsutil

import (
	"github.com/cperrin88/fsops/internal/logger"
	"github.com/cperrin88/fsops/pkg/permissions"
	"github.com/rs/zerolog"
)

// Options tune the engine.
type Options struct {
	// CrossVolumeFallback makes Move copy then delete when the host refuses to
	// rename across storage volumes. Rename never falls back.
	CrossVolumeFallback bool
}

// Engine performs filesystem operations against the host filesystem.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	opts Options
	log  zerolog.Logger
}

// NewEngine creates an engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts: opts,
		log:  logger.Component("engine"),
	}
}

// SetPermissions applies mode to path. See permissions.Set.
func (e *Engine) SetPermissions(path string, mode uint32) error {
	return permissions.Set(path, permissions.Mode(mode))
}

// Permissions reads the mode of path. See permissions.Get.
func (e *Engine) Permissions(path string) (uint32, error) {
	mode, err := permissions.Get(path)
	return uint32(mode), err
}
