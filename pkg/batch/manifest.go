// Package batch runs a list of queued filesystem operations and reports which
// of them succeeded.
package batch

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-version"
	"github.com/mholt/archives"
	"gopkg.in/yaml.v3"

	"github.com/cperrin88/fsops/pkg/boundary"
	"github.com/cperrin88/fsops/pkg/errors"
	"github.com/cperrin88/fsops/pkg/permissions"
	"github.com/cperrin88/fsops/pkg/platform"
)

// Manifest is a batch file:
//
//	requires: ">= 0.1"
//	continue_on_error: true
//	steps:
//	  - op: create-folder
//	    path: out/logs
//	  - op: copy
//	    src: config
//	    dst: out/config
//	  - op: chmod
//	    path: out/run.sh
//	    mode: "0755"
//	    platform: {os: linux}
type Manifest struct {
	Requires        string `yaml:"requires,omitempty"`
	ContinueOnError *bool  `yaml:"continue_on_error,omitempty"`
	Steps           []Step `yaml:"steps"`
}

// Step is a single queued operation. Single-path operations use Path, the
// others use Src and Dst. Mode is octal text and only read by set-permissions.
type Step struct {
	Name     string             `yaml:"name,omitempty"`
	Op       string             `yaml:"op"`
	Path     string             `yaml:"path,omitempty"`
	Src      string             `yaml:"src,omitempty"`
	Dst      string             `yaml:"dst,omitempty"`
	Mode     string             `yaml:"mode,omitempty"`
	Platform *platform.Platform `yaml:"platform,omitempty"`
}

// Label names the step in reports.
func (s Step) Label() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Path != "" {
		return s.Op + " " + s.Path
	}
	return s.Op + " " + s.Src + " -> " + s.Dst
}

// Request converts the step into a bridge request.
func (s Step) Request() (boundary.Request, error) {
	op, err := boundary.ParseOp(s.Op)
	if err != nil {
		return boundary.Request{}, err
	}

	req := boundary.Request{Op: op}
	if op.Dual() {
		if s.Src == "" || s.Dst == "" {
			return req, fmt.Errorf("%w: %s needs src and dst", errors.ErrInvalidManifest, op)
		}
		if s.Path != "" {
			return req, fmt.Errorf("%w: %s takes src and dst, not path", errors.ErrInvalidManifest, op)
		}
		req.Path, req.Target = s.Src, s.Dst
		return req, nil
	}

	if s.Path == "" {
		return req, fmt.Errorf("%w: %s needs path", errors.ErrInvalidManifest, op)
	}
	if s.Src != "" || s.Dst != "" {
		return req, fmt.Errorf("%w: %s takes path, not src and dst", errors.ErrInvalidManifest, op)
	}
	req.Path = s.Path

	if op == boundary.OpSetPermissions {
		mode, err := permissions.ParseMode(s.Mode)
		if err != nil {
			return req, err
		}
		req.Mode = uint32(mode)
	} else if s.Mode != "" {
		return req, fmt.Errorf("%w: mode is only valid for %s", errors.ErrInvalidManifest, boundary.OpSetPermissions)
	}
	return req, nil
}

// Validate checks every step without touching the filesystem.
func (m *Manifest) Validate() error {
	if len(m.Steps) == 0 {
		return fmt.Errorf("%w: no steps", errors.ErrInvalidManifest)
	}
	for i, step := range m.Steps {
		if _, err := step.Request(); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Label(), err)
		}
	}
	if m.Requires != "" {
		if _, err := version.NewConstraint(m.Requires); err != nil {
			return fmt.Errorf("%w: requires %q: %w", errors.ErrInvalidManifest, m.Requires, err)
		}
	}
	return nil
}

// CheckRequires reports an error if toolVersion does not satisfy the
// manifest's requires constraint. An empty constraint accepts every version.
func (m *Manifest) CheckRequires(toolVersion string) error {
	if m.Requires == "" {
		return nil
	}
	constraint, err := version.NewConstraint(m.Requires)
	if err != nil {
		return fmt.Errorf("%w: requires %q: %w", errors.ErrInvalidManifest, m.Requires, err)
	}
	v, err := version.NewVersion(toolVersion)
	if err != nil {
		return fmt.Errorf("invalid tool version %q: %w", toolVersion, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: manifest requires %s, running %s", errors.ErrVersionMismatch, m.Requires, v)
	}
	return nil
}

// LoadManifest reads and validates a manifest file. Files compressed with any
// format archives can identify (gzip, zstd, xz, ...) are decompressed first.
func LoadManifest(ctx context.Context, path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.Classify(err), "failed to open manifest %s", path)
	}
	defer func() { _ = file.Close() }()

	data, err := readSource(ctx, filepath.Base(path), file, errors.ErrInvalidManifest)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates an uncompressed YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty manifest", errors.ErrInvalidManifest)
		}
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// readSource reads r in full, decompressing it when archives recognizes a
// compression format. Archives such as tar or zip are refused with invalid.
func readSource(ctx context.Context, name string, r io.Reader, invalid error) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(errors.Classify(err), "failed to read %s", name)
	}

	format, stream, err := archives.Identify(ctx, name, bytes.NewReader(raw))
	if stderrors.Is(err, archives.NoMatch) {
		return raw, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to identify format of %s", name)
	}

	if _, ok := format.(archives.Extractor); ok {
		return nil, fmt.Errorf("%w: %s is an archive, not a compressed file", invalid, name)
	}
	decompressor, ok := format.(archives.Decompressor)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported format %s", invalid, format.Extension())
	}

	rc, err := decompressor.OpenReader(stream)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decompress %s", name)
	}
	defer func() { _ = rc.Close() }()

	return io.ReadAll(rc)
}
