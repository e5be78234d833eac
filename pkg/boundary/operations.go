package boundary

import (
	"fmt"
	"strings"

	"github.com/cperrin88/fsops/pkg/errors"
	"github.com/cperrin88/fsops/pkg/permissions"
)

// Op identifies a filesystem operation exposed across the boundary.
type Op int

const (
	OpCreateFolder Op = iota + 1
	OpCreateFile
	OpRename
	OpDelete
	OpSetPermissions
	OpMove
	OpCopy
)

// Request is an operation with its already-marshaled arguments. Dual-path
// operations read Path as the source and Target as the destination. Mode is
// only read by OpSetPermissions.
type Request struct {
	Op     Op
	Path   string
	Target string
	Mode   uint32
}

// modeBits are the bits of a requested mode that reach the host; file type
// bits such as those in 0o100644 are dropped.
const modeBits = uint32(permissions.ModeMask)

type opSpec struct {
	name    string
	dual    bool
	failure string
	run     func(ops FileOps, req Request) error
	done    func(req Request) string
}

var opTable = map[Op]opSpec{
	OpCreateFolder: {
		name:    "create-folder",
		failure: "Failed to create folder",
		run:     func(ops FileOps, req Request) error { return ops.CreateFolder(req.Path) },
		done:    func(req Request) string { return "Folder created: " + req.Path },
	},
	OpCreateFile: {
		name:    "create-file",
		failure: "Failed to create file",
		run:     func(ops FileOps, req Request) error { return ops.CreateFile(req.Path) },
		done:    func(req Request) string { return "File created: " + req.Path },
	},
	OpRename: {
		name:    "rename",
		dual:    true,
		failure: "Failed to rename",
		run:     func(ops FileOps, req Request) error { return ops.Rename(req.Path, req.Target) },
		done:    func(req Request) string { return "Renamed: " + req.Path + " -> " + req.Target },
	},
	OpDelete: {
		name:    "delete",
		failure: "Failed to delete",
		run:     func(ops FileOps, req Request) error { return ops.Delete(req.Path) },
		done:    func(req Request) string { return "Deleted: " + req.Path },
	},
	OpSetPermissions: {
		name:    "set-permissions",
		failure: "Failed to change permissions",
		run: func(ops FileOps, req Request) error {
			return ops.SetPermissions(req.Path, req.Mode&modeBits)
		},
		done: func(req Request) string {
			return fmt.Sprintf("Permissions changed: %s (%s)", req.Path, permissions.Mode(req.Mode&modeBits))
		},
	},
	OpMove: {
		name:    "move",
		dual:    true,
		failure: "Failed to move",
		run:     func(ops FileOps, req Request) error { return ops.Move(req.Path, req.Target) },
		done:    func(req Request) string { return "Moved: " + req.Path + " -> " + req.Target },
	},
	OpCopy: {
		name:    "copy",
		dual:    true,
		failure: "Failed to copy",
		run:     func(ops FileOps, req Request) error { return ops.Copy(req.Path, req.Target) },
		done:    func(req Request) string { return "Copied: " + req.Path + " -> " + req.Target },
	},
}

// opAliases maps the CLI spellings onto table names.
var opAliases = map[string]string{
	"chmod":  "set-permissions",
	"mkdir":  "create-folder",
	"touch":  "create-file",
	"rm":     "delete",
	"mv":     "move",
	"cp":     "copy",
	"remove": "delete",
}

// String returns the canonical operation name, e.g. "create-folder".
func (o Op) String() string {
	if entry, ok := opTable[o]; ok {
		return entry.name
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Dual reports whether the operation takes a source and a destination.
func (o Op) Dual() bool {
	return opTable[o].dual
}

// Ops lists every operation in table order.
func Ops() []Op {
	return []Op{OpCreateFolder, OpCreateFile, OpRename, OpDelete, OpSetPermissions, OpMove, OpCopy}
}

// ParseOp resolves an operation name or one of its aliases, case-insensitively.
func ParseOp(name string) (Op, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := opAliases[name]; ok {
		name = alias
	}

	ops := Ops()
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		if op.String() == name {
			return op, nil
		}
		names = append(names, op.String())
	}
	return 0, fmt.Errorf("%w: %q (want one of %s)", errors.ErrUnknownOperation, name, strings.Join(names, ", "))
}
