package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cperrin88/fsops/pkg/boundary"
	"github.com/cperrin88/fsops/pkg/permissions"
)

// newOperationCmd builds a subcommand that runs a single bridge operation on
// its positional path arguments.
func newOperationCmd(op boundary.Op, use, short string) *cobra.Command {
	nargs := 1
	if op.Dual() {
		nargs = 2
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSession()
			if err != nil {
				return err
			}

			req := boundary.Request{Op: op, Path: args[0]}
			if op.Dual() {
				req.Target = args[1]
			}
			return printOutcome(cmd, s.bridge.Do(req))
		},
	}
}

// NewCreateFolderCmd creates the create-folder command.
func NewCreateFolderCmd() *cobra.Command {
	cmd := newOperationCmd(boundary.OpCreateFolder, "create-folder PATH", "Create a folder and any missing parents")
	cmd.Aliases = []string{"mkdir"}
	return cmd
}

// NewCreateFileCmd creates the create-file command.
func NewCreateFileCmd() *cobra.Command {
	cmd := newOperationCmd(boundary.OpCreateFile, "create-file PATH", "Create an empty file, truncating an existing one")
	cmd.Aliases = []string{"touch"}
	return cmd
}

// NewRenameCmd creates the rename command.
func NewRenameCmd() *cobra.Command {
	cmd := newOperationCmd(boundary.OpRename, "rename OLD NEW", "Rename a file or folder")
	cmd.Long = "Rename a file or folder. Both paths must be on the same volume."
	return cmd
}

// NewDeleteCmd creates the delete command.
func NewDeleteCmd() *cobra.Command {
	cmd := newOperationCmd(boundary.OpDelete, "delete PATH", "Delete a file, or a folder and everything in it")
	cmd.Aliases = []string{"rm"}
	return cmd
}

// NewMoveCmd creates the move command.
func NewMoveCmd() *cobra.Command {
	cmd := newOperationCmd(boundary.OpMove, "move SRC DST", "Move a file or folder")
	cmd.Long = `Move a file or folder.

Moving across volumes fails unless cross_volume_fallback is enabled in the
configuration, in which case the source is copied and then deleted.`
	cmd.Aliases = []string{"mv"}
	return cmd
}

// NewCopyCmd creates the copy command.
func NewCopyCmd() *cobra.Command {
	cmd := newOperationCmd(boundary.OpCopy, "copy SRC DST", "Copy a file or folder")
	cmd.Long = `Copy a file, or mirror a folder recursively.

Symbolic links, devices, sockets and pipes inside a folder are skipped. The
first error aborts the copy and leaves what was already copied in place.`
	cmd.Aliases = []string{"cp"}
	return cmd
}

// NewChmodCmd creates the chmod command.
func NewChmodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chmod PATH MODE",
		Short: "Change permissions using an octal mode",
		Long: `Change permissions using an octal mode such as 755 or 0644.

On hosts without POSIX permissions only the owner-write bit (0200) is honored:
set makes the file writable, clear makes it read-only.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSession()
			if err != nil {
				return err
			}

			mode, err := permissions.ParseMode(args[1])
			if err != nil {
				return printFailure(cmd.ErrOrStderr(), err.Error())
			}
			return printOutcome(cmd, s.bridge.Do(boundary.Request{
				Op:   boundary.OpSetPermissions,
				Path: args[0],
				Mode: uint32(mode),
			}))
		},
	}
}

// NewPermsCmd creates the perms command.
func NewPermsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "perms PATH",
		Short: "Show the permissions of a file or folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSession()
			if err != nil {
				return err
			}

			raw, err := s.engine.Permissions(args[0])
			if err != nil {
				return printFailure(cmd.ErrOrStderr(), fmt.Sprintf("Failed to read permissions: %v", err))
			}

			mode := permissions.Mode(raw)
			msg := fmt.Sprintf("%s: %s", args[0], mode)
			if flags, err := permissions.FlagsFromMode(mode); err == nil {
				msg += " (" + flags.String() + ")"
			} else {
				msg += " (" + permissions.Model() + ")"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", msg)
			return nil
		},
	}
}
