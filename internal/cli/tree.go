package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cperrin88/fsops/pkg/batch"
)

// NewTreeCmd creates the tree command.
func NewTreeCmd() *cobra.Command {
	var (
		continueOnError bool
		dryRun          bool
	)

	cmd := &cobra.Command{
		Use:   "tree ROOT [LISTING]",
		Short: "Create folders and files from a tree listing",
		Long: `Create the folders and empty files described by an indented listing below
ROOT. The listing is read from LISTING, or from stdin when LISTING is omitted
or "-". Output of the tree command, plain indentation and list bullets are
understood; names ending in "/" are folders.

Existing files named in the listing are truncated. Execution stops at the
first failure unless --continue-on-error or batch.continue_on_error is set.`,
		Example: `  tree myproject | fsops tree /tmp/copy
  fsops tree ./scaffold layout.txt`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSession()
			if err != nil {
				return err
			}

			var tree *batch.Tree
			if len(args) < 2 || args[1] == "-" {
				tree, err = batch.ReadTree(cmd.Context(), "stdin", cmd.InOrStdin())
			} else {
				tree, err = batch.LoadTree(cmd.Context(), args[1])
			}
			if err != nil {
				return err
			}

			manifest := tree.Manifest(args[0])
			if dryRun {
				printSteps(cmd, manifest)
				folders, files := tree.Count()
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d folders, %d files\n", folders, files)
				return nil
			}
			return runManifest(cmd, s, manifest, continueOnError)
		},
	}

	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "keep going after a failed entry")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse the listing and show what would be created")

	return cmd
}
