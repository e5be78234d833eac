package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cperrin88/fsops/internal/cli"
	"github.com/cperrin88/fsops/pkg/errors"
)

var (
	configPath string
	verbose    bool
	logFormat  string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintf(os.Stderr, "✗ Error: %v\n", err)
		}
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fsops",
		Short: "File system operations CLI",
		Long: `fsops creates, deletes, renames, moves and copies files and folders and
changes their permissions. The same operations are exported from the
libfsops shared library for use by non-Go programs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: $FSOPS_CONFIG or the user config dir)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.LogFormat = &logFormat

	// Add subcommands
	cmd.AddCommand(
		cli.NewCreateFolderCmd(),
		cli.NewCreateFileCmd(),
		cli.NewRenameCmd(),
		cli.NewDeleteCmd(),
		cli.NewChmodCmd(),
		cli.NewMoveCmd(),
		cli.NewCopyCmd(),
		cli.NewPermsCmd(),
		cli.NewBatchCmd(),
		cli.NewTreeCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
