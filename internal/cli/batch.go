package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cperrin88/fsops/internal/logger"
	"github.com/cperrin88/fsops/pkg/batch"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	var (
		continueOnError bool
		dryRun          bool
	)

	cmd := &cobra.Command{
		Use:   "batch MANIFEST",
		Short: "Run the operations listed in a manifest",
		Long: `Run the operations listed in a YAML manifest, in order.

The manifest may be compressed (gzip, zstd, xz, ...). Execution stops at the
first failure unless continue_on_error is set in the manifest, the
configuration or with --continue-on-error. Completed steps are never undone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getSession()
			if err != nil {
				return err
			}

			manifest, err := batch.LoadManifest(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			v, err := ToolVersion()
			if err != nil {
				return err
			}
			if err := manifest.CheckRequires(v.String()); err != nil {
				return err
			}

			if dryRun {
				printSteps(cmd, manifest)
				return nil
			}
			return runManifest(cmd, s, manifest, continueOnError)
		},
	}

	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "keep going after a failed step")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the manifest and list its steps without running them")

	return cmd
}

// runManifest executes m through the session's bridge and prints the report.
// An explicit --continue-on-error flag wins over the manifest and the
// configuration.
func runManifest(cmd *cobra.Command, s *session, m *batch.Manifest, continueOnError bool) error {
	runner := batch.NewRunner(s.bridge, s.cfg.Batch.ContinueOnError)
	if cmd.Flags().Changed("continue-on-error") {
		runner.ContinueOnError = continueOnError
		m.ContinueOnError = nil
	}

	report, err := runner.Run(cmd.Context(), m)
	if report != nil {
		printReport(cmd, report)
	}
	if err != nil {
		return err
	}
	if report.Failed() {
		return ErrReported
	}
	return nil
}

func printSteps(cmd *cobra.Command, m *batch.Manifest) {
	for i, step := range m.Steps {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i+1, step.Label())
	}
}

func printReport(cmd *cobra.Command, report *batch.Report) {
	for _, res := range report.Results {
		if res.Outcome.Success {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", res.Outcome.Message)
		} else {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "✗ Error: %s\n", res.Outcome.Message)
		}
	}

	succeeded, failed := report.Summary()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d succeeded, %d failed, %d skipped\n", succeeded, failed, len(report.Skipped))
	logger.Debug("Batch report", logger.Fields{
		"run_id":   report.RunID.String(),
		"duration": report.Duration.String(),
		"stopped":  report.Stopped,
	})
}
