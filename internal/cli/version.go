package cli

import (
	"fmt"

	"github.com/hashicorp/go-version"
	"github.com/spf13/cobra"

	"github.com/cperrin88/fsops/pkg/permissions"
	"github.com/cperrin88/fsops/pkg/platform"
)

// Set at build time with -ldflags "-X github.com/cperrin88/fsops/internal/cli.Version=...".
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// ToolVersion returns the parsed tool version that batch manifests are
// checked against.
func ToolVersion() (*version.Version, error) {
	v, err := version.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid build version %q: %w", Version, err)
	}
	return v, nil
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version, build and platform information for fsops",
		RunE:  runVersion,
	}

	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	v, err := ToolVersion()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "fsops version %s\n", v)
	_, _ = fmt.Fprintf(w, "Build date: %s\n", BuildDate)
	_, _ = fmt.Fprintf(w, "Git commit: %s\n", GitCommit)
	_, _ = fmt.Fprintf(w, "Platform: %s\n", platform.CurrentPlatform())
	_, _ = fmt.Fprintf(w, "Permission model: %s\n", permissions.Model())
	return nil
}
