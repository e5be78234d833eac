package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/cperrin88/fsops/internal/logger"
	"github.com/cperrin88/fsops/pkg/boundary"
	"github.com/cperrin88/fsops/pkg/config"
	"github.com/cperrin88/fsops/pkg/fsutil"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	LogFormat  *string
)

// ErrReported marks a failure whose message has already been printed. The
// main package exits non-zero without printing it again.
var ErrReported = fmt.Errorf("failure already reported")

// session is the per-invocation state shared by the subcommands.
type session struct {
	cfg    *config.Config
	engine *fsutil.Engine
	bridge *boundary.Bridge
}

var (
	sessionOnce sync.Once
	current     *session
	sessionErr  error
)

// getSession loads the configuration, applies CLI flag overrides, initializes
// logging and builds the bridge. It runs once per process.
func getSession() (*session, error) {
	sessionOnce.Do(func() {
		current, sessionErr = newSession()
	})
	return current, sessionErr
}

func newSession() (*session, error) {
	configPath := ""
	if ConfigPath != nil {
		configPath = *ConfigPath
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with CLI flags if provided
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	if LogFormat != nil && *LogFormat != "" {
		cfg.Settings.LogFormat = *LogFormat
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger.InitLogger(cfg.Settings.LogLevel, logger.OutputFormat(cfg.Settings.LogFormat))

	engine := fsutil.NewEngine(fsutil.Options{CrossVolumeFallback: cfg.Settings.CrossVolumeFallback})
	return &session{
		cfg:    cfg,
		engine: engine,
		bridge: boundary.New(engine, nil),
	}, nil
}

// printOutcome writes "✓ message" to stdout or "✗ Error: message" to stderr.
// A failed outcome is returned as ErrReported.
func printOutcome(cmd *cobra.Command, out boundary.Outcome) error {
	if out.Success {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", out.Message)
		return nil
	}
	return printFailure(cmd.ErrOrStderr(), out.Message)
}

func printFailure(w io.Writer, msg string) error {
	_, _ = fmt.Fprintf(w, "✗ Error: %s\n", msg)
	return ErrReported
}
