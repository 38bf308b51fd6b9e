// Package cli provides the command-line interface for subprofiler.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/subprofiler/internal/config"
	"github.com/asteroid-belt/subprofiler/internal/db"
	"github.com/asteroid-belt/subprofiler/internal/log"
	"github.com/asteroid-belt/subprofiler/internal/profiler"
	"github.com/asteroid-belt/subprofiler/internal/telemetry"
	"github.com/asteroid-belt/subprofiler/pkg/version"
)

var telemetryClient = telemetry.Noop()

var commandStartTime time.Time

var rootCmd = &cobra.Command{
	Use:   "subprofiler",
	Short: "Profile DNS subdomains and generate detection rules",
	Long: `Profile DNS subdomains and generate detection rules

subprofiler clusters the leading label of each domain in a group by
Shannon entropy, profiles the high-entropy cluster and synthesizes an
anchored regular expression that matches machine-generated subdomains.

Domains are stored per group. Load them with 'subprofiler import', then run
'subprofiler profile' to write one rule per group.

Configuration:
  $SUBPROFILER_HOME/config.yaml plus SUBPROFILER_* environment variables.

Telemetry:
  Telemetry is anonymous and never includes domains, group IDs or rules.

  Opt-out with:
  	SUBPROFILER_TELEMETRY_TRACKING_ENABLED=false`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commandStartTime = time.Now()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() != "subprofiler" {
			durationMs := time.Since(commandStartTime).Milliseconds()
			hasFlags := cmd.Flags().NFlag() > 0
			telemetryClient.TrackCLICommandExecuted(cmd.Name(), hasFlags, durationMs)
		}

		if cmd.Flags().Changed("help") {
			telemetryClient.TrackCLIHelpViewed(cmd.Name(), os.Args[1:])
		}
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context, tc telemetry.Client) error {
	if tc != nil {
		telemetryClient = tc
	}

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)

	if rootCmd.CalledAs() != "" {
		durationMs := time.Since(commandStartTime).Milliseconds()
		telemetryClient.TrackAppExited("cli", durationMs)
	}

	return err
}

// environment is what a command needs from the outside world.
type environment struct {
	cfg      *config.Config
	database *db.DB
}

func (e *environment) Close() {
	_ = e.database.Close()
	_ = log.Close()
}

// openEnvironment loads configuration, starts the file logger and opens
// the store.
func openEnvironment(cmdName string) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, trackCLIError(cmdName, fmt.Errorf("load config: %w", err))
	}

	paths := config.GetPaths(cfg)
	if err := log.Init(paths.Logs); err != nil {
		return nil, trackCLIError(cmdName, fmt.Errorf("init log: %w", err))
	}

	dbCfg := db.DefaultConfig(paths.Database)
	dbCfg.Debug = cfg.Database.Debug
	database, err := db.New(dbCfg)
	if err != nil {
		_ = log.Close()
		return nil, trackCLIError(cmdName, fmt.Errorf("initialize database: %w", err))
	}

	return &environment{cfg: cfg, database: database}, nil
}

// entropyLimitFlag returns the --entropy-limit value when set, otherwise
// the configured limit.
func entropyLimitFlag(cmd *cobra.Command, cfg *config.Config) float64 {
	if cmd.Flags().Changed("entropy-limit") {
		v, _ := cmd.Flags().GetFloat64("entropy-limit")
		return v
	}
	return cfg.Profile.EntropyLimit
}

// logWriter routes command output through the global logger so it lands
// on stdout and in the log file.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	log.Printf("%s", p)
	return len(p), nil
}

// trackCLIError wraps an error with telemetry tracking.
// Call this before returning errors from CLI commands.
func trackCLIError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	telemetryClient.TrackCLIError(cmdName, classifyError(err))
	return err
}

// classifyError determines the error type for telemetry.
func classifyError(err error) string {
	switch {
	case errors.Is(err, config.ErrInvalidConfig):
		return "config_error"
	case errors.Is(err, db.ErrPersistence):
		return "database_error"
	case errors.Is(err, db.ErrGroupNotFound), errors.Is(err, db.ErrRuleNotFound):
		return "not_found_error"
	case errors.Is(err, profiler.ErrInvalidPattern):
		return "validation_error"
	case profiler.IsNoRule(err):
		return "profile_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	}

	errStr := err.Error()
	switch {
	case containsAny(errStr, "permission", "access denied"):
		return "permission_error"
	case containsAny(errStr, "not found", "does not exist", "no such file"):
		return "not_found_error"
	case containsAny(errStr, "invalid", "parse", "format"):
		return "validation_error"
	default:
		return "unknown_error"
	}
}

// containsAny checks if s contains any of the substrings (case-insensitive).
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
