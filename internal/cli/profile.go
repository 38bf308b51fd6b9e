package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/subprofiler/internal/db"
	"github.com/asteroid-belt/subprofiler/internal/log"
	"github.com/asteroid-belt/subprofiler/internal/metrics"
	"github.com/asteroid-belt/subprofiler/internal/models"
	"github.com/asteroid-belt/subprofiler/internal/profiler"
)

var (
	profileGroup        string
	profileEntropyLimit float64
	profileWorkers      int
	profileDryRun       bool
	profileMetricsFile  string
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"run"},
	Short:   "Profile every stored group and write one rule per group",
	Long: `Profile every stored group and write one rule per group.

For each group the leading label of every domain is clustered by Shannon
entropy. The high-entropy cluster is profiled by length and character set
and turned into an anchored regular expression. Rules for all successful
groups are written in a single batch; groups without a high-entropy
cluster are reported and skipped.

Examples:
  # Profile all groups
  subprofiler profile

  # Profile one group with a lower threshold, without saving
  subprofiler profile --group 42 --entropy-limit 2.0 --dry-run`,
	Args: cobra.NoArgs,
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().StringVarP(&profileGroup, "group", "g", "",
		"Only profile this group")
	profileCmd.Flags().Float64VarP(&profileEntropyLimit, "entropy-limit", "e", profiler.DefaultEntropyLimit,
		"Labels above this many bits are high entropy")
	profileCmd.Flags().IntVarP(&profileWorkers, "workers", "w", 1,
		"Groups profiled concurrently")
	profileCmd.Flags().BoolVar(&profileDryRun, "dry-run", false,
		"Print rules without writing them")
	profileCmd.Flags().StringVar(&profileMetricsFile, "metrics-file", "",
		"Write Prometheus textfile metrics to this path")
}

// profileStore is the slice of the store a profiling run needs.
type profileStore interface {
	ReadDomains() (map[string][]string, error)
	WriteRules(rules map[string]string) error
	SetMeta(key, value string) error
}

type profileOptions struct {
	group        string
	entropyLimit float64
	workers      int
	dryRun       bool
	metricsFile  string
}

type profileSummary struct {
	groups       int
	failed       int
	rulesWritten int
	duration     time.Duration
}

func runProfile(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment("profile")
	if err != nil {
		return err
	}
	defer env.Close()

	opts := profileOptions{
		group:        profileGroup,
		entropyLimit: entropyLimitFlag(cmd, env.cfg),
		workers:      env.cfg.Profile.Workers,
		dryRun:       profileDryRun,
		metricsFile:  env.cfg.MetricsFile,
	}
	if cmd.Flags().Changed("workers") {
		opts.workers = profileWorkers
	}
	if cmd.Flags().Changed("metrics-file") {
		opts.metricsFile = profileMetricsFile
	}

	summary, err := profileGroups(cmd.Context(), env.database, opts, logWriter{})
	if err != nil {
		return trackCLIError("profile", err)
	}

	telemetryClient.TrackGroupsProfiled(summary.groups, summary.failed, summary.duration.Milliseconds())
	if summary.rulesWritten > 0 {
		telemetryClient.TrackRulesWritten(summary.rulesWritten)
	}
	return nil
}

// profileGroups reads the groups, profiles them and persists the rules of
// the successful ones in one batch.
func profileGroups(ctx context.Context, store profileStore, opts profileOptions, w io.Writer) (*profileSummary, error) {
	start := time.Now()
	recorder := metrics.NewRecorder()

	groups, err := store.ReadDomains()
	if err != nil {
		return nil, fmt.Errorf("read domains: %w", err)
	}
	_, _ = fmt.Fprintln(w, "Database read successfully")

	if opts.group != "" {
		domains, ok := groups[opts.group]
		if !ok {
			return nil, fmt.Errorf("%w: %s", db.ErrGroupNotFound, opts.group)
		}
		groups = map[string][]string{opts.group: domains}
	}

	if len(groups) == 0 {
		_, _ = fmt.Fprintln(w, "No domain groups stored. Use 'subprofiler import' to add some.")
		return &profileSummary{}, nil
	}

	progress := NewProgressBar(len(groups), 15)
	runner := profiler.NewRunner(
		profiler.WithRunnerEntropyLimit(opts.entropyLimit),
		profiler.WithWorkers(opts.workers),
		profiler.WithProgress(
			func(id string) {
				_, _ = fmt.Fprintf(w, "analysis started for group %s\n", id)
			},
			func(res profiler.Result) {
				recorder.ObserveResult(res)
				progress.Step()
				if res.OK() {
					_, _ = fmt.Fprintf(w, "%s %s\n", progress.Render("group "+res.GroupID, true), res.Profile.Regex)
					return
				}
				_, _ = fmt.Fprintf(w, "%s no rule: %v\n", progress.Render("group "+res.GroupID, false), res.Err)
			},
		),
	)

	results, err := runner.Run(ctx, groups)
	if err != nil {
		return nil, fmt.Errorf("profile groups: %w", err)
	}

	rules := profiler.Rules(results)
	summary := &profileSummary{
		groups: len(results),
		failed: len(results) - len(rules),
	}

	if opts.dryRun {
		_, _ = fmt.Fprintf(w, "Dry run: %d rule(s) not written\n", len(rules))
	} else {
		if err := store.WriteRules(rules); err != nil {
			return nil, fmt.Errorf("write rules: %w", err)
		}
		summary.rulesWritten = len(rules)
		recorder.ObserveRulesWritten(len(rules))
		if err := store.SetMeta(models.MetaLastProfileRun, time.Now().UTC().Format(time.RFC3339)); err != nil {
			log.Errorf("record last profile run: %v", err)
		}
		_, _ = fmt.Fprintf(w, "Rules written successfully: %d rule(s), %d group(s) without a rule\n",
			summary.rulesWritten, summary.failed)
	}

	summary.duration = time.Since(start)
	recorder.ObserveDuration(summary.duration)

	if opts.metricsFile != "" {
		if err := recorder.WriteTextfile(opts.metricsFile); err != nil {
			return summary, err
		}
	}

	return summary, nil
}
