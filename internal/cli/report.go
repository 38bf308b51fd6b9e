package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/subprofiler/internal/profiler"
	"github.com/asteroid-belt/subprofiler/internal/report"
)

var (
	reportEntropyLimit float64
	reportRaw          bool
)

var reportCmd = &cobra.Command{
	Use:   "report <group-id>",
	Short: "Render a markdown profile report for one group",
	Long: `Render a markdown profile report for one group: both clusters with
per-label entropy, the length histogram, characters left out of the rule
and the registrable domains the group spans.

Examples:
  subprofiler report 42
  subprofiler report 42 --raw > group-42.md`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Float64VarP(&reportEntropyLimit, "entropy-limit", "e", profiler.DefaultEntropyLimit,
		"Labels above this many bits are high entropy")
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "Print markdown without rendering")
}

func runReport(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment("report")
	if err != nil {
		return err
	}
	defer env.Close()

	md, err := buildReport(env.database, args[0], entropyLimitFlag(cmd, env.cfg))
	if err != nil {
		return trackCLIError("report", err)
	}

	return trackCLIError("report", writeReport(md, reportRaw, cmd.OutOrStdout()))
}

func buildReport(store domainReader, group string, limit float64) (string, error) {
	domains, err := store.DomainsFor(group)
	if err != nil {
		return "", err
	}

	p, err := profiler.ProfileGroup(profiler.NewDomainGroup(group, domains, profiler.WithEntropyLimit(limit)))
	if err != nil && !profiler.IsNoRule(err) {
		return "", err
	}
	return report.Markdown(p, domains), nil
}

func writeReport(md string, raw bool, w io.Writer) error {
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
