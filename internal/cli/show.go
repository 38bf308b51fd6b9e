package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/subprofiler/internal/profiler"
)

var (
	showEntropyLimit float64
	showCopy         bool
)

var showCmd = &cobra.Command{
	Use:   "show <group-id>",
	Short: "Print the clusters, profile and rule of one group",
	Long: `Print the clusters, length histogram, character set and generated
rule for one group without writing anything.

Examples:
  subprofiler show 42
  subprofiler show 42 --entropy-limit 3 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().Float64VarP(&showEntropyLimit, "entropy-limit", "e", profiler.DefaultEntropyLimit,
		"Labels above this many bits are high entropy")
	showCmd.Flags().BoolVarP(&showCopy, "copy", "c", false, "Copy the rule to the clipboard")
}

type domainReader interface {
	DomainsFor(projectID string) ([]string, error)
}

func runShow(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment("show")
	if err != nil {
		return err
	}
	defer env.Close()

	p, err := showGroup(env.database, args[0], entropyLimitFlag(cmd, env.cfg), cmd.OutOrStdout())
	if err != nil {
		return trackCLIError("show", err)
	}

	if showCopy && p.Regex != "" {
		return trackCLIError("show", copyRule(p.Regex, cmd.OutOrStdout()))
	}
	return nil
}

func copyRule(regex string, w io.Writer) error {
	if err := clipboard.WriteAll(regex); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	_, _ = fmt.Fprintln(w, okStyle.Render("Copied rule to clipboard"))
	return nil
}

// showGroup profiles one stored group and prints every stage. A group
// that yields no rule is still printed.
func showGroup(store domainReader, group string, limit float64, w io.Writer) (*profiler.Profile, error) {
	domains, err := store.DomainsFor(group)
	if err != nil {
		return nil, err
	}

	p, err := profiler.ProfileGroup(profiler.NewDomainGroup(group, domains, profiler.WithEntropyLimit(limit)))
	if err != nil && !profiler.IsNoRule(err) {
		return nil, err
	}

	_, _ = fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("GROUP %s", group)))
	_, _ = fmt.Fprintf(w, "  Entropy limit: %.2f bits\n", p.EntropyLimit)
	_, _ = fmt.Fprintf(w, "  High entropy (%d): %s\n", len(p.HighEntropy), strings.Join(p.HighEntropy, " "))
	_, _ = fmt.Fprintf(w, "  Low entropy (%d): %s\n", len(p.LowEntropy), strings.Join(p.LowEntropy, " "))
	if p.Skipped > 0 {
		_, _ = fmt.Fprintf(w, "  Skipped: %d\n", p.Skipped)
	}

	if len(p.Lengths) > 0 {
		parts := make([]string, 0, len(p.Lengths))
		for _, l := range p.Lengths.Keys() {
			parts = append(parts, fmt.Sprintf("%d:%d", l, p.Lengths[l]))
		}
		_, _ = fmt.Fprintf(w, "  Lengths: %s\n", strings.Join(parts, " "))

		part := p.Partition()
		_, _ = fmt.Fprintf(w, "  Alphanumeric: %s\n", string(part.Alnum))
		_, _ = fmt.Fprintf(w, "  Dash: %t\n", part.HasDash)
		if len(part.Special) > 0 {
			_, _ = fmt.Fprintf(w, "  Not in rule: %s\n", string(part.Special))
		}
	}

	if p.Regex != "" {
		_, _ = fmt.Fprintf(w, "  Rule: %s\n", okStyle.Render(p.Regex))
	} else {
		_, _ = fmt.Fprintf(w, "  Rule: %s\n", failStyle.Render(fmt.Sprintf("none (%v)", err)))
	}

	return p, nil
}
