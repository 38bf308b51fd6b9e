package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/subprofiler/internal/models"
	"github.com/asteroid-belt/subprofiler/internal/profiler"
)

var filterPattern string

var filterCmd = &cobra.Command{
	Use:   "filter <group-id>",
	Short: "Print the group's domains matched by its rule",
	Long: `Apply a rule to the domains stored for a group and print the matches.

The group's most recent rule is used unless --pattern is given.

Examples:
  subprofiler filter 42
  subprofiler filter 42 --pattern '^[0-9a-f]{8,12}\.'`,
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVarP(&filterPattern, "pattern", "p", "", "Use this pattern instead of the stored rule")
}

type filterStore interface {
	DomainsFor(projectID string) ([]string, error)
	LatestRule(projectID string) (*models.Rule, error)
}

func runFilter(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment("filter")
	if err != nil {
		return err
	}
	defer env.Close()

	_, err = filterGroup(env.database, args[0], filterPattern, cmd.OutOrStdout())
	return trackCLIError("filter", err)
}

// filterGroup prints and returns the group's domains matched by pattern, or
// by the group's latest rule when pattern is empty.
func filterGroup(store filterStore, group, pattern string, w io.Writer) ([]string, error) {
	domains, err := store.DomainsFor(group)
	if err != nil {
		return nil, err
	}

	if pattern == "" {
		rule, err := store.LatestRule(group)
		if err != nil {
			return nil, err
		}
		pattern = rule.Regexp
	}

	matched, err := profiler.Filter(pattern, domains)
	if err != nil {
		return nil, err
	}

	for _, d := range matched {
		_, _ = fmt.Fprintln(w, d)
	}
	_, _ = fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d of %d domain(s) match %s",
		len(matched), len(profiler.SortedUnique(domains)), pattern)))
	return matched, nil
}
