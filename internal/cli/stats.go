package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/subprofiler/internal/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnvironment("stats")
		if err != nil {
			return err
		}
		defer env.Close()

		return trackCLIError("stats", printStats(env.database, cmd.OutOrStdout()))
	},
}

type statsStore interface {
	GetStats() (*models.Stats, error)
	ListGroups() ([]models.GroupSummary, error)
	GetMeta(key string) (string, error)
}

func printStats(store statsStore, w io.Writer) error {
	stats, err := store.GetStats()
	if err != nil {
		return err
	}
	groups, err := store.ListGroups()
	if err != nil {
		return err
	}
	lastRun, err := store.GetMeta(models.MetaLastProfileRun)
	if err != nil {
		return fmt.Errorf("read meta: %w", err)
	}
	if lastRun == "" {
		lastRun = "never"
	}

	_, _ = fmt.Fprintln(w, headerStyle.Render("STORE"))
	_, _ = fmt.Fprintf(w, "  Groups:       %d\n", stats.TotalGroups)
	_, _ = fmt.Fprintf(w, "  Domains:      %d\n", stats.TotalDomains)
	_, _ = fmt.Fprintf(w, "  Rules:        %d\n", stats.TotalRules)
	_, _ = fmt.Fprintf(w, "  Size:         %d bytes\n", stats.CacheSizeBytes)
	_, _ = fmt.Fprintf(w, "  Last profile: %s\n", lastRun)

	if len(groups) > 0 {
		_, _ = fmt.Fprintln(w)
		for _, g := range groups {
			_, _ = fmt.Fprintf(w, "  %-12s %d domain(s)\n", g.ProjectID, g.DomainCount)
		}
	}
	return nil
}
