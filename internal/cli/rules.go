package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/subprofiler/internal/models"
)

var (
	rulesGroup string
	rulesClear bool
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List persisted rules",
	Long: `List persisted rules, newest first within each group.

Examples:
  subprofiler rules
  subprofiler rules --group 42
  subprofiler rules --group 42 --clear`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().StringVarP(&rulesGroup, "group", "g", "", "Only show rules for this group")
	rulesCmd.Flags().BoolVar(&rulesClear, "clear", false, "Delete the group's rules (requires --group)")
}

type ruleLister interface {
	ListRules() ([]models.Rule, error)
	RulesFor(projectID string) ([]models.Rule, error)
	DeleteRules(projectID string) (int64, error)
}

func runRules(cmd *cobra.Command, args []string) error {
	if rulesClear && rulesGroup == "" {
		return trackCLIError("rules", fmt.Errorf("invalid flags: --clear requires --group"))
	}

	env, err := openEnvironment("rules")
	if err != nil {
		return err
	}
	defer env.Close()

	if rulesClear {
		n, err := env.database.DeleteRules(rulesGroup)
		if err != nil {
			return trackCLIError("rules", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d rule(s) for group %s\n", n, rulesGroup)
		return nil
	}

	return trackCLIError("rules", listRules(env.database, rulesGroup, cmd.OutOrStdout()))
}

func listRules(store ruleLister, group string, w io.Writer) error {
	var (
		rules []models.Rule
		err   error
	)
	if group != "" {
		rules, err = store.RulesFor(group)
	} else {
		rules, err = store.ListRules()
	}
	if err != nil {
		return fmt.Errorf("list rules: %w", err)
	}

	if len(rules) == 0 {
		_, _ = fmt.Fprintln(w, "No rules stored. Run 'subprofiler profile' to generate some.")
		return nil
	}

	_, _ = fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("RULES (%d)", len(rules))))
	_, _ = fmt.Fprintln(w, "──────────────────────────────────────────────────")
	for _, r := range rules {
		_, _ = fmt.Fprintf(w, "  %-12s %s  %s\n",
			r.ProjectID,
			mutedStyle.Render(r.UpdatedAt.Format("2006-01-02 15:04")),
			r.Regexp)
	}
	return nil
}
