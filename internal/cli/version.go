package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/subprofiler/pkg/version"
)

var (
	versionVerbose bool
	versionRequire string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print version information.

--require exits with an error when the build does not satisfy a semver
constraint, for use in provisioning scripts.

Examples:
  subprofiler version --verbose
  subprofiler version --require '>= 1.2'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionRequire != "" {
			ok, err := version.Satisfies(versionRequire)
			if err != nil {
				return trackCLIError("version", fmt.Errorf("invalid constraint %q: %w", versionRequire, err))
			}
			if !ok {
				return trackCLIError("version", fmt.Errorf("version %s does not satisfy %s", version.Short(), versionRequire))
			}
		}

		if versionVerbose {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		} else {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionVerbose, "verbose", false, "Print all build details")
	versionCmd.Flags().StringVar(&versionRequire, "require", "", "Fail unless the version satisfies this constraint")
}
