package commands

import (
	"github.com/spf13/cobra"

	"github.com/miqops/miqctl/cmd/miqctl/handlers"
)

// Apply returns the command for converging the provider record.
//
// This command loads the desired state from the configuration file,
// compares it against the provider on the management server, and issues
// the create or update needed to bring the two in line. After any write it
// waits for the server to validate the affected credentials.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: miqctl.yaml)
//	--verbose, -v: Enable debug logging, including API request logging
//
// Environment variables:
//
//	MIQ_URL, MIQ_USERNAME, MIQ_PASSWORD: connection defaults used when the
//	config file omits them (a .env file in the working directory is read)
func Apply() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the provider",
		Long: `Create or update the provider record on the management server.

The provider named in the configuration file is created when absent. When
it already exists, its endpoints, zone, and region are diffed against the
desired state and only the differences are written. A provider that
already matches is left untouched.

Examples:
  # Converge using miqctl.yaml in the current directory
  miqctl apply

  # Converge using a specific config file
  miqctl apply -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath, verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: miqctl.yaml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}
