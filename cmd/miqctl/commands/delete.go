package commands

import (
	"github.com/spf13/cobra"

	"github.com/miqops/miqctl/cmd/miqctl/handlers"
)

// Delete returns the command for removing the provider record.
//
// Deleting a provider that does not exist is reported as a no-change
// outcome, not a failure, so the command is safe to re-run.
func Delete() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the provider",
		Long: `Delete the provider record from the management server.

The provider named in the configuration file is removed. The server
performs the removal asynchronously; the reported task id can be used to
track it.

Examples:
  # Delete the provider named in miqctl.yaml
  miqctl delete

  # Delete using a specific config file
  miqctl delete -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Delete(cmd.Context(), configPath, verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: miqctl.yaml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}
