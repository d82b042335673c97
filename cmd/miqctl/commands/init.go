package commands

import (
	"github.com/spf13/cobra"

	"github.com/miqops/miqctl/cmd/miqctl/handlers"
)

// Init returns the command for interactively creating a configuration
// file.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file interactively",
		Long: `Create a miqctl configuration file through an interactive wizard.

The wizard asks for the management server connection details and the
provider to manage, then writes the answers as YAML.

Examples:
  # Write miqctl.yaml in the current directory
  miqctl init

  # Write to a different file
  miqctl init -o production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "miqctl.yaml", "Path to write the configuration file")

	return cmd
}
