package commands

import (
	"github.com/spf13/cobra"

	"github.com/miqops/miqctl/cmd/miqctl/handlers"
)

// Attributes returns the parent command for custom-attribute operations.
func Attributes() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attributes",
		Short: "Manage custom attributes on an entity",
		Long: `Manage the custom attributes attached to a provider or vm.

Attributes are identified by name and section: two attributes sharing a
name in different sections are distinct. The attribute set comes from the
custom_attributes list in the configuration file.`,
	}

	cmd.AddCommand(attributesApply())
	cmd.AddCommand(attributesDelete())

	return cmd
}

func attributesApply() *cobra.Command {
	var (
		configPath string
		entityType string
		entityName string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Add or update custom attributes",
		Long: `Add or update the configured custom attributes on an entity.

Attributes missing on the entity are added and attributes whose value
differs are updated. Attributes not listed in the configuration are left
untouched.

Examples:
  # Apply the attributes to the provider named in the config
  miqctl attributes apply

  # Apply the attributes to a vm instead
  miqctl attributes apply --entity-type vm --entity-name vm01`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.AttributesApply(cmd.Context(), configPath, entityType, entityName, verbose)
		},
	}

	addAttributesFlags(cmd, &configPath, &entityType, &entityName, &verbose)
	return cmd
}

func attributesDelete() *cobra.Command {
	var (
		configPath string
		entityType string
		entityName string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete custom attributes",
		Long: `Delete the configured custom attributes from an entity.

Only the attributes listed in the configuration are removed; every other
attribute on the entity remains present. Listed attributes that do not
exist on the entity are skipped.

Examples:
  # Delete the listed attributes from the provider named in the config
  miqctl attributes delete`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.AttributesDelete(cmd.Context(), configPath, entityType, entityName, verbose)
		},
	}

	addAttributesFlags(cmd, &configPath, &entityType, &entityName, &verbose)
	return cmd
}

func addAttributesFlags(cmd *cobra.Command, configPath, entityType, entityName *string, verbose *bool) {
	cmd.Flags().StringVarP(configPath, "config", "c", "", "Path to configuration file (default: miqctl.yaml)")
	cmd.Flags().StringVar(entityType, "entity-type", "provider", "Entity type the attributes attach to (provider or vm)")
	cmd.Flags().StringVar(entityName, "entity-name", "", "Entity name (default: the provider name from the config)")
	cmd.Flags().BoolVarP(verbose, "verbose", "v", false, "Enable debug logging")
}
