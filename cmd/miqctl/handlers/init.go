package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/miqops/miqctl/internal/config"
	"github.com/miqops/miqctl/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// stdoutIsTerminal reports whether stdout is attached to a terminal.
	stdoutIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = wizard.Run

	// writeConfig writes the config to a file.
	writeConfig = config.WriteFile
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if !stdoutIsTerminal() {
		return fmt.Errorf("init is interactive and needs a terminal; write %s by hand instead", outputPath)
	}

	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg := result.ToConfig()
	if err := writeConfig(cfg, outputPath); err != nil {
		return err
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("miqctl - provider management for ManageIQ")
	fmt.Println("=========================================")
	fmt.Println()
	fmt.Println("This wizard creates a configuration file for one provider.")
	fmt.Println("Connection credentials can also come from MIQ_URL, MIQ_USERNAME,")
	fmt.Println("and MIQ_PASSWORD in the environment or a .env file.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Provider Summary")
	fmt.Println("----------------")
	fmt.Printf("  Name: %s\n", cfg.Provider.Name)
	fmt.Printf("  Type: %s\n", cfg.Provider.Type)
	fmt.Printf("  Zone: %s\n", cfg.Provider.Zone)
	if cfg.Provider.IsOpenShift() {
		fmt.Printf("  API:  %s:%d\n", cfg.Provider.Hostname, cfg.Provider.Port)
		if cfg.Provider.Metrics.Enabled {
			fmt.Printf("  Metrics: %s:%d\n", cfg.Provider.Metrics.Hostname, cfg.Provider.Metrics.Port)
		}
	}
	if cfg.Provider.Region != "" {
		fmt.Printf("  Region: %s\n", cfg.Provider.Region)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s\n", outputPath)
	fmt.Println("  2. Run 'miqctl apply' to converge the provider")
	fmt.Println()
}
