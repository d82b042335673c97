// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/miqops/miqctl/internal/attributes"
	"github.com/miqops/miqctl/internal/config"
	"github.com/miqops/miqctl/internal/logging"
	"github.com/miqops/miqctl/internal/platform/miq"
	"github.com/miqops/miqctl/internal/provider"
)

const defaultConfigFile = "miqctl.yaml"

// Converger interface for testing - matches provider.Converger.
type Converger interface {
	Apply(ctx context.Context, req provider.ApplyRequest) (*provider.ApplyResult, error)
	Delete(ctx context.Context, name string) (*provider.DeleteResult, error)
}

// AttributeReconciler interface for testing - matches
// attributes.Reconciler.
type AttributeReconciler interface {
	Apply(ctx context.Context, entityType, entityName string, desired []miq.CustomAttribute) (*attributes.Result, error)
	Delete(ctx context.Context, entityType, entityName string, targets []miq.CustomAttribute) (*attributes.DeleteResult, error)
}

// Factory function variables - can be replaced in tests for dependency
// injection.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// loadTimeouts reads the poll and HTTP timing knobs from the
	// environment.
	loadTimeouts = config.LoadTimeouts

	// newLogger constructs the handler logger.
	newLogger = logging.NewLogger

	// newGateway creates the management API client.
	newGateway = func(cfg *config.Config, timeouts *config.Timeouts, log *zap.Logger) (miq.Gateway, error) {
		tlsCfg, err := miq.NewTLSConfig(cfg.ShouldVerifySSL(), cfg.CABundlePath)
		if err != nil {
			return nil, err
		}
		return miq.NewRealClient(cfg.URL, cfg.Username, cfg.Password,
			miq.WithTLSConfig(tlsCfg),
			miq.WithTimeout(timeouts.HTTPTimeout),
			miq.WithLogger(log)), nil
	}

	// newConverger creates the provider converger.
	newConverger = func(gw miq.Gateway, log *zap.Logger, timeouts *config.Timeouts) Converger {
		return provider.NewConverger(gw, log, timeouts)
	}

	// newAttributeReconciler creates the custom-attribute reconciler.
	newAttributeReconciler = func(gw miq.Gateway, log *zap.Logger) AttributeReconciler {
		return attributes.NewReconciler(gw, log)
	}
)

// Apply converges the configured provider record on the management server.
//
// The desired state comes from the configuration file. When the provider's
// state is absent, apply removes it instead; otherwise the provider is
// created or updated as needed and the credential validation of the
// affected authtypes is awaited before the verdict is printed.
func Apply(ctx context.Context, configPath string, verbose bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	// Delete needs only the provider name, so the full provider checks run
	// on the present path alone.
	if cfg.Provider.State != config.StateAbsent {
		if err := cfg.ValidateProvider(); err != nil {
			return err
		}
	}

	log := newLogger("apply", verbose)
	defer func() { _ = log.Sync() }()

	timeouts := loadTimeouts()
	gw, err := newGateway(cfg, timeouts, log)
	if err != nil {
		return err
	}
	conv := newConverger(gw, log, timeouts)

	if cfg.Provider.State == config.StateAbsent {
		result, err := conv.Delete(ctx, cfg.Provider.Name)
		if err != nil {
			return err
		}
		fmt.Print(renderDeleteResult(result))
		return nil
	}

	apiType, err := cfg.Provider.APIType()
	if err != nil {
		return err
	}
	result, err := conv.Apply(ctx, provider.ApplyRequest{
		Name:                     cfg.Provider.Name,
		Type:                     apiType,
		ZoneName:                 cfg.Provider.Zone,
		Region:                   cfg.Provider.Region,
		ConnectionConfigurations: provider.BuildConnectionConfigurations(&cfg.Provider),
	})
	if err != nil {
		return err
	}

	fmt.Print(renderApplyResult(result))
	return nil
}

// loadConfig loads and validates the configuration. If configPath is
// empty, it looks for miqctl.yaml in the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		configPath = defaultConfigFile
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'miqctl init' to create one", err)
		}
	}
	return loadConfigFile(configPath)
}
