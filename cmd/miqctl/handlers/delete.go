package handlers

import (
	"context"
	"fmt"
)

// Delete removes the configured provider record from the management
// server, regardless of the state field in the configuration.
func Delete(ctx context.Context, configPath string, verbose bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log := newLogger("delete", verbose)
	defer func() { _ = log.Sync() }()

	timeouts := loadTimeouts()
	gw, err := newGateway(cfg, timeouts, log)
	if err != nil {
		return err
	}

	result, err := newConverger(gw, log, timeouts).Delete(ctx, cfg.Provider.Name)
	if err != nil {
		return err
	}

	fmt.Print(renderDeleteResult(result))
	return nil
}
