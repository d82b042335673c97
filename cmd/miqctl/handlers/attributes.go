package handlers

import (
	"context"
	"fmt"

	"github.com/miqops/miqctl/internal/config"
	"github.com/miqops/miqctl/internal/platform/miq"
)

// AttributesApply adds or updates the configured custom attributes on the
// target entity. The entity defaults to the configured provider.
func AttributesApply(ctx context.Context, configPath, entityType, entityName string, verbose bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	desired, err := attributeRecords(cfg, entityName)
	if err != nil {
		return err
	}
	if entityName == "" {
		entityName = cfg.Provider.Name
	}

	log := newLogger("attributes", verbose)
	defer func() { _ = log.Sync() }()

	timeouts := loadTimeouts()
	gw, err := newGateway(cfg, timeouts, log)
	if err != nil {
		return err
	}

	result, err := newAttributeReconciler(gw, log).Apply(ctx, entityType, entityName, desired)
	if err != nil {
		return err
	}

	fmt.Print(renderAttributesResult(result))
	return nil
}

// AttributesDelete removes the configured custom attributes from the
// target entity, leaving unlisted attributes untouched.
func AttributesDelete(ctx context.Context, configPath, entityType, entityName string, verbose bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	targets, err := attributeRecords(cfg, entityName)
	if err != nil {
		return err
	}
	if entityName == "" {
		entityName = cfg.Provider.Name
	}

	log := newLogger("attributes", verbose)
	defer func() { _ = log.Sync() }()

	timeouts := loadTimeouts()
	gw, err := newGateway(cfg, timeouts, log)
	if err != nil {
		return err
	}

	result, err := newAttributeReconciler(gw, log).Delete(ctx, entityType, entityName, targets)
	if err != nil {
		return err
	}

	fmt.Print(renderAttributesDeleteResult(result))
	return nil
}

// attributeRecords converts the configured attribute list to API records.
func attributeRecords(cfg *config.Config, entityName string) ([]miq.CustomAttribute, error) {
	if len(cfg.CustomAttributes) == 0 {
		return nil, fmt.Errorf("no custom_attributes configured")
	}
	if entityName == "" && cfg.Provider.Name == "" {
		return nil, fmt.Errorf("missing required argument: entity-name")
	}
	records := make([]miq.CustomAttribute, len(cfg.CustomAttributes))
	for i, ca := range cfg.CustomAttributes {
		records[i] = miq.CustomAttribute{
			Name:    ca.Name,
			Section: ca.Section,
			Value:   ca.Value,
		}
	}
	return records, nil
}
