package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteFile renders the config as YAML and writes it to path. The file is
// created with owner-only permissions because it carries credentials.
func WriteFile(cfg *Config, path string) error {
	data, err := yaml.Marshal(toYAML(cfg))
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// toYAML builds the file representation explicitly so the keys match the
// mapstructure tags LoadFile decodes.
func toYAML(cfg *Config) map[string]any {
	provider := map[string]any{
		"name":  cfg.Provider.Name,
		"type":  cfg.Provider.Type,
		"state": cfg.Provider.State,
		"zone":  cfg.Provider.Zone,
	}
	if cfg.Provider.Region != "" {
		provider["region"] = cfg.Provider.Region
	}
	if cfg.Provider.Hostname != "" {
		provider["hostname"] = cfg.Provider.Hostname
		provider["port"] = cfg.Provider.Port
		provider["token"] = cfg.Provider.Token
	}
	if cfg.Provider.AccessKeyID != "" {
		provider["access_key_id"] = cfg.Provider.AccessKeyID
		provider["secret_access_key"] = cfg.Provider.SecretAccessKey
	}
	if cfg.Provider.Metrics.Enabled {
		provider["metrics"] = map[string]any{
			"enabled":  true,
			"hostname": cfg.Provider.Metrics.Hostname,
			"port":     cfg.Provider.Metrics.Port,
		}
	}

	out := map[string]any{
		"url":      cfg.URL,
		"username": cfg.Username,
		"password": cfg.Password,
		"provider": provider,
	}
	if cfg.VerifySSL != nil {
		out["verify_ssl"] = *cfg.VerifySSL
	}
	if cfg.CABundlePath != "" {
		out["ca_bundle_path"] = cfg.CABundlePath
	}
	if len(cfg.CustomAttributes) > 0 {
		attrs := make([]map[string]any, 0, len(cfg.CustomAttributes))
		for _, ca := range cfg.CustomAttributes {
			attr := map[string]any{"name": ca.Name, "value": ca.Value}
			if ca.Section != "" {
				attr["section"] = ca.Section
			}
			attrs = append(attrs, attr)
		}
		out["custom_attributes"] = attrs
	}
	return out
}
