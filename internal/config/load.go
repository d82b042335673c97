package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// envDefaults are the connection fields that may come from the environment
// instead of the config file.
type envDefaults struct {
	URL      string `env:"MIQ_URL"`
	Username string `env:"MIQ_USERNAME"`
	Password string `env:"MIQ_PASSWORD"`
}

// LoadFile reads and parses the configuration from a YAML file, applies
// environment defaults, and validates the result.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.applyEnvDefaults(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvDefaults fills blank connection fields from MIQ_URL,
// MIQ_USERNAME, and MIQ_PASSWORD. A .env file in the working directory is
// honored when present.
func (c *Config) applyEnvDefaults() error {
	_ = godotenv.Load()

	var defaults envDefaults
	if err := env.Parse(&defaults); err != nil {
		return fmt.Errorf("failed to read environment defaults: %w", err)
	}

	if c.URL == "" {
		c.URL = defaults.URL
	}
	if c.Username == "" {
		c.Username = defaults.Username
	}
	if c.Password == "" {
		c.Password = defaults.Password
	}
	return nil
}

// applyDefaults fills the optional fields that carry defaults.
func (c *Config) applyDefaults() {
	if c.Provider.State == "" {
		c.Provider.State = StatePresent
	}
	if c.Provider.Zone == "" {
		c.Provider.Zone = "default"
	}
	if c.Provider.Port == 0 && c.Provider.IsOpenShift() {
		c.Provider.Port = DefaultOpenShiftPort
	}
	for i := range c.CustomAttributes {
		if c.CustomAttributes[i].Section == "" {
			c.CustomAttributes[i].Section = DefaultSection
		}
	}
}
