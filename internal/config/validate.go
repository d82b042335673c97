package config

import "fmt"

// Validate checks the connection and entity preconditions that must hold
// before any network call is made.
func (c *Config) Validate() error {
	for _, arg := range []struct {
		name  string
		value string
	}{
		{"url", c.URL},
		{"username", c.Username},
		{"password", c.Password},
	} {
		if arg.value == "" {
			return fmt.Errorf("missing required argument: %s", arg.name)
		}
	}

	if c.Provider.Name == "" {
		return fmt.Errorf("missing required argument: provider.name")
	}

	if c.Provider.State != StatePresent && c.Provider.State != StateAbsent {
		return fmt.Errorf("provider.state must be %q or %q, got %q", StatePresent, StateAbsent, c.Provider.State)
	}

	return nil
}

// ValidateProvider checks the conditional requirements of the provider
// reconciliation path. Delete needs only the entity name, so this is
// separate from Validate.
func (c *Config) ValidateProvider() error {
	p := &c.Provider

	if _, err := p.APIType(); err != nil {
		return err
	}

	if p.IsOpenShift() {
		if p.Hostname == "" || p.Port == 0 || p.Token == "" {
			return fmt.Errorf("provider type %s requires hostname, port, and token", p.Type)
		}
	}

	if p.Type == TypeAmazon {
		if p.AccessKeyID == "" || p.SecretAccessKey == "" || p.Region == "" {
			return fmt.Errorf("provider type amazon requires access_key_id, secret_access_key, and region")
		}
	}

	if p.Metrics.Enabled {
		if p.Metrics.Hostname == "" || p.Metrics.Port == 0 {
			return fmt.Errorf("metrics hostname and port must be set when metrics is enabled")
		}
	}

	return nil
}
