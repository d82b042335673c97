package testing

import (
	"github.com/miqops/miqctl/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with sensible defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			URL:      "https://miq.example.com",
			Username: "admin",
			Password: "smartvm",
			Provider: config.ProviderConfig{
				Name:  "openshift01",
				Type:  config.TypeOpenShiftEnterprise,
				State: config.StatePresent,
				Zone:  "default",
			},
		},
	}
}

// WithProviderName sets the provider name.
func (b *ConfigBuilder) WithProviderName(name string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Provider.Name = name
	return newBuilder
}

// WithState sets the desired provider state.
func (b *ConfigBuilder) WithState(state string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Provider.State = state
	return newBuilder
}

// WithZone sets the zone assignment.
func (b *ConfigBuilder) WithZone(zone string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Provider.Zone = zone
	return newBuilder
}

// WithOpenShift configures an OpenShift provider endpoint.
func (b *ConfigBuilder) WithOpenShift(hostname string, port int, token string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Provider.Type = config.TypeOpenShiftEnterprise
	newBuilder.cfg.Provider.Hostname = hostname
	newBuilder.cfg.Provider.Port = port
	newBuilder.cfg.Provider.Token = token
	return newBuilder
}

// WithMetrics enables the metrics endpoint.
func (b *ConfigBuilder) WithMetrics(hostname string, port int) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Provider.Metrics = config.MetricsConfig{
		Enabled:  true,
		Hostname: hostname,
		Port:     port,
	}
	return newBuilder
}

// WithAmazon configures an Amazon provider with its credentials.
func (b *ConfigBuilder) WithAmazon(accessKeyID, secretAccessKey, region string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Provider.Type = config.TypeAmazon
	newBuilder.cfg.Provider.Hostname = ""
	newBuilder.cfg.Provider.Port = 0
	newBuilder.cfg.Provider.Token = ""
	newBuilder.cfg.Provider.AccessKeyID = accessKeyID
	newBuilder.cfg.Provider.SecretAccessKey = secretAccessKey
	newBuilder.cfg.Provider.Region = region
	return newBuilder
}

// WithCustomAttributes sets the desired attribute set.
func (b *ConfigBuilder) WithCustomAttributes(attrs ...config.CustomAttributeConfig) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.CustomAttributes = attrs
	return newBuilder
}

// Build returns the constructed config.
func (b *ConfigBuilder) Build() config.Config {
	return b.cfg
}

func (b *ConfigBuilder) clone() *ConfigBuilder {
	cloned := b.cfg
	cloned.CustomAttributes = append([]config.CustomAttributeConfig(nil), b.cfg.CustomAttributes...)
	return &ConfigBuilder{cfg: cloned}
}
