package config

import "fmt"

// Provider states.
const (
	StatePresent = "present"
	StateAbsent  = "absent"
)

// Short provider type names accepted in configuration files.
const (
	TypeOpenShiftOrigin     = "openshift-origin"
	TypeOpenShiftEnterprise = "openshift-enterprise"
	TypeAmazon              = "amazon"
)

// DefaultOpenShiftPort is used when an openshift provider omits the port.
const DefaultOpenShiftPort = 8443

// DefaultSection is the section assigned to custom attributes that omit one.
const DefaultSection = "metadata"

// providerAPITypes maps short type names to the server-side provider
// classes.
var providerAPITypes = map[string]string{
	TypeOpenShiftOrigin:     "ManageIQ::Providers::Openshift::ContainerManager",
	TypeOpenShiftEnterprise: "ManageIQ::Providers::OpenshiftEnterprise::ContainerManager",
	TypeAmazon:              "ManageIQ::Providers::Amazon::CloudManager",
}

// Config is the full desired state for one invocation.
type Config struct {
	URL          string `mapstructure:"url"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	VerifySSL    *bool  `mapstructure:"verify_ssl"`
	CABundlePath string `mapstructure:"ca_bundle_path"`

	Provider         ProviderConfig          `mapstructure:"provider"`
	CustomAttributes []CustomAttributeConfig `mapstructure:"custom_attributes"`
}

// ProviderConfig is the desired state of the provider record.
type ProviderConfig struct {
	Name   string `mapstructure:"name"`
	Type   string `mapstructure:"type"`
	State  string `mapstructure:"state"`
	Zone   string `mapstructure:"zone"`
	Region string `mapstructure:"region"`

	// Openshift connection details.
	Hostname string `mapstructure:"hostname"`
	Port     int    `mapstructure:"port"`
	Token    string `mapstructure:"token"`

	// Amazon credentials.
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`

	Metrics MetricsConfig `mapstructure:"metrics"`
}

// MetricsConfig enables the metrics endpoint on container providers.
type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Hostname string `mapstructure:"hostname"`
	Port     int    `mapstructure:"port"`
}

// CustomAttributeConfig is one desired custom attribute.
type CustomAttributeConfig struct {
	Name    string `mapstructure:"name"`
	Section string `mapstructure:"section"`
	Value   string `mapstructure:"value"`
}

// ShouldVerifySSL reports the verify_ssl toggle, defaulting to true when
// the config file leaves it unset.
func (c *Config) ShouldVerifySSL() bool {
	if c.VerifySSL == nil {
		return true
	}
	return *c.VerifySSL
}

// APIType resolves the short provider type to the server-side class name.
func (p *ProviderConfig) APIType() (string, error) {
	t, ok := providerAPITypes[p.Type]
	if !ok {
		return "", fmt.Errorf("unknown provider type %q", p.Type)
	}
	return t, nil
}

// IsOpenShift reports whether the provider is one of the container types.
func (p *ProviderConfig) IsOpenShift() bool {
	return p.Type == TypeOpenShiftOrigin || p.Type == TypeOpenShiftEnterprise
}
