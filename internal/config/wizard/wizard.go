package wizard

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/miqops/miqctl/internal/config"
)

// Result holds the user's choices from the wizard.
type Result struct {
	URL      string
	Username string
	Password string

	ProviderName string
	ProviderType string
	Zone         string

	// Openshift answers.
	Hostname       string
	Port           string
	Token          string
	MetricsEnabled bool
	MetricsHost    string
	MetricsPort    string

	// Amazon answers.
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// Run runs the configuration wizard.
func Run(ctx context.Context) (*Result, error) {
	result := &Result{
		// Defaults
		ProviderType: config.TypeOpenShiftEnterprise,
		Zone:         "default",
		Port:         strconv.Itoa(config.DefaultOpenShiftPort),
	}

	form := huh.NewForm(
		// Management server connection
		huh.NewGroup(
			huh.NewInput().
				Title("Management server URL").
				Description("Base URL of the ManageIQ appliance").
				Placeholder("https://miq.example.com").
				Value(&result.URL).
				Validate(validateURL),
			huh.NewInput().
				Title("Username").
				Value(&result.Username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&result.Password).
				Validate(required("password")),
		),

		// Provider identity
		huh.NewGroup(
			huh.NewInput().
				Title("Provider name").
				Description("Name the provider record will carry on the server").
				Placeholder("openshift01").
				Value(&result.ProviderName).
				Validate(required("provider name")),
			huh.NewSelect[string]().
				Title("Provider type").
				Options(
					huh.NewOption("OpenShift Enterprise", config.TypeOpenShiftEnterprise),
					huh.NewOption("OpenShift Origin", config.TypeOpenShiftOrigin),
					huh.NewOption("Amazon EC2", config.TypeAmazon),
				).
				Value(&result.ProviderType),
			huh.NewInput().
				Title("Zone").
				Description("Server zone the provider is assigned to").
				Value(&result.Zone).
				Validate(required("zone")),
		),

		// Openshift connection details
		huh.NewGroup(
			huh.NewInput().
				Title("API hostname").
				Placeholder("os01.example.com").
				Value(&result.Hostname).
				Validate(required("hostname")),
			huh.NewInput().
				Title("API port").
				Value(&result.Port).
				Validate(validatePort),
			huh.NewInput().
				Title("Bearer token").
				EchoMode(huh.EchoModePassword).
				Value(&result.Token).
				Validate(required("token")),
			huh.NewConfirm().
				Title("Enable the metrics endpoint?").
				Value(&result.MetricsEnabled),
		).WithHideFunc(func() bool { return result.ProviderType == config.TypeAmazon }),

		// Metrics endpoint
		huh.NewGroup(
			huh.NewInput().
				Title("Metrics hostname").
				Placeholder("metrics.example.com").
				Value(&result.MetricsHost).
				Validate(required("metrics hostname")),
			huh.NewInput().
				Title("Metrics port").
				Value(&result.MetricsPort).
				Validate(validatePort),
		).WithHideFunc(func() bool {
			return result.ProviderType == config.TypeAmazon || !result.MetricsEnabled
		}),

		// Amazon credentials
		huh.NewGroup(
			huh.NewInput().
				Title("Access key ID").
				Value(&result.AccessKeyID).
				Validate(required("access key id")),
			huh.NewInput().
				Title("Secret access key").
				EchoMode(huh.EchoModePassword).
				Value(&result.SecretAccessKey).
				Validate(required("secret access key")),
			huh.NewInput().
				Title("Region").
				Placeholder("us-east-1").
				Value(&result.Region).
				Validate(required("region")),
		).WithHideFunc(func() bool { return result.ProviderType != config.TypeAmazon }),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a Config.
func (r *Result) ToConfig() *config.Config {
	cfg := &config.Config{
		URL:      r.URL,
		Username: r.Username,
		Password: r.Password,
		Provider: config.ProviderConfig{
			Name:  r.ProviderName,
			Type:  r.ProviderType,
			State: config.StatePresent,
			Zone:  r.Zone,
		},
	}

	if r.ProviderType == config.TypeAmazon {
		cfg.Provider.AccessKeyID = r.AccessKeyID
		cfg.Provider.SecretAccessKey = r.SecretAccessKey
		cfg.Provider.Region = r.Region
		return cfg
	}

	cfg.Provider.Hostname = r.Hostname
	cfg.Provider.Port, _ = strconv.Atoi(r.Port)
	cfg.Provider.Token = r.Token
	if r.MetricsEnabled {
		cfg.Provider.Metrics = config.MetricsConfig{
			Enabled:  true,
			Hostname: r.MetricsHost,
		}
		cfg.Provider.Metrics.Port, _ = strconv.Atoi(r.MetricsPort)
	}
	return cfg
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("enter a full URL including scheme, e.g. https://miq.example.com")
	}
	return nil
}

func validatePort(s string) error {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("enter a port between 1 and 65535")
	}
	return nil
}
