package provider

import (
	"github.com/miqops/miqctl/internal/config"
	"github.com/miqops/miqctl/internal/platform/miq"
)

// Endpoint roles and authtypes used by the supported provider types.
const (
	RoleDefault = "default"
	RoleMetrics = "hawkular"
	AuthBearer  = "bearer"
	AuthMetrics = "hawkular"
	AuthDefault = "default"
)

// BuildConnectionConfigurations generates the desired endpoint set from the
// provider configuration. Openshift providers get a token-authenticated
// default endpoint plus, when metrics is enabled, the hawkular endpoint
// reusing the same token. Amazon providers get a credentials-only default
// endpoint with neither hostname nor port.
func BuildConnectionConfigurations(p *config.ProviderConfig) []miq.ConnectionConfiguration {
	if p.Type == config.TypeAmazon {
		return []miq.ConnectionConfiguration{{
			Endpoint: miq.Endpoint{Role: RoleDefault},
			Authentication: miq.Authentication{
				AuthType: AuthDefault,
				Userid:   p.AccessKeyID,
				Password: p.SecretAccessKey,
			},
		}}
	}

	configurations := []miq.ConnectionConfiguration{{
		Endpoint: miq.Endpoint{
			Role:     RoleDefault,
			Hostname: p.Hostname,
			Port:     p.Port,
		},
		Authentication: miq.Authentication{
			AuthType: AuthBearer,
			AuthKey:  p.Token,
		},
	}}

	if p.Metrics.Enabled {
		configurations = append(configurations, miq.ConnectionConfiguration{
			Endpoint: miq.Endpoint{
				Role:     RoleMetrics,
				Hostname: p.Metrics.Hostname,
				Port:     p.Metrics.Port,
			},
			Authentication: miq.Authentication{
				AuthType: AuthMetrics,
				AuthKey:  p.Token,
			},
		})
	}

	return configurations
}
