package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miqops/miqctl/internal/config"
	"github.com/miqops/miqctl/internal/platform/miq"
)

func TestBuildConnectionConfigurations_OpenShift(t *testing.T) {
	p := &config.ProviderConfig{
		Type:     config.TypeOpenShiftEnterprise,
		Hostname: "os01.example.com",
		Port:     8443,
		Token:    "secret-token",
	}

	configurations := BuildConnectionConfigurations(p)

	require.Len(t, configurations, 1)
	assert.Equal(t, miq.Endpoint{Role: "default", Hostname: "os01.example.com", Port: 8443}, configurations[0].Endpoint)
	assert.Equal(t, miq.Authentication{AuthType: "bearer", AuthKey: "secret-token"}, configurations[0].Authentication)
}

func TestBuildConnectionConfigurations_OpenShiftWithMetrics(t *testing.T) {
	p := &config.ProviderConfig{
		Type:     config.TypeOpenShiftOrigin,
		Hostname: "os01.example.com",
		Port:     8443,
		Token:    "secret-token",
		Metrics: config.MetricsConfig{
			Enabled:  true,
			Hostname: "metrics.example.com",
			Port:     443,
		},
	}

	configurations := BuildConnectionConfigurations(p)

	require.Len(t, configurations, 2)
	metrics := configurations[1]
	assert.Equal(t, "hawkular", metrics.Endpoint.Role)
	assert.Equal(t, "metrics.example.com", metrics.Endpoint.Hostname)
	assert.Equal(t, 443, metrics.Endpoint.Port)
	// The metrics endpoint reuses the provider token.
	assert.Equal(t, "hawkular", metrics.Authentication.AuthType)
	assert.Equal(t, "secret-token", metrics.Authentication.AuthKey)
}

func TestBuildConnectionConfigurations_Amazon(t *testing.T) {
	p := &config.ProviderConfig{
		Type:            config.TypeAmazon,
		AccessKeyID:     "AKIA123",
		SecretAccessKey: "secret",
		Region:          "us-east-1",
	}

	configurations := BuildConnectionConfigurations(p)

	require.Len(t, configurations, 1)
	assert.Equal(t, miq.Endpoint{Role: "default"}, configurations[0].Endpoint)
	assert.Equal(t, miq.Authentication{
		AuthType: "default",
		Userid:   "AKIA123",
		Password: "secret",
	}, configurations[0].Authentication)
}
