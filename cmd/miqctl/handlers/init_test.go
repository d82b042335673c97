package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miqops/miqctl/internal/config"
	"github.com/miqops/miqctl/internal/config/wizard"
)

func TestInit_RefusesWithoutTerminal(t *testing.T) {
	saveAndRestoreFactories(t)
	stdoutIsTerminal = func() bool { return false }

	err := Init(context.Background(), "miqctl.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a terminal")
}

func TestInit_WritesWizardResult(t *testing.T) {
	saveAndRestoreFactories(t)
	stdoutIsTerminal = func() bool { return true }
	fileExists = func(_ string) bool { return false }
	runWizard = func(_ context.Context) (*wizard.Result, error) {
		return &wizard.Result{
			URL:          "https://miq.example.com",
			Username:     "admin",
			Password:     "smartvm",
			ProviderName: "openshift01",
			ProviderType: config.TypeOpenShiftEnterprise,
			Zone:         "default",
			Hostname:     "os01.example.com",
			Port:         "8443",
			Token:        "secret-token",
		}, nil
	}

	var written *config.Config
	var writtenPath string
	writeConfig = func(cfg *config.Config, path string) error {
		written = cfg
		writtenPath = path
		return nil
	}

	err := Init(context.Background(), "out.yaml")

	require.NoError(t, err)
	assert.Equal(t, "out.yaml", writtenPath)
	require.NotNil(t, written)
	assert.Equal(t, "openshift01", written.Provider.Name)
	assert.Equal(t, config.StatePresent, written.Provider.State)
	assert.Equal(t, 8443, written.Provider.Port)
}

func TestInit_WizardErrorPropagates(t *testing.T) {
	saveAndRestoreFactories(t)
	stdoutIsTerminal = func() bool { return true }
	fileExists = func(_ string) bool { return false }
	runWizard = func(_ context.Context) (*wizard.Result, error) {
		return nil, assert.AnError
	}

	err := Init(context.Background(), "out.yaml")

	require.Error(t, err)
}
