package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/miqops/miqctl/internal/attributes"
	"github.com/miqops/miqctl/internal/config"
	"github.com/miqops/miqctl/internal/platform/miq"
	"github.com/miqops/miqctl/internal/provider"
	miqtesting "github.com/miqops/miqctl/internal/testing"
)

func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origLoadConfigFile := loadConfigFile
	origLoadTimeouts := loadTimeouts
	origNewLogger := newLogger
	origNewGateway := newGateway
	origNewConverger := newConverger
	origNewAttributeReconciler := newAttributeReconciler
	origFileExists := fileExists
	origStdoutIsTerminal := stdoutIsTerminal
	origRunWizard := runWizard
	origWriteConfig := writeConfig

	t.Cleanup(func() {
		loadConfigFile = origLoadConfigFile
		loadTimeouts = origLoadTimeouts
		newLogger = origNewLogger
		newGateway = origNewGateway
		newConverger = origNewConverger
		newAttributeReconciler = origNewAttributeReconciler
		fileExists = origFileExists
		stdoutIsTerminal = origStdoutIsTerminal
		runWizard = origRunWizard
		writeConfig = origWriteConfig
	})
}

// stubConverger implements Converger with canned results.
type stubConverger struct {
	applyResult  *provider.ApplyResult
	applyErr     error
	deleteResult *provider.DeleteResult
	deleteErr    error

	applyCalls  int
	deleteCalls int
	lastRequest provider.ApplyRequest
}

func (s *stubConverger) Apply(_ context.Context, req provider.ApplyRequest) (*provider.ApplyResult, error) {
	s.applyCalls++
	s.lastRequest = req
	return s.applyResult, s.applyErr
}

func (s *stubConverger) Delete(_ context.Context, _ string) (*provider.DeleteResult, error) {
	s.deleteCalls++
	return s.deleteResult, s.deleteErr
}

// stubReconciler implements AttributeReconciler with canned results.
type stubReconciler struct {
	applyResult  *attributes.Result
	deleteResult *attributes.DeleteResult

	lastEntityType string
	lastEntityName string
	lastRecords    []miq.CustomAttribute
}

func (s *stubReconciler) Apply(_ context.Context, entityType, entityName string, desired []miq.CustomAttribute) (*attributes.Result, error) {
	s.lastEntityType = entityType
	s.lastEntityName = entityName
	s.lastRecords = desired
	return s.applyResult, nil
}

func (s *stubReconciler) Delete(_ context.Context, entityType, entityName string, targets []miq.CustomAttribute) (*attributes.DeleteResult, error) {
	s.lastEntityType = entityType
	s.lastEntityName = entityName
	s.lastRecords = targets
	return s.deleteResult, nil
}

func stubHandlerConfig() *config.Config {
	cfg := miqtesting.NewConfigBuilder().
		WithProviderName("openshift01").
		WithOpenShift("os01.example.com", 8443, "secret-token").
		WithCustomAttributes(config.CustomAttributeConfig{
			Name: "ca1", Section: "metadata", Value: "value 1",
		}).
		Build()
	return &cfg
}

func stubEnvironment(t *testing.T, cfg *config.Config, conv *stubConverger, rec *stubReconciler) {
	t.Helper()
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) { return cfg, nil }
	loadTimeouts = config.LoadTimeouts
	newLogger = func(_ string, _ bool) *zap.Logger { return zap.NewNop() }
	newGateway = func(_ *config.Config, _ *config.Timeouts, _ *zap.Logger) (miq.Gateway, error) {
		return new(miqtesting.MockGateway), nil
	}
	newConverger = func(_ miq.Gateway, _ *zap.Logger, _ *config.Timeouts) Converger { return conv }
	newAttributeReconciler = func(_ miq.Gateway, _ *zap.Logger) AttributeReconciler { return rec }
}

func TestApply_PresentStateConverges(t *testing.T) {
	conv := &stubConverger{
		applyResult: &provider.ApplyResult{
			ProviderID: 266,
			Changed:    true,
			Msg:        "Successful addition of openshift01 provider. Authentication: All Valid",
		},
	}
	stubEnvironment(t, stubHandlerConfig(), conv, nil)

	err := Apply(context.Background(), "miqctl.yaml", false)

	require.NoError(t, err)
	assert.Equal(t, 1, conv.applyCalls)
	assert.Equal(t, 0, conv.deleteCalls)
	assert.Equal(t, "openshift01", conv.lastRequest.Name)
	assert.Equal(t, "ManageIQ::Providers::OpenshiftEnterprise::ContainerManager", conv.lastRequest.Type)
	assert.Equal(t, "default", conv.lastRequest.ZoneName)
	require.Len(t, conv.lastRequest.ConnectionConfigurations, 1)
}

func TestApply_AbsentStateDeletes(t *testing.T) {
	// Absent needs only the name; connection details may be missing.
	built := miqtesting.NewConfigBuilder().
		WithProviderName("openshift01").
		WithState(config.StateAbsent).
		Build()
	cfg := &built

	conv := &stubConverger{
		deleteResult: &provider.DeleteResult{Changed: true, Msg: "deleted"},
	}
	stubEnvironment(t, cfg, conv, nil)

	err := Apply(context.Background(), "miqctl.yaml", false)

	require.NoError(t, err)
	assert.Equal(t, 0, conv.applyCalls)
	assert.Equal(t, 1, conv.deleteCalls)
}

func TestApply_InvalidProviderConfigFails(t *testing.T) {
	cfg := stubHandlerConfig()
	cfg.Provider.Token = ""

	conv := &stubConverger{}
	stubEnvironment(t, cfg, conv, nil)

	err := Apply(context.Background(), "miqctl.yaml", false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires hostname, port, and token")
	assert.Equal(t, 0, conv.applyCalls)
}

func TestApply_ConvergeErrorPropagates(t *testing.T) {
	conv := &stubConverger{applyErr: errors.New("boom")}
	stubEnvironment(t, stubHandlerConfig(), conv, nil)

	err := Apply(context.Background(), "miqctl.yaml", false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestDelete_IgnoresStateField(t *testing.T) {
	conv := &stubConverger{
		deleteResult: &provider.DeleteResult{Changed: false, Msg: "Provider openshift01 doesn't exist"},
	}
	stubEnvironment(t, stubHandlerConfig(), conv, nil)

	err := Delete(context.Background(), "miqctl.yaml", false)

	require.NoError(t, err)
	assert.Equal(t, 1, conv.deleteCalls)
	assert.Equal(t, 0, conv.applyCalls)
}

func TestLoadConfig_EmptyPathWithoutDefaultFile(t *testing.T) {
	saveAndRestoreFactories(t)

	tmp := t.TempDir()
	t.Chdir(tmp)

	_, err := loadConfig("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
	assert.Contains(t, err.Error(), "miqctl init")
}

func TestAttributesApply_DefaultsToProviderName(t *testing.T) {
	rec := &stubReconciler{
		applyResult: &attributes.Result{
			Changed: true,
			Msg:     "Successfully set the custom attributes to openshift01 provider",
		},
	}
	stubEnvironment(t, stubHandlerConfig(), nil, rec)

	err := AttributesApply(context.Background(), "miqctl.yaml", "provider", "", false)

	require.NoError(t, err)
	assert.Equal(t, "provider", rec.lastEntityType)
	assert.Equal(t, "openshift01", rec.lastEntityName)
	require.Len(t, rec.lastRecords, 1)
	assert.Equal(t, miq.CustomAttribute{Name: "ca1", Section: "metadata", Value: "value 1"}, rec.lastRecords[0])
}

func TestAttributesApply_ExplicitEntityNameWins(t *testing.T) {
	rec := &stubReconciler{
		applyResult: &attributes.Result{Changed: false, Msg: "no change"},
	}
	stubEnvironment(t, stubHandlerConfig(), nil, rec)

	err := AttributesApply(context.Background(), "miqctl.yaml", "vm", "vm01", false)

	require.NoError(t, err)
	assert.Equal(t, "vm", rec.lastEntityType)
	assert.Equal(t, "vm01", rec.lastEntityName)
}

func TestAttributesApply_NoConfiguredAttributesFails(t *testing.T) {
	cfg := stubHandlerConfig()
	cfg.CustomAttributes = nil
	stubEnvironment(t, cfg, nil, &stubReconciler{})

	err := AttributesApply(context.Background(), "miqctl.yaml", "provider", "", false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no custom_attributes configured")
}

func TestAttributesDelete_PassesTargets(t *testing.T) {
	rec := &stubReconciler{
		deleteResult: &attributes.DeleteResult{Changed: true, Msg: "deleted"},
	}
	stubEnvironment(t, stubHandlerConfig(), nil, rec)

	err := AttributesDelete(context.Background(), "miqctl.yaml", "provider", "", false)

	require.NoError(t, err)
	assert.Equal(t, "openshift01", rec.lastEntityName)
	require.Len(t, rec.lastRecords, 1)
}
