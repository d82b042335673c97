package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/miqops/miqctl/internal/platform/miq"
)

// MockGateway is a mock implementation of the miq.Gateway interface. It
// can be shared by every test that drives the converger or reconciler
// against a scripted server.
type MockGateway struct {
	mock.Mock
}

var _ miq.Gateway = (*MockGateway)(nil)

// ListCollection returns the scripted name/id pairs for a collection.
func (m *MockGateway) ListCollection(ctx context.Context, collection string) ([]miq.Ref, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]miq.Ref), args.Error(1)
}

// GetProviderEndpoints returns the scripted endpoint view of a provider.
func (m *MockGateway) GetProviderEndpoints(ctx context.Context, id miq.ID) (*miq.ProviderEndpoints, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*miq.ProviderEndpoints), args.Error(1)
}

// GetProviderAuthentications returns the scripted validation records.
func (m *MockGateway) GetProviderAuthentications(ctx context.Context, id miq.ID) ([]miq.ValidationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]miq.ValidationRecord), args.Error(1)
}

// CreateProvider returns the scripted id for the created provider.
func (m *MockGateway) CreateProvider(ctx context.Context, req miq.CreateProviderRequest) (miq.ID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(miq.ID), args.Error(1)
}

// EditProvider records the scripted edit outcome.
func (m *MockGateway) EditProvider(ctx context.Context, id miq.ID, req miq.EditProviderRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

// DeleteProvider returns the scripted delete response.
func (m *MockGateway) DeleteProvider(ctx context.Context, id miq.ID) (*miq.DeleteResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*miq.DeleteResponse), args.Error(1)
}

// ListCustomAttributes returns the scripted attribute set of an entity.
func (m *MockGateway) ListCustomAttributes(ctx context.Context, collection string, id miq.ID) ([]miq.CustomAttribute, error) {
	args := m.Called(ctx, collection, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]miq.CustomAttribute), args.Error(1)
}

// AddCustomAttributes returns the scripted records for an add write.
func (m *MockGateway) AddCustomAttributes(ctx context.Context, collection string, id miq.ID, resources []miq.CustomAttribute) ([]miq.CustomAttribute, error) {
	args := m.Called(ctx, collection, id, resources)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]miq.CustomAttribute), args.Error(1)
}

// EditCustomAttributes returns the scripted records for an edit write.
func (m *MockGateway) EditCustomAttributes(ctx context.Context, collection string, id miq.ID, resources []miq.CustomAttribute) ([]miq.CustomAttribute, error) {
	args := m.Called(ctx, collection, id, resources)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]miq.CustomAttribute), args.Error(1)
}

// DeleteCustomAttributes records the scripted delete outcome.
func (m *MockGateway) DeleteCustomAttributes(ctx context.Context, collection string, id miq.ID, resources []miq.CustomAttribute) error {
	args := m.Called(ctx, collection, id, resources)
	return args.Error(0)
}
