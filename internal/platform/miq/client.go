package miq

import (
	"context"
)

// CollectionLister lists members of a named top-level collection. It backs
// the name-to-id lookups for providers and zones.
type CollectionLister interface {
	// ListCollection returns all members of the collection with their id
	// and name. Pagination, if any, is exhausted by the implementation.
	ListCollection(ctx context.Context, collection string) ([]Ref, error)
}

// ProviderManager defines the provider read and write operations.
type ProviderManager interface {
	// GetProviderEndpoints fetches the provider's current endpoint set and
	// tracked scalar fields.
	GetProviderEndpoints(ctx context.Context, id ID) (*ProviderEndpoints, error)

	// GetProviderAuthentications fetches the per-authtype validation
	// records for the provider.
	GetProviderAuthentications(ctx context.Context, id ID) ([]ValidationRecord, error)

	// CreateProvider registers a new provider and returns its assigned id.
	CreateProvider(ctx context.Context, req CreateProviderRequest) (ID, error)

	// EditProvider replaces the provider's endpoints, zone, and region.
	EditProvider(ctx context.Context, id ID, req EditProviderRequest) error

	// DeleteProvider issues the delete action. Server-side refusal is
	// reported through DeleteResponse.Success, not an error.
	DeleteProvider(ctx context.Context, id ID) (*DeleteResponse, error)
}

// CustomAttributeManager defines the custom-attribute subcollection
// operations on an entity (provider or vm).
type CustomAttributeManager interface {
	ListCustomAttributes(ctx context.Context, collection string, id ID) ([]CustomAttribute, error)
	AddCustomAttributes(ctx context.Context, collection string, id ID, attrs []CustomAttribute) ([]CustomAttribute, error)
	EditCustomAttributes(ctx context.Context, collection string, id ID, attrs []CustomAttribute) ([]CustomAttribute, error)
	DeleteCustomAttributes(ctx context.Context, collection string, id ID, attrs []CustomAttribute) error
}

// Gateway combines all management API interfaces.
type Gateway interface {
	CollectionLister
	ProviderManager
	CustomAttributeManager
}
