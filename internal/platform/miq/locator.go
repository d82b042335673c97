package miq

import (
	"context"
	"fmt"
)

// Collection names used for lookups.
const (
	CollectionProviders = "providers"
	CollectionZones     = "zones"
	CollectionVMs       = "vms"
)

// FindByName resolves a human-readable name to a collection member by
// listing the collection and matching on the name field. It returns nil
// when no member matches; the first match in listing order wins (the
// server enforces name uniqueness).
func FindByName(ctx context.Context, lister CollectionLister, collection, name string) (*Ref, error) {
	refs, err := lister.ListCollection(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	for _, ref := range refs {
		if ref.Name == name {
			return &ref, nil
		}
	}
	return nil, nil
}
