package miq

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	refs []Ref
	err  error
}

func (s *stubLister) ListCollection(_ context.Context, _ string) ([]Ref, error) {
	return s.refs, s.err
}

func TestFindByName_ReturnsFirstMatch(t *testing.T) {
	lister := &stubLister{refs: []Ref{
		{ID: 1, Name: "other"},
		{ID: 2, Name: "openshift01"},
		{ID: 3, Name: "openshift01"},
	}}

	ref, err := FindByName(context.Background(), lister, CollectionProviders, "openshift01")

	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, ID(2), ref.ID)
}

func TestFindByName_MissingNameIsNilNotError(t *testing.T) {
	lister := &stubLister{refs: []Ref{{ID: 1, Name: "other"}}}

	ref, err := FindByName(context.Background(), lister, CollectionProviders, "openshift01")

	require.NoError(t, err)
	assert.Nil(t, ref)
}

func TestFindByName_PropagatesListError(t *testing.T) {
	lister := &stubLister{err: errors.New("boom")}

	_, err := FindByName(context.Background(), lister, CollectionZones, "default")

	require.Error(t, err)
}
