package attributes

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/miqops/miqctl/internal/config"
	"github.com/miqops/miqctl/internal/platform/miq"
	"github.com/miqops/miqctl/internal/reconcile"
)

// Supported entity types an attribute set can attach to.
const (
	EntityProvider = "provider"
	EntityVM       = "vm"
)

var entityCollections = map[string]string{
	EntityProvider: miq.CollectionProviders,
	EntityVM:       miq.CollectionVMs,
}

// Result is the caller-facing outcome of an attribute apply.
type Result struct {
	Changed bool     `json:"changed"`
	Msg     string   `json:"msg"`
	Updates *Updates `json:"updates,omitempty"`
}

// Updates lists the attribute records the server reported back for the
// add and edit writes.
type Updates struct {
	Added   []miq.CustomAttribute `json:"Added"`
	Updated []miq.CustomAttribute `json:"Updated"`
}

// DeleteResult is the caller-facing outcome of an attribute delete.
type DeleteResult struct {
	Changed bool   `json:"changed"`
	Msg     string `json:"msg"`
}

// Reconciler converges custom attribute sets through a Gateway.
type Reconciler struct {
	gw  miq.Gateway
	log *zap.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(gw miq.Gateway, log *zap.Logger) *Reconciler {
	return &Reconciler{gw: gw, log: log}
}

// key is the composite attribute identity.
type key struct {
	Name    string
	Section string
}

// Apply converges the entity's custom attributes toward the desired set:
// attributes missing remotely are added, attributes whose value differs
// are edited, and attributes the request does not mention stay untouched.
func (r *Reconciler) Apply(ctx context.Context, entityType, entityName string, desired []miq.CustomAttribute) (*Result, error) {
	collection, id, err := r.locate(ctx, entityType, entityName)
	if err != nil {
		return nil, err
	}

	current, err := r.currentByKey(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	want := desiredByKey(desired)
	diff := reconcile.Diff(current, want, valueDelta)

	if diff.Empty() {
		return &Result{
			Changed: false,
			Msg:     fmt.Sprintf("The custom attributes of %s %s already exist", entityName, entityType),
		}, nil
	}

	updates := &Updates{Added: []miq.CustomAttribute{}, Updated: []miq.CustomAttribute{}}

	if len(diff.Added) > 0 {
		added, err := r.gw.AddCustomAttributes(ctx, collection, id, records(diff.Added))
		if err != nil {
			return nil, fmt.Errorf("failed to add custom attributes to %s %s: %w", entityName, entityType, err)
		}
		updates.Added = added
	}

	if len(diff.Updated) > 0 {
		edits := make([]miq.CustomAttribute, 0, len(diff.Updated))
		for k := range diff.Updated {
			edit := current[k]
			edit.Value = want[k].Value
			edits = append(edits, edit)
		}
		sortByKey(edits)
		edited, err := r.gw.EditCustomAttributes(ctx, collection, id, edits)
		if err != nil {
			return nil, fmt.Errorf("failed to update custom attributes of %s %s: %w", entityName, entityType, err)
		}
		updates.Updated = edited
	}

	r.log.Info("custom attributes reconciled",
		zap.String("entity", entityName),
		zap.Int("added", len(updates.Added)),
		zap.Int("updated", len(updates.Updated)))

	return &Result{
		Changed: true,
		Msg:     fmt.Sprintf("Successfully set the custom attributes to %s %s", entityName, entityType),
		Updates: updates,
	}, nil
}

// Delete removes the named attributes from the entity. Keys that do not
// exist remotely are skipped; attributes not named in the request remain
// present and unaffected.
func (r *Reconciler) Delete(ctx context.Context, entityType, entityName string, targets []miq.CustomAttribute) (*DeleteResult, error) {
	collection, id, err := r.locate(ctx, entityType, entityName)
	if err != nil {
		return nil, err
	}

	current, err := r.currentByKey(ctx, collection, id)
	if err != nil {
		return nil, err
	}

	var victims []miq.CustomAttribute
	for _, t := range targets {
		if existing, ok := current[keyOf(t)]; ok {
			victims = append(victims, existing)
		}
	}
	if len(victims) == 0 {
		return &DeleteResult{
			Changed: false,
			Msg:     fmt.Sprintf("No custom attributes to delete from %s %s", entityName, entityType),
		}, nil
	}
	sortByKey(victims)

	if err := r.gw.DeleteCustomAttributes(ctx, collection, id, victims); err != nil {
		return nil, fmt.Errorf("failed to delete custom attributes from %s %s: %w", entityName, entityType, err)
	}

	names := make([]string, len(victims))
	for i, v := range victims {
		names[i] = v.Name
	}
	r.log.Info("custom attributes deleted",
		zap.String("entity", entityName),
		zap.Strings("names", names))

	return &DeleteResult{
		Changed: true,
		Msg: fmt.Sprintf("Successfully deleted the following custom attributes from %s %s: %s",
			entityName, entityType, strings.Join(names, ", ")),
	}, nil
}

// locate resolves the entity type to its collection and the entity name to
// its id. A missing entity is an error: attributes cannot attach to
// nothing.
func (r *Reconciler) locate(ctx context.Context, entityType, entityName string) (string, miq.ID, error) {
	collection, ok := entityCollections[entityType]
	if !ok {
		return "", 0, fmt.Errorf("unsupported entity type %q", entityType)
	}
	ref, err := miq.FindByName(ctx, r.gw, collection, entityName)
	if err != nil {
		return "", 0, err
	}
	if ref == nil {
		return "", 0, fmt.Errorf("%s %s doesn't exist", entityType, entityName)
	}
	return collection, ref.ID, nil
}

func (r *Reconciler) currentByKey(ctx context.Context, collection string, id miq.ID) (map[key]miq.CustomAttribute, error) {
	list, err := r.gw.ListCustomAttributes(ctx, collection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get custom attributes: %w", err)
	}
	byKey := make(map[key]miq.CustomAttribute, len(list))
	for _, ca := range list {
		byKey[keyOf(ca)] = ca
	}
	return byKey, nil
}

func desiredByKey(desired []miq.CustomAttribute) map[key]miq.CustomAttribute {
	byKey := make(map[key]miq.CustomAttribute, len(desired))
	for _, ca := range desired {
		byKey[keyOf(ca)] = ca
	}
	return byKey
}

func keyOf(ca miq.CustomAttribute) key {
	section := ca.Section
	if section == "" {
		section = config.DefaultSection
	}
	return key{Name: ca.Name, Section: section}
}

func valueDelta(current, desired miq.CustomAttribute) reconcile.FieldDelta {
	delta := reconcile.FieldDelta{}
	if desired.Value != current.Value {
		delta["value"] = desired.Value
	}
	return delta
}

// records flattens a diff partition into the write payload, sorted for
// stable request bodies.
func records(partition map[key]miq.CustomAttribute) []miq.CustomAttribute {
	out := make([]miq.CustomAttribute, 0, len(partition))
	for k, ca := range partition {
		ca.Section = k.Section
		out = append(out, ca)
	}
	sortByKey(out)
	return out
}

func sortByKey(list []miq.CustomAttribute) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].Section < list[j].Section
	})
}
