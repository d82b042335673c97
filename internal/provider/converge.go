package provider

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/miqops/miqctl/internal/config"
	"github.com/miqops/miqctl/internal/platform/miq"
	"github.com/miqops/miqctl/internal/reconcile"
)

// ApplyRequest is the desired state handed to Apply.
type ApplyRequest struct {
	Name                     string
	Type                     string // server-side provider class
	ZoneName                 string
	Region                   string // empty means unset
	ConnectionConfigurations []miq.ConnectionConfiguration
}

// ApplyResult is the caller-facing outcome of a converge.
type ApplyResult struct {
	ProviderID miq.ID   `json:"provider_id,omitempty"`
	Changed    bool     `json:"changed"`
	Msg        string   `json:"msg"`
	Updates    *Updates `json:"updates,omitempty"`
}

// DeleteResult is the caller-facing outcome of a delete.
type DeleteResult struct {
	TaskID  miq.ID `json:"task_id,omitempty"`
	Changed bool   `json:"changed"`
	Msg     string `json:"msg"`
}

// Updates is the change set reported back to the caller. Endpoint keys map
// a role to its added/removed fields or changed-field subset; the tracked
// scalars (zone_id, provider_region) appear in Updated under their own
// field names.
type Updates struct {
	Added   map[string]any `json:"Added"`
	Updated map[string]any `json:"Updated"`
	Removed map[string]any `json:"Removed"`
}

// Converger reconciles provider records through a Gateway.
type Converger struct {
	gw       miq.Gateway
	log      *zap.Logger
	timeouts *config.Timeouts
}

// NewConverger creates a Converger.
func NewConverger(gw miq.Gateway, log *zap.Logger, timeouts *config.Timeouts) *Converger {
	return &Converger{gw: gw, log: log, timeouts: timeouts}
}

// endpointFields is the comparable subset of an endpoint: everything but
// the role, which serves as the diff key.
type endpointFields struct {
	Hostname string `json:"hostname,omitempty"`
	Port     int    `json:"port,omitempty"`
}

// providerDiff is the full change set between desired and remote state:
// the keyed endpoint diff plus the tracked scalar fields.
type providerDiff struct {
	endpoints reconcile.Result[string, endpointFields]
	zone      *scalarChange[miq.ID]
	region    *scalarChange[*string]
}

type scalarChange[T any] struct {
	value T
}

func (d *providerDiff) empty() bool {
	return d.endpoints.Empty() && d.zone == nil && d.region == nil
}

// payload renders the diff in the caller-facing Updates shape.
func (d *providerDiff) payload() *Updates {
	u := &Updates{
		Added:   map[string]any{},
		Updated: map[string]any{},
		Removed: map[string]any{},
	}
	for role, ep := range d.endpoints.Added {
		u.Added[role] = ep
	}
	for role, delta := range d.endpoints.Updated {
		u.Updated[role] = delta
	}
	for role, ep := range d.endpoints.Removed {
		u.Removed[role] = ep
	}
	if d.zone != nil {
		u.Updated["zone_id"] = d.zone.value
	}
	if d.region != nil {
		u.Updated["provider_region"] = d.region.value
	}
	return u
}

// Apply converges the provider named in the request: create it when
// absent, update it when its endpoints, zone, or region differ, and leave
// it untouched otherwise. After any write, the credential validation of
// the affected authtypes is awaited before the result is composed.
func (c *Converger) Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error) {
	zone, err := miq.FindByName(ctx, c.gw, miq.CollectionZones, req.ZoneName)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, fmt.Errorf("zone %q not found", req.ZoneName)
	}

	ref, err := miq.FindByName(ctx, c.gw, miq.CollectionProviders, req.Name)
	if err != nil {
		return nil, err
	}

	var (
		providerID miq.ID
		operation  string
		updates    *Updates
		prior      map[string]miq.ValidationRecord
		roles      map[string]bool
	)

	if ref != nil {
		diff, err := c.requiredUpdates(ctx, ref.ID, req, zone.ID)
		if err != nil {
			return nil, err
		}
		if diff.empty() {
			return &ApplyResult{
				Changed: false,
				Msg:     fmt.Sprintf("Provider %s already exists", req.Name),
			}, nil
		}

		prior, err = c.validationSnapshot(ctx, ref.ID)
		if err != nil {
			return nil, err
		}

		operation = "update"
		providerID = ref.ID
		updates = diff.payload()
		roles = changedRoles(diff)

		c.log.Info("updating provider",
			zap.String("name", req.Name),
			zap.Int64("id", int64(providerID)))
		if err := c.gw.EditProvider(ctx, providerID, miq.EditProviderRequest{
			Zone:                     miq.Zone{ID: zone.ID},
			ConnectionConfigurations: req.ConnectionConfigurations,
			ProviderRegion:           regionPtr(req.Region),
		}); err != nil {
			return nil, fmt.Errorf("failed to update %s provider: %w", req.Name, err)
		}
	} else {
		operation = "addition"
		prior = map[string]miq.ValidationRecord{}
		roles = map[string]bool{}
		for _, cc := range req.ConnectionConfigurations {
			roles[cc.Endpoint.Role] = true
		}

		c.log.Info("adding provider", zap.String("name", req.Name))
		providerID, err = c.gw.CreateProvider(ctx, miq.CreateProviderRequest{
			Name:                     req.Name,
			Type:                     req.Type,
			Zone:                     miq.Zone{ID: zone.ID},
			ConnectionConfigurations: req.ConnectionConfigurations,
			ProviderRegion:           regionPtr(req.Region),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add %s provider: %w", req.Name, err)
		}
	}

	authtypes := authtypesForRoles(req.ConnectionConfigurations, roles)
	ok, details, err := c.awaitValidation(ctx, providerID, prior, authtypes)
	if err != nil {
		return nil, err
	}

	var msg string
	if ok {
		msg = fmt.Sprintf("Successful %s of %s provider. Authentication: All Valid", operation, req.Name)
	} else {
		msg = fmt.Sprintf("Failed to validate provider %s after %s. Authentication: %s", req.Name, operation, details)
	}

	return &ApplyResult{
		ProviderID: providerID,
		Changed:    true,
		Msg:        msg,
		Updates:    updates,
	}, nil
}

// Delete removes the provider by name. A provider that does not exist is a
// normal no-change outcome, not an error.
func (c *Converger) Delete(ctx context.Context, name string) (*DeleteResult, error) {
	ref, err := miq.FindByName(ctx, c.gw, miq.CollectionProviders, name)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return &DeleteResult{
			Changed: false,
			Msg:     fmt.Sprintf("Provider %s doesn't exist", name),
		}, nil
	}

	c.log.Info("deleting provider", zap.String("name", name), zap.Int64("id", int64(ref.ID)))
	resp, err := c.gw.DeleteProvider(ctx, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s provider: %w", name, err)
	}
	if !resp.Success {
		c.log.Warn("server refused provider delete",
			zap.String("name", name),
			zap.String("message", resp.Message))
		return &DeleteResult{
			Changed: false,
			Msg:     fmt.Sprintf("Failed to delete %s provider", name),
		}, nil
	}

	return &DeleteResult{
		TaskID:  resp.TaskID,
		Changed: true,
		Msg:     resp.Message,
	}, nil
}

// requiredUpdates fetches the provider's remote state and diffs it against
// the request. The endpoint sets are compared by role; zone and region are
// compared as scalars.
func (c *Converger) requiredUpdates(ctx context.Context, id miq.ID, req ApplyRequest, zoneID miq.ID) (*providerDiff, error) {
	current, err := c.gw.GetProviderEndpoints(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider data: %w", err)
	}

	currentByRole := map[string]endpointFields{}
	for _, ep := range current.Endpoints {
		currentByRole[ep.Role] = endpointFields{Hostname: ep.Hostname, Port: ep.Port}
	}
	desiredByRole := map[string]endpointFields{}
	for _, cc := range req.ConnectionConfigurations {
		desiredByRole[cc.Endpoint.Role] = endpointFields{
			Hostname: cc.Endpoint.Hostname,
			Port:     cc.Endpoint.Port,
		}
	}

	diff := &providerDiff{
		endpoints: reconcile.Diff(currentByRole, desiredByRole, endpointDelta),
	}
	if current.ZoneID != zoneID {
		diff.zone = &scalarChange[miq.ID]{value: zoneID}
	}
	if current.ProviderRegion != req.Region {
		diff.region = &scalarChange[*string]{value: regionPtr(req.Region)}
	}
	return diff, nil
}

func endpointDelta(current, desired endpointFields) reconcile.FieldDelta {
	delta := reconcile.FieldDelta{}
	if desired.Hostname != current.Hostname {
		delta["hostname"] = desired.Hostname
	}
	if desired.Port != current.Port {
		delta["port"] = desired.Port
	}
	return delta
}

// changedRoles collects the endpoint roles present in the Added or Updated
// partitions. Removed roles carry no credentials to re-validate.
func changedRoles(diff *providerDiff) map[string]bool {
	roles := map[string]bool{}
	for role := range diff.endpoints.Added {
		roles[role] = true
	}
	for role := range diff.endpoints.Updated {
		roles[role] = true
	}
	return roles
}

// authtypesForRoles gathers the authtypes of the desired configurations
// whose endpoint role changed, preserving configuration order.
func authtypesForRoles(configurations []miq.ConnectionConfiguration, roles map[string]bool) []string {
	seen := map[string]bool{}
	var authtypes []string
	for _, cc := range configurations {
		if !roles[cc.Endpoint.Role] {
			continue
		}
		t := cc.Authentication.AuthType
		if !seen[t] {
			seen[t] = true
			authtypes = append(authtypes, t)
		}
	}
	return authtypes
}

func regionPtr(region string) *string {
	if region == "" {
		return nil
	}
	return &region
}
