package miq

import (
	"bytes"
	"fmt"
	"strconv"
)

// ID is a remote numeric identifier. ManageIQ servers return ids either as
// JSON numbers or as quoted decimal strings depending on version, so the
// decoder accepts both.
type ID int64

// UnmarshalJSON implements json.Unmarshaler.
func (i *ID) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "null" || s == "" {
		*i = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", s, err)
	}
	*i = ID(v)
	return nil
}

// Ref is a collection member reference used for name lookups.
type Ref struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Endpoint is a named connection surface on a provider. Credentials-only
// endpoints (e.g. the amazon default role) carry neither hostname nor port.
type Endpoint struct {
	Role     string `json:"role"`
	Hostname string `json:"hostname,omitempty"`
	Port     int    `json:"port,omitempty"`
}

// Authentication holds the credentials attached to an endpoint. Exactly one
// of AuthKey or Userid/Password is populated, depending on the authtype.
type Authentication struct {
	AuthType string `json:"authtype"`
	AuthKey  string `json:"auth_key,omitempty"`
	Userid   string `json:"userid,omitempty"`
	Password string `json:"password,omitempty"`
}

// ConnectionConfiguration pairs an endpoint with its authentication, the
// shape the providers API expects under connection_configurations.
type ConnectionConfiguration struct {
	Endpoint       Endpoint       `json:"endpoint"`
	Authentication Authentication `json:"authentication"`
}

// ProviderEndpoints is the provider detail fetched with
// ?attributes=endpoints: the current endpoint set plus the tracked scalar
// fields (zone, region).
type ProviderEndpoints struct {
	ID             ID         `json:"id"`
	ZoneID         ID         `json:"zone_id"`
	ProviderRegion string     `json:"provider_region"`
	Endpoints      []Endpoint `json:"endpoints"`
}

// ValidationRecord is the per-authtype credential validation status
// reported by the server. Status is "Valid", "Invalid", or empty while
// validation has not run; the timestamps change whenever a validation
// attempt (success or failure) completes.
type ValidationRecord struct {
	AuthType      string `json:"authtype"`
	Status        string `json:"status"`
	StatusDetails string `json:"status_details"`
	LastValidOn   string `json:"last_valid_on"`
	LastInvalidOn string `json:"last_invalid_on"`
}

// CustomAttribute is a name/value record scoped to a section. Two
// attributes sharing a name in different sections are distinct entities.
type CustomAttribute struct {
	ID      ID     `json:"id,omitempty"`
	Name    string `json:"name"`
	Section string `json:"section,omitempty"`
	Value   string `json:"value"`
}

// Zone is the zone reference sent on provider writes.
type Zone struct {
	ID ID `json:"id"`
}

// CreateProviderRequest carries the fields of a provider create write.
type CreateProviderRequest struct {
	Name                     string                    `json:"name"`
	Type                     string                    `json:"type"`
	Zone                     Zone                      `json:"zone"`
	ConnectionConfigurations []ConnectionConfiguration `json:"connection_configurations"`
	ProviderRegion           *string                   `json:"provider_region"`
}

// EditProviderRequest carries the fields of a provider edit write. The full
// desired endpoint set is sent; the server replaces, not merges.
type EditProviderRequest struct {
	Zone                     Zone                      `json:"zone"`
	ConnectionConfigurations []ConnectionConfiguration `json:"connection_configurations"`
	ProviderRegion           *string                   `json:"provider_region"`
}

// DeleteResponse is the server's answer to a provider delete action.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TaskID  ID     `json:"task_id"`
}
