// Package config defines the desired-state configuration consumed by the
// miqctl commands.
//
// The [Config] struct is the canonical representation of one reconciliation
// request: the management server connection, the provider's desired
// endpoints, zone, and region, and any custom attributes. It is loaded from
// a YAML file, with connection fields defaulting from MIQ_* environment
// variables, and validated before any network call is made.
package config
