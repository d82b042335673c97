// Package provider converges a desired provider record against the
// management server.
//
// [Converger.Apply] resolves the provider and zone by name, diffs the
// desired endpoint set, zone, and region against the remote state, issues
// the create or edit write when anything differs, and then polls the
// server's credential validation until the affected authtypes settle.
// [Converger.Delete] removes the provider, treating absence as a normal
// no-change outcome.
package provider
