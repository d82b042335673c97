// Package miq wraps the ManageIQ REST API.
//
// The [Gateway] interface composes the per-concern interfaces consumed by
// the reconcilers; [RealClient] implements it over HTTP with basic auth
// and configurable TLS verification. JSON payloads are decoded into the
// explicit record types in this package at the boundary; nothing upstream
// touches raw maps.
package miq
