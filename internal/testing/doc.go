// Package testing provides test utilities shared across the miqctl test
// suites.
//
// This package centralizes common testing patterns to avoid duplication
// across test files:
//   - ConfigBuilder: fluent builder for creating test configurations
//   - MockGateway: shared testify mock for the management API gateway
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithProviderName("openshift01").
//	    WithOpenShift("os01.example.com", 8443, "token").
//	    Build()
//
//	gw := new(testing.MockGateway)
//	gw.On("ListCollection", mock.Anything, "providers").Return(refs, nil)
package testing
