// Package retry provides a bounded retry loop for transient failures.
//
// The [Do] function re-runs an operation with a configurable attempt
// budget and inter-attempt delay. A multiplier of 1.0 gives a fixed
// cadence, which is what the authentication validation poller uses;
// larger multipliers give exponential backoff. Errors wrapped with
// [Fatal] stop the loop immediately.
package retry
