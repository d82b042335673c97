// Package reconcile implements the keyed diff at the heart of provider
// and custom-attribute convergence.
//
// [Diff] partitions a desired set of keyed records against the current
// remote set into Added, Updated, and Removed. Classification is governed
// strictly by key equality: a record whose composite key differs from
// every current key is Added, even when it shares a name component with
// an existing record.
package reconcile
