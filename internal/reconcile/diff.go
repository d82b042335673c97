package reconcile

// FieldDelta maps a field name to the desired value, for every field of a
// record that differs from its current remote value.
type FieldDelta map[string]any

// Result partitions desired records against current records by key.
// A key appears in at most one of the three partitions; keys whose records
// are identical on both sides appear in none.
type Result[K comparable, R any] struct {
	Added   map[K]R
	Updated map[K]FieldDelta
	Removed map[K]R
}

// Empty reports whether the diff contains no changes.
func (r Result[K, R]) Empty() bool {
	return len(r.Added) == 0 && len(r.Updated) == 0 && len(r.Removed) == 0
}

// Diff compares two keyed record sets. The delta function receives the
// current and desired record for a key present on both sides and returns
// the subset of desired fields that differ; an empty delta means the
// records are equal.
func Diff[K comparable, R any](current, desired map[K]R, delta func(current, desired R) FieldDelta) Result[K, R] {
	result := Result[K, R]{
		Added:   map[K]R{},
		Updated: map[K]FieldDelta{},
		Removed: map[K]R{},
	}

	for key, want := range desired {
		curr, ok := current[key]
		if !ok {
			result.Added[key] = want
			continue
		}
		if d := delta(curr, want); len(d) > 0 {
			result.Updated[key] = d
		}
	}

	for key, curr := range current {
		if _, ok := desired[key]; !ok {
			result.Removed[key] = curr
		}
	}

	return result
}
