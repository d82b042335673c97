// Package attributes reconciles the custom attributes attached to a
// managed entity.
//
// Attributes are keyed by (name, section): two attributes sharing a name
// in different sections are distinct records. [Reconciler.Apply] adds the
// missing keys and edits the ones whose value differs; attributes the
// request does not mention are left alone. [Reconciler.Delete] removes
// only the named keys.
package attributes
