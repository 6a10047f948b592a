// Package types provides domain models shared across mgvv components.
//
// types.go and errors.go use only the standard library so that constraint
// compilation and report assembly never pull in database driver imports;
// only the validator touches driver-decoded values. ids.go is the one
// exception, importing uuid for run identifiers.
package types

import "strings"

// filterKeySep joins normalized filter conditions into a FilterKey.
// Unit separator cannot appear in a constraint expression, so the join
// is unambiguous.
const filterKeySep = "\x1f"

// FilterKey is the normalized, comparable identity of a filter: an ordered
// sequence of condition strings, or the empty key for "no filter".
// Two specs whose filters normalize to the same key belong to the same
// constraint group.
type FilterKey string

// NoFilter is the key under which unfiltered constraints are grouped.
const NoFilter FilterKey = ""

// NewFilterKey builds a key from ordered filter conditions.
// Order is significant: the same conditions in a different order produce
// a distinct key.
func NewFilterKey(conds []string) FilterKey {
	if len(conds) == 0 {
		return NoFilter
	}
	return FilterKey(strings.Join(conds, filterKeySep))
}

// Conditions returns the ordered condition strings encoded in the key.
// Returns nil for NoFilter.
func (k FilterKey) Conditions() []string {
	if k == NoFilter {
		return nil
	}
	return strings.Split(string(k), filterKeySep)
}

// String renders the key for report section labels.
func (k FilterKey) String() string {
	if k == NoFilter {
		return "all records"
	}
	return strings.Join(k.Conditions(), " and ")
}

// Spec is one raw constraint entry for a collection: an optional filter
// narrowing which records the constraints apply to, plus the constraint
// expressions themselves. A bare expression string is represented as a
// Spec with a nil Filter and a single constraint.
type Spec struct {
	Filter      []string
	Constraints []string
}

// Violation describes a single failed constraint against one field.
// Expected is always a human-readable string; for type constraints it is
// a phrase like "must be numeric" rather than a literal.
type Violation struct {
	Field    string
	Op       string
	Expected string
	Got      any
}

// Constraint renders the violated constraint as "operator expected-value",
// e.g. "> 0" or "must be numeric".
func (v Violation) Constraint() string {
	if v.Op == "" {
		return v.Expected
	}
	return v.Op + " " + v.Expected
}

// RecordViolation pairs a violation with the identifiers of the record
// that produced it. TaskID is the secondary correlation key and may be
// nil when the record carries none.
type RecordViolation struct {
	Violation
	RecordID any
	TaskID   any
}

// ViolationGroup is the outcome of one filter-plus-constraints pass over
// a collection: the filter identity and the ordered violations found.
type ViolationGroup struct {
	Key        FilterKey
	Violations []RecordViolation
}
