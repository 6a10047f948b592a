// internal/constraints/compile.go
package constraints

import (
	"github.com/jesuansito/pymatgen-db/internal/types"
)

/*
 * Constraint compilation.
 *
 * Compiles the raw per-collection constraint list (mixed bare expressions
 * and {filter, constraints} blocks) into filter-grouped sections keyed by
 * the normalized filter identity.
 *
 * Grouping rules:
 *   1. A filterless entry files its constraints under types.NoFilter
 *   2. Entries whose filters normalize to the same key merge their
 *      constraint lists in insertion order
 *   3. Duplicate expressions are retained (repetition may carry
 *      evaluation semantics downstream)
 *
 * Section order is insertion order of first appearance, which makes the
 * compiled output deterministic for a fixed input. Expressions stay raw
 * strings here; parsing happens in the validator so that a malformed
 * expression surfaces as a per-collection validation failure rather than
 * a compile-time one.
 */

// Section is one filter-plus-constraints group ready for a validation pass.
type Section struct {
	Key         types.FilterKey
	Constraints []string
}

// CompiledSections maps each normalized filter key to its accumulated
// constraint expressions. Immutable once compiled.
type CompiledSections struct {
	sections []*Section
	index    map[types.FilterKey]*Section
}

// Compile groups raw constraint entries by normalized filter key.
// Entries with an empty constraint list contribute nothing.
func Compile(entries []types.Spec) *CompiledSections {
	cs := &CompiledSections{
		index: make(map[types.FilterKey]*Section),
	}

	for _, entry := range entries {
		if len(entry.Constraints) == 0 {
			continue
		}
		key := types.NewFilterKey(entry.Filter)
		section, ok := cs.index[key]
		if !ok {
			section = &Section{Key: key}
			cs.index[key] = section
			cs.sections = append(cs.sections, section)
		}
		section.Constraints = append(section.Constraints, entry.Constraints...)
	}

	return cs
}

// Sections returns the compiled groups in first-appearance order.
func (cs *CompiledSections) Sections() []*Section {
	return cs.sections
}

// Get returns the constraint expressions accumulated under key.
func (cs *CompiledSections) Get(key types.FilterKey) ([]string, bool) {
	section, ok := cs.index[key]
	if !ok {
		return nil, false
	}
	return section.Constraints, true
}

// Len returns the number of filter groups.
func (cs *CompiledSections) Len() int {
	return len(cs.sections)
}
