// internal/constraints/operators.go
package constraints

import "strings"

/*
 * Operator comparison logic.
 *
 * Implements the comparison side of constraint evaluation with type-aware
 * comparison rules over values as decoded from the database driver.
 *
 * Operators:
 *   - exists/missing: Field presence checks
 *   - type: Kind check against the expected FieldKind
 *   - eq/neq: Equality with numeric tolerance
 *   - lt/lte/gt/gte: Numeric comparison, lexical fallback for strings
 *
 * Numeric comparison handles float64/int/int32/int64 mixing because
 * document drivers decode numbers to different Go types depending on the
 * stored width.
 *
 * Why function-based: a switch over nine operators is cleaner than nine
 * interface implementations with minimal behavior variation.
 */

// Satisfies reports whether a field value meets the expression.
// found is false when the field is absent from the record; a relational
// constraint on a missing field is never satisfied.
func Satisfies(e Expression, value any, found bool) bool {
	switch e.Op {
	case OpExists:
		return found
	case OpMissing:
		return !found
	case OpType:
		return found && KindOf(value) == e.Kind
	}

	if !found {
		return false
	}

	switch e.Op {
	case OpEq:
		return compareEqual(value, e.Value)
	case OpNeq:
		return !compareEqual(value, e.Value)
	case OpLt:
		return compareOrdered(value, e.Value) < 0
	case OpLte:
		return compareOrdered(value, e.Value) <= 0
	case OpGt:
		return compareOrdered(value, e.Value) > 0
	case OpGte:
		return compareOrdered(value, e.Value) >= 0
	default:
		return false
	}
}

// compareEqual performs equality comparison with numeric type mixing.
func compareEqual(a, b any) bool {
	if na, nb, ok := asNumbers(a, b); ok {
		return na == nb
	}
	return a == b
}

// compareOrdered performs three-way comparison (-1/0/1).
// Numbers compare numerically, strings lexically; incomparable pairs
// return 0 so that strict inequalities fail.
func compareOrdered(a, b any) int {
	if na, nb, ok := asNumbers(a, b); ok {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	sa, oka := a.(string)
	sb, okb := b.(string)
	if oka && okb {
		return strings.Compare(sa, sb)
	}
	return 0
}

// asNumbers attempts to convert both values to float64 for numeric
// comparison. Returns converted values and success flag.
func asNumbers(a, b any) (float64, float64, bool) {
	na, oka := toFloat64(a)
	nb, okb := toFloat64(b)
	return na, nb, oka && okb
}
