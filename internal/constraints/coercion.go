// internal/constraints/coercion.go
package constraints

import "reflect"

/*
 * Value classification for constraint evaluation.
 *
 * Document drivers decode stored numbers to float64, int32, or int64
 * depending on the stored width, so numeric handling must accept all of
 * them. Collection kinds (array, object) are classified by reflection to
 * keep this package free of driver imports: the driver's array and map
 * aliases are still slices and maps underneath.
 */

// toFloat64 converts value to float64 if it is a numeric type.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// KindOf classifies a decoded value for type constraints.
// Returns KindUnspecified for nulls and driver-specific scalar types.
func KindOf(v any) FieldKind {
	switch v.(type) {
	case nil:
		return KindUnspecified
	case float64, float32, int, int32, int64:
		return KindNumeric
	case string:
		return KindString
	case bool:
		return KindBool
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map, reflect.Struct:
		return KindObject
	default:
		return KindUnspecified
	}
}
