// internal/constraints/operators_test.go
package constraints

import "testing"

func TestSatisfies_Relational(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		value any
		found bool
		want  bool
	}{
		{"eq int match", "n=5", int64(5), true, true},
		{"eq int mismatch", "n=5", int64(6), true, false},
		{"eq mixed numeric widths", "n=5", int32(5), true, true},
		{"eq float vs int", "n=5", float64(5.0), true, true},
		{"neq", "n!=5", int64(6), true, true},
		{"lt true", "n<10", float64(9.5), true, true},
		{"lt false at boundary", "n<10", int64(10), true, false},
		{"lte at boundary", "n<=10", int64(10), true, true},
		{"gt negative", "e>-1.5", float64(-1.2), true, true},
		{"gte below", "n>=1", int64(0), true, false},
		{"string eq", "state=successful", "successful", true, true},
		{"string lexical lt", "name<m", "alpha", true, true},
		{"string lexical gt false", "name>m", "alpha", true, false},
		{"missing field fails relational", "n>0", nil, false, false},
		{"incomparable strict fails", "n>0", "abc", true, false},
		{"incomparable non-strict passes", "n>=0", "abc", true, true},
		{"bool eq", "ok=true", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse(tt.expr, nil)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.expr, err)
			}
			if got := Satisfies(e, tt.value, tt.found); got != tt.want {
				t.Errorf("Satisfies(%q, %#v, found=%v) = %v, want %v",
					tt.expr, tt.value, tt.found, got, tt.want)
			}
		})
	}
}

func TestSatisfies_Presence(t *testing.T) {
	exists, _ := Parse("f exists", nil)
	missing, _ := Parse("f missing", nil)

	if !Satisfies(exists, int64(1), true) {
		t.Error("exists should pass for present field")
	}
	if Satisfies(exists, nil, false) {
		t.Error("exists should fail for absent field")
	}
	if !Satisfies(missing, nil, false) {
		t.Error("missing should pass for absent field")
	}
	if Satisfies(missing, int64(1), true) {
		t.Error("missing should fail for present field")
	}
}

func TestSatisfies_Type(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		value any
		found bool
		want  bool
	}{
		{"numeric int64", "f type numeric", int64(3), true, true},
		{"numeric float64", "f type numeric", float64(3.5), true, true},
		{"numeric vs string", "f type numeric", "3", true, false},
		{"string", "f type string", "abc", true, true},
		{"bool", "f type bool", false, true, true},
		{"array slice", "f type array", []any{1, 2}, true, true},
		{"object map", "f type object", map[string]any{"a": 1}, true, true},
		{"absent field fails", "f type numeric", nil, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse(tt.expr, nil)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.expr, err)
			}
			if got := Satisfies(e, tt.value, tt.found); got != tt.want {
				t.Errorf("Satisfies(%q, %#v) = %v, want %v", tt.expr, tt.value, got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  FieldKind
	}{
		{"int", int64(1), KindNumeric},
		{"float", 1.5, KindNumeric},
		{"string", "x", KindString},
		{"bool", true, KindBool},
		{"slice", []any{1}, KindArray},
		{"map", map[string]any{}, KindObject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.value); got != tt.want {
				t.Errorf("KindOf(%#v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
