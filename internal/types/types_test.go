// internal/types/types_test.go
package types

import (
	"reflect"
	"testing"
)

func TestFilterKey_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		conds []string
	}{
		{"single condition", []string{"status=active"}},
		{"two conditions", []string{"a=1", "b>2"}},
		{"condition with spaces", []string{"name = 'a b'"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewFilterKey(tt.conds)
			if got := key.Conditions(); !reflect.DeepEqual(got, tt.conds) {
				t.Errorf("Conditions() = %v, want %v", got, tt.conds)
			}
		})
	}
}

func TestFilterKey_Empty(t *testing.T) {
	if NewFilterKey(nil) != NoFilter {
		t.Error("NewFilterKey(nil) != NoFilter")
	}
	if NewFilterKey([]string{}) != NoFilter {
		t.Error("NewFilterKey(empty) != NoFilter")
	}
	if NoFilter.Conditions() != nil {
		t.Error("NoFilter.Conditions() should be nil")
	}
}

func TestFilterKey_OrderSignificant(t *testing.T) {
	a := NewFilterKey([]string{"x=1", "y=2"})
	b := NewFilterKey([]string{"y=2", "x=1"})
	if a == b {
		t.Error("keys with reordered conditions should differ")
	}
}

func TestFilterKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  FilterKey
		want string
	}{
		{"no filter", NoFilter, "all records"},
		{"single", NewFilterKey([]string{"status=active"}), "status=active"},
		{"joined", NewFilterKey([]string{"a=1", "b=2"}), "a=1 and b=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestViolation_Constraint(t *testing.T) {
	tests := []struct {
		name string
		v    Violation
		want string
	}{
		{"relational", Violation{Field: "price", Op: ">", Expected: "0"}, "> 0"},
		{"equality", Violation{Field: "state", Op: "=", Expected: "ok"}, "= ok"},
		{"unary phrase", Violation{Field: "task_id", Expected: "must exist"}, "must exist"},
		{"type phrase", Violation{Field: "energy", Expected: "must be numeric"}, "must be numeric"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Constraint(); got != tt.want {
				t.Errorf("Constraint() = %q, want %q", got, tt.want)
			}
		})
	}
}
