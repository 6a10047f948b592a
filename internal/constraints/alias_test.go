// internal/constraints/alias_test.go
package constraints

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jesuansito/pymatgen-db/internal/types"
)

func TestAliasTable_Resolve(t *testing.T) {
	table := NewAliasTable(map[string]string{
		"energy": "output.final_energy",
		"gap":    "analysis.bandgap",
	})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"known alias", "energy", "output.final_energy"},
		{"other alias", "gap", "analysis.bandgap"},
		{"unknown passes through", "task_id", "task_id"},
		{"target maps to itself", "output.final_energy", "output.final_energy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Resolve(tt.in); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAliasTable_ResolveIdempotent(t *testing.T) {
	table := NewAliasTable(map[string]string{"e": "energy"})

	once := table.Resolve("e")
	twice := table.Resolve(once)
	if once != twice {
		t.Errorf("Resolve not idempotent: %q then %q", once, twice)
	}
}

func TestAliasTable_NilSafe(t *testing.T) {
	var table *AliasTable
	if got := table.Resolve("x"); got != "x" {
		t.Errorf("nil table Resolve = %q, want passthrough", got)
	}
	if table.Len() != 0 {
		t.Errorf("nil table Len = %d, want 0", table.Len())
	}
}

func TestParseAliasArgs(t *testing.T) {
	got, err := ParseAliasArgs([]string{"e=energy", "gap = analysis.bandgap"})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"e": "energy", "gap": "analysis.bandgap"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseAliasArgs = %v, want %v", got, want)
	}
}

func TestParseAliasArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no equals", []string{"energy"}, types.ErrConfiguration},
		{"empty name", []string{"=energy"}, types.ErrConfiguration},
		{"empty value", []string{"e="}, types.ErrConfiguration},
		{"duplicate alias", []string{"e=energy", "e=enthalpy"}, types.ErrDuplicateAlias},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAliasArgs(tt.args)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
