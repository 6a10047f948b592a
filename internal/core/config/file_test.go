// internal/core/config/file_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jesuansito/pymatgen-db/internal/constraints"
	"github.com/jesuansito/pymatgen-db/internal/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConstraintFile(t *testing.T) {
	path := writeFile(t, "vv.yaml", `
db: vasp
aliases:
  energy: output.final_energy
email:
  from: vv@lab.gov
  to:
    - ops@lab.gov
    - sci@lab.gov
  server: smtp.lab.gov
  port: 2525
tasks:
  - "task_id exists"
  - filter: "state = 'successful'"
    constraints:
      - "output.final_energy < 0"
      - "analysis.bandgap >= 0"
  - filter:
      - "state = 'successful'"
      - "is_hubbard = true"
    constraints: "hubbards exists"
_dummy:
  - "never = checked"
`)

	file, err := LoadConstraintFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if file.Database != "vasp" {
		t.Errorf("Database = %q, want vasp", file.Database)
	}
	if file.Aliases["energy"] != "output.final_energy" {
		t.Errorf("Aliases = %v", file.Aliases)
	}
	if file.Email == nil || file.Email.From != "vv@lab.gov" || len(file.Email.To) != 2 ||
		file.Email.Server != "smtp.lab.gov" || file.Email.Port != 2525 {
		t.Errorf("Email = %+v", file.Email)
	}

	specs, ok := file.Collections["tasks"]
	if !ok {
		t.Fatal("tasks collection missing")
	}
	want := []types.Spec{
		{Constraints: []string{"task_id exists"}},
		{
			Filter:      []string{"state = 'successful'"},
			Constraints: []string{"output.final_energy < 0", "analysis.bandgap >= 0"},
		},
		{
			Filter:      []string{"state = 'successful'", "is_hubbard = true"},
			Constraints: []string{"hubbards exists"},
		},
	}
	if !reflect.DeepEqual(specs, want) {
		t.Errorf("tasks specs = %+v, want %+v", specs, want)
	}

	// Ignored collections still parse; the orchestrator skips them
	if _, ok := file.Collections["_dummy"]; !ok {
		t.Error("underscore-prefixed collection should still be parsed")
	}
	if !Ignored("_dummy") || Ignored("tasks") {
		t.Error("Ignored() prefix check wrong")
	}
}

func TestLoadConstraintFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"missing file is configuration error", "", types.ErrConfiguration},
		{"collection not a sequence", "tasks: 42\n", types.ErrConfiguration},
		{"entry neither string nor block", "tasks:\n  - 42\n", types.ErrConfiguration},
		{"filter wrong type", "tasks:\n  - filter: 42\n    constraints: [\"a>0\"]\n", types.ErrBadFilter},
		{"filter sequence with non-string", "tasks:\n  - filter: [42]\n    constraints: [\"a>0\"]\n", types.ErrBadFilter},
		{"db key not a string", "db: [1,2]\n", types.ErrConfiguration},
		{"alias not a string", "aliases:\n  e: 42\n", types.ErrConfiguration},
		{"email without recipients", "email:\n  from: a@b.c\n", types.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.yaml")
			if tt.content != "" {
				path = writeFile(t, "vv.yaml", tt.content)
			}
			_, err := LoadConstraintFile(path)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadConstraintFile_CompileRoundTrip(t *testing.T) {
	path := writeFile(t, "vv.yaml", `
widgets:
  - filter: status=active
    constraints: ["price>0"]
  - filter: status=active
    constraints: ["qty>=1"]
`)

	file, err := LoadConstraintFile(path)
	if err != nil {
		t.Fatal(err)
	}

	cs := constraints.Compile(file.Collections["widgets"])
	if cs.Len() != 1 {
		t.Fatalf("Len() = %d, want the two blocks merged into one group", cs.Len())
	}
	got, ok := cs.Get(types.NewFilterKey([]string{"status=active"}))
	if !ok {
		t.Fatal("merged filter key not found")
	}
	if !reflect.DeepEqual(got, []string{"price>0", "qty>=1"}) {
		t.Errorf("constraints = %v, want [price>0 qty>=1]", got)
	}
}

func TestConstraintFile_CollectionNamesSorted(t *testing.T) {
	file := &ConstraintFile{Collections: map[string][]types.Spec{
		"zeta": nil, "alpha": nil, "mid": nil,
	}}
	got := file.CollectionNames()
	want := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectionNames = %v, want %v", got, want)
	}
}

func TestInlineConstraints(t *testing.T) {
	file, err := InlineConstraints("tasks", []string{"a>0", "b exists"})
	if err != nil {
		t.Fatal(err)
	}
	specs := file.Collections["tasks"]
	if len(specs) != 2 || specs[0].Constraints[0] != "a>0" || specs[1].Constraints[0] != "b exists" {
		t.Errorf("specs = %+v", specs)
	}
}

func TestInlineConstraints_RequiresCollection(t *testing.T) {
	_, err := InlineConstraints("", []string{"a>0"})
	if !errors.Is(err, types.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}
