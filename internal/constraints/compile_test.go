package constraints

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/jesuansito/pymatgen-db/internal/types"
)

func TestCompile_MergesIdenticalFilters(t *testing.T) {
	entries := []types.Spec{
		{Filter: []string{"status=active"}, Constraints: []string{"price>0"}},
		{Filter: []string{"status=active"}, Constraints: []string{"qty>=1"}},
	}

	cs := Compile(entries)

	if cs.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cs.Len())
	}
	got, ok := cs.Get(types.NewFilterKey([]string{"status=active"}))
	if !ok {
		t.Fatal("filter key not found")
	}
	want := []string{"price>0", "qty>=1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("constraints = %v, want %v", got, want)
	}
}

func TestCompile_BareStringsUnderNoFilter(t *testing.T) {
	entries := []types.Spec{
		{Constraints: []string{"price>0"}},
		{Constraints: []string{"name exists"}},
		{Filter: []string{"status=active"}, Constraints: []string{"qty>=1"}},
	}

	cs := Compile(entries)

	if cs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cs.Len())
	}
	bare, ok := cs.Get(types.NoFilter)
	if !ok {
		t.Fatal("no-filter key not found")
	}
	want := []string{"price>0", "name exists"}
	if !reflect.DeepEqual(bare, want) {
		t.Errorf("no-filter constraints = %v, want %v", bare, want)
	}
}

func TestCompile_FilterOrderDistinguishesKeys(t *testing.T) {
	// Same conditions in a different order are distinct groups
	entries := []types.Spec{
		{Filter: []string{"a=1", "b=2"}, Constraints: []string{"x>0"}},
		{Filter: []string{"b=2", "a=1"}, Constraints: []string{"y>0"}},
	}

	cs := Compile(entries)

	if cs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cs.Len())
	}
}

func TestCompile_DuplicatesRetained(t *testing.T) {
	entries := []types.Spec{
		{Filter: []string{"f=1"}, Constraints: []string{"x>0", "x>0"}},
		{Filter: []string{"f=1"}, Constraints: []string{"x>0"}},
	}

	cs := Compile(entries)

	got, _ := cs.Get(types.NewFilterKey([]string{"f=1"}))
	if len(got) != 3 {
		t.Errorf("len(constraints) = %d, want 3 (duplicates retained)", len(got))
	}
}

func TestCompile_EmptyConstraintsContributeNothing(t *testing.T) {
	entries := []types.Spec{
		{Filter: []string{"f=1"}},
		{Filter: []string{"f=1"}, Constraints: []string{"x>0"}},
	}

	cs := Compile(entries)

	if cs.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cs.Len())
	}
	got, _ := cs.Get(types.NewFilterKey([]string{"f=1"}))
	if !reflect.DeepEqual(got, []string{"x>0"}) {
		t.Errorf("constraints = %v, want [x>0]", got)
	}
}

func TestCompile_SectionOrderIsInsertionOrder(t *testing.T) {
	entries := []types.Spec{
		{Filter: []string{"c=3"}, Constraints: []string{"z>0"}},
		{Constraints: []string{"w>0"}},
		{Filter: []string{"a=1"}, Constraints: []string{"x>0"}},
	}

	cs := Compile(entries)

	var keys []types.FilterKey
	for _, s := range cs.Sections() {
		keys = append(keys, s.Key)
	}
	want := []types.FilterKey{
		types.NewFilterKey([]string{"c=3"}),
		types.NoFilter,
		types.NewFilterKey([]string{"a=1"}),
	}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("section order = %v, want %v", keys, want)
	}
}

// Property: compilation never drops or invents a constraint expression,
// and is deterministic for a fixed input.
func TestCompile_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	genEntries := gen.SliceOf(gen.Struct(reflect.TypeOf(types.Spec{}), map[string]gopter.Gen{
		"Filter":      gen.SliceOfN(1, gen.OneConstOf("a=1", "b=2", "c>3")),
		"Constraints": gen.SliceOf(gen.OneConstOf("x>0", "y<5", "z exists")),
	}))

	properties.Property("every constraint appears exactly once", prop.ForAll(
		func(entries []types.Spec) bool {
			total := 0
			for _, e := range entries {
				total += len(e.Constraints)
			}
			cs := Compile(entries)
			compiled := 0
			for _, s := range cs.Sections() {
				compiled += len(s.Constraints)
			}
			return compiled == total
		},
		genEntries,
	))

	properties.Property("compilation is deterministic", prop.ForAll(
		func(entries []types.Spec) bool {
			first := Compile(entries)
			second := Compile(entries)
			if first.Len() != second.Len() {
				return false
			}
			for i, s := range first.Sections() {
				other := second.Sections()[i]
				if s.Key != other.Key || !reflect.DeepEqual(s.Constraints, other.Constraints) {
					return false
				}
			}
			return true
		},
		genEntries,
	))

	properties.TestingRun(t)
}
