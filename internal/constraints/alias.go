package constraints

import (
	"fmt"
	"strings"

	"github.com/jesuansito/pymatgen-db/internal/types"
)

// AliasTable maps short alias names to actual field names. Constraint and
// filter expressions are rewritten through the table before evaluation.
// Built once per run and immutable afterwards.
type AliasTable struct {
	fields map[string]string
}

// NewAliasTable builds a table from alias -> field pairs.
func NewAliasTable(pairs map[string]string) *AliasTable {
	fields := make(map[string]string, len(pairs))
	for alias, field := range pairs {
		fields[alias] = field
	}
	return &AliasTable{fields: fields}
}

// ParseAliasArgs parses repeated name=value command-line alias options.
// A malformed entry or a duplicate alias name is a configuration error.
func ParseAliasArgs(args []string) (map[string]string, error) {
	pairs := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if !ok || name == "" || value == "" {
			return nil, fmt.Errorf("%w: alias %q is not of the form name=value", types.ErrConfiguration, arg)
		}
		if _, exists := pairs[name]; exists {
			return nil, fmt.Errorf("%w: %q", types.ErrDuplicateAlias, name)
		}
		pairs[name] = value
	}
	return pairs, nil
}

// Resolve substitutes the alias if present, else returns the name
// unchanged. Resolution is idempotent: a real field name maps to itself.
func (t *AliasTable) Resolve(name string) string {
	if t == nil {
		return name
	}
	if field, ok := t.fields[name]; ok {
		return field
	}
	return name
}

// Len returns the number of aliases in the table.
func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.fields)
}
