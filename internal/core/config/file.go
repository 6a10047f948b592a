package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jesuansito/pymatgen-db/internal/report"
	"github.com/jesuansito/pymatgen-db/internal/types"
)

// LoadConstraintFile parses a YAML constraint specification: a mapping
// from collection name to either a flat sequence of constraint strings
// or a sequence of {filter, constraints} blocks, plus the reserved
// db/aliases/email keys.
func LoadConstraintFile(path string) (*ConstraintFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read constraint file: %w", types.ErrConfiguration, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: constraint file is not a valid mapping: %w", types.ErrConfiguration, err)
	}

	file := &ConstraintFile{
		Collections: make(map[string][]types.Spec),
	}

	for key, value := range raw {
		switch key {
		case DatabaseKey:
			name, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q key must be a string", types.ErrConfiguration, DatabaseKey)
			}
			file.Database = name
		case AliasesKey:
			aliases, err := decodeAliases(value)
			if err != nil {
				return nil, err
			}
			file.Aliases = aliases
		case EmailKey:
			email, err := decodeEmail(value)
			if err != nil {
				return nil, err
			}
			file.Email = email
		default:
			specs, err := decodeSpecs(key, value)
			if err != nil {
				return nil, err
			}
			file.Collections[key] = specs
		}
	}

	return file, nil
}

// decodeSpecs normalizes one collection's raw entry list. Multiple raw
// entries for the same collection arrive already concatenated in the
// sequence; each item is a bare expression string or a block.
func decodeSpecs(collection string, value any) ([]types.Spec, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: collection %q must map to a sequence of constraints", types.ErrConfiguration, collection)
	}

	specs := make([]types.Spec, 0, len(items))
	for _, item := range items {
		switch entry := item.(type) {
		case string:
			specs = append(specs, types.Spec{Constraints: []string{entry}})
		case map[string]any:
			spec, err := decodeBlock(collection, entry)
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		default:
			return nil, fmt.Errorf("%w: collection %q has a constraint entry that is neither a string nor a {filter, constraints} block",
				types.ErrConfiguration, collection)
		}
	}
	return specs, nil
}

// decodeBlock normalizes one {filter, constraints} block. The filter may
// be absent, a single condition string, or a sequence of condition
// strings; anything else is a configuration error.
func decodeBlock(collection string, block map[string]any) (types.Spec, error) {
	var spec types.Spec

	switch filter := block["filter"].(type) {
	case nil:
	case string:
		spec.Filter = []string{filter}
	case []any:
		for _, c := range filter {
			s, ok := c.(string)
			if !ok {
				return types.Spec{}, fmt.Errorf("%w: collection %q", types.ErrBadFilter, collection)
			}
			spec.Filter = append(spec.Filter, s)
		}
	default:
		return types.Spec{}, fmt.Errorf("%w: collection %q", types.ErrBadFilter, collection)
	}

	switch constraints := block["constraints"].(type) {
	case nil:
	case string:
		spec.Constraints = []string{constraints}
	case []any:
		for _, c := range constraints {
			s, ok := c.(string)
			if !ok {
				return types.Spec{}, fmt.Errorf("%w: collection %q has a non-string constraint", types.ErrConfiguration, collection)
			}
			spec.Constraints = append(spec.Constraints, s)
		}
	default:
		return types.Spec{}, fmt.Errorf("%w: collection %q constraints must be a string or sequence", types.ErrConfiguration, collection)
	}

	return spec, nil
}

// decodeAliases normalizes the reserved aliases mapping.
func decodeAliases(value any) (map[string]string, error) {
	raw, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q key must be a mapping of alias to field name", types.ErrConfiguration, AliasesKey)
	}
	aliases := make(map[string]string, len(raw))
	for alias, field := range raw {
		s, ok := field.(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("%w: alias %q must map to a field name", types.ErrConfiguration, alias)
		}
		aliases[alias] = s
	}
	return aliases, nil
}

// decodeEmail normalizes the reserved email block: from, to (string or
// sequence), server, port.
func decodeEmail(value any) (*report.EmailConfig, error) {
	raw, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q key must be a mapping", types.ErrConfiguration, EmailKey)
	}

	cfg := &report.EmailConfig{Server: "localhost"}
	if from, ok := raw["from"].(string); ok {
		cfg.From = from
	}
	switch to := raw["to"].(type) {
	case nil:
	case string:
		cfg.To = []string{to}
	case []any:
		for _, r := range to {
			s, ok := r.(string)
			if !ok {
				return nil, fmt.Errorf("%w: email %q entries must be strings", types.ErrConfiguration, "to")
			}
			cfg.To = append(cfg.To, s)
		}
	default:
		return nil, fmt.Errorf("%w: email %q must be a string or sequence", types.ErrConfiguration, "to")
	}
	if server, ok := raw["server"].(string); ok {
		cfg.Server = server
	}
	if port, ok := raw["port"].(int); ok {
		cfg.Port = port
	}

	if cfg.From == "" || len(cfg.To) == 0 {
		return nil, fmt.Errorf("%w: email block needs %q and at least one recipient", types.ErrConfiguration, "from")
	}
	return cfg, nil
}
