// Package config provides configuration management for mgvv: the
// database connection settings and the per-collection constraint
// specification file.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jesuansito/pymatgen-db/internal/report"
	"github.com/jesuansito/pymatgen-db/internal/types"
)

// Reserved constraint-file keys. IgnorePrefix marks collection keys that
// are never queried and never appear in the report; the named keys hold
// run metadata rather than collection constraints.
const (
	IgnorePrefix = "_"
	DatabaseKey  = "db"
	AliasesKey   = "aliases"
	EmailKey     = "email"
)

// DBConfig holds document-database connection settings. Credentials are
// optional; when present the read-only pair is preferred over the admin
// pair since validation never writes.
type DBConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// DefaultDBConfig returns connection settings with default values.
func DefaultDBConfig() *DBConfig {
	return &DBConfig{
		Host: "localhost",
		Port: 27017,
	}
}

// Validate checks that the settings can form a connection target.
func (c *DBConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: database host must not be empty", types.ErrConfiguration)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: database port must be between 1 and 65535, got %d", types.ErrConfiguration, c.Port)
	}
	if c.Database == "" {
		return fmt.Errorf("%w: no database name configured (set it in the db config file or the constraint file %q key)",
			types.ErrConfiguration, DatabaseKey)
	}
	return nil
}

// ConstraintFile is a parsed constraint specification: reserved metadata
// plus the per-collection raw constraint entries. Collection keys keep
// their original names, including ignored ones; the orchestrator applies
// the IgnorePrefix skip.
type ConstraintFile struct {
	Database    string
	Aliases     map[string]string
	Email       *report.EmailConfig
	Collections map[string][]types.Spec
}

// CollectionNames returns collection keys in sorted order so that a run
// over a fixed file is deterministic.
func (f *ConstraintFile) CollectionNames() []string {
	names := make([]string, 0, len(f.Collections))
	for name := range f.Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ignored reports whether a collection key is skipped during validation.
func Ignored(name string) bool {
	return strings.HasPrefix(name, IgnorePrefix)
}

// InlineConstraints builds a single-collection constraint file from
// command-line constraint expressions.
func InlineConstraints(collection string, exprs []string) (*ConstraintFile, error) {
	if collection == "" {
		return nil, fmt.Errorf("%w: a target collection is required when constraints come from the command line",
			types.ErrConfiguration)
	}
	specs := make([]types.Spec, 0, len(exprs))
	for _, e := range exprs {
		specs = append(specs, types.Spec{Constraints: []string{e}})
	}
	return &ConstraintFile{
		Collections: map[string][]types.Spec{collection: specs},
	}, nil
}
