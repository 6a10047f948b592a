package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/jesuansito/pymatgen-db/internal/types"
)

// credentialPairs lists the user/password key pairs checked in order.
// The read-only pair wins when both are present: validation is strictly
// read-only against the database.
var credentialPairs = [][2]string{
	{"readonly_user", "readonly_password"},
	{"admin_user", "admin_password"},
}

// LoadDBConfig loads database connection settings from a config file
// using viper (JSON or YAML, detected by extension). A *_user key
// without its matching *_password key is a configuration error.
func LoadDBConfig(path string) (*DBConfig, error) {
	v := viper.New()

	v.SetDefault("host", "localhost")
	v.SetDefault("port", 27017)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: failed to read db config file: %w", types.ErrConfiguration, err)
	}

	cfg := &DBConfig{
		Host:     v.GetString("host"),
		Port:     v.GetInt("port"),
		Database: v.GetString("database"),
	}

	// Every present pair must be complete, even ones that lose the
	// precedence pick: a dangling *_user is a config mistake either way
	for _, pair := range credentialPairs {
		if v.IsSet(pair[0]) && !v.IsSet(pair[1]) {
			return nil, fmt.Errorf("%w: %s is set but %s is missing", types.ErrConfiguration, pair[0], pair[1])
		}
	}
	for _, pair := range credentialPairs {
		if v.IsSet(pair[0]) {
			cfg.User = v.GetString(pair[0])
			cfg.Password = v.GetString(pair[1])
			break
		}
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: database port must be between 1 and 65535, got %d", types.ErrConfiguration, cfg.Port)
	}

	return cfg, nil
}
