// Package db provides document-database connection management.
//
// Validation is strictly read-only: the returned handle is used for
// collection scans only, and the read-only credential pair is preferred
// over the admin pair when both are configured.
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jesuansito/pymatgen-db/internal/core/config"
	"github.com/jesuansito/pymatgen-db/internal/types"
)

// connectTimeout bounds the initial connection and ping. Validation runs
// are interactive; a database that does not answer within this window is
// reported as unreachable rather than waited on.
const connectTimeout = 10 * time.Second

// Connect establishes a client connection and returns the database
// handle plus a disconnect function. Reachability is verified with a
// ping before any collection work begins.
func Connect(ctx context.Context, cfg *config.DBConfig) (*mongo.Database, func(context.Context) error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	uri := fmt.Sprintf("mongodb://%s:%d", cfg.Host, cfg.Port)
	opts := options.Client().ApplyURI(uri).SetConnectTimeout(connectTimeout)
	if cfg.User != "" {
		opts = opts.SetAuth(options.Credential{
			AuthSource: cfg.Database,
			Username:   cfg.User,
			Password:   cfg.Password,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", types.ErrConnection, uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("%w: %s: %w", types.ErrConnection, uri, err)
	}

	return client.Database(cfg.Database), client.Disconnect, nil
}
