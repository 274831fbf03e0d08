// Package storage selects the device-storage backend from configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medagenda/medapp/internal/core/ports"
	"github.com/medagenda/medapp/internal/infrastructure/storage/file"
	"github.com/medagenda/medapp/internal/infrastructure/storage/memory"
	"github.com/medagenda/medapp/internal/infrastructure/storage/mongo"
	"github.com/medagenda/medapp/internal/infrastructure/storage/redis"
	"github.com/medagenda/medapp/internal/pkg/config"
)

// Open returns the configured store and a function releasing its connections.
func Open(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (ports.KeyValueStore, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.StorageMemory:
		return memory.New(), noop, nil

	case config.StorageRedis:
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, fmt.Errorf("storage: %w", err)
		}
		log.Debug().Str("addr", cfg.Redis.Addr).Msg("using redis storage")
		return redis.NewStore(client), func() { _ = client.Close() }, nil

	case config.StorageMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, fmt.Errorf("storage: %w", err)
		}
		log.Debug().Str("database", cfg.Mongo.Database).Msg("using mongo storage")
		return mongo.NewStore(db), func() { _ = client.Disconnect(context.Background()) }, nil

	case config.StorageFile, "":
		path := cfg.Path
		if path == "" {
			p, err := file.DefaultPath()
			if err != nil {
				return nil, nil, fmt.Errorf("storage: %w", err)
			}
			path = p
		}
		log.Debug().Str("path", path).Msg("using file storage")
		return file.New(path), noop, nil

	default:
		return nil, nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
