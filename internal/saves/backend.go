package saves

import (
	"context"

	"github.com/vovakirdan/icearena/internal/config"
	"github.com/vovakirdan/icearena/internal/errors"
	redisclient "github.com/vovakirdan/icearena/internal/redis"
	"github.com/vovakirdan/icearena/internal/storage"
)

// OpenRepository builds the repository named by cfg.SavesBackend. The
// returned close function releases whatever connection the backend opened;
// the SQLite store stays owned by the caller.
func OpenRepository(ctx context.Context, cfg config.StorageConfig, store *storage.Store) (Repository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.SavesBackend {
	case "", config.BackendSQLite:
		if store == nil {
			return nil, nil, errors.InvalidArgument("sqlite store is required")
		}
		repo, err := NewSQLiteRepository(store)
		return repo, noop, err

	case config.BackendRedis:
		client, err := redisclient.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return nil, nil, err
		}
		if err := redisclient.Ping(ctx, client); err != nil {
			client.Close()
			return nil, nil, err
		}
		repo, err := NewRedisRepository(&RedisConfig{Client: client})
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		return repo, client.Close, nil

	case config.BackendPostgres:
		repo, err := OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	}

	return nil, nil, errors.InvalidArgumentf("unknown saves backend %q", cfg.SavesBackend)
}
