package saves_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/icearena/internal/config"
	"github.com/vovakirdan/icearena/internal/errors"
	redisclient "github.com/vovakirdan/icearena/internal/redis"
	"github.com/vovakirdan/icearena/internal/saves"
	"github.com/vovakirdan/icearena/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newRedisRepo(t *testing.T) (saves.Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := redisclient.NewClient(mr.Addr(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	repo, err := saves.NewRedisRepository(&saves.RedisConfig{Client: client})
	require.NoError(t, err)
	return repo, mr
}

// exerciseRepository runs the behaviour every backend shares.
func exerciseRepository(t *testing.T, repo saves.Repository) {
	ctx := context.Background()
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	older := &saves.Slot{
		ID: "save_a", Name: "first", Mode: "PVM", LevelID: "LEVEL_1", Score: 100,
		Data: []byte(`{"a":1}`), CreatedAt: t0, UpdatedAt: t0,
	}
	newer := &saves.Slot{
		ID: "save_b", Name: "second", Mode: "PVP", LevelID: "LEVEL_2",
		Data: []byte(`{"b":2}`), CreatedAt: t0.Add(time.Minute), UpdatedAt: t0.Add(time.Minute),
	}
	require.NoError(t, repo.Put(ctx, older))
	require.NoError(t, repo.Put(ctx, newer))

	got, err := repo.Get(ctx, "save_a")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)
	assert.Equal(t, "LEVEL_1", got.LevelID)
	assert.Equal(t, 100, got.Score)
	assert.JSONEq(t, `{"a":1}`, string(got.Data))
	assert.True(t, got.UpdatedAt.Equal(t0))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "save_b", list[0].ID)
	assert.Equal(t, "save_a", list[1].ID)

	// Touching the older slot moves it to the front.
	older.UpdatedAt = t0.Add(time.Hour)
	older.Name = "first again"
	require.NoError(t, repo.Put(ctx, older))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "save_a", list[0].ID)
	assert.Equal(t, "first again", list[0].Name)

	require.NoError(t, repo.Delete(ctx, "save_a"))
	_, err = repo.Get(ctx, "save_a")
	assert.True(t, errors.IsNotFound(err), "get after delete: %v", err)
	assert.True(t, errors.IsNotFound(repo.Delete(ctx, "save_a")))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "save_b", list[0].ID)

	assert.True(t, errors.IsInvalidArgument(repo.Put(ctx, nil)))
}

func TestSQLiteRepository(t *testing.T) {
	repo, err := saves.NewSQLiteRepository(openStore(t))
	require.NoError(t, err)
	exerciseRepository(t, repo)
}

func TestSQLiteRepositoryRequiresStore(t *testing.T) {
	_, err := saves.NewSQLiteRepository(nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRedisRepository(t *testing.T) {
	repo, _ := newRedisRepo(t)
	exerciseRepository(t, repo)
}

func TestRedisRepositoryKeys(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &saves.Slot{ID: "save_x", Mode: "PVM", Data: []byte(`{}`)}))
	assert.True(t, mr.Exists("icearena:save:save_x"))
	members, err := mr.ZMembers("icearena:saves")
	require.NoError(t, err)
	assert.Equal(t, []string{"save_x"}, members)

	// A body lost behind the index's back is skipped by List.
	mr.Del("icearena:save:save_x")
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.Get(ctx, "")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRedisRepositoryGetCorrupt(t *testing.T) {
	repo, mr := newRedisRepo(t)
	require.NoError(t, mr.Set("icearena:save:bad", "not json"))

	_, err := repo.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal slot")
}

func TestNewRedisRepositoryConfig(t *testing.T) {
	_, err := saves.NewRedisRepository(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = saves.NewRedisRepository(&saves.RedisConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis client is required")
}

func TestPostgresRequiresDSN(t *testing.T) {
	_, err := saves.OpenPostgres(context.Background(), "")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = saves.NewPostgresRepository(context.Background(), nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestOpenRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("sqlite", func(t *testing.T) {
		repo, closeFn, err := saves.OpenRepository(ctx, config.StorageConfig{SavesBackend: config.BackendSQLite}, openStore(t))
		require.NoError(t, err)
		defer closeFn()
		exerciseRepository(t, repo)
	})

	t.Run("sqlite without store", func(t *testing.T) {
		_, _, err := saves.OpenRepository(ctx, config.StorageConfig{}, nil)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		repo, closeFn, err := saves.OpenRepository(ctx, config.StorageConfig{
			SavesBackend: config.BackendRedis,
			RedisAddr:    mr.Addr(),
		}, nil)
		require.NoError(t, err)
		defer closeFn()
		exerciseRepository(t, repo)
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		_, _, err := saves.OpenRepository(ctx, config.StorageConfig{
			SavesBackend: config.BackendRedis,
			RedisAddr:    addr,
		}, nil)
		assert.Equal(t, errors.CodeUnavailable, errors.GetCode(err))
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := saves.OpenRepository(ctx, config.StorageConfig{SavesBackend: "floppy"}, nil)
		assert.True(t, errors.IsInvalidArgument(err))
	})
}
