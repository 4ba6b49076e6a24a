package backend

import (
	"context"
	"path/filepath"
	"testing"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("File", func(t *testing.T) {
		cfg := &config.Config{Persistence: config.PersistenceConfig{
			Type: "file", FilePath: filepath.Join(t.TempDir(), "state.json"),
		}}
		repo, closeFn, err := Open(ctx, cfg)
		require.NoError(t, err)
		defer closeFn()

		snap, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, snap)
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.Config{
			Persistence: config.PersistenceConfig{Type: "redis"},
			Redis:       config.RedisConfig{Addr: mr.Addr()},
		}
		repo, closeFn, err := Open(ctx, cfg)
		require.NoError(t, err)
		defer closeFn()

		require.NoError(t, repo.Save(ctx, domain.NewSnapshot()))
		assert.True(t, mr.Exists("fleetrent:snapshot"))
	})

	t.Run("Unknown", func(t *testing.T) {
		_, _, err := Open(ctx, &config.Config{Persistence: config.PersistenceConfig{Type: "s3"}})
		assert.Error(t, err)
	})
}
