package redis

import (
	"context"
	"testing"

	"fleetrent-backend/internal/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t)
	repo := NewSnapshotRepository(client, "")

	t.Run("Missing key loads nil", func(t *testing.T) {
		s, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("Round trip", func(t *testing.T) {
		s := domain.NewSnapshot()
		s.Vehicles = append(s.Vehicles, domain.Vehicle{ID: "BIKE01", Type: domain.VehicleTypeMotorbike, DailyRateCents: 3000})
		s.NextRentalSeq = 7

		require.NoError(t, repo.Save(ctx, s))
		assert.True(t, mr.Exists(DefaultKey))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "BIKE01", loaded.Vehicles[0].ID)
		assert.Equal(t, 7, loaded.NextRentalSeq)
	})

	t.Run("Server down", func(t *testing.T) {
		mr.Close()
		_, err := repo.Load(ctx)
		assert.Error(t, err)
	})
}

func TestNewClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := NewClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()).Err())
}
