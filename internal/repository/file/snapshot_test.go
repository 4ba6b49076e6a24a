package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fleetrent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "state.json")
	repo := NewSnapshotRepository(path)

	t.Run("Missing file loads nil", func(t *testing.T) {
		s, err := repo.Load(ctx)
		assert.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("Round trip", func(t *testing.T) {
		returned := time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)
		s := domain.NewSnapshot()
		s.Rentals = append(s.Rentals, domain.Rental{
			ID: "R00001", VehicleID: "CAR01", UserID: "alice",
			StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC),
			ActualReturnDate: &returned, TotalCostCents: 15000,
			Status: domain.RentalStatusReturned,
		})
		s.NextRentalSeq = 2

		require.NoError(t, repo.Save(ctx, s))

		loaded, err := repo.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, s.Rentals, loaded.Rentals)
		assert.Equal(t, 2, loaded.NextRentalSeq)

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp files are cleaned up")
	})

	t.Run("Corrupt file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
		_, err := repo.Load(ctx)
		assert.Error(t, err)
	})

	t.Run("Future version rejected", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(`{"version": 99}`), 0644))
		_, err := repo.Load(ctx)
		assert.Error(t, err)
	})
}
