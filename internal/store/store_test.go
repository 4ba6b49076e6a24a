package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"fleetrent-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSnapshotRepo struct {
	mock.Mock
}

func (m *MockSnapshotRepo) Load(ctx context.Context) (*domain.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepo) Save(ctx context.Context, s *domain.Snapshot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty repository", func(t *testing.T) {
		repo := new(MockSnapshotRepo)
		repo.On("Load", ctx).Return(nil, nil)

		s, err := Open(ctx, repo)
		require.NoError(t, err)
		snap, _ := s.Snapshot(ctx)
		assert.Empty(t, snap.Users)
		assert.Equal(t, 1, snap.NextRentalSeq)
	})

	t.Run("Load failure", func(t *testing.T) {
		repo := new(MockSnapshotRepo)
		repo.On("Load", ctx).Return(nil, errors.New("permission denied"))

		_, err := Open(ctx, repo)
		assert.ErrorIs(t, err, domain.ErrIO)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Commits on successful save", func(t *testing.T) {
		repo := new(MockSnapshotRepo)
		repo.On("Load", ctx).Return(nil, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*domain.Snapshot")).Return(nil)
		s, _ := Open(ctx, repo)

		err := s.Update(ctx, func(snap *domain.Snapshot) error {
			snap.Vehicles = append(snap.Vehicles, domain.Vehicle{ID: "CAR01"})
			return nil
		})
		require.NoError(t, err)

		_ = s.Read(func(snap *domain.Snapshot) error {
			assert.NotNil(t, snap.FindVehicle("CAR01"))
			assert.False(t, snap.SavedOn.IsZero())
			return nil
		})
	})

	t.Run("Failed save leaves state unchanged", func(t *testing.T) {
		repo := new(MockSnapshotRepo)
		repo.On("Load", ctx).Return(nil, nil)
		repo.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))
		s, _ := Open(ctx, repo)

		err := s.Update(ctx, func(snap *domain.Snapshot) error {
			snap.Vehicles = append(snap.Vehicles, domain.Vehicle{ID: "CAR01"})
			snap.NextRentalID()
			return nil
		})
		assert.ErrorIs(t, err, domain.ErrIO)

		snap, _ := s.Snapshot(ctx)
		assert.Empty(t, snap.Vehicles)
		assert.Equal(t, 1, snap.NextRentalSeq)
	})

	t.Run("Callback error skips save", func(t *testing.T) {
		repo := new(MockSnapshotRepo)
		repo.On("Load", ctx).Return(nil, nil)
		s, _ := Open(ctx, repo)

		err := s.Update(ctx, func(snap *domain.Snapshot) error {
			snap.Users = append(snap.Users, domain.User{ID: "bob"})
			return domain.ErrNotFound
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

		snap, _ := s.Snapshot(ctx)
		assert.Empty(t, snap.Users)
	})

	t.Run("Concurrent updates are serialized", func(t *testing.T) {
		repo := new(MockSnapshotRepo)
		repo.On("Load", ctx).Return(nil, nil)
		repo.On("Save", ctx, mock.Anything).Return(nil)
		s, _ := Open(ctx, repo)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.Update(ctx, func(snap *domain.Snapshot) error {
					snap.NextRentalID()
					return nil
				})
			}()
		}
		wg.Wait()

		snap, _ := s.Snapshot(ctx)
		assert.Equal(t, 21, snap.NextRentalSeq)
	})
}

func TestReloadAndClose(t *testing.T) {
	ctx := context.Background()
	persisted := domain.NewSnapshot()
	persisted.Users = append(persisted.Users, domain.User{ID: "carol"})

	repo := new(MockSnapshotRepo)
	repo.On("Load", ctx).Return(nil, nil).Once()
	repo.On("Load", ctx).Return(persisted, nil).Once()
	repo.On("Save", ctx, mock.Anything).Return(nil)

	s, err := Open(ctx, repo)
	require.NoError(t, err)
	require.NoError(t, s.Reload(ctx))

	snap, _ := s.Snapshot(ctx)
	assert.NotNil(t, snap.FindUser("carol"))

	assert.NoError(t, s.Close(ctx))
	repo.AssertNumberOfCalls(t, "Save", 1)
}
