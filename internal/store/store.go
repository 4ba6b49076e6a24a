package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

// Store owns the in-memory object graph. Reads share a lock; every mutation
// runs on a private copy that replaces the live state only after the copy
// has been saved.
type Store struct {
	mu    sync.RWMutex
	repo  repository.SnapshotRepository
	state *domain.Snapshot
	now   func() time.Time
}

// Open loads the latest snapshot from repo, or starts empty
func Open(ctx context.Context, repo repository.SnapshotRepository) (*Store, error) {
	logger.EnterMethod("store.Open")
	s := &Store{repo: repo, now: time.Now}
	state, err := repo.Load(ctx)
	if err != nil {
		logger.ExitMethodWithError("store.Open", err)
		return nil, fmt.Errorf("%w: failed to load snapshot: %v", domain.ErrIO, err)
	}
	if state == nil {
		state = domain.NewSnapshot()
	}
	s.state = state
	logger.Info("State loaded",
		"users", len(state.Users), "vehicles", len(state.Vehicles), "rentals", len(state.Rentals))
	logger.ExitMethod("store.Open")
	return s, nil
}

// Read runs fn against the live state. fn must not retain or modify it.
func (s *Store) Read(fn func(*domain.Snapshot) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// Snapshot returns a deep copy of the live state
func (s *Store) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone(), nil
}

// Update applies fn to a copy of the state and persists it. If fn or the
// save fails, the live state is unchanged.
func (s *Store) Update(ctx context.Context, fn func(*domain.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	next.Version = domain.SnapshotVersion
	next.SavedOn = s.now().UTC()
	if err := s.repo.Save(ctx, next); err != nil {
		logger.Error("Failed to save snapshot", "error", err)
		return fmt.Errorf("%w: failed to save snapshot: %v", domain.ErrIO, err)
	}
	s.state = next
	return nil
}

// Reload replaces the live state with the latest persisted snapshot
func (s *Store) Reload(ctx context.Context) error {
	state, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to load snapshot: %v", domain.ErrIO, err)
	}
	if state == nil {
		state = domain.NewSnapshot()
	}
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// Close writes a final snapshot
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SavedOn = s.now().UTC()
	if err := s.repo.Save(ctx, s.state); err != nil {
		return fmt.Errorf("%w: failed to save snapshot on close: %v", domain.ErrIO, err)
	}
	logger.Info("State saved on shutdown")
	return nil
}
