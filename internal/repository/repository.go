package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"fleetrent-backend/internal/domain"
)

// SnapshotRepository persists the complete application state.
// Load returns nil, nil when nothing has been saved yet.
type SnapshotRepository interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snapshot *domain.Snapshot) error
}

// EncodeSnapshot serializes a snapshot into the persisted JSON layout
func EncodeSnapshot(s *domain.Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses the persisted JSON layout, rejecting versions newer
// than this build understands
func DecodeSnapshot(data []byte) (*domain.Snapshot, error) {
	s := domain.NewSnapshot()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.Version > domain.SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported version %d", s.Version, domain.SnapshotVersion)
	}
	if s.Users == nil {
		s.Users = []domain.User{}
	}
	if s.Vehicles == nil {
		s.Vehicles = []domain.Vehicle{}
	}
	if s.Rentals == nil {
		s.Rentals = []domain.Rental{}
	}
	if s.NextRentalSeq < 1 {
		s.NextRentalSeq = len(s.Rentals) + 1
	}
	return s, nil
}
