package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

type snapshotRepository struct {
	path string
}

// NewSnapshotRepository stores the snapshot as a JSON document at path
func NewSnapshotRepository(path string) repository.SnapshotRepository {
	return &snapshotRepository{path: path}
}

func (r *snapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("No snapshot file found, starting empty", "path", r.path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return repository.DecodeSnapshot(data)
}

// Save writes to a temporary file in the same directory and renames it over
// the previous snapshot so readers never observe a partial file.
func (r *snapshotRepository) Save(ctx context.Context, s *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := repository.EncodeSnapshot(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
