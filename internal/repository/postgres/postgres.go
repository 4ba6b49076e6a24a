package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fleetrent-backend/internal/repository"

	_ "github.com/lib/pq"
)

const schema = `CREATE TABLE IF NOT EXISTS state_snapshots (
	id         BIGSERIAL PRIMARY KEY,
	version    INTEGER     NOT NULL,
	payload    JSONB       NOT NULL,
	created_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

type Store struct {
	db *sql.DB
	repository.SnapshotRepository
}

func NewStore(db *sql.DB, keep int) *Store {
	return &Store{
		db:                 db,
		SnapshotRepository: NewSnapshotRepository(db, keep),
	}
}

// Open connects to PostgreSQL and verifies the connection
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the snapshot table when it does not exist
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
