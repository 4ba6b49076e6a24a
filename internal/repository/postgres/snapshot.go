package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

type snapshotRepository struct {
	db *sql.DB
	// keep is how many snapshots to retain; 0 keeps all.
	keep int
}

func NewSnapshotRepository(db *sql.DB, keep int) repository.SnapshotRepository {
	return &snapshotRepository{db: db, keep: keep}
}

func (r *snapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	query := `SELECT payload FROM state_snapshots ORDER BY id DESC LIMIT 1`
	logger.DatabaseCall("SELECT", query)

	var payload []byte
	err := r.db.QueryRowContext(ctx, query).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("SELECT", 0, nil)
		return nil, nil
	}
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	logger.DatabaseResult("SELECT", 1, nil)
	return repository.DecodeSnapshot(payload)
}

func (r *snapshotRepository) Save(ctx context.Context, s *domain.Snapshot) error {
	payload, err := repository.EncodeSnapshot(s)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `INSERT INTO state_snapshots (version, payload, created_on) VALUES ($1, $2, $3)`
	logger.DatabaseCall("INSERT", insert)
	res, err := tx.ExecContext(ctx, insert, s.Version, payload, s.SavedOn)
	if err != nil {
		logger.DatabaseResult("INSERT", 0, err)
		return err
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult("INSERT", n, nil)

	if r.keep > 0 {
		prune := `DELETE FROM state_snapshots WHERE id NOT IN (SELECT id FROM state_snapshots ORDER BY id DESC LIMIT $1)`
		logger.DatabaseCall("DELETE", prune)
		res, err := tx.ExecContext(ctx, prune, r.keep)
		if err != nil {
			logger.DatabaseResult("DELETE", 0, err)
			return err
		}
		n, _ := res.RowsAffected()
		logger.DatabaseResult("DELETE", n, nil)
	}

	return tx.Commit()
}
