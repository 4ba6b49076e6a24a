package backend

import (
	"context"
	"fmt"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/repository/file"
	"fleetrent-backend/internal/repository/postgres"
	"fleetrent-backend/internal/repository/redis"
)

// Open builds the snapshot repository selected by persistence.type. The
// returned close function releases its connection.
func Open(ctx context.Context, cfg *config.Config) (repository.SnapshotRepository, func() error, error) {
	switch cfg.Persistence.Type {
	case "", "file":
		logger.Info("Using file persistence", "path", cfg.Persistence.FilePath)
		return file.NewSnapshotRepository(cfg.Persistence.FilePath), func() error { return nil }, nil

	case "postgres":
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, nil, err
		}
		pg := postgres.NewStore(db, cfg.Persistence.KeepSnapshots)
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		logger.Info("Database connection established")
		return pg, pg.Close, nil

	case "redis":
		logger.Info("Connecting to redis...", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		client, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewSnapshotRepository(client, cfg.Redis.Key), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown persistence type: %s", cfg.Persistence.Type)
}
