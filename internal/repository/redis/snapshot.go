package redis

import (
	"context"
	"errors"
	"fmt"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"

	goredis "github.com/redis/go-redis/v9"
)

const DefaultKey = "fleetrent:snapshot"

type snapshotRepository struct {
	client *goredis.Client
	key    string
}

// NewSnapshotRepository stores the snapshot as a JSON string under key
func NewSnapshotRepository(client *goredis.Client, key string) repository.SnapshotRepository {
	if key == "" {
		key = DefaultKey
	}
	return &snapshotRepository{client: client, key: key}
}

// NewClient connects to Redis and verifies the connection
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (r *snapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	logger.ExternalServiceCall("redis", "GET", "key", r.key)
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		logger.ExternalServiceResult("redis", "GET", nil, "found", false)
		return nil, nil
	}
	logger.ExternalServiceResult("redis", "GET", err)
	if err != nil {
		return nil, err
	}
	return repository.DecodeSnapshot(data)
}

func (r *snapshotRepository) Save(ctx context.Context, s *domain.Snapshot) error {
	data, err := repository.EncodeSnapshot(s)
	if err != nil {
		return err
	}
	logger.ExternalServiceCall("redis", "SET", "key", r.key, "bytes", len(data))
	err = r.client.Set(ctx, r.key, data, 0).Err()
	logger.ExternalServiceResult("redis", "SET", err)
	return err
}
