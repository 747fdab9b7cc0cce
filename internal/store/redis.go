// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/eranhirsch/nothanks/internal/models"
)

const (
	// gameKeyPrefix namespaces game snapshots in redis.
	gameKeyPrefix = "nothanks:game:"

	// gameExpiration evicts abandoned tables. Every save refreshes it, so a
	// table in active play never expires.
	gameExpiration = 24 * time.Hour
)

// RedisStore persists one versioned JSON snapshot per table. It implements
// game.SnapshotStore.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already connected client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Connect initializes a Redis client from environment variables:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_PASSWORD (optional)
//   - REDIS_DB (optional, default 0)
func Connect() (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func gameKey(tableID uuid.UUID) string {
	return gameKeyPrefix + tableID.String()
}

// Save writes the snapshot, refreshing the table TTL.
func (s *RedisStore) Save(ctx context.Context, tableID uuid.UUID, snap *models.GameSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal game snapshot: %w", err)
	}
	return s.client.Set(ctx, gameKey(tableID), data, gameExpiration).Err()
}

// Load returns the stored snapshot, or (nil, nil) when the table has none.
// Snapshots with an unknown schema version are rejected here rather than
// handed to the engine.
func (s *RedisStore) Load(ctx context.Context, tableID uuid.UUID) (*models.GameSnapshot, error) {
	data, err := s.client.Get(ctx, gameKey(tableID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var snap models.GameSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal game snapshot: %w", err)
	}
	if snap.Version != models.SnapshotVersion {
		return nil, fmt.Errorf("snapshot for table %s has unknown version %d", tableID, snap.Version)
	}
	return &snap, nil
}

// Clear removes the table's snapshot.
func (s *RedisStore) Clear(ctx context.Context, tableID uuid.UUID) error {
	return s.client.Del(ctx, gameKey(tableID)).Err()
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt parses an environment variable as integer, else a default.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
