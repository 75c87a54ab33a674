package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis instance, for deployments where the
// collector process and the API handlers run behind a shared cache.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis and verifies the connection with a short ping.
// Snapshot entries expire after ttl (0 disables expiry).
func NewRedis(addr, password string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) getJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, b, ttl).Err()
}

// GetFeedMeta returns the stored metadata or nil on a miss.
func (r *Redis) GetFeedMeta(ctx context.Context, family, id string) (*FeedMeta, error) {
	var meta FeedMeta
	found, err := r.getJSON(ctx, metaKey(family, id), &meta)
	if err != nil || !found {
		return nil, err
	}
	return &meta, nil
}

// SetFeedMeta stores metadata without expiry.
func (r *Redis) SetFeedMeta(ctx context.Context, family, id string, meta FeedMeta) error {
	return r.setJSON(ctx, metaKey(family, id), meta, 0)
}

// GetSnapshot returns the cached snapshot items or nil on a miss.
func (r *Redis) GetSnapshot(ctx context.Context, family, id string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	found, err := r.getJSON(ctx, snapshotKey(family, id), &items)
	if err != nil || !found {
		return nil, err
	}
	return items, nil
}

// SetSnapshot stores the snapshot items under the configured TTL.
func (r *Redis) SetSnapshot(ctx context.Context, family, id string, items []json.RawMessage) error {
	return r.setJSON(ctx, snapshotKey(family, id), items, r.ttl)
}

// Close releases the underlying connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
