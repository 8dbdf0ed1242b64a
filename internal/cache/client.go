// Package cache exposes the Redis key/value endpoints and the JSON helpers
// other packages use to cache computed responses.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"delivery-admin/internal/config"
	"delivery-admin/internal/logger"

	"github.com/redis/go-redis/v9"
)

var log = logger.New("cache")

const defaultURL = "redis://localhost:6379"

var (
	mu     sync.Mutex
	url    = defaultURL
	client *redis.Client
)

// Init records the Redis URL. The connection is made on first use.
func Init(cfg *config.Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.RedisURL != "" {
		url = cfg.RedisURL
	}
	client = nil
}

// Client returns the shared client, creating it on the first call.
func Client() (*redis.Client, error) {
	mu.Lock()
	defer mu.Unlock()

	if client != nil {
		return client, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client = redis.NewClient(opts)
	return client, nil
}

// SetClient replaces the shared client, e.g. with one pointing at miniredis.
func SetClient(c *redis.Client) {
	mu.Lock()
	defer mu.Unlock()
	client = c
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}

// GetJSON decodes key into dst. It reports false when the key is missing.
func GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	rdb, err := Client()
	if err != nil {
		return false, err
	}

	raw, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores v as JSON. A ttl of zero keeps the key until deleted.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	rdb, err := Client()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return rdb.Set(ctx, key, raw, ttl).Err()
}

func Delete(ctx context.Context, keys ...string) error {
	rdb, err := Client()
	if err != nil {
		return err
	}
	return rdb.Del(ctx, keys...).Err()
}

// DeletePattern removes every key matching a glob pattern, walking the
// keyspace with SCAN so large databases are not blocked.
func DeletePattern(ctx context.Context, pattern string) (int, error) {
	rdb, err := Client()
	if err != nil {
		return 0, err
	}

	deleted := 0
	iter := rdb.Scan(ctx, 0, pattern, 500).Iterator()
	batch := make([]string, 0, 500)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := rdb.Del(ctx, batch...).Err(); err != nil {
				return deleted, err
			}
			deleted += len(batch)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, err
	}
	if len(batch) > 0 {
		if err := rdb.Del(ctx, batch...).Err(); err != nil {
			return deleted, err
		}
		deleted += len(batch)
	}
	return deleted, nil
}

func Flush(ctx context.Context) error {
	rdb, err := Client()
	if err != nil {
		return err
	}
	return rdb.FlushDB(ctx).Err()
}
