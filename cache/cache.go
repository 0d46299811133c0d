// Package cache is an optional, external-collaborator snapshot store for
// the unified feed. It sits outside the core's import graph: nothing in
// wsengine, registry, or socket depends on it. A caller that wants the
// latest decoded value for a venue/market/topic/symbol can ask this
// package to hold it, and read it back later — useful for a REST facade
// serving "last known" data between pushes.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "marketfeed:"

// Entry is the envelope stored under each key.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	CachedAt  time.Time       `json:"cached_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Cache is a thin Redis-backed snapshot store, keyed by
// venue/market/topic/symbol.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to addr/db with a small connection pool and bounded
// retry/timeout settings suited to a sidecar cache. ttl is the default
// expiration used when Set is called without an explicit one.
func New(addr string, db int, ttl time.Duration) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,

		PoolSize:     10,
		MinIdleConns: 2,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,

		MaxRetries:      3,
		MinRetryBackoff: 100 * time.Millisecond,
		MaxRetryBackoff: 500 * time.Millisecond,
	})
	return &Cache{client: client, ttl: ttl}
}

// Key builds the canonical cache key for a venue/market/topic/symbol
// tuple. Symbol may be empty for topics that are not symbol-scoped.
func Key(venue, market, topic, symbol string) string {
	if symbol == "" {
		return fmt.Sprintf("%s%s:%s:%s", keyPrefix, venue, market, topic)
	}
	return fmt.Sprintf("%s%s:%s:%s:%s", keyPrefix, venue, market, topic, symbol)
}

// Set stores value under key, JSON-encoded, with ttl (falling back to
// the cache's default ttl when zero).
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal value for %q: %w", key, err)
	}
	entry := Entry{
		Data:      data,
		CachedAt:  time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	encoded, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache: marshal entry for %q: %w", key, err)
	}
	return c.client.Set(ctx, key, encoded, ttl).Err()
}

// Get retrieves the value stored under key into dest. ok is false on a
// cache miss (absent key or Redis nil) or expired entry; it does not
// distinguish those from each other.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: get %q: %w", key, err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return false, fmt.Errorf("cache: decode entry for %q: %w", key, err)
	}
	if time.Now().After(entry.ExpiresAt) {
		_ = c.client.Del(ctx, key).Err()
		return false, nil
	}
	if err := json.Unmarshal(entry.Data, dest); err != nil {
		return false, fmt.Errorf("cache: decode value for %q: %w", key, err)
	}
	return true, nil
}

// Delete removes key, if present.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Health reports whether the Redis connection is reachable.
func (c *Cache) Health(ctx context.Context) bool {
	pong, err := c.client.Ping(ctx).Result()
	return err == nil && pong == "PONG"
}

// Close releases the underlying Redis connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}
