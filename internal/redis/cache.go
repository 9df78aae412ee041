package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Cache key patterns:
// - cities            - 10m TTL, full city list
// - properties:active - 1m TTL, active listing feed

// CacheStore handles read-through caching in Redis.
type CacheStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewCacheStore(client *goredis.Client, ttl time.Duration) *CacheStore {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &CacheStore{client: client, ttl: ttl}
}

// Get unmarshals the cached value into dest. Returns false on a miss.
func (c *CacheStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CacheStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *CacheStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
