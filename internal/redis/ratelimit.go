package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig bounds auth attempts per client IP.
type RateLimitConfig struct {
	AuthLimit  int
	AuthWindow time.Duration
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		AuthLimit:  10,
		AuthWindow: 60 * time.Second,
	}
}

// RateLimiter throttles brute-force sensitive endpoints with a fixed
// window counter kept in Redis.
type RateLimiter struct {
	client *goredis.Client
	config RateLimitConfig
}

// RateLimitResult reports the outcome of one check.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
	Limit     int
}

func NewRateLimiter(client *goredis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{client: client, config: config}
}

// AllowAuth checks and consumes one auth attempt for the given IP.
func (r *RateLimiter) AllowAuth(ctx context.Context, ip string) (*RateLimitResult, error) {
	key := fmt.Sprintf("ratelimit:%s:auth", ip)
	return r.checkLimit(ctx, key, r.config.AuthLimit, r.config.AuthWindow)
}

// ResetAuth clears the counter for an IP.
func (r *RateLimiter) ResetAuth(ctx context.Context, ip string) error {
	return r.client.Del(ctx, fmt.Sprintf("ratelimit:%s:auth", ip)).Err()
}

var rateLimitScript = goredis.NewScript(`
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local current = redis.call('GET', key)
	if current == false then
		current = 0
	else
		current = tonumber(current)
	end

	local ttl = redis.call('TTL', key)
	if ttl < 0 then
		ttl = window
	end

	if current < limit then
		redis.call('INCR', key)
		if ttl == window then
			redis.call('EXPIRE', key, window)
		end
		return {1, limit - current - 1, ttl}
	else
		return {0, 0, ttl}
	end
`)

// checkLimit atomically increments and checks the counter.
func (r *RateLimiter) checkLimit(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	result, err := rateLimitScript.Run(ctx, r.client, []string{key}, limit, int(window.Seconds())).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) < 3 {
		return nil, fmt.Errorf("unexpected rate limit result format")
	}

	return &RateLimitResult{
		Allowed:   values[0].(int64) == 1,
		Remaining: int(values[1].(int64)),
		ResetIn:   time.Duration(values[2].(int64)) * time.Second,
		Limit:     limit,
	}, nil
}
