package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisClient is the subset of go-redis commands the store uses. Satisfied
// by *redis.Client.
type RedisClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore implements Store over a shared Redis instance so attempt counts
// survive restarts and synchronize across horizontally scaled instances.
//
// Redis errors degrade open: the limiter is coarse brute-force mitigation,
// not a security boundary, so an unreachable Redis must not block logins.
type RedisStore struct {
	rdb RedisClient

	prefix      string
	maxAttempts int
	window      time.Duration
}

var _ Store = (*RedisStore)(nil)

type RedisOption func(*RedisStore)

func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = strings.Trim(prefix, ":") }
}

func NewRedisStore(rdb RedisClient, maxAttempts int, window time.Duration, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		rdb:         rdb,
		prefix:      "ratelimit:login",
		maxAttempts: maxAttempts,
		window:      window,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(clientKey string) string {
	return s.prefix + ":" + clientKey
}

func (s *RedisStore) CheckAndRecord(ctx context.Context, clientKey string) (Decision, error) {
	key := s.key(clientKey)

	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		log.Warn().Err(err).Msg("rate-limit redis incr failed, allowing attempt")
		return Decision{Allowed: true}, nil
	}

	// First attempt in this window owns the expiry.
	if count == 1 {
		if err := s.rdb.Expire(ctx, key, s.window).Err(); err != nil {
			log.Warn().Err(err).Msg("rate-limit redis expire failed")
		}
	}

	if count > int64(s.maxAttempts) {
		ttl, err := s.rdb.TTL(ctx, key).Result()
		if err != nil {
			return Decision{RetryAfter: s.window}, nil
		}
		if ttl < 0 {
			// The counter has no expiry, so the initial EXPIRE must have
			// failed and the key would otherwise deny forever. Re-arm the
			// window; if that fails too, degrade open.
			if err := s.rdb.Expire(ctx, key, s.window).Err(); err != nil {
				log.Warn().Err(err).Msg("rate-limit redis expire re-arm failed, allowing attempt")
				return Decision{Allowed: true}, nil
			}
			ttl = s.window
		}
		return Decision{RetryAfter: ttl}, nil
	}

	return Decision{Allowed: true}, nil
}

func (s *RedisStore) Reset(ctx context.Context, clientKey string) error {
	if err := s.rdb.Del(ctx, s.key(clientKey)).Err(); err != nil {
		log.Warn().Err(err).Msg("rate-limit redis del failed")
	}
	return nil
}
