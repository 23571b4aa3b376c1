package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"smartgym/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	redisIdempotencyPrefix = "smartgym:idempotency:"
	redisOpTimeout         = 500 * time.Millisecond
)

// RedisIdempotencyStore shares cached responses between replicas. Entries
// expire through the Redis TTL, so there is no cleanup goroutine. Redis
// errors degrade to a cache miss.
type RedisIdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

type redisCachedResponse struct {
	StatusCode int         `json:"status"`
	Headers    http.Header `json:"headers"`
	Body       []byte      `json:"body"`
	BodyHash   string      `json:"body_hash"`
	CreatedAt  time.Time   `json:"created_at"`
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl, log: log}
}

func (s *RedisIdempotencyStore) Get(key string) (*CachedResponse, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	raw, err := s.rdb.Get(ctx, redisIdempotencyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("Failed to read idempotency key", "error", err)
		}
		return nil, false
	}

	var cached redisCachedResponse
	if err := json.Unmarshal(raw, &cached); err != nil {
		s.log.Warn("Discarding unreadable idempotency entry", "error", err)
		return nil, false
	}
	return &CachedResponse{
		StatusCode: cached.StatusCode,
		Headers:    cached.Headers,
		Body:       cached.Body,
		BodyHash:   cached.BodyHash,
		CreatedAt:  cached.CreatedAt,
	}, true
}

func (s *RedisIdempotencyStore) Set(key string, response *CachedResponse) {
	response.CreatedAt = time.Now()
	raw, err := json.Marshal(redisCachedResponse{
		StatusCode: response.StatusCode,
		Headers:    response.Headers,
		Body:       response.Body,
		BodyHash:   response.BodyHash,
		CreatedAt:  response.CreatedAt,
	})
	if err != nil {
		s.log.Warn("Failed to encode idempotency entry", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := s.rdb.SetEx(ctx, redisIdempotencyPrefix+key, raw, s.ttl).Err(); err != nil {
		s.log.Warn("Failed to store idempotency key", "error", err)
	}
}

// Stop is a no-op; the Redis client belongs to pkg/client.
func (s *RedisIdempotencyStore) Stop() {}
