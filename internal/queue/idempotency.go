package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyPrefix = "kaiban:idempotency:"
	pendingMarker     = "pending"
)

// ClaimState describes what a caller found when claiming a key.
type ClaimState int

const (
	// Claimed means the caller owns the key and must Complete or Release it.
	Claimed ClaimState = iota
	// InFlight means another request holds the key and has not finished.
	InFlight
	// Completed means the key was already processed; the stored result is
	// returned.
	Completed
)

// IdempotencyStore guards commands against being applied twice.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string) (ClaimState, []byte, error)
	Complete(ctx context.Context, key string, result []byte) error
	Release(ctx context.Context, key string) error
}

// RedisDeduper records idempotency keys in Redis so every server instance
// sees the same claims.
type RedisDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDeduper(client *redis.Client, ttl time.Duration) *RedisDeduper {
	return &RedisDeduper{client: client, ttl: ttl}
}

func (r *RedisDeduper) key(key string) string {
	return idempotencyPrefix + key
}

// Claim records key as pending if nobody holds it yet.
func (r *RedisDeduper) Claim(ctx context.Context, key string) (ClaimState, []byte, error) {
	added, err := r.client.SetNX(ctx, r.key(key), pendingMarker, r.ttl).Result()
	if err != nil {
		return 0, nil, fmt.Errorf("claim idempotency key: %w", err)
	}
	if added {
		return Claimed, nil, nil
	}

	val, err := r.client.Get(ctx, r.key(key)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// Expired between the two calls; try once more.
		return r.Claim(ctx, key)
	case err != nil:
		return 0, nil, fmt.Errorf("read idempotency key: %w", err)
	case val == pendingMarker:
		return InFlight, nil, nil
	default:
		return Completed, []byte(val), nil
	}
}

// Complete stores the result for replays, keeping the original TTL window.
func (r *RedisDeduper) Complete(ctx context.Context, key string, result []byte) error {
	if err := r.client.Set(ctx, r.key(key), result, r.ttl).Err(); err != nil {
		return fmt.Errorf("store idempotent result: %w", err)
	}
	return nil
}

// Release deletes a claim so the caller may retry the command.
func (r *RedisDeduper) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}
