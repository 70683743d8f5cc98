package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revocations remembers ended sessions until their tokens would have
// expired anyway.
type Revocations interface {
	Revoke(ctx context.Context, sessionID string, until time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type MemRevocations struct {
	mu  sync.Mutex
	now func() time.Time
	m   map[string]time.Time
}

func NewMemRevocations() *MemRevocations {
	return &MemRevocations{now: time.Now, m: make(map[string]time.Time)}
}

func (r *MemRevocations) Revoke(_ context.Context, sessionID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, exp := range r.m {
		if now.After(exp) {
			delete(r.m, id)
		}
	}
	r.m[sessionID] = until
	return nil
}

func (r *MemRevocations) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.m[sessionID]
	return ok && !r.now().After(exp), nil
}

type RedisRevocations struct {
	client *redis.Client
}

func NewRedisRevocations(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client: client}
}

func (r *RedisRevocations) Revoke(ctx context.Context, sessionID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKey(sessionID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis revoke failed: %w", err)
	}
	return nil
}

func (r *RedisRevocations) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}
	return n > 0, nil
}

func revokedKey(sessionID string) string {
	return fmt.Sprintf("revoked:%s", sessionID)
}
