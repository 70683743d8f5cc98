package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const maxUpdateAttempts = 5

// RedisStore keeps each session's cart as a JSON document with a TTL equal
// to the session lifetime. Updates use WATCH/MULTI so concurrent requests of
// the same session cannot lose each other's changes.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Cart, error) {
	return s.read(ctx, s.client, cartKey(sessionID))
}

func (s *RedisStore) Update(ctx context.Context, sessionID string, fn func(*Cart)) (*Cart, error) {
	key := cartKey(sessionID)

	var result *Cart
	txf := func(tx *redis.Tx) error {
		c, err := s.read(ctx, tx, key)
		if err != nil {
			return err
		}
		fn(c)

		data, err := json.Marshal(c.Lines())
		if err != nil {
			return fmt.Errorf("marshal cart failed: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = c
		return nil
	}

	for range maxUpdateAttempts {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, fmt.Errorf("redis update failed: %w", err)
	}
	return nil, ErrConflict
}

func (s *RedisStore) Discard(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (s *RedisStore) read(ctx context.Context, c redis.Cmdable, key string) (*Cart, error) {
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return Restore(lines), nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
