package store

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	goRedis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// redisStore keeps the session map in Redis so several terminals on the
// same machine can share one login.
type redisStore struct {
	client *goRedis.Client
}

func NewRedisStore(client *goRedis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, goRedis.Nil) {
		return "", ErrNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to read session key %s: %w", key, err)
	}

	return value, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write session key %s: %w", key, err)
	}

	return nil
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, redisKeyPrefix+key)
	}

	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to delete session keys: %w", err)
	}

	return nil
}

func (s *redisStore) Clear(ctx context.Context) error {
	keys, err := s.client.Keys(ctx, redisKeyPrefix+"*").Result()
	if err != nil {
		return fmt.Errorf("failed to list session keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err = s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear session keys: %w", err)
	}

	return nil
}
