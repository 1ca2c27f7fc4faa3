package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the snapshot as one Redis string value without TTL.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore returns a store writing under the given key.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "teacher-directory:snapshot"
	}
	return &RedisStore{client: client, key: key}
}

// Load fetches and decodes the stored document.
func (s *RedisStore) Load(ctx context.Context, dest interface{}) error {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrEmpty
		}
		return fmt.Errorf("snapshot: redis get %s: %w", s.key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("snapshot: decode %s: %w", s.key, err)
	}
	return nil
}

// Save replaces the stored document.
func (s *RedisStore) Save(ctx context.Context, src interface{}) error {
	payload, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("snapshot: redis set %s: %w", s.key, err)
	}
	return nil
}
