package resource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"github.com/weiawesome/momentroom/internal/config"
	"github.com/weiawesome/momentroom/internal/query"
)

// RedisStore is a Store backed by Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg config.RedisConfig, prefix string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{
		client: client,
		prefix: prefix,
	}, nil
}

// StorePrefix scopes prefix to one API deployment so that processes pointed
// at different base URLs never read each other's entries.
func StorePrefix(prefix, baseURL string) string {
	return fmt.Sprintf("%s:%016x", prefix, xxhash.Sum64String(baseURL))
}

// BuildKey namespaces a resource key.
func (s *RedisStore) BuildKey(key query.Key) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

func (s *RedisStore) Get(ctx context.Context, key query.Key) ([]byte, error) {
	data, err := s.client.Get(ctx, s.BuildKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key query.Key, data []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.BuildKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}

	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...query.Key) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.BuildKey(k)
	}

	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}

	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
