package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps the cached text under one Redis string key.
type RedisStore struct {
	Client *redis.Client
	Key    string
}

// RedisOptions configures NewRedisClient.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient creates a client and checks the connection.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", opts.Addr, err)
	}
	return rdb, nil
}

// NewRedisStore wraps client. An empty key means DefaultKey.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{Client: client, Key: key}
}

func (s *RedisStore) Get(ctx context.Context) (string, bool, error) {
	text, err := s.Client.Get(ctx, s.Key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s from redis: %w", s.Key, err)
	}
	return text, true, nil
}

func (s *RedisStore) Set(ctx context.Context, text string) error {
	if err := s.Client.Set(ctx, s.Key, text, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s in redis: %w", s.Key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.Client.Del(ctx, s.Key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s from redis: %w", s.Key, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.Client.Close()
}
