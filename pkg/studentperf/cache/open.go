package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config selects and configures a Store.
type Config struct {
	// Backend is file, redis or memory. Empty picks redis when RedisAddr is
	// set and file otherwise.
	Backend   string
	Path      string
	Key       string
	RedisAddr string
	RedisPass string
	RedisDB   int
}

// Open builds the Store described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = BackendFile
		if cfg.RedisAddr != "" {
			backend = BackendRedis
		}
	}

	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(cfg.Path, cfg.Key)
	case BackendRedis:
		client, err := NewRedisClient(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.Key), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}
