package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process Store. Values never expire.
type MemoryStore struct {
	items *gocache.Cache
	key   string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: gocache.New(gocache.NoExpiration, 10*time.Minute),
		key:   DefaultKey,
	}
}

func (s *MemoryStore) Get(_ context.Context) (string, bool, error) {
	v, ok := s.items.Get(s.key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (s *MemoryStore) Set(_ context.Context, text string) error {
	s.items.Set(s.key, text, gocache.NoExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context) error {
	s.items.Delete(s.key)
	return nil
}
