package cache

import (
	"context"
	"time"

	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/cache"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache service
// defaultExpiration: default TTL for items
// cleanupInterval: how often to scan for expired items
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) cache.CacheService {
	return &memoryCache{
		store: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *memoryCache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *memoryCache) Set(key string, value interface{}, duration time.Duration) {
	c.store.Set(key, value, duration)
}

func (c *memoryCache) Delete(key string) {
	c.store.Delete(key)
}

func (c *memoryCache) Flush() {
	c.store.Flush()
}

// MemoryStateStore keeps client state in process memory. It never fails and
// honours per-key TTLs; a zero TTL means no expiry.
type MemoryStateStore struct {
	store *gocache.Cache
}

func NewMemoryStateStore(cleanupInterval time.Duration) *MemoryStateStore {
	return &MemoryStateStore{
		store: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

var _ domain.StateStore = (*MemoryStateStore)(nil)

func (s *MemoryStateStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, found := s.store.Get(key)
	if !found {
		return nil, false, nil
	}
	b := val.([]byte)
	return append([]byte(nil), b...), true, nil
}

func (s *MemoryStateStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	s.store.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

func (s *MemoryStateStore) Delete(_ context.Context, key string) error {
	s.store.Delete(key)
	return nil
}

// ItemCount reports live and not-yet-evicted keys.
func (s *MemoryStateStore) ItemCount() int {
	return s.store.ItemCount()
}
