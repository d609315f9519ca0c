package state

import (
	"context"
	"sync"
	"time"

	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/logger"
	"mucevher-backend/pkg/metrics"
)

// FallbackStore makes a persistence provider best-effort. Every write is
// mirrored into the in-memory store; when the primary fails, reads and
// writes are served from memory and the error is logged, never returned.
//
// Keys written or deleted while the primary was failing stay pending: they
// are read from memory until they have been replayed to the primary, which
// is attempted at the start of every later call.
type FallbackStore struct {
	primary domain.StateStore
	memory  domain.StateStore
	name    string
	metrics *metrics.ServerMetrics

	mu      sync.Mutex
	pending map[string]pendingWrite
	version uint64
}

// pendingWrite is a change the primary has not seen yet. A delete is kept as
// a tombstone.
type pendingWrite struct {
	value     []byte
	expiresAt time.Time
	deleted   bool
	version   uint64
}

// remaining returns the TTL left for a pending value. A zero expiry means the
// value never expires.
func (w pendingWrite) remaining() (time.Duration, bool) {
	if w.deleted {
		return 0, false
	}
	if w.expiresAt.IsZero() {
		return 0, true
	}
	ttl := time.Until(w.expiresAt)
	return ttl, ttl > 0
}

var _ domain.StateStore = (*FallbackStore)(nil)

func NewFallbackStore(primary, memory domain.StateStore, name string, m *metrics.ServerMetrics) *FallbackStore {
	return &FallbackStore{
		primary: primary,
		memory:  memory,
		name:    name,
		metrics: m,
		pending: make(map[string]pendingWrite),
	}
}

func (s *FallbackStore) degrade(ctx context.Context, op, key string, err error) {
	logger.WithContext(ctx).Warn().
		Err(err).
		Str("store", s.name).
		Str("operation", op).
		Str("key", key).
		Msg("State store unavailable, using memory")
	s.metrics.StateFallback(op)
}

func (s *FallbackStore) markPending(key string, w pendingWrite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	w.version = s.version
	s.pending[key] = w
}

func (s *FallbackStore) clearPending(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, key)
}

func (s *FallbackStore) isPending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

// Pending returns the number of changes not yet replayed to the primary.
func (s *FallbackStore) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// replay pushes pending changes to the primary and stops at the first
// failure. An entry superseded while it was being replayed stays pending.
func (s *FallbackStore) replay(ctx context.Context) {
	s.mu.Lock()
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return
	}
	batch := make(map[string]pendingWrite, len(s.pending))
	for k, w := range s.pending {
		batch[k] = w
	}
	s.mu.Unlock()

	for key, w := range batch {
		var err error
		if ttl, live := w.remaining(); live {
			err = s.primary.Set(ctx, key, w.value, ttl)
		} else {
			err = s.primary.Delete(ctx, key)
		}
		if err != nil {
			logger.WithContext(ctx).Debug().Err(err).Str("store", s.name).Msg("State replay deferred")
			return
		}

		s.mu.Lock()
		if cur, ok := s.pending[key]; ok && cur.version == w.version {
			delete(s.pending, key)
		}
		s.mu.Unlock()
	}
	logger.WithContext(ctx).Info().Str("store", s.name).Msg("State store recovered, pending changes replayed")
}

func (s *FallbackStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.replay(ctx)
	if s.isPending(key) {
		value, found, _ := s.memory.Get(ctx, key)
		return value, found, nil
	}

	value, found, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, found, nil
	}
	s.degrade(ctx, "get", key, err)
	value, found, _ = s.memory.Get(ctx, key)
	return value, found, nil
}

func (s *FallbackStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_ = s.memory.Set(ctx, key, value, ttl)
	s.replay(ctx)
	if err := s.primary.Set(ctx, key, value, ttl); err != nil {
		s.degrade(ctx, "set", key, err)
		w := pendingWrite{value: append([]byte(nil), value...)}
		if ttl > 0 {
			w.expiresAt = time.Now().Add(ttl)
		}
		s.markPending(key, w)
		return nil
	}
	s.clearPending(key)
	return nil
}

func (s *FallbackStore) Delete(ctx context.Context, key string) error {
	_ = s.memory.Delete(ctx, key)
	s.replay(ctx)
	if err := s.primary.Delete(ctx, key); err != nil {
		s.degrade(ctx, "delete", key, err)
		s.markPending(key, pendingWrite{deleted: true})
		return nil
	}
	s.clearPending(key)
	return nil
}
