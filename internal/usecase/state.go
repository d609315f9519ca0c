package usecase

import (
	"context"
	"time"

	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// loadState decodes the value stored under key into dst. Missing keys,
// storage failures and corrupt payloads all leave dst untouched and report
// false; client state is best-effort.
func loadState(ctx context.Context, store domain.StateStore, key string, dst interface{}) bool {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("State read failed")
		return false
	}
	if !found || len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("Discarding corrupt state")
		return false
	}
	return true
}

func saveState(ctx context.Context, store domain.StateStore, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("State encode failed")
		return
	}
	if err := store.Set(ctx, key, raw, ttl); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("State write failed")
	}
}

func deleteState(ctx context.Context, store domain.StateStore, key string) {
	if err := store.Delete(ctx, key); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("State delete failed")
	}
}

func newEvent(clock Clock, name, sessionID string, props map[string]interface{}) domain.AnalyticsEvent {
	return domain.AnalyticsEvent{
		ID:         uuid.NewString(),
		Name:       name,
		SessionID:  sessionID,
		OccurredAt: clock.Now(),
		Properties: props,
	}
}

func trackerOrNop(t domain.AnalyticsTracker) domain.AnalyticsTracker {
	if t == nil {
		return domain.NopTracker{}
	}
	return t
}
