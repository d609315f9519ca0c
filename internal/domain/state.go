package domain

import (
	"context"
	"time"
)

// StateStore is the key-value persistence provider for client state
// (cart, applied coupon, preferences). Implementations may fail; callers
// treat it as best-effort.
type StateStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// State key namespaces.
const (
	StateKeyCart           = "cart"
	StateKeyCoupon         = "coupon"
	StateKeyFavorites      = "favorites"
	StateKeyLikedReviews   = "liked-reviews"
	StateKeyRecentViews    = "recently-viewed"
	StateKeyRecentSearches = "recent-searches"
)

// StateKey builds the storage key for a namespace and session.
func StateKey(namespace, sessionID string) string {
	return namespace + ":" + sessionID
}
