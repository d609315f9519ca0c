package usecase

import (
	"context"
	"slices"
	"strings"

	"mucevher-backend/config"
	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/utils"
)

// PreferencesUsecase keeps the small per-session lists the storefront
// remembers between visits: favorites, liked reviews, recently viewed
// products and recent searches. Every list is most-recent-first.
type PreferencesUsecase struct {
	store domain.StateStore
	cfg   *config.Config
	locks *sessionLocks
}

func NewPreferencesUsecase(store domain.StateStore, cfg *config.Config) *PreferencesUsecase {
	return &PreferencesUsecase{
		store: store,
		cfg:   cfg,
		locks: newSessionLocks(),
	}
}

func (u *PreferencesUsecase) list(ctx context.Context, namespace, sessionID string) []string {
	out := []string{}
	loadState(ctx, u.store, domain.StateKey(namespace, sessionID), &out)
	return out
}

// update runs fn over the stored list under the session lock and persists
// the result.
func (u *PreferencesUsecase) update(ctx context.Context, namespace, sessionID string, fn func([]string) []string) []string {
	unlock := u.locks.lock(sessionID)
	defer unlock()

	next := fn(u.list(ctx, namespace, sessionID))
	key := domain.StateKey(namespace, sessionID)
	if len(next) == 0 {
		deleteState(ctx, u.store, key)
	} else {
		saveState(ctx, u.store, key, next, u.cfg.CartTTL)
	}
	return next
}

// moveToFront puts value first, drops earlier copies matched by same and
// trims the list to limit entries (0 = unbounded).
func moveToFront(list []string, value string, limit int, same func(a, b string) bool) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, value)
	for _, v := range list {
		if !same(v, value) {
			out = append(out, v)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func without(list []string, value string) []string {
	return slices.DeleteFunc(slices.Clone(list), func(v string) bool { return v == value })
}

func equal(a, b string) bool { return a == b }

// --- Favorites ---

func (u *PreferencesUsecase) Favorites(ctx context.Context, sessionID string) []string {
	return u.list(ctx, domain.StateKeyFavorites, sessionID)
}

func (u *PreferencesUsecase) AddFavorite(ctx context.Context, sessionID, productID string) []string {
	return u.update(ctx, domain.StateKeyFavorites, sessionID, func(list []string) []string {
		if slices.Contains(list, productID) {
			return list
		}
		return moveToFront(list, productID, 0, equal)
	})
}

func (u *PreferencesUsecase) RemoveFavorite(ctx context.Context, sessionID, productID string) []string {
	return u.update(ctx, domain.StateKeyFavorites, sessionID, func(list []string) []string {
		return without(list, productID)
	})
}

// ToggleFavorite flips the product's favorite state and reports the new one.
func (u *PreferencesUsecase) ToggleFavorite(ctx context.Context, sessionID, productID string) bool {
	var added bool
	u.update(ctx, domain.StateKeyFavorites, sessionID, func(list []string) []string {
		if slices.Contains(list, productID) {
			return without(list, productID)
		}
		added = true
		return moveToFront(list, productID, 0, equal)
	})
	return added
}

// --- Liked reviews ---

func (u *PreferencesUsecase) LikedReviews(ctx context.Context, sessionID string) []string {
	return u.list(ctx, domain.StateKeyLikedReviews, sessionID)
}

const maxReviewIDLength = 64

func validReviewID(id string) bool {
	if id == "" || len(id) > maxReviewIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// ToggleReviewLike flips the like on a review. The list keeps at most
// LikedReviewsLimit entries; the oldest likes fall off first.
func (u *PreferencesUsecase) ToggleReviewLike(ctx context.Context, sessionID, reviewID string) (bool, error) {
	if !validReviewID(reviewID) {
		return false, domain.ErrInvalidReviewID
	}
	var liked bool
	u.update(ctx, domain.StateKeyLikedReviews, sessionID, func(list []string) []string {
		if slices.Contains(list, reviewID) {
			return without(list, reviewID)
		}
		liked = true
		return moveToFront(list, reviewID, u.cfg.LikedReviewsLimit, equal)
	})
	return liked, nil
}

// --- Recently viewed ---

func (u *PreferencesUsecase) RecentlyViewed(ctx context.Context, sessionID string) []string {
	return u.list(ctx, domain.StateKeyRecentViews, sessionID)
}

func (u *PreferencesUsecase) RecordView(ctx context.Context, sessionID, productID string) []string {
	return u.update(ctx, domain.StateKeyRecentViews, sessionID, func(list []string) []string {
		return moveToFront(list, productID, u.cfg.RecentViewsLimit, equal)
	})
}

// --- Recent searches ---

func (u *PreferencesUsecase) RecentSearches(ctx context.Context, sessionID string) []string {
	return u.list(ctx, domain.StateKeyRecentSearches, sessionID)
}

// RecordSearch remembers a trimmed query. Repeats differing only in case
// collapse into the latest spelling. Blank queries are ignored.
func (u *PreferencesUsecase) RecordSearch(ctx context.Context, sessionID, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return u.RecentSearches(ctx, sessionID)
	}
	return u.update(ctx, domain.StateKeyRecentSearches, sessionID, func(list []string) []string {
		return moveToFront(list, query, u.cfg.RecentSearchesLimit, func(a, b string) bool {
			return utils.FoldText(a) == utils.FoldText(b)
		})
	})
}

func (u *PreferencesUsecase) ClearRecentSearches(ctx context.Context, sessionID string) {
	unlock := u.locks.lock(sessionID)
	defer unlock()
	deleteState(ctx, u.store, domain.StateKey(domain.StateKeyRecentSearches, sessionID))
}

// Snapshot returns every list at once.
func (u *PreferencesUsecase) Snapshot(ctx context.Context, sessionID string) domain.Preferences {
	return domain.Preferences{
		Favorites:      u.Favorites(ctx, sessionID),
		LikedReviews:   u.LikedReviews(ctx, sessionID),
		RecentlyViewed: u.RecentlyViewed(ctx, sessionID),
		RecentSearches: u.RecentSearches(ctx, sessionID),
	}
}
