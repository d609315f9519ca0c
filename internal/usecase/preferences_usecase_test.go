package usecase

import (
	"context"
	"strings"
	"testing"

	"mucevher-backend/config"
	"mucevher-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPreferences() (*PreferencesUsecase, *memStore) {
	store := newMemStore()
	return NewPreferencesUsecase(store, &config.Config{RecentViewsLimit: 3, RecentSearchesLimit: 2, LikedReviewsLimit: 3}), store
}

func TestPreferences_Favorites(t *testing.T) {
	prefs, _ := newTestPreferences()
	ctx := context.Background()

	assert.Empty(t, prefs.Favorites(ctx, "s1"))

	prefs.AddFavorite(ctx, "s1", "1")
	prefs.AddFavorite(ctx, "s1", "2")
	prefs.AddFavorite(ctx, "s1", "1")
	assert.Equal(t, []string{"2", "1"}, prefs.Favorites(ctx, "s1"))

	assert.False(t, prefs.ToggleFavorite(ctx, "s1", "2"))
	assert.True(t, prefs.ToggleFavorite(ctx, "s1", "3"))
	assert.Equal(t, []string{"3", "1"}, prefs.Favorites(ctx, "s1"))

	prefs.RemoveFavorite(ctx, "s1", "1")
	prefs.RemoveFavorite(ctx, "s1", "1")
	assert.Equal(t, []string{"3"}, prefs.Favorites(ctx, "s1"))
	assert.Empty(t, prefs.Favorites(ctx, "s2"))
}

func TestPreferences_ReviewLikes(t *testing.T) {
	prefs, _ := newTestPreferences()
	ctx := context.Background()

	toggle := func(id string) bool {
		liked, err := prefs.ToggleReviewLike(ctx, "s1", id)
		require.NoError(t, err)
		return liked
	}

	assert.True(t, toggle("r1"))
	assert.True(t, toggle("r2"))
	assert.False(t, toggle("r1"))
	assert.Equal(t, []string{"r2"}, prefs.LikedReviews(ctx, "s1"))
}

func TestPreferences_ReviewLikesAreCapped(t *testing.T) {
	prefs, _ := newTestPreferences()
	ctx := context.Background()

	for _, id := range []string{"r1", "r2", "r3", "r4", "r5"} {
		_, err := prefs.ToggleReviewLike(ctx, "s1", id)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"r5", "r4", "r3"}, prefs.LikedReviews(ctx, "s1"))
}

func TestPreferences_ReviewLikeRejectsBadIDs(t *testing.T) {
	prefs, store := newTestPreferences()
	ctx := context.Background()

	for _, id := range []string{"", "has space", "r/1", strings.Repeat("a", 65)} {
		_, err := prefs.ToggleReviewLike(ctx, "s1", id)
		assert.ErrorIs(t, err, domain.ErrInvalidReviewID, id)
	}
	assert.Empty(t, prefs.LikedReviews(ctx, "s1"))
	assert.Empty(t, store.data)
}

func TestPreferences_RecentlyViewed(t *testing.T) {
	prefs, _ := newTestPreferences()
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3", "2", "4"} {
		prefs.RecordView(ctx, "s1", id)
	}
	assert.Equal(t, []string{"4", "2", "3"}, prefs.RecentlyViewed(ctx, "s1"))
}

func TestPreferences_RecentSearches(t *testing.T) {
	prefs, store := newTestPreferences()
	ctx := context.Background()

	prefs.RecordSearch(ctx, "s1", "yüzük")
	prefs.RecordSearch(ctx, "s1", "   ")
	prefs.RecordSearch(ctx, "s1", " kolye ")
	prefs.RecordSearch(ctx, "s1", "YÜZÜK")
	assert.Equal(t, []string{"YÜZÜK", "kolye"}, prefs.RecentSearches(ctx, "s1"))

	prefs.RecordSearch(ctx, "s1", "küpe")
	assert.Equal(t, []string{"küpe", "YÜZÜK"}, prefs.RecentSearches(ctx, "s1"))

	prefs.ClearRecentSearches(ctx, "s1")
	assert.Empty(t, prefs.RecentSearches(ctx, "s1"))
	_, found := store.data[domain.StateKey(domain.StateKeyRecentSearches, "s1")]
	assert.False(t, found)
}

func TestPreferences_StorageFailureDegrades(t *testing.T) {
	prefs, store := newTestPreferences()
	store.fail = true
	ctx := context.Background()

	assert.True(t, prefs.ToggleFavorite(ctx, "s1", "1"))
	assert.Empty(t, prefs.Favorites(ctx, "s1"))

	snap := prefs.Snapshot(ctx, "s1")
	require.NotNil(t, snap.Favorites)
	assert.Empty(t, snap.RecentSearches)
}
