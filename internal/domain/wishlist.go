package domain

// Preferences is the persisted per-session UI state besides the cart.
type Preferences struct {
	Favorites      []string `json:"favorites"`
	LikedReviews   []string `json:"likedReviews"`
	RecentlyViewed []string `json:"recentlyViewed"`
	RecentSearches []string `json:"recentSearches"`
}
