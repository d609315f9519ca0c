package v1

import "net/http"

type Handlers struct {
	Catalog     *CatalogHandler
	Search      *SearchHandler
	Cart        *CartHandler
	Coupon      *CouponHandler
	Preferences *PreferencesHandler
	Config      *ConfigHandler
	Health      *HealthHandler
}

func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	// Config (Public)
	mux.HandleFunc("GET /api/v1/config/enums", h.Config.GetEnums)

	// Catalog
	mux.HandleFunc("GET /api/v1/products", h.Catalog.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{slug}", h.Catalog.GetProductDetails)
	mux.HandleFunc("GET /api/v1/recently-viewed", h.Catalog.GetRecentlyViewed)

	// Search
	mux.HandleFunc("GET /api/v1/search", h.Search.Search)
	mux.HandleFunc("GET /api/v1/search/recent", h.Search.GetRecentSearches)
	mux.HandleFunc("DELETE /api/v1/search/recent", h.Search.ClearRecentSearches)

	// Cart
	mux.HandleFunc("GET /api/v1/cart", h.Cart.GetCart)
	mux.HandleFunc("POST /api/v1/cart", h.Cart.AddToCart)
	mux.HandleFunc("PUT /api/v1/cart", h.Cart.UpdateCart)
	mux.HandleFunc("DELETE /api/v1/cart", h.Cart.ClearCart)
	mux.HandleFunc("DELETE /api/v1/cart/{productId}", h.Cart.RemoveFromCart)
	mux.HandleFunc("PUT /api/v1/cart/visibility", h.Cart.SetVisibility)
	mux.HandleFunc("GET /api/v1/cart/inquiry", h.Cart.GetInquiry)

	// Coupon
	mux.HandleFunc("POST /api/v1/cart/coupon", h.Coupon.ApplyCoupon)
	mux.HandleFunc("DELETE /api/v1/cart/coupon", h.Coupon.RemoveCoupon)

	// Favorites & reviews
	mux.HandleFunc("GET /api/v1/favorites", h.Preferences.GetFavorites)
	mux.HandleFunc("POST /api/v1/favorites", h.Preferences.AddFavorite)
	mux.HandleFunc("DELETE /api/v1/favorites/{productId}", h.Preferences.RemoveFavorite)
	mux.HandleFunc("POST /api/v1/favorites/{productId}/toggle", h.Preferences.ToggleFavorite)
	mux.HandleFunc("GET /api/v1/preferences", h.Preferences.GetPreferences)
	mux.HandleFunc("GET /api/v1/reviews/liked", h.Preferences.GetLikedReviews)
	mux.HandleFunc("POST /api/v1/reviews/{id}/like", h.Preferences.ToggleReviewLike)

	// Health Check
	mux.HandleFunc("GET /api/v1/health", h.Health.Health)
	mux.HandleFunc("GET /health", h.Health.Health) // Support root health check for Load Balancers
}
