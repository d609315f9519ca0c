package v1

import (
	"net/http"

	"mucevher-backend/internal/domain"
	"mucevher-backend/internal/usecase"
	"mucevher-backend/pkg/utils"
)

// PreferencesHandler serves favorites and review likes.
type PreferencesHandler struct {
	catalogUC *usecase.CatalogUsecase
	prefsUC   *usecase.PreferencesUsecase
	browseUC  *usecase.BrowseUsecase
}

func NewPreferencesHandler(catalogUC *usecase.CatalogUsecase, prefsUC *usecase.PreferencesUsecase, browseUC *usecase.BrowseUsecase) *PreferencesHandler {
	return &PreferencesHandler{catalogUC: catalogUC, prefsUC: prefsUC, browseUC: browseUC}
}

// GET /api/v1/favorites
func (h *PreferencesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    h.browseUC.Favorites(r.Context(), sessionID),
	})
}

// POST /api/v1/favorites
func (h *PreferencesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req struct {
		ProductID string `json:"productId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := h.catalogUC.ProductByID(req.ProductID); err != nil {
		utils.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string][]string{
		"favorites": h.prefsUC.AddFavorite(r.Context(), sessionID, req.ProductID),
	})
}

// DELETE /api/v1/favorites/{productId}
func (h *PreferencesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string][]string{
		"favorites": h.prefsUC.RemoveFavorite(r.Context(), sessionID, productID),
	})
}

// GET /api/v1/reviews/liked
func (h *PreferencesHandler) GetLikedReviews(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string][]string{
		"likedReviews": h.prefsUC.LikedReviews(r.Context(), sessionID),
	})
}

// POST /api/v1/reviews/{id}/like
func (h *PreferencesHandler) ToggleReviewLike(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	reviewID := r.PathValue("id")
	liked, err := h.prefsUC.ToggleReviewLike(r.Context(), sessionID, reviewID)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid review ID")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reviewId": reviewID,
		"liked":    liked,
	})
}

// POST /api/v1/favorites/{productId}/toggle
func (h *PreferencesHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if _, err := h.catalogUC.ProductByID(productID); err != nil {
		utils.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}

	favorite := h.prefsUC.ToggleFavorite(r.Context(), sessionID, productID)
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"productId": productID,
		"favorite":  favorite,
	})
}

// GET /api/v1/preferences
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.prefsUC.Snapshot(r.Context(), sessionID))
}
