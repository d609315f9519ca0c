package v1

import (
	"net/http"

	"mucevher-backend/internal/domain"
	"mucevher-backend/internal/usecase"
	"mucevher-backend/pkg/utils"
)

type SearchHandler struct {
	searchUC *usecase.SearchUsecase
	prefsUC  *usecase.PreferencesUsecase
}

func NewSearchHandler(searchUC *usecase.SearchUsecase, prefsUC *usecase.PreferencesUsecase) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		prefsUC:  prefsUC,
	}
}

// GET /api/v1/search?q=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	page := utils.ParseInt(query.Get("page"), 1)
	limit := utils.ParseInt(query.Get("limit"), 20)

	products, pagination := h.searchUC.Search(r.Context(), sessionID, query.Get("q"), page, limit)

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    products,
		Meta:    &pagination,
	})
}

// GET /api/v1/search/recent
func (h *SearchHandler) GetRecentSearches(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    h.prefsUC.RecentSearches(r.Context(), sessionID),
	})
}

// DELETE /api/v1/search/recent
func (h *SearchHandler) ClearRecentSearches(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	h.prefsUC.ClearRecentSearches(r.Context(), sessionID)
	w.WriteHeader(http.StatusNoContent)
}
