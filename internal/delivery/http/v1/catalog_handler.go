package v1

import (
	"errors"
	"net/http"

	"mucevher-backend/internal/domain"
	"mucevher-backend/internal/usecase"
	"mucevher-backend/pkg/logger"
	"mucevher-backend/pkg/utils"

	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
	browseUC  *usecase.BrowseUsecase
}

func NewCatalogHandler(catalogUC *usecase.CatalogUsecase, browseUC *usecase.BrowseUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC, browseUC: browseUC}
}

// GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := domain.ProductQuery{
		Filter: domain.ProductFilter{
			Category: query.Get("category"),
			Material: query.Get("material"),
			MinPrice: parsePrice(query.Get("min_price")),
			MaxPrice: parsePrice(query.Get("max_price")),
		},
		Search: query.Get("q"),
		Sort:   domain.ParseSortOption(query.Get("sort")),
		Locale: domain.LocaleFromContext(r.Context()),
		Page:   utils.ParseInt(query.Get("page"), 1),
		Limit:  utils.ParseInt(query.Get("limit"), 20),
	}

	products, pagination := h.catalogUC.ListProducts(r.Context(), q)
	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    products,
		Meta:    &pagination,
	})
}

// parsePrice ignores malformed bounds rather than rejecting the listing.
func parsePrice(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}

// GET /api/v1/products/{slug}
func (h *CatalogHandler) GetProductDetails(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	slug := r.PathValue("slug")
	if slug == "" {
		utils.WriteError(w, http.StatusBadRequest, "Slug required")
		return
	}

	product, err := h.browseUC.ViewProduct(r.Context(), sessionID, slug)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		logger.WithContext(r.Context()).Error().Err(err).Str("slug", slug).Msg("Product lookup failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, product)
}

// GET /api/v1/recently-viewed
func (h *CatalogHandler) GetRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    h.browseUC.RecentlyViewed(r.Context(), sessionID),
	})
}
