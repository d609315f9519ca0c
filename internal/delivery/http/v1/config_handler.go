package v1

import (
	"fmt"
	"net/http"
	"time"

	"mucevher-backend/internal/domain"
	"mucevher-backend/internal/usecase"
	"mucevher-backend/pkg/cache"
	"mucevher-backend/pkg/utils"
)

type ConfigHandler struct {
	cache     cache.CacheService
	catalogUC *usecase.CatalogUsecase
	pricing   usecase.PricingPolicy
	ttl       time.Duration
}

func NewConfigHandler(cache cache.CacheService, catalogUC *usecase.CatalogUsecase, pricing usecase.PricingPolicy, ttl time.Duration) *ConfigHandler {
	return &ConfigHandler{cache: cache, catalogUC: catalogUC, pricing: pricing, ttl: ttl}
}

// GET /api/v1/config/enums
func (h *ConfigHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	// Keyed by catalog generation so a reload refreshes the present values
	cacheKey := fmt.Sprintf("system:config:enums:%d", h.catalogUC.Generation())

	w.Header().Set("Cache-Control", "public, max-age=3600")

	if val, found := h.cache.Get(cacheKey); found {
		utils.WriteJSON(w, http.StatusOK, val)
		return
	}

	response := map[string]interface{}{
		"categories":        domain.Categories,
		"materials":         domain.Materials,
		"catalogCategories": h.catalogUC.Categories(),
		"catalogMaterials":  h.catalogUC.Materials(),
		"sortOptions":       domain.SortOptions,
		"locales":           domain.Locales,
		"productStatuses":   domain.ProductStatuses,
		"couponErrorCodes":  domain.CouponErrorCodes,
		"shippingPolicy":    h.pricing.Describe(),
		"currency":          domain.Currency,
	}

	h.cache.Set(cacheKey, response, h.ttl)
	utils.WriteJSON(w, http.StatusOK, response)
}
