package v1

import (
	"context"
	"net/http"
	"time"

	"mucevher-backend/internal/usecase"
	"mucevher-backend/pkg/utils"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	catalogUC *usecase.CatalogUsecase
	db        Pinger
}

// NewHealthHandler accepts a nil db when state is kept in memory only.
func NewHealthHandler(catalogUC *usecase.CatalogUsecase, db Pinger) *HealthHandler {
	return &HealthHandler{catalogUC: catalogUC, db: db}
}

// Health always answers 200 while the catalog is loaded; a database outage
// only degrades persistence, which falls back to memory.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":   "ok",
		"products": len(h.catalogUC.Products()),
		"state":    "memory",
	}

	if h.db != nil {
		resp["state"] = "postgres"
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			resp["status"] = "degraded"
			resp["db"] = "unavailable"
		} else {
			resp["db"] = "connected"
		}
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
