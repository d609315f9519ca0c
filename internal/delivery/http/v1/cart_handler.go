package v1

import (
	"errors"
	"net/http"

	"mucevher-backend/internal/domain"
	"mucevher-backend/internal/usecase"
	"mucevher-backend/pkg/logger"
	"mucevher-backend/pkg/utils"
)

type CartHandler struct {
	catalogUC *usecase.CatalogUsecase
	cart      *usecase.CartLedger
	summaryUC *usecase.SummaryUsecase
	inquiryUC *usecase.InquiryUsecase
}

func NewCartHandler(
	catalogUC *usecase.CatalogUsecase,
	cart *usecase.CartLedger,
	summaryUC *usecase.SummaryUsecase,
	inquiryUC *usecase.InquiryUsecase,
) *CartHandler {
	return &CartHandler{
		catalogUC: catalogUC,
		cart:      cart,
		summaryUC: summaryUC,
		inquiryUC: inquiryUC,
	}
}

func (h *CartHandler) writeSummary(w http.ResponseWriter, r *http.Request, sessionID string) {
	utils.WriteJSON(w, http.StatusOK, h.summaryUC.CheckoutSummary(r.Context(), sessionID))
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	h.writeSummary(w, r, sessionID)
}

type cartItemReq struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// POST /api/v1/cart
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req cartItemReq
	if !decodeJSON(w, r, &req) {
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	product, err := h.catalogUC.ProductByID(req.ProductID)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Product not found")
		return
	}
	// The ledger accepts any product; only purchasable ones are offered.
	if !product.Status.Purchasable() {
		utils.WriteError(w, http.StatusConflict, domain.ErrProductUnavailable.Error())
		return
	}

	if err := h.cart.AddItem(r.Context(), sessionID, *product, quantity); err != nil {
		h.writeCartError(w, r, err)
		return
	}
	h.writeSummary(w, r, sessionID)
}

// PUT /api/v1/cart
func (h *CartHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req cartItemReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == "" || req.Quantity == nil {
		utils.WriteError(w, http.StatusBadRequest, "productId and quantity are required")
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), sessionID, req.ProductID, *req.Quantity); err != nil {
		h.writeCartError(w, r, err)
		return
	}
	h.writeSummary(w, r, sessionID)
}

// DELETE /api/v1/cart/{productId}
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID required")
		return
	}

	if err := h.cart.RemoveItem(r.Context(), sessionID, productID); err != nil {
		h.writeCartError(w, r, err)
		return
	}
	h.writeSummary(w, r, sessionID)
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	if err := h.cart.ClearCart(r.Context(), sessionID); err != nil {
		h.writeCartError(w, r, err)
		return
	}
	h.writeSummary(w, r, sessionID)
}

// PUT /api/v1/cart/visibility
func (h *CartHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req struct {
		Open bool `json:"open"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	h.cart.SetCartOpen(sessionID, req.Open)
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"isCartOpen": h.cart.IsCartOpen(sessionID)})
}

// GET /api/v1/cart/inquiry
func (h *CartHandler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	inquiry, err := h.inquiryUC.Compose(r.Context(), sessionID, domain.LocaleFromContext(r.Context()))
	if err != nil {
		h.writeCartError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, inquiry)
}

func (h *CartHandler) writeCartError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrCartEmpty):
		utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	default:
		logger.WithContext(r.Context()).Error().Err(err).Msg("Cart operation failed")
		utils.WriteError(w, http.StatusInternalServerError, "Cart operation failed")
	}
}
