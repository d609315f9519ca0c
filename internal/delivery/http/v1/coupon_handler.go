package v1

import (
	"net/http"

	"mucevher-backend/internal/domain"
	"mucevher-backend/internal/usecase"
	"mucevher-backend/pkg/logger"
	"mucevher-backend/pkg/utils"
)

// CouponHandler applies and removes the session's coupon. Thin layer over
// the coupon ledger.
type CouponHandler struct {
	coupons   *usecase.CouponLedger
	cart      *usecase.CartLedger
	summaryUC *usecase.SummaryUsecase
}

func NewCouponHandler(coupons *usecase.CouponLedger, cart *usecase.CartLedger, summaryUC *usecase.SummaryUsecase) *CouponHandler {
	return &CouponHandler{coupons: coupons, cart: cart, summaryUC: summaryUC}
}

type couponResp struct {
	Success   bool                   `json:"success"`
	ErrorCode domain.CouponErrorCode `json:"errorCode,omitempty"`
	Message   string                 `json:"message"`
	Coupon    *domain.Coupon         `json:"coupon,omitempty"`
	Summary   *domain.CartSummary    `json:"summary,omitempty"`
}

// ApplyCoupon validates against the current subtotal. Failures leave any
// previously applied coupon in place.
// POST /api/v1/cart/coupon
func (h *CouponHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	var req struct {
		Code string `json:"code"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	locale := domain.LocaleFromContext(r.Context())
	subtotal := h.cart.Subtotal(r.Context(), sessionID)
	result := h.coupons.ApplyCoupon(r.Context(), sessionID, req.Code, subtotal)

	if !result.IsValid {
		logger.WithContext(r.Context()).Info().
			Str("code", usecase.NormalizeCouponCode(req.Code)).
			Str("reason", string(result.ErrorCode)).
			Msg("Coupon rejected")
		utils.WriteJSON(w, http.StatusUnprocessableEntity, couponResp{
			Success:   false,
			ErrorCode: result.ErrorCode,
			Message:   result.Message.Get(locale),
		})
		return
	}

	summary := h.summaryUC.CheckoutSummary(r.Context(), sessionID)
	utils.WriteJSON(w, http.StatusOK, couponResp{
		Success: true,
		Message: result.Message.Get(locale),
		Coupon:  result.Coupon,
		Summary: &summary,
	})
}

// DELETE /api/v1/cart/coupon
func (h *CouponHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}
	if err := h.coupons.RemoveCoupon(r.Context(), sessionID); err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Coupon removal failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to remove coupon")
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.summaryUC.CheckoutSummary(r.Context(), sessionID))
}
