package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mucevher-backend/config"
	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/logger"
	"mucevher-backend/pkg/metrics"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CouponLedger validates coupon codes against the rule table and holds the
// single applied coupon of each session. Coupon usage counts are read-only
// here; redemption is never recorded.
type CouponLedger struct {
	repo    domain.CouponRepository
	store   domain.StateStore
	tracker domain.AnalyticsTracker
	clock   Clock
	cfg     *config.Config
	metrics *metrics.ServerMetrics
	locks   *sessionLocks
}

func NewCouponLedger(
	repo domain.CouponRepository,
	store domain.StateStore,
	tracker domain.AnalyticsTracker,
	clock Clock,
	cfg *config.Config,
	m *metrics.ServerMetrics,
) *CouponLedger {
	return &CouponLedger{
		repo:    repo,
		store:   store,
		tracker: trackerOrNop(tracker),
		clock:   clockOrSystem(clock),
		cfg:     cfg,
		metrics: m,
		locks:   newSessionLocks(),
	}
}

// Codes are ASCII; Turkish keyboards may produce dotted or dotless I.
var couponDotlessI = strings.NewReplacer("İ", "I", "ı", "I")

// NormalizeCouponCode trims and upper-cases a user supplied code.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(couponDotlessI.Replace(strings.TrimSpace(code)))
}

// ValidateCoupon runs the checks in order and stops at the first failure:
// unknown code, inactive, expired, usage limit reached, minimum purchase.
func (l *CouponLedger) ValidateCoupon(ctx context.Context, code string, subtotal decimal.Decimal) domain.CouponValidationResult {
	result := l.validate(ctx, code, subtotal)
	outcome := "VALID"
	if !result.IsValid {
		outcome = string(result.ErrorCode)
	}
	l.metrics.CouponValidation(outcome)
	return result
}

func (l *CouponLedger) validate(ctx context.Context, code string, subtotal decimal.Decimal) domain.CouponValidationResult {
	normalized := NormalizeCouponCode(code)
	if normalized == "" {
		return failure(domain.CouponErrInvalid, nil)
	}

	coupon, err := l.repo.GetCouponByCode(ctx, normalized)
	if err != nil || coupon == nil {
		if err != nil && !errors.Is(err, domain.ErrCouponNotFound) {
			logger.WithContext(ctx).Warn().Err(err).Str("code", normalized).Msg("Coupon lookup failed")
		}
		return failure(domain.CouponErrInvalid, nil)
	}
	if !coupon.IsActive {
		return failure(domain.CouponErrInactive, coupon)
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(l.clock.Now()) {
		return failure(domain.CouponErrExpired, coupon)
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return failure(domain.CouponErrUsageLimit, coupon)
	}
	if coupon.MinPurchase != nil && subtotal.LessThan(*coupon.MinPurchase) {
		return failure(domain.CouponErrMinPurchase, coupon)
	}

	discount := CalculateDiscount(*coupon, subtotal)
	return domain.CouponValidationResult{
		IsValid:  true,
		Message:  successMessage(discount),
		Coupon:   coupon,
		Discount: discount,
	}
}

// CalculateDiscount applies the coupon to subtotal. The result is capped by
// MaxDiscount (percentage coupons) and by the subtotal itself, is never
// negative and is rounded to kuruş.
func CalculateDiscount(coupon domain.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch coupon.Type {
	case domain.CouponPercentage:
		discount = subtotal.Mul(coupon.Value).Div(hundred)
		if coupon.MaxDiscount != nil && discount.GreaterThan(*coupon.MaxDiscount) {
			discount = *coupon.MaxDiscount
		}
	case domain.CouponFixed:
		discount = coupon.Value
	default:
		return decimal.Zero
	}

	discount = decimal.Min(discount, subtotal)
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount.Round(2)
}

// ApplyCoupon validates the code and, on success, replaces the session's
// applied coupon. Failed validations leave the applied state untouched.
func (l *CouponLedger) ApplyCoupon(ctx context.Context, sessionID, code string, subtotal decimal.Decimal) domain.CouponValidationResult {
	result := l.ValidateCoupon(ctx, code, subtotal)

	props := map[string]interface{}{
		"code":     NormalizeCouponCode(code),
		"subtotal": subtotal.String(),
		"valid":    result.IsValid,
	}
	if !result.IsValid {
		props["errorCode"] = string(result.ErrorCode)
		l.tracker.Track(ctx, newEvent(l.clock, domain.EventApplyCoupon, sessionID, props))
		return result
	}

	unlock := l.locks.lock(sessionID)
	applied := domain.AppliedCoupon{
		Code:      result.Coupon.Code,
		Discount:  result.Discount,
		AppliedAt: l.clock.Now(),
	}
	saveState(ctx, l.store, domain.StateKey(domain.StateKeyCoupon, sessionID), applied, l.cfg.CouponTTL)
	unlock()

	props["discount"] = result.Discount.String()
	l.tracker.Track(ctx, newEvent(l.clock, domain.EventApplyCoupon, sessionID, props))
	return result
}

// RemoveCoupon clears the applied coupon unconditionally.
func (l *CouponLedger) RemoveCoupon(ctx context.Context, sessionID string) error {
	unlock := l.locks.lock(sessionID)
	defer unlock()

	deleteState(ctx, l.store, domain.StateKey(domain.StateKeyCoupon, sessionID))
	return nil
}

// AppliedCoupon returns the session's applied coupon, or nil.
func (l *CouponLedger) AppliedCoupon(ctx context.Context, sessionID string) *domain.AppliedCoupon {
	var applied domain.AppliedCoupon
	if !loadState(ctx, l.store, domain.StateKey(domain.StateKeyCoupon, sessionID), &applied) {
		return nil
	}
	if applied.Code == "" {
		return nil
	}
	return &applied
}

func failure(code domain.CouponErrorCode, coupon *domain.Coupon) domain.CouponValidationResult {
	return domain.CouponValidationResult{
		IsValid:   false,
		ErrorCode: code,
		Message:   failureMessage(code, coupon),
		Coupon:    coupon,
		Discount:  decimal.Zero,
	}
}

func failureMessage(code domain.CouponErrorCode, coupon *domain.Coupon) domain.LocalizedText {
	switch code {
	case domain.CouponErrInactive:
		return domain.LocalizedText{
			domain.LocaleTR: "Bu kupon artık geçerli değil",
			domain.LocaleEN: "This coupon is no longer active",
		}
	case domain.CouponErrExpired:
		return domain.LocalizedText{
			domain.LocaleTR: "Bu kuponun süresi dolmuş",
			domain.LocaleEN: "This coupon has expired",
		}
	case domain.CouponErrUsageLimit:
		return domain.LocalizedText{
			domain.LocaleTR: "Bu kuponun kullanım limiti dolmuş",
			domain.LocaleEN: "This coupon has reached its usage limit",
		}
	case domain.CouponErrMinPurchase:
		threshold := "0.00"
		if coupon != nil && coupon.MinPurchase != nil {
			threshold = coupon.MinPurchase.StringFixed(2)
		}
		return domain.LocalizedText{
			domain.LocaleTR: fmt.Sprintf("Bu kupon için minimum sepet tutarı ₺%s", threshold),
			domain.LocaleEN: fmt.Sprintf("Minimum purchase of ₺%s required for this coupon", threshold),
		}
	default:
		return domain.LocalizedText{
			domain.LocaleTR: "Geçersiz kupon kodu",
			domain.LocaleEN: "Invalid coupon code",
		}
	}
}

func successMessage(discount decimal.Decimal) domain.LocalizedText {
	amount := discount.StringFixed(2)
	return domain.LocalizedText{
		domain.LocaleTR: fmt.Sprintf("Kupon uygulandı: ₺%s indirim", amount),
		domain.LocaleEN: fmt.Sprintf("Coupon applied: ₺%s off", amount),
	}
}
