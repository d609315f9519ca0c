package usecase

import (
	"context"

	"mucevher-backend/config"
	"mucevher-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// PricingPolicy is the single-threshold flat-rate shipping rule.
type PricingPolicy struct {
	FreeShippingThreshold decimal.Decimal
	ShippingCost          decimal.Decimal
}

func NewPricingPolicy(cfg *config.Config) PricingPolicy {
	return PricingPolicy{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingCost:          cfg.ShippingCost,
	}
}

// Shipping is free for an empty cart and from the threshold upwards.
func (p PricingPolicy) Shipping(subtotal decimal.Decimal, itemCount int) decimal.Decimal {
	if itemCount == 0 || subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.ShippingCost
}

func (p PricingPolicy) Describe() domain.ShippingPolicy {
	return domain.ShippingPolicy{
		FreeShippingThreshold: p.FreeShippingThreshold,
		ShippingCost:          p.ShippingCost,
		Currency:              domain.Currency,
	}
}

// SummaryUsecase derives every checkout figure from the two ledgers.
type SummaryUsecase struct {
	cart    *CartLedger
	coupons *CouponLedger
	pricing PricingPolicy
}

func NewSummaryUsecase(cart *CartLedger, coupons *CouponLedger, pricing PricingPolicy) *SummaryUsecase {
	return &SummaryUsecase{
		cart:    cart,
		coupons: coupons,
		pricing: pricing,
	}
}

// CheckoutSummary recomputes the discount against the current subtotal. An
// applied coupon that no longer qualifies contributes nothing and is reported
// through CouponIssue; it stays applied.
func (uc *SummaryUsecase) CheckoutSummary(ctx context.Context, sessionID string) domain.CartSummary {
	items := uc.cart.Items(ctx, sessionID)
	count := countItems(items)
	subtotal := subtotalOf(items)

	summary := domain.CartSummary{
		Items:      items,
		ItemCount:  count,
		Subtotal:   subtotal,
		Shipping:   uc.pricing.Shipping(subtotal, count),
		Discount:   decimal.Zero,
		Currency:   domain.Currency,
		IsCartOpen: uc.cart.IsCartOpen(sessionID),
	}

	if applied := uc.coupons.AppliedCoupon(ctx, sessionID); applied != nil {
		res := uc.coupons.validate(ctx, applied.Code, subtotal)
		current := *applied
		if res.IsValid {
			current.Discount = res.Discount
			summary.Discount = res.Discount
		} else {
			current.Discount = decimal.Zero
			summary.CouponIssue = res.ErrorCode
		}
		summary.AppliedCoupon = &current
	}

	summary.Total = subtotal.Sub(summary.Discount).Add(summary.Shipping)
	return summary
}
