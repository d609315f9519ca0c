package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type CouponType string

const (
	CouponPercentage CouponType = "percentage"
	CouponFixed      CouponType = "fixed"
)

type Coupon struct {
	Code        string           `json:"code"`
	Type        CouponType       `json:"type"`
	Value       decimal.Decimal  `json:"value"`
	MinPurchase *decimal.Decimal `json:"minPurchase,omitempty"`
	MaxDiscount *decimal.Decimal `json:"maxDiscount,omitempty"` // percentage only
	ExpiresAt   *time.Time       `json:"expiresAt,omitempty"`
	UsageLimit  *int             `json:"usageLimit,omitempty"`
	UsedCount   int              `json:"usedCount"`
	IsActive    bool             `json:"isActive"`
	Description LocalizedText    `json:"description"`
}

// CouponErrorCode is the stable, language-independent validation outcome.
type CouponErrorCode string

const (
	CouponErrInvalid     CouponErrorCode = "INVALID"
	CouponErrInactive    CouponErrorCode = "INACTIVE"
	CouponErrExpired     CouponErrorCode = "EXPIRED"
	CouponErrUsageLimit  CouponErrorCode = "USAGE_LIMIT"
	CouponErrMinPurchase CouponErrorCode = "MIN_PURCHASE"
)

var CouponErrorCodes = []CouponErrorCode{
	CouponErrInvalid,
	CouponErrInactive,
	CouponErrExpired,
	CouponErrUsageLimit,
	CouponErrMinPurchase,
}

// CouponValidationResult is returned for every validation; failures are
// values, not errors.
type CouponValidationResult struct {
	IsValid   bool            `json:"isValid"`
	ErrorCode CouponErrorCode `json:"errorCode,omitempty"`
	Message   LocalizedText   `json:"message"`
	Coupon    *Coupon         `json:"coupon,omitempty"`
	Discount  decimal.Decimal `json:"discount"`
}

// AppliedCoupon is the single applied-coupon slot of a session.
type AppliedCoupon struct {
	Code      string          `json:"code"`
	Discount  decimal.Decimal `json:"discount"`
	AppliedAt time.Time       `json:"appliedAt"`
}

// CouponRepository looks up coupon rules. Codes are matched after
// normalization by the caller.
type CouponRepository interface {
	GetCouponByCode(ctx context.Context, code string) (*Coupon, error)
	ListCoupons(ctx context.Context) ([]Coupon, error)
}
