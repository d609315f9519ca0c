package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// --- Cart Entities ---

// CartLine is the persisted form of a cart entry. Products are referenced by
// ID and resolved against the live catalog on every read.
type CartLine struct {
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartItem is a cart entry with its product resolved.
type CartItem struct {
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"addedAt"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartSummary exposes every derived value independently so downstream
// collaborators (message templating, analytics) never recompute them.
type CartSummary struct {
	Items         []CartItem      `json:"items"`
	ItemCount     int             `json:"itemCount"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Shipping      decimal.Decimal `json:"shipping"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	AppliedCoupon *AppliedCoupon  `json:"appliedCoupon,omitempty"`
	// CouponIssue is set when an applied coupon no longer validates against
	// the current subtotal; the discount is then zero.
	CouponIssue CouponErrorCode `json:"couponIssue,omitempty"`
	IsCartOpen  bool            `json:"isCartOpen"`
}

// OrderInquiry is the composed order-inquiry message handed to the chat link.
type OrderInquiry struct {
	Locale  Locale      `json:"locale"`
	Message string      `json:"message"`
	Link    string      `json:"link"`
	Summary CartSummary `json:"summary"`
}
