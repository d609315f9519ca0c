package domain

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available for purchase")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrInvalidCatalog     = errors.New("invalid catalog")
	ErrCouponNotFound     = errors.New("coupon not found")
	ErrInvalidReviewID    = errors.New("invalid review id")
)
