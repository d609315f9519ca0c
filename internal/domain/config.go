package domain

import "github.com/shopspring/decimal"

// ShippingPolicy is a single-threshold flat-rate policy.
type ShippingPolicy struct {
	FreeShippingThreshold decimal.Decimal `json:"freeShippingThreshold"`
	ShippingCost          decimal.Decimal `json:"shippingCost"`
	Currency              string          `json:"currency"`
}
