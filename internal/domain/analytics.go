package domain

import (
	"context"
	"time"
)

// Analytics event names.
const (
	EventAddToCart      = "add_to_cart"
	EventRemoveFromCart = "remove_from_cart"
	EventUpdateCart     = "update_cart"
	EventClearCart      = "clear_cart"
	EventSearch         = "search"
	EventApplyCoupon    = "apply_coupon"
	EventViewProduct    = "view_product"
)

type AnalyticsEvent struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	SessionID  string                 `json:"sessionId"`
	OccurredAt time.Time              `json:"occurredAt"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// AnalyticsTracker is notified fire-and-forget; Track must not block and the
// caller never depends on its outcome.
type AnalyticsTracker interface {
	Track(ctx context.Context, event AnalyticsEvent)
}

// AnalyticsSink delivers a single event to an external system.
type AnalyticsSink interface {
	Name() string
	Send(ctx context.Context, event AnalyticsEvent) error
}

// NopTracker discards every event.
type NopTracker struct{}

func (NopTracker) Track(context.Context, AnalyticsEvent) {}
