package usecase

import (
	"context"

	"mucevher-backend/config"
	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/cache"
	"mucevher-backend/pkg/logger"
	"mucevher-backend/pkg/metrics"

	"github.com/shopspring/decimal"
)

// ProductLookup resolves cart lines against the live catalog.
type ProductLookup interface {
	ProductByID(id string) (*domain.Product, error)
}

// CartLedger holds each session's cart. Lines reference products by ID so
// views and totals always reflect current catalog prices.
type CartLedger struct {
	catalog ProductLookup
	store   domain.StateStore
	flags   cache.CacheService
	tracker domain.AnalyticsTracker
	clock   Clock
	cfg     *config.Config
	metrics *metrics.ServerMetrics
	locks   *sessionLocks
}

func NewCartLedger(
	catalog ProductLookup,
	store domain.StateStore,
	flags cache.CacheService,
	tracker domain.AnalyticsTracker,
	clock Clock,
	cfg *config.Config,
	m *metrics.ServerMetrics,
) *CartLedger {
	return &CartLedger{
		catalog: catalog,
		store:   store,
		flags:   flags,
		tracker: trackerOrNop(tracker),
		clock:   clockOrSystem(clock),
		cfg:     cfg,
		metrics: m,
		locks:   newSessionLocks(),
	}
}

func (l *CartLedger) loadLines(ctx context.Context, sessionID string) []domain.CartLine {
	var lines []domain.CartLine
	loadState(ctx, l.store, domain.StateKey(domain.StateKeyCart, sessionID), &lines)
	return lines
}

func (l *CartLedger) saveLines(ctx context.Context, sessionID string, lines []domain.CartLine) {
	key := domain.StateKey(domain.StateKeyCart, sessionID)
	if len(lines) == 0 {
		deleteState(ctx, l.store, key)
		return
	}
	saveState(ctx, l.store, key, lines, l.cfg.CartTTL)
}

func (l *CartLedger) clamp(quantity int) int {
	if l.cfg.MaxItemQuantity > 0 && quantity > l.cfg.MaxItemQuantity {
		return l.cfg.MaxItemQuantity
	}
	return quantity
}

// AddItem merges quantity into the product's line, or appends a new line.
// Stock status is not checked here.
func (l *CartLedger) AddItem(ctx context.Context, sessionID string, product domain.Product, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	unlock := l.locks.lock(sessionID)
	defer unlock()

	lines := l.loadLines(ctx, sessionID)
	newQty := 0
	merged := false
	for i := range lines {
		if lines[i].ProductID == product.ID {
			lines[i].Quantity = l.clamp(lines[i].Quantity + quantity)
			newQty = lines[i].Quantity
			merged = true
			break
		}
	}
	if !merged {
		newQty = l.clamp(quantity)
		lines = append(lines, domain.CartLine{
			ProductID: product.ID,
			Quantity:  newQty,
			AddedAt:   l.clock.Now(),
		})
	}
	l.saveLines(ctx, sessionID, lines)

	logger.WithContext(ctx).Debug().
		Str("product_id", product.ID).
		Int("added", quantity).
		Int("quantity", newQty).
		Msg("Cart item added")
	l.metrics.CartMutation("add")
	l.tracker.Track(ctx, newEvent(l.clock, domain.EventAddToCart, sessionID, map[string]interface{}{
		"productId": product.ID,
		"quantity":  quantity,
		"price":     product.Price.String(),
		"currency":  domain.Currency,
	}))
	return nil
}

// RemoveItem drops the product's line. Absent products are a no-op.
func (l *CartLedger) RemoveItem(ctx context.Context, sessionID, productID string) error {
	unlock := l.locks.lock(sessionID)
	defer unlock()

	lines := l.loadLines(ctx, sessionID)
	kept := lines[:0]
	removed := false
	for _, line := range lines {
		if line.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return nil
	}
	l.saveLines(ctx, sessionID, kept)

	l.metrics.CartMutation("remove")
	l.tracker.Track(ctx, newEvent(l.clock, domain.EventRemoveFromCart, sessionID, map[string]interface{}{
		"productId": productID,
	}))
	return nil
}

// UpdateQuantity overwrites the line's quantity. Non-positive quantities
// remove the line; absent products are a no-op.
func (l *CartLedger) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) error {
	if quantity <= 0 {
		return l.RemoveItem(ctx, sessionID, productID)
	}

	unlock := l.locks.lock(sessionID)
	defer unlock()

	lines := l.loadLines(ctx, sessionID)
	idx := -1
	for i := range lines {
		if lines[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	lines[idx].Quantity = l.clamp(quantity)
	l.saveLines(ctx, sessionID, lines)

	l.metrics.CartMutation("update")
	l.tracker.Track(ctx, newEvent(l.clock, domain.EventUpdateCart, sessionID, map[string]interface{}{
		"productId": productID,
		"quantity":  lines[idx].Quantity,
	}))
	return nil
}

func (l *CartLedger) ClearCart(ctx context.Context, sessionID string) error {
	unlock := l.locks.lock(sessionID)
	defer unlock()

	deleteState(ctx, l.store, domain.StateKey(domain.StateKeyCart, sessionID))

	l.metrics.CartMutation("clear")
	l.tracker.Track(ctx, newEvent(l.clock, domain.EventClearCart, sessionID, nil))
	return nil
}

// Items returns the cart in insertion order with products resolved. Lines
// whose product left the catalog are skipped.
func (l *CartLedger) Items(ctx context.Context, sessionID string) []domain.CartItem {
	lines := l.loadLines(ctx, sessionID)
	items := make([]domain.CartItem, 0, len(lines))
	for _, line := range lines {
		p, err := l.catalog.ProductByID(line.ProductID)
		if err != nil {
			logger.WithContext(ctx).Debug().Str("product_id", line.ProductID).Msg("Skipping cart line for unknown product")
			continue
		}
		items = append(items, domain.CartItem{
			Product:   *p,
			Quantity:  line.Quantity,
			AddedAt:   line.AddedAt,
			LineTotal: p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	return items
}

func (l *CartLedger) ItemCount(ctx context.Context, sessionID string) int {
	return countItems(l.Items(ctx, sessionID))
}

func (l *CartLedger) Subtotal(ctx context.Context, sessionID string) decimal.Decimal {
	return subtotalOf(l.Items(ctx, sessionID))
}

func countItems(items []domain.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func subtotalOf(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	return total
}

// SetCartOpen records the cart drawer visibility. Kept in memory only.
func (l *CartLedger) SetCartOpen(sessionID string, open bool) {
	key := "cart-open:" + sessionID
	if !open {
		l.flags.Delete(key)
		return
	}
	l.flags.Set(key, true, l.cfg.CartTTL)
}

func (l *CartLedger) IsCartOpen(sessionID string) bool {
	v, found := l.flags.Get("cart-open:" + sessionID)
	if !found {
		return false
	}
	open, _ := v.(bool)
	return open
}
