package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"mucevher-backend/internal/domain"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(i int) *int { return &i }

func product(id, price, category string) domain.Product {
	return domain.Product{
		ID:       id,
		Slug:     "p-" + id,
		Name:     domain.LocalizedText{domain.LocaleTR: "Ürün " + id, domain.LocaleEN: "Product " + id},
		Price:    dec(price),
		Category: category,
		Material: domain.MaterialSilver,
		Status:   domain.StatusInStock,
	}
}

func sampleCatalog() []domain.Product {
	return []domain.Product{
		{
			ID: "1", Slug: "altin-yuzuk", Sequence: 5,
			Name:        domain.LocalizedText{domain.LocaleTR: "Altın Yüzük", domain.LocaleEN: "Gold Ring"},
			Description: domain.LocalizedText{domain.LocaleTR: "14 ayar zarif yüzük", domain.LocaleEN: "Elegant 14k ring"},
			Price:       dec("150"), Category: domain.CategoryRings, Material: domain.MaterialGold,
			Tags: []string{"minimal", "hediye"}, Status: domain.StatusInStock,
		},
		{
			ID: "2", Slug: "inci-kupe", Sequence: 4,
			Name:        domain.LocalizedText{domain.LocaleTR: "İnci Küpe", domain.LocaleEN: "Pearl Earrings"},
			Description: domain.LocalizedText{domain.LocaleTR: "Tatlı su incisi", domain.LocaleEN: "Freshwater pearl"},
			Price:       dec("80"), Category: domain.CategoryEarrings, Material: domain.MaterialPearl,
			Status: domain.StatusInStock,
		},
		{
			ID: "3", Slug: "gumus-kolye", Sequence: 3,
			Name:        domain.LocalizedText{domain.LocaleTR: "Gümüş Kolye", domain.LocaleEN: "Silver Necklace"},
			Description: domain.LocalizedText{domain.LocaleTR: "925 ayar gümüş", domain.LocaleEN: "Sterling silver"},
			Price:       dec("80"), Category: domain.CategoryNecklaces, Material: domain.MaterialSilver,
			Tags: []string{"katmanlı"}, Status: domain.StatusOutOfStock,
		},
		{
			ID: "4", Slug: "rose-kolye", Sequence: 2,
			Name:        domain.LocalizedText{domain.LocaleTR: "Rose Kolye", domain.LocaleEN: "Rose Necklace"},
			Description: domain.LocalizedText{domain.LocaleTR: "Rose gold kaplama", domain.LocaleEN: "Rose gold plated"},
			Price:       dec("240"), Category: domain.CategoryNecklaces, Material: domain.MaterialRoseGold,
			Status: domain.StatusInStock,
		},
		{
			ID: "5", Slug: "celik-bileklik", Sequence: 1,
			Name:        domain.LocalizedText{domain.LocaleTR: "Çelik Bileklik", domain.LocaleEN: "Steel Bracelet"},
			Description: domain.LocalizedText{domain.LocaleTR: "Paslanmaz çelik", domain.LocaleEN: "Stainless steel"},
			Price:       dec("60"), Category: domain.CategoryBracelets, Material: domain.MaterialSteel,
			Status: domain.StatusPreOrder,
		},
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

// staticCatalog serves a fixed product list.
type staticCatalog struct {
	products []domain.Product
	err      error
}

func (c *staticCatalog) Products(context.Context) ([]domain.Product, error) {
	return c.products, c.err
}

// memStore is a map-backed StateStore that can be switched into failure mode.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
	fail bool
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

var errStoreDown = errors.New("store unavailable")

func (s *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, false, errStoreDown
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errStoreDown
	}
	s.data[key] = append([]byte(nil), value...)
	s.ttls[key] = ttl
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errStoreDown
	}
	delete(s.data, key)
	delete(s.ttls, key)
	return nil
}

// recordingTracker captures analytics events.
type recordingTracker struct {
	mu     sync.Mutex
	events []domain.AnalyticsEvent
}

func (r *recordingTracker) Track(_ context.Context, e domain.AnalyticsEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingTracker) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Name
	}
	return out
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

func (c *fixedClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
