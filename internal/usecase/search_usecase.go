package usecase

import (
	"context"
	"strings"

	"mucevher-backend/internal/domain"
)

// SearchUsecase runs storefront searches and records them for the session.
type SearchUsecase struct {
	catalog *CatalogUsecase
	prefs   *PreferencesUsecase
	tracker domain.AnalyticsTracker
	clock   Clock
}

func NewSearchUsecase(catalog *CatalogUsecase, prefs *PreferencesUsecase, tracker domain.AnalyticsTracker, clock Clock) *SearchUsecase {
	return &SearchUsecase{
		catalog: catalog,
		prefs:   prefs,
		tracker: trackerOrNop(tracker),
		clock:   clockOrSystem(clock),
	}
}

// Search returns matches in catalog order. A blank query returns an empty
// page and is neither recorded nor tracked.
func (u *SearchUsecase) Search(ctx context.Context, sessionID, query string, page, limit int) ([]domain.Product, domain.Pagination) {
	matches := SearchProducts(u.catalog.Products(), query)
	products, pagination := Paginate(matches, page, limit)

	if strings.TrimSpace(query) == "" {
		return products, pagination
	}

	u.prefs.RecordSearch(ctx, sessionID, query)
	u.tracker.Track(ctx, newEvent(u.clock, domain.EventSearch, sessionID, map[string]interface{}{
		"query":   strings.TrimSpace(query),
		"results": len(matches),
	}))
	return products, pagination
}
