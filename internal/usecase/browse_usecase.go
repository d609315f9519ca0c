package usecase

import (
	"context"

	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/utils"
)

// BrowseUsecase serves product detail pages and the session's product lists
// (favorites, recently viewed) resolved against the live catalog.
type BrowseUsecase struct {
	catalog *CatalogUsecase
	prefs   *PreferencesUsecase
	tracker domain.AnalyticsTracker
	clock   Clock
}

func NewBrowseUsecase(catalog *CatalogUsecase, prefs *PreferencesUsecase, tracker domain.AnalyticsTracker, clock Clock) *BrowseUsecase {
	return &BrowseUsecase{
		catalog: catalog,
		prefs:   prefs,
		tracker: trackerOrNop(tracker),
		clock:   clockOrSystem(clock),
	}
}

// ViewProduct resolves a slug and records the view for the session. Older
// links carrying an ID or an unnormalized name still resolve.
func (u *BrowseUsecase) ViewProduct(ctx context.Context, sessionID, slug string) (*domain.Product, error) {
	p, err := u.lookup(slug)
	if err != nil {
		return nil, err
	}

	u.prefs.RecordView(ctx, sessionID, p.ID)
	u.tracker.Track(ctx, newEvent(u.clock, domain.EventViewProduct, sessionID, map[string]interface{}{
		"productId": p.ID,
		"price":     p.Price.String(),
		"category":  p.Category,
	}))
	return p, nil
}

func (u *BrowseUsecase) lookup(slug string) (*domain.Product, error) {
	if p, err := u.catalog.ProductBySlug(slug); err == nil {
		return p, nil
	}
	if p, err := u.catalog.ProductByID(slug); err == nil {
		return p, nil
	}
	return u.catalog.ProductBySlug(utils.GenerateSlug(slug))
}

func (u *BrowseUsecase) RecentlyViewed(ctx context.Context, sessionID string) []domain.Product {
	return u.resolve(u.prefs.RecentlyViewed(ctx, sessionID))
}

func (u *BrowseUsecase) Favorites(ctx context.Context, sessionID string) []domain.Product {
	return u.resolve(u.prefs.Favorites(ctx, sessionID))
}

// resolve keeps list order and skips IDs no longer in the catalog.
func (u *BrowseUsecase) resolve(ids []string) []domain.Product {
	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, err := u.catalog.ProductByID(id); err == nil {
			products = append(products, *p)
		}
	}
	return products
}
