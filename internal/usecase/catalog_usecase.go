package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"mucevher-backend/config"
	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/cache"
	"mucevher-backend/pkg/logger"
	"mucevher-backend/pkg/metrics"
	"mucevher-backend/pkg/utils"
)

// catalogSnapshot is immutable once published.
type catalogSnapshot struct {
	generation uint64
	products   []domain.Product
	byID       map[string]int
	bySlug     map[string]int
	categories []string
	materials  []string
}

type CatalogUsecase struct {
	provider domain.CatalogProvider
	cache    cache.CacheService
	cfg      *config.Config
	metrics  *metrics.ServerMetrics

	snapshot   atomic.Pointer[catalogSnapshot]
	generation atomic.Uint64
}

func NewCatalogUsecase(provider domain.CatalogProvider, cache cache.CacheService, cfg *config.Config, m *metrics.ServerMetrics) *CatalogUsecase {
	uc := &CatalogUsecase{
		provider: provider,
		cache:    cache,
		cfg:      cfg,
		metrics:  m,
	}
	uc.snapshot.Store(&catalogSnapshot{
		products: []domain.Product{},
		byID:     map[string]int{},
		bySlug:   map[string]int{},
	})
	return uc
}

// Reload fetches the catalog from the provider, validates it and swaps the
// snapshot. On error the previous snapshot stays in place.
func (uc *CatalogUsecase) Reload(ctx context.Context) error {
	products, err := uc.provider.Products(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	snap, err := buildSnapshot(products)
	if err != nil {
		return err
	}
	snap.generation = uc.generation.Add(1)
	uc.snapshot.Store(snap)
	uc.metrics.SetCatalogSize(len(snap.products))

	logger.Info().
		Int("products", len(snap.products)).
		Uint64("generation", snap.generation).
		Msg("Catalog loaded")
	return nil
}

// ValidateCatalog checks catalog-wide invariants and assigns Sequence to
// products that lack one (position 0 is the newest).
func ValidateCatalog(products []domain.Product) ([]domain.Product, error) {
	out := make([]domain.Product, len(products))
	ids := make(map[string]struct{}, len(products))
	slugs := make(map[string]struct{}, len(products))

	for i, p := range products {
		switch {
		case strings.TrimSpace(p.ID) == "":
			return nil, fmt.Errorf("%w: product at index %d has no id", domain.ErrInvalidCatalog, i)
		case strings.TrimSpace(p.Slug) == "":
			return nil, fmt.Errorf("%w: product %q has no slug", domain.ErrInvalidCatalog, p.ID)
		case p.Price.IsNegative():
			return nil, fmt.Errorf("%w: product %q has negative price %s", domain.ErrInvalidCatalog, p.ID, p.Price)
		}
		if _, dup := ids[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %q", domain.ErrInvalidCatalog, p.ID)
		}
		if _, dup := slugs[p.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate product slug %q", domain.ErrInvalidCatalog, p.Slug)
		}
		ids[p.ID] = struct{}{}
		slugs[p.Slug] = struct{}{}

		if !domain.IsKnownCategory(p.Category) {
			logger.Warn().Str("product_id", p.ID).Str("category", p.Category).Msg("Unknown product category")
		}
		if !domain.IsKnownMaterial(p.Material) {
			logger.Warn().Str("product_id", p.ID).Str("material", p.Material).Msg("Unknown product material")
		}
		if p.Status == "" {
			p.Status = domain.StatusInStock
		}
		if p.Sequence == 0 {
			p.Sequence = len(products) - i
		}
		out[i] = p
	}
	return out, nil
}

func buildSnapshot(products []domain.Product) (*catalogSnapshot, error) {
	valid, err := ValidateCatalog(products)
	if err != nil {
		return nil, err
	}

	snap := &catalogSnapshot{
		products: valid,
		byID:     make(map[string]int, len(valid)),
		bySlug:   make(map[string]int, len(valid)),
	}
	seenCat := map[string]bool{}
	seenMat := map[string]bool{}
	for i, p := range valid {
		snap.byID[p.ID] = i
		snap.bySlug[p.Slug] = i
		if p.Category != "" && !seenCat[p.Category] {
			seenCat[p.Category] = true
			snap.categories = append(snap.categories, p.Category)
		}
		if p.Material != "" && !seenMat[p.Material] {
			seenMat[p.Material] = true
			snap.materials = append(snap.materials, p.Material)
		}
	}
	return snap, nil
}

// Products returns the catalog in document order. Callers must not mutate
// the returned slice.
func (uc *CatalogUsecase) Products() []domain.Product {
	return uc.snapshot.Load().products
}

func (uc *CatalogUsecase) ProductByID(id string) (*domain.Product, error) {
	snap := uc.snapshot.Load()
	i, ok := snap.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p := snap.products[i]
	return &p, nil
}

func (uc *CatalogUsecase) ProductBySlug(slug string) (*domain.Product, error) {
	snap := uc.snapshot.Load()
	i, ok := snap.bySlug[slug]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p := snap.products[i]
	return &p, nil
}

// Generation increments on every successful Reload.
func (uc *CatalogUsecase) Generation() uint64 {
	return uc.snapshot.Load().generation
}

// Categories returns the distinct categories present, in first-appearance order.
func (uc *CatalogUsecase) Categories() []string {
	return append([]string{}, uc.snapshot.Load().categories...)
}

// Materials returns the distinct materials present, in first-appearance order.
func (uc *CatalogUsecase) Materials() []string {
	return append([]string{}, uc.snapshot.Load().materials...)
}

// ListProducts runs filter, search and sort over the snapshot and returns
// the requested page. Full results are cached per query and generation.
func (uc *CatalogUsecase) ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, domain.Pagination) {
	snap := uc.snapshot.Load()
	if q.Locale == "" {
		q.Locale = domain.DefaultLocale
	}
	if q.Sort == "" {
		q.Sort = domain.SortNewest
	}

	key := queryCacheKey(snap.generation, q)
	var result []domain.Product
	if val, found := uc.cache.Get(key); found {
		result = val.([]domain.Product)
	} else {
		result = RunQuery(snap.products, q)
		uc.cache.Set(key, result, uc.cfg.QueryCacheTTL)
		logger.WithContext(ctx).Debug().
			Str("key", key).
			Int("results", len(result)).
			Msg("Catalog query cached")
	}

	return Paginate(result, q.Page, q.Limit)
}

func queryCacheKey(generation uint64, q domain.ProductQuery) string {
	var minPrice, maxPrice string
	if q.Filter.MinPrice != nil {
		minPrice = q.Filter.MinPrice.String()
	}
	if q.Filter.MaxPrice != nil {
		maxPrice = q.Filter.MaxPrice.String()
	}
	return fmt.Sprintf("products:%d:%s|%s|%s|%s|%s|%s|%s",
		generation,
		q.Filter.Category,
		q.Filter.Material,
		minPrice,
		maxPrice,
		utils.FoldText(strings.TrimSpace(q.Search)),
		q.Sort,
		q.Locale,
	)
}
