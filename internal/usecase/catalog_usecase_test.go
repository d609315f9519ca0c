package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"mucevher-backend/config"
	"mucevher-backend/internal/domain"
	memcache "mucevher-backend/internal/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T, products []domain.Product) *CatalogUsecase {
	t.Helper()
	uc := NewCatalogUsecase(
		&staticCatalog{products: products},
		memcache.NewMemoryCache(time.Minute, time.Minute),
		&config.Config{QueryCacheTTL: time.Minute},
		nil,
	)
	require.NoError(t, uc.Reload(context.Background()))
	return uc
}

func TestCatalogUsecase_Lookups(t *testing.T) {
	uc := newTestCatalog(t, sampleCatalog())

	p, err := uc.ProductByID("2")
	require.NoError(t, err)
	assert.Equal(t, "inci-kupe", p.Slug)

	p, err = uc.ProductBySlug("rose-kolye")
	require.NoError(t, err)
	assert.Equal(t, "4", p.ID)

	_, err = uc.ProductByID("missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	_, err = uc.ProductBySlug("missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.Equal(t, []string{"rings", "earrings", "necklaces", "bracelets"}, uc.Categories())
	assert.Equal(t, []string{"gold", "pearl", "silver", "rose-gold", "steel"}, uc.Materials())
}

func TestCatalogUsecase_ReturnedProductIsACopy(t *testing.T) {
	uc := newTestCatalog(t, sampleCatalog())

	p, err := uc.ProductByID("1")
	require.NoError(t, err)
	p.Price = dec("1")

	again, _ := uc.ProductByID("1")
	assert.True(t, again.Price.Equal(dec("150")))
}

func TestValidateCatalog(t *testing.T) {
	good := product("a", "10", domain.CategoryRings)

	tests := []struct {
		name     string
		products []domain.Product
	}{
		{"missing id", []domain.Product{{Slug: "x", Price: dec("1")}}},
		{"missing slug", []domain.Product{{ID: "x", Price: dec("1")}}},
		{"negative price", []domain.Product{{ID: "x", Slug: "x", Price: dec("-1")}}},
		{"duplicate id", []domain.Product{good, {ID: "a", Slug: "other", Price: dec("1")}}},
		{"duplicate slug", []domain.Product{good, {ID: "b", Slug: good.Slug, Price: dec("1")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateCatalog(tt.products)
			assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
		})
	}
}

func TestValidateCatalog_AssignsSequenceAndDefaults(t *testing.T) {
	in := []domain.Product{
		product("a", "10", domain.CategoryRings),
		product("b", "10", "brooches"),
		product("c", "10", domain.CategoryRings),
	}
	in[1].Status = ""
	in[2].Sequence = 99

	out, err := ValidateCatalog(in)
	require.NoError(t, err)
	assert.Equal(t, 3, out[0].Sequence)
	assert.Equal(t, 2, out[1].Sequence)
	assert.Equal(t, 99, out[2].Sequence)
	assert.Equal(t, domain.StatusInStock, out[1].Status)
	assert.Equal(t, 0, in[0].Sequence, "input must not be modified")
}

func TestCatalogUsecase_ReloadFailureKeepsSnapshot(t *testing.T) {
	provider := &staticCatalog{products: sampleCatalog()}
	uc := NewCatalogUsecase(provider, memcache.NewMemoryCache(time.Minute, time.Minute), &config.Config{QueryCacheTTL: time.Minute}, nil)
	require.NoError(t, uc.Reload(context.Background()))

	provider.err = errors.New("bucket unreachable")
	assert.Error(t, uc.Reload(context.Background()))
	assert.Len(t, uc.Products(), 5)

	provider.err = nil
	provider.products = []domain.Product{{ID: "x"}}
	assert.ErrorIs(t, uc.Reload(context.Background()), domain.ErrInvalidCatalog)
	assert.Len(t, uc.Products(), 5)
}

func TestCatalogUsecase_ListProducts(t *testing.T) {
	uc := newTestCatalog(t, sampleCatalog())
	ctx := context.Background()

	items, meta := uc.ListProducts(ctx, domain.ProductQuery{
		Filter: domain.ProductFilter{Category: domain.CategoryNecklaces},
		Sort:   domain.SortPriceAsc,
	})
	assert.Equal(t, []string{"3", "4"}, ids(items))
	assert.Equal(t, int64(2), meta.TotalItems)

	items, meta = uc.ListProducts(ctx, domain.ProductQuery{Page: 2, Limit: 2})
	assert.Equal(t, []string{"3", "4"}, ids(items))
	assert.Equal(t, 3, meta.TotalPages)
}

func TestCatalogUsecase_ReloadInvalidatesQueryCache(t *testing.T) {
	provider := &staticCatalog{products: sampleCatalog()}
	uc := NewCatalogUsecase(provider, memcache.NewMemoryCache(time.Minute, time.Minute), &config.Config{QueryCacheTTL: time.Minute}, nil)
	ctx := context.Background()
	require.NoError(t, uc.Reload(ctx))

	q := domain.ProductQuery{Filter: domain.ProductFilter{Category: domain.CategoryRings}}
	items, _ := uc.ListProducts(ctx, q)
	assert.Equal(t, []string{"1"}, ids(items))

	provider.products = append(sampleCatalog(), domain.Product{
		ID: "6", Slug: "tektas", Price: dec("900"), Category: domain.CategoryRings,
		Material: domain.MaterialPlatinum, Status: domain.StatusInStock, Sequence: 6,
	})
	require.NoError(t, uc.Reload(ctx))

	items, _ = uc.ListProducts(ctx, q)
	assert.Equal(t, []string{"6", "1"}, ids(items))
}
