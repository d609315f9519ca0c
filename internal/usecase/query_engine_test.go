package usecase

import (
	"math"
	"testing"

	"mucevher-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterProducts(t *testing.T) {
	catalog := sampleCatalog()

	tests := []struct {
		name     string
		criteria domain.ProductFilter
		want     []string
	}{
		{"no criteria keeps everything", domain.ProductFilter{}, []string{"1", "2", "3", "4", "5"}},
		{"category", domain.ProductFilter{Category: domain.CategoryNecklaces}, []string{"3", "4"}},
		{"material", domain.ProductFilter{Material: domain.MaterialPearl}, []string{"2"}},
		{"inclusive price range", domain.ProductFilter{MinPrice: decPtr("80"), MaxPrice: decPtr("150")}, []string{"1", "2", "3"}},
		{"criteria are combined", domain.ProductFilter{Category: domain.CategoryNecklaces, MaxPrice: decPtr("100")}, []string{"3"}},
		{"no match", domain.ProductFilter{Category: domain.CategoryAnklets}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProducts(catalog, tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSortProducts(t *testing.T) {
	catalog := sampleCatalog()

	tests := []struct {
		option domain.SortOption
		locale domain.Locale
		want   []string
	}{
		{domain.SortNewest, domain.LocaleTR, []string{"1", "2", "3", "4", "5"}},
		{domain.SortOldest, domain.LocaleTR, []string{"5", "4", "3", "2", "1"}},
		{domain.SortPriceAsc, domain.LocaleTR, []string{"5", "2", "3", "1", "4"}},
		{domain.SortPriceDesc, domain.LocaleTR, []string{"4", "1", "2", "3", "5"}},
		{domain.SortNameAsc, domain.LocaleTR, []string{"1", "5", "3", "2", "4"}},
		{domain.SortNameAsc, domain.LocaleEN, []string{"1", "2", "4", "3", "5"}},
		{domain.SortNameDesc, domain.LocaleEN, []string{"5", "3", "4", "2", "1"}},
		{domain.SortOption("popular"), domain.LocaleTR, []string{"1", "2", "3", "4", "5"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.option)+"/"+string(tt.locale), func(t *testing.T) {
			got := SortProducts(catalog, tt.option, tt.locale)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSortProducts_StableForEqualKeys(t *testing.T) {
	products := []domain.Product{
		product("a", "100", domain.CategoryRings),
		product("b", "50", domain.CategoryRings),
		product("c", "100", domain.CategoryRings),
		product("d", "100", domain.CategoryRings),
	}

	got := SortProducts(products, domain.SortPriceAsc, domain.LocaleTR)
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(got))

	got = SortProducts(products, domain.SortPriceDesc, domain.LocaleTR)
	assert.Equal(t, []string{"a", "c", "d", "b"}, ids(got))
}

func TestSortProducts_DoesNotMutateInput(t *testing.T) {
	catalog := sampleCatalog()
	before := ids(catalog)

	_ = SortProducts(catalog, domain.SortPriceAsc, domain.LocaleTR)
	_ = RunQuery(catalog, domain.ProductQuery{Sort: domain.SortNameDesc, Search: "kolye"})

	assert.Equal(t, before, ids(catalog))
}

func TestSortProducts_ExtremeSequences(t *testing.T) {
	low := product("low", "10", domain.CategoryRings)
	low.Sequence = math.MinInt
	high := product("high", "10", domain.CategoryRings)
	high.Sequence = math.MaxInt
	mid := product("mid", "10", domain.CategoryRings)
	mid.Sequence = 0
	products := []domain.Product{low, mid, high}

	assert.Equal(t, []string{"high", "mid", "low"}, ids(SortProducts(products, domain.SortNewest, domain.LocaleTR)))
	assert.Equal(t, []string{"low", "mid", "high"}, ids(SortProducts(products, domain.SortOldest, domain.LocaleTR)))
}

func TestSortProducts_EmptyInput(t *testing.T) {
	got := SortProducts(nil, domain.SortNewest, domain.LocaleTR)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchProducts(t *testing.T) {
	catalog := sampleCatalog()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"english name and material", "gold", []string{"1", "4"}},
		{"upper case matches the same set", "GOLD", []string{"1", "4"}},
		{"turkish name", "yüzük", []string{"1"}},
		{"turkish upper case", "YÜZÜK", []string{"1"}},
		{"dotted capital I", "İnci", []string{"2"}},
		{"ascii capital I", "INCI", []string{"2"}},
		{"description", "sterling", []string{"3"}},
		{"tag", "hediye", []string{"1"}},
		{"category value", "bracelets", []string{"5"}},
		{"surrounding whitespace is ignored", "  kolye ", []string{"3", "4"}},
		{"no match", "elmas", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SearchProducts(catalog, tt.query)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSearchProducts_BlankQueryMatchesNothing(t *testing.T) {
	catalog := sampleCatalog()

	for _, q := range []string{"", "   ", "\t\n"} {
		got := SearchProducts(catalog, q)
		require.NotNil(t, got)
		assert.Empty(t, got, "query %q", q)
	}
}

func TestSearchProducts_ResultIsOrderedSubset(t *testing.T) {
	catalog := sampleCatalog()
	position := map[string]int{}
	for i, p := range catalog {
		position[p.ID] = i
	}

	for _, q := range []string{"a", "e", "kolye", "gold", "i"} {
		got := SearchProducts(catalog, q)
		last := -1
		for _, p := range got {
			idx, ok := position[p.ID]
			require.True(t, ok)
			assert.Greater(t, idx, last, "query %q must keep catalog order", q)
			last = idx
		}
	}
}

func TestRunQuery(t *testing.T) {
	catalog := sampleCatalog()

	t.Run("defaults to newest", func(t *testing.T) {
		got := RunQuery(catalog, domain.ProductQuery{})
		assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(got))
	})

	t.Run("filter then sort", func(t *testing.T) {
		got := RunQuery(catalog, domain.ProductQuery{
			Filter: domain.ProductFilter{Category: domain.CategoryNecklaces},
			Sort:   domain.SortPriceDesc,
		})
		assert.Equal(t, []string{"4", "3"}, ids(got))
	})

	t.Run("search narrows the filtered set", func(t *testing.T) {
		got := RunQuery(catalog, domain.ProductQuery{
			Filter: domain.ProductFilter{MaxPrice: decPtr("200")},
			Search: "gold",
			Sort:   domain.SortPriceAsc,
		})
		assert.Equal(t, []string{"1"}, ids(got))
	})

	t.Run("blank search is not applied", func(t *testing.T) {
		got := RunQuery(catalog, domain.ProductQuery{Search: "  ", Sort: domain.SortOldest})
		assert.Len(t, got, len(catalog))
	})
}

func TestPaginate(t *testing.T) {
	catalog := sampleCatalog()

	page, meta := Paginate(catalog, 1, 2)
	assert.Equal(t, []string{"1", "2"}, ids(page))
	assert.Equal(t, domain.Pagination{Page: 1, Limit: 2, TotalItems: 5, TotalPages: 3}, meta)

	page, _ = Paginate(catalog, 3, 2)
	assert.Equal(t, []string{"5"}, ids(page))

	page, meta = Paginate(catalog, 4, 2)
	assert.Empty(t, page)
	assert.Equal(t, 4, meta.Page)

	_, meta = Paginate(catalog, 0, 0)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, defaultPageLimit, meta.Limit)

	_, meta = Paginate(catalog, 1, 1000)
	assert.Equal(t, maxPageLimit, meta.Limit)
}

func TestPaginate_HugePageIsEmpty(t *testing.T) {
	catalog := sampleCatalog()

	for _, p := range []int{math.MaxInt / 50, math.MaxInt / 2, math.MaxInt} {
		var page []domain.Product
		var meta domain.Pagination
		require.NotPanics(t, func() { page, meta = Paginate(catalog, p, 100) })
		assert.NotNil(t, page)
		assert.Empty(t, page)
		assert.Equal(t, p, meta.Page)
		assert.Equal(t, 1, meta.TotalPages)
	}

	page, _ := Paginate(nil, 1, 10)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}
