package usecase

import (
	"cmp"
	"slices"
	"strings"

	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/utils"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Query engine: pure functions over a product sequence. None of them mutate
// their input; each returns a new slice.

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// FilterProducts returns the products matching every provided criterion, in
// input order.
func FilterProducts(products []domain.Product, criteria domain.ProductFilter) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if criteria.Category != "" && p.Category != criteria.Category {
			continue
		}
		if criteria.Material != "" && p.Material != criteria.Material {
			continue
		}
		if criteria.MinPrice != nil && p.Price.LessThan(*criteria.MinPrice) {
			continue
		}
		if criteria.MaxPrice != nil && p.Price.GreaterThan(*criteria.MaxPrice) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProducts orders a copy of products. The sort is stable so equal keys
// keep their input order. Name ordering uses the collation rules of locale.
func SortProducts(products []domain.Product, option domain.SortOption, locale domain.Locale) []domain.Product {
	out := slices.Clone(products)
	if out == nil {
		out = []domain.Product{}
	}

	var compare func(a, b domain.Product) int
	switch option {
	case domain.SortNewest:
		compare = func(a, b domain.Product) int { return cmp.Compare(b.Sequence, a.Sequence) }
	case domain.SortOldest:
		compare = func(a, b domain.Product) int { return cmp.Compare(a.Sequence, b.Sequence) }
	case domain.SortPriceAsc:
		compare = func(a, b domain.Product) int { return a.Price.Cmp(b.Price) }
	case domain.SortPriceDesc:
		compare = func(a, b domain.Product) int { return b.Price.Cmp(a.Price) }
	case domain.SortNameAsc, domain.SortNameDesc:
		col := collate.New(collationTag(locale), collate.IgnoreCase)
		compare = func(a, b domain.Product) int {
			return col.CompareString(a.Name.Get(locale), b.Name.Get(locale))
		}
		if option == domain.SortNameDesc {
			asc := compare
			compare = func(a, b domain.Product) int { return asc(b, a) }
		}
	default:
		return out
	}

	slices.SortStableFunc(out, compare)
	return out
}

func collationTag(l domain.Locale) language.Tag {
	if l == domain.LocaleEN {
		return language.English
	}
	return language.Turkish
}

// SearchProducts returns products whose localized names or descriptions, tags,
// category or material contain query, ignoring case. A blank query matches
// nothing.
func SearchProducts(products []domain.Product, query string) []domain.Product {
	needle := utils.FoldText(strings.TrimSpace(query))
	out := []domain.Product{}
	if needle == "" {
		return out
	}
	for _, p := range products {
		if productMatches(p, needle) {
			out = append(out, p)
		}
	}
	return out
}

func productMatches(p domain.Product, needle string) bool {
	contains := func(s string) bool {
		return s != "" && strings.Contains(utils.FoldText(s), needle)
	}
	for _, v := range p.Name {
		if contains(v) {
			return true
		}
	}
	for _, v := range p.Description {
		if contains(v) {
			return true
		}
	}
	for _, tag := range p.Tags {
		if contains(tag) {
			return true
		}
	}
	return contains(p.Category) || contains(p.Material)
}

// RunQuery applies filter, then search (only when a search string is given),
// then sort. Sorting runs last so it is never undone.
func RunQuery(products []domain.Product, q domain.ProductQuery) []domain.Product {
	result := products
	if !q.Filter.IsZero() {
		result = FilterProducts(products, q.Filter)
	}
	if strings.TrimSpace(q.Search) != "" {
		result = SearchProducts(result, q.Search)
	}
	sortOpt := q.Sort
	if sortOpt == "" {
		sortOpt = domain.SortNewest
	}
	return SortProducts(result, sortOpt, q.Locale)
}

// Paginate slices one page out of products. Out-of-range pages are empty.
func Paginate(products []domain.Product, page, limit int) ([]domain.Product, domain.Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	total := len(products)
	pagination := domain.Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: int64(total),
		TotalPages: (total + limit - 1) / limit,
	}

	// Compare in pages before multiplying so huge page numbers cannot overflow.
	if page-1 >= pagination.TotalPages {
		return []domain.Product{}, pagination
	}
	start := (page - 1) * limit
	end := min(start+limit, total)
	return slices.Clone(products[start:end]), pagination
}
