package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Locale is a supported display language.
type Locale string

const (
	LocaleTR Locale = "tr"
	LocaleEN Locale = "en"
)

// DefaultLocale is used when a request does not negotiate one.
const DefaultLocale = LocaleTR

// ParseLocale returns the matching Locale, or false for unsupported values.
func ParseLocale(s string) (Locale, bool) {
	switch Locale(s) {
	case LocaleTR, LocaleEN:
		return Locale(s), true
	}
	return "", false
}

// LocalizedText maps a locale to display text.
type LocalizedText map[Locale]string

// Get returns the text for the locale, falling back to the default locale
// and then to any available translation.
func (t LocalizedText) Get(l Locale) string {
	if v, ok := t[l]; ok && v != "" {
		return v
	}
	if v, ok := t[DefaultLocale]; ok && v != "" {
		return v
	}
	for _, loc := range Locales {
		if v := t[loc]; v != "" {
			return v
		}
	}
	return ""
}

// ProductStatus drives purchasability.
type ProductStatus string

const (
	StatusInStock      ProductStatus = "in-stock"
	StatusOutOfStock   ProductStatus = "out-of-stock"
	StatusPreOrder     ProductStatus = "pre-order"
	StatusDiscontinued ProductStatus = "discontinued"
)

// Purchasable reports whether the storefront offers an add-to-cart control.
func (s ProductStatus) Purchasable() bool {
	return s == StatusInStock || s == StatusPreOrder
}

type Product struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Name        LocalizedText   `json:"name"`
	Description LocalizedText   `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Material    string          `json:"material"`
	Tags        []string        `json:"tags,omitempty"`
	Images      []string        `json:"images,omitempty"`
	Status      ProductStatus   `json:"status"`
	// Sequence is the creation rank; higher is newer.
	Sequence int `json:"sequence"`
}

// ProductFilter holds the recognized filter criteria. Zero values impose no
// constraint; price bounds are inclusive.
type ProductFilter struct {
	Category string
	Material string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// IsZero reports whether the filter imposes no constraint at all.
func (f ProductFilter) IsZero() bool {
	return f.Category == "" && f.Material == "" && f.MinPrice == nil && f.MaxPrice == nil
}

// SortOption selects the ordering of a product listing.
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortOldest    SortOption = "oldest"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortNameAsc   SortOption = "name-asc"
	SortNameDesc  SortOption = "name-desc"
)

// ParseSortOption accepts both the dashed form and the underscore form
// (price_asc) used by older clients. Unknown values yield SortNewest.
func ParseSortOption(s string) SortOption {
	switch s {
	case "newest", "":
		return SortNewest
	case "oldest":
		return SortOldest
	case "price-asc", "price_asc":
		return SortPriceAsc
	case "price-desc", "price_desc":
		return SortPriceDesc
	case "name-asc", "name_asc":
		return SortNameAsc
	case "name-desc", "name_desc":
		return SortNameDesc
	}
	return SortNewest
}

// ProductQuery is the full listing request: filter, then search, then sort.
type ProductQuery struct {
	Filter ProductFilter
	Search string
	Sort   SortOption
	Locale Locale
	Page   int
	Limit  int
}

// CatalogProvider supplies the read-only product sequence.
type CatalogProvider interface {
	Products(ctx context.Context) ([]Product, error)
}
