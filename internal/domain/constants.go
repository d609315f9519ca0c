package domain

// Categories
const (
	CategoryRings     = "rings"
	CategoryNecklaces = "necklaces"
	CategoryEarrings  = "earrings"
	CategoryBracelets = "bracelets"
	CategoryAnklets   = "anklets"
	CategorySets      = "sets"
)

// Materials
const (
	MaterialGold     = "gold"
	MaterialSilver   = "silver"
	MaterialRoseGold = "rose-gold"
	MaterialPlatinum = "platinum"
	MaterialSteel    = "steel"
	MaterialPearl    = "pearl"
)

// Currency is the single storefront currency.
const Currency = "TRY"

// List Exports for API
var Locales = []Locale{LocaleTR, LocaleEN}

var Categories = []string{
	CategoryRings,
	CategoryNecklaces,
	CategoryEarrings,
	CategoryBracelets,
	CategoryAnklets,
	CategorySets,
}

var Materials = []string{
	MaterialGold,
	MaterialSilver,
	MaterialRoseGold,
	MaterialPlatinum,
	MaterialSteel,
	MaterialPearl,
}

var ProductStatuses = []ProductStatus{
	StatusInStock,
	StatusOutOfStock,
	StatusPreOrder,
	StatusDiscontinued,
}

var SortOptions = []SortOption{
	SortNewest,
	SortOldest,
	SortPriceAsc,
	SortPriceDesc,
	SortNameAsc,
	SortNameDesc,
}

func isOneOf(v string, set []string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// IsKnownCategory reports whether the tag belongs to the closed category set.
func IsKnownCategory(c string) bool { return isOneOf(c, Categories) }

// IsKnownMaterial reports whether the tag belongs to the closed material set.
func IsKnownMaterial(m string) bool { return isOneOf(m, Materials) }
