package utils

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

var (
	slugInvalid = regexp.MustCompile("[^a-z0-9 -]+")
	slugDashes  = regexp.MustCompile("-+")
	// Turkish letters that plain case folding would keep apart from their
	// ASCII neighbours.
	turkishFold = strings.NewReplacer(
		"İ", "i", "ı", "i",
		"Ş", "s", "ş", "s",
		"Ğ", "g", "ğ", "g",
		"Ç", "c", "ç", "c",
		"Ö", "o", "ö", "o",
		"Ü", "u", "ü", "u",
	)
)

// GenerateSlug converts a string into a URL-friendly slug.
// e.g. "Altın Yüzük!" -> "altin-yuzuk"
func GenerateSlug(input string) string {
	s := strings.ToLower(turkishFold.Replace(input))
	s = slugInvalid.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// FoldText normalizes text for case-insensitive matching. Dotted and dotless
// I collapse to "i" so Turkish and English spellings match each other.
func FoldText(s string) string {
	s = strings.NewReplacer("İ", "i", "ı", "i").Replace(s)
	// cases.Caser is stateful, one per call.
	return cases.Fold().String(s)
}

// ParseInt parses a string to int with a fallback default value
func ParseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}
