package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	nonSlug    = regexp.MustCompile("[^a-z0-9-]")
	dashes     = regexp.MustCompile("-+")
	skuMaxStem = 12
)

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlug.ReplaceAllString(s, "")
	s = dashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GenerateSKU derives a stock keeping unit from a product name,
// e.g. "Seiko Presage" -> "SEIKO-PRESAG-1A2B3C"
func GenerateSKU(name string) string {
	stem := strings.ToUpper(Slugify(name))
	if len(stem) > skuMaxStem {
		stem = strings.TrimRight(stem[:skuMaxStem], "-")
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	if stem == "" {
		return "SKU-" + suffix
	}
	return stem + "-" + suffix
}
