package gmaps

import (
	"fmt"
	"sort"
	"strings"
)

// Category names a rate-limit budget. Every request is charged against CategoryAll
// plus the category of the API it calls.
type Category string

// API categories.
const (
	CategoryAll        Category = "all"
	CategoryDirections Category = "directions"
	CategoryElevation  Category = "elevation"
	CategoryGeocoding  Category = "geocoding"
	CategoryRoads      Category = "roads"
	CategoryTimeZone   Category = "time_zone"
)

// Categories returns every known category.
func Categories() []Category {
	return []Category{
		CategoryAll,
		CategoryDirections,
		CategoryElevation,
		CategoryGeocoding,
		CategoryRoads,
		CategoryTimeZone,
	}
}

// ParseCategory parses a category name, case-insensitively. Hyphens are accepted
// in place of underscores.
func ParseCategory(name string) (Category, error) {
	normalized := Category(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))

	for _, category := range Categories() {
		if category == normalized {
			return category, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// NormalizeCategories adds CategoryAll, removes duplicates and sorts the result so
// that callers always take budgets in the same order.
func NormalizeCategories(categories []Category) []Category {
	seen := map[Category]bool{CategoryAll: true}
	normalized := []Category{CategoryAll}

	for _, category := range categories {
		if seen[category] {
			continue
		}

		seen[category] = true
		normalized = append(normalized, category)
	}

	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i] < normalized[j]
	})

	return normalized
}
