package catalog

import (
	"sort"
	"strings"

	"github.com/pharmago/clientkit/pkg/api"
)

// PrescriptionFilter narrows the catalog by prescription requirement.
type PrescriptionFilter string

const (
	// PrescriptionAny keeps every entry.
	PrescriptionAny PrescriptionFilter = "all"
	// PrescriptionOnly keeps entries requiring a prescription.
	PrescriptionOnly PrescriptionFilter = "prescription"
	// PrescriptionOTC keeps over-the-counter entries.
	PrescriptionOTC PrescriptionFilter = "otc"
)

// Filter expresses the storefront's catalog narrowing controls. Zero values
// mean "don't narrow" for every field.
type Filter struct {
	// Search matches case-insensitively against name and description.
	Search       string
	Category     string
	Manufacturer string
	// MinPrice and MaxPrice bound the price; MaxPrice of 0 means unbounded.
	MinPrice     float64
	MaxPrice     float64
	Prescription PrescriptionFilter
	InStockOnly  bool
}

// Apply returns the entries matching every set filter field, preserving the
// input order. The input slice is not modified.
func Apply(medicines []api.Medicine, f Filter) []api.Medicine {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]api.Medicine, 0, len(medicines))
	for _, m := range medicines {
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Name), search) &&
			!strings.Contains(strings.ToLower(m.Description), search) {
			continue
		}
		if f.Category != "" && m.Category != f.Category {
			continue
		}
		if f.Manufacturer != "" && m.Manufacturer != f.Manufacturer {
			continue
		}
		if m.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && m.Price > f.MaxPrice {
			continue
		}
		switch f.Prescription {
		case PrescriptionOnly:
			if !m.RequiresPrescription {
				continue
			}
		case PrescriptionOTC:
			if m.RequiresPrescription {
				continue
			}
		}
		if f.InStockOnly && m.StockQuantity <= 0 {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Categories returns the distinct categories present, sorted.
func Categories(medicines []api.Medicine) []string {
	return distinct(medicines, func(m api.Medicine) string { return m.Category })
}

// Manufacturers returns the distinct manufacturers present, sorted.
func Manufacturers(medicines []api.Medicine) []string {
	return distinct(medicines, func(m api.Medicine) string { return m.Manufacturer })
}

// Paginate returns the page with the given 1-based number, or an empty slice
// past the end.
func Paginate(medicines []api.Medicine, page, perPage int) []api.Medicine {
	if page < 1 || perPage < 1 {
		return nil
	}

	start := (page - 1) * perPage
	if start >= len(medicines) {
		return nil
	}

	end := min(start+perPage, len(medicines))
	return medicines[start:end]
}

func distinct(medicines []api.Medicine, key func(api.Medicine) string) []string {
	seen := make(map[string]struct{}, len(medicines))
	var out []string
	for _, m := range medicines {
		k := key(m)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
