package catalog

import (
	"sort"
	"strings"

	"github.com/pharmago/clientkit/pkg/api"
)

// SortOrder names a catalog sort applied after filtering.
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortByName    SortOrder = "name"
	SortPriceAsc  SortOrder = "price"
	SortPriceDesc SortOrder = "price-desc"
)

// Sort returns the entries reordered by the given order. The sort is stable,
// so entries that compare equal keep their input order. The input slice is
// not modified.
func Sort(medicines []api.Medicine, order SortOrder) []api.Medicine {
	if order == SortNone {
		return medicines
	}

	out := make([]api.Medicine, len(medicines))
	copy(out, medicines)

	switch order {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out
}
