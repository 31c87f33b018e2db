package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pharmago/clientkit/pkg/catalog"
)

func TestSort(t *testing.T) {
	t.Run("no order keeps input order", func(t *testing.T) {
		got := catalog.Sort(medicines, catalog.SortNone)
		assert.Equal(t, []int64{1, 2, 3, 4}, ids(got))
	})

	t.Run("by name", func(t *testing.T) {
		got := catalog.Sort(medicines, catalog.SortByName)
		assert.Equal(t, []int64{2, 4, 1, 3}, ids(got))
	})

	t.Run("by price ascending", func(t *testing.T) {
		got := catalog.Sort(medicines, catalog.SortPriceAsc)
		assert.Equal(t, []int64{1, 4, 3, 2}, ids(got))
	})

	t.Run("by price descending", func(t *testing.T) {
		got := catalog.Sort(medicines, catalog.SortPriceDesc)
		assert.Equal(t, []int64{2, 3, 4, 1}, ids(got))
	})

	t.Run("input slice untouched", func(t *testing.T) {
		catalog.Sort(medicines, catalog.SortByName)
		assert.Equal(t, []int64{1, 2, 3, 4}, ids(medicines))
	})
}
