package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureListDefaults(t *testing.T) {
	src := NewFixtureSource()

	page, err := src.ListProducts(Filter{})
	require.NoError(t, err)

	assert.True(t, page.Demo)
	assert.Equal(t, int64(6), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	// Default sort is name ascending.
	assert.Equal(t, "Cashmere Coat", page.Products[0].Name)
}

func TestFixtureListPagination(t *testing.T) {
	src := NewFixtureSource()

	page, err := src.ListProducts(Filter{Page: 2, Limit: 4})
	require.NoError(t, err)

	assert.Equal(t, int64(6), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Products, 2)
}

func TestFixtureListFilters(t *testing.T) {
	src := NewFixtureSource()

	sale, err := src.ListProducts(Filter{Sale: true})
	require.NoError(t, err)
	for _, p := range sale.Products {
		assert.NotNil(t, p.ComparePrice)
	}
	assert.Equal(t, int64(2), sale.Total)

	featured, err := src.ListProducts(Filter{Featured: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), featured.Total)

	silky, err := src.ListProducts(Filter{Search: "silk"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, silky.Total, int64(3))

	cheap, err := src.ListProducts(Filter{MaxPrice: floatPtr(300)})
	require.NoError(t, err)
	for _, p := range cheap.Products {
		assert.LessOrEqual(t, p.Price, 300.0)
	}

	sized, err := src.ListProducts(Filter{Size: "M", Color: "Navy"})
	require.NoError(t, err)
	require.Equal(t, int64(1), sized.Total)
	assert.Equal(t, "luxury-evening-gown", sized.Products[0].Slug)
}

func TestFixtureListSort(t *testing.T) {
	src := NewFixtureSource()

	asc, err := src.ListProducts(Filter{Sort: "price-asc"})
	require.NoError(t, err)
	for i := 1; i < len(asc.Products); i++ {
		assert.LessOrEqual(t, asc.Products[i-1].Price, asc.Products[i].Price)
	}

	desc, err := src.ListProducts(Filter{Sort: "price-desc"})
	require.NoError(t, err)
	assert.Equal(t, "Luxury Evening Gown", desc.Products[0].Name)
}

func TestFixtureProductBySlug(t *testing.T) {
	src := NewFixtureSource()

	p, err := src.ProductBySlug("cashmere-coat")
	require.NoError(t, err)
	assert.Equal(t, 980.0, p.Price)
	assert.Equal(t, "outerwear", p.Category.Slug)

	_, err = src.ProductBySlug("no-such-slug")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFixtureCategories(t *testing.T) {
	src := NewFixtureSource()

	categories, err := src.Categories()
	require.NoError(t, err)
	assert.Len(t, categories, 4)
}
