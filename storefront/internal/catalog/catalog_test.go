package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/azaliaz/luxefurnish/storefront/internal/domain/models"
)

func ids(products []models.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	c := Default()
	tests := []struct {
		name     string
		category string
		query    string
		want     []int64
	}{
		{name: "all", category: "all", want: []int64{1, 2, 3, 4}},
		{name: "empty category", category: "", want: []int64{1, 2, 3, 4}},
		{name: "by category", category: "Chairs", want: []int64{2}},
		{name: "category without products", category: "storage", want: []int64{}},
		{name: "search name", category: "all", query: "SOFA", want: []int64{1}},
		{name: "search description", category: "all", query: "oak", want: []int64{3}},
		{name: "search matches storage in description", category: "all", query: "storage", want: []int64{4}},
		{name: "category and search", category: "beds", query: "sofa", want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(c.Filter(tt.category, tt.query)))
		})
	}
}

func TestProduct(t *testing.T) {
	c := Default()

	p, ok := c.Product(2)
	assert.True(t, ok)
	assert.Equal(t, "Ergonomic Office Chair", p.Name)

	_, ok = c.Product(99)
	assert.False(t, ok)
}

func TestCartItem(t *testing.T) {
	p, _ := Default().Product(1)
	item := CartItem(p)

	assert.Equal(t, models.CartItem{ID: 1, Name: p.Name, Price: 1299, Image: p.Image}, item)
}

func TestCategories(t *testing.T) {
	c := Default()
	cats := c.Categories()
	cats[0] = "changed"

	assert.Equal(t, "All", c.Categories()[0])
	assert.Len(t, cats, 6)
}
