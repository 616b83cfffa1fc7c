package catalog

import (
	"strings"

	"github.com/azaliaz/luxefurnish/storefront/internal/domain/models"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

var categories = []string{"All", "Sofas", "Chairs", "Tables", "Beds", "Storage"}

var defaultProducts = []models.Product{
	{
		ID:          1,
		Name:        "Modern Leather Sofa",
		Category:    "sofas",
		Price:       1299,
		Rating:      4.5,
		Image:       "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?auto=format&fit=crop&w=800&q=80",
		Description: "Luxurious leather sofa with clean lines and premium comfort.",
	},
	{
		ID:          2,
		Name:        "Ergonomic Office Chair",
		Category:    "chairs",
		Price:       399,
		Rating:      4.8,
		Image:       "https://images.unsplash.com/photo-1580480055273-228ff5388ef8?auto=format&fit=crop&w=800&q=80",
		Description: "Comfortable office chair with adjustable features.",
	},
	{
		ID:          3,
		Name:        "Solid Wood Dining Table",
		Category:    "tables",
		Price:       899,
		Rating:      4.7,
		Image:       "https://images.unsplash.com/photo-1577140917170-285929fb55b7?auto=format&fit=crop&w=800&q=80",
		Description: "Beautiful dining table crafted from solid oak wood.",
	},
	{
		ID:          4,
		Name:        "Queen Platform Bed",
		Category:    "beds",
		Price:       799,
		Rating:      4.6,
		Image:       "https://images.unsplash.com/photo-1505693314120-0d443867891c?auto=format&fit=crop&w=800&q=80",
		Description: "Modern platform bed with built-in storage.",
	},
}

type Catalog struct {
	products []models.Product
}

func New(products []models.Product) *Catalog {
	return &Catalog{products: products}
}

// Default is the built-in furniture collection.
func Default() *Catalog {
	return New(defaultProducts)
}

func (c *Catalog) Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// Filter keeps products of category (CategoryAll or "" for any) whose name
// or description contains query, ignoring case. Catalog order is kept.
func (c *Catalog) Filter(category, query string) []models.Product {
	category = strings.ToLower(strings.TrimSpace(category))
	query = strings.ToLower(strings.TrimSpace(query))

	var result []models.Product
	for _, p := range c.products {
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func (c *Catalog) Product(id int64) (models.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// CartItem is the "add to cart" payload for a product.
func CartItem(p models.Product) models.CartItem {
	return models.CartItem{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Image: p.Image,
	}
}
