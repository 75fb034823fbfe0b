package catalog

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/linebygizia/gizia-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fixtureSource struct {
	products   []models.Product
	categories []models.Category
}

// NewFixtureSource serves the built-in demo dataset. It never touches the
// database and every page it returns is marked Demo.
func NewFixtureSource() Source {
	return &fixtureSource{products: fixtureProducts(), categories: fixtureCategories()}
}

func (s *fixtureSource) ListProducts(filter Filter) (Page, error) {
	filter.Normalize()

	matched := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if s.matches(p, filter) {
			matched = append(matched, p)
		}
	}

	switch filter.Sort {
	case "price-asc":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case "price-desc":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	case "newest":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	default:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return Page{
		Products:    matched[start:end],
		Total:       total,
		TotalPages:  pageCount(total, filter.Limit),
		CurrentPage: filter.Page,
		Limit:       filter.Limit,
		Demo:        true,
	}, nil
}

func (s *fixtureSource) matches(p models.Product, filter Filter) bool {
	if !p.IsActive {
		return false
	}
	if filter.Category != "" && (p.Category == nil || p.Category.Slug != filter.Category) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) &&
			!strings.Contains(strings.ToLower(p.Material), needle) {
			return false
		}
	}
	if filter.MinPrice != nil && p.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
		return false
	}
	if filter.Featured && !p.IsFeatured {
		return false
	}
	if filter.Sale && p.ComparePrice == nil {
		return false
	}
	if filter.Size != "" && !hasVariant(p, "Size", filter.Size) {
		return false
	}
	if filter.Color != "" && !hasVariant(p, "Color", filter.Color) {
		return false
	}
	return true
}

func hasVariant(p models.Product, name, value string) bool {
	for _, v := range p.Variants {
		if v.IsActive && v.Name == name && v.Value == value {
			return true
		}
	}
	return false
}

func (s *fixtureSource) ProductBySlug(slug string) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].Slug == slug && s.products[i].IsActive {
			return &s.products[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *fixtureSource) Categories() ([]models.Category, error) {
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func imagesJSON(urls ...string) datatypes.JSON {
	data, _ := json.Marshal(urls)
	return datatypes.JSON(data)
}

func floatPtr(v float64) *float64 { return &v }

func fixtureCategories() []models.Category {
	return []models.Category{
		{Model: gorm.Model{ID: 1}, Name: "Accessories", Slug: "accessories", Description: "Curated luxury accessories to complete your look"},
		{Model: gorm.Model{ID: 2}, Name: "Dresses", Slug: "dresses", Description: "Contemporary pieces for everyday luxury"},
		{Model: gorm.Model{ID: 3}, Name: "Evening Wear", Slug: "evening", Description: "Exquisite evening wear for special occasions"},
		{Model: gorm.Model{ID: 4}, Name: "Outerwear", Slug: "outerwear", Description: "Tailored coats and jackets"},
	}
}

func fixtureProducts() []models.Product {
	categories := fixtureCategories()
	byslug := map[string]*models.Category{}
	for i := range categories {
		byslug[categories[i].Slug] = &categories[i]
	}

	sizeRun := func(base int, values ...string) []models.ProductVariant {
		variants := make([]models.ProductVariant, 0, len(values))
		for i, v := range values {
			variants = append(variants, models.ProductVariant{
				Model: gorm.Model{ID: uint(base + i)}, Name: "Size", Value: v, IsActive: true,
			})
		}
		return variants
	}
	colors := func(base int, values ...string) []models.ProductVariant {
		variants := make([]models.ProductVariant, 0, len(values))
		for i, v := range values {
			variants = append(variants, models.ProductVariant{
				Model: gorm.Model{ID: uint(base + i)}, Name: "Color", Value: v, IsActive: true,
			})
		}
		return variants
	}

	return []models.Product{
		{
			Model:        gorm.Model{ID: 1},
			Name:         "Luxury Evening Gown",
			Slug:         "luxury-evening-gown",
			Description:  "Elegant evening gown crafted from the finest silk with hand-embroidered details.",
			Price:        1250,
			ComparePrice: floatPtr(1800),
			Images:       imagesJSON("https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=800&q=80"),
			Material:     "Silk",
			Inventory:    12,
			IsActive:     true,
			IsFeatured:   true,
			CategoryID:   3,
			Category:     byslug["evening"],
			Variants:     append(sizeRun(1, "XS", "S", "M", "L"), colors(5, "Black", "Navy")...),
		},
		{
			Model:       gorm.Model{ID: 2},
			Name:        "Cashmere Coat",
			Slug:        "cashmere-coat",
			Description: "Luxurious double-breasted cashmere coat with silk lining.",
			Price:       980,
			Images:      imagesJSON("https://images.unsplash.com/photo-1544022613-e87ca75a784a?w=800&q=80"),
			Material:    "Cashmere",
			Inventory:   8,
			IsActive:    true,
			IsFeatured:  true,
			CategoryID:  4,
			Category:    byslug["outerwear"],
			Variants:    append(sizeRun(7, "XS", "S", "M", "L"), colors(11, "Camel", "Charcoal")...),
		},
		{
			Model:       gorm.Model{ID: 3},
			Name:        "Silk Cocktail Dress",
			Slug:        "silk-cocktail-dress",
			Description: "Elegant midi dress in pure silk with a flattering A-line silhouette.",
			Price:       420,
			Images:      imagesJSON("https://images.unsplash.com/photo-1566479179817-623b4e5d64e5?w=800&q=80"),
			Material:    "Silk",
			Inventory:   15,
			IsActive:    true,
			CategoryID:  2,
			Category:    byslug["dresses"],
			Variants:    append(sizeRun(13, "XS", "S", "M", "L"), colors(17, "Emerald", "Burgundy")...),
		},
		{
			Model:       gorm.Model{ID: 4},
			Name:        "Designer Handbag",
			Slug:        "designer-handbag",
			Description: "Premium leather handbag with gold-tone hardware.",
			Price:       750,
			Images:      imagesJSON("https://images.unsplash.com/photo-1559563458-527698bf5295?w=800&q=80"),
			Material:    "Leather",
			Inventory:   20,
			IsActive:    true,
			CategoryID:  1,
			Category:    byslug["accessories"],
			Variants:    colors(19, "Black", "Tan", "Cognac"),
		},
		{
			Model:       gorm.Model{ID: 5},
			Name:        "Elegant Blouse",
			Slug:        "elegant-blouse",
			Description: "Sophisticated silk blouse with pearl button details.",
			Price:       280,
			Images:      imagesJSON("https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?w=800&q=80"),
			Material:    "Silk",
			Inventory:   25,
			IsActive:    true,
			CategoryID:  2,
			Category:    byslug["dresses"],
			Variants:    append(sizeRun(22, "XS", "S", "M", "L"), colors(26, "Ivory", "Blush")...),
		},
		{
			Model:        gorm.Model{ID: 6},
			Name:         "Statement Earrings",
			Slug:         "statement-earrings",
			Description:  "Bold gold-plated earrings with crystal accents.",
			Price:        180,
			ComparePrice: floatPtr(220),
			Images:       imagesJSON("https://images.unsplash.com/photo-1584917865442-de89df76afd3?w=800&q=80"),
			Material:     "Gold plate",
			Inventory:    30,
			IsActive:     true,
			CategoryID:   1,
			Category:     byslug["accessories"],
			Variants: []models.ProductVariant{
				{Model: gorm.Model{ID: 28}, Name: "Metal", Value: "Gold", IsActive: true},
				{Model: gorm.Model{ID: 29}, Name: "Metal", Value: "Silver", IsActive: true},
			},
		},
	}
}
