package catalog

import (
	"errors"

	"github.com/linebygizia/gizia-api/models"
	"gorm.io/gorm"
)

type gormSource struct {
	db *gorm.DB
}

// NewGormSource serves catalog reads from the database.
func NewGormSource(db *gorm.DB) Source {
	return &gormSource{db: db}
}

func (s *gormSource) ListProducts(filter Filter) (Page, error) {
	filter.Normalize()

	query := s.db.Model(&models.Product{}).Where("is_active = ?", true)

	if filter.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("products.name LIKE ? OR products.description LIKE ? OR products.material LIKE ?", like, like, like)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Featured {
		query = query.Where("is_featured = ?", true)
	}
	if filter.Sale {
		query = query.Where("compare_price IS NOT NULL")
	}
	if filter.Size != "" {
		query = query.Where("EXISTS (SELECT 1 FROM product_variants v WHERE v.product_id = products.id AND v.name = 'Size' AND v.value = ? AND v.is_active = ?)", filter.Size, true)
	}
	if filter.Color != "" {
		query = query.Where("EXISTS (SELECT 1 FROM product_variants v WHERE v.product_id = products.id AND v.name = 'Color' AND v.value = ? AND v.is_active = ?)", filter.Color, true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return Page{}, err
	}

	switch filter.Sort {
	case "price-asc":
		query = query.Order("price asc")
	case "price-desc":
		query = query.Order("price desc")
	case "newest":
		query = query.Order("created_at desc")
	default:
		query = query.Order("name asc")
	}

	var products []models.Product
	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("Category").
		Preload("Variants", "is_active = ?", true).
		Limit(filter.Limit).Offset(offset).
		Find(&products).Error
	if err != nil {
		return Page{}, err
	}

	return Page{
		Products:    products,
		Total:       total,
		TotalPages:  pageCount(total, filter.Limit),
		CurrentPage: filter.Page,
		Limit:       filter.Limit,
	}, nil
}

func (s *gormSource) ProductBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := s.db.Where("slug = ? AND is_active = ?", slug, true).
		Preload("Category").
		Preload("Variants", "is_active = ?", true).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *gormSource) Categories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
