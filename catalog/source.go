// Package catalog abstracts where storefront reads come from: the real
// database, or a fixed demo dataset when no database is configured. Only
// side-effect-free reads go through this interface; writes and order
// creation always hit the database directly.
package catalog

import (
	"errors"
	"math"

	"github.com/linebygizia/gizia-api/models"
)

var ErrNotFound = errors.New("catalog: not found")

// Filter mirrors the product-listing query parameters.
type Filter struct {
	Page     int
	Limit    int
	Category string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
	Featured bool
	Sale     bool
	Size     string
	Color    string
}

// Normalize applies the defaults used by the listing endpoint.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 12
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	switch f.Sort {
	case "price-asc", "price-desc", "newest", "name":
	default:
		f.Sort = "name"
	}
}

// Page is one page of products plus pagination metadata.
type Page struct {
	Products    []models.Product `json:"products"`
	Total       int64            `json:"total"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	Limit       int              `json:"limit"`
	Demo        bool             `json:"demo"`
}

func pageCount(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}

type Source interface {
	ListProducts(filter Filter) (Page, error)
	// ProductBySlug returns ErrNotFound for unknown or inactive slugs.
	ProductBySlug(slug string) (*models.Product, error)
	Categories() ([]models.Category, error)
}
