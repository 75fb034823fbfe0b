package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string `json:"name"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:191"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type ProductVariant struct {
	gorm.Model
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Value     string `json:"value"`
	IsActive  bool   `json:"isActive"`
}

type Product struct {
	gorm.Model
	Name         string           `json:"name"`
	Slug         string           `json:"slug" gorm:"uniqueIndex;size:191"`
	Description  string           `json:"description"`
	Price        float64          `json:"price"`
	ComparePrice *float64         `json:"comparePrice"`
	Images       datatypes.JSON   `json:"images"`
	SKU          string           `json:"sku"`
	Inventory    int              `json:"inventory"`
	Material     string           `json:"material"`
	Care         string           `json:"care"`
	IsActive     bool             `json:"isActive"`
	IsFeatured   bool             `json:"isFeatured"`
	CategoryID   int              `json:"categoryId"`
	Category     *Category        `json:"category,omitempty"`
	Variants     []ProductVariant `json:"variants" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// OnSale reports whether the product carries a compare-at price.
func (p *Product) OnSale() bool {
	return p.ComparePrice != nil
}
