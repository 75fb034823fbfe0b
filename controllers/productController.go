package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linebygizia/gizia-api/catalog"
	"github.com/linebygizia/gizia-api/initializers"
	"github.com/linebygizia/gizia-api/models"
	"github.com/linebygizia/gizia-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func imagesToJSON(urls []string) datatypes.JSON {
	if urls == nil {
		urls = []string{}
	}
	data, _ := json.Marshal(urls)
	return datatypes.JSON(data)
}

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

var catalogSource catalog.Source

// InitCatalog selects where storefront reads come from. The fixture source
// is an explicit demo mode, never a silent fallback.
func InitCatalog() {
	if initializers.DemoMode() {
		log.Println("Catalog running in demo mode with fixture data.")
		catalogSource = catalog.NewFixtureSource()
		return
	}
	catalogSource = catalog.NewGormSource(initializers.DB)
}

// SetCatalogSource swaps the read source, used by tests.
func SetCatalogSource(src catalog.Source) {
	catalogSource = src
}

func parseListFilter(ctx *gin.Context) catalog.Filter {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))

	filter := catalog.Filter{
		Page:     page,
		Limit:    limit,
		Category: ctx.Query("category"),
		Search:   ctx.Query("search"),
		Sort:     ctx.DefaultQuery("sort", "name"),
		Featured: ctx.Query("featured") == "true",
		Sale:     ctx.Query("sale") == "true",
		Size:     ctx.Query("size"),
		Color:    ctx.Query("color"),
	}
	if v := ctx.Query("minPrice"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &min
		}
	}
	if v := ctx.Query("maxPrice"); v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &max
		}
	}
	return filter
}

// GetProducts lists active products for the storefront.
func GetProducts(ctx *gin.Context) {
	page, err := catalogSource.ListProducts(parseListFilter(ctx))
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"products": page.Products,
		"demo":     page.Demo,
		"metadata": gin.H{
			"total":           page.Total,
			"totalPages":      page.TotalPages,
			"currentPage":     page.CurrentPage,
			"limit":           page.Limit,
			"hasNextPage":     page.CurrentPage < page.TotalPages,
			"hasPreviousPage": page.CurrentPage > 1,
		},
	})
}

// GetProductBySlug returns one active product; 404 for unknown or inactive
// slugs.
func GetProductBySlug(ctx *gin.Context) {
	product, err := catalogSource.ProductBySlug(ctx.Param("slug"))
	if errors.Is(err, catalog.ErrNotFound) {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// GetCategories lists all categories, name ascending.
func GetCategories(ctx *gin.Context) {
	categories, err := catalogSource.Categories()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

type productInput struct {
	Name         string                `json:"name"`
	Slug         string                `json:"slug"`
	Description  string                `json:"description"`
	Price        *float64              `json:"price"`
	ComparePrice *float64              `json:"comparePrice"`
	Images       []string              `json:"images"`
	SKU          string                `json:"sku"`
	Inventory    int                   `json:"inventory"`
	Material     string                `json:"material"`
	Care         string                `json:"care"`
	IsActive     *bool                 `json:"isActive"`
	IsFeatured   bool                  `json:"isFeatured"`
	CategoryID   int                   `json:"categoryId"`
	Variants     []productVariantInput `json:"variants"`
}

type productVariantInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// slugTaken reports whether another product already owns the slug,
// excluding excludeID when updating.
func slugTaken(slug string, excludeID uint) (bool, error) {
	query := initializers.DB.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateProduct creates a product with its variants. Name, price and
// category are required; the slug is derived from the name when absent.
func CreateProduct(ctx *gin.Context) {
	var input productInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if input.Name == "" || input.Price == nil || input.CategoryID == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Name, price, and category are required")
		return
	}
	if *input.Price < 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Price must not be negative")
		return
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}

	taken, err := slugTaken(slug, 0)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to check slug", err)
		return
	}
	if taken {
		sendErrorResponse(ctx, http.StatusConflict, "A product with this slug already exists")
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := models.Product{
		Name:         input.Name,
		Slug:         slug,
		Description:  input.Description,
		Price:        *input.Price,
		ComparePrice: input.ComparePrice,
		Images:       imagesToJSON(input.Images),
		SKU:          input.SKU,
		Inventory:    input.Inventory,
		Material:     input.Material,
		Care:         input.Care,
		IsActive:     isActive,
		IsFeatured:   input.IsFeatured,
		CategoryID:   input.CategoryID,
	}
	for _, v := range input.Variants {
		product.Variants = append(product.Variants, models.ProductVariant{Name: v.Name, Value: v.Value, IsActive: true})
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
}

// UpdateProduct updates a product in place. Reusing the product's own slug
// is allowed; taking another product's slug is a conflict.
func UpdateProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	var product models.Product
	if err := initializers.DB.Preload("Variants").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch product", err)
		}
		return
	}

	var input productInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if input.Name == "" || input.Price == nil || input.CategoryID == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Name, price, and category are required")
		return
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}

	taken, err := slugTaken(slug, product.ID)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to check slug", err)
		return
	}
	if taken {
		sendErrorResponse(ctx, http.StatusConflict, "A product with this slug already exists")
		return
	}

	product.Name = input.Name
	product.Slug = slug
	product.Description = input.Description
	product.Price = *input.Price
	product.ComparePrice = input.ComparePrice
	product.Images = imagesToJSON(input.Images)
	product.SKU = input.SKU
	product.Inventory = input.Inventory
	product.Material = input.Material
	product.Care = input.Care
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.IsFeatured = input.IsFeatured
	product.CategoryID = input.CategoryID

	tx := initializers.DB.Begin()
	if err := tx.Save(&product).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}
	if input.Variants != nil {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductVariant{}).Error; err != nil {
			tx.Rollback()
			respondWithError(ctx, http.StatusInternalServerError, "Failed to update variants", err)
			return
		}
		for _, v := range input.Variants {
			variant := models.ProductVariant{ProductID: int(product.ID), Name: v.Name, Value: v.Value, IsActive: true}
			if err := tx.Create(&variant).Error; err != nil {
				tx.Rollback()
				respondWithError(ctx, http.StatusInternalServerError, "Failed to update variants", err)
				return
			}
		}
	}
	if err := tx.Commit().Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// GetAdminProducts lists every product, newest first, for the back office.
func GetAdminProducts(ctx *gin.Context) {
	var products []models.Product
	err := initializers.DB.Preload("Category").Preload("Variants").
		Order("created_at desc").Find(&products).Error
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

func DeleteProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	result := initializers.DB.Delete(&models.Product{}, productID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
