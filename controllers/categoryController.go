package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linebygizia/gizia-api/initializers"
	"github.com/linebygizia/gizia-api/models"
	"github.com/linebygizia/gizia-api/utils"
)

type categoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// CreateCategory creates a category with a unique slug.
func CreateCategory(ctx *gin.Context) {
	var input categoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if input.Name == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Name is required")
		return
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}

	var count int64
	if err := initializers.DB.Model(&models.Category{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to check slug", err)
		return
	}
	if count > 0 {
		sendErrorResponse(ctx, http.StatusConflict, "A category with this slug already exists")
		return
	}

	category := models.Category{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Image:       input.Image,
	}
	if err := initializers.DB.Create(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create category", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Category created successfully", "category": category})
}
