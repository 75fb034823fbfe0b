package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linebygizia/gizia-api/analytics"
	"github.com/linebygizia/gizia-api/initializers"
	"github.com/linebygizia/gizia-api/models"
)

// GetAnalytics serves the back-office dashboard report.
func GetAnalytics(ctx *gin.Context) {
	var orders []models.Order
	if err := initializers.DB.Find(&orders).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", err)
		return
	}

	var items []models.OrderItem
	if err := initializers.DB.Find(&items).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch order items", err)
		return
	}

	orderRows := make([]analytics.OrderRow, 0, len(orders))
	for _, order := range orders {
		orderRows = append(orderRows, analytics.OrderRow{
			Email:         order.Email,
			Total:         order.Total,
			PaymentStatus: order.PaymentStatus,
			CreatedAt:     order.CreatedAt,
		})
	}

	itemRows := make([]analytics.ItemRow, 0, len(items))
	for _, item := range items {
		itemRows = append(itemRows, analytics.ItemRow{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			Total:       item.Total,
		})
	}

	ctx.JSON(http.StatusOK, analytics.Build(time.Now(), orderRows, itemRows))
}
