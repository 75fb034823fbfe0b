package controllers

import (
	"encoding/json"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linebygizia/gizia-api/initializers"
	"github.com/linebygizia/gizia-api/models"
)

type customerView struct {
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	TotalOrders       int       `json:"totalOrders"`
	TotalSpent        float64   `json:"totalSpent"`
	AverageOrderValue float64   `json:"averageOrderValue"`
	FirstOrderAt      time.Time `json:"firstOrderAt"`
	LastOrderAt       time.Time `json:"lastOrderAt"`
}

// GetCustomers derives the customer list from order history. The store has
// no accounts; an email address with at least one order is a customer.
func GetCustomers(ctx *gin.Context) {
	var orders []models.Order
	if err := initializers.DB.Order("created_at asc").Find(&orders).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", err)
		return
	}

	byEmail := map[string]*customerView{}
	for _, order := range orders {
		view, ok := byEmail[order.Email]
		if !ok {
			view = &customerView{Email: order.Email, FirstOrderAt: order.CreatedAt}
			byEmail[order.Email] = view
		}

		// The most recent order wins the contact details.
		var snapshot models.AddressSnapshot
		if err := json.Unmarshal(order.BillingAddress, &snapshot); err == nil {
			if name := strings.TrimSpace(snapshot.FirstName + " " + snapshot.LastName); name != "" {
				view.Name = name
			}
			if snapshot.Phone != "" {
				view.Phone = snapshot.Phone
			}
		}

		view.TotalOrders++
		view.TotalSpent += order.Total
		view.LastOrderAt = order.CreatedAt
	}

	customers := make([]customerView, 0, len(byEmail))
	search := strings.ToLower(ctx.Query("search"))
	for _, view := range byEmail {
		if search != "" &&
			!strings.Contains(strings.ToLower(view.Email), search) &&
			!strings.Contains(strings.ToLower(view.Name), search) {
			continue
		}
		view.TotalSpent = math.Round(view.TotalSpent*100) / 100
		view.AverageOrderValue = math.Round(view.TotalSpent/float64(view.TotalOrders)*100) / 100
		customers = append(customers, *view)
	}

	sort.Slice(customers, func(i, j int) bool {
		if customers[i].TotalSpent != customers[j].TotalSpent {
			return customers[i].TotalSpent > customers[j].TotalSpent
		}
		return customers[i].Email < customers[j].Email
	})

	ctx.JSON(http.StatusOK, gin.H{"customers": customers, "total": len(customers)})
}
