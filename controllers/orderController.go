package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linebygizia/gizia-api/initializers"
	"github.com/linebygizia/gizia-api/models"
	"github.com/linebygizia/gizia-api/pricing"
	"github.com/linebygizia/gizia-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// validateCheckoutForm enforces the submission gate shared by both payment
// paths. Returns an empty string when the form is valid.
func validateCheckoutForm(email string, info *models.CustomerInfo, addr *models.ShippingAddressInput) string {
	if email == "" || info == nil || addr == nil {
		return "Missing required fields"
	}
	if info.FirstName == "" || info.LastName == "" || info.Phone == "" || addr.Line1 == "" {
		return "Missing required customer fields"
	}
	if !pricing.ValidatePhone(info.Phone, addr.Country) {
		return "Invalid phone number"
	}
	if addr.Country == "LB" {
		if addr.Governorate == "" || addr.City == "" {
			return "Governorate and city are required for Lebanese addresses"
		}
		if !pricing.ValidLebanonLocation(addr.Governorate, addr.City) {
			return "Unknown governorate or city"
		}
	}
	return ""
}

func newOrderNumber() string {
	return "GZ-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func addressSnapshot(email string, info *models.CustomerInfo, addr *models.ShippingAddressInput) (datatypes.JSON, error) {
	snapshot := models.AddressSnapshot{
		FirstName:   info.FirstName,
		LastName:    info.LastName,
		Phone:       info.Phone,
		Email:       email,
		Line1:       addr.Line1,
		Line2:       addr.Line2,
		City:        addr.City,
		Governorate: addr.Governorate,
		PostalCode:  addr.PostalCode,
		Country:     addr.Country,
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

// CreateOrder is the cash-on-delivery path: validates the payload, then
// creates the order, its items and the inventory decrements in one
// transaction. A replayed checkout token returns the order it originally
// created instead of a duplicate.
func CreateOrder(ctx *gin.Context) {
	var input models.CreateOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if input.Email == "" || input.CustomerInfo == nil || input.ShippingAddress == nil || len(input.Items) == 0 || input.Total == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing required fields")
		return
	}
	if msg := validateCheckoutForm(input.Email, input.CustomerInfo, input.ShippingAddress); msg != "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msg)
		return
	}
	if input.CheckoutToken == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing checkout token")
		return
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, "Item quantity must be at least 1")
			return
		}
		if item.Price < 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, "Item price must not be negative")
			return
		}
	}

	// Orders always need the database; demo mode serves catalog reads only.
	if initializers.DB == nil {
		sendErrorResponse(ctx, http.StatusServiceUnavailable, "Ordering is unavailable in demo mode")
		return
	}

	// Replay of an already-consumed token returns the original order.
	var existing models.Order
	err := initializers.DB.Where("checkout_token = ?", input.CheckoutToken).First(&existing).Error
	if err == nil {
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"orderId":     existing.ID,
			"orderNumber": existing.OrderNumber,
			"replayed":    true,
			"message":     "Order already created",
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to check checkout token", err)
		return
	}

	// Amounts are recomputed server side; the client's figures are only
	// accepted within a cent of the canonical ones.
	subtotal := 0.0
	for _, item := range input.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	shipping, tax := pricing.Calculate(subtotal, input.ShippingAddress.Country, input.ShippingAddress.Governorate)
	total := subtotal + shipping + tax
	if math.Abs(total-input.Total) > 0.01 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Order total does not match the priced cart")
		return
	}

	billing, err := addressSnapshot(input.Email, input.CustomerInfo, input.ShippingAddress)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to encode address", err)
		return
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash_on_delivery"
	}

	order := models.Order{
		OrderNumber:       newOrderNumber(),
		Email:             input.Email,
		Status:            models.OrderStatusPending,
		PaymentStatus:     models.PaymentStatusPending,
		FulfillmentStatus: models.FulfillmentUnfulfilled,
		Subtotal:          subtotal,
		ShippingAmount:    shipping,
		TaxAmount:         tax,
		Total:             total,
		Currency:          "USD",
		PaymentMethod:     paymentMethod,
		CheckoutToken:     input.CheckoutToken,
		BillingAddress:    billing,
	}

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create order", err)
		return
	}

	for _, item := range input.Items {
		orderItem := models.OrderItem{
			OrderID:          int(order.ID),
			ProductID:        item.ProductID,
			ProductVariantID: item.VariantID,
			Name:             item.Name,
			Quantity:         item.Quantity,
			Price:            item.Price,
			Total:            item.Price * float64(item.Quantity),
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			respondWithError(ctx, http.StatusInternalServerError, "Failed to create order items", err)
			return
		}

		if item.ProductID == 0 {
			continue
		}

		// Conditional decrement: the guard keeps concurrent orders from
		// driving inventory negative.
		result := tx.Model(&models.Product{}).
			Where("id = ? AND inventory >= ?", item.ProductID, item.Quantity).
			UpdateColumn("inventory", gorm.Expr("inventory - ?", item.Quantity))
		if result.Error != nil {
			tx.Rollback()
			respondWithError(ctx, http.StatusInternalServerError, "Failed to update inventory", result.Error)
			return
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).Count(&count).Error; err != nil {
				tx.Rollback()
				respondWithError(ctx, http.StatusInternalServerError, "Failed to check inventory", err)
				return
			}
			if count > 0 {
				tx.Rollback()
				sendErrorResponse(ctx, http.StatusConflict, fmt.Sprintf("Insufficient inventory for %s", item.Name))
				return
			}
			// Unknown product reference: the line is kept as a snapshot
			// but there is no inventory to decrement.
		}
	}

	if err := tx.Commit().Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save order", err)
		return
	}

	go sendOrderConfirmationEmail(order, input.CustomerInfo.FirstName)

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"orderId":     order.ID,
		"orderNumber": order.OrderNumber,
		"message":     "Order created successfully",
	})
}

// Confirmation email is best effort: a delivery failure never fails the
// order.
func sendOrderConfirmationEmail(order models.Order, firstName string) {
	if os.Getenv("SMTP_ADDRESS") == "" {
		return
	}
	data := utils.OrderEmailData{
		Name:        firstName,
		OrderNumber: order.OrderNumber,
		Total:       fmt.Sprintf("$%.2f", order.Total),
		LogoURL:     "https://www.linebygizia.com/images/logo.jpg",
	}
	templatePath := filepath.Join("templates", "order_confirmation.html")
	if err := utils.SendEmail(order.Email, "Your Line by Gizia order "+order.OrderNumber, data, templatePath); err != nil {
		log.Println("Error sending order confirmation email:", err)
	}
}

type orderView struct {
	ID                uint            `json:"id"`
	OrderNumber       string          `json:"orderNumber"`
	Customer          gin.H           `json:"customer"`
	Items             []orderItemView `json:"items"`
	Subtotal          float64         `json:"subtotal"`
	Shipping          float64         `json:"shipping"`
	Tax               float64         `json:"tax"`
	Total             float64         `json:"total"`
	Status            string          `json:"status"`
	PaymentStatus     string          `json:"paymentStatus"`
	FulfillmentStatus string          `json:"fulfillmentStatus"`
	PaymentMethod     string          `json:"paymentMethod"`
	ShippingAddress   json.RawMessage `json:"shippingAddress"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	PaidAt            *time.Time      `json:"paidAt"`
	ShippedAt         *time.Time      `json:"shippedAt"`
	DeliveredAt       *time.Time      `json:"deliveredAt"`
}

type orderItemView struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
	Variant  *string `json:"variant"`
}

// Statuses are stored upper-case and served lower-case.
func toOrderView(order models.Order) orderView {
	var snapshot models.AddressSnapshot
	_ = json.Unmarshal(order.BillingAddress, &snapshot)

	name := strings.TrimSpace(snapshot.FirstName + " " + snapshot.LastName)
	if name == "" {
		name = "Guest Customer"
	}

	items := make([]orderItemView, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		view := orderItemView{Name: item.Name, Quantity: item.Quantity, Price: item.Price, Total: item.Total}
		if item.ProductVariantID != nil {
			var variant models.ProductVariant
			if err := initializers.DB.First(&variant, *item.ProductVariantID).Error; err == nil {
				label := variant.Name + ": " + variant.Value
				view.Variant = &label
			}
		}
		items = append(items, view)
	}

	return orderView{
		ID:                order.ID,
		OrderNumber:       order.OrderNumber,
		Customer:          gin.H{"name": name, "email": order.Email, "phone": snapshot.Phone},
		Items:             items,
		Subtotal:          order.Subtotal,
		Shipping:          order.ShippingAmount,
		Tax:               order.TaxAmount,
		Total:             order.Total,
		Status:            strings.ToLower(order.Status),
		PaymentStatus:     strings.ToLower(order.PaymentStatus),
		FulfillmentStatus: strings.ToLower(order.FulfillmentStatus),
		PaymentMethod:     order.PaymentMethod,
		ShippingAddress:   json.RawMessage(order.BillingAddress),
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
		PaidAt:            order.PaidAt,
		ShippedAt:         order.ShippedAt,
		DeliveredAt:       order.DeliveredAt,
	}
}

// GetOrders lists orders for the back office with status, payment status
// and free-text filters.
func GetOrders(ctx *gin.Context) {
	query := initializers.DB.Preload("OrderItems")

	if status := ctx.Query("status"); status != "" && status != "all" {
		if !models.IsOrderStatus(strings.ToUpper(status)) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status")
			return
		}
		query = query.Where("status = ?", strings.ToUpper(status))
	}
	if paymentStatus := ctx.Query("paymentStatus"); paymentStatus != "" && paymentStatus != "all" {
		if !models.IsPaymentStatus(strings.ToUpper(paymentStatus)) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown payment status")
			return
		}
		query = query.Where("payment_status = ?", strings.ToUpper(paymentStatus))
	}
	if search := ctx.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("order_number LIKE ? OR email LIKE ?", like, like)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, toOrderView(order))
	}

	ctx.JSON(http.StatusOK, gin.H{"orders": views, "total": len(views)})
}

func GetOrderByID(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	result := initializers.DB.Preload("OrderItems").First(&order, orderID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch order", result.Error)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": toOrderView(order)})
}

type orderUpdateInput struct {
	Status            string `json:"status"`
	PaymentStatus     string `json:"paymentStatus"`
	FulfillmentStatus string `json:"fulfillmentStatus"`
}

// UpdateOrder applies status transitions and stamps the matching
// timestamps: paidAt on PAID, shippedAt on SHIPPED, deliveredAt on
// DELIVERED or FULFILLED.
func UpdateOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var input orderUpdateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	// Existence is checked up front: an update that leaves a status at its
	// current value affects no rows, so RowsAffected cannot stand in for a
	// not-found check.
	var order models.Order
	if err := initializers.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch order", err)
		}
		return
	}
	if input.Status == "" && input.PaymentStatus == "" && input.FulfillmentStatus == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "No status fields to update")
		return
	}

	updates := map[string]any{}
	now := time.Now()

	if input.Status != "" {
		status := strings.ToUpper(input.Status)
		if !models.IsOrderStatus(status) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status")
			return
		}
		updates["status"] = status
		if status == models.OrderStatusShipped {
			updates["shipped_at"] = now
		}
		if status == models.OrderStatusDelivered {
			updates["delivered_at"] = now
		}
	}
	if input.PaymentStatus != "" {
		paymentStatus := strings.ToUpper(input.PaymentStatus)
		if !models.IsPaymentStatus(paymentStatus) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown payment status")
			return
		}
		updates["payment_status"] = paymentStatus
		if paymentStatus == models.PaymentStatusPaid {
			updates["paid_at"] = now
		}
	}
	if input.FulfillmentStatus != "" {
		fulfillment := strings.ToUpper(input.FulfillmentStatus)
		if !models.IsFulfillmentStatus(fulfillment) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown fulfillment status")
			return
		}
		updates["fulfillment_status"] = fulfillment
		if fulfillment == models.FulfillmentFulfilled {
			updates["delivered_at"] = now
		}
	}

	if err := initializers.DB.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update order", err)
		return
	}

	if err := initializers.DB.First(&order, orderID).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to reload order", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"order": gin.H{
			"id":                order.ID,
			"status":            strings.ToLower(order.Status),
			"paymentStatus":     strings.ToLower(order.PaymentStatus),
			"fulfillmentStatus": strings.ToLower(order.FulfillmentStatus),
		},
	})
}
