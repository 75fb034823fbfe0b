package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linebygizia/gizia-api/initializers"
	"github.com/linebygizia/gizia-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newOrderRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	server.POST("/orders", CreateOrder)
	server.PATCH("/orders/:orderId", UpdateOrder)
	return server
}

// setupOrderDB points the package at a fresh in-memory database for the
// duration of one test.
func setupOrderDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Order{},
		&models.OrderItem{},
	))

	prev := initializers.DB
	initializers.DB = db
	t.Cleanup(func() { initializers.DB = prev })
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, id uint, name, slug string, price float64, inventory int) {
	t.Helper()
	product := models.Product{
		Model:     gorm.Model{ID: id},
		Name:      name,
		Slug:      slug,
		Price:     price,
		Inventory: inventory,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&product).Error)
}

func productInventory(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return product.Inventory
}

func postJSON(t *testing.T, server *gin.Engine, path string, payload any) (int, map[string]any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func validOrderPayload() map[string]any {
	return map[string]any{
		"email": "nour@example.com",
		"customerInfo": map[string]any{
			"firstName": "Nour",
			"lastName":  "Haddad",
			"phone":     "+9611234567",
		},
		"shippingAddress": map[string]any{
			"line1":       "12 Gouraud Street",
			"city":        "Beirut",
			"governorate": "Beirut",
			"country":     "LB",
		},
		"items": []map[string]any{
			{"productId": 1, "name": "Silk Cocktail Dress", "price": 420.0, "quantity": 1},
		},
		"total":         466.2,
		"checkoutToken": "tok-abc",
	}
}

func TestCreateOrderRejectsMissingFields(t *testing.T) {
	server := newOrderRouter()

	code, body := postJSON(t, server, "/orders", map[string]any{"email": "nour@example.com"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing required fields", body["message"])
}

func TestCreateOrderRejectsInvalidPhone(t *testing.T) {
	server := newOrderRouter()

	payload := validOrderPayload()
	payload["customerInfo"].(map[string]any)["phone"] = "12ab"
	code, body := postJSON(t, server, "/orders", payload)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid phone number", body["message"])
}

func TestCreateOrderRequiresLebaneseGovernorate(t *testing.T) {
	server := newOrderRouter()

	payload := validOrderPayload()
	payload["shippingAddress"].(map[string]any)["governorate"] = ""
	code, body := postJSON(t, server, "/orders", payload)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["message"], "Governorate")
}

func TestCreateOrderRejectsUnknownCity(t *testing.T) {
	server := newOrderRouter()

	payload := validOrderPayload()
	payload["shippingAddress"].(map[string]any)["city"] = "Atlantis"
	code, body := postJSON(t, server, "/orders", payload)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Unknown governorate or city", body["message"])
}

func TestCreateOrderRequiresCheckoutToken(t *testing.T) {
	server := newOrderRouter()

	payload := validOrderPayload()
	payload["checkoutToken"] = ""
	code, body := postJSON(t, server, "/orders", payload)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing checkout token", body["message"])
}

func TestCreateOrderRejectsZeroQuantity(t *testing.T) {
	server := newOrderRouter()

	payload := validOrderPayload()
	payload["items"] = []map[string]any{
		{"productId": 1, "name": "Silk Cocktail Dress", "price": 420.0, "quantity": 0},
	}
	code, body := postJSON(t, server, "/orders", payload)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Item quantity must be at least 1", body["message"])
}

func TestValidateCheckoutFormInternationalAddress(t *testing.T) {
	info := &models.CustomerInfo{FirstName: "Claire", LastName: "Martin", Phone: "+33612345678"}
	addr := &models.ShippingAddressInput{Line1: "5 Rue de Rivoli", City: "Paris", Country: "FR"}

	assert.Empty(t, validateCheckoutForm("claire@example.com", info, addr))
}

func TestValidateCheckoutFormShortInternationalPhone(t *testing.T) {
	info := &models.CustomerInfo{FirstName: "Claire", LastName: "Martin", Phone: "12345"}
	addr := &models.ShippingAddressInput{Line1: "5 Rue de Rivoli", City: "Paris", Country: "FR"}

	assert.Equal(t, "Invalid phone number", validateCheckoutForm("claire@example.com", info, addr))
}

func twoItemOrderPayload(token string) map[string]any {
	payload := validOrderPayload()
	payload["items"] = []map[string]any{
		{"productId": 1, "name": "Cashmere Wrap", "price": 100.0, "quantity": 1},
		{"productId": 2, "name": "Leather Belt", "price": 50.0, "quantity": 3},
	}
	// Subtotal 250, free domestic shipping, 11% VAT.
	payload["total"] = 277.5
	payload["checkoutToken"] = token
	return payload
}

func TestCreateOrderPersistsAndDecrementsInventory(t *testing.T) {
	db := setupOrderDB(t)
	seedProduct(t, db, 1, "Cashmere Wrap", "cashmere-wrap", 100, 5)
	seedProduct(t, db, 2, "Leather Belt", "leather-belt", 50, 10)
	server := newOrderRouter()

	code, body := postJSON(t, server, "/orders", twoItemOrderPayload("tok-persist"))
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, strings.HasPrefix(body["orderNumber"].(string), "GZ-"))

	var order models.Order
	require.NoError(t, db.Preload("OrderItems").Where("checkout_token = ?", "tok-persist").First(&order).Error)
	assert.Equal(t, 250.0, order.Subtotal)
	assert.Equal(t, 0.0, order.ShippingAmount)
	assert.InDelta(t, 27.5, order.TaxAmount, 0.001)
	assert.InDelta(t, 277.5, order.Total, 0.001)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, 100.0, order.OrderItems[0].Total)
	assert.Equal(t, 150.0, order.OrderItems[1].Total)

	assert.Equal(t, 4, productInventory(t, db, 1))
	assert.Equal(t, 7, productInventory(t, db, 2))
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db := setupOrderDB(t)
	seedProduct(t, db, 1, "Cashmere Wrap", "cashmere-wrap", 100, 5)
	seedProduct(t, db, 2, "Leather Belt", "leather-belt", 50, 2)
	server := newOrderRouter()

	code, body := postJSON(t, server, "/orders", twoItemOrderPayload("tok-short"))
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, body["message"], "Insufficient inventory")

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "the rejected order must not be persisted")
	assert.Equal(t, 5, productInventory(t, db, 1), "the first line's decrement must roll back too")
	assert.Equal(t, 2, productInventory(t, db, 2))
}

func TestCreateOrderTokenReplayReturnsOriginal(t *testing.T) {
	db := setupOrderDB(t)
	seedProduct(t, db, 1, "Cashmere Wrap", "cashmere-wrap", 100, 5)
	seedProduct(t, db, 2, "Leather Belt", "leather-belt", 50, 10)
	server := newOrderRouter()

	code, first := postJSON(t, server, "/orders", twoItemOrderPayload("tok-replay"))
	require.Equal(t, http.StatusCreated, code)

	code, second := postJSON(t, server, "/orders", twoItemOrderPayload("tok-replay"))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, second["replayed"])
	assert.Equal(t, first["orderNumber"], second["orderNumber"])

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 7, productInventory(t, db, 2), "inventory must be decremented once")
}

func TestUpdateOrderSameStatusIsNotNotFound(t *testing.T) {
	db := setupOrderDB(t)
	order := models.Order{
		OrderNumber:       "GZ-TESTORDER1",
		Email:             "nour@example.com",
		Status:            models.OrderStatusPending,
		PaymentStatus:     models.PaymentStatusPending,
		FulfillmentStatus: models.FulfillmentUnfulfilled,
		CheckoutToken:     "tok-patch",
	}
	require.NoError(t, db.Create(&order).Error)
	server := newOrderRouter()

	// Re-asserting the current status affects no rows but is still a valid
	// update on an existing order.
	path := fmt.Sprintf("/orders/%d", order.ID)
	code, _ := patchJSON(t, server, path, map[string]any{"status": "pending"})
	assert.Equal(t, http.StatusOK, code)

	code, body := patchJSON(t, server, path, map[string]any{"paymentStatus": "paid"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "paid", body["order"].(map[string]any)["paymentStatus"])

	var updated models.Order
	require.NoError(t, db.First(&updated, order.ID).Error)
	require.NotNil(t, updated.PaidAt)

	code, _ = patchJSON(t, server, "/orders/99999", map[string]any{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, code)
}

func patchJSON(t *testing.T, server *gin.Engine, path string, payload any) (int, map[string]any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestNewOrderNumberFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		number := newOrderNumber()
		require.True(t, strings.HasPrefix(number, "GZ-"))
		require.Len(t, number, 13)
		require.False(t, seen[number], "order numbers must not repeat")
		seen[number] = true
	}
}
