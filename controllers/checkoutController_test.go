package controllers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linebygizia/gizia-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	server.GET("/checkout/token", IssueCheckoutToken)
	server.POST("/checkout/session", CreateCheckoutSession)
	return server
}

func validSessionPayload() map[string]any {
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
			{"name": "Silk Cocktail Dress", "unitAmount": 42000, "quantity": 1},
		},
		"shippingAmount": 0,
		"taxAmount":      4620,
		"checkoutToken":  "tok-session",
	}
}

func TestIssueCheckoutToken(t *testing.T) {
	server := newCheckoutRouter()

	code, body := getJSON(t, server, "/checkout/token")
	require.Equal(t, 200, code)

	token := body["token"].(string)
	assert.Len(t, token, 2*checkoutTokenBytes)

	_, second := getJSON(t, server, "/checkout/token")
	assert.NotEqual(t, token, second["token"], "tokens must be unique per request")
}

func TestCreateCheckoutSessionRejectsEmptyCart(t *testing.T) {
	server := newCheckoutRouter()

	payload := validSessionPayload()
	payload["items"] = []map[string]any{}
	code, body := postJSON(t, server, "/checkout/session", payload)

	assert.Equal(t, 400, code)
	assert.Equal(t, "Cart is empty", body["message"])
}

func TestCreateCheckoutSessionRejectsBadLineItem(t *testing.T) {
	server := newCheckoutRouter()

	payload := validSessionPayload()
	payload["items"] = []map[string]any{
		{"name": "Silk Cocktail Dress", "unitAmount": 42000, "quantity": 0},
	}
	code, body := postJSON(t, server, "/checkout/session", payload)

	assert.Equal(t, 400, code)
	assert.Equal(t, "Invalid line item", body["message"])
}

func TestCreateCheckoutSessionValidatesForm(t *testing.T) {
	server := newCheckoutRouter()

	payload := validSessionPayload()
	payload["customerInfo"].(map[string]any)["phone"] = ""
	code, body := postJSON(t, server, "/checkout/session", payload)

	assert.Equal(t, 400, code)
	assert.Equal(t, "Missing required customer fields", body["message"])
}

func TestCreateCheckoutSessionWithoutGatewayConfigured(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	server := newCheckoutRouter()

	code, body := postJSON(t, server, "/checkout/session", validSessionPayload())

	assert.Equal(t, 500, code)
	assert.Equal(t, "Payment gateway is not configured", body["message"])
}

func TestStripeSessionFormLayout(t *testing.T) {
	input := models.CheckoutSessionInput{
		Email:         "nour@example.com",
		CheckoutToken: "tok-session",
		Items: []models.CheckoutLineItem{
			{Name: "Silk Cocktail Dress", UnitAmount: 42000, Quantity: 1},
			{Name: "Statement Earrings", UnitAmount: 18000, Quantity: 2},
		},
		ShippingAmount: 1500,
		TaxAmount:      4620,
	}

	form := stripeSessionForm(input, "https://shop.test/success", "https://shop.test/cancel")

	require.Equal(t, "payment", form["mode"])
	assert.Equal(t, "42000", form["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "2", form["line_items[1][quantity]"])
	assert.Equal(t, "1500", form["shipping_options[0][shipping_rate_data][fixed_amount][amount]"])
	// The tax line rides after the product lines.
	assert.Equal(t, "4620", form["line_items[2][price_data][unit_amount]"])
	assert.Equal(t, "tok-session", form["client_reference_id"])
	assert.Equal(t, "LB", form["shipping_address_collection[allowed_countries][0]"])
}
