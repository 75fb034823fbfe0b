package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/linebygizia/gizia-api/models"
	"github.com/linebygizia/gizia-api/pricing"
	"github.com/linebygizia/gizia-api/utils"
)

const stripeCheckoutSessionsURL = "https://api.stripe.com/v1/checkout/sessions"

const checkoutTokenBytes = 16

// IssueCheckoutToken mints the single-use token a client submits with its
// order or card session, closing the double-submit window.
func IssueCheckoutToken(ctx *gin.Context) {
	token, err := utils.GenerateCode(checkoutTokenBytes)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to generate checkout token", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

// stripeSessionForm builds the form-encoded body for the hosted checkout
// session. Stripe's API takes amounts in minor units.
func stripeSessionForm(input models.CheckoutSessionInput, successURL, cancelURL string) map[string]string {
	form := map[string]string{
		"mode":                "payment",
		"success_url":         successURL,
		"cancel_url":          cancelURL,
		"customer_email":      input.Email,
		"currency":            "usd",
		"client_reference_id": input.CheckoutToken,
	}

	for i, item := range input.Items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form[prefix+"[price_data][currency]"] = "usd"
		form[prefix+"[price_data][unit_amount]"] = strconv.FormatInt(item.UnitAmount, 10)
		form[prefix+"[price_data][product_data][name]"] = item.Name
		if item.Image != "" {
			form[prefix+"[price_data][product_data][images][0]"] = item.Image
		}
		form[prefix+"[quantity]"] = strconv.Itoa(item.Quantity)
	}

	form["shipping_options[0][shipping_rate_data][type]"] = "fixed_amount"
	form["shipping_options[0][shipping_rate_data][fixed_amount][amount]"] = strconv.FormatInt(input.ShippingAmount, 10)
	form["shipping_options[0][shipping_rate_data][fixed_amount][currency]"] = "usd"
	form["shipping_options[0][shipping_rate_data][display_name]"] = "Shipping"
	form["shipping_options[0][shipping_rate_data][delivery_estimate][minimum][unit]"] = "business_day"
	form["shipping_options[0][shipping_rate_data][delivery_estimate][minimum][value]"] = "3"
	form["shipping_options[0][shipping_rate_data][delivery_estimate][maximum][unit]"] = "business_day"
	form["shipping_options[0][shipping_rate_data][delivery_estimate][maximum][value]"] = "7"

	if input.TaxAmount > 0 {
		count := len(input.Items)
		prefix := fmt.Sprintf("line_items[%d]", count)
		form[prefix+"[price_data][currency]"] = "usd"
		form[prefix+"[price_data][unit_amount]"] = strconv.FormatInt(input.TaxAmount, 10)
		form[prefix+"[price_data][product_data][name]"] = "VAT (11%)"
		form[prefix+"[quantity]"] = "1"
	}

	for i, country := range pricing.AllowedShippingCountries {
		form[fmt.Sprintf("shipping_address_collection[allowed_countries][%d]", i)] = country
	}

	return form
}

// CreateCheckoutSession validates the checkout form and opens a hosted card
// payment session. The caller is redirected to the returned URL.
func CreateCheckoutSession(ctx *gin.Context) {
	var input models.CheckoutSessionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(input.Items) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Cart is empty")
		return
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 || item.UnitAmount < 0 {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid line item")
			return
		}
	}
	if msg := validateCheckoutForm(input.Email, input.CustomerInfo, input.ShippingAddress); msg != "" {
		sendErrorResponse(ctx, http.StatusBadRequest, msg)
		return
	}
	if input.CheckoutToken == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing checkout token")
		return
	}

	secretKey := os.Getenv("STRIPE_SECRET_KEY")
	if secretKey == "" {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Payment gateway is not configured")
		return
	}

	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "https://www.linebygizia.com"
	}
	successURL := siteURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := siteURL + "/checkout"

	resp, err := resty.New().SetTimeout(30 * time.Second).
		R().
		SetHeader("Authorization", "Bearer "+secretKey).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(stripeSessionForm(input, successURL, cancelURL)).
		Post(stripeCheckoutSessionsURL)

	if err != nil {
		log.Printf("Stripe error: %v", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to reach payment gateway")
		return
	}
	if resp.StatusCode() != 200 {
		log.Printf("Stripe error: status %d, response: %s", resp.StatusCode(), resp.Body())
		sendErrorResponse(ctx, http.StatusBadGateway, "Payment gateway rejected the session")
		return
	}

	var session map[string]any
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		sendErrorResponse(ctx, http.StatusBadGateway, "Invalid response from payment gateway")
		return
	}

	sessionURL, ok := session["url"].(string)
	if !ok || sessionURL == "" {
		sendErrorResponse(ctx, http.StatusBadGateway, "Incomplete response from payment gateway")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"url": sessionURL})
}
