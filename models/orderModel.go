package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"

	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusFailed   = "FAILED"
	PaymentStatusRefunded = "REFUNDED"

	FulfillmentUnfulfilled = "UNFULFILLED"
	FulfillmentFulfilled   = "FULFILLED"
)

var (
	orderStatuses       = map[string]bool{OrderStatusPending: true, OrderStatusProcessing: true, OrderStatusShipped: true, OrderStatusDelivered: true, OrderStatusCancelled: true}
	paymentStatuses     = map[string]bool{PaymentStatusPending: true, PaymentStatusPaid: true, PaymentStatusFailed: true, PaymentStatusRefunded: true}
	fulfillmentStatuses = map[string]bool{FulfillmentUnfulfilled: true, FulfillmentFulfilled: true}
)

func IsOrderStatus(s string) bool       { return orderStatuses[s] }
func IsPaymentStatus(s string) bool     { return paymentStatuses[s] }
func IsFulfillmentStatus(s string) bool { return fulfillmentStatuses[s] }

type Order struct {
	gorm.Model
	OrderNumber       string         `json:"orderNumber" gorm:"uniqueIndex;size:191"`
	Email             string         `json:"email"`
	Status            string         `json:"status"`
	PaymentStatus     string         `json:"paymentStatus"`
	FulfillmentStatus string         `json:"fulfillmentStatus"`
	Subtotal          float64        `json:"subtotal"`
	ShippingAmount    float64        `json:"shippingAmount"`
	TaxAmount         float64        `json:"taxAmount"`
	Total             float64        `json:"total"`
	Currency          string         `json:"currency"`
	PaymentMethod     string         `json:"paymentMethod"`
	CheckoutToken     string         `json:"-" gorm:"uniqueIndex;size:191"`
	BillingAddress    datatypes.JSON `json:"billingAddress"`
	PaidAt            *time.Time     `json:"paidAt"`
	ShippedAt         *time.Time     `json:"shippedAt"`
	DeliveredAt       *time.Time     `json:"deliveredAt"`
	OrderItems        []OrderItem    `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID          int      `json:"orderId"`
	ProductID        int      `json:"productId"`
	ProductVariantID *int     `json:"productVariantId"`
	Name             string   `json:"name"`
	Quantity         int      `json:"quantity"`
	Price            float64  `json:"price"`
	Total            float64  `json:"total"`
	Product          *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// AddressSnapshot is captured on the order at checkout time. It is a copy,
// not a reference to a customer profile.
type AddressSnapshot struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	City        string `json:"city"`
	Governorate string `json:"governorate"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
}
