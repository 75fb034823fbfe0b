package models

// CustomerInfo is the contact block collected on the checkout form.
type CustomerInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// ShippingAddressInput is the destination collected on the checkout form.
type ShippingAddressInput struct {
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	City        string `json:"city"`
	Governorate string `json:"governorate"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
}

// OrderItemInput is one cart line submitted at checkout. Price is the unit
// price snapshot the client saw; the server recomputes line totals from it.
type OrderItemInput struct {
	ProductID int     `json:"productId"`
	VariantID *int    `json:"variantId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// CreateOrderInput is the cash-on-delivery order payload.
type CreateOrderInput struct {
	Email           string                `json:"email"`
	CustomerInfo    *CustomerInfo         `json:"customerInfo"`
	ShippingAddress *ShippingAddressInput `json:"shippingAddress"`
	Items           []OrderItemInput      `json:"items"`
	Subtotal        float64               `json:"subtotal"`
	Shipping        float64               `json:"shipping"`
	Tax             float64               `json:"tax"`
	Total           float64               `json:"total"`
	PaymentMethod   string                `json:"paymentMethod"`
	CheckoutToken   string                `json:"checkoutToken"`
}

// CheckoutSessionInput is the hosted-payment payload. Amounts are in minor
// currency units, matching the processor's API.
type CheckoutSessionInput struct {
	Items           []CheckoutLineItem    `json:"items"`
	Email           string                `json:"email"`
	CustomerInfo    *CustomerInfo         `json:"customerInfo"`
	ShippingAddress *ShippingAddressInput `json:"shippingAddress"`
	ShippingAmount  int64                 `json:"shippingAmount"`
	TaxAmount       int64                 `json:"taxAmount"`
	CheckoutToken   string                `json:"checkoutToken"`
}

type CheckoutLineItem struct {
	Name       string `json:"name"`
	Image      string `json:"image"`
	UnitAmount int64  `json:"unitAmount"`
	Quantity   int    `json:"quantity"`
}
