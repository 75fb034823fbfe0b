// Package pricing holds the shipping and tax rules for the storefront.
// Every function here is pure: no I/O, no randomness, total over all inputs.
package pricing

import "regexp"

const (
	// Lebanese VAT applied to the subtotal.
	LebanonTaxRate = 0.11

	// Orders at or above this subtotal ship free within Lebanon.
	FreeShippingThreshold = 150.0

	// Flat domestic rate below the free-shipping threshold.
	DomesticShippingRate = 15.0

	// Flat rate for every destination outside Lebanon.
	InternationalShippingRate = 25.0
)

// Shipping returns the shipping cost for a destination. Unknown country
// codes take the international branch.
func Shipping(subtotal float64, country, governorate string) float64 {
	if country == "LB" {
		if subtotal >= FreeShippingThreshold {
			return 0
		}
		return DomesticShippingRate
	}
	return InternationalShippingRate
}

// Tax returns the tax amount for a destination. Only Lebanese destinations
// are taxed.
func Tax(subtotal float64, country string) float64 {
	if country == "LB" {
		return subtotal * LebanonTaxRate
	}
	return 0
}

// Calculate returns both shipping and tax for a destination.
func Calculate(subtotal float64, country, governorate string) (shipping, tax float64) {
	return Shipping(subtotal, country, governorate), Tax(subtotal, country)
}

var (
	lebanesePhone = regexp.MustCompile(`^(\+961|961|0)?[1-9]\d{6}$`)
	spaces        = regexp.MustCompile(`\s+`)
)

// ValidatePhone checks a phone number against the destination country's
// format. Lebanon uses the local-number pattern; everywhere else only a
// minimum length applies.
func ValidatePhone(phone, country string) bool {
	if country == "LB" {
		return lebanesePhone.MatchString(spaces.ReplaceAllString(phone, ""))
	}
	return len(phone) >= 8
}
