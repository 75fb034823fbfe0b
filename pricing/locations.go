package pricing

// LebanonLocations maps each governorate to the cities a customer can pick
// at checkout. Governorate and city are both mandatory for Lebanese
// addresses.
var LebanonLocations = map[string][]string{
	"Beirut":        {"Beirut"},
	"Mount Lebanon": {"Baabda", "Aley", "Chouf", "Keserwan", "Metn", "Jbeil"},
	"North Lebanon": {"Tripoli", "Koura", "Bcharre", "Batroun", "Minieh-Danniyeh", "Akkar"},
	"South Lebanon": {"Sidon", "Tyre", "Nabatieh", "Marjeyoun", "Hasbaya", "Bint Jbeil"},
	"Beqaa":         {"Zahle", "Baalbek", "Hermel", "West Beqaa", "Rashaya"},
}

// ValidLebanonLocation reports whether the governorate exists and the city
// belongs to it.
func ValidLebanonLocation(governorate, city string) bool {
	cities, ok := LebanonLocations[governorate]
	if !ok {
		return false
	}
	for _, c := range cities {
		if c == city {
			return true
		}
	}
	return false
}

// AllowedShippingCountries are the destinations offered at checkout,
// Lebanon first.
var AllowedShippingCountries = []string{
	"LB", "AE", "SA", "JO", "TR", "CY", "QA", "KW", "BH", "OM", "EG",
	"US", "CA", "GB", "FR", "DE", "AU",
}
