package gateway

import (
	"sort"
)

// supportedCities maps the display name of each supported locality to the
// name sent to the vendor.
var supportedCities = map[string]string{
	"Chennai":         "Chennai",
	"Coimbatore":      "Coimbatore",
	"Madurai":         "Madurai",
	"Tiruchirappalli": "Tiruchirappalli",
	"Salem":           "Salem",
	"Tirunelveli":     "Tirunelveli",
	"Vellore":         "Vellore",
	"Erode":           "Erode",
	"Thanjavur":       "Thanjavur",
	"Dindigul":        "Dindigul",
	"Kanyakumari":     "Kanyakumari",
	"Cuddalore":       "Cuddalore",
	"Nagapattinam":    "Nagapattinam",
	"Thoothukudi":     "Thoothukudi",
}

// AvailableCities returns the supported city names in alphabetical order.
func AvailableCities() []string {
	cities := make([]string, 0, len(supportedCities))
	for name := range supportedCities {
		cities = append(cities, name)
	}
	sort.Strings(cities)
	return cities
}

// IsSupported reports whether city is in the lookup table.
func IsSupported(city string) bool {
	_, ok := supportedCities[city]
	return ok
}

// QueryName returns the vendor query name for city. Unknown cities are passed through.
func QueryName(city string) string {
	if q, ok := supportedCities[city]; ok {
		return q
	}
	return city
}
