package shipping

import "strings"

// Flat delivery rates per South African province, in whole rand.
var provinceRates = map[string]int64{
	"Gauteng":       50,
	"Western Cape":  75,
	"KwaZulu-Natal": 60,
	"Eastern Cape":  80,
	"Free State":    65,
	"Mpumalanga":    55,
	"North West":    60,
	"Northern Cape": 85,
	"Limpopo":       45,
}

const (
	// DefaultRate applies to blank, unrecognised or international addresses.
	DefaultRate int64 = 100
	// FreeShippingThreshold is the order value at which delivery is free.
	FreeShippingThreshold int64 = 500

	sameDayProvince = "Limpopo"
	sameDayCity     = "mokopane"
)

// SameDay reports whether the address falls inside the single same-day
// delivery zone (Mokopane, Limpopo). The city match is a case-insensitive
// substring check, so "Mokopane Town" qualifies.
func SameDay(province, city string) bool {
	return province == sameDayProvince && strings.Contains(strings.ToLower(city), sameDayCity)
}

// Resolve returns the delivery cost for an order. The same-day zone ships
// free regardless of order value; otherwise orders at or above the threshold
// and all bundles ship free; otherwise the provincial flat rate applies, with
// DefaultRate for provinces not in the table.
//
// orderValue must be the discounted unit price multiplied by quantity, not
// the post-discount-stack total.
func Resolve(province, city string, orderValue int64, bundle bool) int64 {
	if SameDay(province, city) {
		return 0
	}
	if orderValue >= FreeShippingThreshold || bundle {
		return 0
	}
	if rate, ok := provinceRates[province]; ok {
		return rate
	}
	return DefaultRate
}

// Rate returns the flat rate for a province and whether it is in the table.
func Rate(province string) (int64, bool) {
	rate, ok := provinceRates[province]
	return rate, ok
}

// Provinces lists every province with a configured flat rate.
func Provinces() []string {
	out := make([]string, 0, len(provinceRates))
	for name := range provinceRates {
		out = append(out, name)
	}
	return out
}
