// Package funnel encodes and decodes the checkout funnel state carried in
// URLs. The funnel keeps no server-side session: size, quantity and discount
// flags travel between the product page, the upsell flow and checkout solely
// as query parameters and path segments, and must round-trip exactly.
package funnel

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/noah-isme/backend-eubiosis/internal/pricing"
)

// State is the serialisable funnel state for one page session.
type State struct {
	Size                  pricing.Size `json:"size"`
	Quantity              int          `json:"quantity"`
	Bundle                bool         `json:"bundle"`
	EmailDiscount         bool         `json:"email"`
	UpsellDiscountPercent int          `json:"upsellDiscount"`
}

// Default returns the state a visitor starts with.
func Default() State {
	return State{Size: pricing.Size50ml, Quantity: 1}
}

// ParseQuery decodes checkout query parameters. Every malformed or missing
// value degrades to its default rather than failing: the funnel never shows
// an error page for a mangled URL.
func ParseQuery(values url.Values) State {
	s := Default()
	s.Size = pricing.ParseSize(values.Get("size"))
	if qty, err := strconv.Atoi(values.Get("quantity")); err == nil && qty > 0 {
		s.Quantity = qty
	}
	s.Bundle = values.Get("bundle") == "true"
	s.EmailDiscount = values.Get("email") == "true"
	if pct, err := strconv.Atoi(values.Get("upsellDiscount")); err == nil && pct > 0 && pct <= 100 {
		s.UpsellDiscountPercent = pct
	}
	return s
}

// ParseSegments decodes product-page path segments of the form
// "size-s"/"size-j" and "quantity-<N>". Unknown segments are ignored.
func ParseSegments(segments []string) State {
	s := Default()
	for _, seg := range segments {
		switch {
		case seg == "size-s":
			s.Size = pricing.Size50ml
		case seg == "size-j":
			s.Size = pricing.Size100ml
		case strings.HasPrefix(seg, "quantity-"):
			if qty, err := strconv.Atoi(strings.TrimPrefix(seg, "quantity-")); err == nil && qty > 0 {
				s.Quantity = qty
			}
		}
	}
	return s
}

// Query encodes the state back into checkout query parameters. Flags are
// omitted when false so encoded URLs match what the funnel pages produce.
func (s State) Query() url.Values {
	values := url.Values{}
	values.Set("size", string(s.Size))
	values.Set("quantity", strconv.Itoa(s.Quantity))
	if s.Bundle {
		values.Set("bundle", "true")
	}
	if s.EmailDiscount {
		values.Set("email", "true")
	}
	if s.UpsellDiscountPercent > 0 {
		values.Set("upsellDiscount", strconv.Itoa(s.UpsellDiscountPercent))
	}
	return values
}

// ProductPath returns the product-page path for the state, e.g.
// "/eubiosis-bottle/size-s/quantity-2".
func (s State) ProductPath() string {
	sizeSeg := "size-s"
	if s.Size == pricing.Size100ml {
		sizeSeg = "size-j"
	}
	return fmt.Sprintf("/eubiosis-bottle/%s/quantity-%d", sizeSeg, s.Quantity)
}

// PricingInput converts the state plus address fields into pricing input.
func (s State) PricingInput(province, city string, promoApplied bool) pricing.Input {
	return pricing.Input{
		Size:                  s.Size,
		Quantity:              s.Quantity,
		Bundle:                s.Bundle,
		EmailDiscount:         s.EmailDiscount,
		PromoApplied:          promoApplied,
		UpsellDiscountPercent: s.UpsellDiscountPercent,
		Province:              province,
		City:                  city,
	}
}
