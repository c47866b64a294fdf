package pricing

import (
	"fmt"
	"math"

	"github.com/noah-isme/backend-eubiosis/internal/shipping"
)

// Money represents a monetary value in whole rand.
type Money = int64

// Size identifies a bottle size.
type Size string

// Supported bottle sizes.
const (
	Size50ml  Size = "50ml"
	Size100ml Size = "100ml"
)

// ParseSize maps a size token to a Size, falling back to 50ml for anything unrecognised.
func ParseSize(value string) Size {
	if value == string(Size100ml) {
		return Size100ml
	}
	return Size50ml
}

// Discount rates applied by the checkout stack.
const (
	launchDiscountRate = 0.18
	emailDiscountRate  = 0.10
	bundleDiscountRate = 0.15
	promoDiscountRate  = 0.05
)

// FunnelBasePrice returns the checkout-context base price for a size.
func FunnelBasePrice(size Size) Money {
	if size == Size100ml {
		return 650
	}
	return 325
}

// DiscountedUnitPrice returns the advertised launch price per unit in the
// checkout context. It also feeds the free-shipping order value, which is
// deliberately computed from this figure rather than the post-discount total.
func DiscountedUnitPrice(size Size) Money {
	if size == Size100ml {
		return 530
	}
	return 265
}

// Input carries the funnel state the order summary is derived from.
type Input struct {
	Size                  Size
	Quantity              int
	Bundle                bool
	EmailDiscount         bool
	PromoApplied          bool
	UpsellDiscountPercent int
	Province              string
	City                  string
}

// LineItem is a display line in the order summary.
type LineItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     Size   `json:"size"`
	Quantity int    `json:"quantity"`
	// BasePrice is the per-unit price the subtotal is computed from.
	BasePrice Money `json:"basePrice"`
	// DiscountedPrice is the advertised launch price per unit. It is
	// display-only and does not reconcile with the discount stack below;
	// the funnel has always shown the flat 265/530 figure here.
	DiscountedPrice Money  `json:"discountedPrice"`
	Image           string `json:"image"`
}

// OrderSummary is the itemised result of the checkout pricing stack.
type OrderSummary struct {
	Items          []LineItem `json:"items"`
	Subtotal       Money      `json:"subtotal"`
	LaunchDiscount Money      `json:"launchDiscount"`
	EmailDiscount  Money      `json:"emailDiscount"`
	BundleDiscount Money      `json:"bundleDiscount"`
	PromoDiscount  Money      `json:"promoDiscount"`
	TotalDiscount  Money      `json:"totalDiscount"`
	Shipping       Money      `json:"shipping"`
	Total          Money      `json:"total"`
}

// ComputeOrderSummary derives the checkout order summary from funnel state.
// It is pure and deterministic: the same input always yields the same summary.
//
// The discount stack is order-dependent. The launch discount applies to the
// subtotal; every later discount applies to the post-launch amount, each
// rounded to the nearest rand on its own before summing. TotalDiscount is the
// sum of the rounded parts, which may differ by a rand from rounding the
// combined percentage once.
func ComputeOrderSummary(in Input) OrderSummary {
	in = normalize(in)

	basePrice := FunnelBasePrice(in.Size)
	subtotal := basePrice * Money(in.Quantity)

	launch := roundRand(float64(subtotal) * launchDiscountRate)
	afterLaunch := subtotal - launch

	var email, bundle, promo Money
	if in.EmailDiscount && !in.Bundle {
		email = roundRand(float64(afterLaunch) * emailDiscountRate)
	}
	if in.Bundle {
		bundle = roundRand(float64(afterLaunch) * bundleRate(in.UpsellDiscountPercent))
	}
	if in.PromoApplied {
		promo = roundRand(float64(afterLaunch) * promoDiscountRate)
	}

	totalDiscount := launch + email + bundle + promo

	orderValue := DiscountedUnitPrice(in.Size) * Money(in.Quantity)
	shippingCost := shipping.Resolve(in.Province, in.City, orderValue, in.Bundle)

	return OrderSummary{
		Items:          []LineItem{buildLineItem(in, basePrice)},
		Subtotal:       subtotal,
		LaunchDiscount: launch,
		EmailDiscount:  email,
		BundleDiscount: bundle,
		PromoDiscount:  promo,
		TotalDiscount:  totalDiscount,
		Shipping:       shippingCost,
		Total:          subtotal - totalDiscount + shippingCost,
	}
}

func normalize(in Input) Input {
	in.Size = ParseSize(string(in.Size))
	if in.Quantity < 1 {
		in.Quantity = 1
	}
	if in.UpsellDiscountPercent < 0 || in.UpsellDiscountPercent > 100 {
		in.UpsellDiscountPercent = 0
	}
	return in
}

// bundleRate picks the funnel-supplied upsell percentage when positive,
// otherwise the default 15% bundle discount.
func bundleRate(upsellPercent int) float64 {
	if upsellPercent > 0 {
		return float64(upsellPercent) / 100
	}
	return bundleDiscountRate
}

func buildLineItem(in Input, basePrice Money) LineItem {
	if in.Bundle {
		return LineItem{
			ID:              fmt.Sprintf("eubiosis-bundle-%d", in.Quantity),
			Name:            fmt.Sprintf("Eubiosis %d-Bottle Bundle", in.Quantity),
			Size:            in.Size,
			Quantity:        in.Quantity,
			BasePrice:       basePrice,
			DiscountedPrice: DiscountedUnitPrice(in.Size),
			Image:           "/images/bottles/bottle-combo.png",
		}
	}
	return LineItem{
		ID:              "eubiosis-single",
		Name:            "Eubiosis — Nature in a Bottle",
		Size:            in.Size,
		Quantity:        in.Quantity,
		BasePrice:       basePrice,
		DiscountedPrice: DiscountedUnitPrice(in.Size),
		Image:           "/images/Website Product Image.png",
	}
}

// roundRand rounds to the nearest whole rand, halves away from zero. All
// discount components pass through here independently.
func roundRand(v float64) Money {
	return Money(math.Round(v))
}
