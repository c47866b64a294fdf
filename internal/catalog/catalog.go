// Package catalog exposes the Eubiosis product range. The catalog is a fixed
// two-SKU table compiled into the binary; prices are not user-editable and
// carry two deliberately distinct contexts: the detail-page list price and
// the checkout funnel price.
package catalog

import (
	"github.com/noah-isme/backend-eubiosis/internal/pricing"
)

// Product describes one bottle size with both pricing contexts.
type Product struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Size pricing.Size `json:"size"`
	// ListPrice is the detail-page price the quantity tier discount applies to.
	ListPrice pricing.Money `json:"listPrice"`
	// FunnelBasePrice and FunnelLaunchPrice are the checkout-context prices.
	// They do not reconcile with ListPrice; the two tables coexist on purpose.
	FunnelBasePrice   pricing.Money `json:"funnelBasePrice"`
	FunnelLaunchPrice pricing.Money `json:"funnelLaunchPrice"`
	Image             string        `json:"image"`
}

// Products returns the full range, smallest size first.
func Products() []Product {
	return []Product{
		build(pricing.Size50ml),
		build(pricing.Size100ml),
	}
}

// BySize returns the product for a size token, defaulting to 50ml for
// unrecognised tokens like every other funnel entry point.
func BySize(size string) Product {
	return build(pricing.ParseSize(size))
}

func build(size pricing.Size) Product {
	id := "eubiosis-50"
	if size == pricing.Size100ml {
		id = "eubiosis-100"
	}
	return Product{
		ID:                id,
		Name:              "Eubiosis — Nature in a Bottle",
		Size:              size,
		ListPrice:         pricing.ListBasePrice(size),
		FunnelBasePrice:   pricing.FunnelBasePrice(size),
		FunnelLaunchPrice: pricing.DiscountedUnitPrice(size),
		Image:             "/images/Website Product Image.png",
	}
}
