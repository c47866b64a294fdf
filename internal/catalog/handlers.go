package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-eubiosis/internal/common"
	"github.com/noah-isme/backend-eubiosis/internal/funnel"
	"github.com/noah-isme/backend-eubiosis/internal/pricing"
)

// Handler serves the public product endpoints.
type Handler struct{}

// TierPrice is one row of the quantity discount matrix on the detail page.
type TierPrice struct {
	Quantity int           `json:"quantity"`
	Discount float64       `json:"discount"`
	Total    pricing.Money `json:"total"`
}

// Detail is the product detail payload including the tier matrix.
type Detail struct {
	Product     Product     `json:"product"`
	Tiers       []TierPrice `json:"tiers"`
	ProductPath string      `json:"productPath"`
}

// List returns the full product range.
func (Handler) List(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{"data": Products()})
}

// Get returns one size with its quantity tier price matrix. The size token
// comes from the URL; unknown tokens fall back to 50ml rather than a 404,
// matching the funnel's degrade-to-default behaviour everywhere else.
func (Handler) Get(w http.ResponseWriter, r *http.Request) {
	product := BySize(chi.URLParam(r, "size"))

	tiers := make([]TierPrice, 0, 3)
	for _, qty := range []int{1, 2, 3} {
		tiers = append(tiers, TierPrice{
			Quantity: qty,
			Discount: pricing.TierDiscount(qty),
			Total:    pricing.ListTotal(product.Size, qty),
		})
	}

	state := funnel.State{Size: product.Size, Quantity: 1}
	common.JSON(w, http.StatusOK, map[string]any{"data": Detail{
		Product:     product,
		Tiers:       tiers,
		ProductPath: state.ProductPath(),
	}})
}
