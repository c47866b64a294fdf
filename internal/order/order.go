package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-eubiosis/internal/funnel"
	"github.com/noah-isme/backend-eubiosis/internal/pricing"
)

// Customer holds the checkout form fields captured with an order. Province
// is the full province name as shown on the form; shipping treats anything
// outside the nine-province table as international.
type Customer struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Province   string `json:"province"`
}

// Confirmation is the persisted record produced by completing checkout.
// Payment itself stays behind the payment provider boundary; the record
// captures what was ordered and the totals the customer saw.
type Confirmation struct {
	ID             uuid.UUID            `json:"orderId"`
	Customer       Customer             `json:"customer"`
	Funnel         funnel.State         `json:"funnel"`
	PromoCode      string               `json:"promoCode,omitempty"`
	PaymentChannel string               `json:"paymentChannel"`
	Summary        pricing.OrderSummary `json:"summary"`
	RedirectURL    string               `json:"redirectUrl,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}
