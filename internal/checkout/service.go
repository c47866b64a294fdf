package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/noah-isme/backend-eubiosis/internal/common"
	"github.com/noah-isme/backend-eubiosis/internal/events"
	"github.com/noah-isme/backend-eubiosis/internal/funnel"
	"github.com/noah-isme/backend-eubiosis/internal/order"
	"github.com/noah-isme/backend-eubiosis/internal/payment"
	"github.com/noah-isme/backend-eubiosis/internal/pricing"
)

// Input is the checkout submission payload.
type Input struct {
	Customer       order.Customer `json:"customer"`
	Funnel         funnel.State   `json:"funnel"`
	PromoCode      string         `json:"promoCode"`
	PaymentChannel string         `json:"paymentChannel"`
}

// Quote pairs a computed summary with the promo outcome for one funnel state.
type Quote struct {
	State        funnel.State         `json:"state"`
	PromoApplied bool                 `json:"promoApplied"`
	Summary      pricing.OrderSummary `json:"summary"`
}

// Service completes checkout: it recomputes the order summary server-side
// from funnel state, persists the confirmation, and hands the amount to the
// payment provider boundary.
type Service struct {
	Store    order.Store
	Provider payment.Provider
	Events   *events.Bus
	Validate *validator.Validate
}

// BuildQuote recomputes the order summary for the given funnel state and
// address fields. A wrong promo code is a silent no-op: the quote simply
// reports PromoApplied=false.
func BuildQuote(state funnel.State, province, city, promoCode string) Quote {
	applied := pricing.ValidPromoCode(promoCode)
	return Quote{
		State:        state,
		PromoApplied: applied,
		Summary:      pricing.ComputeOrderSummary(state.PricingInput(province, city, applied)),
	}
}

// Create validates the submission, prices it from scratch and persists the
// confirmation record. The client-supplied totals are never trusted; the
// summary is always recomputed from the funnel state in the payload.
func (s *Service) Create(ctx context.Context, in Input) (order.Confirmation, error) {
	if s == nil || s.Store == nil || s.Provider == nil {
		return order.Confirmation{}, errors.New("checkout service not configured")
	}
	if err := s.validateCustomer(in.Customer); err != nil {
		return order.Confirmation{}, err
	}

	quote := BuildQuote(in.Funnel, in.Customer.Province, in.Customer.City, in.PromoCode)
	channel := payment.NormalizeChannel(in.PaymentChannel)

	confirmation := order.Confirmation{
		ID:             uuid.New(),
		Customer:       in.Customer,
		Funnel:         in.Funnel,
		PaymentChannel: channel,
		Summary:        quote.Summary,
		CreatedAt:      time.Now().UTC(),
	}
	if quote.PromoApplied {
		confirmation.PromoCode = strings.ToLower(strings.TrimSpace(in.PromoCode))
	}

	intent, err := s.Provider.CreateIntent(ctx, payment.IntentRequest{
		OrderID: confirmation.ID.String(),
		Amount:  quote.Summary.Total,
		Channel: channel,
		Email:   in.Customer.Email,
	})
	if err != nil {
		return order.Confirmation{}, fmt.Errorf("create payment intent: %w", err)
	}
	confirmation.RedirectURL = intent.RedirectURL

	if err := s.Store.Create(ctx, confirmation); err != nil {
		return order.Confirmation{}, err
	}

	if s.Events != nil {
		payload := map[string]any{
			"orderId": confirmation.ID.String(),
			"email":   in.Customer.Email,
			"total":   quote.Summary.Total,
		}
		_, _ = s.Events.Emit(ctx, events.TopicOrderCreated, confirmation.ID, payload)
	}
	return confirmation, nil
}

func (s *Service) validateCustomer(c order.Customer) error {
	if s.Validate == nil {
		return nil
	}
	err := s.Validate.Struct(c)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return common.NewAppError("INTERNAL", "validator misconfigured", http.StatusInternalServerError, err)
	}
	details := map[string]string{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
	}
	return &common.AppError{
		Code:       "VALIDATION",
		Message:    "customer information is incomplete",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
		Details:    details,
	}
}
