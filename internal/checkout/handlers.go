package checkout

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/noah-isme/backend-eubiosis/internal/common"
	"github.com/noah-isme/backend-eubiosis/internal/funnel"
	"github.com/noah-isme/backend-eubiosis/internal/obs"
	"github.com/noah-isme/backend-eubiosis/internal/pricing"
)

// Handler exposes the quote and order endpoints.
type Handler struct {
	Svc *Service
}

// Quote computes an order summary from funnel query parameters without
// persisting anything. Promo codes arrive as plain query params; an unknown
// code downgrades to promoApplied=false instead of an error.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	state := funnel.ParseQuery(values)
	promoCode := values.Get("promoCode")

	quote := BuildQuote(state, values.Get("province"), values.Get("city"), promoCode)

	if obs.QuoteTotal != nil {
		obs.QuoteTotal.WithLabelValues("ok").Inc()
	}
	if obs.PromoAttemptTotal != nil && strings.TrimSpace(promoCode) != "" {
		result := "rejected"
		if quote.PromoApplied {
			result = "applied"
		}
		obs.PromoAttemptTotal.WithLabelValues(result).Inc()
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": quote})
}

// Create accepts a checkout submission and returns the confirmation record
// with the payment redirect URL.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	confirmation, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		channel := confirmation.PaymentChannel
		if channel == "" {
			channel = "unknown"
		}
		if obs.OrderCreatedTotal != nil {
			obs.OrderCreatedTotal.WithLabelValues(channel, "error").Inc()
		}
		writeError(w, err)
		return
	}

	if obs.OrderCreatedTotal != nil {
		obs.OrderCreatedTotal.WithLabelValues(confirmation.PaymentChannel, "ok").Inc()
	}
	if obs.PromoAttemptTotal != nil && strings.TrimSpace(in.PromoCode) != "" {
		result := "rejected"
		if pricing.ValidPromoCode(in.PromoCode) {
			result = "applied"
		}
		obs.PromoAttemptTotal.WithLabelValues(result).Inc()
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": confirmation})
}

func writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to complete checkout", nil)
}
