package subscribe

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/noah-isme/backend-eubiosis/internal/common"
	"github.com/noah-isme/backend-eubiosis/internal/obs"
)

// Handler exposes the email capture endpoint.
type Handler struct {
	Svc *Service
}

// Create handles POST /subscribe. The capture is fire and forget, so a
// successful push answers 202.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Subscription
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}

	sub, err := h.Svc.Subscribe(r.Context(), in)
	if err != nil {
		countSubscribe(in.Source, "error")
		switch {
		case errors.Is(err, ErrInvalidEmail):
			common.JSONError(w, http.StatusBadRequest, "INVALID_EMAIL", "please enter a valid email address", nil)
		case errors.Is(err, ErrAlreadySubscribed):
			common.JSONError(w, http.StatusConflict, "ALREADY_SUBSCRIBED", "this email is already subscribed", nil)
		default:
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "could not subscribe right now", nil)
		}
		return
	}

	countSubscribe(sub.Source, "ok")
	common.JSON(w, http.StatusAccepted, map[string]any{"data": sub})
}

func countSubscribe(source, result string) {
	if obs.SubscribeTotal == nil {
		return
	}
	if source == "" {
		source = "unknown"
	}
	obs.SubscribeTotal.WithLabelValues(source, result).Inc()
}
