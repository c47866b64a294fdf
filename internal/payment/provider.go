// Package payment keeps the payment gateway behind a pluggable boundary.
// The funnel does not integrate a real gateway: completing checkout produces
// a confirmation record and a redirect, nothing more. The Provider interface
// is the seam a gateway integration would fill in.
package payment

import "context"

// IntentRequest captures the information required to open a payment intent.
type IntentRequest struct {
	OrderID string
	Amount  int64
	Channel string
	Email   string
}

// IntentResponse is the minimal information returned when creating an intent.
type IntentResponse struct {
	Provider    string
	RedirectURL string
}

// Provider abstracts the operations required from an upstream payment provider.
type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (IntentResponse, error)
}

// Supported payment channels as presented on the checkout form.
const (
	ChannelFastpay = "fastpay"
	ChannelEFT     = "eft"
)

// NormalizeChannel maps arbitrary input to a supported channel, defaulting
// to fastpay.
func NormalizeChannel(channel string) string {
	if channel == ChannelEFT {
		return ChannelEFT
	}
	return ChannelFastpay
}
