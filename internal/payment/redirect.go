package payment

import (
	"context"
	"fmt"
)

// Redirect is the default provider: it performs no charge and sends the
// customer straight to the success page, mirroring the funnel's original
// client-only checkout submission.
type Redirect struct {
	SuccessPath string
}

// CreateIntent implements Provider.
func (p Redirect) CreateIntent(_ context.Context, req IntentRequest) (IntentResponse, error) {
	path := p.SuccessPath
	if path == "" {
		path = "/checkout/success"
	}
	return IntentResponse{
		Provider:    "redirect",
		RedirectURL: fmt.Sprintf("%s?order=%s", path, req.OrderID),
	}, nil
}
