package subscribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/noah-isme/backend-eubiosis/internal/resilience"
)

// Subscription is the payload handed to the external list provider. The
// provider owns the list; nothing is persisted locally.
type Subscription struct {
	Email    string            `json:"email"`
	Source   string            `json:"source"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Provider is the boundary to the external email list service.
type Provider interface {
	Subscribe(ctx context.Context, sub Subscription) error
	Exists(ctx context.Context, email string) (bool, error)
}

// HTTPProvider talks to a list provider over HTTP. Calls are single-shot:
// capture is fire and forget, so a failed push is reported but never retried.
type HTTPProvider struct {
	URL     string
	Client  *http.Client
	Breaker *resilience.Breaker
}

func (p *HTTPProvider) Subscribe(ctx context.Context, sub Subscription) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client().Do(ctx, req)
	if err != nil {
		return fmt.Errorf("subscribe: push to provider: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("subscribe: provider responded %d", resp.StatusCode)
	}
	return nil
}

// Exists asks the provider whether the address is already on the list.
// A 404 means unknown address; any 2xx means it is already subscribed.
func (p *HTTPProvider) Exists(ctx context.Context, email string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL+"?email="+url.QueryEscape(email), nil)
	if err != nil {
		return false, err
	}
	resp, err := p.client().Do(ctx, req)
	if err != nil {
		return false, fmt.Errorf("subscribe: lookup at provider: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode < http.StatusMultipleChoices:
		return true, nil
	default:
		return false, fmt.Errorf("subscribe: provider responded %d", resp.StatusCode)
	}
}

func (p *HTTPProvider) client() resilience.HTTPClient {
	httpClient := p.Client
	if httpClient == nil {
		httpClient = HTTPClient(0)
	}
	return resilience.HTTPClient{
		Client:      httpClient,
		Breaker:     p.Breaker,
		MaxAttempts: 1,
	}
}

// HTTPClient builds the outbound client used to reach the list provider,
// instrumented so provider latency shows up in traces.
func HTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
