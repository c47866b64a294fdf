package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/backend-eubiosis/internal/common"
)

// EmailNotifier sends transactional emails for selected topics.
type EmailNotifier struct {
	Mail    common.EmailSender
	Enabled bool
	From    string
}

// Notify implements the Notifier interface. Events without a recipient in
// their payload are skipped silently.
func (n EmailNotifier) Notify(_ context.Context, event Event) error {
	if !n.Enabled || n.Mail == nil {
		return nil
	}
	payload := map[string]any{}
	if len(event.Payload) > 0 {
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("email notify: decode payload: %w", err)
		}
	}
	to := extractRecipient(payload)
	if to == "" {
		return nil
	}
	return n.Mail.Send(to, subjectFor(event.Topic), bodyFor(event.Topic, payload, event.OccurredAt))
}

func extractRecipient(payload map[string]any) string {
	for _, key := range []string{"email", "customerEmail"} {
		if val, ok := payload[key].(string); ok {
			if trimmed := strings.TrimSpace(val); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func subjectFor(topic string) string {
	switch topic {
	case TopicOrderCreated:
		return "Your Eubiosis order is confirmed"
	case TopicSubscriberCaptured:
		return "Welcome to the Eubiosis wellness community"
	default:
		return fmt.Sprintf("Eubiosis notification: %s", topic)
	}
}

func bodyFor(topic string, payload map[string]any, occurred time.Time) string {
	summary := fmt.Sprintf("Event %s occurred at %s.", topic, occurred.Format(time.RFC3339))
	if orderID, ok := payload["orderId"].(string); ok && orderID != "" {
		summary += fmt.Sprintf("\nOrder ID: %s", orderID)
	}
	if total, ok := payload["total"].(float64); ok && total > 0 {
		summary += fmt.Sprintf("\nTotal: R%d", int64(total))
	}
	return summary
}
