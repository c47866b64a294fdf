package events

// Topic constants for domain events emitted by the funnel.
const (
	TopicOrderCreated       = "order.created"
	TopicSubscriberCaptured = "subscriber.captured"
)

// DefaultTopics returns the canonical list of topics that support notifications.
func DefaultTopics() []string {
	return []string{
		TopicOrderCreated,
		TopicSubscriberCaptured,
	}
}
