package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-eubiosis/internal/common"
)

type stubStore struct {
	inserted []Event
	fail     error
}

func (s *stubStore) InsertDomainEvent(_ context.Context, topic string, aggregateID uuid.UUID, payload []byte) (Event, error) {
	if s.fail != nil {
		return Event{}, s.fail
	}
	e := Event{
		ID:          uuid.New(),
		Topic:       topic,
		AggregateID: aggregateID,
		Payload:     payload,
		OccurredAt:  time.Now(),
	}
	s.inserted = append(s.inserted, e)
	return e, nil
}

type recordingNotifier struct {
	seen []Event
	fail error
}

func (n *recordingNotifier) Notify(_ context.Context, event Event) error {
	n.seen = append(n.seen, event)
	return n.fail
}

func TestBusEmitPersistsAndNotifies(t *testing.T) {
	store := &stubStore{}
	notifier := &recordingNotifier{}
	bus := &Bus{Store: store, Notifiers: []Notifier{notifier}}

	aggregate := uuid.New()
	event, err := bus.Emit(context.Background(), TopicOrderCreated, aggregate, map[string]any{"orderId": aggregate.String()})
	require.NoError(t, err)
	require.Equal(t, TopicOrderCreated, event.Topic)
	require.Equal(t, aggregate, event.AggregateID)

	require.Len(t, store.inserted, 1)
	require.Len(t, notifier.seen, 1)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(notifier.seen[0].Payload, &payload))
	require.Equal(t, aggregate.String(), payload["orderId"])
}

func TestBusEmitRequiresTopicAndAggregate(t *testing.T) {
	bus := &Bus{Store: &stubStore{}}

	_, err := bus.Emit(context.Background(), "  ", uuid.New(), nil)
	require.Error(t, err)

	_, err = bus.Emit(context.Background(), TopicOrderCreated, uuid.Nil, nil)
	require.Error(t, err)
}

func TestBusEmitStoreFailure(t *testing.T) {
	store := &stubStore{fail: errors.New("insert failed")}
	notifier := &recordingNotifier{}
	bus := &Bus{Store: store, Notifiers: []Notifier{notifier}}

	_, err := bus.Emit(context.Background(), TopicOrderCreated, uuid.New(), nil)
	require.Error(t, err)
	require.Empty(t, notifier.seen)
}

func TestBusEmitJoinsNotifierErrors(t *testing.T) {
	store := &stubStore{}
	failing := &recordingNotifier{fail: errors.New("smtp down")}
	ok := &recordingNotifier{}
	bus := &Bus{Store: store, Notifiers: []Notifier{failing, ok}}

	_, err := bus.Emit(context.Background(), TopicSubscriberCaptured, uuid.New(), map[string]string{"email": "a@b.co"})
	require.Error(t, err)

	// the event is persisted and every notifier still runs
	require.Len(t, store.inserted, 1)
	require.Len(t, ok.seen, 1)
}

func TestBusEmitRejectsInvalidJSONPayload(t *testing.T) {
	bus := &Bus{Store: &stubStore{}}

	_, err := bus.Emit(context.Background(), TopicOrderCreated, uuid.New(), []byte("{not json"))
	require.Error(t, err)
}

func TestEmailNotifierSendsForOrderCreated(t *testing.T) {
	mail := &common.InMemoryEmail{}
	notifier := EmailNotifier{Mail: mail, Enabled: true, From: "orders@eubiosis.example"}

	payload, _ := json.Marshal(map[string]any{
		"orderId": "abc-123",
		"email":   "thabo@example.com",
		"total":   316,
	})
	err := notifier.Notify(context.Background(), Event{
		Topic:      TopicOrderCreated,
		Payload:    payload,
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)
	require.Len(t, mail.Outbox, 1)
	require.Equal(t, "thabo@example.com", mail.Outbox[0].To)
	require.Equal(t, "Your Eubiosis order is confirmed", mail.Outbox[0].Subject)
	require.Contains(t, mail.Outbox[0].HTML, "abc-123")
}

func TestEmailNotifierSkipsWithoutRecipient(t *testing.T) {
	mail := &common.InMemoryEmail{}
	notifier := EmailNotifier{Mail: mail, Enabled: true}

	err := notifier.Notify(context.Background(), Event{Topic: TopicOrderCreated, Payload: []byte(`{}`)})
	require.NoError(t, err)
	require.Empty(t, mail.Outbox)
}

func TestEmailNotifierDisabled(t *testing.T) {
	mail := &common.InMemoryEmail{}
	notifier := EmailNotifier{Mail: mail}

	payload := []byte(`{"email":"thabo@example.com"}`)
	err := notifier.Notify(context.Background(), Event{Topic: TopicOrderCreated, Payload: payload})
	require.NoError(t, err)
	require.Empty(t, mail.Outbox)
}
