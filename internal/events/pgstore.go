package events

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists domain events in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

// InsertDomainEvent implements Store.
func (s PGStore) InsertDomainEvent(ctx context.Context, topic string, aggregateID uuid.UUID, payload []byte) (Event, error) {
	const q = `
		INSERT INTO domain_events (id, topic, aggregate_id, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id, topic, aggregate_id, payload, occurred_at`

	row := s.Pool.QueryRow(ctx, q, uuid.New(), topic, aggregateID, payload)
	var event Event
	if err := row.Scan(&event.ID, &event.Topic, &event.AggregateID, &event.Payload, &event.OccurredAt); err != nil {
		return Event{}, err
	}
	return event, nil
}
