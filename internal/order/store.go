package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no confirmation exists for the given id.
var ErrNotFound = errors.New("order not found")

// Store defines the persistence operations for order confirmations.
type Store interface {
	Create(ctx context.Context, c Confirmation) error
	Get(ctx context.Context, id uuid.UUID) (Confirmation, error)
}

// PGStore persists confirmations in Postgres. Customer, funnel state and
// the priced summary are stored as JSONB; the totals are duplicated into
// plain columns for reporting queries.
type PGStore struct {
	Pool *pgxpool.Pool
}

// Create implements Store.
func (s PGStore) Create(ctx context.Context, c Confirmation) error {
	customer, err := json.Marshal(c.Customer)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}
	state, err := json.Marshal(c.Funnel)
	if err != nil {
		return fmt.Errorf("marshal funnel state: %w", err)
	}
	summary, err := json.Marshal(c.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	const q = `
		INSERT INTO orders (
			id, customer, funnel_state, promo_code, payment_channel,
			summary, subtotal, total_discount, shipping, total, redirect_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = s.Pool.Exec(ctx, q,
		c.ID, customer, state, c.PromoCode, c.PaymentChannel,
		summary, c.Summary.Subtotal, c.Summary.TotalDiscount,
		c.Summary.Shipping, c.Summary.Total, c.RedirectURL,
	)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", c.ID, err)
	}
	return nil
}

// Get implements Store.
func (s PGStore) Get(ctx context.Context, id uuid.UUID) (Confirmation, error) {
	const q = `
		SELECT id, customer, funnel_state, promo_code, payment_channel,
		       summary, redirect_url, created_at
		FROM orders WHERE id = $1`

	var (
		c        Confirmation
		customer []byte
		state    []byte
		summary  []byte
	)
	row := s.Pool.QueryRow(ctx, q, id)
	err := row.Scan(&c.ID, &customer, &state, &c.PromoCode, &c.PaymentChannel,
		&summary, &c.RedirectURL, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Confirmation{}, ErrNotFound
		}
		return Confirmation{}, fmt.Errorf("load order %s: %w", id, err)
	}
	if err := json.Unmarshal(customer, &c.Customer); err != nil {
		return Confirmation{}, fmt.Errorf("decode customer: %w", err)
	}
	if err := json.Unmarshal(state, &c.Funnel); err != nil {
		return Confirmation{}, fmt.Errorf("decode funnel state: %w", err)
	}
	if err := json.Unmarshal(summary, &c.Summary); err != nil {
		return Confirmation{}, fmt.Errorf("decode summary: %w", err)
	}
	return c, nil
}
