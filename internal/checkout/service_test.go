package checkout

import (
	"context"
	"errors"
	"testing"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-eubiosis/internal/common"
	"github.com/noah-isme/backend-eubiosis/internal/events"
	"github.com/noah-isme/backend-eubiosis/internal/funnel"
	"github.com/noah-isme/backend-eubiosis/internal/order"
	"github.com/noah-isme/backend-eubiosis/internal/payment"
	"github.com/noah-isme/backend-eubiosis/internal/pricing"
)

type memStore struct {
	created []order.Confirmation
	fail    error
}

func (m *memStore) Create(_ context.Context, c order.Confirmation) error {
	if m.fail != nil {
		return m.fail
	}
	m.created = append(m.created, c)
	return nil
}

func (m *memStore) Get(_ context.Context, id uuid.UUID) (order.Confirmation, error) {
	for _, c := range m.created {
		if c.ID == id {
			return c, nil
		}
	}
	return order.Confirmation{}, order.ErrNotFound
}

type memEventStore struct {
	events []events.Event
}

func (m *memEventStore) InsertDomainEvent(_ context.Context, topic string, aggregateID uuid.UUID, payload []byte) (events.Event, error) {
	e := events.Event{ID: uuid.New(), Topic: topic, AggregateID: aggregateID, Payload: payload}
	m.events = append(m.events, e)
	return e, nil
}

func validCustomer() order.Customer {
	return order.Customer{
		FirstName:  "Thabo",
		LastName:   "Nkosi",
		Email:      "thabo@example.com",
		Phone:      "0710000000",
		Address:    "12 Main Road",
		City:       "Johannesburg",
		Province:   "Gauteng",
		PostalCode: "2000",
	}
}

func newService(store order.Store, bus *events.Bus) *Service {
	return &Service{
		Store:    store,
		Provider: payment.Redirect{SuccessPath: "/checkout/success"},
		Events:   bus,
		Validate: validator.New(),
	}
}

func TestServiceCreateRecomputesSummary(t *testing.T) {
	store := &memStore{}
	evStore := &memEventStore{}
	svc := newService(store, &events.Bus{Store: evStore})

	in := Input{
		Customer: validCustomer(),
		Funnel:   funnel.State{Size: pricing.Size50ml, Quantity: 1},
	}

	c, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, store.created, 1)

	require.Equal(t, int64(325), c.Summary.Subtotal)
	require.Equal(t, int64(59), c.Summary.LaunchDiscount)
	require.Equal(t, int64(50), c.Summary.Shipping)
	require.Equal(t, int64(316), c.Summary.Total)
	require.Equal(t, payment.ChannelFastpay, c.PaymentChannel)
	require.Contains(t, c.RedirectURL, "/checkout/success?order="+c.ID.String())

	require.Len(t, evStore.events, 1)
	require.Equal(t, events.TopicOrderCreated, evStore.events[0].Topic)
	require.Equal(t, c.ID, evStore.events[0].AggregateID)
}

func TestServiceCreateValidatesCustomer(t *testing.T) {
	store := &memStore{}
	svc := newService(store, nil)

	in := Input{
		Customer: order.Customer{FirstName: "Thabo"},
		Funnel:   funnel.Default(),
	}

	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)

	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "VALIDATION", appErr.Code)
	require.Empty(t, store.created)
}

func TestServiceCreateIgnoresUnknownPromo(t *testing.T) {
	svc := newService(&memStore{}, nil)

	in := Input{
		Customer:  validCustomer(),
		Funnel:    funnel.Default(),
		PromoCode: "nope10",
	}

	c, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Empty(t, c.PromoCode)
	require.Zero(t, c.Summary.PromoDiscount)
}

func TestServiceCreateAppliesPromoCaseInsensitive(t *testing.T) {
	svc := newService(&memStore{}, nil)

	in := Input{
		Customer:  validCustomer(),
		Funnel:    funnel.Default(),
		PromoCode: "  WELCOME5 ",
	}

	c, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "welcome5", c.PromoCode)
	require.Positive(t, c.Summary.PromoDiscount)
}

func TestServiceCreateStoreFailure(t *testing.T) {
	store := &memStore{fail: errors.New("db down")}
	svc := newService(store, nil)

	_, err := svc.Create(context.Background(), Input{Customer: validCustomer(), Funnel: funnel.Default()})
	require.Error(t, err)
}

func TestBuildQuoteBundleSameDay(t *testing.T) {
	state := funnel.State{
		Size:                  pricing.Size50ml,
		Quantity:              3,
		Bundle:                true,
		UpsellDiscountPercent: 20,
	}

	q := BuildQuote(state, "Limpopo", "Mokopane Town", "")
	require.False(t, q.PromoApplied)
	require.Equal(t, int64(975), q.Summary.Subtotal)
	require.Equal(t, int64(176), q.Summary.LaunchDiscount)
	require.Equal(t, int64(160), q.Summary.BundleDiscount)
	require.Zero(t, q.Summary.EmailDiscount)
	require.Zero(t, q.Summary.Shipping)
	require.Equal(t, int64(639), q.Summary.Total)
}
