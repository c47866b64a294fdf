package subscribe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-eubiosis/internal/resilience"
)

func TestCreateAcceptsCapture(t *testing.T) {
	provider := &memProvider{}
	h := &Handler{Svc: &Service{Provider: provider}}

	req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(`{"email":"Lindi@Example.com","source":"hero","metadata":{"variant":"b"}}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var body struct {
		Data Subscription `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "lindi@example.com", body.Data.Email)
	require.Equal(t, "hero", body.Data.Source)
	require.Equal(t, "b", body.Data.Metadata["variant"])
}

func TestCreateRejectsInvalidEmail(t *testing.T) {
	h := &Handler{Svc: &Service{Provider: &memProvider{}}}

	req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(`{"email":"not-an-email"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_EMAIL")
}

func TestCreateConflictsOnDuplicate(t *testing.T) {
	provider := &memProvider{subs: []Subscription{{Email: "dup@example.com"}}}
	h := &Handler{Svc: &Service{Provider: provider}}

	req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(`{"email":"dup@example.com"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "ALREADY_SUBSCRIBED")
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	h := &Handler{Svc: &Service{Provider: &memProvider{}}}

	req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "BAD_REQUEST")
}

func TestHTTPProviderPushesCapture(t *testing.T) {
	var hits atomic.Int32
	var got Subscription
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPost:
			hits.Add(1)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusAccepted)
		}
	}))
	t.Cleanup(srv.Close)

	provider := &HTTPProvider{URL: srv.URL, Client: srv.Client()}
	h := &Handler{Svc: &Service{Provider: provider}}

	req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(`{"email":"push@example.com","source":"exit-intent"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, int32(1), hits.Load())
	require.Equal(t, "push@example.com", got.Email)
	require.Equal(t, "exit-intent", got.Source)
}

func TestHTTPProviderErrorSurfaces(t *testing.T) {
	var posts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		posts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	provider := &HTTPProvider{URL: srv.URL, Client: srv.Client(), Breaker: resilience.NewBreaker(10, 0.9, 0)}
	h := &Handler{Svc: &Service{Provider: provider}}

	req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(`{"email":"down@example.com"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, int32(1), posts.Load(), "capture must not be retried")
}

func TestHTTPProviderExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("email") == "known@example.com" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	provider := &HTTPProvider{URL: srv.URL, Client: srv.Client()}

	exists, err := provider.Exists(context.Background(), "known@example.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = provider.Exists(context.Background(), "new@example.com")
	require.NoError(t, err)
	require.False(t, exists)
}
