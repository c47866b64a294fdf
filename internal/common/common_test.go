package common

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestJSONErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, http.StatusBadRequest, "BAD_REQUEST", "nope", map[string]string{"field": "email"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), `"code":"BAD_REQUEST"`)
	require.Contains(t, rec.Body.String(), `"field":"email"`)
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	appErr := NewAppError("INTERNAL", "something broke", http.StatusInternalServerError, inner)

	require.ErrorIs(t, appErr, inner)
	require.True(t, IsAppError(appErr))
	require.False(t, IsAppError(inner))
	require.Equal(t, "boom", appErr.Error())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	require.Equal(t, "10.0.0.1", ClientIP(req))

	req.Header.Set("X-Real-IP", "41.0.0.7")
	require.Equal(t, "41.0.0.7", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "196.25.1.1, 10.0.0.2")
	require.Equal(t, "196.25.1.1", ClientIP(req))
}

func TestIdempotencyMiddleware(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	idem := Idem{R: client, TTL: time.Minute}
	var handled int
	handler := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handled++
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
	req.Header.Set("Idempotency-Key", "order-attempt-1")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.Clone(req.Context()))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 1, handled)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.Clone(req.Context()))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, 1, handled)
	require.Contains(t, rec.Body.String(), "IDEMPOTENT_REPLAY")
}

func TestIdempotencyMiddlewareNoKeyPassesThrough(t *testing.T) {
	idem := Idem{}
	var handled int
	handler := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handled++
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, 1, handled)
}

func TestSha256Hex(t *testing.T) {
	require.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		Sha256Hex("hello"))
}

func TestAtoiDefault(t *testing.T) {
	require.Equal(t, 7, AtoiDefault("7", 1))
	require.Equal(t, 1, AtoiDefault("x", 1))
	require.Equal(t, 1, AtoiDefault("", 1))
}
