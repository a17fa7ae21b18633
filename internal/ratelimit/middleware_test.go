package ratelimit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	limiter "github.com/ulule/limiter/v3"

	"github.com/tmm-digital/quote-api/internal/ratelimit"
)

type stubLimiter struct {
	ctx limiter.Context
	err error
}

func (s stubLimiter) Get(context.Context, string) (limiter.Context, error) {
	return s.ctx, s.err
}

func newHandler(l ratelimit.Limiter) http.Handler {
	h := ratelimit.Handler{Limiter: l, Key: ratelimit.ByClientIP("test")}
	return h.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestAllowsUnderLimit(t *testing.T) {
	handler := newHandler(stubLimiter{ctx: limiter.Context{Limit: 10, Remaining: 9, Reset: time.Now().Add(time.Minute).Unix()}})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/carts/x/promo", nil))

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Equal(t, "10", rr.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "9", rr.Header().Get("X-RateLimit-Remaining"))
}

func TestBlocksWhenReached(t *testing.T) {
	handler := newHandler(stubLimiter{ctx: limiter.Context{Limit: 10, Remaining: 0, Reached: true, Reset: time.Now().Add(30 * time.Second).Unix()}})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/carts/x/promo", nil))

	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	require.NotEmpty(t, rr.Header().Get("Retry-After"))
}

func TestFailsOpenOnLimiterError(t *testing.T) {
	handler := newHandler(stubLimiter{err: errors.New("redis gone")})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/carts/x/promo", nil))

	require.Equal(t, http.StatusNoContent, rr.Code)
}
