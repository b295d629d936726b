package middlewarectx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/novasports/nova-backend/internal/ratelimit"
)

func TestRateLimitMiddleware_RejectsOverLimit(t *testing.T) {
	limiter := ratelimit.NewKeyed(3, time.Minute)
	handler := RateLimitMiddleware(limiter, discardLogger())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/sign-in", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/sign-in", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "too many requests")

	// Другой клиент со своим адресом лимит не делит.
	req = httptest.NewRequest(http.MethodPost, "/sign-in", nil)
	req.RemoteAddr = "10.0.0.2:54321"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimitMiddleware_KeyedByNicknameWhenAuthorized(t *testing.T) {
	limiter := ratelimit.NewKeyed(1, time.Minute)
	handler := RateLimitMiddleware(limiter, discardLogger())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	// Один никнейм с разных адресов считается одним клиентом.
	for i, status := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/recommendations", nil)
		req.RemoteAddr = fmt.Sprintf("10.0.0.%d:54321", i+1)
		req = req.WithContext(context.WithValue(req.Context(), User, "ann"))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, status, rr.Code)
	}
}
