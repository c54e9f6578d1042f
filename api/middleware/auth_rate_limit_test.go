package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maskeddeveloper/product-trial-master/pkg/logger"
)

type fakeCounterStore struct {
	counts map[string]int64
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{counts: map[string]int64{}}
}

func (s *fakeCounterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	s.counts[key]++
	return s.counts[key], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRateLimitBlocksAfterIPLimit(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	store := newFakeCounterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	handler := AuthRateLimit(policy, store, logg)(okHandler())

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/token", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/token", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	other := httptest.NewRequest(http.MethodPost, "/api/token", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRateLimitCountsEmailsAcrossIPs(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	store := newFakeCounterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 1)
	handler := AuthRateLimit(policy, store, logg)(okHandler())

	first := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(`{"email":"Jane@Example.com","password":"x"}`))
	first.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusOK, rec.Code)

	second := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(`{"email":"jane@example.com","password":"x"}`))
	second.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	otherAccount := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(`{"email":"sam@example.com","password":"x"}`))
	otherAccount.RemoteAddr = "10.0.0.3:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, otherAccount)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRateLimitRestoresBodyForHandler(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	store := newFakeCounterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 5)

	var seen string
	handler := AuthRateLimit(policy, store, logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		seen = string(body)
		w.WriteHeader(http.StatusOK)
	}))

	payload := `{"email":"jane@example.com","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, seen)
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	store := newFakeCounterStore()
	policy := NewAuthRateLimitPolicy("login", 0, 5, 5)
	handler := AuthRateLimit(policy, store, logg)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/token", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.counts)
}
