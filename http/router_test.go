package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matryer/is"

	"loan-capital/repository"
	"loan-capital/service"
)

type downCache struct {
	*repository.MemoryCache
}

func (downCache) Ping(context.Context) error {
	return errors.New("connection refused")
}

func newTestRouter(cache repository.CacheRepository, capacity int) (http.Handler, *RateLimiter) {
	limiter := NewRateLimiter(capacity, time.Minute)
	capital := NewCapitalHandler(service.NewCapitalService(cache))
	return NewRouter(capital, NewHealthHandler(cache), limiter), limiter
}

const revolverBody = `{"variant": "revolver", "commitment": 1000, "start": "2024-01-01", "end": "2025-12-31"}`

func TestRouter_Quote(t *testing.T) {
	is := is.New(t)
	router, limiter := newTestRouter(repository.NewMemoryCache(), 5)
	defer limiter.Stop()

	req := httptest.NewRequest(http.MethodPost, "/loan/capital", bytes.NewBufferString(revolverBody))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusOK)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	is := is.New(t)
	router, limiter := newTestRouter(repository.NewMemoryCache(), 5)
	defer limiter.Stop()

	req := httptest.NewRequest(http.MethodGet, "/loan/capital", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusMethodNotAllowed)
}

func TestRouter_RateLimited(t *testing.T) {
	is := is.New(t)
	router, limiter := newTestRouter(repository.NewMemoryCache(), 1)
	defer limiter.Stop()

	for i, expected := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/loan/capital", bytes.NewBufferString(revolverBody))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != expected {
			t.Fatalf("request #%d: expected %d, got %d", i, expected, w.Code)
		}
		if expected == http.StatusTooManyRequests {
			is.True(w.Header().Get("Retry-After") != "")
		}
	}
}

func TestRouter_Health(t *testing.T) {
	for i, tc := range []struct {
		cache       repository.CacheRepository
		status      string
		cacheStatus string
	}{
		{cache: repository.NewMemoryCache(), status: "ok", cacheStatus: "healthy"},
		{cache: downCache{repository.NewMemoryCache()}, status: "degraded", cacheStatus: "unhealthy"},
	} {
		router, limiter := newTestRouter(tc.cache, 1)
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		limiter.Stop()

		if w.Code != http.StatusOK {
			t.Fatalf("Case #%v: expected 200, got %d", i, w.Code)
		}
		var body struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		}
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Case #%v: invalid body: %v", i, err)
		}
		if body.Status != tc.status || body.Checks["cache"] != tc.cacheStatus {
			t.Errorf("Case #%v: unexpected health %+v", i, body)
		}
	}
}
