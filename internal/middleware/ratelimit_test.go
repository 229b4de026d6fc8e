// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRateLimiter_LocalFallback(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{
		Limit:    PerWindow(2, 2, time.Hour),
		FailOpen: true,
	})
	h := rl.Handler(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent {
		t.Fatalf("first two requests should pass: %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("third request should be limited: %v", codes)
	}

	req := httptest.NewRequest(http.MethodPost, "/login/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("other client limited: %d", rec.Code)
	}
}

func TestRateLimiter_Bypass(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{
		Limit:      PerWindow(1, 1, time.Hour),
		BypassFunc: func(r *http.Request) bool { return r.URL.Path == "/healthz" },
	})
	h := rl.Handler(okHandler)

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("bypassed request %d limited: %d", i, rec.Code)
		}
	}
}

func TestBucketSet_Refill(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newBucketSet(func() time.Time { return now })
	limit := PerWindow(60, 1, time.Minute)

	if d := s.take("k", limit); !d.allowed {
		t.Fatalf("first take denied")
	}

	d := s.take("k", limit)
	if d.allowed {
		t.Fatalf("second take within the same instant allowed")
	}
	if d.retryAfter <= 0 || d.retryAfter > time.Second {
		t.Fatalf("retryAfter = %v, want (0, 1s]", d.retryAfter)
	}

	now = now.Add(time.Second)
	if d := s.take("k", limit); !d.allowed {
		t.Fatalf("take after refill denied")
	}
}

func TestBucketSet_PrunesIdleKeys(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newBucketSet(func() time.Time { return now })
	limit := PerWindow(10, 10, time.Minute)

	s.take("old", limit)
	now = now.Add(bucketIdleTTL + time.Second)
	s.take("new", limit)

	if _, ok := s.buckets["old"]; ok {
		t.Fatalf("idle bucket was not pruned")
	}
	if _, ok := s.buckets["new"]; !ok {
		t.Fatalf("active bucket missing")
	}
}

func TestRateLimiter_LimitedResponse(t *testing.T) {
	h := NewRateLimiter(nil, RateLimitConfig{Limit: PerWindow(1, 1, time.Hour)}).Handler(okHandler)

	var rec *httptest.ResponseRecorder
	for range 2 {
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/", nil))
	}

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d", rec.Code)
	}
	retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	if err != nil || retry < 1 {
		t.Fatalf("Retry-After = %q", rec.Header().Get("Retry-After"))
	}
	if rec.Header().Get("RateLimit-Limit") != "1" {
		t.Fatalf("RateLimit-Limit = %q", rec.Header().Get("RateLimit-Limit"))
	}
}

func TestRateLimiter_StoreFailure(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	tests := []struct {
		failOpen bool
		status   int
	}{
		{true, http.StatusNoContent},
		{false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		h := NewRateLimiter(rdb, RateLimitConfig{
			Limit:    PerWindow(10, 10, time.Minute),
			FailOpen: tt.failOpen,
		}).Handler(okHandler)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/", nil))

		if rec.Code != tt.status {
			t.Fatalf("failOpen=%v: status = %d, want %d", tt.failOpen, rec.Code, tt.status)
		}
	}
}

func TestKeyByRoute(t *testing.T) {
	login := KeyByRoute("login")
	a := httptest.NewRequest(http.MethodPost, "/login/", nil)
	b := httptest.NewRequest(http.MethodPost, "/login", nil)
	c := httptest.NewRequest(http.MethodPost, "/login", nil)
	a.RemoteAddr, b.RemoteAddr, c.RemoteAddr = "10.0.0.1:1", "10.0.0.1:2", "10.0.0.2:1"

	if login(a) != login(b) {
		t.Fatalf("trailing slash produced a separate key: %q vs %q", login(a), login(b))
	}
	if login(a) == login(c) {
		t.Fatalf("different ips share a key")
	}
	if login(a) == KeyByIP(a) {
		t.Fatalf("route key collides with the global key")
	}
}

func TestRateLimiter_RouteBudgetSharedAcrossAliases(t *testing.T) {
	h := NewRateLimiter(nil, RateLimitConfig{
		Limit:   PerWindow(1, 1, time.Hour),
		KeyFunc: KeyByRoute("login"),
	}).Handler(okHandler)

	codes := make([]int, 0, 2)
	for _, path := range []string{"/login/", "/login"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "10.0.0.9:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] == http.StatusTooManyRequests || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v, want second request limited", codes)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "abc-123" || rec.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("inbound id not propagated: ctx=%q header=%q", seen, rec.Header().Get("X-Request-ID"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || seen == "abc-123" {
		t.Fatalf("expected a fresh id, got %q", seen)
	}
}
