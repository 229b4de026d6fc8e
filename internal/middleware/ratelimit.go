// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/RaulRamazanov/Shop/internal/core"
)

type RateLimitConfig struct {
	Limit   redis_rate.Limit
	KeyFunc func(*http.Request) string
	// FailOpen lets traffic through unthrottled when redis errors.
	// Otherwise the request is answered with 503.
	FailOpen   bool
	BypassFunc func(*http.Request) bool
}

// RateLimiter throttles with redis_rate when a client is configured and
// with in-process token buckets when it is not.
type RateLimiter struct {
	store *redis_rate.Limiter
	local *bucketSet
	cfg   RateLimitConfig
}

type decision struct {
	allowed    bool
	remaining  int
	retryAfter time.Duration
	resetAfter time.Duration
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}

	rl := &RateLimiter{
		local: newBucketSet(time.Now),
		cfg:   cfg,
	}
	if rdb != nil {
		rl.store = redis_rate.NewLimiter(rdb)
	}

	return rl
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.cfg.BypassFunc != nil && rl.cfg.BypassFunc(r) {
			next.ServeHTTP(w, r)
			return
		}

		key := rl.cfg.KeyFunc(r)

		d, err := rl.decide(r.Context(), key)
		if err != nil {
			slog.Warn("rate limit store failed",
				"key", key,
				"fail_open", rl.cfg.FailOpen,
				"error", err,
			)
			if rl.cfg.FailOpen {
				next.ServeHTTP(w, r)
				return
			}
			core.JSONError(w, core.UnavailableError())
			return
		}

		writeLimitHeaders(w, rl.cfg.Limit, d)

		if !d.allowed {
			retry := ceilSeconds(d.retryAfter)
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			core.JSONError(w, core.RateLimitedError(time.Duration(retry)*time.Second))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) decide(ctx context.Context, key string) (decision, error) {
	if rl.store == nil {
		return rl.local.take(key, rl.cfg.Limit), nil
	}

	res, err := rl.store.Allow(ctx, key, rl.cfg.Limit)
	if err != nil {
		return decision{}, err
	}

	return decision{
		allowed:    res.Allowed > 0,
		remaining:  res.Remaining,
		retryAfter: res.RetryAfter,
		resetAfter: res.ResetAfter,
	}, nil
}

// KeyByIP relies on chi's RealIP having already rewritten RemoteAddr.
func KeyByIP(r *http.Request) string {
	return "rl:ip:" + clientIP(r)
}

// KeyByRoute gives a named route its own per-IP budget, separate from the
// global one. Every path mounted under the limiter shares that budget.
func KeyByRoute(name string) func(*http.Request) string {
	prefix := "rl:route:" + name + ":"
	return func(r *http.Request) string {
		return prefix + clientIP(r)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeLimitHeaders(w http.ResponseWriter, limit redis_rate.Limit, d decision) {
	h := w.Header()
	h.Set("RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("RateLimit-Remaining", strconv.Itoa(d.remaining))
	h.Set("RateLimit-Reset", strconv.Itoa(ceilSeconds(d.resetAfter)))
}

func ceilSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

const bucketIdleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// bucketSet is the in-process store. Idle buckets are pruned on access, at
// most once per bucketIdleTTL.
type bucketSet struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	now       func() time.Time
	lastPrune time.Time
}

func newBucketSet(now func() time.Time) *bucketSet {
	return &bucketSet{
		buckets:   make(map[string]*bucket),
		now:       now,
		lastPrune: now(),
	}
}

func (s *bucketSet) take(key string, limit redis_rate.Limit) decision {
	now := s.now()
	every := limit.Period / time.Duration(max(limit.Rate, 1))

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastPrune) >= bucketIdleTTL {
		for k, b := range s.buckets {
			if now.Sub(b.lastSeen) >= bucketIdleTTL {
				delete(s.buckets, k)
			}
		}
		s.lastPrune = now
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), max(limit.Burst, 1))}
		s.buckets[key] = b
	}
	b.lastSeen = now

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)

	d := decision{
		allowed:    allowed,
		remaining:  max(int(tokens), 0),
		resetAfter: time.Duration((float64(b.limiter.Burst()) - tokens) * float64(every)),
	}
	if !allowed {
		d.retryAfter = time.Duration((1 - tokens) * float64(every))
	}

	return d
}

// PerWindow builds a limit of rate requests per window. A non-positive
// window means one minute.
func PerWindow(rate, burst int, window time.Duration) redis_rate.Limit {
	if window <= 0 {
		window = time.Minute
	}
	return redis_rate.Limit{
		Rate:   rate,
		Burst:  burst,
		Period: window,
	}
}
