package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/peerpay/peerledger/internal/infrastructure/metrics"
	"github.com/peerpay/peerledger/internal/usecase"
)

// KeyFunc derives the rate limit key from a request. Transfer endpoints
// key per actor, read endpoints per client IP.
type KeyFunc func(r *http.Request) string

// KeyByActor keys on the verified actor identity, falling back to the
// client IP for unauthenticated requests.
func KeyByActor(r *http.Request) string {
	if actorID, ok := ActorFromContext(r.Context()); ok {
		return "user:" + actorID
	}
	return "ip:" + getIP(r)
}

// KeyByIP keys on the client IP.
func KeyByIP(r *http.Request) string {
	return "ip:" + getIP(r)
}

// RateLimiter enforces fixed-window limits backed by an injected
// counting service, so limits hold across replicas and restarts instead
// of living in process-wide mutable state. If the counting service is
// unreachable it falls back to a local token bucket per key rather than
// failing open entirely.
type RateLimiter struct {
	counter usecase.Counter
	limit   int64
	window  time.Duration
	scope   string
	keyFn   KeyFunc
	metrics *metrics.Metrics
	logger  zerolog.Logger

	mu       sync.Mutex
	fallback map[string]*rate.Limiter
}

// NewRateLimiter creates a rate limiter for one scope ("transfer",
// "read").
func NewRateLimiter(counter usecase.Counter, limit int, window time.Duration, scope string, keyFn KeyFunc, m *metrics.Metrics, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		counter:  counter,
		limit:    int64(limit),
		window:   window,
		scope:    scope,
		keyFn:    keyFn,
		metrics:  m,
		logger:   logger,
		fallback: make(map[string]*rate.Limiter),
	}
}

// Limit is a middleware that enforces the configured limit.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.scope + ":" + rl.keyFn(r)

		count, retryAfter, err := rl.counter.Incr(r.Context(), key, rl.window)
		if err != nil {
			rl.logger.Warn().Err(err).Str("scope", rl.scope).Msg("rate limit counter unavailable, using local fallback")

			if !rl.fallbackAllow(key) {
				rl.reject(w, rl.window)
				return
			}

			next.ServeHTTP(w, r)
			return
		}

		if count > rl.limit {
			rl.reject(w, retryAfter)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) reject(w http.ResponseWriter, retryAfter time.Duration) {
	rl.metrics.RateLimitHits.WithLabelValues(rl.scope).Inc()

	seconds := int(retryAfter.Seconds())
	if seconds < 1 {
		seconds = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	w.Write([]byte(`{"error":"RATE_LIMITED","message":"rate limit exceeded"}`))
}

func (rl *RateLimiter) fallbackAllow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.fallback[key]
	if !ok {
		perSecond := rate.Limit(float64(rl.limit) / rl.window.Seconds())
		limiter = rate.NewLimiter(perSecond, int(rl.limit))
		rl.fallback[key] = limiter
	}

	return limiter.Allow()
}

// getIP extracts the client IP from the request.
func getIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}
