package middleware

import (
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jodylarsen/CareConnect/internal/config"
)

// RateLimit limits each client IP to cfg.RequestsPerMinute with bursts of
// cfg.BurstSize. A non-positive rate disables limiting. State is per process.
func RateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.RequestsPerMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := NewSimpleRateLimiter(cfg.RequestsPerMinute, cfg.BurstSize)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)
			if !limiter.Allow(clientIP) {
				log.Warn().
					Str("client_ip", clientIP).
					Str("path", r.URL.Path).
					Msg("Rate limit exceeded")

				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "RATE_LIMIT", "Rate limit exceeded. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the real client IP address
func getClientIP(r *http.Request) string {
	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		if i := strings.IndexByte(forwardedFor, ','); i > 0 {
			return strings.TrimSpace(forwardedFor[:i])
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// SimpleRateLimiter is a token bucket per client
type SimpleRateLimiter struct {
	mu                sync.Mutex
	requestsPerMinute int
	burstSize         int
	clients           map[string]*clientLimit
	now               func() time.Time
}

type clientLimit struct {
	tokens     float64
	lastRefill time.Time
}

func NewSimpleRateLimiter(requestsPerMinute, burstSize int) *SimpleRateLimiter {
	if burstSize <= 0 {
		burstSize = 1
	}
	return &SimpleRateLimiter{
		requestsPerMinute: requestsPerMinute,
		burstSize:         burstSize,
		clients:           make(map[string]*clientLimit),
		now:               time.Now,
	}
}

func (rl *SimpleRateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	client, ok := rl.clients[clientIP]
	if !ok {
		client = &clientLimit{tokens: float64(rl.burstSize), lastRefill: now}
		rl.clients[clientIP] = client
	}

	elapsed := now.Sub(client.lastRefill)
	client.tokens = math.Min(client.tokens+elapsed.Minutes()*float64(rl.requestsPerMinute), float64(rl.burstSize))
	client.lastRefill = now

	if client.tokens >= 1 {
		client.tokens--
		return true
	}
	return false
}
