package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/aitoolbox/gatekeeper/internal/httputil"
)

// ipRateLimiter tracks a token bucket per client IP. Entries unused for
// staleAfter are dropped on the fly to keep the map bounded.
type ipRateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*limiterEntry
	limit      rate.Limit
	burst      int
	staleAfter time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPRateLimiter(requestsPerSec float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters:   make(map[string]*limiterEntry),
		limit:      rate.Limit(requestsPerSec),
		burst:      burst,
		staleAfter: 10 * time.Minute,
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > l.staleAfter {
			delete(l.limiters, key)
		}
	}

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now

	return entry.limiter.Allow()
}

// RateLimitMiddleware limits requests per client IP. The moderation endpoint
// is unauthenticated, so this is its only throttle against token guessing.
func RateLimitMiddleware(requestsPerSec float64, burst int) gin.HandlerFunc {
	limiter := newIPRateLimiter(requestsPerSec, burst)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.ErrorResponse{
				Error:   "too_many_requests",
				Message: "Rate limit exceeded, try again later",
			})
			return
		}
		c.Next()
	}
}
