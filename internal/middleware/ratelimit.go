package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ClientLimiter applies a token bucket per client key and periodically evicts idle entries.
type ClientLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu    sync.Mutex
	byKey map[string]*limiterEntry
	hits  uint64
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter returns nil when rps or burst is not positive, which disables limiting.
func NewClientLimiter(rps float64, burst int, idleTTL time.Duration) *ClientLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &ClientLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		byKey:   make(map[string]*limiterEntry),
	}
}

// Reserve consumes one token for key at now. When the bucket is empty it returns
// false and the whole seconds to wait.
func (l *ClientLimiter) Reserve(key string, now time.Time) (bool, int) {
	if l == nil {
		return true, 0
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.byKey[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.byKey[key] = e
	}
	e.lastSeen = now

	l.hits++
	if l.hits%512 == 0 {
		cutoff := now.Add(-l.idleTTL)
		for k, v := range l.byKey {
			if v.lastSeen.Before(cutoff) {
				delete(l.byKey, k)
			}
		}
	}

	if e.limiter.AllowN(now, 1) {
		return true, 0
	}

	r := e.limiter.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)

	return false, int(math.Ceil(wait.Seconds()))
}

// RateLimit rejects requests over the per-client budget with 429 and a Retry-After hint.
func RateLimit(l *ClientLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retryAfter := l.Reserve(c.ClientIP(), time.Now())
		if ok {
			c.Next()
			return
		}

		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	}
}
