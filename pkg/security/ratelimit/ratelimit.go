package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// idleTTL is how long an unused limiter is kept before it is swept.
const idleTTL = 10 * time.Minute

// Limiter keeps a token bucket per key.
type Limiter struct {
	mu      sync.Mutex
	every   rate.Limit
	burst   int
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// PerMinute allows n requests per minute per key with a burst of n.
// n <= 0 disables limiting.
func PerMinute(n int) *Limiter {
	l := &Limiter{buckets: make(map[string]*bucket), now: time.Now}
	if n <= 0 {
		l.every = rate.Inf
		l.burst = 1
		return l
	}
	l.every = rate.Every(time.Minute / time.Duration(n))
	l.burst = n
	return l
}

// Allow reports whether key may proceed now.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		l.sweep(now)
		b = &bucket{lim: rate.NewLimiter(l.every, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim.AllowN(now, 1)
}

func (l *Limiter) sweep(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > idleTTL {
			delete(l.buckets, k)
		}
	}
}

// Middleware limits requests keyed by keyFn (falls back to client IP).
func (l *Limiter) Middleware(keyFn func(*fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := ""
		if keyFn != nil {
			key = keyFn(c)
		}
		if key == "" {
			key = c.IP()
		}
		if !l.Allow(key) {
			return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{"message": "too many requests, slow down"})
		}
		return c.Next()
	}
}
