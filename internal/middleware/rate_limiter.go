package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/embunadw/E-Procurement/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const purgeInterval = 5 * time.Minute

// windowEntry counts requests from one IP inside a fixed window.
type windowEntry struct {
	count     int
	windowEnd time.Time
}

// ipLimiter is a per-IP fixed-window counter. Expired entries are purged
// lazily on access so idle IPs do not accumulate.
type ipLimiter struct {
	name    string
	limit   int
	window  time.Duration
	message string
	now     func() time.Time

	mu        sync.Mutex
	entries   map[string]*windowEntry
	nextPurge time.Time
}

func newIPLimiter(name string, limit int, window time.Duration, message string) *ipLimiter {
	return &ipLimiter{
		name:    name,
		limit:   limit,
		window:  window,
		message: message,
		now:     time.Now,
		entries: make(map[string]*windowEntry),
	}
}

// allow records one request from ip and reports whether it is within the
// limit, along with the end of the current window.
func (l *ipLimiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextPurge) {
		l.purge(now)
		l.nextPurge = now.Add(purgeInterval)
	}

	e, ok := l.entries[ip]
	if !ok || now.After(e.windowEnd) {
		e = &windowEntry{windowEnd: now.Add(l.window)}
		l.entries[ip] = e
	}
	e.count++
	return e.count <= l.limit, e.windowEnd
}

// purge must be called with mu held.
func (l *ipLimiter) purge(now time.Time) {
	purged := 0
	for ip, e := range l.entries {
		if now.After(e.windowEnd) {
			delete(l.entries, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().
			Str("limiter", l.name).
			Int("purged", purged).
			Int("remaining", len(l.entries)).
			Msg("rate limiter entries purged")
	}
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", windowEnd.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login and registration attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newIPLimiter("login", 20, time.Minute, "Too many login attempts. Try again in a minute.").handler()
}

// RateLimiter limits general API traffic to limit requests per window per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newIPLimiter("api", limit, window, "Too many requests. Please try again shortly.").handler()
}
