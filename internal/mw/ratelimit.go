package mw

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP. Entries that have
// been idle longer than staleAfter are pruned on lookup.
type IPRateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	r          rate.Limit
	b          int
	staleAfter time.Duration
	lastPrune  time.Time
}

// NewIPRateLimiter creates a new IPRateLimiter.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		clients:    make(map[string]*clientLimiter),
		r:          r,
		b:          b,
		staleAfter: 10 * time.Minute,
		lastPrune:  time.Now(),
	}
}

// Allow reports whether the given IP may proceed.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastPrune) > l.staleAfter {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) > l.staleAfter {
				delete(l.clients, key)
			}
		}
		l.lastPrune = now
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.r, l.b)}
		l.clients[ip] = c
	}
	c.lastSeen = now

	return c.limiter.Allow()
}

// RateLimiter is a middleware for IP-based rate limiting.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewIPRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
