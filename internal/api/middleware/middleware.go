// Package middleware carries the cross-cutting HTTP concerns: hardening
// headers, request body caps and the coarse global rate limit that sits in
// front of every endpoint (the per-client write limiter lives in the
// complaint service, where its denial becomes a terminal state).
package middleware

import (
	"math"
	"net/http"
	"sync"
	"time"

	"quejas/backend/internal/obs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// SecurityHeaders sets the usual hardening headers on every response.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "0")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		c.Next()
	}
}

// MaxBodyBytes caps the request body size.
func MaxBodyBytes(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// GlobalRateLimit applies a per-IP token bucket to the whole API. Idle
// buckets are pruned in the background so the map does not grow without
// bound.
func GlobalRateLimit(perSecond, burst int) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
		ttl     = 5 * time.Minute
	)
	ticker := time.NewTicker(time.Minute)
	go func() {
		for range ticker.C {
			now := time.Now()
			mu.Lock()
			for k, b := range buckets {
				if now.Sub(b.seen) > ttl {
					delete(buckets, k)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		start := time.Now()

		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}

		mu.Lock()
		b, ok := buckets[ip]
		if !ok {
			b = &bucket{lim: rate.NewLimiter(rate.Limit(perSecond), burst)}
			buckets[ip] = b
		}
		b.seen = start
		mu.Unlock()

		res := b.lim.Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			if !res.OK() {
				delay = time.Second
			}
			obs.RateLimitDenied()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":      false,
				"message":      "Demasiadas solicitudes. Intente de nuevo más tarde.",
				"retry_after":  int(math.Ceil(delay.Seconds())),
				"timestamp":    time.Now().UTC().Format(time.RFC3339),
				"responseTime": time.Since(start).Milliseconds(),
			})
			return
		}
		c.Next()
	}
}
