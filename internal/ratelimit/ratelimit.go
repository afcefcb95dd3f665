// Package ratelimit implements the fixed-window request limiter that gates
// write endpoints. State is process-local and in-memory: it resets on
// restart and is not shared between replicas. That is a known limitation of
// the deployment model, not something this package tries to solve.
package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter caps the number of requests a client may issue inside a fixed
// window. Construct one per process with New; tests get isolated instances
// the same way.
type Limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	clients map[string]*entry
}

// New returns a Limiter allowing max requests per window for each client id.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  window,
		clients: make(map[string]*entry),
	}
}

// Allow reports whether the client may proceed at the given instant, and
// counts the request when it may. The check-and-increment runs under the
// limiter mutex so concurrent requests for one client never lose counts.
func (l *Limiter) Allow(clientID string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.clients[clientID]
	if !ok || now.After(e.resetAt) {
		l.clients[clientID] = &entry{count: 1, resetAt: now.Add(l.window)}
		return true
	}
	if e.count < l.max {
		e.count++
		return true
	}
	return false
}

// RetryAfter returns how long the client has to wait before the window
// resets. Zero means the client is not currently throttled.
func (l *Limiter) RetryAfter(clientID string, now time.Time) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.clients[clientID]
	if !ok || now.After(e.resetAt) || e.count < l.max {
		return 0
	}
	return e.resetAt.Sub(now)
}

// Prune drops expired entries. The server calls this periodically so the
// map does not grow with every IP ever seen.
func (l *Limiter) Prune(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, e := range l.clients {
		if now.After(e.resetAt) {
			delete(l.clients, id)
		}
	}
}
