// Package cooldown provides per-key rate limiting for command dispatch.
// Each key (typically "command:user") gets its own token bucket, created on
// first use. Buckets that stay idle are pruned lazily so the registry does
// not grow without bound on busy servers.
package cooldown

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Registry tracks one limiter per key. Safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	every   time.Duration
	burst   int

	idleAfter time.Duration
	lastPrune time.Time
}

// New creates a Registry that allows burst invocations per key, refilling
// one every interval.
func New(every time.Duration, burst int) *Registry {
	if burst < 1 {
		burst = 1
	}
	return &Registry{
		buckets:   make(map[string]*bucket),
		every:     every,
		burst:     burst,
		idleAfter: 10 * every,
		lastPrune: time.Now(),
	}
}

// Allow reports whether the key may proceed now, consuming a token if so.
func (r *Registry) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.pruneLocked(now)

	b, ok := r.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(r.every), r.burst)}
		r.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.Allow()
}

// Retry returns how long the key has to wait before Allow would succeed.
// Zero means it may proceed immediately.
func (r *Registry) Retry(key string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.buckets[key]
	if !ok {
		return 0
	}
	res := b.limiter.Reserve()
	delay := res.Delay()
	res.Cancel()
	return delay
}

// Reset forgets the key's bucket entirely.
func (r *Registry) Reset(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.buckets, key)
}

// Len returns the number of live buckets.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buckets)
}

func (r *Registry) pruneLocked(now time.Time) {
	if now.Sub(r.lastPrune) < r.idleAfter {
		return
	}
	for key, b := range r.buckets {
		if now.Sub(b.lastSeen) > r.idleAfter {
			delete(r.buckets, key)
		}
	}
	r.lastPrune = now
}
