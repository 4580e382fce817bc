// Package ratelimit provides per-client token bucket rate limiting for the dashboard API.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket refills at a steady rate up to its capacity.
type tokenBucket struct {
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

func newTokenBucket(capacity int, refillRate float64, now time.Time) *tokenBucket {
	return &tokenBucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastAccess: now,
	}
}

func (b *tokenBucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(b.capacity, b.tokens+elapsed*b.refillRate)
	b.lastRefill = now
}

// take consumes a token if one is available and reports how long until the next one.
func (b *tokenBucket) take(now time.Time) (bool, time.Duration) {
	b.refill(now)
	b.lastAccess = now
	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	wait := (1 - b.tokens) / b.refillRate
	return false, time.Duration(wait * float64(time.Second))
}

// Decision describes the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter tracks one bucket per client and rule.
type Limiter struct {
	config  Config
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*tokenBucket

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewLimiter creates a limiter and starts its idle-bucket sweeper.
// Callers must Stop it.
func NewLimiter(config Config) *Limiter {
	return newLimiter(config, time.Now)
}

func newLimiter(config Config, now func() time.Time) *Limiter {
	l := &Limiter{
		config:  config,
		now:     now,
		buckets: make(map[string]*tokenBucket),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.sweep()
	} else {
		close(l.done)
	}
	return l
}

// Allow reports whether the client may call method+path now. Requests not
// covered by a rule are always allowed.
func (l *Limiter) Allow(clientID, method, path string) Decision {
	if !l.config.Enabled {
		return Decision{Allowed: true}
	}
	rule := l.config.match(method, path)
	if rule == nil || rule.Limit <= 0 || rule.Window <= 0 {
		return Decision{Allowed: true}
	}

	now := l.now()
	key := clientID + " " + method + " " + path

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		burst := rule.Burst
		if burst <= 0 {
			burst = rule.Limit
		}
		b = newTokenBucket(burst, float64(rule.Limit)/rule.Window.Seconds(), now)
		l.buckets[key] = b
	}

	allowed, wait := b.take(now)
	return Decision{
		Allowed:    allowed,
		Limit:      rule.Limit,
		Remaining:  int(b.tokens),
		RetryAfter: wait,
	}
}

func (l *Limiter) sweep() {
	defer close(l.done)
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictIdle()
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops buckets unused for longer than IdleTTL.
func (l *Limiter) evictIdle() {
	cutoff := l.now().Add(-l.config.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the sweeper and waits for it to exit. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
	<-l.done
}
