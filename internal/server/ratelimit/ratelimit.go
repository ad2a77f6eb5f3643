// Package ratelimit throttles the expensive local API endpoints (LLM matching,
// PDF compilation, job fetching) with per-client token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket allows capacity requests at once, refilling at refillRate per second
type tokenBucket struct {
	capacity   float64
	refillRate float64
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

func (tb *tokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill).Seconds()
	if elapsed > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+elapsed*tb.refillRate)
		tb.lastRefill = now
	}
}

// take consumes a token if one is available
func (tb *tokenBucket) take(now time.Time) bool {
	tb.refill(now)
	tb.lastAccess = now
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// untilNext is how long until one whole token is available
func (tb *tokenBucket) untilNext() time.Duration {
	if tb.tokens >= 1 || tb.refillRate <= 0 {
		return 0
	}
	return time.Duration((1 - tb.tokens) / tb.refillRate * float64(time.Second))
}

// Info describes the limit applied to one request
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Config configures a Limiter
type Config struct {
	Enabled bool
	// Rules are checked in order; requests matching none are not limited
	Rules []Rule
	// IdleTTL drops buckets that have not been used for this long
	IdleTTL time.Duration
}

// DefaultConfig limits the endpoints that spend money or CPU
func DefaultConfig() *Config {
	return &Config{Enabled: true, Rules: DefaultRules(), IdleTTL: time.Hour}
}

// Limiter tracks buckets per client and rule
type Limiter struct {
	mu      sync.Mutex
	config  *Config
	buckets map[string]*tokenBucket
	now     func() time.Time
}

// NewLimiter creates a limiter; nil config means DefaultConfig
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Limiter{
		config:  config,
		buckets: make(map[string]*tokenBucket),
		now:     time.Now,
	}
}

// Allow reports whether clientID may make a method request to path
func (l *Limiter) Allow(clientID, method, path string) Info {
	if !l.config.Enabled {
		return Info{Allowed: true}
	}
	rule := MatchRule(method, path, l.config.Rules)
	if rule == nil || rule.Limit <= 0 {
		return Info{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := clientID + " " + rule.Method + " " + rule.Pattern
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = newTokenBucket(rule.burst(), float64(rule.Limit)/rule.Window.Seconds(), now)
		l.buckets[key] = bucket
	}

	allowed := bucket.take(now)
	info := Info{Allowed: allowed, Limit: rule.Limit, Remaining: int(bucket.tokens)}
	if !allowed {
		info.RetryAfter = bucket.untilNext()
	}
	return info
}

// Sweep drops idle buckets and returns how many were removed
func (l *Limiter) Sweep() int {
	if l.config.IdleTTL <= 0 {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.config.IdleTTL)
	removed := 0
	for key, bucket := range l.buckets {
		if bucket.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Run sweeps idle buckets every interval until stop is closed
func (l *Limiter) Run(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-stop:
			return
		}
	}
}
