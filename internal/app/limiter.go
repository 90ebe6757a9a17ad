package app

import (
	"sync"

	"golang.org/x/time/rate"
)

// limiter hands out one token bucket per caller name.
type limiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[string]*rate.Limiter
}

// newLimiter returns nil when perSec is not positive.
func newLimiter(perSec float64, burst int) *limiter {
	if perSec <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &limiter{limit: rate.Limit(perSec), burst: burst, buckets: make(map[string]*rate.Limiter)}
}

// Allow reports whether caller may dispatch now. A nil limiter allows all.
func (l *limiter) Allow(caller string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	b, ok := l.buckets[caller]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[caller] = b
	}
	l.mu.Unlock()
	return b.Allow()
}
