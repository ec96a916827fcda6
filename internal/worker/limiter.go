package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter caps outbound LLM request rates per provider. Every chunk
// extraction and alignment call waits on it before hitting the
// network, so a large document can't burst past the service quota.
type Limiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewLimiter creates a limiter allowing requestsPerSecond sustained
// with the given burst.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}

	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Wait blocks until the named provider may send another request, or
// until ctx is done.
func (l *Limiter) Wait(ctx context.Context, provider string) error {
	return l.get(provider).Wait(ctx)
}

// Allow reports whether a request to the named provider may proceed
// right now, without waiting.
func (l *Limiter) Allow(provider string) bool {
	return l.get(provider).Allow()
}

func (l *Limiter) get(provider string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limiters[provider]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.limiters[provider]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.rps, l.burst)
	l.limiters[provider] = lim
	return lim
}
