// Package ratelimit implements a per-client token bucket limiter with
// background eviction of idle clients.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter allows max requests per window for each key, refilling
// continuously. It is safe for concurrent use. Close stops the cleanup
// goroutine.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time

	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type Option func(*Limiter)

// WithClock replaces time.Now. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New returns a limiter granting max requests per window to every key. A
// client idle for a whole window has a full bucket again, so its state can
// be dropped after that long.
func New(max int, window time.Duration, opts ...Option) *Limiter {
	if max < 1 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	l := &Limiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(max) / window.Seconds()),
		burst:    max,
		idleTTL:  window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	for _, o := range opts {
		o(l)
	}

	l.wg.Add(1)
	go l.cleanupLoop()

	return l
}

// Allow reports whether a request from key may proceed and consumes a
// token if so.
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// Len is the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// Cleanup evicts clients idle for longer than the window.
func (l *Limiter) Cleanup() {
	cutoff := l.now().Add(-l.idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
		}
	}
}

func (l *Limiter) Close() {
	l.closeOnce.Do(func() {
		close(l.stop)
		l.wg.Wait()
	})
}

func (l *Limiter) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}
