package ratelimit

import (
	"context"
	"sync"
	"time"
)

type clientRecord struct {
	count        int
	windowStart  time.Time
	blockedUntil time.Time
}

// Limiter admits at most max requests per client in each window. A client
// that goes over is refused until its block expires.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*clientRecord
	max     int
	window  time.Duration
	block   time.Duration
	now     func() time.Time
}

func New(max int, window, block time.Duration) *Limiter {
	return &Limiter{
		clients: make(map[string]*clientRecord),
		max:     max,
		window:  window,
		block:   block,
		now:     time.Now,
	}
}

// Allow records a request from clientID. When the request is refused the
// second value is how long the client should wait.
func (l *Limiter) Allow(clientID string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.clients[clientID]
	if !ok {
		rec = &clientRecord{windowStart: now}
		l.clients[clientID] = rec
	}

	if now.Before(rec.blockedUntil) {
		return false, rec.blockedUntil.Sub(now)
	}
	if now.Sub(rec.windowStart) >= l.window {
		rec.count = 0
		rec.windowStart = now
	}

	rec.count++
	if rec.count > l.max {
		rec.blockedUntil = now.Add(l.block)
		return false, l.block
	}
	return true, 0
}

func (l *Limiter) Reset(clientID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.clients, clientID)
}

// Prune drops clients that are neither blocked nor inside their window.
func (l *Limiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for id, rec := range l.clients {
		if now.Sub(rec.windowStart) >= l.window && !now.Before(rec.blockedUntil) {
			delete(l.clients, id)
			removed++
		}
	}
	return removed
}

// Run prunes on every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Prune()
		}
	}
}

func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
