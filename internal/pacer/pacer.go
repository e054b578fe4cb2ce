// Package pacer spaces out calls to remote services with per-key token
// buckets.
package pacer

import (
	"context"
	"sync"
	"time"
)

// Pacer hands out one token per interval for each key, with up to burst
// tokens saved up. Callers that find the bucket empty reserve a future token
// and wait for it.
type Pacer struct {
	interval time.Duration
	burst    float64
	buckets  sync.Map // map[string]*bucket

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

type bucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

// New creates a Pacer. A non-positive interval disables pacing; burst is at
// least 1.
func New(interval time.Duration, burst int) *Pacer {
	if burst < 1 {
		burst = 1
	}
	return &Pacer{
		interval: interval,
		burst:    float64(burst),
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Wait blocks until a token for key is available or ctx is done.
func (p *Pacer) Wait(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.interval <= 0 {
		return nil
	}
	d := p.getBucket(key).reserve(p.now())
	if d <= 0 {
		return nil
	}
	return p.sleep(ctx, d)
}

func (p *Pacer) getBucket(key string) *bucket {
	val, _ := p.buckets.LoadOrStore(key, &bucket{
		tokens:     p.burst,
		maxTokens:  p.burst,
		refillRate: 1 / p.interval.Seconds(),
		lastRefill: p.now(),
	})
	return val.(*bucket)
}

func (b *bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * b.refillRate
		if b.tokens > b.maxTokens {
			b.tokens = b.maxTokens
		}
		b.lastRefill = now
	}
}

// reserve takes a token, going into debt when the bucket is empty, and
// returns how long the caller must wait before using it.
func (b *bucket) reserve(now time.Time) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)
	b.tokens--
	if b.tokens >= 0 {
		return 0
	}
	return time.Duration(-b.tokens / b.refillRate * float64(time.Second))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
