package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// NominatimInterval is the minimum spacing the public Nominatim usage
// policy allows between requests from one client, plus headroom.
const NominatimInterval = 1100 * time.Millisecond

// Throttle guarantees a minimum interval between permitted calls. One
// instance is shared by every caller of a rate-limited upstream; it is safe
// for concurrent use.
//
// The limiter alone spaces reservations, not the moments callers actually
// proceed, so a late wake-up could be followed by an on-time one. Wait
// therefore also measures from the time the previous permit was granted.
type Throttle struct {
	limiter  *rate.Limiter
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewThrottle creates a throttle that permits one call per interval. A
// non-positive interval disables throttling.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		return &Throttle{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Throttle{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
	}
}

// Wait blocks until the next call is permitted or ctx is done. A permit is
// never granted less than the interval after the previous one.
func (t *Throttle) Wait(ctx context.Context) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "throttle: wait")
	}
	if t.interval <= 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.last.IsZero() {
		if remaining := t.interval - time.Since(t.last); remaining > 0 {
			timer := time.NewTimer(remaining)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return eris.Wrap(ctx.Err(), "throttle: wait")
			case <-timer.C:
			}
		}
	}
	t.last = time.Now()
	return nil
}

// Interval returns the configured minimum spacing.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}
