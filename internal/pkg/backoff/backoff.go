// Package backoff implements the retry policy clients wrap around calls that
// can fail with transient unavailability. Terminal business conflicts must be
// excluded via the retryable predicate.
package backoff

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"time"
)

type Policy struct {
	BaseDelay   time.Duration
	Multiplier  float64
	MaxAttempts int
	Jitter      bool
}

func DefaultPolicy() Policy {
	return Policy{
		BaseDelay:   100 * time.Millisecond,
		Multiplier:  2.0,
		MaxAttempts: 4,
		Jitter:      true,
	}
}

// Retry runs fn until it succeeds, returns a non-retryable error, the attempt
// budget is spent, or ctx is done. The last error is returned unwrapped so
// callers can still categorize it with errors.Is.
func (p Policy) Retry(ctx context.Context, fn func(ctx context.Context) error, retryable func(error) bool) error {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}

	var lastErr error
	delay := p.BaseDelay

	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			wait := delay
			if p.Jitter {
				wait += time.Duration(cryptoRandInt63n(int64(delay / 5)))
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			delay = time.Duration(float64(delay) * p.Multiplier)
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- high bit masked off above
	return int64(uval) % n
}
