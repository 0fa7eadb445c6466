package task

import (
	"context"
	"crypto/rand"
	"errors"
	"math"
	"math/big"
	"time"
)

// RetryPolicy shapes the jittered exponential backoff between attempts of a
// failing task.
type RetryPolicy struct {
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultRetryPolicy is the backoff used by the serve command's runner.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		BaseDelay: 500 * time.Millisecond,
		MaxDelay:  30 * time.Second,
	}
}

// ShouldRetry decides whether the attempt that produced err is worth
// repeating. attempt is 1-based; maxAttempts comes from the task. Context
// cancellation is never retried.
func (p RetryPolicy) ShouldRetry(err error, attempt, maxAttempts int) bool {
	if err == nil {
		return false
	}
	if attempt >= maxAttempts {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// Backoff returns the wait before the next attempt: half the capped
// exponential delay plus a random jitter up to the other half.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	delay := float64(p.BaseDelay) * math.Pow(2, float64(attempt-1))
	if delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}
	half := time.Duration(delay / 2)
	return half + randomJitter(half)
}

func randomJitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(limit)))
	if err != nil {
		return limit / 2
	}
	return time.Duration(n.Int64())
}
