package core

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff"
)

var errNotYet = errors.New("condition not met")

// deadlineBackOff is a constant backoff whose last wait is cut short to end
// at the deadline, so the final check runs when the timeout expires.
type deadlineBackOff struct {
	interval time.Duration
	deadline time.Time
}

func (b *deadlineBackOff) Reset() {}

func (b *deadlineBackOff) NextBackOff() time.Duration {
	remaining := time.Until(b.deadline)
	if remaining <= 0 {
		return backoff.Stop
	}
	if b.interval <= 0 || remaining < b.interval {
		return remaining
	}
	return b.interval
}

// Poll checks cond, then again every interval until it holds or timeout
// elapses. The last check runs at the timeout, never before it.
// A non-positive timeout checks once.
func Poll(timeout, interval time.Duration, cond func() bool) bool {
	if cond() {
		return true
	}
	if timeout <= 0 {
		return false
	}

	b := &deadlineBackOff{interval: interval, deadline: time.Now().Add(timeout)}
	err := backoff.Retry(func() error {
		if cond() {
			return nil
		}
		return errNotYet
	}, b)
	return err == nil
}
