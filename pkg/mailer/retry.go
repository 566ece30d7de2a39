package mailer

import (
	"errors"
	"time"
)

// Disposition is what the consumer does with a handled delivery.
type Disposition int

const (
	Ack Disposition = iota
	Drop
	Retry
)

func (d Disposition) String() string {
	switch d {
	case Ack:
		return "ack"
	case Drop:
		return "drop"
	case Retry:
		return "retry"
	}
	return "unknown"
}

// RetryPolicy bounds how often and how fast a failed job is redelivered.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 5, BaseDelay: 2 * time.Second, MaxDelay: time.Minute}
}

// Decide maps the result of attempt number attempts (1-based) to a
// disposition and, for Retry, the wait before the job is queued again.
func (p RetryPolicy) Decide(err error, attempts int) (Disposition, time.Duration) {
	switch {
	case err == nil:
		return Ack, 0
	case errors.Is(err, ErrPoisonMessage):
		return Drop, 0
	case attempts >= p.MaxAttempts:
		return Drop, 0
	}
	return Retry, p.backoff(attempts)
}

func (p RetryPolicy) backoff(attempts int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}
