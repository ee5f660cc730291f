package worker

import "time"

// RetryPolicy controls backoff between failed export attempts.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    3,
		InitialDelay:  2 * time.Second,
		MaxDelay:      time.Minute,
		BackoffFactor: 2.0,
	}
}

// NextDelay returns the delay before the given attempt, starting from 1.
func (p RetryPolicy) NextDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return p.InitialDelay
	}

	delay := p.InitialDelay
	for i := 1; i < attempt; i++ {
		delay = time.Duration(float64(delay) * p.BackoffFactor)
		if delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return delay
}
