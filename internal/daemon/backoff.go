package daemon

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultReconnectDelay is the fixed delay between bus reconnect attempts.
const DefaultReconnectDelay = 10 * time.Second

// NewBackOff returns the reconnect pacing. With exponential unset every
// attempt waits delay. Otherwise the delay doubles per failed attempt up to
// maxDelay. Neither variant ever stops.
func NewBackOff(delay, maxDelay time.Duration, exponential bool) backoff.BackOff {
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	if !exponential {
		return backoff.NewConstantBackOff(delay)
	}
	if maxDelay < delay {
		maxDelay = delay
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = delay
	b.MaxInterval = maxDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}
