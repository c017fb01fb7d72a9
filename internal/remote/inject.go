package remote

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// ErrInjected is the failure produced by an Injector
var ErrInjected = errors.New("injected failure")

// Injector simulates a slow or flaky backend. The zero value adds no delay
// and never fails.
type Injector struct {
	Latency     time.Duration
	FailureRate float64 // 0..1

	// Roll returns a value in [0,1); nil uses math/rand.
	Roll func() float64
}

// Wait sleeps for the configured latency, then fails with ErrInjected with
// probability FailureRate. It returns ctx.Err() if ctx ends first.
func (in *Injector) Wait(ctx context.Context) error {
	if in == nil {
		return ctx.Err()
	}
	if in.Latency > 0 {
		t := time.NewTimer(in.Latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	if in.FailureRate > 0 && in.roll() < in.FailureRate {
		return ErrInjected
	}
	return nil
}

func (in *Injector) roll() float64 {
	if in.Roll != nil {
		return in.Roll()
	}
	return rand.Float64()
}
