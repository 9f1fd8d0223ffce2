package game

import "time"

const (
	defaultTickRate = 20

	// maxBurst caps the ticks one Advance may run; older backlog is dropped.
	maxBurst = 10
)

// FixedStep turns wall-clock time into whole simulation ticks.
type FixedStep struct {
	step time.Duration
	acc  time.Duration
	next time.Time
}

// NewFixedStep creates a clock running rate ticks per second.
func NewFixedStep(rate int) *FixedStep {
	if rate <= 0 {
		rate = defaultTickRate
	}
	return &FixedStep{step: time.Second / time.Duration(rate)}
}

// Step is the duration of one tick.
func (f *FixedStep) Step() time.Duration {
	return f.step
}

// Advance accumulates elapsed time and returns the number of whole ticks due.
// The remainder carries over to the next call.
func (f *FixedStep) Advance(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	f.acc += elapsed
	n := int(f.acc / f.step)
	if n > maxBurst {
		// Hitch: run a bounded burst and resync instead of spiralling.
		f.acc = 0
		return maxBurst
	}
	f.acc -= time.Duration(n) * f.step
	return n
}

// Wait blocks until the next tick boundary.
// Uses a hybrid sleep/spin approach for better precision at high tick rates.
func (f *FixedStep) Wait() {
	if f.next.IsZero() {
		f.next = time.Now().Add(f.step)
	} else {
		f.next = f.next.Add(f.step)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// If we're significantly late, resync to avoid drift
	if late := -time.Until(f.next); late > f.step {
		f.next = time.Now().Add(f.step)
	}
}
