package game

import "math"

// baseFramesPerSecond is the host's nominal simulation rate. Regulators
// throttle by frame count, not wall-clock time: if the host ticks away
// from 60Hz the effective update rate drifts with it. That is an
// accepted approximation, matching the rest of the tick-based tuning.
const baseFramesPerSecond = 60.0

// Regulator converts a desired updates-per-second into a per-tick
// "ready" gate. Each subsystem that needs an independent update rate
// (vision, targeting, goal arbitration, weapon selection) owns one.
type Regulator struct {
	interval int // ticks between firings; 0 = always ready
	count    int
}

// NewRegulator creates a regulator firing updatesPerSecond times per
// second at the nominal tick rate. A rate <= 0 disables the throttle:
// Ready always returns true.
func NewRegulator(updatesPerSecond float64) *Regulator {
	r := &Regulator{}
	if updatesPerSecond > 0 {
		r.interval = int(math.Round(baseFramesPerSecond / updatesPerSecond))
		if r.interval < 1 {
			r.interval = 1
		}
	}
	return r
}

// Ready advances the internal counter and reports whether the gated
// subsystem should update this tick.
func (r *Regulator) Ready() bool {
	if r.interval <= 0 {
		return true
	}
	r.count++
	if r.count >= r.interval {
		r.count = 0
		return true
	}
	return false
}

// Reset restarts the count without altering the interval.
func (r *Regulator) Reset() {
	r.count = 0
}
