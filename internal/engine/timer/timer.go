// Package timer provides countdown timers and a fixed-step accumulator for
// frame-rate independent updates.
package timer

// FixedDelta is the default fixed update step: 60 updates per second.
const FixedDelta float32 = 1.0 / 60.0

// Timer counts elapsed seconds until a duration is reached.
type Timer struct {
	elapsed  float32
	duration float32
	finished bool
}

// New returns a timer that finishes after the given number of seconds.
func New(seconds float32) *Timer {
	return &Timer{duration: seconds}
}

// Update advances the timer by dt seconds. A finished timer stops counting.
func (t *Timer) Update(dt float32) {
	if t.finished {
		return
	}
	t.elapsed += dt
	if t.elapsed >= t.duration {
		t.finished = true
	}
}

// Finished reports whether the duration has been reached.
func (t *Timer) Finished() bool {
	return t.finished
}

// Elapsed returns the seconds counted so far.
func (t *Timer) Elapsed() float32 {
	return t.elapsed
}

// Duration returns the configured duration in seconds.
func (t *Timer) Duration() float32 {
	return t.duration
}

// Reset rewinds the timer to zero.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
}
