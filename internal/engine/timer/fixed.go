package timer

// MaxSteps bounds how many fixed updates one Advance can ask for, so a long
// stall does not cascade into ever longer frames.
const MaxSteps = 5

// FixedStep accumulates frame time and releases it in whole steps.
type FixedStep struct {
	Step float32
	acc  float32
}

// NewFixedStep returns an accumulator with the given step in seconds.
// A non-positive step falls back to FixedDelta.
func NewFixedStep(step float32) *FixedStep {
	if step <= 0 {
		step = FixedDelta
	}
	return &FixedStep{Step: step}
}

// Advance adds dt and returns how many fixed steps should run now. A backlog
// still owed after MaxSteps is dropped; a partial step is kept.
func (f *FixedStep) Advance(dt float32) int {
	if dt > 0 {
		f.acc += dt
	}
	n := 0
	for f.acc >= f.Step && n < MaxSteps {
		f.acc -= f.Step
		n++
	}
	if f.acc >= f.Step {
		f.acc = 0
	}
	return n
}
