package physics

import (
	"time"
)

// StepSource supplies the current fixed step (baseStep * simulation rate)
type StepSource interface {
	FixedStep() time.Duration
}

// Stepper is a fixed-step accumulator fed with simulated time
// The step is re-read from the source before every step, so a rate change mid-frame
// takes effect on the next step
type Stepper struct {
	source   StepSource
	maxSteps int
	acc      time.Duration
	dropped  time.Duration
}

// NewStepper creates a stepper; maxSteps caps steps per Advance (<= 0 means unlimited)
func NewStepper(source StepSource, maxSteps int) *Stepper {
	return &Stepper{
		source:   source,
		maxSteps: maxSteps,
	}
}

// Advance accumulates simDt and runs step for every whole fixed step available
// Returns the number of steps executed
func (s *Stepper) Advance(simDt time.Duration, step func(dt time.Duration)) int {
	s.acc += simDt
	n := 0
	for {
		dt := s.source.FixedStep()
		if dt <= 0 || s.acc < dt {
			break
		}
		if s.maxSteps > 0 && n >= s.maxSteps {
			// Spiral-of-death guard: discard the backlog
			s.dropped += s.acc
			s.acc = 0
			break
		}
		step(dt)
		s.acc -= dt
		n++
	}
	return n
}

// Alpha returns the fraction of a step left in the accumulator, for render interpolation
func (s *Stepper) Alpha() float64 {
	dt := s.source.FixedStep()
	if dt <= 0 {
		return 0
	}
	return float64(s.acc) / float64(dt)
}

// Dropped returns total simulated time discarded by the step cap
func (s *Stepper) Dropped() time.Duration {
	return s.dropped
}

// Reset clears the accumulator
func (s *Stepper) Reset() {
	s.acc = 0
}
