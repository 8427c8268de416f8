package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// RateSource exposes the current simulation rate
type RateSource interface {
	Rate() float64
}

// Delta is the time advanced by one host frame
type Delta struct {
	Wall  time.Duration // Real elapsed time, unaffected by dilation or pause
	Sim   time.Duration // Wall scaled by the simulation rate, zero while paused
	Frame int64
}

// FrameClock measures per-frame wall deltas and derives simulation time from them
// Simulated elapsed = sum over frames of wall delta * rate at that frame
type FrameClock struct {
	mu sync.Mutex

	provider TimeProvider
	rate     RateSource

	lastTick    time.Time
	started     bool
	wallElapsed time.Duration
	simElapsed  time.Duration
	frame       int64

	isPaused atomic.Bool
}

// NewFrameClock creates a clock reading wall time from provider and scaling by rate
// A nil rate source means neutral rate
func NewFrameClock(provider TimeProvider, rate RateSource) *FrameClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &FrameClock{
		provider: provider,
		rate:     rate,
	}
}

// Tick reads the provider and returns the wall delta since the previous tick
// The first tick only establishes the baseline and returns zero
func (fc *FrameClock) Tick() time.Duration {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	now := fc.provider.Now()
	if !fc.started {
		fc.started = true
		fc.lastTick = now
		return 0
	}

	wall := now.Sub(fc.lastTick)
	fc.lastTick = now
	if wall < 0 {
		wall = 0
	}
	return wall
}

// Advance records a frame of wallDt and returns its simulation equivalent
// Must be called after the rate writers have run for the frame, so Sim reflects the rate physics will see
func (fc *FrameClock) Advance(wallDt time.Duration) Delta {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.frame++
	fc.wallElapsed += wallDt

	var sim time.Duration
	if !fc.isPaused.Load() {
		r := 1.0
		if fc.rate != nil {
			r = fc.rate.Rate()
		}
		sim = time.Duration(float64(wallDt) * r)
	}
	fc.simElapsed += sim

	return Delta{Wall: wallDt, Sim: sim, Frame: fc.frame}
}

// Pause freezes simulation time; wall time keeps advancing
func (fc *FrameClock) Pause() {
	fc.isPaused.Store(true)
}

// Resume continues simulation time advancement
func (fc *FrameClock) Resume() {
	fc.isPaused.Store(false)
}

// IsPaused returns current pause state
func (fc *FrameClock) IsPaused() bool {
	return fc.isPaused.Load()
}

// WallElapsed returns total wall time recorded through Advance
func (fc *FrameClock) WallElapsed() time.Duration {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.wallElapsed
}

// SimElapsed returns total simulated time recorded through Advance
func (fc *FrameClock) SimElapsed() time.Duration {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.simElapsed
}

// Frame returns the number of frames advanced
func (fc *FrameClock) Frame() int64 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.frame
}
