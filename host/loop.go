// Package host runs the per-frame update order that time dilation depends on
//
// Each frame:
//  1. queued events are routed (zone entries reach the controllers first)
//  2. actors advance by the wall-clock delta and write the rate register
//  3. the simulation delta is derived from the freshly written rate
//  4. physics runs fixed steps of baseStep*rate; trigger zones emit into the queue
//  5. frame callbacks run (audio pitch, rendering)
//
// Zone events emitted in step 4 are routed at step 1 of the next frame
package host

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/slowmo/clock"
	"github.com/lixenwraith/slowmo/event"
	"github.com/lixenwraith/slowmo/parameter"
	"github.com/lixenwraith/slowmo/physics"
	"github.com/lixenwraith/slowmo/status"
	"github.com/lixenwraith/slowmo/timescale"
)

// Actor is a frame-updated participant that can be torn down
type Actor interface {
	event.Handler

	// Update advances the actor by real elapsed time
	Update(wallDt time.Duration)

	// Deactivate forces the actor's effects off; must be idempotent
	Deactivate()
}

// FrameFunc runs at the end of every frame
type FrameFunc func(d clock.Delta)

// Loop owns the frame order
// Frame and Run must be called from one goroutine
type Loop struct {
	queue    *event.EventQueue
	router   *event.Router
	reg      *timescale.Register
	clock    *clock.FrameClock
	world    *physics.World
	stepper  *physics.Stepper
	maxDelta time.Duration

	actors    []Actor
	callbacks []FrameFunc

	statFrames  *atomic.Int64
	statSteps   *atomic.Int64
	statEvents  *atomic.Int64
	statDropped *atomic.Int64
	statSim     *status.AtomicFloat
}

// Option configures a Loop
type Option func(*loopOptions)

type loopOptions struct {
	queue    *event.EventQueue
	provider clock.TimeProvider
	stats    *status.Registry
	maxSteps int
	maxDelta time.Duration
}

// WithQueue shares an event queue with zone triggers and controllers
func WithQueue(q *event.EventQueue) Option {
	return func(o *loopOptions) { o.queue = q }
}

// WithTimeProvider sets the wall-clock source used by Run
func WithTimeProvider(p clock.TimeProvider) Option {
	return func(o *loopOptions) { o.provider = p }
}

// WithStatus publishes loop metrics into reg
func WithStatus(reg *status.Registry) Option {
	return func(o *loopOptions) { o.stats = reg }
}

// WithMaxSteps caps physics steps per frame
func WithMaxSteps(n int) Option {
	return func(o *loopOptions) { o.maxSteps = n }
}

// WithMaxDelta clamps the wall delta fed to the simulation clock, <= 0 disables clamping
// Actors always receive the unclamped delta so wall-clock deadlines stay exact
func WithMaxDelta(d time.Duration) Option {
	return func(o *loopOptions) { o.maxDelta = d }
}

// NewLoop creates a loop stepping world at the rate held by reg; world may be nil
func NewLoop(reg *timescale.Register, world *physics.World, opts ...Option) *Loop {
	o := loopOptions{
		maxSteps: parameter.MaxPhysicsStepsPerFrame,
		maxDelta: parameter.MaxFrameDelta,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.queue == nil {
		o.queue = event.NewEventQueue()
	}
	if o.stats == nil {
		o.stats = status.NewRegistry()
	}

	return &Loop{
		queue:       o.queue,
		router:      event.NewRouter(o.queue),
		reg:         reg,
		clock:       clock.NewFrameClock(o.provider, reg),
		world:       world,
		stepper:     physics.NewStepper(reg, o.maxSteps),
		maxDelta:    o.maxDelta,
		statFrames:  o.stats.Ints.Get("host.frames"),
		statSteps:   o.stats.Ints.Get("physics.steps"),
		statEvents:  o.stats.Ints.Get("host.events"),
		statDropped: o.stats.Ints.Get("physics.dropped_ms"),
		statSim:     o.stats.Floats.Get("host.sim_seconds"),
	}
}

// Queue returns the loop's event queue
func (l *Loop) Queue() *event.EventQueue {
	return l.queue
}

// Clock returns the frame clock
func (l *Loop) Clock() *clock.FrameClock {
	return l.clock
}

// Stepper returns the physics accumulator
func (l *Loop) Stepper() *physics.Stepper {
	return l.stepper
}

// AddActor registers a frame-updated actor; its events are routed before later handlers
func (l *Loop) AddActor(a Actor) {
	l.actors = append(l.actors, a)
	l.router.Register(a)
}

// AddHandler registers a passive event consumer (audio, trace)
func (l *Loop) AddHandler(h event.Handler) {
	l.router.Register(h)
}

// OnFrame appends an end-of-frame callback
func (l *Loop) OnFrame(fn FrameFunc) {
	l.callbacks = append(l.callbacks, fn)
}

// Frame runs one frame of wallDt and returns the advanced delta
func (l *Loop) Frame(wallDt time.Duration) clock.Delta {
	if wallDt < 0 {
		wallDt = 0
	}

	l.statEvents.Add(int64(l.router.DispatchAll()))

	for _, a := range l.actors {
		a.Update(wallDt)
	}

	simWall := wallDt
	if l.maxDelta > 0 && simWall > l.maxDelta {
		simWall = l.maxDelta
	}
	d := l.clock.Advance(simWall)
	d.Wall = wallDt

	if l.world != nil {
		droppedBefore := l.stepper.Dropped()
		n := l.stepper.Advance(d.Sim, func(dt time.Duration) {
			l.world.Step(d.Frame, dt)
		})
		l.statSteps.Add(int64(n))
		if dropped := l.stepper.Dropped() - droppedBefore; dropped > 0 {
			l.statDropped.Add(dropped.Milliseconds())
		}
	}

	for _, fn := range l.callbacks {
		fn(d)
	}

	l.statFrames.Add(1)
	l.statSim.Add(d.Sim.Seconds())
	return d
}

// Run drives frames from a ticker until ctx is done, then deactivates every actor
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	defer l.Shutdown()

	if interval <= 0 {
		interval = parameter.FrameUpdateInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.clock.Tick()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Frame(l.clock.Tick())
		}
	}
}

// Shutdown deactivates all actors, resets the rate register and routes the resulting
// notifications (aborted sequences) so handlers see them before they are closed; safe to repeat
func (l *Loop) Shutdown() {
	for _, a := range l.actors {
		a.Deactivate()
	}
	l.stepper.Reset()
	l.reg.Reset()
	l.statEvents.Add(int64(l.router.DispatchAll()))
}
