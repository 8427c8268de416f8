// Package dilation drives the simulation rate through a triggered slow-motion sequence
//
// A Controller owns four cooperating parts evaluated from the host frame loop:
//   - the eligibility gate (HandleZoneEnter), which raises both flags on acceptance
//   - the phase sequencer (ramp-down, hold, cooldown), advanced by wall-clock deltas
//   - the recovery driver, which restores the rate once InDilation clears
//   - the teardown safety net (Deactivate/Close), which forces neutral rate on any exit
//
// All timing is wall-clock so the effect never dilates its own duration.
// Write access to the register follows the InDilation flag and is enforced by the
// register's owner token; the controller mutex guards flags, stage and deadlines together.
package dilation

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/xid"

	"github.com/lixenwraith/slowmo/core"
	"github.com/lixenwraith/slowmo/event"
	"github.com/lixenwraith/slowmo/parameter"
	"github.com/lixenwraith/slowmo/status"
	"github.com/lixenwraith/slowmo/timescale"
	"github.com/lixenwraith/slowmo/vmath"
)

// Controller is the proximity-triggered time-dilation controller
type Controller struct {
	mu sync.Mutex

	cfg    Config
	reg    *timescale.Register
	queue  *event.EventQueue
	logger *log.Logger
	zone   string
	stats  *status.Registry

	state  State
	stage  Stage
	active bool
	closed bool

	// Wall-clock accumulated from Update; deadlines are absolute on this axis
	wall        time.Duration
	frame       int64
	sequence    string
	triggerAt   time.Duration
	rampFrom    float64
	rampEnd     time.Duration
	holdEnd     time.Duration
	cooldownEnd time.Duration
	recovering  bool // This controller's recovery is pending
	claim       timescale.Claim

	// Cached metric pointers
	statRate      *status.AtomicFloat
	statStage     *status.AtomicString
	statSequence  *status.AtomicString
	statSequences *atomic.Int64
	statRejected  *atomic.Int64
	statAborted   *atomic.Int64
	statActive    *atomic.Bool
	statDilating  *atomic.Bool
	statCooldown  *atomic.Bool
}

// Option configures a Controller
type Option func(*Controller)

// WithRegister shares an existing register instead of creating one from BaseFixedStep
func WithRegister(reg *timescale.Register) Option {
	return func(c *Controller) { c.reg = reg }
}

// WithEventQueue sets the sink for phase transition notifications
func WithEventQueue(q *event.EventQueue) Option {
	return func(c *Controller) { c.queue = q }
}

// WithLogger sets the diagnostics logger; defaults to the standard logger
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithZone restricts routed zone events to the named zone
func WithZone(name string) Option {
	return func(c *Controller) { c.zone = name }
}

// WithStatus publishes controller metrics into reg
func WithStatus(reg *status.Registry) Option {
	return func(c *Controller) { c.stats = reg }
}

// NewController validates cfg and returns an active, idle controller
func NewController(cfg Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:    cfg,
		logger: log.Default(),
		active: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.reg == nil {
		reg, err := timescale.NewRegister(cfg.BaseFixedStep)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMisconfigured, err)
		}
		c.reg = reg
	} else if c.reg.BaseStep() != cfg.BaseFixedStep {
		return nil, fmt.Errorf("%w: register base step %v differs from configured %v",
			ErrMisconfigured, c.reg.BaseStep(), cfg.BaseFixedStep)
	}

	if c.stats == nil {
		c.stats = status.NewRegistry()
	}
	c.bindMetrics(c.stats)
	c.publish()
	return c, nil
}

func (c *Controller) bindMetrics(reg *status.Registry) {
	prefix := "dilation."
	if c.zone != "" {
		prefix += c.zone + "."
	}
	c.statRate = reg.Floats.Get(prefix + "rate")
	c.statStage = reg.Strings.Get(prefix + "stage")
	c.statSequence = reg.Strings.Get(prefix + "sequence")
	c.statSequences = reg.Ints.Get(prefix + "sequences")
	c.statRejected = reg.Ints.Get(prefix + "rejected")
	c.statAborted = reg.Ints.Get(prefix + "aborted")
	c.statActive = reg.Bools.Get(prefix + "active")
	c.statDilating = reg.Bools.Get(prefix + "in_dilation")
	c.statCooldown = reg.Bools.Get(prefix + "on_cooldown")
}

// Register returns the rate register driven by this controller
func (c *Controller) Register() *timescale.Register {
	return c.reg
}

// Status returns the metrics registry the controller publishes into
func (c *Controller) Status() *status.Registry {
	return c.stats
}

// Config returns the controller configuration
func (c *Controller) Config() Config {
	return c.cfg
}

// EventTypes implements event.Handler
func (c *Controller) EventTypes() []event.EventType {
	return []event.EventType{event.EventZoneEnter}
}

// HandleEvent implements event.Handler, routing zone-entry events to the gate
func (c *Controller) HandleEvent(ev event.GameEvent) {
	if ev.Type != event.EventZoneEnter {
		return
	}
	p, ok := ev.Payload.(*event.ZonePayload)
	if !ok {
		return
	}
	if c.zone != "" && p.Zone != c.zone {
		return
	}
	c.HandleZoneEnter(p.Body)
}

// HandleZoneEnter is the eligibility gate
// Returns true if a new sequence started; rejection is silent
func (c *Controller) HandleZoneEnter(body core.BodyID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active || c.state.InDilation || c.state.OnCooldown ||
		(c.cfg.Target != core.NoBody && body != c.cfg.Target) {
		c.statRejected.Add(1)
		return false
	}

	// Flags go up before any stage work so a second event this tick is rejected
	c.state = State{InDilation: true, OnCooldown: true}
	c.stage = StageRampDown
	c.sequence = xid.New().String()
	c.recovering = false

	// Supersedes any recovery still running on a shared register
	c.claim = c.reg.Acquire(timescale.OwnerSequencer)
	c.rampFrom = c.reg.Rate()

	c.triggerAt = c.wall
	c.rampEnd = c.wall + c.cfg.RampIn
	c.holdEnd = c.rampEnd + c.cfg.Hold
	c.cooldownEnd = c.holdEnd + c.cfg.Cooldown
	if c.cfg.CooldownAnchor == AnchorTrigger {
		c.cooldownEnd = max(c.holdEnd, c.triggerAt+c.cfg.Cooldown)
	}

	c.statSequences.Add(1)
	c.logger.Printf("[slowmo] sequence %s started by %v (rate %.3f -> %.3f)",
		c.sequence, body, c.rampFrom, c.cfg.TargetFactor)
	c.notify(event.EventDilationStarted)
	c.publish()
	return true
}

// Update advances the sequencer by wallDt and then runs the recovery driver
// Call once per host frame, after zone events have been dispatched and before physics
func (c *Controller) Update(wallDt time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return
	}
	if wallDt < 0 {
		wallDt = 0
	}
	c.wall += wallDt
	c.frame++

	wrote := c.advance()
	c.recover(wallDt, wrote)
	c.publish()
}

// advance runs sequencer stages whose deadlines have passed, returns true if it wrote the register
func (c *Controller) advance() bool {
	wrote := false
	for {
		switch c.stage {
		case StageRampDown:
			if c.wall >= c.rampEnd {
				// Snap exactly to target to avoid interpolation residue
				wrote = c.write(c.cfg.TargetFactor) || wrote
				c.stage = StageHold
				c.logger.Printf("[slowmo] slow motion started, holding %.3f for %v", c.cfg.TargetFactor, c.cfg.Hold)
				c.notify(event.EventDilationHeld)
				continue
			}
			t := float64(c.wall-c.triggerAt) / float64(c.cfg.RampIn)
			return c.write(vmath.Lerp(c.rampFrom, c.cfg.TargetFactor, t)) || wrote

		case StageHold:
			if c.wall < c.holdEnd {
				return wrote
			}
			// Clearing the flag is the hand-off; the register is not touched here
			c.state.InDilation = false
			if c.reg.Holds(c.claim) {
				c.claim = c.reg.Acquire(timescale.OwnerRecovery)
				c.recovering = true
			}
			c.stage = StageCooldown
			c.logger.Printf("[slowmo] returning to normal speed")
			c.notify(event.EventDilationRecovering)
			continue

		case StageCooldown:
			if c.wall < c.cooldownEnd {
				return wrote
			}
			c.state.OnCooldown = false
			c.stage = StageIdle
			c.logger.Printf("[slowmo] cooldown cleared, sequence %s complete", c.sequence)
			c.notify(event.EventCooldownCleared)
			return wrote

		default:
			return wrote
		}
	}
}

// recover moves the rate toward neutral after this controller's own hand-off
// A controller that is idle, or whose claim was superseded, never writes
func (c *Controller) recover(wallDt time.Duration, sequencerWrote bool) {
	if !c.recovering || c.state.InDilation || sequencerWrote {
		return
	}
	if !c.reg.Holds(c.claim) {
		c.recovering = false
		c.logger.Printf("[slowmo] sequence %s recovery superseded", c.sequence)
		return
	}

	if !c.reg.IsNeutral() {
		next := vmath.MoveToward(c.reg.Rate(), parameter.NeutralRate, c.cfg.RecoverySpeed*wallDt.Seconds())
		if !c.write(next) {
			return
		}
	}
	if c.reg.IsNeutral() {
		c.finishRecovery()
	}
}

func (c *Controller) finishRecovery() {
	c.reg.ReleaseClaim(c.claim)
	c.recovering = false
	c.logger.Printf("[slowmo] rate restored to neutral")
	c.notify(event.EventDilationRecovered)
}

// Deactivate is the teardown safety net: forces neutral rate and base step, clears both flags
// and cancels any in-flight sequence. Idempotent
func (c *Controller) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardown()
}

func (c *Controller) teardown() {
	inFlight := c.stage != StageIdle || c.state != (State{}) || c.recovering

	c.reg.Reset()
	c.state = State{}
	c.stage = StageIdle
	c.recovering = false
	c.active = false

	if inFlight {
		c.statAborted.Add(1)
		c.logger.Printf("[slowmo] sequence %s aborted by teardown", c.sequence)
		c.notify(event.EventDilationAborted)
	}
	c.publish()
}

// Activate re-enables a deactivated controller; returns false once closed
func (c *Controller) Activate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	c.active = true
	c.publish()
	return true
}

// Close deactivates permanently; safe to call repeatedly and from atexit handlers
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.teardown()
	c.closed = true
	return nil
}

// Active reports whether the controller is enabled
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// State returns the gate flags
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stage returns the sequencer stage
func (c *Controller) Stage() Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}

// Snapshot is a consistent view of the controller for display and tests
type Snapshot struct {
	State
	Stage     Stage
	Active    bool
	Rate      float64
	FixedStep time.Duration
	Sequence  string
	Wall      time.Duration

	// Remaining is the wall time until the current stage deadline, zero when idle
	Remaining time.Duration
}

// Snapshot returns the current controller view
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		State:     c.state,
		Stage:     c.stage,
		Active:    c.active,
		Rate:      c.reg.Rate(),
		FixedStep: c.reg.FixedStep(),
		Sequence:  c.sequence,
		Wall:      c.wall,
	}
	switch c.stage {
	case StageRampDown:
		s.Remaining = c.rampEnd - c.wall
	case StageHold:
		s.Remaining = c.holdEnd - c.wall
	case StageCooldown:
		s.Remaining = c.cooldownEnd - c.wall
	}
	return s
}

// write returns false if the register refused the write
func (c *Controller) write(rate float64) bool {
	if err := c.reg.WriteClaim(c.claim, rate); err != nil {
		c.logger.Printf("[slowmo] register write rejected: %v", err)
		return false
	}
	return true
}

func (c *Controller) notify(t event.EventType) {
	if c.queue == nil {
		return
	}
	c.queue.Emit(t, &event.PhasePayload{
		Sequence: c.sequence,
		Stage:    c.stage.String(),
		Rate:     c.reg.Rate(),
		Wall:     c.wall,
	}, c.frame)
}

func (c *Controller) publish() {
	c.statRate.Set(c.reg.Rate())
	c.statStage.Store(c.stage.String())
	c.statSequence.Store(c.sequence)
	c.statActive.Store(c.active)
	c.statDilating.Store(c.state.InDilation)
	c.statCooldown.Store(c.state.OnCooldown)
}
