// Package timescale holds the process-wide simulation rate and the physics step derived from it
package timescale

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/slowmo/parameter"
	"github.com/lixenwraith/slowmo/status"
)

var (
	// ErrNotOwner is returned when a writer does not hold the register's owner token
	ErrNotOwner = errors.New("timescale: writer does not own the register")

	// ErrRateOutOfRange is returned for rates that are not strictly positive
	ErrRateOutOfRange = errors.New("timescale: rate out of range (0, 1]")
)

// Owner identifies which role may currently write the rate
type Owner uint32

const (
	OwnerNone Owner = iota
	OwnerSequencer
	OwnerRecovery
)

func (o Owner) String() string {
	switch o {
	case OwnerNone:
		return "none"
	case OwnerSequencer:
		return "sequencer"
	case OwnerRecovery:
		return "recovery"
	default:
		return fmt.Sprintf("owner(%d)", uint32(o))
	}
}

// Claim is one acquisition of the owner token
// The role sits in the low byte and an acquisition counter above it, so two holders of the
// same role at different times never compare equal
type Claim uint64

// Owner returns the role the claim was acquired for
func (c Claim) Owner() Owner {
	return Owner(c & 0xff)
}

func (c Claim) next(to Owner) Claim {
	return Claim((uint64(c)>>8+1)<<8 | uint64(to))
}

// Register is the single source of truth for global time dilation
// Exactly one claim holds the owner token at a time; only the holder may Write
// Reads are lock-free and safe from any goroutine
type Register struct {
	rate     status.AtomicFloat
	stepNs   atomic.Int64
	baseStep time.Duration
	token    atomic.Uint64
}

// NewRegister creates a register at neutral rate with the given physics step
func NewRegister(baseStep time.Duration) (*Register, error) {
	if baseStep <= 0 {
		return nil, fmt.Errorf("timescale: base fixed step must be positive, got %v", baseStep)
	}
	r := &Register{baseStep: baseStep}
	r.Reset()
	return r, nil
}

// Rate returns the current simulation rate in (0, 1]
func (r *Register) Rate() float64 {
	return r.rate.Get()
}

// FixedStep returns the physics step for the current rate (baseStep * rate)
func (r *Register) FixedStep() time.Duration {
	return time.Duration(r.stepNs.Load())
}

// BaseStep returns the physics step at neutral rate
func (r *Register) BaseStep() time.Duration {
	return r.baseStep
}

// Owner returns the role of the current token holder
func (r *Register) Owner() Owner {
	return Claim(r.token.Load()).Owner()
}

// Acquire hands the owner token to a new claim for role `to`, superseding any current holder
func (r *Register) Acquire(to Owner) Claim {
	for {
		old := r.token.Load()
		c := Claim(old).next(to)
		if r.token.CompareAndSwap(old, uint64(c)) {
			return c
		}
	}
}

// Transfer hands the owner token to `to` and returns the previous holder's role
func (r *Register) Transfer(to Owner) Owner {
	for {
		old := r.token.Load()
		if r.token.CompareAndSwap(old, uint64(Claim(old).next(to))) {
			return Claim(old).Owner()
		}
	}
}

// Holds reports whether c is still the current claim
func (r *Register) Holds(c Claim) bool {
	return Claim(r.token.Load()) == c && c.Owner() != OwnerNone
}

// Release returns the token to OwnerNone if role `from` holds it
func (r *Register) Release(from Owner) bool {
	for {
		old := r.token.Load()
		if Claim(old).Owner() != from {
			return false
		}
		if r.token.CompareAndSwap(old, uint64(Claim(old).next(OwnerNone))) {
			return true
		}
	}
}

// ReleaseClaim returns the token to OwnerNone if c still holds it
func (r *Register) ReleaseClaim(c Claim) bool {
	if c.Owner() == OwnerNone {
		return false
	}
	return r.token.CompareAndSwap(uint64(c), uint64(c.next(OwnerNone)))
}

// Write sets the rate and the dependent step on behalf of role owner
// Rates above neutral are clamped to neutral
func (r *Register) Write(owner Owner, rate float64) error {
	if cur := r.Owner(); cur != owner || owner == OwnerNone {
		return fmt.Errorf("%w: %s holds it, %s attempted write", ErrNotOwner, cur, owner)
	}
	return r.set(rate)
}

// WriteClaim is Write for a specific claim; a superseded claim is rejected even if its role matches
func (r *Register) WriteClaim(c Claim, rate float64) error {
	if !r.Holds(c) {
		return fmt.Errorf("%w: claim %s is stale, %s holds it", ErrNotOwner, c.Owner(), r.Owner())
	}
	return r.set(rate)
}

func (r *Register) set(rate float64) error {
	if math.IsNaN(rate) || rate <= 0 {
		return fmt.Errorf("%w: %v", ErrRateOutOfRange, rate)
	}
	if rate > parameter.NeutralRate {
		rate = parameter.NeutralRate
	}
	r.store(rate)
	return nil
}

// Reset forces neutral rate, base step and no owner regardless of who holds the token
// Every outstanding claim becomes stale
func (r *Register) Reset() {
	r.Transfer(OwnerNone)
	r.store(parameter.NeutralRate)
}

// IsNeutral reports whether the rate is at neutral
func (r *Register) IsNeutral() bool {
	return r.Rate() >= parameter.NeutralRate
}

func (r *Register) store(rate float64) {
	r.rate.Set(rate)
	if rate == parameter.NeutralRate {
		r.stepNs.Store(int64(r.baseStep))
		return
	}
	r.stepNs.Store(int64(math.Round(float64(r.baseStep) * rate)))
}
