package dilation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/slowmo/core"
	"github.com/lixenwraith/slowmo/parameter"
)

// ErrMisconfigured is wrapped by every configuration validation failure
var ErrMisconfigured = errors.New("dilation: misconfigured")

// CooldownAnchor selects the wall-clock instant the cooldown interval is measured from
type CooldownAnchor int

const (
	// AnchorHoldEnd starts cooldown when the hold expires
	AnchorHoldEnd CooldownAnchor = iota
	// AnchorTrigger starts cooldown at acceptance; it never ends before the hold does
	AnchorTrigger
)

func (a CooldownAnchor) String() string {
	switch a {
	case AnchorHoldEnd:
		return "hold-end"
	case AnchorTrigger:
		return "trigger"
	default:
		return fmt.Sprintf("anchor(%d)", int(a))
	}
}

// ParseCooldownAnchor parses "hold-end" or "trigger"
func ParseCooldownAnchor(s string) (CooldownAnchor, error) {
	switch s {
	case "hold-end", "holdend", "hold":
		return AnchorHoldEnd, nil
	case "trigger":
		return AnchorTrigger, nil
	default:
		return 0, fmt.Errorf("%w: unknown cooldown anchor %q", ErrMisconfigured, s)
	}
}

// Config is fixed for the controller's lifetime
type Config struct {
	TargetFactor  float64       // Rate held during slow motion, (0, 1]
	Hold          time.Duration // Wall-clock hold at TargetFactor
	RecoverySpeed float64       // Rate units restored per wall-clock second
	Cooldown      time.Duration // Wall-clock interval before re-arming
	RampIn        time.Duration // Wall-clock descent duration, 0 snaps immediately
	BaseFixedStep time.Duration // Physics step at neutral rate

	// Target restricts the gate to one body; core.NoBody accepts any
	Target core.BodyID

	CooldownAnchor CooldownAnchor
}

// DefaultConfig returns the tuned slow-motion defaults
func DefaultConfig() Config {
	return Config{
		TargetFactor:   parameter.DilationTargetFactor,
		Hold:           parameter.DilationHold,
		RecoverySpeed:  parameter.DilationRecoverySpeed,
		Cooldown:       parameter.DilationCooldown,
		RampIn:         parameter.DilationRampIn,
		BaseFixedStep:  parameter.BaseFixedStep,
		Target:         core.NoBody,
		CooldownAnchor: AnchorHoldEnd,
	}
}

// Validate rejects programmer errors; the returned error wraps ErrMisconfigured
func (c Config) Validate() error {
	switch {
	case math.IsNaN(c.TargetFactor) || c.TargetFactor <= 0 || c.TargetFactor > parameter.NeutralRate:
		return fmt.Errorf("%w: target factor %v outside (0, 1]", ErrMisconfigured, c.TargetFactor)
	case c.Hold < 0:
		return fmt.Errorf("%w: negative hold %v", ErrMisconfigured, c.Hold)
	case c.Cooldown < 0:
		return fmt.Errorf("%w: negative cooldown %v", ErrMisconfigured, c.Cooldown)
	case c.RampIn < 0:
		return fmt.Errorf("%w: negative ramp-in %v", ErrMisconfigured, c.RampIn)
	case math.IsNaN(c.RecoverySpeed) || math.IsInf(c.RecoverySpeed, 0) || c.RecoverySpeed <= 0:
		return fmt.Errorf("%w: recovery speed %v must be positive", ErrMisconfigured, c.RecoverySpeed)
	case c.BaseFixedStep <= 0:
		return fmt.Errorf("%w: base fixed step %v must be positive", ErrMisconfigured, c.BaseFixedStep)
	case c.CooldownAnchor != AnchorHoldEnd && c.CooldownAnchor != AnchorTrigger:
		return fmt.Errorf("%w: unknown cooldown anchor %d", ErrMisconfigured, int(c.CooldownAnchor))
	}
	return nil
}

// RecoveryDuration is the wall-clock time the recovery driver needs from TargetFactor to neutral
func (c Config) RecoveryDuration() time.Duration {
	return time.Duration((parameter.NeutralRate - c.TargetFactor) / c.RecoverySpeed * float64(time.Second))
}
