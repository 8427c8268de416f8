// Package config loads runtime settings from .env files and SLOWMO_* environment variables
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/slowmo/audio"
	"github.com/lixenwraith/slowmo/core"
	"github.com/lixenwraith/slowmo/dilation"
)

// ErrInvalidSetting wraps every malformed environment value
var ErrInvalidSetting = errors.New("config: invalid setting")

// Settings is the complete runtime configuration
type Settings struct {
	Dilation  dilation.Config
	Audio     *audio.AudioConfig
	TracePath string // Empty disables the trace recorder
	Debug     bool
}

// Default returns settings built from compiled-in defaults
func Default() *Settings {
	return &Settings{
		Dilation: dilation.DefaultConfig(),
		Audio:    audio.DefaultAudioConfig(),
	}
}

// Load applies envFiles then the process environment over the defaults
// Missing env files are skipped; variables already set in the environment win over file values
func Load(envFiles ...string) (*Settings, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds settings from getenv over the defaults and validates the result
func FromEnv(getenv func(string) string) (*Settings, error) {
	s := Default()
	d := &s.Dilation

	if err := parseFloat(getenv, "SLOWMO_TARGET_FACTOR", &d.TargetFactor); err != nil {
		return nil, err
	}
	if err := parseFloat(getenv, "SLOWMO_RECOVERY_SPEED", &d.RecoverySpeed); err != nil {
		return nil, err
	}
	for key, dst := range map[string]*time.Duration{
		"SLOWMO_HOLD":      &d.Hold,
		"SLOWMO_COOLDOWN":  &d.Cooldown,
		"SLOWMO_RAMP_IN":   &d.RampIn,
		"SLOWMO_BASE_STEP": &d.BaseFixedStep,
	} {
		if err := parseDuration(getenv, key, dst); err != nil {
			return nil, err
		}
	}

	if v := getenv("SLOWMO_COOLDOWN_ANCHOR"); v != "" {
		anchor, err := dilation.ParseCooldownAnchor(v)
		if err != nil {
			return nil, fmt.Errorf("%w: SLOWMO_COOLDOWN_ANCHOR: %v", ErrInvalidSetting, err)
		}
		d.CooldownAnchor = anchor
	}

	if v := getenv("SLOWMO_TARGET_BODY"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: SLOWMO_TARGET_BODY=%q", ErrInvalidSetting, v)
		}
		d.Target = core.BodyID(id)
	}

	audioCfg, err := audio.LoadAudioConfig(getenv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	s.Audio = audioCfg

	s.TracePath = getenv("SLOWMO_TRACE_PATH")

	if v := getenv("SLOWMO_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: SLOWMO_DEBUG=%q", ErrInvalidSetting, v)
		}
		s.Debug = debug
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseFloat(getenv func(string) string, key string, dst *float64) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidSetting, key, v)
	}
	*dst = f
	return nil
}

func parseDuration(getenv func(string) string, key string, dst *time.Duration) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	d, err := ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSetting, key, err)
	}
	*dst = d
	return nil
}

// ParseDuration accepts Go duration syntax ("2.5s", "100ms") or bare float seconds ("2.5")
func ParseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	ns := secs * float64(time.Second)
	if math.IsNaN(ns) || math.IsInf(ns, 0) || ns >= math.MaxInt64 || ns < math.MinInt64 {
		return 0, fmt.Errorf("duration %q out of range", s)
	}
	return time.Duration(ns), nil
}
