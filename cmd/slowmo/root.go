package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/slowmo/config"
	"github.com/lixenwraith/slowmo/dilation"
)

var flags struct {
	envFiles      []string
	target        float64
	hold          string
	recoverySpeed float64
	cooldown      string
	rampIn        string
	anchor        string
	tracePath     string
	debug         bool
	noAudio       bool
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "slowmo",
	Short: "Proximity-triggered slow motion sandbox",
	Long: `slowmo drops the simulation rate when a ball enters the hoop zone, holds it for a ` +
		`wall-clock interval, then restores it. Settings come from .env files, SLOWMO_* ` +
		`environment variables and the flags below, in increasing precedence.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringSliceVar(&flags.envFiles, "env", []string{".env"}, "env files to load (missing files are skipped)")
	pf.Float64Var(&flags.target, "target", 0, "target rate factor in (0, 1]")
	pf.StringVar(&flags.hold, "hold", "", "wall-clock hold duration (e.g. 2.5s or 2.5)")
	pf.Float64Var(&flags.recoverySpeed, "recovery-speed", 0, "rate units restored per wall second")
	pf.StringVar(&flags.cooldown, "cooldown", "", "wall-clock cooldown duration")
	pf.StringVar(&flags.rampIn, "ramp-in", "", "wall-clock ramp-down duration")
	pf.StringVar(&flags.anchor, "anchor", "", "cooldown anchor: hold-end or trigger")
	pf.StringVar(&flags.tracePath, "trace", "", "record transitions into this SQLite file")
	pf.BoolVar(&flags.debug, "debug", false, "write logs to "+logDir+"/"+logFileName)
	pf.BoolVar(&flags.noAudio, "no-audio", false, "disable audio")
}

// loadSettings merges env files, environment and explicitly set flags
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	s, err := config.Load(flags.envFiles...)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	d := &s.Dilation
	if changed("target") {
		d.TargetFactor = flags.target
	}
	if changed("recovery-speed") {
		d.RecoverySpeed = flags.recoverySpeed
	}
	if err := applyDuration(changed("hold"), "hold", flags.hold, &d.Hold); err != nil {
		return nil, err
	}
	if err := applyDuration(changed("cooldown"), "cooldown", flags.cooldown, &d.Cooldown); err != nil {
		return nil, err
	}
	if err := applyDuration(changed("ramp-in"), "ramp-in", flags.rampIn, &d.RampIn); err != nil {
		return nil, err
	}
	if changed("anchor") {
		anchor, err := dilation.ParseCooldownAnchor(flags.anchor)
		if err != nil {
			return nil, err
		}
		d.CooldownAnchor = anchor
	}
	if changed("trace") {
		s.TracePath = flags.tracePath
	}
	if changed("debug") {
		s.Debug = flags.debug
	}
	if flags.noAudio {
		s.Audio.Enabled = false
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func applyDuration(set bool, name, raw string, dst *time.Duration) error {
	if !set {
		return nil
	}
	d, err := config.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("--%s: %w", name, err)
	}
	*dst = d
	return nil
}
