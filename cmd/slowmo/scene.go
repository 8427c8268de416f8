package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/lixenwraith/slowmo/audio"
	"github.com/lixenwraith/slowmo/clock"
	"github.com/lixenwraith/slowmo/config"
	"github.com/lixenwraith/slowmo/core"
	"github.com/lixenwraith/slowmo/dilation"
	"github.com/lixenwraith/slowmo/event"
	"github.com/lixenwraith/slowmo/host"
	"github.com/lixenwraith/slowmo/parameter"
	"github.com/lixenwraith/slowmo/physics"
	"github.com/lixenwraith/slowmo/status"
	"github.com/lixenwraith/slowmo/trace"
	"github.com/lixenwraith/slowmo/vmath"
	"github.com/lixenwraith/slowmo/zone"
)

const (
	ballID   core.BodyID = 1
	hoopName             = "hoop"
)

// scene wires one controller, a ball, a hoop zone and the frame loop
type scene struct {
	settings *config.Settings
	stats    *status.Registry
	queue    *event.EventQueue

	ctl      *dilation.Controller
	world    *physics.World
	ball     *physics.Body
	hoop     *zone.Trigger
	loop     *host.Loop
	sound    *audio.SoundManager
	recorder *trace.Recorder

	launch vmath.Vec3F
}

// newScene builds a width x height world; audio is only started when useAudio is set
func newScene(s *config.Settings, width, height float64, useAudio bool) (*scene, error) {
	sc := &scene{
		settings: s,
		stats:    status.NewRegistry(),
		queue:    event.NewEventQueue(),
		launch:   vmath.Vec3F{X: 2, Y: 1 + parameter.BallRadius},
	}

	ctl, err := dilation.NewController(s.Dilation,
		dilation.WithEventQueue(sc.queue),
		dilation.WithZone(hoopName),
		dilation.WithStatus(sc.stats),
	)
	if err != nil {
		return nil, err
	}
	sc.ctl = ctl

	sc.world = physics.NewWorld(
		vmath.Vec3F{},
		vmath.Vec3F{X: width, Y: height},
		vmath.Vec3F{Y: -parameter.Gravity},
		parameter.Restitution,
	)
	sc.world.MaxSpeed = parameter.MaxBallSpeed
	sc.ball = physics.NewBody(ballID, sc.launch, parameter.BallRadius)
	sc.ball.Sleeping = true
	sc.world.AddBody(sc.ball)

	sc.hoop = zone.NewTrigger(hoopName, zone.Sphere{
		Center: hoopCenter(sc.launch, width, height),
		Radius: parameter.HoopRadius,
	}, sc.queue)
	sc.world.AddObserver(sc.hoop)

	sc.loop = host.NewLoop(ctl.Register(), sc.world, host.WithQueue(sc.queue), host.WithStatus(sc.stats))
	sc.loop.AddActor(ctl)

	if useAudio {
		sc.sound = audio.NewSoundManager(s.Audio)
		if err := sc.sound.Initialize(); err != nil {
			if !errors.Is(err, audio.ErrAudioDisabled) {
				log.Printf("[slowmo] audio initialization failed: %v (continuing without audio)", err)
			}
		}
		sc.loop.AddHandler(sc.sound)
		reg := ctl.Register()
		sc.loop.OnFrame(func(clock.Delta) { sc.sound.Sync(reg) })
	}

	if s.TracePath != "" {
		rec, err := trace.Open(s.TracePath, s.Dilation)
		if err != nil {
			sc.Close()
			return nil, fmt.Errorf("trace: %w", err)
		}
		sc.recorder = rec
		sc.loop.AddHandler(rec)
	}

	return sc, nil
}

// hoopCenter places the hoop on the launch trajectory at HoopOffsetX of the scene width
func hoopCenter(launch vmath.Vec3F, width, height float64) vmath.Vec3F {
	x := launch.X + parameter.HoopOffsetX*width
	t := (x - launch.X) / parameter.LaunchSpeedX
	y := launch.Y + parameter.LaunchSpeedY*t - 0.5*parameter.Gravity*t*t
	y = vmath.Clamp(y, parameter.HoopRadius, height-parameter.HoopRadius)
	return vmath.Vec3F{X: x, Y: y}
}

// Launch resets the ball to the launch point and throws it at the hoop
func (sc *scene) Launch() {
	sc.hoop.Forget(ballID)
	sc.ball.Teleport(sc.launch)
	sc.ball.Sleeping = false
	physics.SetImpulse(sc.ball, vmath.Vec3F{X: parameter.LaunchSpeedX, Y: parameter.LaunchSpeedY})
}

// Kick wakes the ball and adds an upward impulse to its current velocity
func (sc *scene) Kick() {
	sc.ball.Sleeping = false
	physics.ApplyImpulse(sc.ball, vmath.Vec3F{Y: parameter.KickSpeedY})
}

// Toggle flips the controller between deactivated and active
func (sc *scene) Toggle() {
	if sc.ctl.Active() {
		sc.ctl.Deactivate()
		return
	}
	sc.ctl.Activate()
}

// Close tears down in dependency order; safe to call repeatedly
func (sc *scene) Close() error {
	var errs []error
	if sc.loop != nil {
		sc.loop.Shutdown()
	}
	if sc.ctl != nil {
		errs = append(errs, sc.ctl.Close())
	}
	if sc.sound != nil {
		sc.sound.Cleanup()
	}
	if sc.recorder != nil {
		errs = append(errs, sc.recorder.Close())
	}
	return errors.Join(errs...)
}
