package host

//go:generate mockgen -destination mock_actor_test.go -package host . Actor

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lixenwraith/slowmo/clock"
	"github.com/lixenwraith/slowmo/dilation"
	"github.com/lixenwraith/slowmo/event"
	"github.com/lixenwraith/slowmo/physics"
	"github.com/lixenwraith/slowmo/status"
	"github.com/lixenwraith/slowmo/timescale"
	"github.com/lixenwraith/slowmo/vmath"
	"github.com/lixenwraith/slowmo/zone"
)

const frame = 10 * time.Millisecond

func newRegister(t *testing.T) *timescale.Register {
	t.Helper()
	reg, err := timescale.NewRegister(20 * time.Millisecond)
	require.NoError(t, err)
	return reg
}

func TestFrameRoutesEventsBeforeUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	actor := NewMockActor(ctrl)
	actor.EXPECT().EventTypes().Return([]event.EventType{event.EventZoneEnter})

	reg := newRegister(t)
	l := NewLoop(reg, nil)
	l.AddActor(actor)
	l.Queue().Emit(event.EventZoneEnter, &event.ZonePayload{Zone: "hoop", Body: 1}, 0)

	gomock.InOrder(
		actor.EXPECT().HandleEvent(gomock.Any()),
		actor.EXPECT().Update(frame).Do(func(time.Duration) {
			reg.Transfer(timescale.OwnerSequencer)
			require.NoError(t, reg.Write(timescale.OwnerSequencer, 0.5))
		}),
	)

	var seen clock.Delta
	l.OnFrame(func(d clock.Delta) { seen = d })

	d := l.Frame(frame)
	assert.Equal(t, frame, d.Wall)
	assert.Equal(t, 5*time.Millisecond, d.Sim, "sim delta must use the rate written this frame")
	assert.Equal(t, d, seen)
	assert.Equal(t, int64(1), d.Frame)
}

func TestFrameClampsSimDeltaOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	actor := NewMockActor(ctrl)
	actor.EXPECT().EventTypes().Return(nil)
	actor.EXPECT().Update(time.Second)

	l := NewLoop(newRegister(t), nil, WithMaxDelta(250*time.Millisecond))
	l.AddActor(actor)

	d := l.Frame(time.Second)
	assert.Equal(t, time.Second, d.Wall)
	assert.Equal(t, 250*time.Millisecond, d.Sim)
}

func TestRunDeactivatesOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	actor := NewMockActor(ctrl)
	actor.EXPECT().EventTypes().Return(nil)
	actor.EXPECT().Update(gomock.Any()).AnyTimes()
	actor.EXPECT().Deactivate().Times(1)

	reg := newRegister(t)
	reg.Transfer(timescale.OwnerSequencer)
	require.NoError(t, reg.Write(timescale.OwnerSequencer, 0.2))

	l := NewLoop(reg, nil)
	l.AddActor(actor)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := l.Run(ctx, 5*time.Millisecond)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Equal(t, 1.0, reg.Rate())
	assert.Equal(t, timescale.OwnerNone, reg.Owner())
}

func TestPauseFreezesPhysics(t *testing.T) {
	world := physics.NewWorld(vmath.Vec3F{X: -10}, vmath.Vec3F{X: 10, Y: 20}, vmath.Vec3F{Y: -30}, 0.7)
	world.AddBody(physics.NewBody(1, vmath.Vec3F{Y: 10}, 0.5))

	reg := newRegister(t)
	stats := status.NewRegistry()
	l := NewLoop(reg, world, WithStatus(stats))

	l.Clock().Pause()
	for i := 0; i < 10; i++ {
		d := l.Frame(frame)
		assert.Zero(t, d.Sim)
	}
	assert.Zero(t, world.Steps())
	assert.Equal(t, int64(10), stats.Ints.Get("host.frames").Load())

	l.Clock().Resume()
	for i := 0; i < 10; i++ {
		l.Frame(frame)
	}
	assert.Equal(t, int64(5), world.Steps())
	assert.Equal(t, int64(5), stats.Ints.Get("physics.steps").Load())
}

// A falling ball crosses the hoop zone; the controller reacts on the next frame and
// physics keeps the same number of steps per wall second while the rate is dilated
func TestLoopWithControllerAndZone(t *testing.T) {
	queue := event.NewEventQueue()
	stats := status.NewRegistry()

	ctl, err := dilation.NewController(dilation.DefaultConfig(),
		dilation.WithEventQueue(queue),
		dilation.WithZone("hoop"),
		dilation.WithStatus(stats),
		dilation.WithLogger(log.New(io.Discard, "", 0)),
	)
	require.NoError(t, err)
	reg := ctl.Register()

	world := physics.NewWorld(vmath.Vec3F{X: -10}, vmath.Vec3F{X: 10, Y: 20}, vmath.Vec3F{Y: -30}, 0.7)
	world.AddBody(physics.NewBody(1, vmath.Vec3F{Y: 5}, 0.25))
	hoop := zone.NewTrigger("hoop", zone.Sphere{Center: vmath.Vec3F{Y: 2}, Radius: 0.5}, queue)
	world.AddObserver(hoop)

	l := NewLoop(reg, world, WithQueue(queue), WithStatus(stats))
	l.AddActor(ctl)

	var triggered clock.Delta
	for i := 0; i < 200 && !ctl.State().InDilation; i++ {
		triggered = l.Frame(frame)
	}
	require.True(t, ctl.State().InDilation, "ball never triggered the zone")
	assert.Equal(t, int64(1), hoop.Entries())
	assert.Less(t, triggered.Sim, triggered.Wall, "rate must drop in the frame the entry is routed")

	// Let the ramp finish, then measure one wall second of hold
	for i := 0; i < 10; i++ {
		l.Frame(frame)
	}
	require.Equal(t, dilation.StageHold, ctl.Stage())

	before := world.Steps()
	for i := 0; i < 100; i++ {
		l.Frame(frame)
	}
	assert.InDelta(t, 50, world.Steps()-before, 2)
	assert.Equal(t, 3*time.Millisecond, reg.FixedStep())

	l.Shutdown()
	assert.Equal(t, 1.0, reg.Rate())
	assert.Equal(t, dilation.PhaseIdle, ctl.State().Phase())
	assert.False(t, ctl.Active())
}

type recordingHandler struct {
	types []event.EventType
	seen  []event.EventType
}

func (h *recordingHandler) EventTypes() []event.EventType { return h.types }

func (h *recordingHandler) HandleEvent(ev event.GameEvent) { h.seen = append(h.seen, ev.Type) }

func TestShutdownRoutesAbort(t *testing.T) {
	queue := event.NewEventQueue()
	ctl, err := dilation.NewController(dilation.DefaultConfig(),
		dilation.WithEventQueue(queue),
		dilation.WithLogger(log.New(io.Discard, "", 0)),
	)
	require.NoError(t, err)

	l := NewLoop(ctl.Register(), nil, WithQueue(queue))
	l.AddActor(ctl)
	rec := &recordingHandler{types: event.DiagnosticTypes()}
	l.AddHandler(rec)

	require.True(t, ctl.HandleZoneEnter(1))
	l.Frame(frame)
	require.Equal(t, []event.EventType{event.EventDilationStarted}, rec.seen)

	l.Shutdown()
	assert.Equal(t, []event.EventType{event.EventDilationStarted, event.EventDilationAborted}, rec.seen)
	assert.Zero(t, queue.Len())

	l.Shutdown()
	assert.Len(t, rec.seen, 2)
}
