package zone

import (
	"testing"
	"time"

	"github.com/lixenwraith/slowmo/core"
	"github.com/lixenwraith/slowmo/event"
	"github.com/lixenwraith/slowmo/physics"
	"github.com/lixenwraith/slowmo/vmath"
)

func TestSphereContainsAndSweep(t *testing.T) {
	s := Sphere{Center: vmath.Vec3F{X: 10}, Radius: 2}

	if !s.Contains(vmath.Vec3F{X: 8.5}, 0.5) {
		t.Error("Expected overlap within combined radius")
	}
	if s.Contains(vmath.Vec3F{X: 7}, 0.5) {
		t.Error("Expected no overlap outside combined radius")
	}
	if !s.Sweep(vmath.Vec3F{X: 0}, vmath.Vec3F{X: 20}, 0.1) {
		t.Error("Expected segment through center to hit")
	}
	if s.Sweep(vmath.Vec3F{X: 0, Y: 5}, vmath.Vec3F{X: 20, Y: 5}, 0.1) {
		t.Error("Expected parallel segment to miss")
	}
}

func TestBoxContainsAndSweep(t *testing.T) {
	b := Box{Min: vmath.Vec3F{X: 4, Y: 4}, Max: vmath.Vec3F{X: 6, Y: 6}}

	if !b.Contains(vmath.Vec3F{X: 5, Y: 5}, 0) {
		t.Error("Expected center inside box")
	}
	if b.Contains(vmath.Vec3F{X: 8, Y: 5}, 0.5) {
		t.Error("Expected point outside box")
	}
	if !b.Sweep(vmath.Vec3F{X: 0, Y: 5}, vmath.Vec3F{X: 10, Y: 5}, 0) {
		t.Error("Expected crossing segment to hit")
	}
	if b.Sweep(vmath.Vec3F{X: 0, Y: 0}, vmath.Vec3F{X: 10, Y: 1}, 0) {
		t.Error("Expected segment below box to miss")
	}
}

func TestTriggerEmitsOncePerEntry(t *testing.T) {
	q := event.NewEventQueue()
	trig := NewTrigger("hoop", Sphere{Center: vmath.Vec3F{X: 10}, Radius: 1}, q)
	b := physics.NewBody(core.BodyID(3), vmath.Vec3F{}, 0.1)

	path := []float64{5, 9.5, 10, 10.5, 15, 10}
	for frame, x := range path {
		b.Prev = b.Pos
		b.Pos = vmath.Vec3F{X: x}
		trig.Observe(int64(frame), b)
	}

	events := q.Consume()
	var types []event.EventType
	for _, ev := range events {
		types = append(types, ev.Type)
		p := ev.Payload.(*event.ZonePayload)
		if p.Zone != "hoop" || p.Body != 3 {
			t.Errorf("Unexpected payload %+v", p)
		}
	}

	want := []event.EventType{event.EventZoneEnter, event.EventZoneExit, event.EventZoneEnter}
	if len(types) != len(want) {
		t.Fatalf("Expected %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("Event %d: expected %v, got %v", i, want[i], types[i])
		}
	}
	if !trig.Contains(3) || trig.Entries() != 2 {
		t.Errorf("Expected body inside with 2 entries, got inside=%v entries=%d", trig.Contains(3), trig.Entries())
	}
}

func TestTriggerCatchesTunneling(t *testing.T) {
	q := event.NewEventQueue()
	trig := NewTrigger("hoop", Sphere{Center: vmath.Vec3F{X: 10}, Radius: 1}, q)
	b := physics.NewBody(1, vmath.Vec3F{X: 0}, 0.1)

	// One step jumps clean over the sphere
	b.Prev = b.Pos
	b.Pos = vmath.Vec3F{X: 20}
	entered, exited := trig.Observe(0, b)

	if !entered || !exited {
		t.Errorf("Expected swept enter and exit, got entered=%v exited=%v", entered, exited)
	}
	if q.Len() != 2 {
		t.Errorf("Expected 2 events, got %d", q.Len())
	}
	if trig.Contains(1) {
		t.Error("Expected body outside after tunneling")
	}
}

func TestTriggerAsWorldObserver(t *testing.T) {
	q := event.NewEventQueue()
	w := physics.NewWorld(vmath.Vec3F{}, vmath.Vec3F{X: 100, Y: 100}, vmath.Vec3F{}, 1)
	w.AddObserver(NewTrigger("gate", Box{Min: vmath.Vec3F{X: 50}, Max: vmath.Vec3F{X: 52, Y: 100}}, q))

	ball := physics.NewBody(9, vmath.Vec3F{X: 10, Y: 50}, 0.5)
	ball.Vel = vmath.Vec3F{X: 40}
	w.AddBody(ball)

	for i := 0; i < 80; i++ {
		w.Step(int64(i), 20*time.Millisecond)
	}

	events := q.Consume()
	if len(events) < 1 || events[0].Type != event.EventZoneEnter {
		t.Fatalf("Expected an enter event first, got %+v", events)
	}
}

func TestTriggerForgetDoesNotEmit(t *testing.T) {
	q := event.NewEventQueue()
	trig := NewTrigger("hoop", Sphere{Radius: 1}, q)
	b := physics.NewBody(1, vmath.Vec3F{}, 0.1)

	trig.Observe(0, b)
	q.Consume()
	trig.Forget(1)

	if trig.Contains(1) || q.Len() != 0 {
		t.Error("Forget should clear occupancy silently")
	}
}
