package zone

import (
	"github.com/lixenwraith/slowmo/core"
	"github.com/lixenwraith/slowmo/event"
	"github.com/lixenwraith/slowmo/physics"
)

// Trigger tracks which bodies occupy a shape and emits one enter event per physical entry
// A body lingering inside produces no further events until it leaves and re-enters
type Trigger struct {
	name    string
	shape   Shape
	queue   *event.EventQueue
	inside  map[core.BodyID]bool
	entries int64
}

// NewTrigger creates a trigger emitting into queue; a nil queue only tracks occupancy
func NewTrigger(name string, shape Shape, queue *event.EventQueue) *Trigger {
	return &Trigger{
		name:   name,
		shape:  shape,
		queue:  queue,
		inside: make(map[core.BodyID]bool),
	}
}

// Name returns the zone name carried in event payloads
func (t *Trigger) Name() string {
	return t.name
}

// Shape returns the trigger volume
func (t *Trigger) Shape() Shape {
	return t.shape
}

// Contains reports whether id is currently inside
func (t *Trigger) Contains(id core.BodyID) bool {
	return t.inside[id]
}

// Entries returns the number of enter events emitted
func (t *Trigger) Entries() int64 {
	return t.entries
}

// Observe updates occupancy for one body moving from prev to pos
// A segment that passes through the shape without ending inside yields an enter followed by an exit
func (t *Trigger) Observe(frame int64, b *physics.Body) (entered, exited bool) {
	was := t.inside[b.ID]
	now := t.shape.Contains(b.Pos, b.Radius)

	switch {
	case !was && now:
		entered = true
	case was && !now:
		exited = true
	case !was && !now && b.Prev != b.Pos && t.shape.Sweep(b.Prev, b.Pos, b.Radius):
		// Tunneled through within one step
		entered, exited = true, true
	}

	if entered {
		t.entries++
		t.emit(event.EventZoneEnter, b.ID, frame)
	}
	if exited {
		t.emit(event.EventZoneExit, b.ID, frame)
	}

	if now {
		t.inside[b.ID] = true
	} else {
		delete(t.inside, b.ID)
	}
	return entered, exited
}

// AfterStep implements physics.StepObserver
func (t *Trigger) AfterStep(frame int64, bodies []*physics.Body) {
	for _, b := range bodies {
		t.Observe(frame, b)
	}
}

// Forget drops occupancy for a removed or teleported body without emitting an exit
func (t *Trigger) Forget(id core.BodyID) {
	delete(t.inside, id)
}

func (t *Trigger) emit(typ event.EventType, id core.BodyID, frame int64) {
	if t.queue == nil {
		return
	}
	t.queue.Emit(typ, &event.ZonePayload{Zone: t.name, Body: id}, frame)
}
