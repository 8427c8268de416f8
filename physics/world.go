package physics

import (
	"time"

	"github.com/lixenwraith/slowmo/core"
	"github.com/lixenwraith/slowmo/vmath"
)

// StepObserver is invoked after each fixed step with the stepped bodies
type StepObserver interface {
	AfterStep(frame int64, bodies []*Body)
}

// World is a minimal rigid-body scene: gravity, box bounds and point bodies
// Y grows upward; the floor is Min.Y
type World struct {
	Bodies      []*Body
	Gravity     vmath.Vec3F
	Min, Max    vmath.Vec3F
	Restitution float64

	// MaxSpeed caps body speed after integration, <= 0 disables the cap
	MaxSpeed float64

	observers []StepObserver
	steps     int64
}

// NewWorld creates a world with bounds and gravity
func NewWorld(min, max, gravity vmath.Vec3F, restitution float64) *World {
	return &World{
		Gravity:     gravity,
		Min:         min,
		Max:         max,
		Restitution: restitution,
	}
}

// AddBody adds b to the scene
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// Body returns the body with id, or nil
func (w *World) Body(id core.BodyID) *Body {
	for _, b := range w.Bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// RemoveBody drops the body with id, returns false if absent
func (w *World) RemoveBody(id core.BodyID) bool {
	for i, b := range w.Bodies {
		if b.ID == id {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			return true
		}
	}
	return false
}

// AddObserver registers a post-step callback (trigger zones)
func (w *World) AddObserver(o StepObserver) {
	w.observers = append(w.observers, o)
}

// Steps returns the number of fixed steps executed
func (w *World) Steps() int64 {
	return w.steps
}

// Step advances all awake bodies by dt then notifies observers
func (w *World) Step(frame int64, dt time.Duration) {
	sec := dt.Seconds()
	for _, b := range w.Bodies {
		if b.Sleeping {
			b.Prev = b.Pos
			continue
		}
		Integrate(b, w.Gravity, sec)
		if w.MaxSpeed > 0 {
			CapSpeed(&b.Vel, w.MaxSpeed)
		}
		if ReflectBounds(b, w.Min, w.Max, w.Restitution) {
			trySettle(b, w.Min.Y)
		}
	}
	w.steps++

	for _, o := range w.observers {
		o.AfterStep(frame, w.Bodies)
	}
}
