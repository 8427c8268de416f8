package physics

import (
	"github.com/lixenwraith/slowmo/core"
	"github.com/lixenwraith/slowmo/vmath"
)

// Body is a dynamic point mass with collision radius
// Prev holds the position before the last integration step, used for swept trigger tests
type Body struct {
	ID     core.BodyID
	Pos    vmath.Vec3F
	Prev   vmath.Vec3F
	Vel    vmath.Vec3F
	Radius float64

	// Sleeping bodies are skipped by integration
	Sleeping bool
}

// NewBody creates an awake body at pos
func NewBody(id core.BodyID, pos vmath.Vec3F, radius float64) *Body {
	return &Body{
		ID:     id,
		Pos:    pos,
		Prev:   pos,
		Radius: radius,
	}
}

// Interpolated returns the render position between Prev and Pos; alpha is the stepper remainder
func (b *Body) Interpolated(alpha float64) vmath.Vec3F {
	alpha = vmath.Clamp(alpha, 0, 1)
	return vmath.V3FAdd(b.Prev, vmath.V3FScale(vmath.V3FSub(b.Pos, b.Prev), alpha))
}

// Teleport moves the body without producing a swept segment
func (b *Body) Teleport(pos vmath.Vec3F) {
	b.Pos = pos
	b.Prev = pos
}
