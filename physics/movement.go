package physics

import (
	"github.com/lixenwraith/slowmo/vmath"
)

// CapSpeed limits the velocity magnitude to maxSpeed
// Returns true if velocity was clamped
func CapSpeed(vel *vmath.Vec3F, maxSpeed float64) bool {
	magSq := vmath.V3FMagSq(*vel)
	if magSq <= maxSpeed*maxSpeed {
		return false
	}
	*vel = vmath.V3FScale(vmath.V3FNormalize(*vel), maxSpeed)
	return true
}

// SettleThreshold is the speed below which a body resting on the floor is put to sleep
const SettleThreshold = 0.5

// trySettle sleeps a body that has come to rest on the floor plane
func trySettle(b *Body, floorY float64) bool {
	if b.Pos.Y-b.Radius > floorY+1e-6 {
		return false
	}
	if vmath.V3FMagSq(b.Vel) > SettleThreshold*SettleThreshold {
		return false
	}
	b.Vel = vmath.Vec3F{}
	b.Sleeping = true
	return true
}
