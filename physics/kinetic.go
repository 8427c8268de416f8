package physics

import (
	"github.com/lixenwraith/slowmo/vmath"
)

// Integrate performs semi-implicit Euler integration: v = v + a*dt; p = p + v*dt
func Integrate(b *Body, accel vmath.Vec3F, dt float64) {
	b.Prev = b.Pos
	b.Vel = vmath.V3FAdd(b.Vel, vmath.V3FScale(accel, dt))
	b.Pos = vmath.V3FAdd(b.Pos, vmath.V3FScale(b.Vel, dt))
}

// ApplyImpulse adds velocity delta (momentum transfer)
func ApplyImpulse(b *Body, dv vmath.Vec3F) {
	b.Vel = vmath.V3FAdd(b.Vel, dv)
}

// SetImpulse overrides velocity (launch/hard redirect)
func SetImpulse(b *Body, v vmath.Vec3F) {
	b.Vel = v
}

// reflectAxis clamps one coordinate into [lo+r, hi-r], reversing and damping velocity on contact
func reflectAxis(pos, vel *float64, lo, hi, r, restitution float64) bool {
	if *pos-r < lo {
		*pos = lo + r
		if *vel < 0 {
			*vel = -*vel * restitution
		}
		return true
	}
	if *pos+r > hi {
		*pos = hi - r
		if *vel > 0 {
			*vel = -*vel * restitution
		}
		return true
	}
	return false
}

// ReflectBounds keeps the body inside the box [min, max], returns true if any reflection occurred
// Axes where min == max are unconstrained
func ReflectBounds(b *Body, min, max vmath.Vec3F, restitution float64) bool {
	hit := false
	if min.X != max.X && reflectAxis(&b.Pos.X, &b.Vel.X, min.X, max.X, b.Radius, restitution) {
		hit = true
	}
	if min.Y != max.Y && reflectAxis(&b.Pos.Y, &b.Vel.Y, min.Y, max.Y, b.Radius, restitution) {
		hit = true
	}
	if min.Z != max.Z && reflectAxis(&b.Pos.Z, &b.Vel.Z, min.Z, max.Z, b.Radius, restitution) {
		hit = true
	}
	return hit
}
