// Package zone detects dynamic bodies entering bounded regions and emits zone events
package zone

import (
	"github.com/lixenwraith/slowmo/vmath"
)

// Shape is a bounded trigger volume
type Shape interface {
	// Contains reports whether a sphere of radius r at p overlaps the volume
	Contains(p vmath.Vec3F, r float64) bool

	// Sweep reports whether a sphere of radius r moving from a to b overlapped the volume at any point
	Sweep(a, b vmath.Vec3F, r float64) bool
}

// Sphere is a spherical trigger volume
type Sphere struct {
	Center vmath.Vec3F
	Radius float64
}

func (s Sphere) Contains(p vmath.Vec3F, r float64) bool {
	reach := s.Radius + r
	return vmath.V3FDistSq(p, s.Center) <= reach*reach
}

func (s Sphere) Sweep(a, b vmath.Vec3F, r float64) bool {
	return s.Contains(vmath.V3FClosestOnSegment(a, b, s.Center), r)
}

// Box is an axis-aligned trigger volume
type Box struct {
	Min, Max vmath.Vec3F
}

func (bx Box) Contains(p vmath.Vec3F, r float64) bool {
	return p.X+r >= bx.Min.X && p.X-r <= bx.Max.X &&
		p.Y+r >= bx.Min.Y && p.Y-r <= bx.Max.Y &&
		p.Z+r >= bx.Min.Z && p.Z-r <= bx.Max.Z
}

// Sweep uses the slab test against the box expanded by r
func (bx Box) Sweep(a, b vmath.Vec3F, r float64) bool {
	if bx.Contains(a, r) || bx.Contains(b, r) {
		return true
	}
	d := vmath.V3FSub(b, a)
	tMin, tMax := 0.0, 1.0
	axes := [3][4]float64{
		{a.X, d.X, bx.Min.X - r, bx.Max.X + r},
		{a.Y, d.Y, bx.Min.Y - r, bx.Max.Y + r},
		{a.Z, d.Z, bx.Min.Z - r, bx.Max.Z + r},
	}
	for _, ax := range axes {
		origin, dir, lo, hi := ax[0], ax[1], ax[2], ax[3]
		if dir == 0 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}
		t1 := (lo - origin) / dir
		t2 := (hi - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}
