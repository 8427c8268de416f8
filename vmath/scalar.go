package vmath

// Lerp interpolates from a to b by t; t is clamped to [0, 1]
func Lerp(a, b, t float64) float64 {
	t = Clamp(t, 0, 1)
	return a + (b-a)*t
}

// MoveToward steps current toward target by at most maxDelta, never overshooting
// Negative maxDelta moves away from target
func MoveToward(current, target, maxDelta float64) float64 {
	diff := target - current
	if diff <= maxDelta && diff >= -maxDelta {
		return target
	}
	if diff > 0 {
		return current + maxDelta
	}
	return current - maxDelta
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
