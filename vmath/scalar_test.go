package vmath

import (
	"math"
	"testing"
)

func TestMoveToward(t *testing.T) {
	tests := []struct {
		name                     string
		current, target, maxStep float64
		want                     float64
	}{
		{"step up", 0.2, 1.0, 0.1, 0.3},
		{"step down", 1.0, 0.15, 0.25, 0.75},
		{"snap within reach", 0.95, 1.0, 0.1, 1.0},
		{"exact reach", 0.9, 1.0, 0.1, 1.0},
		{"zero step holds", 0.4, 1.0, 0, 0.4},
		{"already there", 1.0, 1.0, 0.5, 1.0},
		{"negative moves away", 0.5, 1.0, -0.1, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoveToward(tt.current, tt.target, tt.maxStep); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MoveToward(%v, %v, %v) = %v, want %v", tt.current, tt.target, tt.maxStep, got, tt.want)
			}
		})
	}
}

func TestMoveTowardNeverOvershoots(t *testing.T) {
	current := 0.15
	for i := 0; i < 100; i++ {
		current = MoveToward(current, 1.0, 0.033)
		if current > 1.0 {
			t.Fatalf("Overshot target at iteration %d: %v", i, current)
		}
	}
	if current != 1.0 {
		t.Errorf("Expected to settle on target, got %v", current)
	}
}

func TestLerpClampsT(t *testing.T) {
	if got := Lerp(1, 0.15, 0.5); math.Abs(got-0.575) > 1e-12 {
		t.Errorf("Lerp midpoint = %v", got)
	}
	if got := Lerp(1, 0.15, -1); got != 1 {
		t.Errorf("Lerp below range = %v, want 1", got)
	}
	if got := Lerp(1, 0.15, 2); got != 0.15 {
		t.Errorf("Lerp above range = %v, want 0.15", got)
	}
}

func TestClosestOnSegment(t *testing.T) {
	a, b := Vec3F{X: 0}, Vec3F{X: 10}

	if got := V3FClosestOnSegment(a, b, Vec3F{X: 4, Y: 3}); got != (Vec3F{X: 4}) {
		t.Errorf("Interior projection = %+v", got)
	}
	if got := V3FClosestOnSegment(a, b, Vec3F{X: -5, Y: 1}); got != a {
		t.Errorf("Expected clamp to a, got %+v", got)
	}
	if got := V3FClosestOnSegment(a, a, Vec3F{X: 3}); got != a {
		t.Errorf("Degenerate segment should collapse to a, got %+v", got)
	}
	if d := V3FDistSq(Vec3F{X: 1, Y: 2, Z: 2}, Vec3F{}); d != 9 {
		t.Errorf("V3FDistSq = %v, want 9", d)
	}
	if n := V3FNormalize(Vec3F{}); n != (Vec3F{}) {
		t.Errorf("Zero vector normalize = %+v", n)
	}
}
