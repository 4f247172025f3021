package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestPlanarDistanceIgnoresHeight(t *testing.T) {
	a := Vec3{X: 0, Y: 10, Z: 0}
	b := Vec3{X: 3, Y: -4, Z: 4}
	if got := a.PlanarDistance(b); got != 5 {
		t.Fatalf("PlanarDistance = %v, want 5", got)
	}
	if got := a.Distance(b); math.Abs(got-math.Sqrt(25+196)) > 1e-12 {
		t.Fatalf("Distance = %v", got)
	}
}

func TestGroundRoundTrip(t *testing.T) {
	v := Vec3{X: 1, Y: 2, Z: 3}
	g := v.Ground()
	if g != (cp.Vector{X: 1, Y: 3}) {
		t.Fatalf("Ground = %v", g)
	}
	if got := FromGround(g, 2); got != v {
		t.Fatalf("FromGround = %v", got)
	}
	if got := v.WithGround(cp.Vector{X: 7, Y: 8}); got != (Vec3{X: 7, Y: 2, Z: 8}) {
		t.Fatalf("WithGround = %v", got)
	}
}

func TestClampAndLerp(t *testing.T) {
	cases := []struct {
		v, want float64
	}{
		{-1, 0},
		{0.25, 0.25},
		{3, 1},
	}
	for _, c := range cases {
		if got := Clamp01(c.v); got != c.want {
			t.Fatalf("Clamp01(%v) = %v", c.v, got)
		}
	}
	if got := Lerp(2, 4, 0.5); got != 3 {
		t.Fatalf("Lerp = %v", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !(Vec3{X: 1}).IsFinite() {
		t.Fatalf("finite vector reported non-finite")
	}
	for _, v := range []Vec3{{X: math.NaN()}, {Y: math.Inf(1)}, {Z: math.Inf(-1)}} {
		if v.IsFinite() {
			t.Fatalf("%v reported finite", v)
		}
	}
}
