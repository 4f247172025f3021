package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Vec3 is a world position. Y is height; X and Z span the ground plane.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// Distance is the straight-line distance including height.
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Ground projects v onto the ground plane.
func (v Vec3) Ground() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

// PlanarDistance ignores height.
func (v Vec3) PlanarDistance(o Vec3) float64 {
	return v.Ground().Distance(o.Ground())
}

// WithGround replaces the ground-plane coordinates and keeps the height.
func (v Vec3) WithGround(g cp.Vector) Vec3 {
	return Vec3{X: g.X, Y: v.Y, Z: g.Y}
}

func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}

// FromGround lifts a ground-plane vector to height y.
func FromGround(g cp.Vector, y float64) Vec3 {
	return Vec3{X: g.X, Y: y, Z: g.Y}
}
