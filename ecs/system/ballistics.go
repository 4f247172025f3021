package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/skirmish/common"
	"github.com/milk9111/skirmish/ecs/component"
	"github.com/milk9111/skirmish/prefabs"
)

// Shot is a solved launch: initial velocity, time of flight and the gravity
// the flight is integrated under.
type Shot struct {
	Kind     component.BallisticKind
	Velocity common.Vec3
	Duration float64
	Gravity  float64
	// Degenerate is set when the arc solution needed the fallback speed.
	Degenerate bool
}

// SelectBallisticKind picks flat below the arc threshold and arced at or
// above it.
func SelectBallisticKind(horizontal float64, b prefabs.BallisticsTuning) component.BallisticKind {
	if horizontal < b.ArcThreshold {
		return component.BallisticFlat
	}
	return component.BallisticArced
}

func SolveShot(from, to common.Vec3, b prefabs.BallisticsTuning) Shot {
	ground := to.Ground().Sub(from.Ground())
	horizontal := ground.Length()
	heading := cp.Vector{X: 1}
	if horizontal > 0 {
		heading = ground.Mult(1 / horizontal)
	}
	if SelectBallisticKind(horizontal, b) == component.BallisticFlat {
		return solveFlat(from, to, heading, horizontal, b)
	}
	return solveArc(to.Y-from.Y, heading, horizontal, b)
}

func solveFlat(from, to common.Vec3, heading cp.Vector, horizontal float64, b prefabs.BallisticsTuning) Shot {
	rise := to.Y - from.Y
	pitch := math.Atan2(rise, horizontal)
	if minPitch := common.DegToRad(b.MinPitchDeg); pitch < minPitch {
		pitch = minPitch
	}
	dir := common.FromGround(heading.Mult(math.Cos(pitch)), math.Sin(pitch))
	return Shot{
		Kind:     component.BallisticFlat,
		Velocity: dir.Scale(b.FlatSpeed),
		Duration: from.Distance(to) / b.FlatSpeed,
	}
}

// solveArc uses the fixed launch angle and solves launch speed from the range
// equation, corrected for height delta h when it is not negligible.
func solveArc(h float64, heading cp.Vector, r float64, b prefabs.BallisticsTuning) Shot {
	g := b.Gravity
	theta := common.DegToRad(b.ArcAngleDeg)
	cos, sin := math.Cos(theta), math.Sin(theta)
	flat := math.Sqrt(r * g / math.Sin(2*theta))

	var speed float64
	degenerate := false
	if math.Abs(h) < b.HeightEpsilon {
		speed = flat
	} else {
		denom := 2 * cos * cos * (r*math.Tan(theta) - h)
		if denom <= 0 {
			speed = b.DegenerateMultiplier * flat
			degenerate = true
		} else {
			speed = math.Sqrt(g * r * r / denom)
		}
	}

	vx := speed * cos
	vy := speed * sin
	return Shot{
		Kind:       component.BallisticArced,
		Velocity:   common.FromGround(heading.Mult(vx), vy),
		Duration:   arcFlightTime(vx, vy, h, r, g),
		Gravity:    g,
		Degenerate: degenerate,
	}
}

// arcFlightTime solves h = vy·t − ½g·t² for t. Of the positive roots, the one
// closest to the horizontal travel time is used, so shots that land on the way
// up are timed correctly too.
func arcFlightTime(vx, vy, h, r, g float64) float64 {
	horizontalTime := r / vx
	disc := vy*vy - 2*g*h
	if disc < 0 {
		return horizontalTime
	}
	sq := math.Sqrt(disc)
	best := math.Inf(1)
	for _, t := range [2]float64{(vy - sq) / g, (vy + sq) / g} {
		if t <= 0 {
			continue
		}
		if math.Abs(t-horizontalTime) < math.Abs(best-horizontalTime) {
			best = t
		}
	}
	if math.IsInf(best, 1) {
		return horizontalTime
	}
	return best
}
