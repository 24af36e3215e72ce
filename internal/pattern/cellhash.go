// Package pattern is the deterministic procedural substrate shared by the
// grid renderer and the shader uniform contract. It provides a seeded
// coordinate hash plus one closed-form evaluator per pattern kind, all
// driven entirely by configuration-derived values — no wall-clock
// randomness anywhere.
package pattern

import "math"

// AccentThreshold is the shared convention for accent-cell selection:
// cells whose hash exceeds it (about 5%) render in the primary hue.
const AccentThreshold = 0.95

// Coordinate offsets for the second and third hash invocations at the same
// cell. Without distinct offsets the three calls would return correlated
// values.
const (
	opacityOffsetX = 41.3
	opacityOffsetY = 17.7
	phaseOffsetX   = 89.2
	phaseOffsetY   = 63.4
)

// Fract returns the fractional part of v, always in [0,1).
func Fract(v float64) float64 {
	return v - math.Floor(v)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Smoothstep is the standard cubic Hermite ramp: 0 at or below edge0,
// 1 at or above edge1, smooth in between.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Mix linearly interpolates between a and b by t.
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// CellHash is the deterministic coordinate hash: a sine-based scramble
// mapping (x, y, seed1, seed2) to [0,1). The exact formula is part of the
// visual contract — both renderers must reproduce identical per-cell
// values from identical seeds, so do not "improve" it or swap in a
// cryptographic hash. Spatial pseudo-randomness is its only required
// property.
func CellHash(x, y, seed1, seed2 float64) float64 {
	qx := x + seed1*0.31 + 7.3
	qy := y + seed2*0.47 + 11.9
	return Fract(math.Sin(qx*211.7+qy*391.1) * 98765.4321)
}

// IsAccent reports whether the cell at (x, y) is an accent cell.
func IsAccent(x, y, seed1, seed2 float64) bool {
	return CellHash(x, y, seed1, seed2) > AccentThreshold
}

// AccentOpacity returns the opacity for an accent cell, in [0.6, 1.0).
// It uses a second hash invocation at offset coordinates.
func AccentOpacity(x, y, seed1, seed2 float64) float64 {
	return 0.6 + 0.4*CellHash(x+opacityOffsetX, y+opacityOffsetY, seed1, seed2)
}

// AccentPhase returns the animation phase fraction for an accent cell,
// in [0,1), from a third hash invocation at another offset.
func AccentPhase(x, y, seed1, seed2 float64) float64 {
	return CellHash(x+phaseOffsetX, y+phaseOffsetY, seed1, seed2)
}
