package pattern

import (
	"math"

	"github.com/p4nthera115/fingerprint-erc8004/internal/fingerprint"
)

// Evaluator is a closed-form pattern function over normalized coordinates
// (roughly [-1,1] about the grid center), returning an intensity in [0,1].
// Evaluators are continuous in x, y, and density apart from each pattern's
// intrinsic structure: small configuration changes move the pattern
// locally, while CellHash supplies the large-scale unpredictability.
type Evaluator func(x, y float64, freq int, density float64) float64

// Hub override: polar patterns degenerate at the origin (the angle is
// undefined and ring frequency aliases), so they blend toward a flat 0.5
// inside a smoothstep ramp around the center.
const (
	hubInner = 0.08
	hubOuter = 0.3
)

func hub(v, r float64) float64 {
	return Mix(0.5, v, Smoothstep(hubInner, hubOuter, r))
}

// evaluators dispatches by pattern kind. Tagged-variant dispatch over the
// taxonomy, one entry per kind.
var evaluators = map[fingerprint.PatternKind]Evaluator{
	fingerprint.PatternRings:   Rings,
	fingerprint.PatternSpiral:  Spiral,
	fingerprint.PatternGrid:    Grid,
	fingerprint.PatternVoronoi: Voronoi,
	fingerprint.PatternNoise:   Noise,
	fingerprint.PatternStripes: Stripes,
	fingerprint.PatternDots:    Dots,
	fingerprint.PatternHex:     Hex,
}

// Evaluate runs the evaluator for kind, clamping the result to [0,1].
// Unknown kinds fall back to rings rather than failing: a configuration
// with a future pattern index must still render something deterministic.
func Evaluate(kind fingerprint.PatternKind, x, y float64, freq int, density float64) float64 {
	eval, ok := evaluators[kind]
	if !ok {
		eval = Rings
	}
	return Clamp(eval(x, y, freq, density), 0, 1)
}

// Rings renders concentric bands around the center. Density sharpens the
// band contrast.
func Rings(x, y float64, freq int, density float64) float64 {
	r := math.Hypot(x, y)
	v := 0.5 + 0.5*math.Cos(r*float64(freq)*math.Pi)
	v = 0.5 + (v-0.5)*(0.4+0.6*density)
	return hub(v, r)
}

// Spiral winds freq arms around the center; density controls how tightly
// they twist with radius.
func Spiral(x, y float64, freq int, density float64) float64 {
	r := math.Hypot(x, y)
	theta := math.Atan2(y, x)
	v := 0.5 + 0.5*math.Sin(float64(freq)*theta+r*(4+8*density))
	return hub(v, r)
}

// Grid is a smooth checkerboard: the product of two sinusoids, with
// density as contrast.
func Grid(x, y float64, freq int, density float64) float64 {
	v := 0.5 + 0.5*math.Sin(math.Pi*float64(freq)*x)*math.Sin(math.Pi*float64(freq)*y)
	return 0.5 + (v-0.5)*(0.4+0.6*density)
}

// Voronoi approximates a cellular pattern: intensity falls off with the
// distance to the nearest of a small set of hashed feature points. The
// point layout derives from the frequency alone; density only widens the
// falloff, keeping the evaluator continuous in it.
func Voronoi(x, y float64, freq int, density float64) float64 {
	points := 3 + freq/2
	minDist := math.MaxFloat64
	for i := 0; i < points; i++ {
		fi := float64(i)
		px := CellHash(fi, 17.0, float64(freq), 0)*2 - 1
		py := CellHash(fi, 53.0, float64(freq), 0)*2 - 1
		if d := math.Hypot(x-px, y-py); d < minDist {
			minDist = d
		}
	}
	return 1 - Smoothstep(0, 0.6+0.4*density, minDist)
}

// Noise is value noise: CellHash sampled on an integer lattice at the
// pattern frequency, blended bilinearly with smoothstep weights, with
// density as contrast. Not gradient simplex noise, but close enough in
// texture and far cheaper.
func Noise(x, y float64, freq int, density float64) float64 {
	sx := (x + 1) * float64(freq)
	sy := (y + 1) * float64(freq)
	ix, iy := math.Floor(sx), math.Floor(sy)
	fx := Smoothstep(0, 1, sx-ix)
	fy := Smoothstep(0, 1, sy-iy)

	s1 := float64(freq)
	v00 := CellHash(ix, iy, s1, 0)
	v10 := CellHash(ix+1, iy, s1, 0)
	v01 := CellHash(ix, iy+1, s1, 0)
	v11 := CellHash(ix+1, iy+1, s1, 0)

	v := Mix(Mix(v00, v10, fx), Mix(v01, v11, fx), fy)
	return 0.5 + (v-0.5)*(0.4+0.6*density)
}

// Stripes renders parallel bands; density rotates their direction.
func Stripes(x, y float64, freq int, density float64) float64 {
	angle := density * math.Pi
	proj := x*math.Cos(angle) + y*math.Sin(angle)
	return 0.5 + 0.5*math.Sin(math.Pi*float64(freq)*proj)
}

// Dots places a round spot on each lattice cell; density sets the spot
// radius relative to the cell.
func Dots(x, y float64, freq int, density float64) float64 {
	sx := (x + 1) * float64(freq) / 2
	sy := (y + 1) * float64(freq) / 2
	dx := sx - math.Floor(sx) - 0.5
	dy := sy - math.Floor(sy) - 0.5
	d := math.Hypot(dx, dy)
	radius := 0.15 + 0.3*density
	return 1 - Smoothstep(radius*0.6, radius, d)
}

// Hex renders a hexagonal lattice using the three-axis hex distance.
func Hex(x, y float64, freq int, density float64) float64 {
	h := hexDist(x, y)
	v := 0.5 + 0.5*math.Cos(h*float64(freq)*2*math.Pi)
	return 0.5 + (v-0.5)*(0.4+0.6*density)
}

// hexDist is the distance to the origin in hexagon metric: the maximum of
// the absolute projections onto the three hex axes.
func hexDist(x, y float64) float64 {
	const k = 0.8660254037844386 // sqrt(3)/2
	a := math.Abs(x)
	b := math.Abs(x*0.5 + y*k)
	c := math.Abs(x*0.5 - y*k)
	return math.Max(a, math.Max(b, c))
}

// Field bundles the configuration-derived pattern parameters into a
// sampleable surface. Both renderers sample the same Field at their own
// resolution — the 9x9 grid with integer cell coordinates, the shader
// over continuous UV space.
type Field struct {
	Kind      fingerprint.PatternKind
	Frequency int
	Density   float64
	Seed1     float64
	Seed2     float64
}

// NewField derives a Field from a configuration. Seeds come from Config
// fields, never from raw digest bytes.
func NewField(cfg *fingerprint.Config) Field {
	seed1, seed2 := cfg.Seeds()
	return Field{
		Kind:      cfg.PatternType,
		Frequency: cfg.PatternFrequency,
		Density:   cfg.PatternDensity,
		Seed1:     seed1,
		Seed2:     seed2,
	}
}

// Value samples the pattern intensity at normalized coordinates.
func (f Field) Value(x, y float64) float64 {
	return Evaluate(f.Kind, x, y, f.Frequency, f.Density)
}

// Accent samples the accent-cell decision for a cell address, along with
// its opacity and animation phase. Cell addresses are the renderer's own
// tessellation units (grid indices for the vector renderer).
func (f Field) Accent(cellX, cellY float64) (accent bool, opacity, phase float64) {
	if !IsAccent(cellX, cellY, f.Seed1, f.Seed2) {
		return false, 0, 0
	}
	return true,
		AccentOpacity(cellX, cellY, f.Seed1, f.Seed2),
		AccentPhase(cellX, cellY, f.Seed1, f.Seed2)
}
