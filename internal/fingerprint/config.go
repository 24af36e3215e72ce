package fingerprint

import (
	"encoding/json"
	"fmt"
)

// GeometryClass selects the base 3D geometry the shader renderer builds.
type GeometryClass int

const (
	GeometrySphere GeometryClass = iota
	GeometryTorus
	GeometryCube
	GeometryOctahedron
	GeometryIcosahedron
	GeometryTorusKnot
	GeometryCone
	GeometryCapsule

	GeometryClassCount = 8
)

var geometryNames = [GeometryClassCount]string{
	"sphere", "torus", "cube", "octahedron",
	"icosahedron", "torusKnot", "cone", "capsule",
}

// PatternKind selects the procedural pattern evaluator. The ordering is a
// frozen contract; digest byte 8 indexes into it.
type PatternKind int

const (
	PatternRings PatternKind = iota
	PatternSpiral
	PatternGrid
	PatternVoronoi
	PatternNoise
	PatternStripes
	PatternDots
	PatternHex

	PatternKindCount = 8
)

var patternNames = [PatternKindCount]string{
	"rings", "spiral", "grid", "voronoi",
	"noise", "stripes", "dots", "hex",
}

// BorderStyle selects the cell border treatment in the grid renderer.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderThin
	BorderThick
	BorderGlow

	BorderStyleCount = 4
)

var borderNames = [BorderStyleCount]string{"none", "thin", "thick", "glow"}

func (g GeometryClass) String() string {
	if g < 0 || int(g) >= GeometryClassCount {
		return fmt.Sprintf("geometry(%d)", int(g))
	}
	return geometryNames[g]
}

func (p PatternKind) String() string {
	if p < 0 || int(p) >= PatternKindCount {
		return fmt.Sprintf("pattern(%d)", int(p))
	}
	return patternNames[p]
}

func (s BorderStyle) String() string {
	if s < 0 || int(s) >= BorderStyleCount {
		return fmt.Sprintf("border(%d)", int(s))
	}
	return borderNames[s]
}

// GeometryNames returns the geometry taxonomy in contract order.
func GeometryNames() []string { return append([]string(nil), geometryNames[:]...) }

// PatternNames returns the pattern taxonomy in contract order.
func PatternNames() []string { return append([]string(nil), patternNames[:]...) }

// BorderNames returns the border taxonomy in contract order.
func BorderNames() []string { return append([]string(nil), borderNames[:]...) }

func (g GeometryClass) MarshalJSON() ([]byte, error) { return json.Marshal(g.String()) }
func (p PatternKind) MarshalJSON() ([]byte, error)   { return json.Marshal(p.String()) }
func (s BorderStyle) MarshalJSON() ([]byte, error)   { return json.Marshal(s.String()) }

func (g *GeometryClass) UnmarshalJSON(data []byte) error {
	i, err := unmarshalEnum(data, geometryNames[:], "geometry class")
	*g = GeometryClass(i)
	return err
}

func (p *PatternKind) UnmarshalJSON(data []byte) error {
	i, err := unmarshalEnum(data, patternNames[:], "pattern kind")
	*p = PatternKind(i)
	return err
}

func (s *BorderStyle) UnmarshalJSON(data []byte) error {
	i, err := unmarshalEnum(data, borderNames[:], "border style")
	*s = BorderStyle(i)
	return err
}

func unmarshalEnum(data []byte, names []string, what string) (int, error) {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return 0, err
	}
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, name)
}

// Config is the visual configuration: the sole artifact passed from the
// mapper to any renderer. It is plain data, immutable by convention, and
// serializes as a flat JSON record. Every field derives from a fixed digest
// byte range (see Map); renderers must not add randomness on top of it.
type Config struct {
	PrimaryHue         float64 `json:"primaryHue"`         // [0,360)
	PrimarySaturation  float64 `json:"primarySaturation"`  // [0.5,1.0]
	PrimaryLightness   float64 `json:"primaryLightness"`   // [0.35,0.65]
	SecondaryHue       float64 `json:"secondaryHue"`       // primary + [60,300] mod 360
	SecondaryLightness float64 `json:"secondaryLightness"` // [0.3,0.7]

	GeometryClass GeometryClass `json:"geometryClass"`

	PatternType      PatternKind `json:"patternType"`
	PatternFrequency int         `json:"patternFrequency"` // [1,16]
	PatternDensity   float64     `json:"patternDensity"`   // [0.1,1.0]

	BorderStyle BorderStyle `json:"borderStyle"`
	BorderWidth float64     `json:"borderWidth"` // [0.01,0.08]

	RotationSpeed float64    `json:"rotationSpeed"` // signed, [-0.8,0.8]
	RotationAxis  [3]float64 `json:"rotationAxis"`  // unit-ish, derived from byte 15

	ParticleDensity       float64 `json:"particleDensity"`       // [0,1]
	DisplacementAmplitude float64 `json:"displacementAmplitude"` // [0,0.4]
	DisplacementFrequency int     `json:"displacementFrequency"` // [1,8]
	PulseRate             float64 `json:"pulseRate"`             // [0.2,2.0]
	ShimmerIntensity      float64 `json:"shimmerIntensity"`      // [0,0.6]
	ColorShift            float64 `json:"colorShift"`            // [0,0.3]
	BreatheScale          float64 `json:"breatheScale"`          // [0,0.15]

	// ReputationScore is a placeholder byte-derived integer in [0,100].
	// The intended replacement is an external trust-registry lookup.
	ReputationScore int `json:"reputationScore"`
}

// Seeds derives the two procedural seeds the cell generator consumes.
// They come from configuration fields rather than raw digest bytes so the
// procedural layer stays decoupled from the digest byte layout.
func (c *Config) Seeds() (seed1, seed2 float64) {
	seed1 = c.PatternDensity*100 + c.ShimmerIntensity*10
	seed2 = c.BreatheScale*100 + c.ColorShift*100
	return seed1, seed2
}

// Env flattens the configuration into a map keyed by the JSON field names.
// Scan filter expressions evaluate against this environment.
func (c *Config) Env() map[string]any {
	return map[string]any{
		"primaryHue":            c.PrimaryHue,
		"primarySaturation":     c.PrimarySaturation,
		"primaryLightness":      c.PrimaryLightness,
		"secondaryHue":          c.SecondaryHue,
		"secondaryLightness":    c.SecondaryLightness,
		"geometryClass":         c.GeometryClass.String(),
		"patternType":           c.PatternType.String(),
		"patternFrequency":      c.PatternFrequency,
		"patternDensity":        c.PatternDensity,
		"borderStyle":           c.BorderStyle.String(),
		"borderWidth":           c.BorderWidth,
		"rotationSpeed":         c.RotationSpeed,
		"particleDensity":       c.ParticleDensity,
		"displacementAmplitude": c.DisplacementAmplitude,
		"displacementFrequency": c.DisplacementFrequency,
		"pulseRate":             c.PulseRate,
		"shimmerIntensity":      c.ShimmerIntensity,
		"colorShift":            c.ColorShift,
		"breatheScale":          c.BreatheScale,
		"reputationScore":       c.ReputationScore,
	}
}

// Axis returns a named float axis for target comparisons in scans.
func (c *Config) Axis(name string) (float64, bool) {
	switch name {
	case "primaryHue":
		return c.PrimaryHue, true
	case "primarySaturation":
		return c.PrimarySaturation, true
	case "primaryLightness":
		return c.PrimaryLightness, true
	case "secondaryHue":
		return c.SecondaryHue, true
	case "secondaryLightness":
		return c.SecondaryLightness, true
	case "patternFrequency":
		return float64(c.PatternFrequency), true
	case "patternDensity":
		return c.PatternDensity, true
	case "borderWidth":
		return c.BorderWidth, true
	case "rotationSpeed":
		return c.RotationSpeed, true
	case "particleDensity":
		return c.ParticleDensity, true
	case "displacementAmplitude":
		return c.DisplacementAmplitude, true
	case "displacementFrequency":
		return float64(c.DisplacementFrequency), true
	case "pulseRate":
		return c.PulseRate, true
	case "shimmerIntensity":
		return c.ShimmerIntensity, true
	case "colorShift":
		return c.ColorShift, true
	case "breatheScale":
		return c.BreatheScale, true
	case "reputationScore":
		return float64(c.ReputationScore), true
	}
	return 0, false
}

// AxisNames lists the float axes accepted by Axis, in table order.
func AxisNames() []string {
	return []string{
		"primaryHue", "primarySaturation", "primaryLightness",
		"secondaryHue", "secondaryLightness",
		"patternFrequency", "patternDensity", "borderWidth",
		"rotationSpeed", "particleDensity",
		"displacementAmplitude", "displacementFrequency",
		"pulseRate", "shimmerIntensity", "colorShift", "breatheScale",
		"reputationScore",
	}
}
