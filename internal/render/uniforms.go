package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/p4nthera115/fingerprint-erc8004/internal/fingerprint"
	"github.com/p4nthera115/fingerprint-erc8004/internal/pattern"
)

// Uniforms is the consumption contract for the 3D shader renderer: the
// flat block of values it uploads each frame. Field names mirror the
// shader uniform names. The shader's pattern functions mirror the pattern
// package's evaluators over continuous UV space, seeded by the same two
// seeds, so both renderers reproduce the same logical fingerprint.
type Uniforms struct {
	Time float64 `json:"uTime"`

	PrimaryColor   [3]float64 `json:"uPrimaryColor"`   // sRGB in [0,1]
	SecondaryColor [3]float64 `json:"uSecondaryColor"` // sRGB in [0,1]

	Geometry string `json:"geometry"` // geometry selection, not a uniform proper

	PatternType      int     `json:"uPatternType"` // index into the frozen taxonomy
	PatternFrequency float64 `json:"uPatternFrequency"`
	PatternDensity   float64 `json:"uPatternDensity"`
	Seed1            float64 `json:"uSeed1"`
	Seed2            float64 `json:"uSeed2"`

	RotationSpeed float64    `json:"uRotationSpeed"`
	RotationAxis  [3]float64 `json:"uRotationAxis"`

	ParticleDensity       float64 `json:"uParticleDensity"`
	DisplacementAmplitude float64 `json:"uDisplacementAmplitude"`
	DisplacementFrequency float64 `json:"uDisplacementFrequency"`
	PulseRate             float64 `json:"uPulseRate"`
	ShimmerIntensity      float64 `json:"uShimmerIntensity"`
	ColorShift            float64 `json:"uColorShift"`
	BreatheScale          float64 `json:"uBreatheScale"`
}

// BuildUniforms flattens a configuration into the shader uniform block.
// Pure: the configuration is read, never mutated, and the clock is the
// only time source.
func BuildUniforms(cfg *fingerprint.Config, clock float64) Uniforms {
	seed1, seed2 := cfg.Seeds()
	return Uniforms{
		Time:                  clock,
		PrimaryColor:          hslVec(cfg.PrimaryHue, cfg.PrimarySaturation, cfg.PrimaryLightness),
		SecondaryColor:        hslVec(cfg.SecondaryHue, cfg.PrimarySaturation, cfg.SecondaryLightness),
		Geometry:              cfg.GeometryClass.String(),
		PatternType:           int(cfg.PatternType),
		PatternFrequency:      float64(cfg.PatternFrequency),
		PatternDensity:        cfg.PatternDensity,
		Seed1:                 seed1,
		Seed2:                 seed2,
		RotationSpeed:         cfg.RotationSpeed,
		RotationAxis:          cfg.RotationAxis,
		ParticleDensity:       cfg.ParticleDensity,
		DisplacementAmplitude: cfg.DisplacementAmplitude,
		DisplacementFrequency: float64(cfg.DisplacementFrequency),
		PulseRate:             cfg.PulseRate,
		ShimmerIntensity:      cfg.ShimmerIntensity,
		ColorShift:            cfg.ColorShift,
		BreatheScale:          cfg.BreatheScale,
	}
}

func hslVec(h, s, l float64) [3]float64 {
	c := colorful.Hsl(h, s, l)
	return [3]float64{
		pattern.Clamp(c.R, 0, 1),
		pattern.Clamp(c.G, 0, 1),
		pattern.Clamp(c.B, 0, 1),
	}
}

func primaryHex(cfg *fingerprint.Config) string {
	return colorful.Hsl(cfg.PrimaryHue, cfg.PrimarySaturation, cfg.PrimaryLightness).Hex()
}
