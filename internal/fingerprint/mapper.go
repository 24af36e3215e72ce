// Package fingerprint maps a 32-byte cryptographic digest onto a visual
// configuration: the deterministic, renderer-agnostic record of every
// parameter that defines an identity fingerprint. The byte-range table in
// Map is a versioned contract — identical digests produce bit-identical
// configurations on every platform.
package fingerprint

import (
	"math"

	"github.com/p4nthera115/fingerprint-erc8004/internal/hashutil"
)

// Digest byte assignments. Reserved bytes are part of the contract: they
// are ignored, never rejected, so future axes can claim them without
// breaking old digests.
const (
	bytePrimaryHue         = 0
	bytePrimarySaturation  = 1
	bytePrimaryLightness   = 2
	byteSecondaryHueOffset = 3
	byteSecondaryLightness = 4
	// byte 5 reserved
	byteGeometryClass = 6
	// byte 7 reserved (geometry subdivision)
	bytePatternType = 8
	// byte 9 reserved (pattern variant)
	bytePatternFrequency = 10
	bytePatternDensity   = 11
	byteBorderStyle      = 12
	byteBorderWidth      = 13
	byteRotationSpeed    = 14
	byteRotationSign     = 15 // also seeds the rotation axis angle
	byteParticleDensity  = 16
	// byte 17 reserved
	byteDisplacementAmplitude = 18
	byteDisplacementFrequency = 19
	bytePulseRate             = 20
	byteShimmerIntensity      = 21
	byteColorShift            = 22
	byteBreatheScale          = 23
	// bytes 24-31 reserved for future axes
)

// Map converts a 32-byte digest into a visual configuration. It is a pure
// total function over digest content: every byte value on every axis is
// valid, and the only failure is a digest of the wrong length.
func Map(digest []byte) (*Config, error) {
	if len(digest) != DigestSize {
		return nil, ErrInvalidDigestLength
	}

	cfg := &Config{
		PrimarySaturation:  hashutil.ByteToFloat(digest[bytePrimarySaturation], 0.5, 1.0),
		PrimaryLightness:   hashutil.ByteToFloat(digest[bytePrimaryLightness], 0.35, 0.65),
		SecondaryLightness: hashutil.ByteToFloat(digest[byteSecondaryLightness], 0.3, 0.7),

		GeometryClass: GeometryClass(hashutil.ByteToIndex(digest[byteGeometryClass], GeometryClassCount)),

		PatternType:      PatternKind(hashutil.ByteToIndex(digest[bytePatternType], PatternKindCount)),
		PatternFrequency: 1 + hashutil.ByteToIndex(digest[bytePatternFrequency], 16),
		PatternDensity:   hashutil.ByteToFloat(digest[bytePatternDensity], 0.1, 1.0),

		BorderStyle: BorderStyle(hashutil.ByteToIndex(digest[byteBorderStyle], BorderStyleCount)),
		BorderWidth: hashutil.ByteToFloat(digest[byteBorderWidth], 0.01, 0.08),

		ParticleDensity:       hashutil.ByteToFloat(digest[byteParticleDensity], 0, 1),
		DisplacementAmplitude: hashutil.ByteToFloat(digest[byteDisplacementAmplitude], 0, 0.4),
		DisplacementFrequency: 1 + hashutil.ByteToIndex(digest[byteDisplacementFrequency], 8),
		PulseRate:             hashutil.ByteToFloat(digest[bytePulseRate], 0.2, 2.0),
		ShimmerIntensity:      hashutil.ByteToFloat(digest[byteShimmerIntensity], 0, 0.6),
		ColorShift:            hashutil.ByteToFloat(digest[byteColorShift], 0, 0.3),
		BreatheScale:          hashutil.ByteToFloat(digest[byteBreatheScale], 0, 0.15),
	}

	// The mod folds the byte-255 endpoint (360.0) back to 0 so the hue
	// stays inside [0,360).
	cfg.PrimaryHue = math.Mod(hashutil.ByteToFloat(digest[bytePrimaryHue], 0, 360), 360)

	// Secondary hue is coupled to the primary instead of being sampled
	// independently: a forced 60-300 degree offset keeps the two hues
	// perceptually separated, so dissimilar inputs never collapse into
	// near-monochrome fingerprints by byte coincidence.
	offset := hashutil.ByteToFloat(digest[byteSecondaryHueOffset], 60, 300)
	cfg.SecondaryHue = math.Mod(cfg.PrimaryHue+offset, 360)

	// One byte carries both the rotation sign (high bit region) and the
	// rotation axis angle. The axis is derived, not independently random.
	speed := hashutil.ByteToFloat(digest[byteRotationSpeed], 0, 0.8)
	if digest[byteRotationSign] >= 128 {
		speed = -speed
	}
	cfg.RotationSpeed = speed

	angle := hashutil.ByteToFloat(digest[byteRotationSign], 0, 2*math.Pi)
	sin, cos := math.Sin(angle), math.Cos(angle)
	cfg.RotationAxis = [3]float64{sin, cos, sin * cos}

	cfg.ReputationScore = reputationScore(digest)

	return cfg, nil
}

// reputationScore derives the placeholder trust score from the whole
// digest. Provisional: the real source will be an external trust-registry
// lookup, which replaces this wholesale.
func reputationScore(digest []byte) int {
	sum := 0
	for _, b := range digest {
		sum += int(b)
	}
	return sum % 101
}
