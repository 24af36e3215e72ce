package fingerprint

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestMapRejectsWrongLength(t *testing.T) {
	for _, n := range []int{0, 1, 16, 31, 33, 64} {
		if _, err := Map(make([]byte, n)); err != ErrInvalidDigestLength {
			t.Errorf("Map with %d bytes: got err %v, want ErrInvalidDigestLength", n, err)
		}
	}
}

func TestMapTotalOverByteDomain(t *testing.T) {
	// Every byte value on every position must map without error, and the
	// resulting axes must stay inside their documented closed ranges.
	digest := make([]byte, DigestSize)
	for pos := 0; pos < DigestSize; pos++ {
		for v := 0; v < 256; v++ {
			digest[pos] = byte(v)
			cfg, err := Map(digest)
			if err != nil {
				t.Fatalf("Map failed at pos=%d value=%d: %v", pos, v, err)
			}
			checkRanges(t, cfg)
		}
		digest[pos] = 0
	}
}

func checkRanges(t *testing.T, cfg *Config) {
	t.Helper()
	checks := []struct {
		name     string
		v        float64
		min, max float64
	}{
		{"primaryHue", cfg.PrimaryHue, 0, 360},
		{"primarySaturation", cfg.PrimarySaturation, 0.5, 1.0},
		{"primaryLightness", cfg.PrimaryLightness, 0.35, 0.65},
		{"secondaryHue", cfg.SecondaryHue, 0, 360},
		{"secondaryLightness", cfg.SecondaryLightness, 0.3, 0.7},
		{"patternFrequency", float64(cfg.PatternFrequency), 1, 16},
		{"patternDensity", cfg.PatternDensity, 0.1, 1.0},
		{"borderWidth", cfg.BorderWidth, 0.01, 0.08},
		{"rotationSpeed", cfg.RotationSpeed, -0.8, 0.8},
		{"particleDensity", cfg.ParticleDensity, 0, 1},
		{"displacementAmplitude", cfg.DisplacementAmplitude, 0, 0.4},
		{"displacementFrequency", float64(cfg.DisplacementFrequency), 1, 8},
		{"pulseRate", cfg.PulseRate, 0.2, 2.0},
		{"shimmerIntensity", cfg.ShimmerIntensity, 0, 0.6},
		{"colorShift", cfg.ColorShift, 0, 0.3},
		{"breatheScale", cfg.BreatheScale, 0, 0.15},
		{"reputationScore", float64(cfg.ReputationScore), 0, 100},
	}
	for _, c := range checks {
		if c.v < c.min || c.v > c.max {
			t.Errorf("%s = %v, out of [%v, %v]", c.name, c.v, c.min, c.max)
		}
	}
	if cfg.PrimaryHue >= 360 || cfg.SecondaryHue >= 360 {
		t.Errorf("hue at or past 360: primary=%v secondary=%v", cfg.PrimaryHue, cfg.SecondaryHue)
	}
	if cfg.GeometryClass < 0 || int(cfg.GeometryClass) >= GeometryClassCount {
		t.Errorf("geometryClass out of range: %d", cfg.GeometryClass)
	}
	if cfg.PatternType < 0 || int(cfg.PatternType) >= PatternKindCount {
		t.Errorf("patternType out of range: %d", cfg.PatternType)
	}
	if cfg.BorderStyle < 0 || int(cfg.BorderStyle) >= BorderStyleCount {
		t.Errorf("borderStyle out of range: %d", cfg.BorderStyle)
	}
}

func TestMapDeterministic(t *testing.T) {
	sum := sha256.Sum256([]byte("determinism check"))

	first, err := Map(sum[:])
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Map(sum[:])
		if err != nil {
			t.Fatalf("Map failed on iteration %d: %v", i, err)
		}
		if *again != *first {
			t.Fatalf("Map not deterministic on iteration %d:\n got %+v\nwant %+v", i, again, first)
		}
	}
}

func TestMapIgnoresReservedBytes(t *testing.T) {
	// Reserved bytes (5, 7, 9, 17, 24-31) feed no independent axis. Only
	// the reputation score, which folds in the whole digest, may move.
	base := make([]byte, DigestSize)
	for i := range base {
		base[i] = byte(i * 7)
	}
	ref, err := Map(base)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	reserved := []int{5, 7, 9, 17, 24, 25, 26, 27, 28, 29, 30, 31}
	for _, pos := range reserved {
		mutated := append([]byte(nil), base...)
		mutated[pos] ^= 0xff
		cfg, err := Map(mutated)
		if err != nil {
			t.Fatalf("Map rejected digest with mutated reserved byte %d: %v", pos, err)
		}
		got, want := *cfg, *ref
		got.ReputationScore, want.ReputationScore = 0, 0
		if got != want {
			t.Errorf("reserved byte %d changed a visual axis:\n got %+v\nwant %+v", pos, got, want)
		}
	}
}

func TestHueSeparation(t *testing.T) {
	// The secondary hue must sit 60-300 degrees away from the primary for
	// every digest, never on top of it.
	rng := rand.New(rand.NewSource(8004))
	digest := make([]byte, DigestSize)

	for i := 0; i < 20000; i++ {
		rng.Read(digest)
		cfg, err := Map(digest)
		if err != nil {
			t.Fatalf("Map failed: %v", err)
		}
		diff := math.Mod(cfg.SecondaryHue-cfg.PrimaryHue+360, 360)
		if diff < 60-1e-9 || diff > 300+1e-9 {
			t.Fatalf("hue separation %v outside [60,300] (primary=%v secondary=%v digest=%x)",
				diff, cfg.PrimaryHue, cfg.SecondaryHue, digest)
		}
	}
}

func TestSingleByteFlipSensitivity(t *testing.T) {
	// A flip of any assigned byte should move at least one visual axis by
	// more than floating-point noise, with high probability over random
	// digests. Verified statistically, not per-case.
	rng := rand.New(rand.NewSource(42))
	digest := make([]byte, DigestSize)

	const trials = 2000
	changed := 0
	for i := 0; i < trials; i++ {
		rng.Read(digest)
		ref, err := Map(digest)
		if err != nil {
			t.Fatalf("Map failed: %v", err)
		}

		pos := rng.Intn(DigestSize)
		flipped := append([]byte(nil), digest...)
		flipped[pos] ^= 1 << uint(rng.Intn(8))
		if bytes.Equal(flipped, digest) {
			continue
		}
		cfg, err := Map(flipped)
		if err != nil {
			t.Fatalf("Map failed on flipped digest: %v", err)
		}
		if configsDiffer(ref, cfg, 1e-9) {
			changed++
		}
	}

	// Reserved-byte flips legitimately change nothing but the score, so
	// demand a strong majority rather than every trial.
	if frac := float64(changed) / trials; frac < 0.60 {
		t.Errorf("only %.1f%% of single-byte flips changed an axis, want >= 60%%", frac*100)
	}
}

func configsDiffer(a, b *Config, eps float64) bool {
	if a.GeometryClass != b.GeometryClass || a.PatternType != b.PatternType ||
		a.BorderStyle != b.BorderStyle || a.PatternFrequency != b.PatternFrequency ||
		a.DisplacementFrequency != b.DisplacementFrequency ||
		a.ReputationScore != b.ReputationScore {
		return true
	}
	pairs := [][2]float64{
		{a.PrimaryHue, b.PrimaryHue},
		{a.PrimarySaturation, b.PrimarySaturation},
		{a.PrimaryLightness, b.PrimaryLightness},
		{a.SecondaryHue, b.SecondaryHue},
		{a.SecondaryLightness, b.SecondaryLightness},
		{a.PatternDensity, b.PatternDensity},
		{a.BorderWidth, b.BorderWidth},
		{a.RotationSpeed, b.RotationSpeed},
		{a.ParticleDensity, b.ParticleDensity},
		{a.DisplacementAmplitude, b.DisplacementAmplitude},
		{a.PulseRate, b.PulseRate},
		{a.ShimmerIntensity, b.ShimmerIntensity},
		{a.ColorShift, b.ColorShift},
		{a.BreatheScale, b.BreatheScale},
	}
	for _, p := range pairs {
		if math.Abs(p[0]-p[1]) > eps {
			return true
		}
	}
	return false
}

func TestNeighboringInputsDiffer(t *testing.T) {
	// Two inputs differing by one character must land on configurations
	// differing in at least one axis beyond floating-point noise.
	a, err := Generate(context.Background(), SHA256Digester{}, "hello world")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(context.Background(), SHA256Digester{}, "hello worle")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !configsDiffer(a, b, 1e-9) {
		t.Error("one-character input change produced indistinguishable configurations")
	}
}

type mapperVector struct {
	Description string  `json:"description"`
	Input       string  `json:"input"`
	DigestHex   string  `json:"digest_hex"`
	Expected    *Config `json:"expected"`
}

func TestMapperGoldenVectors(t *testing.T) {
	vectors := loadMapperVectors(t)

	for _, v := range vectors {
		t.Run(v.Description, func(t *testing.T) {
			digest, err := hex.DecodeString(v.DigestHex)
			if err != nil {
				t.Fatalf("bad digest hex: %v", err)
			}

			// The digest itself is part of the contract: provider output
			// for the input string must match the recorded bytes.
			sum := sha256.Sum256([]byte(v.Input))
			if !bytes.Equal(sum[:], digest) {
				t.Fatalf("sha256(%q) = %x, golden file says %s", v.Input, sum, v.DigestHex)
			}

			cfg, err := Map(digest)
			if err != nil {
				t.Fatalf("Map failed: %v", err)
			}
			compareConfigs(t, cfg, v.Expected)
		})
	}
}

func compareConfigs(t *testing.T, got, want *Config) {
	t.Helper()

	// The rotation axis passes through math.Sin/Cos, whose last-ulp
	// behavior is the only platform-sensitive arithmetic in the mapper.
	// Everything else must match bit for bit.
	const axisEps = 1e-12
	for i := 0; i < 3; i++ {
		if math.Abs(got.RotationAxis[i]-want.RotationAxis[i]) > axisEps {
			t.Errorf("rotationAxis[%d] = %.17g, want %.17g", i, got.RotationAxis[i], want.RotationAxis[i])
		}
	}
	g, w := *got, *want
	g.RotationAxis, w.RotationAxis = [3]float64{}, [3]float64{}
	if g != w {
		t.Errorf("configuration mismatch:\n got %+v\nwant %+v", g, w)
	}
}

func loadMapperVectors(t *testing.T) []mapperVector {
	t.Helper()
	path := filepath.Join("testdata", "mapper_golden.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load golden vectors: %v", err)
	}
	var vectors []mapperVector
	if err := json.Unmarshal(data, &vectors); err != nil {
		t.Fatalf("failed to parse golden vectors: %v", err)
	}
	if len(vectors) == 0 {
		t.Fatal("golden vector file is empty")
	}
	return vectors
}

func TestGenerateEmptyInput(t *testing.T) {
	for _, input := range []string{"", " ", "\t", "  \n  "} {
		cfg, err := Generate(context.Background(), SHA256Digester{}, input)
		if err != nil {
			t.Errorf("Generate(%q) returned error: %v", input, err)
		}
		if cfg != nil {
			t.Errorf("Generate(%q) returned a configuration, want absent", input)
		}
	}
}

func TestGenerateRepeatable(t *testing.T) {
	ctx := context.Background()
	first, err := Generate(ctx, SHA256Digester{}, "repeatable")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := Generate(ctx, SHA256Digester{}, "repeatable")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if *first != *second {
		t.Errorf("same input produced different configurations:\n%+v\n%+v", first, second)
	}
}

func TestConfigJSONRoundTrip(t *testing.T) {
	sum := sha256.Sum256([]byte("json round trip"))
	cfg, err := Map(sum[:])
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var back Config
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back != *cfg {
		t.Errorf("round trip changed configuration:\n got %+v\nwant %+v", back, cfg)
	}

	// Enums serialize as taxonomy names, not numeric indices.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal to map failed: %v", err)
	}
	var kind string
	if err := json.Unmarshal(raw["patternType"], &kind); err != nil {
		t.Errorf("patternType is not a string: %s", raw["patternType"])
	}
}

func BenchmarkMap(b *testing.B) {
	sum := sha256.Sum256([]byte("benchmark input"))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Map(sum[:]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	ctx := context.Background()
	d := SHA256Digester{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Generate(ctx, d, "benchmark input"); err != nil {
			b.Fatal(err)
		}
	}
}
