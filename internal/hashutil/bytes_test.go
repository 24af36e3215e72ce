package hashutil

import "testing"

func TestByteToFloat(t *testing.T) {
	tests := []struct {
		name     string
		b        byte
		min, max float64
		expected float64
	}{
		{
			name:     "byte 0 hits min exactly",
			b:        0,
			min:      0.5,
			max:      1.0,
			expected: 0.5,
		},
		{
			name:     "byte 255 hits max exactly",
			b:        255,
			min:      0.5,
			max:      1.0,
			expected: 1.0,
		},
		{
			name:     "midpoint byte",
			b:        51,
			min:      0,
			max:      5,
			expected: 1.0,
		},
		{
			name:     "negative range",
			b:        255,
			min:      -0.8,
			max:      0.8,
			expected: 0.8,
		},
		{
			name:     "degenerate range",
			b:        128,
			min:      0.3,
			max:      0.3,
			expected: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ByteToFloat(tt.b, tt.min, tt.max)
			if result != tt.expected {
				t.Errorf("ByteToFloat(%d, %v, %v) = %.15f, want %.15f",
					tt.b, tt.min, tt.max, result, tt.expected)
			}
		})
	}
}

func TestByteToFloatRange(t *testing.T) {
	// Every byte value must stay inside the closed range.
	ranges := []struct{ min, max float64 }{
		{0, 360},
		{0.5, 1.0},
		{0.35, 0.65},
		{0.01, 0.08},
		{0, 0.15},
	}

	for _, r := range ranges {
		for b := 0; b < 256; b++ {
			v := ByteToFloat(byte(b), r.min, r.max)
			if v < r.min || v > r.max {
				t.Fatalf("ByteToFloat(%d, %v, %v) = %v, out of range", b, r.min, r.max, v)
			}
		}
	}
}

func TestByteToFloatMonotonic(t *testing.T) {
	prev := ByteToFloat(0, 0, 1)
	for b := 1; b < 256; b++ {
		v := ByteToFloat(byte(b), 0, 1)
		if v <= prev {
			t.Fatalf("ByteToFloat not strictly increasing at byte %d: %v <= %v", b, v, prev)
		}
		prev = v
	}
}

func TestByteToIndex(t *testing.T) {
	tests := []struct {
		name     string
		b        byte
		count    int
		expected int
	}{
		{"byte 0 of 8", 0, 8, 0},
		{"byte 255 of 8", 255, 8, 7},
		{"byte 31 of 8", 31, 8, 0},
		{"byte 32 of 8", 32, 8, 1},
		{"byte 128 of 8", 128, 8, 4},
		{"byte 255 of 16", 255, 16, 15},
		{"byte 255 of 4", 255, 4, 3},
		{"single bucket", 255, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ByteToIndex(tt.b, tt.count)
			if result != tt.expected {
				t.Errorf("ByteToIndex(%d, %d) = %d, want %d", tt.b, tt.count, result, tt.expected)
			}
		})
	}
}

func TestByteToIndexFullCoverage(t *testing.T) {
	// All byte values must land in [0, count-1] for every enum size we use.
	for _, count := range []int{1, 2, 4, 8, 16} {
		hitTop := false
		for b := 0; b < 256; b++ {
			idx := ByteToIndex(byte(b), count)
			if idx < 0 || idx >= count {
				t.Fatalf("ByteToIndex(%d, %d) = %d, out of range", b, count, idx)
			}
			if idx == count-1 {
				hitTop = true
			}
		}
		if !hitTop {
			t.Errorf("ByteToIndex never produced top index for count=%d", count)
		}
	}
}

func TestByteToIndexUniform(t *testing.T) {
	// With count=8 each bucket must receive exactly 32 of the 256 byte values.
	counts := make([]int, 8)
	for b := 0; b < 256; b++ {
		counts[ByteToIndex(byte(b), 8)]++
	}
	for i, c := range counts {
		if c != 32 {
			t.Errorf("bucket %d received %d byte values, want 32", i, c)
		}
	}
}

func BenchmarkByteToFloat(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ByteToFloat(byte(i), 0, 360)
	}
}

func BenchmarkByteToIndex(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ByteToIndex(byte(i), 8)
	}
}
