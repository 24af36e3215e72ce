// Package hashutil provides the byte-to-scalar conversions used to map
// digest bytes onto visual axes. The formulas are a frozen contract:
// changing either one changes every fingerprint ever generated.
package hashutil

import "math"

// ByteToFloat maps a byte onto [min, max] using the formula
// min + (b/255)*(max-min). Both endpoints are reachable: byte 0 yields
// min exactly and byte 255 yields max exactly.
func ByteToFloat(b byte, min, max float64) float64 {
	return min + (float64(b)/255.0)*(max-min)
}

// ByteToIndex maps a byte onto [0, count-1] using floor((b/256)*count).
// The divisor is 256, not 255: dividing by 255 would push byte 255 to
// exactly count and out of range.
func ByteToIndex(b byte, count int) int {
	return int(math.Floor((float64(b) / 256.0) * float64(count)))
}
