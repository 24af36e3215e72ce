// Package render consumes a visual configuration and produces concrete
// renderer output: a flat vector grid (SVG) and the uniform block a 3D
// shader renderer uploads. Both are pure functions of the configuration
// plus an explicit clock — no renderer-local randomness, no ambient time.
package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/p4nthera115/fingerprint-erc8004/internal/fingerprint"
	"github.com/p4nthera115/fingerprint-erc8004/internal/pattern"
)

// GridSize is the frozen tessellation contract for the vector renderer:
// 9x9 cells. Changing it changes every rendered fingerprint.
const GridSize = 9

// Cell is a single grid cell, fully determined by the configuration.
type Cell struct {
	Row, Col int
	Value    float64 // pattern intensity in [0,1]
	Accent   bool
	Opacity  float64 // fill opacity after clock modulation
	Phase    float64 // accent animation phase fraction
	Fill     string  // hex color
}

// Grid is the cell matrix the SVG serializer draws.
type Grid struct {
	Cells      [GridSize][GridSize]Cell
	Background string
	Config     *fingerprint.Config
}

// BuildGrid evaluates the procedural field over the 9x9 grid. The clock is
// the external animation time in seconds; passing the same clock twice
// yields an identical grid.
func BuildGrid(cfg *fingerprint.Config, clock float64) *Grid {
	field := pattern.NewField(cfg)

	accentFill := colorful.Hsl(cfg.PrimaryHue, cfg.PrimarySaturation, cfg.PrimaryLightness).Hex()
	bg := colorful.Hsl(cfg.SecondaryHue, 0.12, 0.07).Hex()

	g := &Grid{Background: bg, Config: cfg}
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			// Normalize cell centers to [-1,1] about the grid center.
			nx := (float64(col) - (GridSize-1)/2.0) / ((GridSize - 1) / 2.0)
			ny := (float64(row) - (GridSize-1)/2.0) / ((GridSize - 1) / 2.0)

			cell := Cell{
				Row:   row,
				Col:   col,
				Value: field.Value(nx, ny),
			}

			// Accent addressing uses integer cell coordinates: the grid
			// samples the same conceptual field the shader samples in UV
			// space, just at its own tessellation.
			accent, opacity, phase := field.Accent(float64(col), float64(row))
			if accent {
				cell.Accent = true
				cell.Phase = phase
				cell.Fill = accentFill
				// Accent cells pulse with the configured rate, offset by
				// their per-cell phase so they never blink in unison.
				pulse := 0.8 + 0.2*math.Sin(2*math.Pi*(clock*cfg.PulseRate+phase))
				cell.Opacity = pattern.Clamp(opacity*pulse, 0, 1)
			} else {
				cell.Fill = patternFill(cfg, cell.Value, clock, nx, ny)
				cell.Opacity = 1
			}

			g.Cells[row][col] = cell
		}
	}
	return g
}

// patternFill maps a pattern intensity onto the low-saturation fill used
// by non-accent cells: a secondary-hue tint whose lightness tracks the
// intensity, with shimmer as a subtle clock-driven lightness wobble.
func patternFill(cfg *fingerprint.Config, value, clock, nx, ny float64) string {
	shimmer := cfg.ShimmerIntensity * 0.05 * math.Sin(2*math.Pi*clock*cfg.PulseRate+(nx+ny)*3)
	l := pattern.Clamp(0.08+0.55*value+shimmer, 0, 1)
	s := pattern.Clamp(0.1+cfg.ColorShift, 0, 1)
	return colorful.Hsl(cfg.SecondaryHue, s, l).Hex()
}

// AccentCount returns the number of accent cells in the grid.
func (g *Grid) AccentCount() int {
	n := 0
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if g.Cells[row][col].Accent {
				n++
			}
		}
	}
	return n
}
