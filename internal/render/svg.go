package render

import (
	"fmt"
	"strings"

	"github.com/p4nthera115/fingerprint-erc8004/internal/fingerprint"
)

// cellGap is the spacing between cells as a fraction of the cell pitch.
const cellGap = 0.1

// SVG serializes the grid as a standalone SVG document of the given pixel
// size. Output is byte-for-byte deterministic for a given grid.
func (g *Grid) SVG(size int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		size, size, size, size)

	if g.Config.BorderStyle == fingerprint.BorderGlow {
		b.WriteString(`<defs><filter id="glow"><feGaussianBlur stdDeviation="2.5" result="b"/><feMerge><feMergeNode in="b"/><feMergeNode in="SourceGraphic"/></feMerge></filter></defs>` + "\n")
	}

	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`+"\n", size, size, g.Background)

	pitch := float64(size) / GridSize
	side := pitch * (1 - cellGap)
	inset := pitch * cellGap / 2

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := g.Cells[row][col]
			x := float64(col)*pitch + inset
			y := float64(row)*pitch + inset
			fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s" fill-opacity="%.4f"/>`+"\n",
				x, y, side, side, side*0.15, cell.Fill, cell.Opacity)
		}
	}

	g.writeBorder(&b, size)
	b.WriteString("</svg>\n")
	return b.String()
}

// writeBorder draws the outer frame according to the configured border
// style. Width scales with the configured border fraction.
func (g *Grid) writeBorder(b *strings.Builder, size int) {
	style := g.Config.BorderStyle
	if style == fingerprint.BorderNone {
		return
	}

	w := g.Config.BorderWidth * float64(size)
	switch style {
	case fingerprint.BorderThin:
		w *= 0.5
	case fingerprint.BorderThick:
		w *= 1.5
	}

	// The frame always uses the primary color, not a cell fill.
	stroke := primaryHex(g.Config)

	attrs := ""
	if style == fingerprint.BorderGlow {
		attrs = ` filter="url(#glow)"`
	}
	half := w / 2
	fmt.Fprintf(b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="%.2f"%s/>`+"\n",
		half, half, float64(size)-w, float64(size)-w, stroke, w, attrs)
}
