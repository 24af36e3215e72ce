// fpgen maps a single input to its fingerprint on the command line:
// configuration JSON by default, optionally an SVG file, a shader uniform
// block, or an ASCII dump of the cell grid for quick visual inspection.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/p4nthera115/fingerprint-erc8004/internal/fingerprint"
	"github.com/p4nthera115/fingerprint-erc8004/internal/render"
)

func main() {
	svgPath := flag.String("svg", "", "write an SVG rendering to this path")
	svgSize := flag.Int("size", 256, "SVG pixel size")
	clock := flag.Float64("clock", 0, "animation clock in seconds")
	gridDump := flag.Bool("grid", false, "print an ASCII dump of the cell grid")
	uniforms := flag.Bool("uniforms", false, "print the shader uniform block instead of the configuration")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <input>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	cfg, err := fingerprint.Generate(context.Background(), fingerprint.SHA256Digester{}, input)
	if err != nil {
		log.Fatalf("generate failed: %v", err)
	}
	if cfg == nil {
		log.Fatal("input is empty: nothing to fingerprint")
	}

	switch {
	case *uniforms:
		u := render.BuildUniforms(cfg, *clock)
		printJSON(u)
	case *gridDump:
		printGrid(render.BuildGrid(cfg, *clock))
	default:
		printJSON(cfg)
	}

	if *svgPath != "" {
		grid := render.BuildGrid(cfg, *clock)
		if err := os.WriteFile(*svgPath, []byte(grid.SVG(*svgSize)), 0o644); err != nil {
			log.Fatalf("write SVG failed: %v", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%d accents)\n", *svgPath, grid.AccentCount())
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode failed: %v", err)
	}
}

// printGrid renders cell values as a density ramp, with accents marked.
func printGrid(g *render.Grid) {
	const ramp = " .:-=+*#%@"
	for row := 0; row < render.GridSize; row++ {
		for col := 0; col < render.GridSize; col++ {
			cell := g.Cells[row][col]
			if cell.Accent {
				fmt.Print("()")
				continue
			}
			i := int(cell.Value * float64(len(ramp)-1))
			fmt.Printf("%c%c", ramp[i], ramp[i])
		}
		fmt.Println()
	}
	fmt.Printf("pattern=%s geometry=%s border=%s accents=%d\n",
		g.Config.PatternType, g.Config.GeometryClass, g.Config.BorderStyle, g.AccentCount())
}
