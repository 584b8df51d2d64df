// Package export produces the two downloadable artifacts: the SVG
// rendering of a pattern and the plain-text equations report.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/kolam/internal/pattern"
)

// SVG document geometry, fixed by the analysis service's layout.
const (
	svgSize     = 400
	dotColor    = "#FF6347"
	strokeColor = "white"
)

// SVG renders grid dots and paths into a standalone SVG document.
func SVG(paths []pattern.Path, dots []pattern.Point) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
  <rect width="%d" height="%d" fill="black"/>

  <!-- Grid Dots -->
  <g id="grid">
`, svgSize, svgSize, svgSize, svgSize))

	for _, dot := range dots {
		sb.WriteString(fmt.Sprintf(`    <circle cx="%g" cy="%g" r="3" fill="%s"/>`+"\n",
			dot.X(), dot.Y(), dotColor))
	}

	sb.WriteString("  </g>\n\n  <!-- Kolam Paths -->\n  <g id=\"kolam\">\n")

	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		var d strings.Builder
		d.WriteString(fmt.Sprintf("M %g %g", path[0].X(), path[0].Y()))
		for _, p := range path[1:] {
			d.WriteString(fmt.Sprintf(" L %g %g", p.X(), p.Y()))
		}
		sb.WriteString(fmt.Sprintf(`    <path d="%s" stroke="%s" stroke-width="3" fill="none"/>`+"\n",
			d.String(), strokeColor))
	}

	sb.WriteString("  </g>\n</svg>")
	return sb.String()
}

// EquationsReport formats a record's metadata and parametric fit as
// a human-readable text document.
func EquationsReport(rec *pattern.Record) string {
	var sb strings.Builder

	sb.WriteString("Kolam Pattern Analysis\n")
	sb.WriteString("======================\n\n")
	sb.WriteString(fmt.Sprintf("Pattern ID: %s\n", rec.ID))
	sb.WriteString(fmt.Sprintf("Type: %s\n", rec.Type))
	sb.WriteString(fmt.Sprintf("Symmetry: %s\n", rec.Symmetry))
	sb.WriteString(fmt.Sprintf("Complexity: %s\n\n", rec.Complexity))
	sb.WriteString("Parametric Equations\n")
	sb.WriteString("--------------------\n")
	sb.WriteString(fmt.Sprintf("x(t) = %s\n", rec.Equations.XFunction))
	sb.WriteString(fmt.Sprintf("y(t) = %s\n", rec.Equations.YFunction))
	sb.WriteString(fmt.Sprintf("Domain: t in [%g, %g]\n", rec.Equations.Domain[0], rec.Equations.Domain[1]))
	sb.WriteString(fmt.Sprintf("Fit quality (r^2): %g\n\n", rec.Equations.RSquared))
	sb.WriteString("Grid\n")
	sb.WriteString("----\n")
	sb.WriteString(fmt.Sprintf("Type: %s\n", rec.Grid.Type))
	sb.WriteString(fmt.Sprintf("Dimensions: %d x %d\n", rec.Grid.Dimensions[0], rec.Grid.Dimensions[1]))
	sb.WriteString(fmt.Sprintf("Dots: %d\n", len(rec.Grid.Dots)))

	return sb.String()
}

// SVGFilename names the downloaded SVG for a pattern id.
func SVGFilename(id string) string {
	return fmt.Sprintf("kolam_%s.svg", id)
}

// EquationsFilename names the downloaded equations report.
func EquationsFilename(id string) string {
	return fmt.Sprintf("kolam_equations_%s.txt", id)
}

// WriteFile performs the download side effect: the artifact lands in
// the current working directory.
func WriteFile(name, content string) error {
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
