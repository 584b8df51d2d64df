package export

import (
	"strings"
	"testing"

	"github.com/san-kum/kolam/internal/pattern"
)

func TestSVGDocument(t *testing.T) {
	paths := []pattern.Path{{{150, 150}, {200, 150}, {200, 200}}}
	dots := []pattern.Point{{100, 100}, {150, 100}}

	svg := SVG(paths, dots)

	for _, want := range []string{
		`<svg width="400" height="400"`,
		`<rect width="400" height="400" fill="black"/>`,
		`<g id="grid">`,
		`<circle cx="100" cy="100" r="3" fill="#FF6347"/>`,
		`<circle cx="150" cy="100" r="3" fill="#FF6347"/>`,
		`<g id="kolam">`,
		`d="M 150 150 L 200 150 L 200 200"`,
		`stroke="white" stroke-width="3" fill="none"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestSVGSkipsEmptyPaths(t *testing.T) {
	svg := SVG([]pattern.Path{{}}, nil)
	if strings.Contains(svg, "<path") {
		t.Error("empty path should not produce a path element")
	}
}

func TestEquationsReportVerbatimFields(t *testing.T) {
	rec := &pattern.Record{
		ID:         "abc123",
		Type:       "Pulli Kolam",
		Symmetry:   "Bilateral",
		Complexity: "Medium",
		Equations: pattern.Equations{
			XFunction: "80*cos(t) + 200",
			YFunction: "80*sin(t) + 200",
			Domain:    [2]float64{0, 6.28},
			RSquared:  0.947,
		},
		Grid: pattern.Grid{Type: "square", Dimensions: [2]int{5, 5}},
	}

	report := EquationsReport(rec)

	for _, want := range []string{
		"80*cos(t) + 200",
		"80*sin(t) + 200",
		"[0, 6.28]",
		"0.947",
		"5 x 5",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestFilenames(t *testing.T) {
	if got := SVGFilename("abc123"); got != "kolam_abc123.svg" {
		t.Errorf("unexpected svg filename: %s", got)
	}
	if got := EquationsFilename("abc123"); got != "kolam_equations_abc123.txt" {
		t.Errorf("unexpected equations filename: %s", got)
	}
}
