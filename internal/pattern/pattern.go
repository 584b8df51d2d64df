package pattern

import (
	"path/filepath"
	"strings"
)

// Point is a 2-D coordinate in canvas space. The wire format is a
// two-element JSON array [x, y].
type Point [2]float64

func (p Point) X() float64 { return p[0] }
func (p Point) Y() float64 { return p[1] }

// Path is one continuous stroke of a pattern, drawn point to point.
type Path []Point

// Grid describes the dot lattice a pattern is drawn over.
type Grid struct {
	Type       string  `json:"type"`
	Dimensions [2]int  `json:"dimensions"`
	Dots       []Point `json:"dots"`
}

// Equations holds the parametric fit of a pattern.
type Equations struct {
	XFunction string     `json:"x_function"`
	YFunction string     `json:"y_function"`
	Domain    [2]float64 `json:"domain"`
	RSquared  float64    `json:"r_squared"`
}

// Record is the structured result of analyzing a kolam image.
// At most one record is live in the client at a time; Dots and the
// point sequences inside Paths are never mutated after decode.
type Record struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Complexity     string    `json:"complexity"`
	Symmetry       string    `json:"symmetry"`
	Equations      Equations `json:"equations"`
	Grid           Grid      `json:"grid"`
	Paths          []Path    `json:"paths"`
	AnalyzedAt     string    `json:"analyzed_at,omitempty"`
	SourceFilename string    `json:"source_filename,omitempty"`
}

// TotalPoints counts the points across all paths.
func (r *Record) TotalPoints() int {
	n := 0
	for _, p := range r.Paths {
		n += len(p)
	}
	return n
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// IsImageFile reports whether name looks like an image by extension.
// Non-image drops are ignored before any upload is attempted.
func IsImageFile(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}
