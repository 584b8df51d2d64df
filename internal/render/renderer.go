// Package render draws pattern records onto a braille terminal
// canvas: the static dot grid, and path segments as playback
// advances.
package render

import (
	"github.com/san-kum/kolam/internal/pattern"
)

// The analysis service lays patterns out on a 400x400 surface; all
// record coordinates live in that space.
const worldSize = 400.0

// Radii in world units.
const (
	dotRadius       = 4.0
	highlightRadius = 6.0
)

// Renderer maps world coordinates onto a canvas with uniform scale
// and centering, and knows how to draw the pieces of a record.
type Renderer struct {
	canvas     *Canvas
	scale      float64
	offX, offY float64
}

func New(width, height int) *Renderer {
	dw := float64(width * 2)
	dh := float64(height * 4)

	scale := dw / worldSize
	if s := dh / worldSize; s < scale {
		scale = s
	}

	return &Renderer{
		canvas: NewCanvas(width, height),
		scale:  scale,
		offX:   (dw - worldSize*scale) / 2,
		offY:   (dh - worldSize*scale) / 2,
	}
}

func (r *Renderer) project(p pattern.Point) (int, int) {
	x := int(p.X()*r.scale + r.offX)
	y := int(p.Y()*r.scale + r.offY)
	return x, y
}

func (r *Renderer) radius(world float64) int {
	px := int(world * r.scale)
	if px < 1 {
		px = 1
	}
	return px
}

// DrawDots draws every grid dot as a small filled disk at its
// literal coordinates. An empty grid draws nothing.
func (r *Renderer) DrawDots(g pattern.Grid) {
	for _, dot := range g.Dots {
		x, y := r.project(dot)
		r.canvas.FillDisk(x, y, r.radius(dotRadius))
	}
}

// DrawSegment draws one stroke segment plus a highlight disk at the
// endpoint, marking the playback head.
func (r *Renderer) DrawSegment(from, to pattern.Point) {
	x0, y0 := r.project(from)
	x1, y1 := r.project(to)
	r.canvas.DrawLine(x0, y0, x1, y1)
	r.canvas.FillDisk(x1, y1, r.radius(highlightRadius))
}

// Redraw is the canonical reset view: clear the surface and draw the
// dot grid, leaving paths to the animation loop.
func (r *Renderer) Redraw(rec *pattern.Record) {
	r.canvas.Clear()
	if rec == nil {
		return
	}
	r.DrawDots(rec.Grid)
}

func (r *Renderer) String() string { return r.canvas.String() }
