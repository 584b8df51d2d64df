package render

import (
	"testing"

	"github.com/san-kum/kolam/internal/pattern"
)

func countSet(c *Canvas) int {
	n := 0
	for y := 0; y < c.Height*4; y++ {
		for x := 0; x < c.Width*2; x++ {
			if c.IsSet(x, y) {
				n++
			}
		}
	}
	return n
}

func TestRedrawDrawsGridDots(t *testing.T) {
	r := New(40, 20)
	rec := &pattern.Record{
		Grid: pattern.Grid{Dots: []pattern.Point{{200, 200}}},
	}

	r.Redraw(rec)
	if countSet(r.canvas) == 0 {
		t.Error("expected the grid dot to be drawn")
	}

	x, y := r.project(pattern.Point{200, 200})
	if !r.canvas.IsSet(x, y) {
		t.Errorf("dot center (%d, %d) not set", x, y)
	}
}

func TestRedrawEmptyRecordIsNoop(t *testing.T) {
	r := New(40, 20)

	r.Redraw(&pattern.Record{})
	if countSet(r.canvas) != 0 {
		t.Error("empty record should draw nothing")
	}

	r.Redraw(nil)
	if countSet(r.canvas) != 0 {
		t.Error("nil record should draw nothing")
	}
}

func TestRedrawClearsPriorSegments(t *testing.T) {
	r := New(40, 20)
	rec := &pattern.Record{}

	r.DrawSegment(pattern.Point{100, 100}, pattern.Point{300, 300})
	if countSet(r.canvas) == 0 {
		t.Fatal("segment should have drawn something")
	}

	r.Redraw(rec)
	if countSet(r.canvas) != 0 {
		t.Error("redraw should discard previously drawn segments")
	}
}

func TestDrawSegmentHighlightsEndpoint(t *testing.T) {
	r := New(40, 20)
	from := pattern.Point{100, 200}
	to := pattern.Point{300, 200}

	r.DrawSegment(from, to)

	x0, y0 := r.project(from)
	x1, y1 := r.project(to)
	if !r.canvas.IsSet(x0, y0) || !r.canvas.IsSet(x1, y1) {
		t.Error("segment endpoints not drawn")
	}
	// The highlight disk extends past the line's single-dot width.
	if !r.canvas.IsSet(x1, y1+1) {
		t.Error("expected a highlight disk at the segment endpoint")
	}
}

func TestProjectionStaysInBounds(t *testing.T) {
	r := New(30, 12)
	corners := []pattern.Point{{0, 0}, {400, 0}, {0, 400}, {400, 400}}

	for _, p := range corners {
		x, y := r.project(p)
		if x < 0 || y < 0 || x > 30*2 || y > 12*4 {
			t.Errorf("corner %v projected out of range: (%d, %d)", p, x, y)
		}
	}
}
