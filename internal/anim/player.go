// Package anim implements the playback state machine for pattern
// paths: a pair of cursors over an ordered set of strokes, advanced
// one segment per accepted frame, throttled by a speed-scaled delay.
package anim

import (
	"time"

	"github.com/san-kum/kolam/internal/pattern"
)

// BaseDelay is the minimum interval between accepted frames at
// speed 1. Doubling the speed halves the interval.
const BaseDelay = 50 * time.Millisecond

// Step is the outcome of one accepted frame. When Segment is true
// the renderer draws From→To with a highlight at To; otherwise the
// frame only moved the path cursor (end of a stroke, or a stroke too
// short to draw).
type Step struct {
	Segment  bool
	From, To pattern.Point
}

// Player walks an ordered collection of paths. Cursors hold
// pathIdx in [0, len(paths)] (== len signals completion) and
// pointIdx in [0, len(path)-1]. Player is not safe for concurrent
// use; the TUI drives it from a single update loop.
type Player struct {
	paths     []pattern.Path
	pathIdx   int
	pointIdx  int
	playing   bool
	speed     float64
	lastFrame time.Time
}

func NewPlayer(paths []pattern.Path) *Player {
	return &Player{paths: paths, speed: 1.0}
}

func (p *Player) Playing() bool { return p.playing }

// Done reports whether every path has been walked.
func (p *Player) Done() bool { return p.pathIdx >= len(p.paths) }

// Cursor returns the current (path, point) playback position.
func (p *Player) Cursor() (int, int) { return p.pathIdx, p.pointIdx }

func (p *Player) Speed() float64 { return p.speed }

// SetSpeed adjusts the playback rate. Non-positive values are
// ignored; progress would stall (speed > 0 is a precondition of the
// throttle).
func (p *Player) SetSpeed(speed float64) {
	if speed > 0 {
		p.speed = speed
	}
}

// MinInterval is the throttle threshold between accepted frames.
func (p *Player) MinInterval() time.Duration {
	return time.Duration(float64(BaseDelay) / p.speed)
}

// Toggle flips between paused and playing. Toggling a completed
// player is a no-op; reset first.
func (p *Player) Toggle() {
	if p.Done() {
		p.playing = false
		return
	}
	p.playing = !p.playing
}

// Reset returns both cursors to the start and pauses playback.
// The caller must also cancel any pending frame before calling this,
// otherwise a stale frame could resume drawing from cleared state.
func (p *Player) Reset() {
	p.pathIdx = 0
	p.pointIdx = 0
	p.playing = false
	p.lastFrame = time.Time{}
}

// Frame runs one animation frame at the given time. It returns
// ok=false when nothing happened: playback is paused or complete, or
// the frame arrived before the speed-scaled delay elapsed and the
// caller should simply reschedule. Otherwise the frame is accepted,
// the baseline timestamp moves, and exactly one step is taken.
func (p *Player) Frame(now time.Time) (Step, bool) {
	if !p.playing || p.Done() {
		return Step{}, false
	}
	if now.Sub(p.lastFrame) < p.MinInterval() {
		return Step{}, false
	}
	p.lastFrame = now

	path := p.paths[p.pathIdx]
	if p.pointIdx < len(path)-1 {
		step := Step{
			Segment: true,
			From:    path[p.pointIdx],
			To:      path[p.pointIdx+1],
		}
		p.pointIdx++
		return step, true
	}

	// Stroke exhausted (or too short to draw): hop to the next one.
	p.pathIdx++
	p.pointIdx = 0
	if p.Done() {
		p.playing = false
	}
	return Step{}, true
}
