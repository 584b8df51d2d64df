package anim

import (
	"testing"
	"time"

	"github.com/san-kum/kolam/internal/pattern"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestPlaybackDrawsOneSegmentThenCompletes(t *testing.T) {
	// Two-point stroke followed by a single-point stroke: exactly one
	// segment is drawn, then two cursor hops reach completion.
	p := NewPlayer([]pattern.Path{
		{{0, 0}, {10, 0}},
		{{5, 5}},
	})
	p.Toggle()

	now := epoch
	step, ok := p.Frame(now)
	if !ok || !step.Segment {
		t.Fatalf("expected a segment step, got %+v ok=%v", step, ok)
	}
	if step.From != (pattern.Point{0, 0}) || step.To != (pattern.Point{10, 0}) {
		t.Errorf("unexpected segment %v -> %v", step.From, step.To)
	}

	now = now.Add(BaseDelay)
	step, ok = p.Frame(now)
	if !ok || step.Segment {
		t.Fatalf("expected a path hop, got %+v ok=%v", step, ok)
	}
	if p.Done() {
		t.Fatal("should not be done before skipping the short stroke")
	}

	now = now.Add(BaseDelay)
	step, ok = p.Frame(now)
	if !ok || step.Segment {
		t.Fatalf("expected the short stroke to be skipped in one step, got %+v ok=%v", step, ok)
	}
	if !p.Done() {
		t.Error("expected completion after the last path")
	}
	if p.Playing() {
		t.Error("completion must pause playback")
	}

	if _, ok := p.Frame(now.Add(BaseDelay)); ok {
		t.Error("completed player must not accept frames")
	}
}

func TestThrottleScalesWithSpeed(t *testing.T) {
	paths := []pattern.Path{{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}}

	p := NewPlayer(paths)
	p.Toggle()
	if _, ok := p.Frame(epoch); !ok {
		t.Fatal("first frame should always be accepted")
	}
	if _, ok := p.Frame(epoch.Add(BaseDelay / 2)); ok {
		t.Error("frame inside the base delay must be throttled")
	}
	if _, ok := p.Frame(epoch.Add(BaseDelay)); !ok {
		t.Error("frame at the base delay must be accepted")
	}

	// Doubling the speed halves the minimum interval.
	p2 := NewPlayer(paths)
	p2.SetSpeed(2.0)
	p2.Toggle()
	if _, ok := p2.Frame(epoch); !ok {
		t.Fatal("first frame should always be accepted")
	}
	if _, ok := p2.Frame(epoch.Add(BaseDelay / 2)); !ok {
		t.Error("at speed 2 a frame at half the base delay must be accepted")
	}
}

func TestPausedPlayerAcceptsNothing(t *testing.T) {
	p := NewPlayer([]pattern.Path{{{0, 0}, {1, 1}}})
	if _, ok := p.Frame(epoch); ok {
		t.Error("paused player accepted a frame")
	}
}

func TestResetReturnsCursorsToStart(t *testing.T) {
	p := NewPlayer([]pattern.Path{{{0, 0}, {1, 0}, {2, 0}}})
	p.Toggle()
	p.Frame(epoch)
	p.Frame(epoch.Add(BaseDelay))

	p.Reset()
	if pi, qi := p.Cursor(); pi != 0 || qi != 0 {
		t.Errorf("expected cursors at origin, got (%d, %d)", pi, qi)
	}
	if p.Playing() {
		t.Error("reset must pause playback")
	}

	// Resuming replays from the first point of the first path.
	p.Toggle()
	step, ok := p.Frame(epoch.Add(10 * BaseDelay))
	if !ok || step.From != (pattern.Point{0, 0}) {
		t.Errorf("expected replay from the first point, got %+v ok=%v", step, ok)
	}
}

func TestEmptyPathsCompleteImmediately(t *testing.T) {
	p := NewPlayer(nil)
	if !p.Done() {
		t.Error("empty path set should report done")
	}
	p.Toggle()
	if p.Playing() {
		t.Error("toggling an empty player must not start playback")
	}
}

func TestSetSpeedRejectsNonPositive(t *testing.T) {
	p := NewPlayer(nil)
	p.SetSpeed(0)
	p.SetSpeed(-1)
	if p.Speed() != 1.0 {
		t.Errorf("expected speed to stay 1.0, got %f", p.Speed())
	}
}
