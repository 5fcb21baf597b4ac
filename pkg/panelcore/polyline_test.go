package panelcore

import (
	"math"
	"testing"
)

func TestIntersectPerpendicularLines(t *testing.T) {
	// Vertical line x=5, horizontal line y=3: intersection at (5, 3).
	got, ok := Intersect(Point{5, 0}, Point{5, 10}, Point{0, 3}, Point{10, 3})
	if !ok {
		t.Fatal("expected a true intersection for perpendicular lines")
	}
	if math.Abs(got.X-5) > 1e-9 || math.Abs(got.Y-3) > 1e-9 {
		t.Errorf("Intersect = %+v, want (5,3)", got)
	}
}

func TestIntersectParallelLinesFallsBackToMidpoint(t *testing.T) {
	got, ok := Intersect(Point{0, 0}, Point{10, 0}, Point{0, 5}, Point{10, 5})
	if ok {
		t.Fatal("expected ok=false for parallel lines")
	}
	want := Point{0, 2.5}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("Intersect fallback = %+v, want %+v (midpoint of a and c)", got, want)
	}
}

func TestCornerIntersectCleanCorner(t *testing.T) {
	// p0-p1 is the vertical line x=0; q0-q1 is the horizontal line y=0,
	// with q0 already close to p0. The plain intersection is exact, so no
	// midpoint fallback is needed.
	got := cornerIntersect(Point{0, 0}, Point{0, 10}, Point{0.1, 0}, Point{10, 0})
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y) > 1e-9 {
		t.Errorf("cornerIntersect = %+v, want (0,0)", got)
	}
}

func TestCornerIntersectFallsBackWhenOvershooting(t *testing.T) {
	// The existing edge lies along y=0; the new segment is nearly parallel
	// to it, so the naive line intersection lands at x=-10, far past p0
	// relative to how close q0 already is to p0. The guard should replace
	// that overshoot with the p0/q0 midpoint before taking the final
	// intersection with the existing edge's line.
	p0 := Point{0, 0}
	p1 := Point{10, 0}
	q0 := Point{0, 0.001}
	q1 := Point{10, 0.002}

	got := cornerIntersect(p0, p1, q0, q1)
	want := Point{-10.0 / 3.0, 0}
	if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("cornerIntersect = %+v, want %+v (guarded fallback through the p0-q0 midpoint)", got, want)
	}
}

func TestLinkPolylinesClosesASquare(t *testing.T) {
	// Four sides of a 10x10 square, each specified as its own segment with
	// endpoints that don't quite meet (simulating independent detections).
	segments := []Segment{
		{P1: Point{0.2, 0}, P2: Point{10, -0.1}},  // top
		{P1: Point{10.1, 0}, P2: Point{9.9, 10}},  // right
		{P1: Point{10, 10.1}, P2: Point{0, 9.9}},  // bottom
		{P1: Point{-0.1, 10}, P2: Point{0.1, 0.1}}, // left
	}

	polylines := LinkPolylines(segments, 1.0)
	if len(polylines) != 1 {
		t.Fatalf("got %d polylines, want 1", len(polylines))
	}

	p := polylines[0]
	if len(p) < 5 {
		t.Fatalf("polyline has %d points, want at least 5 (4 corners + closure)", len(p))
	}
	if distanceSq(p[0], p[len(p)-1]) > 1e-6 {
		t.Errorf("expected a closed polyline, first=%+v last=%+v", p[0], p[len(p)-1])
	}
}

func TestLinkPolylinesLeavesDisjointSegmentsSeparate(t *testing.T) {
	segments := []Segment{
		{P1: Point{0, 0}, P2: Point{20, 0}},
		{P1: Point{0, 1000}, P2: Point{20, 1000}},
	}
	polylines := LinkPolylines(segments, 2.0)
	if len(polylines) != 2 {
		t.Fatalf("got %d polylines, want 2 (segments too far apart to link)", len(polylines))
	}
}
