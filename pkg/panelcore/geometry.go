package panelcore

import "math"

// Point is a 2-D floating-point coordinate, used by PPHT's dot products and
// everything downstream of it (segments, polylines, regions).
type Point struct {
	X, Y float64
}

func (p Point) add(q Point) Point   { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point   { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

func (p Point) midpoint(q Point) Point {
	return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

func distanceSq(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Segment is an ordered pair of endpoints, as emitted by the PPHT analyzer.
type Segment struct {
	P1, P2 Point
}

// Polyline is a finite ordered sequence of points. It is closed iff its
// first and last points coincide within the linker's closeGap tolerance.
type Polyline []Point

// Region is an axis-aligned rectangle with Lo <= Hi componentwise.
type Region struct {
	Lo, Hi Point
}

// Rect returns the region as an integer (x, y, w, h) rectangle.
func (r Region) Rect() (x, y, w, h int) {
	x = int(math.Round(r.Lo.X))
	y = int(math.Round(r.Lo.Y))
	w = int(math.Round(r.Hi.X)) - x
	h = int(math.Round(r.Hi.Y)) - y
	return
}

func (r Region) center() Point {
	return Point{(r.Lo.X + r.Hi.X) / 2, (r.Lo.Y + r.Hi.Y) / 2}
}

func (r Region) expand(d float64) Region {
	return Region{
		Lo: Point{r.Lo.X - d, r.Lo.Y - d},
		Hi: Point{r.Hi.X + d, r.Hi.Y + d},
	}
}

func (r Region) contains(other Region) bool {
	return r.Lo.X <= other.Lo.X && r.Lo.Y <= other.Lo.Y &&
		r.Hi.X >= other.Hi.X && r.Hi.Y >= other.Hi.Y
}

func unionRegion(a, b Region) Region {
	return Region{
		Lo: Point{math.Min(a.Lo.X, b.Lo.X), math.Min(a.Lo.Y, b.Lo.Y)},
		Hi: Point{math.Max(a.Hi.X, b.Hi.X), math.Max(a.Hi.Y, b.Hi.Y)},
	}
}
