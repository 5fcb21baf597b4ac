package panelcore

import "math"

// Intersect returns the intersection of the infinite lines through (a, b)
// and (c, d) using the standard determinant-based line-line formula. When
// the lines are parallel or coincident (|denominator| < 1e-6), it falls
// back to the midpoint of a and c and reports ok = false.
func Intersect(a, b, c, d Point) (point Point, ok bool) {
	denom := (a.X-b.X)*(c.Y-d.Y) - (a.Y-b.Y)*(c.X-d.X)
	if math.Abs(denom) < 1e-6 {
		return a.midpoint(c), false
	}

	tNum := (a.X-c.X)*(c.Y-d.Y) - (a.Y-c.Y)*(c.X-d.X)
	t := tNum / denom
	return Point{a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y)}, true
}

// LinkPolylines joins segments into polylines by repeatedly picking the
// longest unconsumed segment as a seed and growing it, tail first then
// head, with the nearest remaining segment whose endpoint falls within
// closeGap. Each join replaces the shared corner with the intersection of
// the two lines being joined, rather than a kink at the raw endpoints, so
// that segments detected with independent noise still produce a clean
// polygon corner. Closure is checked after every single growth step,
// tail or head: the instant the two ends fall within closeGap of each
// other, growth stops and both endpoints are replaced by the intersection
// of the polyline's first and last segment lines.
func LinkPolylines(segments []Segment, closeGap float64) []Polyline {
	remaining := make([]Segment, len(segments))
	copy(remaining, segments)
	used := make([]bool, len(remaining))
	gapSq := closeGap * closeGap

	var polylines []Polyline

	for {
		longest := -1
		longestLenSq := -1.0
		for i, s := range remaining {
			if used[i] {
				continue
			}
			l := distanceSq(s.P1, s.P2)
			if l > longestLenSq {
				longestLenSq = l
				longest = i
			}
		}
		if longest == -1 {
			break
		}
		used[longest] = true

		poly := Polyline{remaining[longest].P1, remaining[longest].P2}

		closed := false
		for growTail(&poly, remaining, used, gapSq) {
			if isNearlyClosed(poly, gapSq) {
				closePolyline(&poly)
				closed = true
				break
			}
		}
		if !closed {
			for growHead(&poly, remaining, used, gapSq) {
				if isNearlyClosed(poly, gapSq) {
					closePolyline(&poly)
					break
				}
			}
		}

		polylines = append(polylines, poly)
	}

	return polylines
}

// isNearlyClosed reports whether poly's two ends have converged to within
// closeGap (gapSq = closeGap*closeGap) of each other.
func isNearlyClosed(poly Polyline, gapSq float64) bool {
	return len(poly) >= 3 && distanceSq(poly[0], poly[len(poly)-1]) <= gapSq
}

// closePolyline replaces poly's first and last points with the
// intersection of the line through its first two points and the line
// through its last two points, so the closing corner sits at the true
// intersection rather than at a raw segment endpoint.
func closePolyline(poly *Polyline) {
	p := *poly
	last := len(p) - 1
	corner, _ := Intersect(p[0], p[1], p[last-1], p[last])
	p[0] = corner
	p[last] = corner
}

// nearestEndpoint finds the unused segment with an endpoint nearest to at,
// within maxDistSq, and returns that endpoint (near) and the segment's
// other endpoint (far).
func nearestEndpoint(remaining []Segment, used []bool, at Point, maxDistSq float64) (idx int, near, far Point, ok bool) {
	best := -1
	bestDistSq := maxDistSq
	var bestNear, bestFar Point

	for i, s := range remaining {
		if used[i] {
			continue
		}
		if d := distanceSq(at, s.P1); d <= bestDistSq {
			best, bestDistSq, bestNear, bestFar = i, d, s.P1, s.P2
		}
		if d := distanceSq(at, s.P2); d <= bestDistSq {
			best, bestDistSq, bestNear, bestFar = i, d, s.P2, s.P1
		}
	}

	if best == -1 {
		return 0, Point{}, Point{}, false
	}
	return best, bestNear, bestFar, true
}

// cornerIntersect computes the corner where the existing polyline edge
// (p0,p1) meets the newly attached segment (q0,q1), q0 being the endpoint
// nearest p0. The first intersection of line(p0,p1) and line(q0,q1) is
// taken as a candidate; if it lands farther from p0 than q0 itself does
// (the near-parallel case, where a tiny determinant sends the intersection
// shooting off far from the actual join), it falls back to the midpoint of
// p0 and q0 before taking the final intersection with line(p0,p1).
func cornerIntersect(p0, p1, q0, q1 Point) Point {
	q, _ := Intersect(p0, p1, q0, q1)
	if distanceSq(p0, q) > distanceSq(p0, q0) {
		q = p0.midpoint(q0)
	}
	corner, _ := Intersect(p0, p1, q, q1)
	return corner
}

func growHead(poly *Polyline, remaining []Segment, used []bool, gapSq float64) bool {
	p := *poly
	idx, near, far, ok := nearestEndpoint(remaining, used, p[0], gapSq)
	if !ok {
		return false
	}
	used[idx] = true

	corner := cornerIntersect(p[0], p[1], near, far)

	grown := make(Polyline, 0, len(p)+1)
	grown = append(grown, far, corner)
	grown = append(grown, p[1:]...)
	*poly = grown
	return true
}

func growTail(poly *Polyline, remaining []Segment, used []bool, gapSq float64) bool {
	p := *poly
	last := len(p) - 1
	idx, near, far, ok := nearestEndpoint(remaining, used, p[last], gapSq)
	if !ok {
		return false
	}
	used[idx] = true

	corner := cornerIntersect(p[last], p[last-1], near, far)

	grown := make(Polyline, 0, len(p)+1)
	grown = append(grown, p[:last]...)
	grown = append(grown, corner, far)
	*poly = grown
	return true
}
