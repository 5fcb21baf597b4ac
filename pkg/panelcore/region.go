package panelcore

import (
	"math"
	"sort"
)

// ExtractRegions reduces linked polylines to their bounding boxes, merges
// boxes that nest inside one another (within a 2-pixel tolerance), and
// orders the survivors into reading order: top-to-bottom by row, then
// left-to-right within a row (or top-to-bottom within a row whose members
// are stacked rather than side-by-side).
func ExtractRegions(polylines []Polyline) []Region {
	boxes := make([]Region, 0, len(polylines))
	for _, p := range polylines {
		if len(p) < 2 {
			continue
		}
		lo, hi := roundPoint(p[0]), roundPoint(p[0])
		for _, pt := range p[1:] {
			rp := roundPoint(pt)
			lo.X = math.Min(lo.X, rp.X)
			lo.Y = math.Min(lo.Y, rp.Y)
			hi.X = math.Max(hi.X, rp.X)
			hi.Y = math.Max(hi.Y, rp.Y)
		}
		boxes = append(boxes, Region{lo, hi})
	}

	boxes = mergeContained(boxes)

	sort.Slice(boxes, func(i, j int) bool { return boxes[i].Lo.Y < boxes[j].Lo.Y })

	var rows [][]Region
	for _, b := range boxes {
		placed := false
		for ri := range rows {
			if verticalOverlapRatio(rows[ri][0], b) >= 0.9 {
				rows[ri] = append(rows[ri], b)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, []Region{b})
		}
	}

	result := make([]Region, 0, len(boxes))
	for _, row := range rows {
		wide := isRowWide(row)
		sort.Slice(row, func(i, j int) bool {
			if wide {
				return row[i].Lo.X < row[j].Lo.X
			}
			return row[i].Lo.Y < row[j].Lo.Y
		})
		result = append(result, row...)
	}
	return result
}

// roundPoint rounds a vertex to integer coordinates before it participates
// in a bounding-box reduction, so the stored box already has integer bounds
// when it is merged, sorted and row-grouped.
func roundPoint(p Point) Point {
	return Point{math.Round(p.X), math.Round(p.Y)}
}

// mergeContained repeatedly folds a box into any other box that contains it
// once expanded by 2 pixels on every side, restarting the scan after each
// merge since the union may now contain further boxes it did not before.
func mergeContained(boxes []Region) []Region {
	for {
		merged := false
	outer:
		for i := range boxes {
			for j := range boxes {
				if i == j {
					continue
				}
				if boxes[i].expand(2).contains(boxes[j]) {
					boxes[i] = unionRegion(boxes[i], boxes[j])
					boxes = append(boxes[:j], boxes[j+1:]...)
					merged = true
					break outer
				}
			}
		}
		if !merged {
			break
		}
	}
	return boxes
}

func verticalOverlapRatio(a, b Region) float64 {
	top := math.Max(a.Lo.Y, b.Lo.Y)
	bottom := math.Min(a.Hi.Y, b.Hi.Y)
	overlap := math.Max(0, bottom-top)

	shorter := math.Min(a.Hi.Y-a.Lo.Y, b.Hi.Y-b.Lo.Y)
	if shorter <= 0 {
		return 0
	}
	return overlap / shorter
}

// isRowWide decides whether a row of candidate regions is laid out
// side-by-side (sort by x_lo) or stacked (sort by y_lo), by comparing the
// spread of their centroids along each axis.
func isRowWide(row []Region) bool {
	if len(row) <= 1 {
		return true
	}
	minCX, maxCX := math.Inf(1), math.Inf(-1)
	minCY, maxCY := math.Inf(1), math.Inf(-1)
	for _, r := range row {
		c := r.center()
		minCX = math.Min(minCX, c.X)
		maxCX = math.Max(maxCX, c.X)
		minCY = math.Min(minCY, c.Y)
		maxCY = math.Max(maxCY, c.Y)
	}
	return (maxCX - minCX) >= (maxCY - minCY)
}
