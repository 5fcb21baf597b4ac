package panelcore

import (
	"github.com/the-wabe/panelcore/pkg/raster"
)

// ExtractBorder performs a flood fill from the four corners of roi to
// isolate the page's printable interior. dst is
// written so that 255 marks page background and 0 marks content/interior;
// src and dst must have identical dimensions.
//
// Whether to use the alpha test or the color test is decided once, by
// probing all four corner pixels: if any has alpha < 1.0, every fill uses
// the alpha predicate (pixel.a < 0.5). Otherwise every fill uses a CIELab
// color predicate (squared distance from the seed color < 6.7, i.e.
// Delta-E ~2.59) — but each corner's fill derives its own seed color from
// its own corner pixel, since opposite corners of a page need not share a
// background color.
func ExtractBorder(src *raster.XYZAImage, dst *raster.Planar8, roi raster.Rect) error {
	if src.Width != dst.Width || src.Height != dst.Height {
		return newVImageError("source and destination dimensions must match (%dx%d vs %dx%d)",
			src.Width, src.Height, dst.Width, dst.Height)
	}

	full := roi.MinX == 0 && roi.MinY == 0 && roi.MaxX == src.Width && roi.MaxY == src.Height
	if full {
		dst.Fill(0x00)
	} else {
		dst.Fill(0xFF)
		dst.FillRect(roi, 0x00)
	}

	minX, minY := roi.MinX, roi.MinY
	maxX, maxY := roi.MaxX-1, roi.MaxY-1

	useAlpha := usesAlphaPredicate(src, minX, minY, maxX, maxY)

	floodFillFrom(src, dst, roi, minX, minY, cornerPredicate(src, minX, minY, useAlpha))
	floodFillFrom(src, dst, roi, maxX, minY, cornerPredicate(src, maxX, minY, useAlpha))
	floodFillFrom(src, dst, roi, minX, maxY, cornerPredicate(src, minX, maxY, useAlpha))
	floodFillFrom(src, dst, roi, maxX, maxY, cornerPredicate(src, maxX, maxY, useAlpha))

	return nil
}

// usesAlphaPredicate decides, by probing the four roi corners, whether the
// alpha test or the color test should be used for all four fills: if any
// corner is not fully opaque, every fill uses the alpha predicate.
func usesAlphaPredicate(src *raster.XYZAImage, minX, minY, maxX, maxY int) bool {
	_, _, _, a1 := src.At(minX, minY)
	_, _, _, a2 := src.At(maxX, minY)
	_, _, _, a3 := src.At(minX, maxY)
	_, _, _, a4 := src.At(maxX, maxY)
	return a1 < 1.0 || a2 < 1.0 || a3 < 1.0 || a4 < 1.0
}

// cornerPredicate builds the fillability test for a fill seeded at
// (cx, cy). The color predicate re-derives its reference color from that
// corner's own pixel each time, since pages can have different background
// colors at each corner.
func cornerPredicate(src *raster.XYZAImage, cx, cy int, useAlpha bool) func(x, y int) bool {
	if useAlpha {
		return func(x, y int) bool {
			_, _, _, a := src.At(x, y)
			return a < 0.5
		}
	}

	seedX, seedY, seedZ, _ := src.At(cx, cy)
	sl, sa, sb := raster.XYZToLab(float64(seedX), float64(seedY), float64(seedZ))

	return func(x, y int) bool {
		px, py, pz, _ := src.At(x, y)
		l, a, b := raster.XYZToLab(float64(px), float64(py), float64(pz))
		return raster.LabDistanceSq(l, a, b, sl, sa, sb) < 6.7
	}
}

// floodFillFrom runs a 4-connected scanline span fill seeded at (x, y),
// writing 255 into dst for every reachable fillable pixel within roi.
func floodFillFrom(src *raster.XYZAImage, dst *raster.Planar8, roi raster.Rect, x, y int, isFillable func(x, y int) bool) {
	type seed struct{ x, y int }

	if !roi.Contains(x, y) || dst.At(x, y) == 255 || !isFillable(x, y) {
		return
	}

	queue := make([]seed, 0, 1024)
	queue = append(queue, seed{x, y})

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		sx, sy := s.x, s.y
		if !roi.Contains(sx, sy) || dst.At(sx, sy) == 255 || !isFillable(sx, sy) {
			continue
		}

		lo, hi := sx, sx
		for lo-1 >= roi.MinX && dst.At(lo-1, sy) != 255 && isFillable(lo-1, sy) {
			lo--
		}
		for hi+1 < roi.MaxX && dst.At(hi+1, sy) != 255 && isFillable(hi+1, sy) {
			hi++
		}

		for xi := lo; xi <= hi; xi++ {
			dst.Set(xi, sy, 255)
		}

		for _, ny := range [2]int{sy - 1, sy + 1} {
			if ny < roi.MinY || ny >= roi.MaxY {
				continue
			}
			for xi := lo; xi <= hi; xi++ {
				if dst.At(xi, ny) == 255 || !isFillable(xi, ny) {
					continue
				}
				queue = append(queue, seed{xi, ny})
			}
		}
	}
}
