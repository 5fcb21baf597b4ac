package panelcore

import (
	"image"
	"image/color"

	"github.com/the-wabe/panelcore/pkg/raster"
)

// pageWithRect builds a w x h white page with a solid black rectangle
// painted in [x0,x1) x [y0,y1), converted to the analysis buffer format.
// A solid (not outlined) rectangle is sufficient: border extraction only
// cares about corner-reachability, so any area unreachable from the four
// page corners becomes the mask's interior regardless of how it's painted.
func pageWithRect(w, h, x0, y0, x1, y1 int) *raster.XYZAImage {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.NRGBA{A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, white)
		}
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.Set(x, y, black)
		}
	}
	return raster.FromNRGBA(img)
}
