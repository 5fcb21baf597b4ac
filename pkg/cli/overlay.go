package cli

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/the-wabe/panelcore/pkg/panelcore"
)

var overlayOutline = color.NRGBA{R: 0, G: 200, B: 60, A: 255}

// DrawRegionOverlay renders src with every detected region's rectangle
// outlined and its reading-order index printed at the top-left corner.
func DrawRegionOverlay(src image.Image, regions []panelcore.Region) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	draw.Draw(out, b, src, b.Min, draw.Src)

	face := basicfont.Face7x13

	for i, r := range regions {
		x, y, w, h := r.Rect()
		drawRect(out, x, y, w, h, overlayOutline)

		d := &font.Drawer{
			Dst:  out,
			Src:  image.NewUniform(overlayOutline),
			Face: face,
			Dot:  fixed.Point26_6{X: fixed.I(x + 2), Y: fixed.I(y + 12)},
		}
		d.DrawString(strconv.Itoa(i + 1))
	}

	return out
}

// drawRect paints a 1-pixel-wide rectangle outline, clipped to img's bounds.
func drawRect(img *image.NRGBA, x, y, w, h int, c color.Color) {
	b := img.Bounds()
	hline := func(yy int) {
		if yy < b.Min.Y || yy >= b.Max.Y {
			return
		}
		for xx := x; xx < x+w; xx++ {
			if xx < b.Min.X || xx >= b.Max.X {
				continue
			}
			img.Set(xx, yy, c)
		}
	}
	vline := func(xx int) {
		if xx < b.Min.X || xx >= b.Max.X {
			return
		}
		for yy := y; yy < y+h; yy++ {
			if yy < b.Min.Y || yy >= b.Max.Y {
				continue
			}
			img.Set(xx, yy, c)
		}
	}
	hline(y)
	hline(y + h - 1)
	vline(x)
	vline(x + w - 1)
}
