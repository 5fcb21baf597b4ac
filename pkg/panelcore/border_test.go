package panelcore

import (
	"image"
	"image/color"
	"testing"

	"github.com/the-wabe/panelcore/pkg/raster"
)

func TestExtractBorderSeparatesBackgroundFromInterior(t *testing.T) {
	const w, h = 40, 30
	src := pageWithRect(w, h, 10, 8, 30, 22)

	mask := raster.NewPlanar8(w, h)
	if err := ExtractBorder(src, mask, raster.FullImage(w, h)); err != nil {
		t.Fatalf("ExtractBorder: %v", err)
	}

	if got := mask.At(0, 0); got != 255 {
		t.Errorf("corner pixel = %d, want 255 (background)", got)
	}
	if got := mask.At(w-1, h-1); got != 255 {
		t.Errorf("opposite corner pixel = %d, want 255 (background)", got)
	}
	if got := mask.At(20, 15); got != 0 {
		t.Errorf("interior pixel = %d, want 0 (unreachable from corners)", got)
	}
}

func TestExtractBorderDimensionMismatch(t *testing.T) {
	src := raster.NewXYZAImage(10, 10)
	dst := raster.NewPlanar8(10, 11)

	err := ExtractBorder(src, dst, raster.FullImage(10, 10))
	if err == nil {
		t.Fatal("expected error for mismatched dimensions")
	}
	ve, ok := err.(*Error)
	if !ok || ve.Kind != VImage {
		t.Errorf("expected VImage error, got %v", err)
	}
}

func TestExtractBorderUsesPerCornerColor(t *testing.T) {
	// Left and right halves of the page have different, opaque background
	// colors. Each corner's fill must derive its color reference from its
	// own pixel: a shared reference from a single corner would make the
	// opposite half's background unreachable from its own corners.
	const w, h = 40, 30
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	left := color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	right := color.NRGBA{R: 40, G: 60, B: 180, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := left
			if x >= w/2 {
				c = right
			}
			img.Set(x, y, c)
		}
	}
	for y := 10; y < 20; y++ {
		for x := 15; x < 25; x++ {
			img.Set(x, y, color.NRGBA{A: 255})
		}
	}

	src := raster.FromNRGBA(img)
	mask := raster.NewPlanar8(w, h)
	if err := ExtractBorder(src, mask, raster.FullImage(w, h)); err != nil {
		t.Fatalf("ExtractBorder: %v", err)
	}

	for _, c := range [][2]int{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}} {
		if got := mask.At(c[0], c[1]); got != 255 {
			t.Errorf("corner (%d,%d) = %d, want 255 (background, using its own corner's color)", c[0], c[1], got)
		}
	}
	if got := mask.At(20, 15); got != 0 {
		t.Errorf("interior pixel = %d, want 0 (unreachable from corners)", got)
	}
}

func TestExtractBorderEntirelyFillableSurface(t *testing.T) {
	const w, h = 16, 16
	src := pageWithRect(w, h, 0, 0, 0, 0) // no rectangle: uniform white page

	mask := raster.NewPlanar8(w, h)
	if err := ExtractBorder(src, mask, raster.FullImage(w, h)); err != nil {
		t.Fatalf("ExtractBorder: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if got := mask.At(x, y); got != 255 {
				t.Fatalf("mask(%d,%d) = %d, want 255 on a uniform page", x, y, got)
			}
		}
	}
}
