// Package raster defines the two buffer formats the panel-detection core
// operates on (XYZA-float and planar-8) and the pixel-level helpers shared
// by border extraction and edge detection.
package raster

import (
	"image"
	"math"
)

// Rect is a half-open axis-aligned region of interest: [MinX, MaxX) x [MinY, MaxY).
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Dx returns the width of r.
func (r Rect) Dx() int { return r.MaxX - r.MinX }

// Dy returns the height of r.
func (r Rect) Dy() int { return r.MaxY - r.MinY }

// Contains reports whether (x, y) lies within r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// FullImage returns the ROI covering the entire w x h image.
func FullImage(w, h int) Rect {
	return Rect{0, 0, w, h}
}

// XYZAImage is a 4-float32-per-pixel buffer: CIE XYZ plus linear alpha.
type XYZAImage struct {
	Pix           []float32
	Stride        int // floats per row, i.e. 4*Width
	Width, Height int
}

// NewXYZAImage allocates a zeroed w x h XYZA buffer.
func NewXYZAImage(w, h int) *XYZAImage {
	return &XYZAImage{
		Pix:    make([]float32, 4*w*h),
		Stride: 4 * w,
		Width:  w,
		Height: h,
	}
}

// At returns the (x, y, z, a) components of the pixel at (x, y).
func (b *XYZAImage) At(x, y int) (xv, yv, zv, av float32) {
	i := y*b.Stride + x*4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Set writes the (x, y, z, a) components of the pixel at (px, py).
func (b *XYZAImage) Set(px, py int, x, y, z, a float32) {
	i := py*b.Stride + px*4
	b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = x, y, z, a
}

// Planar8 is a 1-byte-per-pixel buffer used for masks and edge intensities.
type Planar8 struct {
	Pix           []byte
	Stride        int // bytes per row, i.e. Width
	Width, Height int
}

// NewPlanar8 allocates a zeroed w x h planar-8 buffer.
func NewPlanar8(w, h int) *Planar8 {
	return &Planar8{
		Pix:    make([]byte, w*h),
		Stride: w,
		Width:  w,
		Height: h,
	}
}

// At returns the intensity at (x, y), clamped to the buffer bounds.
func (b *Planar8) At(x, y int) byte {
	x = clampInt(x, 0, b.Width-1)
	y = clampInt(y, 0, b.Height-1)
	return b.Pix[y*b.Stride+x]
}

// Set writes the intensity at (x, y). (x, y) must be in bounds.
func (b *Planar8) Set(x, y int, v byte) {
	b.Pix[y*b.Stride+x] = v
}

// Clone returns a deep copy of b.
func (b *Planar8) Clone() *Planar8 {
	out := &Planar8{
		Pix:    make([]byte, len(b.Pix)),
		Stride: b.Stride,
		Width:  b.Width,
		Height: b.Height,
	}
	copy(out.Pix, b.Pix)
	return out
}

// Fill sets every pixel in b to v.
func (b *Planar8) Fill(v byte) {
	for i := range b.Pix {
		b.Pix[i] = v
	}
}

// FillRect sets every pixel within r (clipped to b's bounds) to v.
func (b *Planar8) FillRect(r Rect, v byte) {
	minX, maxX := clampInt(r.MinX, 0, b.Width), clampInt(r.MaxX, 0, b.Width)
	minY, maxY := clampInt(r.MinY, 0, b.Height), clampInt(r.MaxY, 0, b.Height)
	for y := minY; y < maxY; y++ {
		row := b.Pix[y*b.Stride+minX : y*b.Stride+maxX]
		for i := range row {
			row[i] = v
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FromNRGBA converts an 8-bit sRGB image to a linear-XYZ-plus-alpha buffer.
func FromNRGBA(src *image.NRGBA) *XYZAImage {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewXYZAImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			r := srgbToLinear(src.Pix[off+0])
			g := srgbToLinear(src.Pix[off+1])
			bl := srgbToLinear(src.Pix[off+2])
			a := float32(src.Pix[off+3]) / 255.0
			xv, yv, zv := linearToXYZ(r, g, bl)
			out.Set(x, y, float32(xv), float32(yv), float32(zv), a)
		}
	}
	return out
}

// srgbToLinear converts an 8-bit sRGB channel to linear intensity.
func srgbToLinear(c uint8) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
