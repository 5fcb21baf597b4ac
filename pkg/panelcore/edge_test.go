package panelcore

import (
	"testing"

	"github.com/the-wabe/panelcore/pkg/raster"
)

func TestErode3x3ConstantBufferIsUnchanged(t *testing.T) {
	buf := raster.NewPlanar8(12, 12)
	buf.Fill(200)

	eroded, err := Erode3x3(buf)
	if err != nil {
		t.Fatalf("Erode3x3: %v", err)
	}
	for i, v := range eroded.Pix {
		if v != 200 {
			t.Fatalf("pix[%d] = %d, want 200 (uniform input erodes to itself)", i, v)
		}
	}
}

func TestDetectEdgesUniformBufferIsZero(t *testing.T) {
	buf := raster.NewPlanar8(12, 12)
	buf.Fill(128)

	if err := DetectEdges(buf); err != nil {
		t.Fatalf("DetectEdges: %v", err)
	}
	for i, v := range buf.Pix {
		if v != 0 {
			t.Fatalf("pix[%d] = %d, want 0 on a uniform buffer", i, v)
		}
	}
}

func TestDetectEdgesMarksRectangleBoundary(t *testing.T) {
	const w, h = 20, 20
	buf := raster.NewPlanar8(w, h)
	buf.Fill(255)
	buf.FillRect(raster.Rect{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15}, 0)

	if err := DetectEdges(buf); err != nil {
		t.Fatalf("DetectEdges: %v", err)
	}

	if buf.At(1, 1) != 0 {
		t.Errorf("far background pixel should have zero edge response, got %d", buf.At(1, 1))
	}
	if buf.At(10, 10) != 0 {
		t.Errorf("deep interior pixel should have zero edge response, got %d", buf.At(10, 10))
	}

	foundEdge := false
	for y := 4; y <= 15; y++ {
		for x := 4; x <= 15; x++ {
			if buf.At(x, y) != 0 {
				foundEdge = true
			}
		}
	}
	if !foundEdge {
		t.Error("expected a nonzero edge response somewhere along the rectangle boundary")
	}
}
