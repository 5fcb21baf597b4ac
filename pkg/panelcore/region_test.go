package panelcore

import "testing"

func box(x0, y0, x1, y1 float64) Polyline {
	return Polyline{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
}

func TestExtractRegionsOrdersSideBySideLeftToRight(t *testing.T) {
	regions := ExtractRegions([]Polyline{
		box(60, 0, 100, 40),
		box(0, 0, 40, 40),
	})
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}
	if regions[0].Lo.X != 0 || regions[1].Lo.X != 60 {
		t.Errorf("regions not sorted left-to-right: %+v", regions)
	}
}

func TestExtractRegionsOrdersRowsTopToBottom(t *testing.T) {
	regions := ExtractRegions([]Polyline{
		box(0, 100, 40, 140),
		box(0, 0, 40, 40),
	})
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}
	if regions[0].Lo.Y != 0 || regions[1].Lo.Y != 100 {
		t.Errorf("regions not sorted top-to-bottom: %+v", regions)
	}
}

func TestExtractRegionsMergesNestedBoxes(t *testing.T) {
	regions := ExtractRegions([]Polyline{
		box(0, 0, 100, 100),
		box(10, 10, 40, 40), // nested inside the first, should merge away
	})
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1 (nested box should merge)", len(regions))
	}
	if regions[0].Lo.X != 0 || regions[0].Hi.X != 100 {
		t.Errorf("merged region = %+v, want the outer box's bounds", regions[0])
	}
}

func TestExtractRegionsRoundsVerticesBeforeBounding(t *testing.T) {
	// Each vertex individually rounds to an integer box corner before the
	// min/max reduction: 0.6 rounds to 1 and 9.4 to 9, giving (1,1,8,8).
	regions := ExtractRegions([]Polyline{
		box(0.6, 0.6, 9.4, 9.4),
	})
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	x, y, w, h := regions[0].Rect()
	if x != 1 || y != 1 || w != 8 || h != 8 {
		t.Errorf("Rect() = (%d,%d,%d,%d), want (1,1,8,8)", x, y, w, h)
	}
}

func TestExtractRegionsIgnoresDegeneratePolylines(t *testing.T) {
	regions := ExtractRegions([]Polyline{
		{{5, 5}},
		box(0, 0, 10, 10),
	})
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1 (single-point polyline has no bounding box)", len(regions))
	}
}
