package panelcore

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestEncodeDecodeRegionsRoundTrip(t *testing.T) {
	regions := []Region{
		{Lo: Point{0, 0}, Hi: Point{10, 20}},
		{Lo: Point{30, 5}, Hi: Point{50, 25}},
	}

	data := EncodeRegions(regions)
	got, err := DecodeRegions(data)
	if err != nil {
		t.Fatalf("DecodeRegions: %v", err)
	}
	if !reflect.DeepEqual(got, regions) {
		t.Errorf("round trip = %+v, want %+v", got, regions)
	}
}

func TestDecodeRegionsTruncatedInput(t *testing.T) {
	if _, err := DecodeRegions([]byte{0, 0, 0, 1}); err == nil {
		t.Error("expected an error decoding a truncated region")
	}
}

func TestDetectRegionsSmokeTest(t *testing.T) {
	const w, h = 80, 60
	src := pageWithRect(w, h, 15, 10, 65, 50)

	regions, err := DetectRegions(src, nil, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("DetectRegions: %v", err)
	}
	// The pipeline is probabilistic; assert only that it completes and
	// returns a well-formed (possibly empty) slice rather than panicking.
	for _, r := range regions {
		if r.Hi.X < r.Lo.X || r.Hi.Y < r.Lo.Y {
			t.Errorf("malformed region %+v", r)
		}
	}
}

func TestDetectRegionsPropagatesBadParams(t *testing.T) {
	src := pageWithRect(20, 20, 5, 5, 15, 15)
	_, err := DetectRegions(src, map[string]any{"sensitivity": "not a number"}, nil)
	if err == nil {
		t.Error("expected an error from an invalid parameter value")
	}
}
