package panelcore

import (
	"bytes"
	"encoding/binary"
	"math/rand"

	"github.com/the-wabe/panelcore/pkg/raster"
)

// DetectSegments runs border extraction, edge detection, and the PPHT
// analyzer over src, returning the significant line segments found within
// roi. rng may be nil to use a non-deterministic source; tests should pass
// a seeded one for reproducible output.
func DetectSegments(src *raster.XYZAImage, roi raster.Rect, params Params, rng *rand.Rand) ([]Segment, error) {
	mask := raster.NewPlanar8(src.Width, src.Height)
	if err := ExtractBorder(src, mask, roi); err != nil {
		return nil, err
	}
	if err := DetectEdges(mask); err != nil {
		return nil, err
	}

	analyzer, err := NewAnalyzer(mask, params, rng)
	if err != nil {
		return nil, err
	}
	return analyzer.Analyze(), nil
}

// DetectPolylines links segments into polylines using params.CloseGap as
// both the growth and closure tolerance.
func DetectPolylines(segments []Segment, params Params) []Polyline {
	return LinkPolylines(segments, float64(params.CloseGap))
}

// DetectRegionsFromPolylines reduces linked polylines to ordered bounding
// regions. It never fails: a polyline set that yields no regions returns an
// empty, non-nil slice.
func DetectRegionsFromPolylines(polylines []Polyline) []Region {
	regions := ExtractRegions(polylines)
	if regions == nil {
		regions = []Region{}
	}
	return regions
}

// DetectRegions runs the full pipeline — border extraction, edge detection,
// PPHT segment extraction, polyline linking, and region grouping — over the
// entire image, using dict to override DefaultParams via ParamsFromMap. It
// is the single entry point most callers need; rng may be nil.
func DetectRegions(src *raster.XYZAImage, dict map[string]any, rng *rand.Rand) ([]Region, error) {
	params, err := ParamsFromMap(dict)
	if err != nil {
		return nil, err
	}

	roi := raster.FullImage(src.Width, src.Height)
	segments, err := DetectSegments(src, roi, params, rng)
	if err != nil {
		return nil, err
	}

	polylines := DetectPolylines(segments, params)
	return DetectRegionsFromPolylines(polylines), nil
}

// EncodeRegions serializes regions to a small fixed-width binary form
// (region count, then x, y, w, h as big-endian int32 per region) suitable
// for writing a sidecar alongside a processed page.
func EncodeRegions(regions []Region) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, uint32(len(regions)))
	for _, r := range regions {
		x, y, w, h := r.Rect()
		binary.Write(buf, binary.BigEndian, int32(x))
		binary.Write(buf, binary.BigEndian, int32(y))
		binary.Write(buf, binary.BigEndian, int32(w))
		binary.Write(buf, binary.BigEndian, int32(h))
	}
	return buf.Bytes()
}

// DecodeRegions is the inverse of EncodeRegions.
func DecodeRegions(data []byte) ([]Region, error) {
	r := bytes.NewReader(data)
	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, newGeneralError(0, "decode region count: %v", err)
	}

	regions := make([]Region, 0, count)
	for i := uint32(0); i < count; i++ {
		var x, y, w, h int32
		if err := binary.Read(r, binary.BigEndian, &x); err != nil {
			return nil, newGeneralError(0, "decode region %d x: %v", i, err)
		}
		if err := binary.Read(r, binary.BigEndian, &y); err != nil {
			return nil, newGeneralError(0, "decode region %d y: %v", i, err)
		}
		if err := binary.Read(r, binary.BigEndian, &w); err != nil {
			return nil, newGeneralError(0, "decode region %d w: %v", i, err)
		}
		if err := binary.Read(r, binary.BigEndian, &h); err != nil {
			return nil, newGeneralError(0, "decode region %d h: %v", i, err)
		}
		regions = append(regions, Region{
			Lo: Point{float64(x), float64(y)},
			Hi: Point{float64(x + w), float64(y + h)},
		})
	}
	return regions, nil
}
