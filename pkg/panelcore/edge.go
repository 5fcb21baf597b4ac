package panelcore

import (
	"runtime"
	"sync"

	"github.com/the-wabe/panelcore/pkg/raster"
)

// Erode3x3 returns a new planar-8 buffer holding the 3x3 morphological
// minimum of buf (edges clamped), as an independently usable primitive —
// the original analysis toolkit exposed dilate/erode as named operations
// on ImageBuffer, and edge detection is built by subtracting one from the
// source.
func Erode3x3(buf *raster.Planar8) (*raster.Planar8, error) {
	if buf.Width <= 0 || buf.Height <= 0 {
		return nil, newVImageError("invalid buffer dimensions %dx%d", buf.Width, buf.Height)
	}

	out := raster.NewPlanar8(buf.Width, buf.Height)

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > buf.Height {
		workers = buf.Height
	}

	var wg sync.WaitGroup
	rowsPer := (buf.Height + workers - 1) / workers
	for wi := 0; wi < workers; wi++ {
		startRow := wi * rowsPer
		endRow := startRow + rowsPer
		if endRow > buf.Height {
			endRow = buf.Height
		}
		if startRow >= endRow {
			continue
		}
		wg.Add(1)
		go func(startY, endY int) {
			defer wg.Done()
			for y := startY; y < endY; y++ {
				for x := 0; x < buf.Width; x++ {
					min := byte(255)
					for dy := -1; dy <= 1; dy++ {
						for dx := -1; dx <= 1; dx++ {
							v := buf.At(x+dx, y+dy)
							if v < min {
								min = v
							}
						}
					}
					out.Set(x, y, min)
				}
			}
		}(startRow, endRow)
	}
	wg.Wait()

	return out, nil
}

// DetectEdges computes the 3x3 morphological minimum of buf and subtracts
// it componentwise from buf (saturated at 0), mutating buf in place. This
// is an erosion-difference edge detector; it preserves image dimensions.
// The row range is split across a worker pool.
func DetectEdges(buf *raster.Planar8) error {
	eroded, err := Erode3x3(buf)
	if err != nil {
		return err
	}

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > buf.Height {
		workers = buf.Height
	}

	var wg sync.WaitGroup
	rowsPer := (buf.Height + workers - 1) / workers
	for wi := 0; wi < workers; wi++ {
		startRow := wi * rowsPer
		endRow := startRow + rowsPer
		if endRow > buf.Height {
			endRow = buf.Height
		}
		if startRow >= endRow {
			continue
		}
		wg.Add(1)
		go func(startY, endY int) {
			defer wg.Done()
			for y := startY; y < endY; y++ {
				rowStart := y * buf.Stride
				erodedRow := eroded.Pix[y*eroded.Stride : y*eroded.Stride+buf.Width]
				row := buf.Pix[rowStart : rowStart+buf.Width]
				for x, v := range row {
					e := erodedRow[x]
					if v > e {
						row[x] = v - e
					} else {
						row[x] = 0
					}
				}
			}
		}(startRow, endRow)
	}
	wg.Wait()

	return nil
}
