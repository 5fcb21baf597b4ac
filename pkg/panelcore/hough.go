package panelcore

import (
	"math"
	"math/rand"
	"time"

	"github.com/the-wabe/panelcore/pkg/raster"
)

// voteState is a pixel's place in the PPHT lifecycle.
type voteState byte

const (
	stateUnset voteState = iota
	statePending
	stateVoted
)

type peak struct {
	theta, rho int
}

type candidateSegment struct {
	zLo, zHi float64
	points   map[[2]int]struct{}
}

// Analyzer runs the Progressive Probabilistic Hough Transform over a single
// edge-mask buffer. It owns its vote-state grid, accumulator, and work
// queue exclusively and is a one-shot object: Analyze must be called
// exactly once.
type Analyzer struct {
	width, height int

	rhoScale float64
	maxRho   int

	state       []voteState
	accumulator []uint32

	threshold float64
	maxGap    int

	queue []Point
	voted int

	rng  *rand.Rand
	used bool
}

// NewAnalyzer builds an Analyzer over buf using params. If rng is nil, a
// non-deterministically seeded source is used; tests should inject a
// deterministic one for reproducible tie-breaks.
func NewAnalyzer(buf *raster.Planar8, params Params, rng *rand.Rand) (*Analyzer, error) {
	if buf.Width <= 0 || buf.Height <= 0 {
		return nil, newVImageError("invalid buffer dimensions %dx%d", buf.Width, buf.Height)
	}

	width, height := buf.Width, buf.Height
	diagonal := math.Ceil(math.Hypot(float64(width), float64(height)))
	if diagonal <= 0 {
		return nil, newVImageError("degenerate image diagonal")
	}
	rhoScale := math.Exp2(math.Round(math.Log2(MaxTheta) - math.Log2(diagonal)))
	maxRho := int(math.Ceil(diagonal * rhoScale))
	if maxRho <= 0 {
		return nil, newVImageError("computed max_rho <= 0")
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	a := &Analyzer{
		width:       width,
		height:      height,
		rhoScale:    rhoScale,
		maxRho:      maxRho,
		state:       make([]voteState, width*height),
		accumulator: make([]uint32, MaxTheta*maxRho),
		threshold:   params.Sensitivity * (-math.Log(10)),
		maxGap:      params.MaxGap,
		rng:         rng,
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if buf.Pix[y*buf.Stride+x] != 0 {
				a.state[idx] = statePending
				a.queue = append(a.queue, Point{float64(x), float64(y)})
			} else {
				a.state[idx] = stateUnset
			}
		}
	}

	return a, nil
}

func (a *Analyzer) index(p Point) int {
	return int(p.Y)*a.width + int(p.X)
}

// vote casts a vote for pixel across every theta bucket, tracking the
// accumulator's running maximum for this pixel and testing it against the
// Poisson null-hypothesis significance threshold.
func (a *Analyzer) vote(pixel Point) (theta, rho int, significant bool) {
	var n uint32
	var peaks []peak

	for th := 0; th < MaxTheta; th++ {
		r := int(math.Round(pixel.dot(trig(th)) * a.rhoScale))
		if r < 0 || r >= a.maxRho {
			continue
		}
		idx := th + r*MaxTheta
		a.accumulator[idx]++
		count := a.accumulator[idx]

		if n < count {
			n = count
			peaks = peaks[:0]
		}
		if n == count {
			peaks = append(peaks, peak{th, r})
		}
	}

	a.voted++
	lambda := float64(a.voted) / float64(a.maxRho)

	// Poisson null hypothesis: ln p(n) = n*ln(lambda) - lnGamma(n+1) - lambda.
	lgamma, _ := math.Lgamma(float64(n) + 1)
	lnp := float64(n)*math.Log(lambda) - lgamma - lambda

	if lnp > a.threshold {
		return 0, 0, false
	}

	if len(peaks) > 1 {
		peaks = reduceToAxisAligned(peaks)
	}

	chosen := peaks[a.rng.Intn(len(peaks))]
	return chosen.theta, chosen.rho, true
}

// reduceToAxisAligned resolves a tie among equally-voted peaks by trying
// factor = 256, 128, ..., 1, at each step keeping only peaks whose theta is
// a multiple of factor, unless that would empty the set. factor=1 is the
// bounded terminal step: every theta is a multiple of 1, so it is always a
// no-op.
func reduceToAxisAligned(peaks []peak) []peak {
	factor := 256
	for {
		var filtered []peak
		for _, p := range peaks {
			if p.theta%factor == 0 {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) > 0 {
			peaks = filtered
		}
		if len(peaks) <= 1 || factor <= 1 {
			break
		}
		factor /= 2
	}
	return peaks
}

// unvote reverses a previously cast vote for pixel, decrementing every
// accumulator cell it incremented (bounded at 0) and the running vote count.
func (a *Analyzer) unvote(pixel Point) {
	for th := 0; th < MaxTheta; th++ {
		r := int(math.Round(pixel.dot(trig(th)) * a.rhoScale))
		if r < 0 || r >= a.maxRho {
			continue
		}
		idx := th + r*MaxTheta
		if a.accumulator[idx] > 0 {
			a.accumulator[idx]--
		}
	}
	a.voted--
}

// Analyze drains the work queue, emitting line segments with statistical
// significance, and consumes the Analyzer: it must not be called again.
func (a *Analyzer) Analyze() []Segment {
	if a.used {
		panic("panelcore: Analyzer.Analyze called more than once")
	}
	a.used = true

	var result []Segment

	live := a.queue
	n := len(live)
	a.voted = 0

	for n > 0 {
		ix := a.rng.Intn(n)
		live[ix], live[n-1] = live[n-1], live[ix]
		pixel := live[n-1]
		n--

		idx := a.index(pixel)
		if a.state[idx] != statePending {
			continue
		}
		a.state[idx] = stateVoted

		theta, rho, ok := a.vote(pixel)
		if !ok {
			continue
		}

		seg, ok := a.extractSegment(theta, rho)
		if !ok {
			continue
		}
		result = append(result, seg)
	}

	return result
}

// extractSegment walks the parametric line through (theta, rho), collects
// candidate segments separated by gaps of at least 2*maxGap half-pixel
// steps, picks the longest, consumes its pixels, and returns its endpoints
// if they are more than 10 pixels apart.
func (a *Analyzer) extractSegment(theta, rho int) (Segment, bool) {
	p0 := trig(theta).scale(float64(rho) / a.rhoScale)
	delta := trig((theta + MaxTheta/4) % MaxTheta)

	boundsX := math.Nextafter(float64(a.width), 0)
	boundsY := math.Nextafter(float64(a.height), 0)

	zMin, zMax := math.Inf(1), math.Inf(-1)

	consider := func(z float64, ok bool) {
		if ok {
			if zMin > z {
				zMin = z
			}
			if zMax < z {
				zMax = z
			}
		}
	}

	if delta.X != 0 {
		z := -p0.X / delta.X
		if math.IsInf(z, 0) == false && !math.IsNaN(z) {
			y := z*delta.Y + p0.Y
			consider(z, y >= 0 && y <= boundsY)
		}
	}
	if delta.Y != 0 {
		z := -p0.Y / delta.Y
		if !math.IsInf(z, 0) && !math.IsNaN(z) {
			x := z*delta.X + p0.X
			consider(z, x >= 0 && x <= boundsX)
		}
	}
	if delta.X != 0 {
		z := (boundsX - p0.X) / delta.X
		if !math.IsInf(z, 0) && !math.IsNaN(z) {
			y := z*delta.Y + p0.Y
			consider(z, y >= 0 && y <= boundsY)
		}
	}
	if delta.Y != 0 {
		z := (boundsY - p0.Y) / delta.Y
		if !math.IsInf(z, 0) && !math.IsNaN(z) {
			x := z*delta.X + p0.X
			consider(z, x >= 0 && x <= boundsX)
		}
	}

	if math.IsInf(zMin, 0) || math.IsInf(zMax, 0) {
		return Segment{}, false
	}

	var segments []candidateSegment
	cur := candidateSegment{points: make(map[[2]int]struct{})}
	gap := 1

	for z := zMin; z <= zMax; z += 0.5 {
		p := p0.add(delta.scale(z))

		lo := [2]int{int(math.Floor(p.X)) - 1, int(math.Floor(p.Y)) - 1}
		hi := [2]int{int(math.Ceil(p.X)) + 1, int(math.Ceil(p.Y)) + 1}

		starting := len(cur.points) == 0
		hit := false
		for y := lo[1]; y <= hi[1]; y++ {
			if y < 0 || y >= a.height {
				continue
			}
			for x := lo[0]; x <= hi[0]; x++ {
				if x < 0 || x >= a.width {
					continue
				}
				if a.state[y*a.width+x] != stateUnset {
					cur.points[[2]int{x, y}] = struct{}{}
					hit = true
				}
			}
		}

		if hit {
			if starting {
				cur.zLo = z
			}
			cur.zHi = z
			gap = 0
		} else {
			gap++
			if gap >= 2*a.maxGap && len(cur.points) > 0 {
				segments = append(segments, cur)
				cur = candidateSegment{points: make(map[[2]int]struct{})}
			}
		}
	}
	if len(cur.points) > 0 {
		segments = append(segments, cur)
	}

	if len(segments) == 0 {
		// Treated as a data-skip event for this pixel, not a reason to
		// discard everything already emitted earlier in this analysis.
		return Segment{}, false
	}

	best := segments[0]
	for _, s := range segments[1:] {
		if (s.zHi - s.zLo) > (best.zHi - best.zLo) {
			best = s
		}
	}

	for xy := range best.points {
		idx := xy[1]*a.width + xy[0]
		if a.state[idx] == stateVoted {
			a.unvote(Point{float64(xy[0]), float64(xy[1])})
		}
		a.state[idx] = stateUnset
	}

	p1 := p0.add(delta.scale(best.zLo))
	p2 := p0.add(delta.scale(best.zHi))

	if distanceSq(p1, p2) <= 100.0 {
		return Segment{}, false
	}

	return Segment{P1: p1, P2: p2}, true
}
