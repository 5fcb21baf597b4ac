package raster

import "math"

// sRGB D65 -> XYZ matrix.
func linearToXYZ(r, g, b float64) (x, y, z float64) {
	x = 0.4124564*r + 0.3575761*g + 0.1804375*b
	y = 0.2126729*r + 0.7151522*g + 0.0721750*b
	z = 0.0193339*r + 0.1191920*g + 0.9503041*b
	return
}

// D50 reference white, matching the original analyzer's fill::xyzToLab.
const (
	whiteX = 0.964355
	whiteY = 1.0
	whiteZ = 0.825195

	labEpsilon = 0.008856
	labKappa   = 903.3
)

// XYZToLab converts CIE XYZ to CIELab using the D50 white point and the
// standard piecewise function (epsilon=0.008856, kappa=903.3). xyz/white is
// clamped to [0, 1] before the piecewise function is applied, so
// out-of-gamut input doesn't diverge.
func XYZToLab(x, y, z float64) (l, a, b float64) {
	xr := clamp01(x / whiteX)
	yr := clamp01(y / whiteY)
	zr := clamp01(z / whiteZ)

	f := func(t float64) float64 {
		if t > labEpsilon {
			return math.Cbrt(t)
		}
		return (labKappa*t + 16.0) / 116.0
	}

	fx, fy, fz := f(xr), f(yr), f(zr)

	l = 116.0*fy - 16.0
	a = 500.0 * (fx - fy)
	b = 200.0 * (fy - fz)
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// LabDistanceSq returns the squared Euclidean distance between two CIELab
// colors.
func LabDistanceSq(l1, a1, b1, l2, a2, b2 float64) float64 {
	dl := l1 - l2
	da := a1 - a2
	db := b1 - b2
	return dl*dl + da*da + db*db
}
