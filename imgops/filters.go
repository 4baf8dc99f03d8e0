package imgops

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"
)

// checkBounds validates an inclusive filter range. Zero means "unset";
// a filter with neither bound set would keep everything.
func checkBounds(min, max float64) error {
	if min == 0 && max == 0 {
		return fmt.Errorf("imgops: at least one bound is required")
	}
	if min != 0 && max != 0 && min > max {
		return fmt.Errorf("imgops: lower bound %v exceeds upper bound %v", min, max)
	}
	return nil
}

func within(v, min, max float64) bool {
	if min != 0 && v < min {
		return false
	}
	if max != 0 && v > max {
		return false
	}
	return true
}

// FilterArea keeps contours whose enclosed area lies within [min, max],
// in original order. A zero bound is unset; both zero is an error. The
// result is a fresh vector; the caller closes it.
func FilterArea(contours gocv.PointsVector, min, max float64) (gocv.PointsVector, error) {
	if err := checkBounds(min, max); err != nil {
		return gocv.PointsVector{}, err
	}

	out := gocv.NewPointsVector()
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		if within(gocv.ContourArea(c), min, max) {
			out.Append(c)
		}
	}
	return out, nil
}

// FilterEccentricity keeps contours whose fitted-ellipse eccentricity
// sqrt(1 - (minor/major)^2) lies within [min, max]. Eccentricity runs from
// 0 (circle) to 1 (line). Contours with fewer than 5 points or a
// degenerate fit cannot be measured and are silently excluded. The result
// is a fresh vector; the caller closes it.
func FilterEccentricity(contours gocv.PointsVector, min, max float64) (gocv.PointsVector, error) {
	if err := checkBounds(min, max); err != nil {
		return gocv.PointsVector{}, err
	}

	out := gocv.NewPointsVector()
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		if c.Size() < 5 {
			// fitEllipse needs at least 5 points.
			continue
		}
		fit := gocv.FitEllipse(c)
		major := math.Max(float64(fit.Width), float64(fit.Height))
		minor := math.Min(float64(fit.Width), float64(fit.Height))
		if major == 0 {
			continue
		}
		ecc := math.Sqrt(1 - (minor/major)*(minor/major))
		if within(ecc, min, max) {
			out.Append(c)
		}
	}
	return out, nil
}

// FilterSolidity keeps contours whose solidity, enclosed area over convex
// hull area, lies within [min, max]. Solidity runs from near 0 (sparse,
// concave) to 1 (convex). Contours with a zero-area hull cannot be
// measured and are silently excluded. The result is a fresh vector; the
// caller closes it.
func FilterSolidity(contours gocv.PointsVector, min, max float64) (gocv.PointsVector, error) {
	if err := checkBounds(min, max); err != nil {
		return gocv.PointsVector{}, err
	}

	out := gocv.NewPointsVector()
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		hullArea := convexHullArea(c)
		if hullArea == 0 {
			continue
		}
		if within(gocv.ContourArea(c)/hullArea, min, max) {
			out.Append(c)
		}
	}
	return out, nil
}

func convexHullArea(c gocv.PointVector) float64 {
	hull := gocv.NewMat()
	defer hull.Close()
	gocv.ConvexHull(c, &hull, false, true)

	pts := gocv.NewPointVectorFromMat(hull)
	defer pts.Close()
	return gocv.ContourArea(pts)
}
