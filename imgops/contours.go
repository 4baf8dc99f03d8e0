package imgops

import (
	"fmt"

	"gocv.io/x/gocv"
)

// noParent is the hierarchy sentinel marking a top-level contour. The
// hierarchy row for contour i is [next, previous, firstChild, parent];
// parent is the fourth entry.
const noParent = -1

// FindContours extracts contours and their hierarchy from a single-channel
// image (typically a threshold or edge map). The caller closes both returned
// values.
//
// Returns an error if:
//   - The image is empty
//   - The image is not single-channel
func FindContours(img gocv.Mat, mode gocv.RetrievalMode, method gocv.ContourApproximationMode) (gocv.PointsVector, gocv.Mat, error) {
	if img.Empty() {
		return gocv.PointsVector{}, gocv.Mat{}, fmt.Errorf("imgops: cannot find contours in an empty image")
	}
	if img.Channels() != 1 {
		return gocv.PointsVector{}, gocv.Mat{}, fmt.Errorf("imgops: contour discovery needs a single-channel image, got %d channels", img.Channels())
	}

	hierarchy := gocv.NewMat()
	contours := gocv.FindContoursWithParams(img, &hierarchy, mode, method)
	return contours, hierarchy, nil
}

// Smallest returns the contour enclosing the least area. The result is a
// view into contours and is valid only while contours is.
func Smallest(contours gocv.PointsVector) (gocv.PointVector, error) {
	return extremeByArea(contours, false)
}

// Largest returns the contour enclosing the most area. The result is a
// view into contours and is valid only while contours is.
func Largest(contours gocv.PointsVector) (gocv.PointVector, error) {
	return extremeByArea(contours, true)
}

func extremeByArea(contours gocv.PointsVector, largest bool) (gocv.PointVector, error) {
	if contours.Size() == 0 {
		return gocv.PointVector{}, fmt.Errorf("imgops: no contours to select from")
	}

	bestIdx := 0
	bestArea := gocv.ContourArea(contours.At(0))
	for i := 1; i < contours.Size(); i++ {
		a := gocv.ContourArea(contours.At(i))
		if largest && a > bestArea || !largest && a < bestArea {
			bestIdx, bestArea = i, a
		}
	}
	return contours.At(bestIdx), nil
}

// Parents keeps only top-level contours, those whose hierarchy parent
// entry is the -1 sentinel. hierarchy must be the Mat produced alongside
// contours by FindContours with a tree or two-level retrieval mode. The
// result is a fresh vector; the caller closes it.
//
// Returns an error if the hierarchy does not describe exactly one row per
// contour.
func Parents(contours gocv.PointsVector, hierarchy gocv.Mat) (gocv.PointsVector, error) {
	out := gocv.NewPointsVector()
	if contours.Size() == 0 {
		return out, nil
	}
	if hierarchy.Empty() || hierarchy.Cols() != contours.Size() {
		out.Close()
		return gocv.PointsVector{}, fmt.Errorf("imgops: hierarchy describes %d contours, want %d", hierarchy.Cols(), contours.Size())
	}

	for i := 0; i < contours.Size(); i++ {
		if hierarchy.GetVeciAt(0, i)[3] == noParent {
			out.Append(contours.At(i))
		}
	}
	return out, nil
}
