package imgops

import (
	"image"

	"gocv.io/x/gocv"
)

// Circle is a center and radius in pixel coordinates.
type Circle struct {
	X, Y   float32
	Radius float32
}

// FitCircles computes the minimum enclosing circle of each contour.
func FitCircles(contours gocv.PointsVector) []Circle {
	out := make([]Circle, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		x, y, r := gocv.MinEnclosingCircle(contours.At(i))
		out = append(out, Circle{X: x, Y: y, Radius: r})
	}
	return out
}

// FitRects computes the upright bounding box of each contour.
func FitRects(contours gocv.PointsVector) []image.Rectangle {
	out := make([]image.Rectangle, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		out = append(out, gocv.BoundingRect(contours.At(i)))
	}
	return out
}

// FitRotatedRects computes the minimum-area rotated rectangle of each
// contour.
func FitRotatedRects(contours gocv.PointsVector) []gocv.RotatedRect {
	out := make([]gocv.RotatedRect, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		out = append(out, gocv.MinAreaRect(contours.At(i)))
	}
	return out
}

// FitEllipses fits an ellipse to each contour with at least 5 points;
// smaller contours are silently excluded, so the result may be shorter
// than the input.
func FitEllipses(contours gocv.PointsVector) []gocv.RotatedRect {
	out := make([]gocv.RotatedRect, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		if c.Size() < 5 {
			continue
		}
		out = append(out, gocv.FitEllipse(c))
	}
	return out
}
