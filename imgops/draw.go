package imgops

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Thickness values below zero fill the shape, matching the underlying
// drawing primitives.

// DrawContours draws every contour onto img in place.
func DrawContours(img *gocv.Mat, contours gocv.PointsVector, c color.RGBA, thickness int) {
	gocv.DrawContours(img, contours, -1, c, thickness)
}

// DrawCircles draws circles onto img in place, rounding centers and radii
// to whole pixels.
func DrawCircles(img *gocv.Mat, circles []Circle, c color.RGBA, thickness int) {
	for _, cir := range circles {
		center := image.Pt(int(cir.X+0.5), int(cir.Y+0.5))
		gocv.Circle(img, center, int(cir.Radius+0.5), c, thickness)
	}
}

// DrawRects draws upright rectangles onto img in place.
func DrawRects(img *gocv.Mat, rects []image.Rectangle, c color.RGBA, thickness int) {
	for _, r := range rects {
		gocv.Rectangle(img, r, c, thickness)
	}
}

// DrawRotatedRects draws rotated rectangles onto img in place as closed
// four-point contours.
func DrawRotatedRects(img *gocv.Mat, rects []gocv.RotatedRect, c color.RGBA, thickness int) {
	for _, r := range rects {
		box := gocv.NewPointsVectorFromPoints([][]image.Point{r.Points})
		gocv.DrawContours(img, box, -1, c, thickness)
		box.Close()
	}
}

// DrawEllipses draws full ellipses onto img in place.
func DrawEllipses(img *gocv.Mat, ellipses []gocv.RotatedRect, c color.RGBA, thickness int) {
	for _, e := range ellipses {
		axes := image.Pt(e.Width/2, e.Height/2)
		gocv.Ellipse(img, e.Center, axes, e.Angle, 0, 360, c, thickness)
	}
}
