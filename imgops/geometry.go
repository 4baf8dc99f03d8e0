package imgops

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ShiftContours translates every point of every contour by (dx, dy). The
// result is a fresh vector; the caller closes it.
func ShiftContours(contours gocv.PointsVector, dx, dy int) gocv.PointsVector {
	shifted := contours.ToPoints()
	for i := range shifted {
		for j := range shifted[i] {
			shifted[i][j].X += dx
			shifted[i][j].Y += dy
		}
	}
	return gocv.NewPointsVectorFromPoints(shifted)
}

// Shrink zeroes a uniform border of by pixels around a single-channel
// image, keeping only the inner region. Useful for discarding edge noise
// before thresholding or contour discovery. The caller closes the result.
//
// Returns an error if:
//   - The image is not single-channel
//   - by is negative
//   - The border meets or crosses itself (2*by >= width or height)
func Shrink(img gocv.Mat, by int) (gocv.Mat, error) {
	if img.Channels() != 1 {
		return gocv.Mat{}, fmt.Errorf("imgops: shrink needs a single-channel image, got %d channels", img.Channels())
	}
	if by < 0 {
		return gocv.Mat{}, fmt.Errorf("imgops: shrink border must not be negative, got %d", by)
	}
	if by == 0 {
		return img.Clone(), nil
	}
	if 2*by >= img.Cols() || 2*by >= img.Rows() {
		return gocv.Mat{}, fmt.Errorf("imgops: a %d pixel border swallows the whole %dx%d image",
			by, img.Cols(), img.Rows())
	}

	inner := image.Rect(by, by, img.Cols()-by, img.Rows()-by)
	mask := RectMask(img, inner)
	defer mask.Close()

	out := gocv.NewMat()
	gocv.BitwiseAndWithMask(img, img, &out, mask)
	return out, nil
}
