package imgops

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var maskWhite = color.RGBA{R: 255, G: 255, B: 255, A: 0}

// RectMask builds a single-channel mask sized like the reference image,
// white inside the rectangle and black elsewhere. The caller closes it.
func RectMask(like gocv.Mat, r image.Rectangle) gocv.Mat {
	mask := gocv.Zeros(like.Rows(), like.Cols(), gocv.MatTypeCV8U)
	gocv.Rectangle(&mask, r, maskWhite, -1)
	return mask
}

// CircleMask builds a single-channel mask sized like the reference image,
// white inside the circle and black elsewhere. The caller closes it.
func CircleMask(like gocv.Mat, center image.Point, radius int) gocv.Mat {
	mask := gocv.Zeros(like.Rows(), like.Cols(), gocv.MatTypeCV8U)
	gocv.Circle(&mask, center, radius, maskWhite, -1)
	return mask
}

// EllipseMask builds a single-channel mask sized like the reference image,
// white inside the ellipse and black elsewhere. The caller closes it.
func EllipseMask(like gocv.Mat, e gocv.RotatedRect) gocv.Mat {
	mask := gocv.Zeros(like.Rows(), like.Cols(), gocv.MatTypeCV8U)
	axes := image.Pt(e.Width/2, e.Height/2)
	gocv.Ellipse(&mask, e.Center, axes, e.Angle, 0, 360, maskWhite, -1)
	return mask
}

// ContourMask builds a single-channel mask sized like the reference image,
// white inside every contour and black elsewhere. The caller closes it.
func ContourMask(like gocv.Mat, contours gocv.PointsVector) gocv.Mat {
	mask := gocv.Zeros(like.Rows(), like.Cols(), gocv.MatTypeCV8U)
	gocv.DrawContours(&mask, contours, -1, maskWhite, -1)
	return mask
}

// Mask holds a reusable single-channel mask and applies it to frames of
// the same size.
type Mask struct {
	m gocv.Mat
}

// NewMask copies a single-channel mask Mat into a reusable Mask. The
// input still belongs to the caller.
//
// Returns an error if:
//   - The mask is empty
//   - The mask is not single-channel
func NewMask(m gocv.Mat) (*Mask, error) {
	if m.Empty() {
		return nil, fmt.Errorf("imgops: cannot build a mask from an empty image")
	}
	if m.Channels() != 1 {
		return nil, fmt.Errorf("imgops: a mask must be single-channel, got %d channels", m.Channels())
	}
	return &Mask{m: m.Clone()}, nil
}

// Apply returns a copy of frame with everything outside the mask zeroed.
// The caller closes the result.
//
// Returns an error if the frame's size differs from the mask's.
func (k *Mask) Apply(frame gocv.Mat) (gocv.Mat, error) {
	if frame.Rows() != k.m.Rows() || frame.Cols() != k.m.Cols() {
		return gocv.Mat{}, fmt.Errorf("imgops: frame is %dx%d but the mask is %dx%d",
			frame.Cols(), frame.Rows(), k.m.Cols(), k.m.Rows())
	}
	out := gocv.NewMat()
	gocv.BitwiseAndWithMask(frame, frame, &out, k.m)
	return out, nil
}

// Close releases the mask's pixels.
func (k *Mask) Close() error {
	return k.m.Close()
}
