package imgops

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Gray converts a 3-channel BGR image to grayscale. The caller closes the
// result. An image that is already single-channel is an error, not a copy,
// so accidental double conversion surfaces early.
func Gray(img gocv.Mat) (gocv.Mat, error) {
	if img.Channels() != 3 {
		return gocv.Mat{}, fmt.Errorf("imgops: grayscale conversion needs a 3-channel image, got %d channels", img.Channels())
	}
	out := gocv.NewMat()
	gocv.CvtColor(img, &out, gocv.ColorBGRToGray)
	return out, nil
}

// BGR expands a single-channel grayscale image to 3-channel BGR. The
// caller closes the result.
func BGR(img gocv.Mat) (gocv.Mat, error) {
	if img.Channels() != 1 {
		return gocv.Mat{}, fmt.Errorf("imgops: BGR expansion needs a single-channel image, got %d channels", img.Channels())
	}
	out := gocv.NewMat()
	gocv.CvtColor(img, &out, gocv.ColorGrayToBGR)
	return out, nil
}

// HSV converts a 3-channel BGR image to HSV. The caller closes the result.
func HSV(img gocv.Mat) (gocv.Mat, error) {
	if img.Channels() != 3 {
		return gocv.Mat{}, fmt.Errorf("imgops: HSV conversion needs a 3-channel image, got %d channels", img.Channels())
	}
	out := gocv.NewMat()
	gocv.CvtColor(img, &out, gocv.ColorBGRToHSV)
	return out, nil
}
