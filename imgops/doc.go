// Package imgops provides contour selection, filtering, fitting, drawing
// and masking helpers on top of gocv.
//
// Everything here is stateless and synchronous. Filters take a set of
// contours and return the kept subset in original order; selection picks
// one contour out of a set; fitting reduces contours to simple geometric
// shapes; drawing and masks rasterize those shapes back onto images.
//
// # Ownership
//
// Functions returning a fresh gocv.PointsVector or gocv.Mat transfer
// ownership to the caller, who must Close it. Functions documented as
// returning a view (Smallest, Largest) return memory owned by the input
// vector; the view is valid only while the input is.
//
// # Bounds
//
// Range filters take an optional inclusive lower and upper bound. A zero
// value means "no bound on this side"; leaving both at zero is an error
// since the filter would be a no-op.
package imgops
