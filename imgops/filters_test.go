package imgops_test

import (
	"image"
	"testing"

	"gocv.io/x/gocv"

	"github.com/e7canasta/visionkit/imgops"
)

func TestFilterArea(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		expected []float64
	}{
		{name: "min only", min: 100, expected: []float64{150, 300}},
		{name: "max only", max: 200, expected: []float64{50, 150}},
		{name: "band", min: 100, max: 200, expected: []float64{150}},
		{name: "lower bound is inclusive", min: 150, expected: []float64{150, 300}},
		{name: "upper bound is inclusive", max: 150, expected: []float64{50, 150}},
		{name: "nothing passes", min: 1000, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := polySet(t,
				rectPoly(0, 0, 5, 10),  // area 50
				rectPoly(0, 0, 10, 15), // area 150
				rectPoly(0, 0, 15, 20), // area 300
			)

			kept, err := imgops.FilterArea(set, tt.min, tt.max)
			if err != nil {
				t.Fatalf("FilterArea() error = %v", err)
			}
			defer kept.Close()

			got := areasOf(kept)
			if len(got) != len(tt.expected) {
				t.Fatalf("FilterArea() kept %v, want %v", got, tt.expected)
			}
			for i := range tt.expected {
				if got[i] != tt.expected[i] {
					t.Errorf("kept[%d] area = %.0f, want %.0f (order must be preserved)", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestFiltersRequireBounds(t *testing.T) {
	set := polySet(t, rectPoly(0, 0, 10, 10))

	if _, err := imgops.FilterArea(set, 0, 0); err == nil {
		t.Error("FilterArea() without bounds expected an error")
	}
	if _, err := imgops.FilterEccentricity(set, 0, 0); err == nil {
		t.Error("FilterEccentricity() without bounds expected an error")
	}
	if _, err := imgops.FilterSolidity(set, 0, 0); err == nil {
		t.Error("FilterSolidity() without bounds expected an error")
	}
}

func TestFiltersRejectInvertedBounds(t *testing.T) {
	set := polySet(t, rectPoly(0, 0, 10, 10))
	if _, err := imgops.FilterArea(set, 200, 100); err == nil {
		t.Error("FilterArea() with min > max expected an error")
	}
}

func TestFilterEccentricity(t *testing.T) {
	square := []image.Point{
		{0, 0}, {30, 0}, {60, 0}, {60, 30},
		{60, 60}, {30, 60}, {0, 60}, {0, 30},
	}
	elongated := []image.Point{
		{0, 0}, {30, 0}, {60, 0}, {60, 5},
		{60, 10}, {30, 10}, {0, 10}, {0, 5},
	}
	tiny := rectPoly(0, 0, 4, 4) // 4 points, below the ellipse-fit minimum

	t.Run("keeps elongated shapes above the floor", func(t *testing.T) {
		set := polySet(t, square, elongated, tiny)
		kept, err := imgops.FilterEccentricity(set, 0.7, 0)
		if err != nil {
			t.Fatalf("FilterEccentricity() error = %v", err)
		}
		defer kept.Close()

		if kept.Size() != 1 {
			t.Fatalf("kept %d contours, want 1", kept.Size())
		}
		r := gocv.BoundingRect(kept.At(0))
		if r.Dx() != 61 || r.Dy() != 11 {
			t.Errorf("kept the wrong contour, bounds %dx%d, want 61x11", r.Dx(), r.Dy())
		}
	})

	t.Run("keeps round shapes below the ceiling", func(t *testing.T) {
		set := polySet(t, square, elongated, tiny)
		kept, err := imgops.FilterEccentricity(set, 0, 0.7)
		if err != nil {
			t.Fatalf("FilterEccentricity() error = %v", err)
		}
		defer kept.Close()

		if kept.Size() != 1 {
			t.Fatalf("kept %d contours, want 1", kept.Size())
		}
		r := gocv.BoundingRect(kept.At(0))
		if r.Dx() != 61 || r.Dy() != 61 {
			t.Errorf("kept the wrong contour, bounds %dx%d, want 61x61", r.Dx(), r.Dy())
		}
	})
}

func TestFilterSolidity(t *testing.T) {
	square := rectPoly(0, 0, 40, 40) // convex: solidity 1.0
	lShape := []image.Point{         // concave: area 700 over hull 1150
		{0, 0}, {40, 0}, {40, 10},
		{10, 10}, {10, 40}, {0, 40},
	}
	degenerate := []image.Point{{0, 0}, {10, 0}} // zero-area hull

	t.Run("keeps convex shapes above the floor", func(t *testing.T) {
		set := polySet(t, square, lShape, degenerate)
		kept, err := imgops.FilterSolidity(set, 0.9, 0)
		if err != nil {
			t.Fatalf("FilterSolidity() error = %v", err)
		}
		defer kept.Close()

		if kept.Size() != 1 {
			t.Fatalf("kept %d contours, want 1", kept.Size())
		}
		if n := kept.At(0).Size(); n != 4 {
			t.Errorf("kept a %d-point contour, want the 4-point square", n)
		}
	})

	t.Run("keeps concave shapes below the ceiling", func(t *testing.T) {
		set := polySet(t, square, lShape, degenerate)
		kept, err := imgops.FilterSolidity(set, 0, 0.7)
		if err != nil {
			t.Fatalf("FilterSolidity() error = %v", err)
		}
		defer kept.Close()

		if kept.Size() != 1 {
			t.Fatalf("kept %d contours, want 1", kept.Size())
		}
		if n := kept.At(0).Size(); n != 6 {
			t.Errorf("kept a %d-point contour, want the 6-point L shape", n)
		}
	})
}
