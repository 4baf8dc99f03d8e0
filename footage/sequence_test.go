package footage

import (
	"errors"
	"fmt"
	"testing"

	"gocv.io/x/gocv"
)

// fakeCursor yields 4x4 single-channel mats whose pixels hold the frame
// index, so tests can check which frames a sequence produced. It honors
// the floor((stop-start)/step) yield count like the real cursors.
type fakeCursor struct {
	next, remaining, step int
	failAt                int
	decodes               *int
	cur                   gocv.Mat
	err                   error
	closed                bool
}

func (c *fakeCursor) Next() bool {
	if c.closed || c.err != nil || c.remaining == 0 {
		return false
	}
	if c.next == c.failAt {
		c.err = fmt.Errorf("%w: frame %d", ErrDecode, c.next)
		return false
	}
	c.cur.Close()
	c.cur = gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(c.next), 0, 0, 0), 4, 4, gocv.MatTypeCV8UC1)
	*c.decodes++
	c.next += c.step
	c.remaining--
	return true
}

func (c *fakeCursor) Frame() gocv.Mat { return c.cur }
func (c *fakeCursor) Err() error      { return c.err }
func (c *fakeCursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.cur.Close()
}

// fakeProducer builds fakeCursors and counts decodes across all of them.
// failAt < 0 disables failure injection.
func fakeProducer(failAt int, decodes *int) producerFunc {
	return func(start, stop, step int, grayscale bool) Cursor {
		return &fakeCursor{
			next:      start,
			remaining: rangeLen(start, stop, step),
			step:      step,
			failAt:    failAt,
			decodes:   decodes,
			cur:       gocv.NewMat(),
		}
	}
}

// drain collects the frame indices a cursor yields.
func drain(t *testing.T, cur Cursor) []int {
	t.Helper()
	defer cur.Close()

	var got []int
	for cur.Next() {
		f := cur.Frame()
		got = append(got, int(f.GetUCharAt(0, 0)))
	}
	if err := cur.Err(); err != nil {
		t.Fatalf("cursor error: %v", err)
	}
	return got
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSequenceLen(t *testing.T) {
	tests := []struct {
		name              string
		start, stop, step int
		expected          int
	}{
		{name: "full range", start: 0, stop: 10, step: 1, expected: 10},
		{name: "floored stepped range", start: 0, stop: 10, step: 3, expected: 3},
		{name: "offset range", start: 5, stop: 10, step: 1, expected: 5},
		{name: "step equals range", start: 0, stop: 10, step: 10, expected: 1},
		{name: "even stepped range", start: 2, stop: 10, step: 2, expected: 4},
		{name: "empty range", start: 4, stop: 4, step: 1, expected: 0},
		{name: "inverted range is empty", start: 7, stop: 3, step: 1, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decodes := 0
			seq := newSequence(fakeProducer(-1, &decodes), tt.start, tt.stop, tt.step, false)
			if got := seq.Len(); got != tt.expected {
				t.Errorf("Len() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestSequenceYieldMatchesLen(t *testing.T) {
	// A range the step does not divide evenly: [0, 8) step 3 holds
	// floor(8/3) = 2 frames, and iteration must agree with Len.
	decodes := 0
	seq := newSequence(fakeProducer(-1, &decodes), 0, 8, 3, false)

	got := drain(t, seq.Frames())
	if len(got) != seq.Len() {
		t.Fatalf("yielded %d frames, Len() = %d", len(got), seq.Len())
	}
	if !equalInts(got, []int{0, 3}) {
		t.Errorf("frames = %v, want [0 3]", got)
	}
}

func TestSequenceLazyRestart(t *testing.T) {
	decodes := 0
	seq := newSequence(fakeProducer(-1, &decodes), 2, 11, 3, false)

	first := drain(t, seq.Frames())
	second := drain(t, seq.Frames())

	expected := []int{2, 5, 8}
	if !equalInts(first, expected) {
		t.Errorf("first pass = %v, want %v", first, expected)
	}
	if !equalInts(second, first) {
		t.Errorf("second pass = %v, want %v", second, first)
	}
	if decodes != 6 {
		t.Errorf("decodes = %d, want 6 (each lazy pass re-decodes)", decodes)
	}
}

func TestSequenceMaterialize(t *testing.T) {
	decodes := 0
	seq := newSequence(fakeProducer(-1, &decodes), 0, 8, 2, false)
	defer seq.Close()

	if seq.InMemory() {
		t.Fatal("InMemory() = true before Materialize")
	}
	if err := seq.Materialize(); err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if !seq.InMemory() {
		t.Fatal("InMemory() = false after Materialize")
	}

	afterImport := decodes
	first := drain(t, seq.Frames())
	second := drain(t, seq.Frames())

	expected := []int{0, 2, 4, 6}
	if !equalInts(first, expected) {
		t.Errorf("materialized pass = %v, want %v", first, expected)
	}
	if !equalInts(second, expected) {
		t.Errorf("repeat materialized pass = %v, want %v", second, expected)
	}
	if decodes != afterImport {
		t.Errorf("decodes grew from %d to %d; materialized iteration must not re-decode", afterImport, decodes)
	}

	// Materialize is a no-op the second time.
	if err := seq.Materialize(); err != nil {
		t.Fatalf("second Materialize() error = %v", err)
	}
	if decodes != afterImport {
		t.Errorf("second Materialize() re-decoded (%d -> %d)", afterImport, decodes)
	}
}

func TestSequenceMaterializeEmptyRange(t *testing.T) {
	decodes := 0
	seq := newSequence(fakeProducer(-1, &decodes), 5, 5, 1, false)

	err := seq.Materialize()
	if !errors.Is(err, ErrEmptyRange) {
		t.Fatalf("Materialize() error = %v, want ErrEmptyRange", err)
	}
	if decodes != 0 {
		t.Errorf("decodes = %d, want 0 (empty range must not touch the producer)", decodes)
	}
}

func TestSequenceMaterializeDecodeFailure(t *testing.T) {
	decodes := 0
	seq := newSequence(fakeProducer(4, &decodes), 0, 8, 1, false)

	err := seq.Materialize()
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("Materialize() error = %v, want ErrDecode", err)
	}
	if seq.InMemory() {
		t.Error("InMemory() = true after failed Materialize")
	}
}

func TestSequenceClose(t *testing.T) {
	decodes := 0
	seq := newSequence(fakeProducer(-1, &decodes), 0, 4, 1, false)

	if err := seq.Materialize(); err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if err := seq.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if seq.InMemory() {
		t.Error("InMemory() = true after Close")
	}
	if err := seq.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	// A closed sequence falls back to lazy production.
	got := drain(t, seq.Frames())
	if !equalInts(got, []int{0, 1, 2, 3}) {
		t.Errorf("post-Close pass = %v, want [0 1 2 3]", got)
	}
}
