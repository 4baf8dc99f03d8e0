package footage

import (
	"fmt"
	"log/slog"

	"gocv.io/x/gocv"
)

// Cursor is a forward-only iterator over frames.
//
// Implementations must guarantee:
//   - Next() advances and reports whether a frame is available; after it
//     returns false it keeps returning false
//   - Frame() returns the current frame; the Mat is valid until the next
//     Next() or Close(), so callers clone what they keep
//   - Err() returns the error that ended iteration, or nil on clean end
//   - Close() releases cursor-owned scratch buffers and is idempotent
//
// The usual loop:
//
//	cur := seq.Frames()
//	defer cur.Close()
//	for cur.Next() {
//	    process(cur.Frame())
//	}
//	if err := cur.Err(); err != nil {
//	    return err
//	}
type Cursor interface {
	Next() bool
	Frame() gocv.Mat
	Err() error
	Close() error
}

// producerFunc builds a fresh cursor over [start, stop) with the given
// stride. Sequences re-invoke it on every iteration, which is what makes
// lazy sequences restartable.
type producerFunc func(start, stop, step int, grayscale bool) Cursor

// Sequence is a half-open, stepped view [start, stop) over a source.
//
// A sequence starts lazy: each Frames() call re-invokes the producer and
// decodes the range again. Materialize() imports the range into memory
// once, after which Frames() serves the buffer with no re-decode cost.
//
// Sequences are built by Source.ReadRange / Source.ReadAll.
type Sequence struct {
	produce   producerFunc
	start     int
	stop      int
	step      int
	grayscale bool

	// frames is the materialized buffer; nil while the sequence is lazy.
	frames []gocv.Mat
}

func newSequence(produce producerFunc, start, stop, step int, grayscale bool) *Sequence {
	return &Sequence{
		produce:   produce,
		start:     start,
		stop:      stop,
		step:      step,
		grayscale: grayscale,
	}
}

// Len returns floor((stop-start)/step), the number of frames the sequence
// yields. Zero when stop <= start.
func (s *Sequence) Len() int {
	return rangeLen(s.start, s.stop, s.step)
}

// rangeLen is the one definition of how many frames a stepped half-open
// range holds. Cursors cap their yield count with it so that a range like
// [0, 8) step 3 produces exactly floor(8/3) = 2 frames, never a trailing
// partial step.
func rangeLen(start, stop, step int) int {
	if stop <= start {
		return 0
	}
	return (stop - start) / step
}

// InMemory reports whether the sequence has been materialized.
func (s *Sequence) InMemory() bool {
	return s.frames != nil
}

// Frames returns a fresh cursor over the sequence. Lazy sequences decode
// the range anew on every call and yield identical output each time;
// materialized sequences iterate the in-memory buffer.
//
// Frames from a materialized sequence stay valid until the sequence is
// closed. A stream-backed lazy sequence repositions the shared decoder, so
// only one of its cursors should be active at a time.
func (s *Sequence) Frames() Cursor {
	if s.frames != nil {
		return &bufferCursor{frames: s.frames, i: -1}
	}
	return s.produce(s.start, s.stop, s.step, s.grayscale)
}

// Materialize imports the whole range into memory. Afterwards iteration
// serves frames from the buffer and the producer is not invoked again.
// Calling it on an already materialized sequence is a no-op.
//
// Returns an error if:
//   - The range yields zero frames (ErrEmptyRange)
//   - A frame fails to decode during the import (ErrDecode)
func (s *Sequence) Materialize() error {
	if s.frames != nil {
		return nil
	}
	n := s.Len()
	if n == 0 {
		return fmt.Errorf("%w: nothing to import for [%d, %d) step %d", ErrEmptyRange, s.start, s.stop, s.step)
	}

	slog.Info("footage: importing frames into memory",
		"frames", n,
		"start", s.start,
		"stop", s.stop,
		"step", s.step,
		"grayscale", s.grayscale)

	cur := s.produce(s.start, s.stop, s.step, s.grayscale)
	defer cur.Close()

	frames := make([]gocv.Mat, 0, n)
	for cur.Next() {
		frames = append(frames, cur.Frame().Clone())
	}
	if err := cur.Err(); err != nil {
		closeMats(frames)
		return err
	}
	if len(frames) == 0 {
		closeMats(frames)
		return fmt.Errorf("%w: producer yielded no frames for [%d, %d) step %d", ErrEmptyRange, s.start, s.stop, s.step)
	}

	s.frames = frames
	return nil
}

// Close releases the materialized buffer and any cursors serving from it.
// Lazy sequences hold no resources. Safe to call multiple times.
func (s *Sequence) Close() error {
	closeMats(s.frames)
	s.frames = nil
	return nil
}

func closeMats(mats []gocv.Mat) {
	for i := range mats {
		mats[i].Close()
	}
}

// bufferCursor iterates a materialized buffer. It owns nothing: frames
// belong to the sequence and stay valid until the sequence is closed.
type bufferCursor struct {
	frames []gocv.Mat
	i      int
}

func (c *bufferCursor) Next() bool {
	if c.i+1 >= len(c.frames) {
		return false
	}
	c.i++
	return true
}

func (c *bufferCursor) Frame() gocv.Mat {
	return c.frames[c.i]
}

func (c *bufferCursor) Err() error { return nil }

func (c *bufferCursor) Close() error { return nil }

// errCursor yields nothing but an error, for producers invoked on a source
// that can no longer serve them.
type errCursor struct {
	err error
}

func (c *errCursor) Next() bool      { return false }
func (c *errCursor) Frame() gocv.Mat { return gocv.Mat{} }
func (c *errCursor) Err() error      { return c.err }
func (c *errCursor) Close() error    { return nil }
