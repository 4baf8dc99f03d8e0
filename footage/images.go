package footage

import (
	"fmt"
	"log/slog"

	"gocv.io/x/gocv"
)

// imageSource is the image-backed Source: an ordered list of image file
// paths, one frame per file. Resolution comes from decoding the first
// image; frame rate and codec stay at their zero values.
type imageSource struct {
	paths  []string
	info   Info
	closed bool
}

// OpenImages opens an explicit list of image files as footage, in the
// given order. The first image is decoded to derive the resolution.
//
// Returns an error if:
//   - The list is empty (ErrNotFound)
//   - The first image cannot be decoded (ErrDecode)
func OpenImages(paths []string) (Source, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: empty image list", ErrNotFound)
	}

	probe := gocv.IMRead(paths[0], gocv.IMReadColor)
	if probe.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrDecode, paths[0])
	}
	info := Info{
		Frames: len(paths),
		Width:  probe.Cols(),
		Height: probe.Rows(),
	}
	probe.Close()

	owned := make([]string, len(paths))
	copy(owned, paths)
	s := &imageSource{paths: owned, info: info}

	slog.Info("footage: opened image sequence",
		"frames", info.Frames,
		"width", info.Width,
		"height", info.Height,
		"first", paths[0])
	return s, nil
}

func (s *imageSource) Info() Info { return s.info }

func (s *imageSource) Len() int { return s.info.Frames }

func (s *imageSource) ReadFrame(index int, opts ReadOptions) (gocv.Mat, error) {
	if s.closed {
		return gocv.Mat{}, fmt.Errorf("%w: source", ErrClosed)
	}
	if index < 0 || index >= len(s.paths) {
		return gocv.Mat{}, fmt.Errorf("%w: frame %d not in [0, %d)", ErrIndex, index, len(s.paths))
	}

	m := gocv.IMRead(s.paths[index], gocv.IMReadColor)
	if m.Empty() {
		return gocv.Mat{}, fmt.Errorf("%w: %s", ErrDecode, s.paths[index])
	}
	if opts.Grayscale {
		toGray(&m)
	}
	return m, nil
}

func (s *imageSource) ReadRange(start, stop int, opts RangeOptions) (*Sequence, error) {
	if s.closed {
		return nil, fmt.Errorf("%w: source", ErrClosed)
	}
	step, err := checkRange(start, stop, opts.Step, len(s.paths))
	if err != nil {
		return nil, err
	}

	seq := newSequence(s.rangeCursor, start, stop, step, opts.Grayscale)
	if opts.Eager {
		if err := seq.Materialize(); err != nil {
			return nil, err
		}
	}
	return seq, nil
}

func (s *imageSource) ReadAll(opts RangeOptions) (*Sequence, error) {
	return s.ReadRange(0, len(s.paths), opts)
}

func (s *imageSource) Stream(opts ReadOptions) Cursor {
	return s.rangeCursor(0, s.info.Frames, 1, opts.Grayscale)
}

// rangeCursor addresses paths directly: image files are independent, so a
// stepped range simply skips the paths in between.
func (s *imageSource) rangeCursor(start, stop, step int, grayscale bool) Cursor {
	if s.closed {
		return &errCursor{err: fmt.Errorf("%w: source", ErrClosed)}
	}
	return &imageCursor{
		paths:     s.paths,
		cur:       gocv.NewMat(),
		next:      start,
		remaining: rangeLen(start, stop, step),
		step:      step,
		gray:      grayscale,
	}
}

func (s *imageSource) Close() error {
	s.closed = true
	s.paths = nil
	return nil
}

// imageCursor iterates an image-backed range by index, yielding exactly
// floor((stop-start)/step) frames like its stream-backed counterpart.
type imageCursor struct {
	paths     []string
	cur       gocv.Mat
	next      int
	remaining int
	step      int
	gray      bool
	err       error
	closed    bool
}

func (c *imageCursor) Next() bool {
	if c.closed || c.err != nil || c.remaining == 0 {
		return false
	}

	m := gocv.IMRead(c.paths[c.next], gocv.IMReadColor)
	if m.Empty() {
		c.err = fmt.Errorf("%w: %s", ErrDecode, c.paths[c.next])
		return false
	}
	if c.gray {
		toGray(&m)
	}
	c.cur.Close()
	c.cur = m
	c.next += c.step
	c.remaining--
	return true
}

func (c *imageCursor) Frame() gocv.Mat { return c.cur }

func (c *imageCursor) Err() error { return c.err }

func (c *imageCursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.cur.Close()
}
