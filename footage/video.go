package footage

import (
	"fmt"
	"log/slog"
	"os"

	"gocv.io/x/gocv"
)

// videoSource is the stream-backed Source: one gocv.VideoCapture behind
// bounds-checked, metadata-cached reads.
type videoSource struct {
	cap     *gocv.VideoCapture
	ownsCap bool
	info    Info
	closed  bool
}

// OpenVideo opens a video file and caches its metadata.
//
// Returns an error if:
//   - The file does not exist (ErrNotFound)
//   - The container cannot be opened or decoded
func OpenVideo(path string) (Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("footage: cannot open video %s: %w", path, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("footage: cannot open video %s", path)
	}
	v := &videoSource{cap: cap, ownsCap: true, info: captureInfo(cap)}

	slog.Info("footage: opened video",
		"path", path,
		"frames", v.info.Frames,
		"width", v.info.Width,
		"height", v.info.Height,
		"fps", v.info.FPS,
		"codec", v.info.Codec)
	return v, nil
}

// OpenDevice opens a capture device (camera) by index. Devices usually
// report no frame count, so indexed and ranged reads are unavailable;
// consume them through Stream.
func OpenDevice(index int) (Source, error) {
	cap, err := gocv.VideoCaptureDevice(index)
	if err != nil {
		return nil, fmt.Errorf("footage: cannot open capture device %d: %w", index, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("footage: cannot open capture device %d", index)
	}
	v := &videoSource{cap: cap, ownsCap: true, info: captureInfo(cap)}

	slog.Info("footage: opened capture device",
		"device", index,
		"width", v.info.Width,
		"height", v.info.Height,
		"fps", v.info.FPS)
	return v, nil
}

// FromCapture adopts a pre-opened capture handle without taking ownership:
// Close() on the returned source leaves the handle open for its owner to
// release. Metadata is cached at adoption time.
func FromCapture(cap *gocv.VideoCapture) (Source, error) {
	if cap == nil {
		return nil, fmt.Errorf("footage: nil capture handle")
	}
	if !cap.IsOpened() {
		return nil, fmt.Errorf("footage: capture handle is not open")
	}
	return &videoSource{cap: cap, ownsCap: false, info: captureInfo(cap)}, nil
}

// captureInfo reads the metadata snapshot off an open capture handle.
func captureInfo(cap *gocv.VideoCapture) Info {
	fourcc := int64(cap.Get(gocv.VideoCaptureFOURCC))
	return Info{
		Frames: int(cap.Get(gocv.VideoCaptureFrameCount)),
		Width:  int(cap.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(cap.Get(gocv.VideoCaptureFrameHeight)),
		FPS:    cap.Get(gocv.VideoCaptureFPS),
		FourCC: fourcc,
		Codec:  FourCCString(fourcc),
	}
}

func (v *videoSource) Info() Info { return v.info }

func (v *videoSource) Len() int { return v.info.Frames }

func (v *videoSource) ReadFrame(index int, opts ReadOptions) (gocv.Mat, error) {
	if v.closed {
		return gocv.Mat{}, fmt.Errorf("%w: source", ErrClosed)
	}
	if index < 0 || index >= v.info.Frames {
		return gocv.Mat{}, fmt.Errorf("%w: frame %d not in [0, %d)", ErrIndex, index, v.info.Frames)
	}

	v.cap.Set(gocv.VideoCapturePosFrames, float64(index))
	m := gocv.NewMat()
	if ok := v.cap.Read(&m); !ok || m.Empty() {
		m.Close()
		return gocv.Mat{}, fmt.Errorf("%w: frame %d", ErrDecode, index)
	}
	if opts.Grayscale {
		toGray(&m)
	}
	return m, nil
}

func (v *videoSource) ReadRange(start, stop int, opts RangeOptions) (*Sequence, error) {
	if v.closed {
		return nil, fmt.Errorf("%w: source", ErrClosed)
	}
	step, err := checkRange(start, stop, opts.Step, v.info.Frames)
	if err != nil {
		return nil, err
	}

	seq := newSequence(v.rangeCursor, start, stop, step, opts.Grayscale)
	if opts.Eager {
		if err := seq.Materialize(); err != nil {
			return nil, err
		}
	}
	return seq, nil
}

func (v *videoSource) ReadAll(opts RangeOptions) (*Sequence, error) {
	return v.ReadRange(0, v.info.Frames, opts)
}

func (v *videoSource) Stream(opts ReadOptions) Cursor {
	if v.closed {
		return &errCursor{err: fmt.Errorf("%w: source", ErrClosed)}
	}
	return newStreamCursor(v.cap, opts.Grayscale)
}

// rangeCursor is the producer behind sequences: each invocation re-seeks
// and hands out a fresh decoding pass over the range.
func (v *videoSource) rangeCursor(start, stop, step int, grayscale bool) Cursor {
	if v.closed {
		return &errCursor{err: fmt.Errorf("%w: source", ErrClosed)}
	}
	return newVideoCursor(v.cap, start, stop, step, grayscale)
}

func (v *videoSource) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	if !v.ownsCap {
		return nil
	}
	slog.Debug("footage: closing video source")
	return v.cap.Close()
}

// videoCursor decodes a range sequentially off a shared capture handle.
// Stepped ranges grab-and-discard the frames between kept ones instead of
// seeking, which is the only accurate way through inter-frame compression.
type videoCursor struct {
	cap       *gocv.VideoCapture
	cur       gocv.Mat
	next      int
	remaining int // frames left to yield; negative means unbounded
	step      int
	gray      bool
	started   bool
	err       error
	closed    bool
}

func newVideoCursor(cap *gocv.VideoCapture, start, stop, step int, gray bool) *videoCursor {
	cap.Set(gocv.VideoCapturePosFrames, float64(start))
	return &videoCursor{
		cap:       cap,
		cur:       gocv.NewMat(),
		next:      start,
		remaining: rangeLen(start, stop, step),
		step:      step,
		gray:      gray,
	}
}

// newStreamCursor reads from the current decode position with no bound:
// running out of frames is a clean end, not an error, because a capture
// handle cannot tell EOF apart from a live stream pause.
func newStreamCursor(cap *gocv.VideoCapture, gray bool) *videoCursor {
	return &videoCursor{cap: cap, cur: gocv.NewMat(), remaining: -1, step: 1, gray: gray}
}

func (c *videoCursor) Next() bool {
	if c.closed || c.err != nil || c.remaining == 0 {
		return false
	}
	if c.started && c.step > 1 {
		c.cap.Grab(c.step - 1)
	}
	if ok := c.cap.Read(&c.cur); !ok || c.cur.Empty() {
		if c.remaining > 0 {
			// The metadata promised this frame; its absence is a decode
			// failure, not an end of footage.
			c.err = fmt.Errorf("%w: frame %d", ErrDecode, c.next)
		}
		return false
	}
	if c.gray {
		toGray(&c.cur)
	}
	c.started = true
	c.next += c.step
	if c.remaining > 0 {
		c.remaining--
	}
	return true
}

func (c *videoCursor) Frame() gocv.Mat { return c.cur }

func (c *videoCursor) Err() error { return c.err }

func (c *videoCursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.cur.Close()
}
