package footage

import (
	"fmt"
	"image"
	"log/slog"

	"gocv.io/x/gocv"
)

// Writer encodes frames to a video container or to a one-to-one sequence
// of image files.
//
// The video path is forgiving about input shape: frames that do not match
// the configured resolution are resized, frames at the wrong channel depth
// are converted. Both recoveries are non-fatal; they are logged at Warn
// level and counted in Stats. The image path writes frames exactly as
// handed in.
//
// A Writer is owned by exactly one caller and is not safe for concurrent
// use.
type Writer struct {
	vw    *gocv.VideoWriter
	path  string
	paths []string
	next  int

	width     int
	height    int
	fps       float64
	codec     string
	grayscale bool

	stats  WriterStats
	closed bool
}

// NewVideoWriter opens a video encoder at path. Unset options are filled
// from opts.Source: resolution always, frame rate and codec when the
// source is stream-backed. Without any source the caller must set FPS,
// Width and Height explicitly; the codec defaults to "MJPG".
//
// Returns an error if:
//   - No frame rate is available (image-backed footage carries none)
//   - No resolution is available
//   - The codec tag is not 4 characters
//   - The encoder cannot be opened
func NewVideoWriter(path string, opts WriterOptions) (*Writer, error) {
	opts = opts.withSourceDefaults()
	if opts.Codec == "" {
		opts.Codec = "MJPG"
	}
	if len(opts.Codec) != 4 {
		return nil, fmt.Errorf("footage: codec tag must be exactly 4 characters, got %q", opts.Codec)
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("footage: a frame rate is required to encode video (image-backed footage carries none)")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("footage: an output resolution is required, got %dx%d", opts.Width, opts.Height)
	}

	vw, err := gocv.VideoWriterFile(path, opts.Codec, opts.FPS, opts.Width, opts.Height, !opts.Grayscale)
	if err != nil {
		return nil, fmt.Errorf("footage: cannot open encoder for %s: %w", path, err)
	}
	if !vw.IsOpened() {
		vw.Close()
		return nil, fmt.Errorf("footage: cannot open encoder for %s (codec %s)", path, opts.Codec)
	}

	slog.Info("footage: opened video writer",
		"path", path,
		"codec", opts.Codec,
		"fps", opts.FPS,
		"width", opts.Width,
		"height", opts.Height,
		"grayscale", opts.Grayscale)

	return &Writer{
		vw:        vw,
		path:      path,
		width:     opts.Width,
		height:    opts.Height,
		fps:       opts.FPS,
		codec:     opts.Codec,
		grayscale: opts.Grayscale,
	}, nil
}

// NewImageWriter writes one image file per frame, consuming paths in
// order. Frames are encoded exactly as handed in; the format follows each
// path's extension.
func NewImageWriter(paths []string, opts WriterOptions) (*Writer, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("footage: image writer needs at least one output path")
	}
	opts = opts.withSourceDefaults()

	owned := make([]string, len(paths))
	copy(owned, paths)

	slog.Info("footage: opened image writer", "paths", len(owned), "first", owned[0])
	return &Writer{
		paths:     owned,
		width:     opts.Width,
		height:    opts.Height,
		grayscale: opts.Grayscale,
	}, nil
}

func (o WriterOptions) withSourceDefaults() WriterOptions {
	if o.Source == nil {
		return o
	}
	info := o.Source.Info()
	if o.Width == 0 {
		o.Width = info.Width
	}
	if o.Height == 0 {
		o.Height = info.Height
	}
	if o.FPS == 0 {
		o.FPS = info.FPS
	}
	if o.Codec == "" {
		o.Codec = info.Codec
	}
	return o
}

// Write appends one frame.
//
// Returns an error if:
//   - The writer has been closed (ErrClosed)
//   - The frame is empty
//   - An image writer has run out of output paths
//   - The underlying encode fails
func (w *Writer) Write(frame gocv.Mat) error {
	if w.closed {
		return fmt.Errorf("%w: writer", ErrClosed)
	}
	if frame.Empty() {
		return fmt.Errorf("footage: cannot write an empty frame")
	}
	if w.vw != nil {
		return w.writeVideo(frame)
	}
	return w.writeImage(frame)
}

func (w *Writer) writeVideo(frame gocv.Mat) error {
	work := frame
	owned := false

	if work.Cols() != w.width || work.Rows() != w.height {
		resized := gocv.NewMat()
		gocv.Resize(work, &resized, image.Pt(w.width, w.height), 0, 0, gocv.InterpolationLinear)
		work = resized
		owned = true
		w.stats.Resized++
		slog.Warn("footage: resizing frame to the writer resolution",
			"frame", w.stats.FramesWritten,
			"from_width", frame.Cols(), "from_height", frame.Rows(),
			"to_width", w.width, "to_height", w.height)
	}

	want := 3
	code := gocv.ColorGrayToBGR
	if w.grayscale {
		want = 1
		code = gocv.ColorBGRToGray
	}
	if work.Channels() != want {
		converted := gocv.NewMat()
		gocv.CvtColor(work, &converted, code)
		if owned {
			work.Close()
		}
		work = converted
		owned = true
		w.stats.Converted++
		slog.Warn("footage: converting frame to the writer color depth",
			"frame", w.stats.FramesWritten,
			"from_channels", frame.Channels(),
			"to_channels", want)
	}

	err := w.vw.Write(work)
	if owned {
		work.Close()
	}
	if err != nil {
		return fmt.Errorf("footage: encode failed at frame %d: %w", w.stats.FramesWritten, err)
	}
	w.stats.FramesWritten++
	return nil
}

func (w *Writer) writeImage(frame gocv.Mat) error {
	if w.next >= len(w.paths) {
		return fmt.Errorf("footage: image writer ran out of output paths after %d frames", len(w.paths))
	}
	path := w.paths[w.next]
	if ok := gocv.IMWrite(path, frame); !ok {
		return fmt.Errorf("footage: cannot write image %s", path)
	}
	w.next++
	w.stats.FramesWritten++
	return nil
}

// Stats returns a snapshot of the writer's counters.
func (w *Writer) Stats() WriterStats {
	return w.stats
}

// Close releases the encoder. The default Source supplied in the options,
// if any, stays open; it belongs to the caller. Safe to call multiple
// times.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	slog.Debug("footage: writer closed",
		"written", w.stats.FramesWritten,
		"resized", w.stats.Resized,
		"converted", w.stats.Converted)
	if w.vw != nil {
		return w.vw.Close()
	}
	return nil
}
