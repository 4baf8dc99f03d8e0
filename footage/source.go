package footage

import (
	"fmt"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"github.com/e7canasta/visionkit/footage/internal/natsort"
)

// Source is the contract for frame acquisition. Two implementations exist:
// stream-backed (video files, capture devices, adopted capture handles) and
// image-backed (ordered lists of image files). Both are built by the Open*
// constructors; there are no half-open states.
//
// Implementations must guarantee:
//   - Metadata is read once at open time and never re-queried
//   - Every read is bounds-checked against [0, Len())
//   - Each decoded frame is a fresh buffer; reads never alias each other
//   - Close() is idempotent and releases only handles the source opened
//     itself (adopted handles stay open)
//   - Reads after Close() fail with ErrClosed
//
// A Source is owned by exactly one caller. Instances are not safe for
// concurrent use.
type Source interface {
	// Info returns the metadata snapshot cached when the source was opened.
	Info() Info

	// Len returns the total frame count. Live captures may report zero.
	Len() int

	// ReadFrame decodes the frame at an absolute index and returns it as a
	// fresh Mat owned by the caller (the caller closes it).
	//
	// Returns an error if:
	//   - The index is outside [0, Len()) (ErrIndex)
	//   - The frame cannot be decoded (ErrDecode)
	//   - The source has been closed (ErrClosed)
	ReadFrame(index int, opts ReadOptions) (gocv.Mat, error)

	// ReadRange builds a Sequence over the half-open range [start, stop)
	// with the stride in opts. The sequence length is
	// floor((stop-start)/step), zero when stop <= start.
	//
	// Stream-backed sources decode stepped ranges sequentially, discarding
	// the frames between kept ones: seeking per frame is both slow and
	// inaccurate on inter-frame compressed containers. Image-backed
	// sources address their paths directly.
	//
	// With opts.Eager the range is fully materialized before ReadRange
	// returns; a range that yields zero frames fails with ErrEmptyRange.
	//
	// Returns an error if:
	//   - start or stop is outside [0, Len()] (ErrIndex)
	//   - opts.Step is negative
	//   - Eager materialization fails (ErrEmptyRange, ErrDecode)
	//   - The source has been closed (ErrClosed)
	ReadRange(start, stop int, opts RangeOptions) (*Sequence, error)

	// ReadAll is ReadRange over the whole source, [0, Len()).
	ReadAll(opts RangeOptions) (*Sequence, error)

	// Stream returns an unbounded forward cursor starting at the current
	// decode position. It is the way to consume live captures, which carry
	// no usable frame count, and to make a single sequential pass without
	// range bookkeeping. The cursor ends at the first frame that fails to
	// decode; for live captures each Next blocks until a frame arrives.
	Stream(opts ReadOptions) Cursor

	// Close releases the handles the source owns. Adopted capture handles
	// are left open for their owner to release. Safe to call multiple
	// times.
	Close() error
}

// Open is the convenience entry point for string targets: a target
// containing glob metacharacters (*?[) opens as an image glob, anything
// else as a video file.
func Open(target string) (Source, error) {
	if strings.ContainsAny(target, "*?[") {
		return OpenGlob(target)
	}
	return OpenVideo(target)
}

// OpenGlob expands the pattern, orders the matches naturally
// (case-insensitive, numeric-aware: img2 before img10) and opens them as
// image-backed footage.
//
// Returns ErrNotFound when the pattern matches nothing.
func OpenGlob(pattern string) (Source, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("footage: bad glob pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: glob %q matched nothing", ErrNotFound, pattern)
	}
	natsort.Sort(matches)
	return OpenImages(matches)
}

// toGray converts m to single-channel in place. Frames that are already
// single-channel are left untouched.
func toGray(m *gocv.Mat) {
	if m.Channels() == 1 {
		return
	}
	g := gocv.NewMat()
	gocv.CvtColor(*m, &g, gocv.ColorBGRToGray)
	m.Close()
	*m = g
}

// checkRange validates range bounds and stride against a source length and
// returns the effective step.
func checkRange(start, stop, step, length int) (int, error) {
	if start < 0 || start > length {
		return 0, fmt.Errorf("%w: start %d not in [0, %d]", ErrIndex, start, length)
	}
	if stop < 0 || stop > length {
		return 0, fmt.Errorf("%w: stop %d not in [0, %d]", ErrIndex, stop, length)
	}
	if step < 0 {
		return 0, fmt.Errorf("footage: step must not be negative, got %d", step)
	}
	if step == 0 {
		step = 1
	}
	return step, nil
}
