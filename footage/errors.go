package footage

import "errors"

// Public API errors. All are wrapped with context by the operations that
// return them; classify with errors.Is.
var (
	// ErrNotFound means no footage exists behind the requested target:
	// a missing video file, a glob with zero matches, or an empty path list.
	ErrNotFound = errors.New("footage: no footage found")

	// ErrDecode means a frame failed to decode: a capture read failure,
	// an unreadable image file, or an empty decoded buffer.
	ErrDecode = errors.New("footage: frame decode failed")

	// ErrIndex means a requested frame index or range bound lies outside
	// the source. Single reads accept [0, Len()), range bounds [0, Len()].
	ErrIndex = errors.New("footage: index out of range")

	// ErrEmptyRange means an eager import was asked to materialize a range
	// that yields zero frames, so there is nothing to size the buffer from.
	ErrEmptyRange = errors.New("footage: empty range")

	// ErrClosed means the operation was attempted on a closed source or
	// writer.
	ErrClosed = errors.New("footage: closed")
)
