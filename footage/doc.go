// Package footage provides uniform frame acquisition and encoding over the
// OpenCV binding (gocv).
//
// It puts video files, capture devices, pre-opened capture handles,
// explicit image lists and image globs behind one Source contract with
// bounds-checked reads, cached metadata, restartable lazy/eager frame
// sequences, and a writer that re-encodes footage or emits image files.
//
// # Quick Start
//
// Read every 5th frame of a clip, in grayscale, and re-encode it:
//
//	src, err := footage.OpenVideo("raw/embryo.avi")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	seq, err := src.ReadAll(footage.RangeOptions{Step: 5, Grayscale: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := footage.NewVideoWriter("out/sparse.avi", footage.WriterOptions{
//	    Source:    src,
//	    Grayscale: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer out.Close()
//
//	cur := seq.Frames()
//	defer cur.Close()
//	for cur.Next() {
//	    if err := out.Write(cur.Frame()); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	if err := cur.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Sources
//
// Five constructors, two shapes of footage:
//
//   - OpenVideo, OpenDevice, FromCapture: stream-backed, one capture
//     handle, metadata (frame count, resolution, fps, fourcc) cached at
//     open time
//   - OpenImages, OpenGlob: image-backed, one frame per file, resolution
//     probed from the first image, no timing or codec metadata
//
// Open dispatches between OpenVideo and OpenGlob on the presence of glob
// metacharacters, for tools that take one string.
//
// Glob matches are ordered naturally and case-insensitively: img2.png
// comes before img10.png.
//
// # Ranges and Sequences
//
// Ranges are half-open [start, stop) with an optional stride, so
// ReadRange(0, 100, RangeOptions{Step: 5}).Len() == 20. Sequences are
// lazy until materialized:
//
//	seq, _ := src.ReadRange(100, 200, footage.RangeOptions{})
//	a := seq.Frames() // decodes the range
//	b := seq.Frames() // decodes it again, same output
//
//	seq.Materialize() // one more decode pass, into memory
//	c := seq.Frames() // served from the buffer
//
// Stream-backed stepped ranges decode sequentially and discard the frames
// between kept ones. Seeking per frame would be quadratic on inter-frame
// compressed containers and lands on the wrong frame often enough to
// matter; sequential decode is deliberate and non-configurable.
//
// # Writers
//
// NewVideoWriter encodes a container, NewImageWriter emits one image file
// per frame. Video writers fix up nonconforming input instead of failing:
// wrong resolution is resized, wrong channel depth is converted, each
// recovery logged at Warn level and counted in Stats(). The caller reads
// WriterStats to find out how clean the input was.
//
// # Ownership
//
//   - ReadFrame returns a fresh Mat: the caller closes it
//   - Cursor.Frame() stays valid until the next Next() or Close(): clone
//     to keep
//   - Materialized buffers belong to the Sequence: Close() releases them
//   - Sources close only the handles they opened; FromCapture never
//     closes the adopted handle
//
// # Error Handling
//
// Failures classify with errors.Is against the package sentinels:
// ErrNotFound (nothing behind the target), ErrDecode (a frame would not
// decode), ErrIndex (out of bounds), ErrEmptyRange (eager import of zero
// frames) and ErrClosed. Writer shape mismatches are recoveries, not
// errors; they surface in logs and stats only.
//
// # Limitations
//
//   - Instances are single-owner and not safe for concurrent use
//   - Frame counts come from container metadata and are trusted; a
//     truncated file surfaces as ErrDecode mid-range
//   - Live captures report no frame count, so indexed and ranged reads
//     are unavailable on them; use Stream
package footage
