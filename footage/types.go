package footage

import "fmt"

// Info is the metadata snapshot of a source, read once when the source is
// opened and never re-queried.
type Info struct {
	// Frames is the total frame count. Live captures may report zero or a
	// negative count; indexed access is unavailable on such sources.
	Frames int

	// Width and Height of decoded frames in pixels.
	Width  int
	Height int

	// FPS is the frame rate reported by the container. Zero for
	// image-backed sources, which carry no timing.
	FPS float64

	// FourCC is the packed codec tag reported by the container. Zero for
	// image-backed sources.
	FourCC int64

	// Codec is the 4-character string form of FourCC. Empty for
	// image-backed sources.
	Codec string
}

// String renders the snapshot in one line, e.g.
// "1280x720, 1500 frames @ 25.00 fps (MJPG)".
func (i Info) String() string {
	if i.Codec == "" {
		return fmt.Sprintf("%dx%d, %d frames", i.Width, i.Height, i.Frames)
	}
	return fmt.Sprintf("%dx%d, %d frames @ %.2f fps (%s)", i.Width, i.Height, i.Frames, i.FPS, i.Codec)
}

// ReadOptions controls single-frame and streamed reads.
type ReadOptions struct {
	// Grayscale converts each frame to a single channel before it is
	// returned. Without it frames are 3-channel BGR.
	Grayscale bool
}

// RangeOptions controls ranged reads.
type RangeOptions struct {
	// Step is the stride between kept frames. Zero or one keeps every
	// frame in the range.
	Step int

	// Eager imports the whole range into memory when the range is read.
	// Iteration then serves frames from the buffer with no re-decode
	// cost, at the price of holding every frame at once.
	Eager bool

	// Grayscale converts each frame to a single channel.
	Grayscale bool
}

// WriterOptions configures a Writer. Zero fields are filled from Source
// when one is supplied.
type WriterOptions struct {
	// FPS is the encode frame rate. Required for video output when no
	// Source is supplied or the Source carries no timing.
	FPS float64

	// Width and Height of the encoded output. Default to the Source
	// resolution.
	Width  int
	Height int

	// Codec is the 4-character fourcc tag to encode with. Defaults to the
	// Source codec when it has one, otherwise "MJPG".
	Codec string

	// Grayscale encodes single-channel output instead of BGR.
	Grayscale bool

	// Source supplies defaults for unset fields. The writer never closes
	// it; it stays owned by the caller.
	Source Source
}

// WriterStats is a snapshot of what a Writer has done so far.
//
// Resized and Converted count the frames the writer had to adjust to fit
// the configured output; they are the caller-visible side of the
// non-fatal recovery applied in Write.
type WriterStats struct {
	// FramesWritten is the number of frames encoded so far.
	FramesWritten int

	// Resized counts frames whose resolution had to be adjusted to the
	// configured output size.
	Resized int

	// Converted counts frames whose channel depth had to be converted
	// (grayscale vs color).
	Converted int
}
