package highgui

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/e7canasta/visionkit/footage"
)

// TrackbarFrames is the id of the frame-selection control the canned
// viewers register; use it with Value and SetValue.
const TrackbarFrames = "frames"

// ViewerConfig bounds the index range a viewer scrubs over.
type ViewerConfig struct {
	// Lower is the first selectable frame index.
	Lower int
	// Upper is one past the last selectable index. Zero means the full
	// length of the footage.
	Upper int
}

func (c ViewerConfig) resolve(length int) (int, int, error) {
	lower, upper := c.Lower, c.Upper
	if upper == 0 {
		upper = length
	}
	if lower < 0 || upper > length {
		return 0, 0, fmt.Errorf("highgui: viewer range [%d, %d) is outside [0, %d)", lower, upper, length)
	}
	if lower >= upper {
		return 0, 0, fmt.Errorf("highgui: viewer range [%d, %d) is empty", lower, upper)
	}
	return lower, upper, nil
}

// identityProcess displays the frame slot unchanged.
func identityProcess(g *GUI) (gocv.Mat, error) {
	f := g.Frame()
	if f.Empty() {
		return gocv.Mat{}, fmt.Errorf("highgui: no frame loaded")
	}
	return f.Clone(), nil
}

// NewFrameViewer builds a tuning window over one still frame, copied into
// the frame slot. The caller registers the trackbars and the processing
// function that make it useful.
func NewFrameViewer(frame gocv.Mat, title string) *GUI {
	g := New(title)
	if !frame.Empty() {
		g.SetFrame(frame.Clone())
	}
	return g
}

// NewFramesViewer builds a scrubbing window over frames already in memory,
// with a frame-selection trackbar (id TrackbarFrames) whose callback loads
// the chosen frame into the frame slot. The default processing function
// displays the slot unchanged; replace it with Process to render something
// else. The slice stays owned by the caller and must outlive the viewer.
func NewFramesViewer(frames []gocv.Mat, title string, cfg ViewerConfig) (*GUI, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("highgui: a frames viewer needs at least one frame")
	}
	lower, upper, err := cfg.resolve(len(frames))
	if err != nil {
		return nil, err
	}

	g := New(title)
	g.Process(identityProcess)
	err = g.Trackbar("Frames", TrackbarFrames, lower, upper-1, func(g *GUI, pos int) error {
		if pos < lower || pos >= upper {
			return nil
		}
		g.SetFrame(frames[pos].Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// NewVideoViewer builds a scrubbing window over seekable footage, reading
// frames on demand instead of holding them in memory. Positions outside
// the configured range are ignored. The source stays owned by the caller
// and must outlive the viewer.
func NewVideoViewer(src footage.Source, title string, cfg ViewerConfig) (*GUI, error) {
	if src == nil {
		return nil, fmt.Errorf("highgui: a video viewer needs a source")
	}
	if src.Len() <= 0 {
		return nil, fmt.Errorf("highgui: footage reports no length; stream it with RunStream instead")
	}
	lower, upper, err := cfg.resolve(src.Len())
	if err != nil {
		return nil, err
	}

	g := New(title)
	g.Process(identityProcess)
	err = g.Trackbar("Frames", TrackbarFrames, lower, upper-1, func(g *GUI, pos int) error {
		if pos < lower || pos >= upper {
			return nil
		}
		m, err := src.ReadFrame(pos, footage.ReadOptions{})
		if err != nil {
			return err
		}
		g.SetFrame(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}
