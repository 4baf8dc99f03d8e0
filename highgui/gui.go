// Package highgui builds trackbar-driven tuning windows on top of the
// vision library's window primitives.
//
// A GUI is a pure registration object: controls and the processing
// function are declared up front, and no window exists until Run. Run
// materializes the window and its trackbars, then polls control positions,
// re-invoking the processing function whenever one moves (last moved wins,
// synchronously). Any keypress, or closing the window, ends the loop.
//
// Window primitives must run on the main thread; call Run from the
// goroutine that owns the display, typically main. A GUI is owned by one
// caller and is not safe for concurrent use.
package highgui

import (
	"fmt"
	"log/slog"

	"gocv.io/x/gocv"

	"github.com/e7canasta/visionkit/footage"
)

// pollMs is how long each Run tick waits for a keypress before re-reading
// the trackbar positions.
const pollMs = 30

// ProcessFunc renders the GUI's current state into a displayable image.
// The GUI displays the returned Mat and then closes it, so return an owned
// Mat; to display the input frame unchanged, return Frame().Clone().
type ProcessFunc func(g *GUI) (gocv.Mat, error)

// TrackbarFunc reacts to a control reaching a new position, before the
// processing function re-renders. A nil TrackbarFunc registration just
// records the position.
type TrackbarFunc func(g *GUI, pos int) error

type trackbar struct {
	label string
	id    string
	min   int
	max   int
	pos   int
	fn    TrackbarFunc
	tb    *gocv.Trackbar // live only while Run holds a window
}

// GUI accumulates trackbar registrations and a processing function, then
// drives them against a real window in Run.
type GUI struct {
	title   string
	process ProcessFunc
	bars    map[string]*trackbar
	order   []string

	frame    gocv.Mat
	hasFrame bool

	window *gocv.Window
	closed bool
}

// New returns an empty builder. Nothing is shown until Run.
func New(title string) *GUI {
	return &GUI{
		title: title,
		bars:  make(map[string]*trackbar),
	}
}

// Process registers the processing function invoked after every control
// change. Registering again replaces the previous function.
func (g *GUI) Process(fn ProcessFunc) {
	g.process = fn
}

// Trackbar registers a control. label is the text shown next to the
// slider (defaults to id), id is the key used by Value and SetValue, and
// fn runs on each position change before the processing function. The
// initial position is min. Registration order is the order controls appear
// in the window.
//
// Returns an error if:
//   - id is empty
//   - id is already registered
//   - min exceeds max
func (g *GUI) Trackbar(label, id string, min, max int, fn TrackbarFunc) error {
	if id == "" {
		return fmt.Errorf("highgui: trackbar id must not be empty")
	}
	if _, dup := g.bars[id]; dup {
		return fmt.Errorf("highgui: trackbar %q is already registered", id)
	}
	if min > max {
		return fmt.Errorf("highgui: trackbar %q bounds are inverted: %d > %d", id, min, max)
	}
	if label == "" {
		label = id
	}

	g.bars[id] = &trackbar{label: label, id: id, min: min, max: max, pos: min, fn: fn}
	g.order = append(g.order, id)
	return nil
}

// Value returns the current position of a control, or 0 for an unknown id.
func (g *GUI) Value(id string) int {
	b, ok := g.bars[id]
	if !ok {
		return 0
	}
	return b.pos
}

// Values returns a snapshot of every control's current position.
func (g *GUI) Values() map[string]int {
	out := make(map[string]int, len(g.bars))
	for id, b := range g.bars {
		out[id] = b.pos
	}
	return out
}

// SetValue moves a control. Before Run it seeds the initial position;
// while the window is live it moves the slider and the change is
// dispatched on the next tick.
//
// Returns an error if the id is unknown or the position is out of bounds.
func (g *GUI) SetValue(id string, pos int) error {
	b, ok := g.bars[id]
	if !ok {
		return fmt.Errorf("highgui: unknown trackbar %q", id)
	}
	if pos < b.min || pos > b.max {
		return fmt.Errorf("highgui: position %d is outside trackbar %q bounds [%d, %d]", pos, id, b.min, b.max)
	}
	if b.tb != nil {
		b.tb.SetPos(pos)
		return nil
	}
	b.pos = pos
	return nil
}

// Frame returns the current input frame slot. The slot belongs to the GUI;
// Clone it to keep it.
func (g *GUI) Frame() gocv.Mat {
	return g.frame
}

// SetFrame adopts m as the input frame slot, closing the previous
// occupant.
func (g *GUI) SetFrame(m gocv.Mat) {
	if g.hasFrame {
		g.frame.Close()
	}
	g.frame = m
	g.hasFrame = true
}

// Run materializes the window and all registered controls, renders once,
// then polls for control changes until a key is pressed or the window is
// closed. Errors from trackbar callbacks and the processing function end
// the loop and propagate.
//
// Returns an error if no processing function or no trackbars are
// registered; both checks run before any window is created.
func (g *GUI) Run() error {
	if g.process == nil {
		return fmt.Errorf("highgui: no processing function registered")
	}
	if len(g.order) == 0 {
		return fmt.Errorf("highgui: no trackbars registered")
	}

	g.window = gocv.NewWindow(g.title)
	defer func() {
		for _, id := range g.order {
			g.bars[id].tb = nil
		}
		g.window.Close()
		g.window = nil
	}()

	for _, id := range g.order {
		b := g.bars[id]
		b.tb = g.window.CreateTrackbar(b.label, b.max)
		b.tb.SetMin(b.min)
		b.tb.SetPos(b.pos)
	}
	slog.Debug("highgui: window up", "title", g.title, "trackbars", len(g.order))

	// First render: dispatch the first-registered control at its current
	// position so the window never opens blank.
	first := g.bars[g.order[0]]
	if err := g.dispatch(first, first.pos); err != nil {
		return err
	}

	for {
		if key := g.window.WaitKey(pollMs); key >= 0 {
			return nil
		}
		if g.window.GetWindowProperty(gocv.WindowPropertyVisible) < 1 {
			return nil
		}
		for _, id := range g.order {
			b := g.bars[id]
			if pos := b.tb.GetPos(); pos != b.pos {
				if err := g.dispatch(b, pos); err != nil {
					return err
				}
			}
		}
	}
}

// dispatch records a control change, runs its callback, then re-renders.
func (g *GUI) dispatch(b *trackbar, pos int) error {
	b.pos = pos
	if b.fn != nil {
		if err := b.fn(g, pos); err != nil {
			return fmt.Errorf("highgui: trackbar %q callback: %w", b.id, err)
		}
	}
	return g.render()
}

func (g *GUI) render() error {
	out, err := g.process(g)
	if err != nil {
		return fmt.Errorf("highgui: processing: %w", err)
	}
	if out.Empty() {
		out.Close()
		return fmt.Errorf("highgui: processing returned an empty image")
	}
	if g.window != nil {
		g.window.IMShow(out)
	}
	return out.Close()
}

// Close releases the frame slot and, if Run is somehow still live, the
// window. Safe to call multiple times.
func (g *GUI) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	if g.hasFrame {
		g.frame.Close()
		g.hasFrame = false
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
	return nil
}

// RunStream shows every frame a cursor yields until the footage ends or a
// key is pressed. fn, when non-nil, processes each frame before display
// exactly like a GUI processing function; nil shows frames as-is. Cursor
// errors propagate.
func RunStream(cur footage.Cursor, title string, fn ProcessFunc) error {
	g := New(title)
	defer g.Close()
	g.process = fn

	g.window = gocv.NewWindow(title)
	defer func() {
		g.window.Close()
		g.window = nil
	}()

	for cur.Next() {
		g.SetFrame(cur.Frame().Clone())
		if fn != nil {
			if err := g.render(); err != nil {
				return err
			}
		} else {
			g.window.IMShow(g.frame)
		}
		if key := g.window.WaitKey(1); key >= 0 {
			return nil
		}
		if g.window.GetWindowProperty(gocv.WindowPropertyVisible) < 1 {
			return nil
		}
	}
	return cur.Err()
}
