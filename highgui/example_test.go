package highgui_test

import (
	"log"

	"gocv.io/x/gocv"

	"github.com/e7canasta/visionkit/footage"
	"github.com/e7canasta/visionkit/highgui"
)

// Example functions for godoc (appear in pkg.go.dev)

// ExampleGUI_Run demonstrates a threshold-tuning window over one frame.
//
// Note: This example requires a display and real footage to execute.
func ExampleGUI_Run() {
	src, err := footage.OpenVideo("clip.avi")
	if err != nil {
		return
	}
	defer src.Close()

	frame, err := src.ReadFrame(0, footage.ReadOptions{Grayscale: true})
	if err != nil {
		return
	}

	g := highgui.NewFrameViewer(frame, "threshold tuning")
	defer g.Close()
	frame.Close()

	if err := g.Trackbar("Threshold", "thresh", 0, 255, nil); err != nil {
		log.Fatal(err)
	}
	g.Process(func(g *highgui.GUI) (gocv.Mat, error) {
		out := gocv.NewMat()
		gocv.Threshold(g.Frame(), &out, float32(g.Value("thresh")), 255, gocv.ThresholdBinary)
		return out, nil
	})

	if err := g.Run(); err != nil {
		log.Fatal(err)
	}
}

// ExampleNewVideoViewer demonstrates scrubbing through seekable footage.
//
// Note: This example requires a display and a real video file to execute.
func ExampleNewVideoViewer() {
	src, err := footage.OpenVideo("clip.avi")
	if err != nil {
		return
	}
	defer src.Close()

	g, err := highgui.NewVideoViewer(src, "scrub", highgui.ViewerConfig{})
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		log.Fatal(err)
	}
}

// ExampleRunStream demonstrates watching a live capture device.
//
// Note: This example requires a display and a capture device to execute.
func ExampleRunStream() {
	src, err := footage.OpenDevice(0)
	if err != nil {
		return
	}
	defer src.Close()

	cur := src.Stream(footage.ReadOptions{})
	defer cur.Close()

	if err := highgui.RunStream(cur, "live", nil); err != nil {
		log.Fatal(err)
	}
}
