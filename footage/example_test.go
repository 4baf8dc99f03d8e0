package footage_test

import (
	"fmt"
	"log"

	"github.com/e7canasta/visionkit/footage"
)

// Example functions for godoc (appear in pkg.go.dev)

// ExampleFourCCString demonstrates decoding a codec tag reported by a
// container.
func ExampleFourCCString() {
	fmt.Println(footage.FourCCString(1196444237))
	// Output: MJPG
}

// ExampleOpen demonstrates opening footage without caring whether it is a
// video file or an image directory.
//
// Note: This example requires real footage on disk to execute.
func ExampleOpen() {
	src, err := footage.Open("recordings/session-*.png")
	if err != nil {
		// Handle error (missing footage, undecodable first frame)
		return
	}
	defer src.Close()

	fmt.Printf("%d frames of %s\n", src.Len(), src.Info())
}

// ExampleSource_ReadRange demonstrates iterating a stepped slice of a clip
// without loading it into memory.
//
// Note: This example requires a real video file to execute.
func ExampleSource_ReadRange() {
	src, err := footage.OpenVideo("clip.avi")
	if err != nil {
		return
	}
	defer src.Close()

	// Every 5th frame of the first ten seconds, decoded on demand.
	seq, err := src.ReadRange(0, 250, footage.RangeOptions{Step: 5})
	if err != nil {
		log.Fatal(err)
	}

	cur := seq.Frames()
	defer cur.Close()
	for cur.Next() {
		frame := cur.Frame()
		_ = frame // valid until the next cur.Next(); Clone to keep
	}
	if err := cur.Err(); err != nil {
		log.Fatal(err)
	}
}

// ExampleNewVideoWriter demonstrates re-encoding a clip, inheriting the
// input's resolution, frame rate and codec.
//
// Note: This example requires a real video file to execute.
func ExampleNewVideoWriter() {
	src, err := footage.OpenVideo("in.avi")
	if err != nil {
		return
	}
	defer src.Close()

	w, err := footage.NewVideoWriter("out.avi", footage.WriterOptions{Source: src})
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	cur := src.Stream(footage.ReadOptions{})
	defer cur.Close()
	for cur.Next() {
		if err := w.Write(cur.Frame()); err != nil {
			log.Fatal(err)
		}
	}
	if err := cur.Err(); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("wrote %d frames\n", w.Stats().FramesWritten)
}
