package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/e7canasta/visionkit/footage"
)

// Version information
const version = "v0.1.0"

// videoExts are output extensions that select the video encoder; anything
// without an extension is treated as an image-sequence directory.
var videoExts = map[string]bool{
	".avi": true,
	".mp4": true,
	".mkv": true,
	".mov": true,
}

func main() {
	// Parse command-line flags
	input := flag.String("input", "", "Footage to open: video path, image glob, or device:N (required)")
	info := flag.Bool("info", false, "Print footage metadata and exit")
	export := flag.String("export", "", "Export target: video file (.avi/.mp4/.mkv/.mov) or image directory")
	start := flag.Int("start", 0, "First frame of the export range")
	stop := flag.Int("stop", 0, "End of the export range, exclusive (0 = end of footage; frame cap for live captures)")
	step := flag.Int("step", 1, "Keep every Nth frame of the range")
	eager := flag.Bool("eager", false, "Materialize the range in memory before writing")
	gray := flag.Bool("gray", false, "Convert frames to grayscale")
	fps := flag.Float64("fps", 0, "Output frame rate (defaults to the input's rate)")
	codec := flag.String("codec", "", "Output fourcc tag (defaults to the input's codec, else MJPG)")
	format := flag.String("format", "png", "Image format for directory exports: png, jpg")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	// Show version
	if *showVersion {
		fmt.Printf("footage-probe %s\n", version)
		os.Exit(0)
	}

	// Validate required flags
	if *input == "" {
		fmt.Fprintf(os.Stderr, "Error: --input flag is required\n\n")
		fmt.Fprintf(os.Stderr, "Usage example:\n")
		fmt.Fprintf(os.Stderr, "  footage-probe --input clip.avi --info\n")
		fmt.Fprintf(os.Stderr, "  footage-probe --input clip.avi --export out.mp4 --start 100 --stop 400 --step 2\n")
		fmt.Fprintf(os.Stderr, "  footage-probe --input 'frames/*.png' --export out.avi --fps 24\n")
		fmt.Fprintf(os.Stderr, "  footage-probe --input device:0 --export grabs --stop 50\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *format != "png" && *format != "jpg" {
		log.Fatalf("Invalid image format: %s (must be png or jpg)", *format)
	}

	// Set up logging
	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Print banner
	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║              Footage Probe - VisionKit Tool              ║\n")
	fmt.Printf("║                      Version %s                        ║\n", version)
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Input:         %s\n", *input)
	if *export != "" {
		fmt.Printf("  Export:        %s\n", *export)
		fmt.Printf("  Range:         [%d, %s) step %d\n", *start, stopLabel(*stop), *step)
		fmt.Printf("  Grayscale:     %v\n", *gray)
		fmt.Printf("  Eager:         %v\n", *eager)
	}
	fmt.Printf("\n")

	// Open the footage
	src, err := openInput(*input)
	if err != nil {
		log.Fatalf("Failed to open footage: %v", err)
	}
	defer src.Close()

	printInfo(src)
	if *info || *export == "" {
		return
	}

	// Export
	opts := exportOptions{
		start: *start,
		stop:  *stop,
		step:  *step,
		eager: *eager,
		gray:  *gray,
		fps:   *fps,
		codec: *codec,
	}
	started := time.Now()
	stats, err := runExport(src, *export, *format, opts)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	elapsed := time.Since(started)

	// Final summary
	effectiveFPS := 0.0
	if elapsed.Seconds() > 0 {
		effectiveFPS = float64(stats.FramesWritten) / elapsed.Seconds()
	}
	fmt.Printf("\n")
	fmt.Printf("╭─────────────────────────────────────────────────────────╮\n")
	fmt.Printf("│ Export Complete\n")
	fmt.Printf("├─────────────────────────────────────────────────────────┤\n")
	fmt.Printf("│ Frames Written:     %6d frames\n", stats.FramesWritten)
	fmt.Printf("│ Auto Resized:       %6d frames\n", stats.Resized)
	fmt.Printf("│ Auto Converted:     %6d frames\n", stats.Converted)
	fmt.Printf("│ Elapsed:            %6.1f seconds\n", elapsed.Seconds())
	fmt.Printf("│ Effective Rate:     %6.1f fps\n", effectiveFPS)
	fmt.Printf("╰─────────────────────────────────────────────────────────╯\n")
	fmt.Printf("\n")

	slog.Info("export completed", "target", *export, "frames", stats.FramesWritten)
}

func stopLabel(stop int) string {
	if stop == 0 {
		return "end"
	}
	return strconv.Itoa(stop)
}

// openInput resolves the three input forms: device:N, glob, video path.
func openInput(input string) (footage.Source, error) {
	if rest, ok := strings.CutPrefix(input, "device:"); ok {
		index, err := strconv.Atoi(rest)
		if err != nil {
			return nil, fmt.Errorf("bad device index %q", rest)
		}
		return footage.OpenDevice(index)
	}
	return footage.Open(input)
}

func printInfo(src footage.Source) {
	meta := src.Info()
	fmt.Printf("╭─────────────────────────────────────────────────────────╮\n")
	fmt.Printf("│ Footage Metadata\n")
	fmt.Printf("├─────────────────────────────────────────────────────────┤\n")
	if meta.Frames > 0 {
		fmt.Printf("│ Frames:             %6d\n", meta.Frames)
	} else {
		fmt.Printf("│ Frames:             %6s\n", "live")
	}
	fmt.Printf("│ Resolution:         %6d x %d\n", meta.Width, meta.Height)
	if meta.FPS > 0 {
		fmt.Printf("│ Frame Rate:         %6.2f fps\n", meta.FPS)
	} else {
		fmt.Printf("│ Frame Rate:         %6s\n", "n/a")
	}
	if meta.Codec != "" {
		fmt.Printf("│ Codec:              %6s\n", meta.Codec)
	} else {
		fmt.Printf("│ Codec:              %6s\n", "n/a")
	}
	fmt.Printf("╰─────────────────────────────────────────────────────────╯\n")
}

type exportOptions struct {
	start, stop, step int
	eager             bool
	gray              bool
	fps               float64
	codec             string
}

// runExport re-encodes the requested range into a video file or an image
// directory, with a progress bar on stderr.
func runExport(src footage.Source, target, format string, opts exportOptions) (footage.WriterStats, error) {
	var zero footage.WriterStats

	cur, total, err := openCursor(src, opts)
	if err != nil {
		return zero, err
	}
	defer cur.Close()

	w, err := openWriter(src, target, format, total, opts)
	if err != nil {
		return zero, err
	}
	defer w.Close()

	bar := progressbar.Default(int64(total), "exporting")
	for cur.Next() {
		if err := w.Write(cur.Frame()); err != nil {
			return w.Stats(), err
		}
		bar.Add(1)
		if w.Stats().FramesWritten >= total {
			break
		}
	}
	bar.Finish()
	if err := cur.Err(); err != nil {
		return w.Stats(), err
	}
	if err := w.Close(); err != nil {
		return w.Stats(), err
	}
	return w.Stats(), nil
}

// openCursor picks the consumption path: ranged reads over seekable
// footage, a capped forward stream over live captures.
func openCursor(src footage.Source, opts exportOptions) (footage.Cursor, int, error) {
	if src.Len() > 0 {
		stop := opts.stop
		if stop == 0 {
			stop = src.Len()
		}
		seq, err := src.ReadRange(opts.start, stop, footage.RangeOptions{
			Step:      opts.step,
			Eager:     opts.eager,
			Grayscale: opts.gray,
		})
		if err != nil {
			return nil, 0, err
		}
		return seq.Frames(), seq.Len(), nil
	}

	// Live capture: no frame count, so --stop caps the recording.
	if opts.stop <= 0 {
		return nil, 0, errors.New("live captures need --stop to cap the number of recorded frames")
	}
	if opts.start != 0 || opts.step != 1 || opts.eager {
		slog.Warn("live captures ignore --start, --step and --eager")
	}
	return src.Stream(footage.ReadOptions{Grayscale: opts.gray}), opts.stop, nil
}

func openWriter(src footage.Source, target, format string, total int, opts exportOptions) (*footage.Writer, error) {
	ext := strings.ToLower(filepath.Ext(target))
	if videoExts[ext] {
		return footage.NewVideoWriter(target, footage.WriterOptions{
			FPS:       opts.fps,
			Codec:     opts.codec,
			Grayscale: opts.gray,
			Source:    src,
		})
	}
	if ext != "" {
		return nil, fmt.Errorf("image exports write a numbered sequence into a directory, not %q", target)
	}

	if err := os.MkdirAll(target, 0755); err != nil {
		return nil, fmt.Errorf("cannot create export directory: %w", err)
	}
	paths := make([]string, total)
	for i := range paths {
		paths[i] = filepath.Join(target, fmt.Sprintf("frame_%06d.%s", i, format))
	}
	return footage.NewImageWriter(paths, footage.WriterOptions{})
}
