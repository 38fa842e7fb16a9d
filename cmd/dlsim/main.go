// Command dlsim replays a scripted scroll through a recording source and
// writes the last visible frame as PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/gg"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/paint"
	_ "github.com/gogpu/displaylist/paint/raster"
	"github.com/gogpu/displaylist/recording"
	"github.com/gogpu/displaylist/region"
)

type options struct {
	scenario string
	output   string
	trace    string
	backend  string
	workers  int
	direct   bool
	verbose  bool
}

func main() {
	var opts options
	flag.StringVar(&opts.scenario, "scenario", "", "scenario TOML file (required)")
	flag.StringVar(&opts.output, "output", "frame.png", "output file")
	flag.StringVar(&opts.trace, "trace", "", "write JSON trace snapshots to this file")
	flag.StringVar(&opts.backend, "backend", "raster", "canvas backend for -direct")
	flag.IntVar(&opts.workers, "workers", 0, "raster workers (0 = GOMAXPROCS)")
	flag.BoolVar(&opts.direct, "direct", false, "render the last frame in one pass instead of tiles")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	flag.Parse()

	if opts.scenario == "" {
		flag.Usage()
		os.Exit(2)
	}
	if opts.verbose {
		displaylist.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(opts, log.Default()); err != nil {
		log.Fatalf("dlsim: %v", err)
	}
}

func run(opts options, logger *log.Logger) error {
	f, err := os.Open(opts.scenario)
	if err != nil {
		return err
	}
	sc, err := loadScenario(f)
	f.Close()
	if err != nil {
		return err
	}

	srcOpts := []recording.Option{recording.WithConfig(sc.Recording)}
	var sink *displaylist.JSONSink
	if opts.trace != "" {
		tf, err := os.Create(opts.trace)
		if err != nil {
			return err
		}
		defer tf.Close()
		sink = displaylist.NewJSONSink(tf)
		srcOpts = append(srcOpts, recording.WithTraceSink(sink))
	}

	src := recording.NewSource(image.Pt(256, 256), srcOpts...)
	src.SetBackgroundColor(gg.Hex(sc.Background))
	page := &stripedPage{width: sc.Width, rowHeight: sc.RowHeight}
	size := image.Pt(sc.Width, sc.Height)

	comp := newCompositor(sc.Scale, opts.workers, defaultTileBudget)
	var last *recording.RasterSource
	var visible image.Rectangle
	var img image.Image
	for i, frame := range sc.Frames {
		inv := &region.Region{}
		for _, r := range frame.Invalidate {
			inv.Union(image.Rect(r[0], r[1], r[2], r[3]))
		}
		visible = sc.Visible(frame)
		updated, stats := src.UpdateAndExpandInvalidation(page, inv, size, visible, i, recording.RecordNormally)

		if last != nil {
			last.Release()
		}
		last = src.CreateRasterSource()
		dropped := comp.invalidate(inv)
		var fs frameStats
		img, fs = comp.frame(last, visible)

		logger.Printf("frame %d: visible=%v updated=%v recorded_px=%d painter_calls=%d tiles=%d reused=%d dropped=%d solid=%v",
			i, visible, updated, stats.RecordedPixelCount, stats.PainterCalls, fs.rastered, fs.reused, dropped, src.IsSolidColor())
	}
	defer last.Release()

	if opts.direct {
		img, err = renderDirect(last, visible, sc.Scale, opts.backend)
		if err != nil {
			return err
		}
	}

	out, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if sink != nil {
		if err := sink.Err(); err != nil {
			return fmt.Errorf("trace: %w", err)
		}
	}
	logger.Printf("frame saved to %s (%dx%d)", opts.output, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

// renderDirect plays the visible area onto one canvas from the registry.
func renderDirect(rs *recording.RasterSource, visible image.Rectangle, scale float64, backend string) (image.Image, error) {
	target := scaledRect(visible, scale)
	c, err := paint.NewCanvas(backend, target.Dx(), target.Dy())
	if err != nil {
		return nil, err
	}
	ic, ok := c.(paint.ImageCanvas)
	if !ok {
		return nil, fmt.Errorf("backend %q does not produce pixels", backend)
	}
	rs.PlaybackToCanvas(ic, target, scale)
	return ic.Image(), nil
}

// scaledRect matches the tile grid's rounding of scaled layer rectangles.
func scaledRect(r image.Rectangle, s float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(r.Min.X)*s)), int(math.Floor(float64(r.Min.Y)*s)),
		int(math.Ceil(float64(r.Max.X)*s)), int(math.Ceil(float64(r.Max.Y)*s)),
	)
}
