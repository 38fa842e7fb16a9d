package recording

import (
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/internal/parallel"
	"github.com/gogpu/displaylist/paint"
	"github.com/gogpu/displaylist/paint/raster"
	"github.com/gogpu/displaylist/region"
)

// DebugClearColor is used instead of the background when
// Config.ClearCanvasWithDebugColor is set.
var DebugClearColor = gg.Hex("#ff00ff")

// RasterSource is an immutable snapshot of a Source for rasterization.
// It holds its own reference to the cached picture, so the Source may
// record again while tiles are still being rendered. Any number of
// goroutines may use a RasterSource at once. Call Release when done.
type RasterSource struct {
	list    *displaylist.List
	picture *paint.Picture

	size             image.Point
	recordedViewport image.Rectangle

	isSolidColor  bool
	solidColor    gg.RGBA
	background    gg.RGBA
	requiresClear bool
	debugClear    bool
}

// Tile is one rasterized tile.
type Tile struct {
	// Rect is the tile area in scaled content pixels.
	Rect  image.Rectangle
	Image image.Image
}

// CreateRasterSource snapshots the current recording.
func (s *Source) CreateRasterSource() *RasterSource {
	rs := &RasterSource{
		list:             s.displayList,
		size:             s.size,
		recordedViewport: s.recordedViewport,
		isSolidColor:     s.isSolidColor,
		solidColor:       s.solidColor,
		background:       s.backgroundColor,
		requiresClear:    s.requiresClear,
		debugClear:       s.cfg.ClearCanvasWithDebugColor,
	}
	if s.displayList != nil {
		if pic := s.displayList.Picture(); pic != nil {
			rs.picture = pic.Ref()
		}
	}
	return rs
}

// Release drops the snapshot's picture reference.
func (r *RasterSource) Release() {
	if r.picture != nil {
		r.picture.Release()
		r.picture = nil
	}
}

// Size returns the layer size at snapshot time.
func (r *RasterSource) Size() image.Point {
	return r.size
}

// RecordedViewport returns the recorded viewport at snapshot time.
func (r *RasterSource) RecordedViewport() image.Rectangle {
	return r.recordedViewport
}

// SolidColor returns the solid color and whether the content is solid.
func (r *RasterSource) SolidColor() (gg.RGBA, bool) {
	return r.solidColor, r.isSolidColor
}

// PlaybackToCanvas renders the content area canvasRect, in content pixels
// at contentsScale, onto c whose origin corresponds to canvasRect.Min.
func (r *RasterSource) PlaybackToCanvas(c paint.Canvas, canvasRect image.Rectangle, contentsScale float64) {
	switch {
	case r.isSolidColor:
		c.Clear(r.solidColor)
		return
	case r.debugClear:
		c.Clear(DebugClearColor)
	case r.requiresClear:
		c.Clear(gg.Transparent)
	default:
		c.Clear(r.background)
	}
	if r.list == nil {
		return
	}

	c.Save()
	c.Translate(-float64(canvasRect.Min.X), -float64(canvasRect.Min.Y))
	r.list.Raster(c, nil, canvasRect, contentsScale)
	c.Restore()
}

// TileRects returns the 64x64 tiles touched by dirty, in content pixels
// at contentsScale and row-major order. dirty is in layer pixels; nil
// means the whole layer.
func (r *RasterSource) TileRects(dirty *region.Region, contentsScale float64) []image.Rectangle {
	bounds := scaleRect(image.Rectangle{Max: r.size}, contentsScale)
	tracker := parallel.NewDirtyTiles(bounds.Dx(), bounds.Dy())
	if tracker == nil {
		return nil
	}
	if dirty == nil {
		tracker.MarkAll()
	} else {
		for rect := range dirty.All() {
			tracker.MarkRect(scaleRect(rect, contentsScale))
		}
	}
	return tracker.TakeRects()
}

// RasterRects renders each content rectangle onto its own raster canvas,
// using workers goroutines (GOMAXPROCS when workers <= 0).
func (r *RasterSource) RasterRects(rects []image.Rectangle, contentsScale float64, workers int) []Tile {
	if len(rects) == 0 {
		return nil
	}
	tiles := make([]Tile, len(rects))
	jobs := make([]func(), len(rects))
	for i, rect := range rects {
		jobs[i] = func() {
			c := raster.New(rect.Dx(), rect.Dy())
			r.PlaybackToCanvas(c, rect, contentsScale)
			tiles[i] = Tile{Rect: rect, Image: c.Image()}
		}
	}

	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()
	pool.ExecuteAll(jobs)
	return tiles
}

// RasterTiles renders every tile touched by dirty. See TileRects.
func (r *RasterSource) RasterTiles(dirty *region.Region, contentsScale float64, workers int) []Tile {
	return r.RasterRects(r.TileRects(dirty, contentsScale), contentsScale, workers)
}

// scaleRect returns the smallest integer rectangle covering r scaled by s.
func scaleRect(r image.Rectangle, s float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(r.Min.X)*s)),
		int(math.Floor(float64(r.Min.Y)*s)),
		int(math.Ceil(float64(r.Max.X)*s)),
		int(math.Ceil(float64(r.Max.Y)*s)),
	)
}
