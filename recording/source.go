package recording

import (
	"image"

	"github.com/gogpu/gg"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/paint/analysis"
	"github.com/gogpu/displaylist/region"
)

// UpdateStats describes one call to UpdateAndExpandInvalidation.
type UpdateStats struct {
	// RecordedPixelCount is the invalidated area inside the recorded
	// viewport.
	RecordedPixelCount int
	SizeChanged        bool
	ViewportChanged    bool
	// PainterCalls is the number of times the painter ran.
	PainterCalls int
}

// Source records the contents of one layer.
//
// A Source starts empty. Each UpdateAndExpandInvalidation may replace its
// display list; the previous list is released, never mutated. A Source is
// not safe for concurrent use; hand a RasterSource to other goroutines.
type Source struct {
	cfg Config

	size             image.Point
	recordedViewport image.Rectangle
	displayList      *displaylist.List

	isSolidColor     bool
	solidColor       gg.RGBA
	isSuitableForGPU bool

	gridCellSize    image.Point
	backgroundColor gg.RGBA
	requiresClear   bool
}

// NewSource creates an empty source. gridCellSize is kept for consumers
// that index the recording by cells.
func NewSource(gridCellSize image.Point, opts ...Option) *Source {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Source{
		cfg:              cfg,
		gridCellSize:     gridCellSize,
		isSuitableForGPU: true,
		solidColor:       gg.Transparent,
		backgroundColor:  gg.Transparent,
	}
}

// Config returns the policy of the source.
func (s *Source) Config() Config {
	return s.cfg
}

// UpdateAndExpandInvalidation brings the recording up to date for a new
// layer size and visible rectangle.
//
// inv holds the area known to have changed. It is grown by the area that
// enters or leaves the recorded viewport. The painter runs only when the
// size or viewport changed or inv touches the recorded viewport; updated
// reports whether it ran.
func (s *Source) UpdateAndExpandInvalidation(
	painter Painter,
	inv *region.Region,
	newSize image.Point,
	visible image.Rectangle,
	frameNumber int,
	mode RecordingMode,
) (updated bool, stats UpdateStats) {
	log := displaylist.Logger()
	if inv == nil {
		inv = &region.Region{}
	}

	if s.size != newSize {
		s.size = newSize
		stats.SizeChanged = true
		updated = true
	}

	layer := image.Rectangle{Max: s.size}
	candidate := visible.Inset(-s.cfg.PixelRecordDistance).Intersect(layer)

	if updated || ExposesEnoughNewArea(s.recordedViewport, candidate, s.size, s.cfg.HysteresisSkirt) {
		old := s.recordedViewport
		s.recordedViewport = candidate
		inv.UnionRegion(region.SymmetricDifference(old, candidate))
		stats.ViewportChanged = old != candidate
		updated = true
	}

	recorded := inv.Clone()
	recorded.Intersect(s.recordedViewport)
	stats.RecordedPixelCount = recorded.Area()

	if !updated && !inv.Intersects(s.recordedViewport) {
		log.Debug("recording: skipped", "frame", frameNumber, "viewport", s.recordedViewport.String())
		return false, stats
	}

	control := mode.PaintingControl()
	repeat := max(1, s.cfg.SlowDownRasterScaleFactor)
	if repeat > 1 && control == PaintingNormal {
		control = CachingDisabled
	}

	var list *displaylist.List
	for i := range repeat {
		next := painter.PaintContentsToDisplayList(s.recordedViewport, control, s.cfg.List)
		if list != nil && list != next && list != s.displayList {
			list.Release()
		}
		list = next
		stats.PainterCalls = i + 1
	}
	if list == nil {
		list = displaylist.NewFinalized(s.recordedViewport, s.cfg.List)
	} else if !list.Finalized() {
		list.Finalize()
	}

	// A painter may hand back the list it was given last time.
	if s.displayList != nil && s.displayList != list {
		s.displayList.Release()
	}
	s.displayList = list
	s.isSuitableForGPU = list.IsSuitableForGPURasterization()
	s.determineIfSolidColor()
	list.EmitTraceSnapshot()

	log.Debug("recording: recorded",
		"frame", frameNumber,
		"viewport", s.recordedViewport.String(),
		"control", control.String(),
		"ops", list.ApproximateOpCount(),
		"solid", s.isSolidColor,
		"pixels", stats.RecordedPixelCount,
	)
	return true, stats
}

// ExposesEnoughNewArea reports whether moving the recorded viewport from
// current to candidate is worth a new recording. A candidate within skirt
// pixels of current is not, unless it reaches a layer edge current does
// not touch.
func ExposesEnoughNewArea(current, candidate image.Rectangle, size image.Point, skirt int) bool {
	if current.Empty() {
		return !candidate.Empty()
	}
	if !candidate.In(current.Inset(-skirt)) {
		return true
	}
	if candidate.Empty() {
		return false
	}

	touches := func(r image.Rectangle) [4]bool {
		return [4]bool{r.Min.X == 0, r.Min.Y == 0, r.Max.X == size.X, r.Max.Y == size.Y}
	}
	cur, cand := touches(current), touches(candidate)
	for i := range cand {
		if cand[i] && !cur[i] {
			return true
		}
	}
	return false
}

// determineIfSolidColor replays small lists into an analysis canvas
// covering the whole layer.
func (s *Source) determineIfSolidColor() {
	s.isSolidColor = false
	s.solidColor = gg.Transparent
	if s.displayList.ApproximateOpCount() > s.cfg.SolidColorMaxOps {
		return
	}
	c := analysis.New(s.size.X, s.size.Y)
	s.displayList.Raster(c, c.Abort, image.Rectangle{}, 1)
	s.solidColor, s.isSolidColor = c.ColorIfSolid()
}

// SetEmptyBounds resets the layer to zero size and drops the recording.
func (s *Source) SetEmptyBounds() {
	s.size = image.Point{}
	s.Clear()
}

// Clear drops the recording and the recorded viewport.
func (s *Source) Clear() {
	s.recordedViewport = image.Rectangle{}
	if s.displayList != nil {
		s.displayList.Release()
		s.displayList = nil
	}
	s.isSolidColor = false
	s.solidColor = gg.Transparent
}

// Size returns the layer size.
func (s *Source) Size() image.Point {
	return s.size
}

// RecordedViewport returns the recorded area of the layer.
func (s *Source) RecordedViewport() image.Rectangle {
	return s.recordedViewport
}

// DisplayList returns the current list, or nil.
func (s *Source) DisplayList() *displaylist.List {
	return s.displayList
}

// IsSolidColor reports whether the last recording is a single color.
func (s *Source) IsSolidColor() bool {
	return s.isSolidColor
}

// SolidColor returns the color found by the last solid color analysis.
func (s *Source) SolidColor() gg.RGBA {
	return s.solidColor
}

// IsSuitableForGPURasterization mirrors the current list.
func (s *Source) IsSuitableForGPURasterization() bool {
	return s.isSuitableForGPU
}

// GridCellSize returns the cell size given to NewSource.
func (s *Source) GridCellSize() image.Point {
	return s.gridCellSize
}

// SetGridCellSize changes the cell size.
func (s *Source) SetGridCellSize(size image.Point) {
	s.gridCellSize = size
}

// SetSlowDownRasterScaleFactor makes every recording repeat n times.
func (s *Source) SetSlowDownRasterScaleFactor(n int) {
	s.cfg.SlowDownRasterScaleFactor = n
}

// SetBackgroundColor sets the color raster sources clear to.
func (s *Source) SetBackgroundColor(c gg.RGBA) {
	s.backgroundColor = c
}

// BackgroundColor returns the background color.
func (s *Source) BackgroundColor() gg.RGBA {
	return s.backgroundColor
}

// SetRequiresClear sets whether rasterization must clear to transparent
// before playback.
func (s *Source) SetRequiresClear(v bool) {
	s.requiresClear = v
}

// RequiresClear reports whether rasterization clears to transparent.
func (s *Source) RequiresClear() bool {
	return s.requiresClear
}
