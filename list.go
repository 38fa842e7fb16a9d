package displaylist

import (
	"image"
	"iter"
	"unsafe"

	"github.com/gogpu/displaylist/paint"
)

// List is the display item list of one layer region.
//
// A painter appends paint operations, then Finalize is called exactly once.
// After Finalize the list is immutable and Raster may be called any number
// of times, from any number of goroutines.
//
// Depending on Settings, a List keeps its items, a compiled Picture, or
// both. Items are folded into the aggregates (op count, GPU suitability,
// memory) once each, in append order, by ProcessAppendedItems.
type List struct {
	layerRect image.Rectangle
	settings  Settings

	items     Buffer
	processed int
	recorder  *paint.Recorder
	picture   *paint.Picture
	released  bool
	finalized bool

	opCount        int
	allGPUSuitable bool
	externalMemory int64
	pictureMemory  int64

	violations    int
	lastViolation *ContractError
}

// New creates an empty list for layerRect.
//
// With UseCachedPicture a recorder is started at once. It is translated so
// that layerRect.Min maps to the origin and clipped to layerRect.
func New(layerRect image.Rectangle, settings Settings) *List {
	l := &List{
		layerRect:      layerRect,
		settings:       settings,
		allGPUSuitable: true,
	}
	if settings.UseCachedPicture {
		size := layerRect.Size()
		l.recorder = paint.NewRecorder(paint.NewRect(0, 0, float64(size.X), float64(size.Y)))
		l.recorder.Translate(-float64(layerRect.Min.X), -float64(layerRect.Min.Y))
		l.recorder.ClipRect(paint.RectFromImage(layerRect))
	}
	return l
}

// NewFinalized returns an empty list that is already finalized.
func NewFinalized(layerRect image.Rectangle, settings Settings) *List {
	l := New(layerRect, settings)
	l.Finalize()
	return l
}

// Settings returns the settings the list was created with.
func (l *List) Settings() Settings {
	return l.settings
}

// LayerRect returns the layer region the list was recorded for.
func (l *List) LayerRect() image.Rectangle {
	return l.layerRect
}

// Len returns the number of buffered items.
func (l *List) Len() int {
	return l.items.Len()
}

// Items iterates over the buffered items in raster order.
func (l *List) Items() iter.Seq[paint.Op] {
	return l.items.All()
}

// Finalized reports whether Finalize has been called.
func (l *List) Finalized() bool {
	return l.finalized
}

// Append adds op after all previously appended operations.
//
// A list that does not retain items processes its buffer before the append
// once it holds Settings.ProcessThreshold items, so memory stays bounded.
func (l *List) Append(op paint.Op) {
	if l.finalized {
		l.violate("Append", ErrFinalized)
		return
	}
	if op == nil {
		l.violate("Append", ErrNilOp)
		return
	}
	if !l.settings.RetainIndividualItems && l.items.Len() >= l.settings.processThreshold() {
		l.ProcessAppendedItems()
	}
	l.items.Append(op)
}

// ProcessAppendedItems folds every unprocessed item into the aggregates and,
// with a cached picture, replays it into the recorder. Processed items are
// never folded again, so calling it repeatedly is safe.
func (l *List) ProcessAppendedItems() {
	retain := l.settings.RetainIndividualItems
	for op := range l.items.from(l.processed) {
		l.allGPUSuitable = l.allGPUSuitable && paint.GPUSuitable(op)
		l.opCount += paint.OpCount(op)
		if l.recorder != nil {
			paint.Draw(op, l.recorder, nil)
		}
		if retain {
			l.externalMemory += paint.ExternalMemory(op)
		}
	}
	l.processed = l.items.Len()
	if !retain {
		l.items.Clear()
		l.processed = 0
	}
}

// Finalize processes the remaining items and compiles the cached picture.
// It must be called exactly once, after the last Append.
func (l *List) Finalize() {
	if l.finalized {
		l.violate("Finalize", ErrFinalized)
		return
	}
	l.ProcessAppendedItems()
	if l.recorder != nil {
		l.picture = l.recorder.FinishRecordingAsPicture()
		l.pictureMemory = l.picture.ApproximateBytesUsed()
		l.recorder = nil
	}
	l.finalized = true
}

// RemoveLast drops the most recently appended item. It is allowed only
// before Finalize, on a list that retains items without caching, and only
// while the tail item has not been processed.
func (l *List) RemoveLast() bool {
	switch {
	case l.finalized:
		l.violate("RemoveLast", ErrFinalized)
		return false
	case !l.settings.RetainIndividualItems || l.settings.UseCachedPicture:
		l.violate("RemoveLast", ErrRemoveLast)
		return false
	case l.processed >= l.items.Len():
		l.violate("RemoveLast", ErrRemoveLast)
		return false
	}
	return l.items.RemoveLast()
}

// Raster replays the list onto c. The canvas is clipped to playbackRect
// when it is not empty, then scaled by contentsScale. abort, if non-nil,
// is polled at every item boundary and stops the replay when it returns
// true. Canvas state is restored before Raster returns.
func (l *List) Raster(c paint.Canvas, abort paint.AbortFunc, playbackRect image.Rectangle, contentsScale float64) {
	if !l.finalized {
		l.violate("Raster", ErrNotFinalized)
		return
	}
	c.Save()
	defer c.Restore()

	if !playbackRect.Empty() {
		c.ClipRect(paint.RectFromImage(playbackRect))
	}
	c.Scale(contentsScale, contentsScale)

	if l.picture == nil {
		l.rasterItems(c, abort)
		return
	}
	c.Translate(float64(l.layerRect.Min.X), float64(l.layerRect.Min.Y))
	if abort != nil {
		l.picture.Playback(c, abort)
	} else {
		c.DrawPicture(l.picture)
	}
}

// rasterItems replays retained items, skipping unmatched restores and
// closing any saves left open by an aborted replay.
func (l *List) rasterItems(c paint.Canvas, abort paint.AbortFunc) {
	depth := 0
	for op := range l.items.All() {
		if abort != nil && abort() {
			break
		}
		switch op.(type) {
		case paint.SaveOp:
			depth++
		case paint.RestoreOp:
			if depth == 0 {
				// Unmatched, like Recorder.Restore.
				continue
			}
			depth--
		}
		paint.Draw(op, c, abort)
	}
	for ; depth > 0; depth-- {
		c.Restore()
	}
}

// IsSuitableForGPURasterization reports whether the list can be rasterized
// on the GPU. With a cached picture the picture's own analysis is used,
// which may accept content an individual item would veto.
func (l *List) IsSuitableForGPURasterization() bool {
	if !l.finalized {
		l.violate("IsSuitableForGPURasterization", ErrNotFinalized)
	}
	if l.picture != nil {
		return l.picture.SuitableForGPURasterization()
	}
	return l.allGPUSuitable
}

// ApproximateOpCount returns the summed cost of all processed items.
func (l *List) ApproximateOpCount() int {
	return l.opCount
}

// ApproximateMemoryUsage returns the bytes held by the list.
//
// A list that both caches a picture and retains items reports 0: its items
// and picture describe the same content and no single figure is right.
func (l *List) ApproximateMemoryUsage() int64 {
	if l.settings.UseCachedPicture && l.settings.RetainIndividualItems {
		return 0
	}
	return int64(unsafe.Sizeof(*l)) + l.items.CapacityInBytes() + l.externalMemory + l.pictureMemory
}

// PictureMemoryUsage returns the approximate size of the cached picture.
func (l *List) PictureMemoryUsage() int64 {
	return l.pictureMemory
}

// ExternalMemoryUsage returns the bytes referenced by retained items.
func (l *List) ExternalMemoryUsage() int64 {
	return l.externalMemory
}

// Picture returns the cached picture, or nil. The list keeps its own
// reference; holders that outlive the list call Ref.
func (l *List) Picture() *paint.Picture {
	return l.picture
}

// Release drops the list's reference to its cached picture. The list must
// not be rastered afterwards unless another holder keeps the picture alive.
func (l *List) Release() {
	if l.picture != nil && !l.released {
		l.released = true
		l.picture.Release()
	}
}

// Violations returns the number of contract violations tolerated in
// lenient mode.
func (l *List) Violations() int {
	return l.violations
}

// LastViolation returns the most recent tolerated violation, or nil.
func (l *List) LastViolation() *ContractError {
	return l.lastViolation
}

func (l *List) violate(op string, err error) {
	ce := &ContractError{Op: op, Err: err}
	if l.settings.Strict {
		panic(ce)
	}
	l.violations++
	l.lastViolation = ce
	Logger().Warn("displaylist: contract violation", "op", op, "err", err)
}
