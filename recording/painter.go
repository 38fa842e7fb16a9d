package recording

import (
	"image"

	"github.com/gogpu/displaylist"
)

// RecordingMode is requested by the owner of a Source for one update.
type RecordingMode int

const (
	// RecordNormally paints and records everything.
	RecordNormally RecordingMode = iota
	// RecordWithPaintingDisabled runs the painter but skips drawing.
	RecordWithPaintingDisabled
	// RecordWithCachingDisabled bypasses the painter's own caches.
	RecordWithCachingDisabled
	// RecordWithConstructionDisabled skips building paint ops at all.
	RecordWithConstructionDisabled
)

var recordingModeNames = [...]string{
	RecordNormally:                 "Normal",
	RecordWithPaintingDisabled:     "PaintingDisabled",
	RecordWithCachingDisabled:      "CachingDisabled",
	RecordWithConstructionDisabled: "ConstructionDisabled",
}

// String returns the mode name.
func (m RecordingMode) String() string {
	if m >= 0 && int(m) < len(recordingModeNames) {
		return recordingModeNames[m]
	}
	return "Unknown"
}

// PaintingControl tells a Painter how much work to do.
type PaintingControl int

const (
	// PaintingNormal is unrestricted painting.
	PaintingNormal PaintingControl = iota
	// PaintingDisabled asks the painter to skip the actual draws.
	PaintingDisabled
	// CachingDisabled asks the painter to bypass its internal caches.
	CachingDisabled
	// ConstructionDisabled asks the painter not to construct ops.
	ConstructionDisabled
)

var paintingControlNames = [...]string{
	PaintingNormal:       "Normal",
	PaintingDisabled:     "PaintingDisabled",
	CachingDisabled:      "CachingDisabled",
	ConstructionDisabled: "ConstructionDisabled",
}

// String returns the control name.
func (c PaintingControl) String() string {
	if c >= 0 && int(c) < len(paintingControlNames) {
		return paintingControlNames[c]
	}
	return "Unknown"
}

// Constructs reports whether ops should be built at all.
func (c PaintingControl) Constructs() bool {
	return c != ConstructionDisabled
}

// Draws reports whether built ops should be appended to the list.
func (c PaintingControl) Draws() bool {
	return c != ConstructionDisabled && c != PaintingDisabled
}

// PaintingControl maps the mode to what the painter is asked to do.
func (m RecordingMode) PaintingControl() PaintingControl {
	switch m {
	case RecordWithPaintingDisabled:
		return PaintingDisabled
	case RecordWithCachingDisabled:
		return CachingDisabled
	case RecordWithConstructionDisabled:
		return ConstructionDisabled
	default:
		return PaintingNormal
	}
}

// Painter produces the display list of a layer region.
//
// The returned list belongs to the Source. It should be created with the
// given settings; a list that is not finalized is finalized by the Source,
// and a nil list is treated as empty content.
type Painter interface {
	PaintContentsToDisplayList(viewport image.Rectangle, control PaintingControl, settings displaylist.Settings) *displaylist.List
}

// PainterFunc adapts a function to the Painter interface.
type PainterFunc func(viewport image.Rectangle, control PaintingControl, settings displaylist.Settings) *displaylist.List

// PaintContentsToDisplayList calls f.
func (f PainterFunc) PaintContentsToDisplayList(viewport image.Rectangle, control PaintingControl, settings displaylist.Settings) *displaylist.List {
	return f(viewport, control, settings)
}
