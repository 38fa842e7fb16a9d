package paint

import (
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// AbortFunc is polled by playback between operations. Returning true stops
// the replay of all remaining operations.
type AbortFunc func() bool

// Canvas is the drawing surface paint operations replay onto.
//
// A Canvas keeps its own state stack for Save/Restore. Transforms are
// limited to translation and scale so that rectangles stay rectangles.
//
// # Implementation Contract
//
// Each canvas backend must:
//  1. Register in init() using paint.Register()
//  2. Handle all Canvas methods (even if no-op for some)
//  3. Manage its own state stack for Save/Restore
type Canvas interface {
	// Save pushes the current transform and clip.
	Save()

	// Restore pops the state pushed by the matching Save.
	// If the stack is empty, this is a no-op.
	Restore()

	// Translate post-multiplies the current transform by a translation.
	Translate(dx, dy float64)

	// Scale post-multiplies the current transform by a scale.
	Scale(sx, sy float64)

	// ClipRect intersects the clip with r, given in local coordinates.
	ClipRect(r Rect)

	// Clear replaces every pixel inside the clip with c.
	Clear(c gg.RGBA)

	// DrawRect fills or strokes r.
	DrawRect(r Rect, p Paint)

	// DrawPath fills or strokes path.
	DrawPath(path *gg.Path, p Paint, rule gg.FillRule)

	// DrawImage draws img scaled into dst. Zero opacity means opaque.
	DrawImage(img image.Image, dst Rect, opacity float64)

	// DrawText draws s with its baseline origin at (x, y).
	DrawText(s string, x, y float64, face text.Face, p Paint)

	// DrawPicture replays pic without abort checks. Backends may use a
	// faster path than op-by-op playback.
	DrawPicture(pic *Picture)
}

// ImageCanvas extends Canvas with access to rasterized pixels.
// This is implemented by the raster backend.
type ImageCanvas interface {
	Canvas

	// Image returns the rendered pixels.
	Image() image.Image

	// EncodePNG writes the rendered pixels as PNG.
	EncodePNG(w io.Writer) error
}
