// Package analysis provides a canvas that determines whether a recording
// paints a single solid color.
//
// The canvas draws nothing. It tracks whether every pixel it has seen so far
// has the same color, and reports through Abort as soon as the answer is
// known to be "no", so playback can stop early:
//
//	c := analysis.New(layer.Dx(), layer.Dy())
//	list.Raster(c, c.Abort, image.Rectangle{}, 1)
//	if col, ok := c.ColorIfSolid(); ok {
//		// layer is solid col
//	}
package analysis

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/displaylist/paint"
)

func init() {
	paint.Register("analysis", func(width, height int) paint.Canvas {
		return New(width, height)
	})
}

// Canvas is a paint.Canvas that only analyzes what is drawn.
type Canvas struct {
	state       paint.CanvasState
	full        paint.Rect
	solid       bool
	transparent bool
	color       gg.RGBA
	ops         int
}

var _ paint.Canvas = (*Canvas)(nil)

// New creates an analysis canvas covering width x height device pixels.
// A fresh canvas is solid and transparent.
func New(width, height int) *Canvas {
	return &Canvas{
		state:       paint.NewCanvasState(width, height),
		full:        paint.NewRect(0, 0, float64(width), float64(height)),
		solid:       true,
		transparent: true,
		color:       gg.Transparent,
	}
}

// Abort reports whether further playback cannot change the result.
// It has the paint.AbortFunc signature.
func (c *Canvas) Abort() bool {
	return !c.solid && !c.transparent
}

// ColorIfSolid returns the single color painted so far.
// A canvas that received no visible drawing is solid transparent.
func (c *Canvas) ColorIfSolid() (gg.RGBA, bool) {
	if c.transparent {
		return gg.Transparent, true
	}
	return c.color, c.solid
}

// IsSolid reports whether the canvas is a single color.
func (c *Canvas) IsSolid() bool {
	return c.solid
}

// IsTransparent reports whether nothing visible has been painted.
func (c *Canvas) IsTransparent() bool {
	return c.transparent
}

// DrawCount returns the number of drawing operations that reached the canvas.
func (c *Canvas) DrawCount() int {
	return c.ops
}

// Save implements paint.Canvas.
func (c *Canvas) Save() { c.state.Push() }

// Restore implements paint.Canvas.
func (c *Canvas) Restore() { c.state.Pop() }

// Translate implements paint.Canvas.
func (c *Canvas) Translate(dx, dy float64) { c.state.Translate(dx, dy) }

// Scale implements paint.Canvas.
func (c *Canvas) Scale(sx, sy float64) { c.state.Scale(sx, sy) }

// ClipRect implements paint.Canvas.
func (c *Canvas) ClipRect(r paint.Rect) { c.state.ClipRect(r) }

// Clear implements paint.Canvas.
func (c *Canvas) Clear(col gg.RGBA) {
	c.ops++
	if c.state.Clip.IsEmpty() {
		return
	}
	if c.clipIsFull() {
		c.setSolid(col)
		return
	}
	if col.A <= 0 && c.transparent {
		return
	}
	c.markComplex()
}

// DrawRect implements paint.Canvas.
func (c *Canvas) DrawRect(r paint.Rect, p paint.Paint) {
	c.ops++
	if p.IsTransparent() {
		return
	}
	if p.Style == paint.StyleStroke {
		r = r.Outset(p.Stroke.Width / 2)
	}
	dev := c.state.Matrix.MapRect(r)
	if dev.Intersect(c.state.Clip).IsEmpty() {
		return
	}
	if p.Style == paint.StyleFill && p.IsOpaque() && c.clipIsFull() && dev.Contains(c.full) {
		c.setSolid(p.Color)
		return
	}
	c.markComplex()
}

// DrawPath implements paint.Canvas.
func (c *Canvas) DrawPath(path *gg.Path, p paint.Paint, _ gg.FillRule) {
	c.ops++
	if path == nil || p.IsTransparent() {
		return
	}
	c.drawBounded(paint.PathOp{Path: path, Paint: p})
}

// DrawImage implements paint.Canvas.
func (c *Canvas) DrawImage(img image.Image, dst paint.Rect, _ float64) {
	c.ops++
	if img == nil || dst.IsEmpty() {
		return
	}
	c.drawBounded(paint.ImageOp{Image: img, Dst: dst})
}

// DrawText implements paint.Canvas.
func (c *Canvas) DrawText(s string, _, _ float64, face text.Face, p paint.Paint) {
	c.ops++
	if s == "" || face == nil || p.IsTransparent() || c.state.Clip.IsEmpty() {
		return
	}
	c.markComplex()
}

// DrawPicture implements paint.Canvas by replaying the picture into the
// analysis, stopping as soon as the result is known.
func (c *Canvas) DrawPicture(pic *paint.Picture) {
	if pic == nil {
		return
	}
	c.Save()
	pic.Playback(c, c.Abort)
	c.Restore()
}

func (c *Canvas) drawBounded(op paint.Op) {
	if r, ok := paint.Bounds(op); ok && c.state.DeviceRect(r).IsEmpty() {
		return
	}
	c.markComplex()
}

func (c *Canvas) clipIsFull() bool {
	return c.state.Clip.Contains(c.full)
}

func (c *Canvas) setSolid(col gg.RGBA) {
	c.solid = true
	c.transparent = col.A <= 0
	c.color = col
}

func (c *Canvas) markComplex() {
	c.solid = false
	c.transparent = false
}
