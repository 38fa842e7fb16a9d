// Package raster provides a pixel canvas backend for paint operations.
// It renders onto a gg.Context.
//
// The raster canvas serves multiple purposes:
//   - Reference implementation of paint.Canvas
//   - Pixel-accurate comparison testing
//   - Tile rasterization of recorded layers
//   - PNG snapshots for trace tooling
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/displaylist/paint/raster"
//
//	// Create via registry
//	c, _ := paint.NewCanvas("raster", 256, 256)
//
//	// Or create directly
//	c := raster.New(256, 256)
//	pic.Playback(c, nil)
//	c.SavePNG("tile.png")
package raster

import (
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/displaylist/paint"
)

func init() {
	paint.Register("raster", func(width, height int) paint.Canvas {
		return New(width, height)
	})
}

// Canvas renders paint operations to pixels using gg.Context.
// It implements paint.Canvas and paint.ImageCanvas.
//
// The canvas keeps its own transform and device clip next to the context's.
// Filled rectangles and clears honor the clip exactly; other shapes are
// clipped as far as gg.Context supports.
type Canvas struct {
	ctx    *gg.Context
	state  paint.CanvasState
	width  int
	height int
}

// Ensure Canvas implements all required interfaces.
var (
	_ paint.Canvas      = (*Canvas)(nil)
	_ paint.ImageCanvas = (*Canvas)(nil)
)

// New creates a transparent raster canvas of the given size.
func New(width, height int) *Canvas {
	return &Canvas{
		ctx:    gg.NewContext(width, height),
		state:  paint.NewCanvasState(width, height),
		width:  width,
		height: height,
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Save implements paint.Canvas.
func (c *Canvas) Save() {
	c.state.Push()
	c.ctx.Push()
}

// Restore implements paint.Canvas.
func (c *Canvas) Restore() {
	if c.state.Pop() {
		c.ctx.Pop()
	}
}

// Translate implements paint.Canvas.
func (c *Canvas) Translate(dx, dy float64) {
	c.state.Translate(dx, dy)
	c.ctx.Translate(dx, dy)
}

// Scale implements paint.Canvas.
func (c *Canvas) Scale(sx, sy float64) {
	c.state.Scale(sx, sy)
	c.ctx.Scale(sx, sy)
}

// ClipRect implements paint.Canvas.
func (c *Canvas) ClipRect(r paint.Rect) {
	c.state.ClipRect(r)
	c.ctx.ClipRect(r.MinX, r.MinY, r.Width(), r.Height())
}

// Clear implements paint.Canvas. Pixels inside the clip are replaced, not
// blended.
func (c *Canvas) Clear(col gg.RGBA) {
	clip := c.state.Clip
	if clip.Contains(paint.NewRect(0, 0, float64(c.width), float64(c.height))) {
		c.ctx.ClearWithColor(col)
		return
	}
	x0, y0 := int(math.Floor(clip.MinX)), int(math.Floor(clip.MinY))
	x1, y1 := int(math.Ceil(clip.MaxX)), int(math.Ceil(clip.MaxY))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.ctx.SetPixel(x, y, col)
		}
	}
}

// DrawRect implements paint.Canvas. Filled rectangles are intersected with
// the clip in device space and drawn with an identity transform.
func (c *Canvas) DrawRect(r paint.Rect, p paint.Paint) {
	if p.IsTransparent() {
		return
	}
	c.ctx.ClearPath()
	if p.Style == paint.StyleFill {
		dev := c.state.DeviceRect(r)
		if dev.IsEmpty() {
			return
		}
		c.ctx.Push()
		c.ctx.Identity()
		c.ctx.DrawRectangle(dev.MinX, dev.MinY, dev.Width(), dev.Height())
		c.finish(p)
		c.ctx.Pop()
		return
	}
	c.ctx.DrawRectangle(r.MinX, r.MinY, r.Width(), r.Height())
	c.finish(p)
}

// DrawPath implements paint.Canvas.
func (c *Canvas) DrawPath(path *gg.Path, p paint.Paint, rule gg.FillRule) {
	if path == nil || p.IsTransparent() {
		return
	}
	c.ctx.ClearPath()
	c.setPath(path)
	c.ctx.SetFillRule(rule)
	c.finish(p)
}

// DrawImage implements paint.Canvas.
func (c *Canvas) DrawImage(img image.Image, dst paint.Rect, opacity float64) {
	if img == nil || dst.IsEmpty() {
		return
	}
	c.ctx.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:             dst.MinX,
		Y:             dst.MinY,
		DstWidth:      dst.Width(),
		DstHeight:     dst.Height(),
		Interpolation: gg.InterpBilinear,
		Opacity:       opacity,
		BlendMode:     gg.BlendNormal,
	})
}

// DrawText implements paint.Canvas. Nothing is drawn without a face.
func (c *Canvas) DrawText(s string, x, y float64, face text.Face, p paint.Paint) {
	if face == nil || p.IsTransparent() {
		return
	}
	c.ctx.SetFont(face)
	c.ctx.SetRGBA(p.Color.R, p.Color.G, p.Color.B, p.Color.A)
	c.ctx.DrawString(s, x, y)
}

// DrawPicture implements paint.Canvas by replaying every operation.
func (c *Canvas) DrawPicture(pic *paint.Picture) {
	if pic == nil {
		return
	}
	c.Save()
	pic.Playback(c, nil)
	c.Restore()
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.ctx.Image()
}

// At returns the color of a single pixel.
func (c *Canvas) At(x, y int) gg.RGBA {
	return gg.FromColor(c.ctx.Image().At(x, y))
}

// EncodePNG writes the rendered content as PNG to the given writer.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.ctx.EncodePNG(w)
}

// SavePNG is a convenience method to save the image as PNG.
func (c *Canvas) SavePNG(path string) error {
	return c.ctx.SavePNG(path)
}

// finish applies p and fills or strokes the current path.
func (c *Canvas) finish(p paint.Paint) {
	c.ctx.SetRGBA(p.Color.R, p.Color.G, p.Color.B, p.Color.A)
	if p.Style == paint.StyleStroke {
		c.applyStroke(p.Stroke)
		_ = c.ctx.Stroke()
		return
	}
	_ = c.ctx.Fill()
}

// setPath walks the path verbs and adds them to the context.
func (c *Canvas) setPath(path *gg.Path) {
	path.Iterate(func(verb gg.PathVerb, p []float64) {
		switch verb {
		case gg.MoveTo:
			c.ctx.MoveTo(p[0], p[1])
		case gg.LineTo:
			c.ctx.LineTo(p[0], p[1])
		case gg.QuadTo:
			c.ctx.QuadraticTo(p[0], p[1], p[2], p[3])
		case gg.CubicTo:
			c.ctx.CubicTo(p[0], p[1], p[2], p[3], p[4], p[5])
		default:
			c.ctx.ClosePath()
		}
	})
}

// applyStroke applies the stroke settings to the context.
func (c *Canvas) applyStroke(s paint.Stroke) {
	c.ctx.SetLineWidth(s.Width)
	c.ctx.SetLineCap(s.Cap)
	c.ctx.SetLineJoin(s.Join)
	c.ctx.SetMiterLimit(s.MiterLimit)

	if len(s.Dash) > 0 {
		c.ctx.SetDash(s.Dash...)
		c.ctx.SetDashOffset(s.DashOffset)
	} else {
		c.ctx.ClearDash()
	}
}
