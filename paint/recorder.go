package paint

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Recorder is a Canvas that captures operations instead of rasterizing
// them. Use FinishRecordingAsPicture to obtain an immutable Picture.
//
// Example:
//
//	rec := paint.NewRecorder(paint.NewRect(0, 0, 800, 600))
//	rec.Translate(-100, -100)
//	rec.DrawRect(paint.NewRect(100, 100, 50, 50), paint.Fill(gg.Red))
//	pic := rec.FinishRecordingAsPicture()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	bounds    Rect
	ops       []Op
	saveDepth int

	// GPU analysis accumulated while recording.
	concaveAAPaths int
	badDashes      int
}

// Ensure Recorder implements Canvas.
var _ Canvas = (*Recorder)(nil)

// NewRecorder begins a recording whose cull bounds are bounds.
func NewRecorder(bounds Rect) *Recorder {
	return &Recorder{
		bounds: bounds,
		ops:    make([]Op, 0, 64),
	}
}

// Bounds returns the cull bounds the recording was started with.
func (r *Recorder) Bounds() Rect {
	return r.bounds
}

// Len returns the number of operations recorded so far.
func (r *Recorder) Len() int {
	return len(r.ops)
}

// FinishRecordingAsPicture compiles the recorded operations into an
// immutable Picture holding one reference. Unbalanced saves are closed.
// After calling FinishRecordingAsPicture, the Recorder should not be used again.
func (r *Recorder) FinishRecordingAsPicture() *Picture {
	for ; r.saveDepth > 0; r.saveDepth-- {
		r.ops = append(r.ops, RestoreOp{})
	}

	pic := &Picture{
		bounds:         r.bounds,
		ops:            r.ops,
		concaveAAPaths: r.concaveAAPaths,
		badDashes:      r.badDashes,
	}
	for _, op := range r.ops {
		pic.opCount += OpCount(op)
	}
	pic.bytes = pictureBytes(pic)
	pic.refs.Store(1)

	r.ops = nil
	return pic
}

// Save implements Canvas.
func (r *Recorder) Save() {
	r.saveDepth++
	r.ops = append(r.ops, SaveOp{})
}

// Restore implements Canvas.
func (r *Recorder) Restore() {
	if r.saveDepth == 0 {
		return
	}
	r.saveDepth--
	r.ops = append(r.ops, RestoreOp{})
}

// Translate implements Canvas.
func (r *Recorder) Translate(dx, dy float64) {
	r.ops = append(r.ops, TranslateOp{DX: dx, DY: dy})
}

// Scale implements Canvas.
func (r *Recorder) Scale(sx, sy float64) {
	r.ops = append(r.ops, ScaleOp{SX: sx, SY: sy})
}

// ClipRect implements Canvas.
func (r *Recorder) ClipRect(rect Rect) {
	r.ops = append(r.ops, ClipRectOp{Rect: rect})
}

// Clear implements Canvas.
func (r *Recorder) Clear(c gg.RGBA) {
	r.ops = append(r.ops, ClearOp{Color: c})
}

// DrawRect implements Canvas.
func (r *Recorder) DrawRect(rect Rect, p Paint) {
	if p.hasBadDash() {
		r.badDashes++
	}
	r.ops = append(r.ops, RectOp{Rect: rect, Paint: cloneStroke(p)})
}

// DrawPath implements Canvas. The path is cloned so the recording stays
// immutable if the caller keeps editing it.
func (r *Recorder) DrawPath(path *gg.Path, p Paint, rule gg.FillRule) {
	if path != nil {
		path = path.Clone()
	}
	if p.hasBadDash() {
		r.badDashes++
	}
	if p.AntiAlias && !IsConvex(path) {
		r.concaveAAPaths++
	}
	r.ops = append(r.ops, PathOp{Path: path, Paint: cloneStroke(p), Rule: rule})
}

// DrawImage implements Canvas.
func (r *Recorder) DrawImage(img image.Image, dst Rect, opacity float64) {
	r.ops = append(r.ops, ImageOp{Image: img, Dst: dst, Opacity: opacity})
}

// DrawText implements Canvas.
func (r *Recorder) DrawText(s string, x, y float64, face text.Face, p Paint) {
	r.ops = append(r.ops, TextOp{Text: s, X: x, Y: y, Face: face, Paint: cloneStroke(p)})
}

// DrawPicture implements Canvas. The nested picture is referenced, not
// copied, and its GPU analysis is folded into this recording.
func (r *Recorder) DrawPicture(pic *Picture) {
	if pic == nil {
		return
	}
	r.concaveAAPaths += pic.concaveAAPaths
	r.badDashes += pic.badDashes
	r.ops = append(r.ops, PictureOp{Picture: pic.Ref()})
}

func cloneStroke(p Paint) Paint {
	p.Stroke = p.Stroke.Clone()
	return p
}
