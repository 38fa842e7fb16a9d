package paint

import (
	"image"
	"unsafe"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// OpKind identifies the type of a paint operation.
type OpKind uint8

const (
	// State operations
	OpSave      OpKind = iota // Save canvas state
	OpRestore                 // Restore canvas state
	OpTranslate               // Translate the current transform
	OpScale                   // Scale the current transform
	OpClipRect                // Intersect the clip with a rectangle

	// Drawing operations
	OpClear   // Replace every pixel inside the clip
	OpRect    // Fill or stroke a rectangle
	OpPath    // Fill or stroke a path
	OpImage   // Draw an image into a rectangle
	OpText    // Draw a run of text
	OpPicture // Draw a nested compiled picture
)

var opKindNames = [...]string{
	OpSave:      "Save",
	OpRestore:   "Restore",
	OpTranslate: "Translate",
	OpScale:     "Scale",
	OpClipRect:  "ClipRect",
	OpClear:     "Clear",
	OpRect:      "Rect",
	OpPath:      "Path",
	OpImage:     "Image",
	OpText:      "Text",
	OpPicture:   "Picture",
}

// String returns the string representation of an OpKind.
func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "Unknown"
}

// Op is one recorded drawing instruction. It is a sealed interface:
// only the operation types of this package implement it.
//
// Ops are immutable once recorded. Reference fields (paths, images, faces,
// pictures) must not be mutated by the caller after the op is created.
type Op interface {
	// Kind returns the OpKind for this operation.
	Kind() OpKind

	opMarker()
}

// SaveOp pushes the canvas state (transform and clip).
type SaveOp struct{}

// RestoreOp pops the canvas state saved by the matching SaveOp.
type RestoreOp struct{}

// TranslateOp post-multiplies the transform by a translation.
type TranslateOp struct {
	DX, DY float64
}

// ScaleOp post-multiplies the transform by a scale.
type ScaleOp struct {
	SX, SY float64
}

// ClipRectOp intersects the clip with a rectangle in local coordinates.
type ClipRectOp struct {
	Rect Rect
}

// ClearOp replaces every pixel inside the current clip with Color.
type ClearOp struct {
	Color gg.RGBA
}

// RectOp fills or strokes an axis-aligned rectangle.
type RectOp struct {
	Rect  Rect
	Paint Paint
}

// PathOp fills or strokes a path.
type PathOp struct {
	Path  *gg.Path
	Paint Paint
	Rule  gg.FillRule
}

// ImageOp draws an image scaled into Dst.
type ImageOp struct {
	Image image.Image
	Dst   Rect
	// Opacity in [0, 1]. Zero means fully opaque.
	Opacity float64
}

// TextOp draws a run of text with its baseline origin at (X, Y).
type TextOp struct {
	Text  string
	X, Y  float64
	Face  text.Face
	Paint Paint
}

// PictureOp draws a nested compiled picture.
type PictureOp struct {
	Picture *Picture
}

// Kind implements Op.
func (SaveOp) Kind() OpKind { return OpSave }

// Kind implements Op.
func (RestoreOp) Kind() OpKind { return OpRestore }

// Kind implements Op.
func (TranslateOp) Kind() OpKind { return OpTranslate }

// Kind implements Op.
func (ScaleOp) Kind() OpKind { return OpScale }

// Kind implements Op.
func (ClipRectOp) Kind() OpKind { return OpClipRect }

// Kind implements Op.
func (ClearOp) Kind() OpKind { return OpClear }

// Kind implements Op.
func (RectOp) Kind() OpKind { return OpRect }

// Kind implements Op.
func (PathOp) Kind() OpKind { return OpPath }

// Kind implements Op.
func (ImageOp) Kind() OpKind { return OpImage }

// Kind implements Op.
func (TextOp) Kind() OpKind { return OpText }

// Kind implements Op.
func (PictureOp) Kind() OpKind { return OpPicture }

func (SaveOp) opMarker()      {}
func (RestoreOp) opMarker()   {}
func (TranslateOp) opMarker() {}
func (ScaleOp) opMarker()     {}
func (ClipRectOp) opMarker()  {}
func (ClearOp) opMarker()     {}
func (RectOp) opMarker()      {}
func (PathOp) opMarker()      {}
func (ImageOp) opMarker()     {}
func (TextOp) opMarker()      {}
func (PictureOp) opMarker()   {}

// OpSlotSize is the number of bytes one op occupies in an item buffer.
// Buffers reserve a slot large enough for the largest operation type.
const OpSlotSize = int(max(
	unsafe.Sizeof(SaveOp{}),
	unsafe.Sizeof(TranslateOp{}),
	unsafe.Sizeof(ClipRectOp{}),
	unsafe.Sizeof(ClearOp{}),
	unsafe.Sizeof(RectOp{}),
	unsafe.Sizeof(PathOp{}),
	unsafe.Sizeof(ImageOp{}),
	unsafe.Sizeof(TextOp{}),
	unsafe.Sizeof(PictureOp{}),
))

// OpCount returns the approximate cost of op, measured in primitive
// drawing operations. The result is always at least 1.
func OpCount(op Op) int {
	if p, ok := op.(PictureOp); ok && p.Picture != nil {
		return max(1, p.Picture.ApproximateOpCount())
	}
	return 1
}

// GPUSuitable reports whether op on its own can be rasterized on the GPU
// without a quality or performance penalty. The answer is conservative:
// a single anti-aliased concave path is enough to veto it.
func GPUSuitable(op Op) bool {
	switch o := op.(type) {
	case RectOp:
		return !o.Paint.hasBadDash()
	case PathOp:
		if o.Paint.hasBadDash() {
			return false
		}
		return !(o.Paint.AntiAlias && !IsConvex(o.Path))
	case TextOp:
		return !o.Paint.hasBadDash()
	case PictureOp:
		return o.Picture == nil || o.Picture.SuitableForGPURasterization()
	default:
		return true
	}
}

// ExternalMemory returns the number of bytes op references but does not
// own, such as the backing store of a decoded image.
func ExternalMemory(op Op) int64 {
	switch o := op.(type) {
	case ImageOp:
		return imageBytes(o.Image)
	case PictureOp:
		if o.Picture == nil {
			return 0
		}
		return o.Picture.ApproximateBytesUsed()
	default:
		return 0
	}
}

// Draw replays op onto c. A non-nil abort is forwarded to nested picture
// playback so that it can stop early.
func Draw(op Op, c Canvas, abort AbortFunc) {
	switch o := op.(type) {
	case SaveOp:
		c.Save()
	case RestoreOp:
		c.Restore()
	case TranslateOp:
		c.Translate(o.DX, o.DY)
	case ScaleOp:
		c.Scale(o.SX, o.SY)
	case ClipRectOp:
		c.ClipRect(o.Rect)
	case ClearOp:
		c.Clear(o.Color)
	case RectOp:
		c.DrawRect(o.Rect, o.Paint)
	case PathOp:
		c.DrawPath(o.Path, o.Paint, o.Rule)
	case ImageOp:
		c.DrawImage(o.Image, o.Dst, o.Opacity)
	case TextOp:
		c.DrawText(o.Text, o.X, o.Y, o.Face, o.Paint)
	case PictureOp:
		if o.Picture == nil {
			return
		}
		if abort != nil {
			o.Picture.Playback(c, abort)
		} else {
			c.DrawPicture(o.Picture)
		}
	}
}

// Bounds returns the local-space area op may touch and whether that area
// is known. State operations and text report false.
func Bounds(op Op) (Rect, bool) {
	switch o := op.(type) {
	case RectOp:
		r := o.Rect
		if o.Paint.Style == StyleStroke {
			r = r.Outset(o.Paint.Stroke.Width / 2)
		}
		return r, true
	case PathOp:
		r, ok := pathBounds(o.Path)
		if ok && o.Paint.Style == StyleStroke {
			r = r.Outset(o.Paint.Stroke.Width/2 + o.Paint.Stroke.MiterLimit)
		}
		return r, ok
	case ImageOp:
		return o.Dst, true
	case PictureOp:
		if o.Picture == nil {
			return Rect{}, true
		}
		return o.Picture.Bounds(), true
	default:
		return Rect{}, false
	}
}

// imageBytes approximates the decoded size of img as 4 bytes per pixel.
func imageBytes(img image.Image) int64 {
	if img == nil {
		return 0
	}
	b := img.Bounds()
	return int64(b.Dx()) * int64(b.Dy()) * 4
}
