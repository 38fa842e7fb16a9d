package paint

import (
	"iter"
	"sync/atomic"
	"unsafe"
)

// MaxConcaveAAPaths is the number of anti-aliased concave paths a picture
// may contain and still be considered suitable for GPU rasterization.
const MaxConcaveAAPaths = 5

// pathElementBytes approximates the storage of one recorded path verb.
const pathElementBytes = 40

// Picture is an immutable, compiled sequence of paint operations produced
// by a Recorder.
//
// Ownership is explicit: a Picture starts with one reference, every holder
// that outlives the creator calls Ref, and every holder calls Release when
// done. The longest holder frees the operations. Playback never mutates the
// Picture, so any number of goroutines may replay it concurrently as long as
// each holds a reference.
type Picture struct {
	bounds  Rect
	ops     []Op
	opCount int
	bytes   int64

	concaveAAPaths int
	badDashes      int

	refs atomic.Int32
}

// Bounds returns the cull rectangle the picture was recorded with.
func (p *Picture) Bounds() Rect {
	return p.bounds
}

// Len returns the number of top-level operations.
func (p *Picture) Len() int {
	return len(p.ops)
}

// Ops returns an iterator over the top-level operations in playback order.
func (p *Picture) Ops() iter.Seq[Op] {
	return func(yield func(Op) bool) {
		for _, op := range p.ops {
			if !yield(op) {
				return
			}
		}
	}
}

// ApproximateOpCount returns the total cost of the picture, including
// nested pictures.
func (p *Picture) ApproximateOpCount() int {
	return p.opCount
}

// ApproximateBytesUsed returns the approximate memory held by the picture.
// Referenced images and nested pictures are not included.
func (p *Picture) ApproximateBytesUsed() int64 {
	return p.bytes
}

// SuitableForGPURasterization runs the picture's own GPU analysis. It is
// more permissive than the per-operation veto of GPUSuitable: up to
// MaxConcaveAAPaths anti-aliased concave paths are tolerated.
func (p *Picture) SuitableForGPURasterization() bool {
	return p.badDashes == 0 && p.concaveAAPaths <= MaxConcaveAAPaths
}

// Playback replays the picture onto c. abort, if non-nil, is polled before
// every operation; when it returns true the remaining operations are
// skipped, open saves are restored, and Playback returns false.
func (p *Picture) Playback(c Canvas, abort AbortFunc) bool {
	depth := 0
	for _, op := range p.ops {
		if abort != nil && abort() {
			for ; depth > 0; depth-- {
				c.Restore()
			}
			return false
		}
		switch op.(type) {
		case SaveOp:
			depth++
		case RestoreOp:
			depth--
		}
		Draw(op, c, abort)
	}
	return true
}

// Ref adds a reference and returns p for chaining.
func (p *Picture) Ref() *Picture {
	p.refs.Add(1)
	return p
}

// Release drops a reference. When the last reference is released the
// operations are freed and the picture plays back as empty.
func (p *Picture) Release() {
	if p.refs.Add(-1) == 0 {
		for _, op := range p.ops {
			if nested, ok := op.(PictureOp); ok && nested.Picture != nil {
				nested.Picture.Release()
			}
		}
		p.ops = nil
	}
}

// Refs returns the current reference count.
func (p *Picture) Refs() int32 {
	return p.refs.Load()
}

func pictureBytes(p *Picture) int64 {
	n := int64(unsafe.Sizeof(*p)) + int64(cap(p.ops))*int64(OpSlotSize)
	for _, op := range p.ops {
		switch o := op.(type) {
		case PathOp:
			if o.Path != nil {
				n += int64(o.Path.NumVerbs()) * pathElementBytes
			}
		case TextOp:
			n += int64(len(o.Text))
		case RectOp:
			n += int64(len(o.Paint.Stroke.Dash)) * 8
		}
	}
	return n
}
