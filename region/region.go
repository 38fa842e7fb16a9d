// Package region implements an integer area made of disjoint rectangles.
//
// A Region is the invalidation currency of the recording pipeline: owners
// accumulate damaged layer area into it, the recording source grows it to
// cover newly exposed and no-longer-recorded area, and tile rasterization
// walks its rectangles to decide which tiles to repaint.
//
// Rectangles use image.Rectangle semantics (Min inclusive, Max exclusive).
// The zero value is an empty region ready to use.
package region

import (
	"image"
	"iter"
)

// Region is a set of pixels stored as non-overlapping rectangles.
// Area and set operations are exact.
type Region struct {
	rects []image.Rectangle
}

// New returns a region covering the given rectangles.
func New(rects ...image.Rectangle) *Region {
	r := &Region{}
	for _, rect := range rects {
		r.Union(rect)
	}
	return r
}

// IsEmpty reports whether the region covers no pixels.
func (r *Region) IsEmpty() bool {
	return r == nil || len(r.rects) == 0
}

// Len returns the number of disjoint rectangles.
func (r *Region) Len() int {
	if r == nil {
		return 0
	}
	return len(r.rects)
}

// Rects returns a copy of the disjoint rectangles.
func (r *Region) Rects() []image.Rectangle {
	if r == nil {
		return nil
	}
	return append([]image.Rectangle(nil), r.rects...)
}

// All iterates over the disjoint rectangles.
func (r *Region) All() iter.Seq[image.Rectangle] {
	return func(yield func(image.Rectangle) bool) {
		if r == nil {
			return
		}
		for _, rect := range r.rects {
			if !yield(rect) {
				return
			}
		}
	}
}

// Bounds returns the smallest rectangle containing the region.
func (r *Region) Bounds() image.Rectangle {
	var b image.Rectangle
	for rect := range r.All() {
		b = b.Union(rect)
	}
	return b
}

// Area returns the number of pixels in the region.
func (r *Region) Area() int {
	n := 0
	for rect := range r.All() {
		n += rect.Dx() * rect.Dy()
	}
	return n
}

// Clear empties the region.
func (r *Region) Clear() {
	r.rects = r.rects[:0]
}

// Clone returns an independent copy.
func (r *Region) Clone() *Region {
	return &Region{rects: r.Rects()}
}

// Union adds rect to the region.
func (r *Region) Union(rect image.Rectangle) {
	if rect.Empty() {
		return
	}
	pieces := []image.Rectangle{rect}
	for _, existing := range r.rects {
		if !existing.Overlaps(rect) {
			continue
		}
		var next []image.Rectangle
		for _, p := range pieces {
			next = appendDifference(next, p, existing)
		}
		pieces = next
		if len(pieces) == 0 {
			return
		}
	}
	r.rects = append(r.rects, pieces...)
}

// UnionRegion adds every rectangle of other to the region.
func (r *Region) UnionRegion(other *Region) {
	for rect := range other.All() {
		r.Union(rect)
	}
}

// Subtract removes rect from the region.
func (r *Region) Subtract(rect image.Rectangle) {
	if rect.Empty() || len(r.rects) == 0 {
		return
	}
	out := r.rects[:0:0]
	for _, existing := range r.rects {
		out = appendDifference(out, existing, rect)
	}
	r.rects = out
}

// Intersect clips the region to rect.
func (r *Region) Intersect(rect image.Rectangle) {
	out := r.rects[:0]
	for _, existing := range r.rects {
		if x := existing.Intersect(rect); !x.Empty() {
			out = append(out, x)
		}
	}
	r.rects = out
}

// Intersects reports whether the region shares any pixel with rect.
func (r *Region) Intersects(rect image.Rectangle) bool {
	for existing := range r.All() {
		if existing.Overlaps(rect) {
			return true
		}
	}
	return false
}

// Contains reports whether the pixel (x, y) is in the region.
func (r *Region) Contains(x, y int) bool {
	p := image.Pt(x, y)
	for rect := range r.All() {
		if p.In(rect) {
			return true
		}
	}
	return false
}

// SymmetricDifference returns the area covered by exactly one of a and b.
func SymmetricDifference(a, b image.Rectangle) *Region {
	d := &Region{}
	d.rects = appendDifference(d.rects, a, b)
	d.rects = appendDifference(d.rects, b, a)
	return d
}

// appendDifference appends the pieces of a not covered by b.
// At most four disjoint bands are produced: top, bottom, left, right.
func appendDifference(dst []image.Rectangle, a, b image.Rectangle) []image.Rectangle {
	if a.Empty() {
		return dst
	}
	x := a.Intersect(b)
	if x.Empty() {
		return append(dst, a)
	}
	if a.Min.Y < x.Min.Y {
		dst = append(dst, image.Rect(a.Min.X, a.Min.Y, a.Max.X, x.Min.Y))
	}
	if x.Max.Y < a.Max.Y {
		dst = append(dst, image.Rect(a.Min.X, x.Max.Y, a.Max.X, a.Max.Y))
	}
	if a.Min.X < x.Min.X {
		dst = append(dst, image.Rect(a.Min.X, x.Min.Y, x.Min.X, x.Max.Y))
	}
	if x.Max.X < a.Max.X {
		dst = append(dst, image.Rect(x.Max.X, x.Min.Y, a.Max.X, x.Max.Y))
	}
	return dst
}
