package region

import (
	"image"
	"testing"
)

// disjoint reports whether no two rectangles in r overlap.
func disjoint(r *Region) bool {
	rects := r.Rects()
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Overlaps(rects[j]) {
				return false
			}
		}
	}
	return true
}

func TestUnion(t *testing.T) {
	tests := []struct {
		name     string
		rects    []image.Rectangle
		wantArea int
		wantB    image.Rectangle
	}{
		{"empty", nil, 0, image.Rectangle{}},
		{"single", []image.Rectangle{image.Rect(0, 0, 10, 10)}, 100, image.Rect(0, 0, 10, 10)},
		{"disjoint", []image.Rectangle{image.Rect(0, 0, 10, 10), image.Rect(20, 0, 30, 10)}, 200, image.Rect(0, 0, 30, 10)},
		{"overlap", []image.Rectangle{image.Rect(0, 0, 10, 10), image.Rect(5, 5, 15, 15)}, 175, image.Rect(0, 0, 15, 15)},
		{"contained", []image.Rectangle{image.Rect(0, 0, 10, 10), image.Rect(2, 2, 4, 4)}, 100, image.Rect(0, 0, 10, 10)},
		{"duplicate", []image.Rectangle{image.Rect(0, 0, 10, 10), image.Rect(0, 0, 10, 10)}, 100, image.Rect(0, 0, 10, 10)},
		{"empty rect ignored", []image.Rectangle{image.Rect(5, 5, 5, 10)}, 0, image.Rectangle{}},
	}
	for _, tt := range tests {
		r := New(tt.rects...)
		if got := r.Area(); got != tt.wantArea {
			t.Errorf("%s: Area() = %d, want %d", tt.name, got, tt.wantArea)
		}
		if got := r.Bounds(); got != tt.wantB {
			t.Errorf("%s: Bounds() = %v, want %v", tt.name, got, tt.wantB)
		}
		if !disjoint(r) {
			t.Errorf("%s: rects overlap: %v", tt.name, r.Rects())
		}
	}
}

func TestSubtract(t *testing.T) {
	r := New(image.Rect(0, 0, 10, 10))
	r.Subtract(image.Rect(3, 3, 6, 6))

	if got := r.Area(); got != 91 {
		t.Errorf("Area() = %d, want 91", got)
	}
	if r.Contains(4, 4) {
		t.Error("Contains(4, 4) after subtracting the hole")
	}
	if !r.Contains(0, 0) || !r.Contains(9, 9) {
		t.Error("corners lost after Subtract")
	}
	if !disjoint(r) {
		t.Errorf("rects overlap: %v", r.Rects())
	}

	r.Subtract(image.Rect(-100, -100, 100, 100))
	if !r.IsEmpty() {
		t.Errorf("IsEmpty() = false after subtracting everything: %v", r.Rects())
	}
}

func TestIntersect(t *testing.T) {
	r := New(image.Rect(0, 0, 10, 10), image.Rect(20, 20, 30, 30))
	if !r.Intersects(image.Rect(25, 25, 26, 26)) {
		t.Error("Intersects() = false for overlapping rect")
	}
	if r.Intersects(image.Rect(10, 10, 20, 20)) {
		t.Error("Intersects() = true for rect touching only edges")
	}

	r.Intersect(image.Rect(5, 5, 25, 25))
	if got := r.Area(); got != 50 {
		t.Errorf("Area() after Intersect = %d, want 50", got)
	}
}

func TestSymmetricDifference(t *testing.T) {
	tests := []struct {
		name string
		a, b image.Rectangle
		want int
	}{
		{"same", image.Rect(0, 0, 10, 10), image.Rect(0, 0, 10, 10), 0},
		{"grown", image.Rect(0, 0, 10, 10), image.Rect(0, 0, 20, 10), 100},
		{"shifted", image.Rect(0, 0, 10, 10), image.Rect(5, 0, 15, 10), 100},
		{"from empty", image.Rectangle{}, image.Rect(0, 0, 4, 4), 16},
		{"disjoint", image.Rect(0, 0, 2, 2), image.Rect(5, 5, 7, 7), 8},
	}
	for _, tt := range tests {
		d := SymmetricDifference(tt.a, tt.b)
		if got := d.Area(); got != tt.want {
			t.Errorf("%s: SymmetricDifference().Area() = %d, want %d", tt.name, got, tt.want)
		}
		if !disjoint(d) {
			t.Errorf("%s: rects overlap: %v", tt.name, d.Rects())
		}
	}
}

func TestUnionRegionAndClone(t *testing.T) {
	a := New(image.Rect(0, 0, 4, 4))
	b := a.Clone()
	b.Union(image.Rect(2, 0, 8, 4))
	if a.Area() != 16 {
		t.Errorf("Clone shares storage: original Area() = %d", a.Area())
	}
	a.UnionRegion(b)
	if got := a.Area(); got != 32 {
		t.Errorf("UnionRegion Area() = %d, want 32", got)
	}
	a.Clear()
	if !a.IsEmpty() || a.Len() != 0 {
		t.Error("Clear() left rectangles behind")
	}

	var nilRegion *Region
	if !nilRegion.IsEmpty() || nilRegion.Area() != 0 || nilRegion.Intersects(image.Rect(0, 0, 1, 1)) {
		t.Error("nil region should behave as empty")
	}
}
