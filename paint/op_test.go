package paint

import (
	"fmt"
	"image"
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// spyCanvas records every call it receives as a short string.
type spyCanvas struct {
	calls []string
}

func (s *spyCanvas) Save()                    { s.calls = append(s.calls, "Save") }
func (s *spyCanvas) Restore()                 { s.calls = append(s.calls, "Restore") }
func (s *spyCanvas) Translate(dx, dy float64) { s.calls = append(s.calls, fmt.Sprintf("Translate(%g,%g)", dx, dy)) }
func (s *spyCanvas) Scale(sx, sy float64)     { s.calls = append(s.calls, fmt.Sprintf("Scale(%g,%g)", sx, sy)) }
func (s *spyCanvas) ClipRect(r Rect)          { s.calls = append(s.calls, fmt.Sprintf("ClipRect(%g,%g)", r.Width(), r.Height())) }
func (s *spyCanvas) Clear(gg.RGBA)            { s.calls = append(s.calls, "Clear") }
func (s *spyCanvas) DrawRect(r Rect, _ Paint) {
	s.calls = append(s.calls, fmt.Sprintf("DrawRect(%g,%g)", r.MinX, r.MinY))
}
func (s *spyCanvas) DrawPath(*gg.Path, Paint, gg.FillRule)               { s.calls = append(s.calls, "DrawPath") }
func (s *spyCanvas) DrawImage(image.Image, Rect, float64)                { s.calls = append(s.calls, "DrawImage") }
func (s *spyCanvas) DrawText(string, float64, float64, text.Face, Paint) { s.calls = append(s.calls, "DrawText") }
func (s *spyCanvas) DrawPicture(pic *Picture) {
	s.calls = append(s.calls, "DrawPicture")
}

func concavePath() *gg.Path {
	p := gg.NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(5, 3)
	p.LineTo(10, 10)
	p.LineTo(0, 10)
	p.Close()
	return p
}

// starPath is a five-pointed star drawn as one self-intersecting contour.
func starPath() *gg.Path {
	p := gg.NewPath()
	for i := range 5 {
		a := math.Pi/2 + float64(i)*4*math.Pi/5
		x, y := 50+40*math.Cos(a), 50+40*math.Sin(a)
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
	return p
}

func squarePath() *gg.Path {
	p := gg.NewPath()
	p.Rectangle(0, 0, 10, 10)
	return p
}

func TestOpKindString(t *testing.T) {
	tests := []struct {
		kind OpKind
		want string
	}{
		{OpSave, "Save"},
		{OpClipRect, "ClipRect"},
		{OpRect, "Rect"},
		{OpPicture, "Picture"},
		{OpKind(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("OpKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestOpCount(t *testing.T) {
	rec := NewRecorder(NewRect(0, 0, 10, 10))
	for range 4 {
		rec.DrawRect(NewRect(0, 0, 1, 1), Fill(gg.Red))
	}
	pic := rec.FinishRecordingAsPicture()

	tests := []struct {
		name string
		op   Op
		want int
	}{
		{"save", SaveOp{}, 1},
		{"rect", RectOp{Rect: NewRect(0, 0, 1, 1)}, 1},
		{"picture", PictureOp{Picture: pic}, 4},
		{"nil picture", PictureOp{}, 1},
	}
	for _, tt := range tests {
		if got := OpCount(tt.op); got != tt.want {
			t.Errorf("%s: OpCount() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestGPUSuitable(t *testing.T) {
	aa := Fill(gg.Black)
	noAA := aa
	noAA.AntiAlias = false
	dashed := StrokeWith(gg.Black, 2)
	dashed.Stroke.Dash = []float64{1, 2, 3}
	pairDash := StrokeWith(gg.Black, 2)
	pairDash.Stroke.Dash = []float64{4, 4}

	tests := []struct {
		name string
		op   Op
		want bool
	}{
		{"convex aa path", PathOp{Path: squarePath(), Paint: aa}, true},
		{"concave aa path", PathOp{Path: concavePath(), Paint: aa}, false},
		{"concave aliased path", PathOp{Path: concavePath(), Paint: noAA}, true},
		{"star aa path", PathOp{Path: starPath(), Paint: aa}, false},
		{"odd dash rect", RectOp{Rect: NewRect(0, 0, 5, 5), Paint: dashed}, false},
		{"pair dash rect", RectOp{Rect: NewRect(0, 0, 5, 5), Paint: pairDash}, true},
		{"image", ImageOp{Image: image.NewRGBA(image.Rect(0, 0, 2, 2))}, true},
		{"clear", ClearOp{Color: gg.White}, true},
	}
	for _, tt := range tests {
		if got := GPUSuitable(tt.op); got != tt.want {
			t.Errorf("%s: GPUSuitable() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestExternalMemory(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 20))
	if got := ExternalMemory(ImageOp{Image: img}); got != 800 {
		t.Errorf("ExternalMemory(image 10x20) = %d, want 800", got)
	}
	if got := ExternalMemory(RectOp{}); got != 0 {
		t.Errorf("ExternalMemory(rect) = %d, want 0", got)
	}

	rec := NewRecorder(NewRect(0, 0, 10, 10))
	rec.DrawRect(NewRect(0, 0, 1, 1), Fill(gg.Red))
	pic := rec.FinishRecordingAsPicture()
	if got := ExternalMemory(PictureOp{Picture: pic}); got != pic.ApproximateBytesUsed() {
		t.Errorf("ExternalMemory(picture) = %d, want %d", got, pic.ApproximateBytesUsed())
	}
}

func TestIsConvex(t *testing.T) {
	twoContours := gg.NewPath()
	twoContours.Rectangle(0, 0, 5, 5)
	twoContours.Rectangle(10, 10, 5, 5)

	tests := []struct {
		name string
		path *gg.Path
		want bool
	}{
		{"nil", nil, true},
		{"square", squarePath(), true},
		{"circle", func() *gg.Path { p := gg.NewPath(); p.Circle(50, 50, 20); return p }(), true},
		{"arrow notch", concavePath(), false},
		{"two contours", twoContours, false},
		{"star", starPath(), false},
	}
	for _, tt := range tests {
		if got := IsConvex(tt.path); got != tt.want {
			t.Errorf("%s: IsConvex() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBounds(t *testing.T) {
	r, ok := Bounds(RectOp{Rect: NewRect(10, 10, 20, 20), Paint: StrokeWith(gg.Black, 4)})
	if !ok {
		t.Fatal("Bounds(rect) not known")
	}
	if r != (Rect{MinX: 8, MinY: 8, MaxX: 32, MaxY: 32}) {
		t.Errorf("Bounds(stroked rect) = %+v", r)
	}
	if _, ok := Bounds(TextOp{Text: "hi"}); ok {
		t.Error("Bounds(text) should be unknown")
	}
}

func TestDrawDispatch(t *testing.T) {
	ops := []Op{
		SaveOp{},
		TranslateOp{DX: 1, DY: 2},
		ScaleOp{SX: 2, SY: 2},
		ClipRectOp{Rect: NewRect(0, 0, 4, 4)},
		RectOp{Rect: NewRect(3, 4, 1, 1)},
		PathOp{Path: squarePath()},
		ImageOp{},
		TextOp{Text: "x"},
		ClearOp{},
		RestoreOp{},
	}
	spy := &spyCanvas{}
	for _, op := range ops {
		Draw(op, spy, nil)
	}
	want := []string{
		"Save", "Translate(1,2)", "Scale(2,2)", "ClipRect(4,4)", "DrawRect(3,4)",
		"DrawPath", "DrawImage", "DrawText", "Clear", "Restore",
	}
	if fmt.Sprint(spy.calls) != fmt.Sprint(want) {
		t.Errorf("Draw calls = %v, want %v", spy.calls, want)
	}
}
