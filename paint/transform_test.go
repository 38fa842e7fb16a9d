package paint

import "testing"

func TestTransformMapRect(t *testing.T) {
	tests := []struct {
		name string
		m    Transform
		want Rect
	}{
		{"identity", Identity(), NewRect(1, 2, 3, 4)},
		{"translate", Identity().Translate(10, 20), NewRect(11, 22, 3, 4)},
		{"scale", Identity().Scale(2, 3), NewRect(2, 6, 6, 12)},
		{"translate then scale", Identity().Translate(10, 0).Scale(2, 2), NewRect(12, 4, 6, 8)},
		{"scale then translate", Identity().Scale(2, 2).Translate(10, 0), NewRect(22, 4, 6, 8)},
	}
	for _, tt := range tests {
		if got := tt.m.MapRect(NewRect(1, 2, 3, 4)); got != tt.want {
			t.Errorf("%s: MapRect() = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestCanvasStateStack(t *testing.T) {
	s := NewCanvasState(100, 100)
	s.Push()
	s.Translate(10, 10)
	s.ClipRect(NewRect(0, 0, 20, 20))

	if s.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", s.Depth())
	}
	if want := NewRect(10, 10, 20, 20); s.Clip != want {
		t.Errorf("Clip = %+v, want %+v", s.Clip, want)
	}
	if got, want := s.DeviceRect(NewRect(15, 15, 50, 50)), NewRect(25, 25, 5, 5); got != want {
		t.Errorf("DeviceRect() = %+v, want %+v", got, want)
	}

	if !s.Pop() {
		t.Fatal("Pop() = false with a saved state")
	}
	if s.Matrix != Identity() || s.Clip != NewRect(0, 0, 100, 100) {
		t.Errorf("state after Pop() = %+v", s)
	}
	if s.Pop() {
		t.Error("Pop() on empty stack = true")
	}
}
