package paint

// Transform is an axis-aligned affine transform: a scale followed by a
// translation. It is all a Canvas can express, so rectangles stay
// rectangles.
type Transform struct {
	SX, SY float64
	TX, TY float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{SX: 1, SY: 1}
}

// Translate returns t followed, in local space, by a translation.
func (t Transform) Translate(dx, dy float64) Transform {
	t.TX += t.SX * dx
	t.TY += t.SY * dy
	return t
}

// Scale returns t followed, in local space, by a scale.
func (t Transform) Scale(sx, sy float64) Transform {
	t.SX *= sx
	t.SY *= sy
	return t
}

// MapRect maps a local rectangle to device space.
func (t Transform) MapRect(r Rect) Rect {
	return r.Scale(t.SX, t.SY).Offset(t.TX, t.TY)
}

// CanvasState is the transform and device-space clip of a canvas, with a
// stack for Save/Restore. Canvas backends embed it to share bookkeeping.
type CanvasState struct {
	Matrix Transform
	Clip   Rect
	stack  []savedState
}

type savedState struct {
	matrix Transform
	clip   Rect
}

// NewCanvasState returns the state of a fresh width x height canvas.
func NewCanvasState(width, height int) CanvasState {
	return CanvasState{
		Matrix: Identity(),
		Clip:   NewRect(0, 0, float64(width), float64(height)),
	}
}

// Push saves the current transform and clip.
func (s *CanvasState) Push() {
	s.stack = append(s.stack, savedState{matrix: s.Matrix, clip: s.Clip})
}

// Pop restores the last saved state. It reports false if the stack was empty.
func (s *CanvasState) Pop() bool {
	if len(s.stack) == 0 {
		return false
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.Matrix, s.Clip = top.matrix, top.clip
	return true
}

// Depth returns the number of saved states.
func (s *CanvasState) Depth() int {
	return len(s.stack)
}

// Translate updates the transform.
func (s *CanvasState) Translate(dx, dy float64) {
	s.Matrix = s.Matrix.Translate(dx, dy)
}

// Scale updates the transform.
func (s *CanvasState) Scale(sx, sy float64) {
	s.Matrix = s.Matrix.Scale(sx, sy)
}

// ClipRect intersects the device clip with a local rectangle.
func (s *CanvasState) ClipRect(r Rect) {
	s.Clip = s.Clip.Intersect(s.Matrix.MapRect(r))
}

// DeviceRect maps a local rectangle to device space, clipped.
func (s *CanvasState) DeviceRect(r Rect) Rect {
	return s.Matrix.MapRect(r).Intersect(s.Clip)
}
