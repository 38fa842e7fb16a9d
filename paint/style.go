package paint

import "github.com/gogpu/gg"

// Style selects whether a shape is filled or stroked.
type Style uint8

const (
	// StyleFill fills the interior of the shape.
	StyleFill Style = iota
	// StyleStroke strokes the outline of the shape.
	StyleStroke
)

// String returns the string representation of a Style.
func (s Style) String() string {
	if s == StyleStroke {
		return "Stroke"
	}
	return "Fill"
}

// Stroke defines the style for stroking shapes.
type Stroke struct {
	// Width is the line width in pixels.
	Width float64
	// Cap is the shape of line endpoints.
	Cap gg.LineCap
	// Join is the shape of line joins.
	Join gg.LineJoin
	// MiterLimit is the limit for miter joins.
	MiterLimit float64
	// Dash holds alternating dash and gap lengths. Nil means a solid line.
	Dash []float64
	// DashOffset is the starting offset into the dash pattern.
	DashOffset float64
}

// DefaultStroke returns a Stroke with default settings.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		Cap:        gg.LineCapButt,
		Join:       gg.LineJoinMiter,
		MiterLimit: 4.0,
	}
}

// Clone creates a deep copy of the Stroke.
func (s Stroke) Clone() Stroke {
	result := s
	if s.Dash != nil {
		result.Dash = make([]float64, len(s.Dash))
		copy(result.Dash, s.Dash)
	}
	return result
}

// Paint describes how a shape is drawn: solid color, fill or stroke,
// stroke geometry and anti-aliasing.
type Paint struct {
	Color     gg.RGBA
	Style     Style
	Stroke    Stroke
	AntiAlias bool
}

// Fill returns an anti-aliased fill paint of the given color.
func Fill(c gg.RGBA) Paint {
	return Paint{Color: c, Style: StyleFill, Stroke: DefaultStroke(), AntiAlias: true}
}

// StrokeWith returns an anti-aliased stroke paint of the given color and width.
func StrokeWith(c gg.RGBA, width float64) Paint {
	s := DefaultStroke()
	s.Width = width
	return Paint{Color: c, Style: StyleStroke, Stroke: s, AntiAlias: true}
}

// IsOpaque reports whether the paint color is fully opaque.
func (p Paint) IsOpaque() bool {
	return p.Color.A >= 1
}

// IsTransparent reports whether the paint draws nothing at all.
func (p Paint) IsTransparent() bool {
	return p.Color.A <= 0
}

// hasBadDash reports whether the stroke uses a dash pattern GPU rasterization
// handles poorly: anything other than a single dash/gap pair.
func (p Paint) hasBadDash() bool {
	return p.Style == StyleStroke && len(p.Stroke.Dash) > 0 && len(p.Stroke.Dash) != 2
}
