package main

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/paint"
	"github.com/gogpu/displaylist/recording"
)

// Scenario is a scripted scroll over a tall striped page.
type Scenario struct {
	Width          int     `toml:"width"`
	Height         int     `toml:"height"`
	ViewportWidth  int     `toml:"viewport_width"`
	ViewportHeight int     `toml:"viewport_height"`
	Scale          float64 `toml:"scale"`
	RowHeight      int     `toml:"row_height"`
	Background     string  `toml:"background"`

	Recording recording.Config `toml:"recording"`
	Frames    []Frame          `toml:"frame"`
}

// Frame is one step of the scroll. Invalidate lists x0, y0, x1, y1 layer
// rectangles repainted by the page before the frame.
type Frame struct {
	ScrollY    int      `toml:"scroll_y"`
	Invalidate [][4]int `toml:"invalidate"`
}

// Visible returns the visible layer rectangle of f.
func (s *Scenario) Visible(f Frame) image.Rectangle {
	r := image.Rect(0, f.ScrollY, s.ViewportWidth, f.ScrollY+s.ViewportHeight)
	return r.Intersect(image.Rect(0, 0, s.Width, s.Height))
}

func loadScenario(r io.Reader) (*Scenario, error) {
	s := &Scenario{
		Width:          800,
		Height:         4000,
		ViewportWidth:  800,
		ViewportHeight: 600,
		Scale:          1,
		RowHeight:      40,
		Background:     "#ffffff",
		Recording:      recording.DefaultConfig(),
	}
	md, err := toml.NewDecoder(r).Decode(s)
	if err != nil {
		return nil, fmt.Errorf("dlsim: decode scenario: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("dlsim: unknown scenario key %q", undecoded[0].String())
	}
	if err := s.Recording.Validate(); err != nil {
		return nil, err
	}
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return nil, fmt.Errorf("dlsim: layer size %dx%d is empty", s.Width, s.Height)
	case s.ViewportWidth <= 0 || s.ViewportHeight <= 0:
		return nil, fmt.Errorf("dlsim: viewport size %dx%d is empty", s.ViewportWidth, s.ViewportHeight)
	case s.Scale <= 0:
		return nil, fmt.Errorf("dlsim: scale must be positive, got %g", s.Scale)
	case s.RowHeight <= 0:
		return nil, fmt.Errorf("dlsim: row_height must be positive, got %d", s.RowHeight)
	case len(s.Frames) == 0:
		return nil, fmt.Errorf("dlsim: scenario has no frames")
	}
	return s, nil
}

// stripedPage paints alternating rows with a dot every fifth row. Only
// rows crossing the viewport are painted.
type stripedPage struct {
	width     int
	rowHeight int
	calls     int
}

func (p *stripedPage) PaintContentsToDisplayList(viewport image.Rectangle, control recording.PaintingControl, settings displaylist.Settings) *displaylist.List {
	p.calls++
	if !control.Constructs() {
		return nil
	}
	l := displaylist.New(viewport, settings)
	if control.Draws() {
		p.paintRows(l, viewport)
	}
	l.Finalize()
	return l
}

func (p *stripedPage) paintRows(l *displaylist.List, viewport image.Rectangle) {
	h := p.rowHeight
	w := float64(p.width)
	for row := viewport.Min.Y / h; row*h < viewport.Max.Y; row++ {
		y := float64(row * h)
		hue := math.Mod(float64(row)*23, 360)
		l.Append(paint.RectOp{Rect: paint.NewRect(0, y, w, float64(h)), Paint: paint.Fill(gg.HSL(hue, 0.6, 0.55))})

		if row%5 == 0 {
			dot := gg.NewPath()
			dot.Circle(w/2, y+float64(h)/2, float64(h)/3)
			l.Append(paint.SaveOp{})
			l.Append(paint.PathOp{Path: dot, Paint: paint.Fill(gg.White), Rule: gg.FillRuleNonZero})
			l.Append(paint.RestoreOp{})
		}
	}
}
