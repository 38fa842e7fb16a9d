package paint

import (
	"math"

	"github.com/gogpu/gg"
)

const (
	// convexTolerance is the cross product magnitude treated as collinear.
	convexTolerance = 1e-9
	// windingTolerance absorbs rounding in the summed turning angle.
	windingTolerance = 1e-6
)

// IsConvex reports whether path consists of a single convex contour that
// winds exactly once. Curve control points are treated as polygon vertices,
// which can only make the answer more conservative. A nil or empty path is
// convex.
func IsConvex(path *gg.Path) bool {
	if path == nil {
		return true
	}

	var pts []gg.Point
	subpaths := 0
	path.Iterate(func(verb gg.PathVerb, coords []float64) {
		if verb == gg.MoveTo {
			subpaths++
		}
		pts = appendCoords(pts, coords)
	})
	if subpaths > 1 {
		return false
	}

	// Drop a closing point that repeats the start.
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	if len(pts) < 4 {
		return true
	}

	sign := 0
	turn := 0.0
	n := len(pts)
	for i := range n {
		a, b, c := pts[i], pts[(i+1)%n], pts[(i+2)%n]
		ux, uy := b.X-a.X, b.Y-a.Y
		vx, vy := c.X-b.X, c.Y-b.Y
		cross := ux*vy - uy*vx
		dot := ux*vx + uy*vy
		if math.Abs(cross) < convexTolerance {
			if dot < 0 {
				// The contour doubles back on itself.
				return false
			}
			continue
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
		turn += math.Atan2(cross, dot)
	}
	// A star turns the same way at every vertex but winds more than once.
	return math.Abs(turn) <= 2*math.Pi+windingTolerance
}

// appendCoords appends the x, y pairs of a path verb's coordinates.
func appendCoords(pts []gg.Point, coords []float64) []gg.Point {
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, gg.Point{X: coords[i], Y: coords[i+1]})
	}
	return pts
}

// pathBounds returns the bounding box of all points of path, including
// curve control points.
func pathBounds(path *gg.Path) (Rect, bool) {
	if path == nil {
		return Rect{}, true
	}
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	seen := false
	add := func(p gg.Point) {
		seen = true
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	path.Iterate(func(_ gg.PathVerb, coords []float64) {
		for i := 0; i+1 < len(coords); i += 2 {
			add(gg.Point{X: coords[i], Y: coords[i+1]})
		}
	})
	if !seen {
		return Rect{}, true
	}
	return r, true
}
