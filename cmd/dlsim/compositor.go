package main

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/displaylist/internal/cache"
	"github.com/gogpu/displaylist/recording"
	"github.com/gogpu/displaylist/region"
)

// defaultTileBudget bounds cached tile pixels.
const defaultTileBudget = 64 << 20

type tileKey struct {
	rect  image.Rectangle
	scale float64
}

// compositor keeps rastered tiles across frames and re-rasters only tiles
// that were invalidated or never seen.
type compositor struct {
	tiles   *cache.Cache[tileKey, image.Image]
	scale   float64
	workers int
}

type frameStats struct {
	rastered int
	reused   int
	dropped  int
}

func newCompositor(scale float64, workers int, budget int64) *compositor {
	return &compositor{
		tiles:   cache.New[tileKey, image.Image](budget, cache.ImageBytes),
		scale:   scale,
		workers: workers,
	}
}

// invalidate drops cached tiles that overlap inv, given in layer pixels.
func (c *compositor) invalidate(inv *region.Region) int {
	if inv.IsEmpty() {
		return 0
	}
	scaled := &region.Region{}
	for r := range inv.All() {
		scaled.Union(scaledRect(r, c.scale))
	}
	return c.tiles.DeleteFunc(func(k tileKey) bool {
		return k.scale != c.scale || scaled.Intersects(k.rect)
	})
}

// frame assembles the visible area of rs, rastering missing tiles.
func (c *compositor) frame(rs *recording.RasterSource, visible image.Rectangle) (image.Image, frameStats) {
	var stats frameStats
	target := scaledRect(visible, c.scale)
	rects := rs.TileRects(region.New(visible), c.scale)

	have := make(map[image.Rectangle]image.Image, len(rects))
	var missing []image.Rectangle
	for _, r := range rects {
		if img, ok := c.tiles.Get(tileKey{rect: r, scale: c.scale}); ok {
			have[r] = img
			stats.reused++
			continue
		}
		missing = append(missing, r)
	}
	for _, tile := range rs.RasterRects(missing, c.scale, c.workers) {
		c.tiles.Set(tileKey{rect: tile.Rect, scale: c.scale}, tile.Image)
		have[tile.Rect] = tile.Image
		stats.rastered++
	}

	dst := image.NewRGBA(image.Rectangle{Max: target.Size()})
	for _, r := range rects {
		xdraw.Draw(dst, r.Sub(target.Min), have[r], image.Point{}, xdraw.Src)
	}
	return dst, stats
}
