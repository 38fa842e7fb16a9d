package parallel

import (
	"image"
	"math/bits"
	"sync/atomic"
)

// DirtyTiles tracks which tiles of an area need rasterizing, one bit per
// tile packed into uint64 words. All methods are safe for concurrent use.
type DirtyTiles struct {
	// words holds bit ty*tilesX+tx for tile (tx, ty).
	words []atomic.Uint64

	width, height  int
	tilesX, tilesY int
}

// NewDirtyTiles creates a tracker for a width x height pixel area with
// every tile clean. Returns nil if the area is empty.
func NewDirtyTiles(width, height int) *DirtyTiles {
	tilesX, tilesY := TileCount(width, height)
	if tilesX == 0 {
		return nil
	}
	return &DirtyTiles{
		words:  make([]atomic.Uint64, (tilesX*tilesY+63)/64),
		width:  width,
		height: height,
		tilesX: tilesX,
		tilesY: tilesY,
	}
}

// Grid returns the number of tile columns and rows.
func (d *DirtyTiles) Grid() (tilesX, tilesY int) {
	return d.tilesX, d.tilesY
}

// Mark marks tile (tx, ty). Out-of-range tiles are ignored.
func (d *DirtyTiles) Mark(tx, ty int) {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		return
	}
	idx := ty*d.tilesX + tx
	d.words[idx/64].Or(1 << (idx & 63))
}

// MarkRect marks every tile that intersects the pixel rectangle r.
func (d *DirtyTiles) MarkRect(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, d.width, d.height))
	if r.Empty() {
		return
	}
	tx1, ty1 := r.Min.X/TileWidth, r.Min.Y/TileHeight
	tx2, ty2 := (r.Max.X-1)/TileWidth, (r.Max.Y-1)/TileHeight
	for ty := ty1; ty <= ty2; ty++ {
		for tx := tx1; tx <= tx2; tx++ {
			d.Mark(tx, ty)
		}
	}
}

// MarkAll marks every tile.
func (d *DirtyTiles) MarkAll() {
	total := d.tilesX * d.tilesY
	full := total / 64
	for i := range full {
		d.words[i].Store(^uint64(0))
	}
	if rem := total % 64; rem > 0 {
		d.words[full].Store(uint64(1)<<rem - 1)
	}
}

// IsDirty reports whether tile (tx, ty) is marked.
func (d *DirtyTiles) IsDirty(tx, ty int) bool {
	if tx < 0 || tx >= d.tilesX || ty < 0 || ty >= d.tilesY {
		return false
	}
	idx := ty*d.tilesX + tx
	return d.words[idx/64].Load()&(1<<(idx&63)) != 0
}

// Count returns the number of marked tiles.
func (d *DirtyTiles) Count() int {
	n := 0
	for i := range d.words {
		n += bits.OnesCount64(d.words[i].Load())
	}
	return n
}

// TakeRects atomically clears every mark and returns the pixel rectangles
// of the tiles that were marked, in row-major order.
func (d *DirtyTiles) TakeRects() []image.Rectangle {
	var rects []image.Rectangle
	for wi := range d.words {
		word := d.words[wi].Swap(0)
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			word &^= 1 << bit
			idx := wi*64 + bit
			rects = append(rects, TileRect(idx%d.tilesX, idx/d.tilesX, d.width, d.height))
		}
	}
	return rects
}
