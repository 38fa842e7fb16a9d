// Package parallel rasterizes recorded content in independent tiles.
//
// A layer is divided into 64x64 pixel tiles. DirtyTiles tracks which tiles
// an invalidation touches and WorkerPool renders them concurrently; each
// tile owns its own canvas, so workers share nothing but the immutable
// recording they replay.
package parallel

import "image"

// Tile size constants.
const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the height of a tile in pixels.
	TileHeight = 64
)

// TileCount returns the number of tile columns and rows needed to cover a
// width x height area.
func TileCount(width, height int) (tilesX, tilesY int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return (width + TileWidth - 1) / TileWidth, (height + TileHeight - 1) / TileHeight
}

// TileRect returns the pixel rectangle of tile (tx, ty), clipped to a
// width x height area. Edge tiles may be smaller than a full tile.
func TileRect(tx, ty, width, height int) image.Rectangle {
	r := image.Rect(tx*TileWidth, ty*TileHeight, (tx+1)*TileWidth, (ty+1)*TileHeight)
	return r.Intersect(image.Rect(0, 0, width, height))
}
