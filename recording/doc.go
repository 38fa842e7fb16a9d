// Package recording decides when a layer must be re-recorded and drives
// the recording.
//
// A [Source] holds the recorded viewport of one layer and its current
// [displaylist.List]. Once per frame its owner calls
// [Source.UpdateAndExpandInvalidation] with the visible part of the layer
// and the area known to have changed. The source grows the viewport with
// hysteresis, expands the invalidation to cover area entering or leaving
// the viewport, asks a [Painter] for a new list when anything visible
// changed, and analyzes the result for a solid color.
//
//	src := recording.NewSource(image.Pt(256, 256))
//	inv := region.New(image.Rect(0, 0, 100, 100))
//	updated, stats := src.UpdateAndExpandInvalidation(painter, inv,
//		image.Pt(1000, 4000), image.Rect(0, 0, 1000, 800), frame, recording.RecordNormally)
//
// A [RasterSource] is an immutable snapshot of a Source that can be handed
// to rasterization goroutines; [RasterSource.RasterTiles] renders the
// invalidated tiles in parallel.
//
// Policy constants such as the record distance and the hysteresis skirt
// live in [Config], which can be built from options or loaded from TOML.
package recording
