// Package displaylist records the paint operations of a layer into a
// replayable, analyzable list.
//
// # Overview
//
// A [List] owns the operations recorded for one layer region. Painters
// append [paint.Op] values; [List.Finalize] folds them into aggregate
// statistics and, when caching is enabled, compiles them into a single
// [paint.Picture]. A finalized list is immutable and can be rastered onto
// any [paint.Canvas] repeatedly and concurrently.
//
//	list := displaylist.New(image.Rect(0, 0, 256, 256), displaylist.DefaultSettings())
//	list.Append(paint.RectOp{Rect: paint.NewRect(0, 0, 256, 256), Paint: paint.Fill(gg.White)})
//	list.Finalize()
//
//	c := raster.New(256, 256)
//	list.Raster(c, nil, image.Rectangle{}, 1)
//
// # Storage modes
//
// [Settings] chooses how content is kept:
//   - RetainIndividualItems keeps each operation for item-by-item replay.
//   - UseCachedPicture compiles every operation into one Picture.
//
// A list without retained items drops operations as soon as they are
// processed, bounding memory for very long recordings. A list with both
// modes reports zero memory usage, since its items and picture hold the
// same content twice.
//
// # Contract checking
//
// Mutating a finalized list, querying an unfinalized one, or an illegal
// RemoveLast are programmer errors. With Settings.Strict the list panics
// with a [*ContractError]; otherwise the call is ignored, logged at warn
// level and counted by [List.Violations].
//
// # Tracing
//
// [TraceConfig] attaches a [TraceSink] that receives [Snapshot] values
// describing a list, optionally with its items and a base64 PNG of the
// rastered content.
//
// # Logging
//
// Logging is silent by default. Use [SetLogger] to route diagnostics to
// any [log/slog] handler.
package displaylist
