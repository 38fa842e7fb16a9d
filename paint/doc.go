// Package paint defines the paint operations recorded into display lists,
// the Canvas they replay onto, and the compiled Picture form.
//
// # Architecture
//
// Paint operations are typed value structs implementing the sealed [Op]
// interface. Behavior that differs per operation (cost estimate, GPU
// suitability, external memory, replay) is expressed as plain functions
// switching over the concrete type:
//
//   - [OpCount]: approximate cost, always at least 1
//   - [GPUSuitable]: conservative per-operation GPU rasterization veto
//   - [ExternalMemory]: bytes referenced but not owned by the operation
//   - [Draw]: replay onto a [Canvas]
//
// A [Recorder] is itself a Canvas. Everything drawn into it is captured and
// compiled by [Recorder.FinishRecordingAsPicture] into an immutable
// [Picture], which can be played back any number of times:
//
//	rec := paint.NewRecorder(paint.NewRect(0, 0, 256, 256))
//	rec.DrawRect(paint.NewRect(0, 0, 256, 256), paint.Fill(gg.White))
//	pic := rec.FinishRecordingAsPicture()
//
//	pic.Playback(canvas, nil)
//
// # Canvas backends
//
// Backends register themselves using the database/sql driver pattern:
//
//	import _ "github.com/gogpu/displaylist/paint/raster"
//
//	c, err := paint.NewCanvas("raster", 800, 600)
//
// # Thread Safety
//
// Recorder is NOT safe for concurrent use. A Picture is immutable once
// compiled and can be played back from multiple goroutines at once.
package paint
