package recording

import "github.com/gogpu/displaylist"

// Option configures a Source during creation.
//
// Example:
//
//	src := recording.NewSource(image.Pt(256, 256),
//	    recording.WithPixelRecordDistance(4000),
//	    recording.WithListSettings(displaylist.Settings{UseCachedPicture: true}),
//	)
type Option func(*Config)

// WithConfig replaces the whole policy, typically one from LoadConfig.
// Later options still apply on top of it.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// WithPixelRecordDistance sets how far past the visible rectangle content
// is recorded.
func WithPixelRecordDistance(d int) Option {
	return func(c *Config) {
		c.PixelRecordDistance = d
	}
}

// WithHysteresisSkirt sets how far the viewport may move before a new
// recording is forced.
func WithHysteresisSkirt(skirt int) Option {
	return func(c *Config) {
		c.HysteresisSkirt = skirt
	}
}

// WithSolidColorMaxOps sets the op count above which solid color analysis
// is skipped.
func WithSolidColorMaxOps(n int) Option {
	return func(c *Config) {
		c.SolidColorMaxOps = n
	}
}

// WithListSettings sets the settings of recorded lists.
func WithListSettings(s displaylist.Settings) Option {
	return func(c *Config) {
		c.List = s
	}
}

// WithTraceSink sends a snapshot of every new list to sink.
func WithTraceSink(sink displaylist.TraceSink) Option {
	return func(c *Config) {
		c.List.Trace.Sink = sink
	}
}

// WithDebugClear makes raster sources clear with DebugClearColor.
func WithDebugClear(enabled bool) Option {
	return func(c *Config) {
		c.ClearCanvasWithDebugColor = enabled
	}
}
