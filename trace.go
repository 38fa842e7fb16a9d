package displaylist

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/displaylist/paint"
	"github.com/gogpu/displaylist/paint/raster"
)

// DefaultThumbnailMax is the default longest side of a traced picture.
const DefaultThumbnailMax = 256

// TraceSink receives diagnostic snapshots. Snapshots are purely
// observational; nothing reads them back.
type TraceSink interface {
	TraceSnapshot(s *Snapshot)
}

// TraceConfig controls what EmitTraceSnapshot produces. A nil Sink
// disables tracing. ThumbnailMax bounds the longest side of the traced
// picture in pixels; zero keeps the full layer size.
type TraceConfig struct {
	Sink           TraceSink `toml:"-"`
	IncludeItems   bool      `toml:"include_items"`
	IncludePicture bool      `toml:"include_picture"`
	ThumbnailMax   int       `toml:"thumbnail_max"`
}

// DefaultTraceConfig returns a disabled config with item and picture
// capture preset.
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		IncludeItems:   true,
		IncludePicture: true,
		ThumbnailMax:   DefaultThumbnailMax,
	}
}

// Snapshot describes a list at one point in time.
type Snapshot struct {
	LayerRect     image.Rectangle `json:"layer_rect"`
	OpCount       int             `json:"op_count"`
	GPUSuitable   bool            `json:"gpu_suitable"`
	MemoryBytes   int64           `json:"memory_bytes"`
	Items         []ItemSnapshot  `json:"items,omitempty"`
	// PictureBase64 is a base64 PNG of the rastered content, not a
	// serialized picture. It cannot be played back.
	PictureBase64 string          `json:"picture_png,omitempty"`
	PictureSize   image.Point     `json:"picture_size,omitzero"`
}

// ItemSnapshot describes one retained item.
type ItemSnapshot struct {
	Kind        string      `json:"kind"`
	OpCount     int         `json:"op_count"`
	GPUSuitable bool        `json:"gpu_suitable"`
	Bounds      *paint.Rect `json:"bounds,omitempty"`
}

// AsSnapshot builds a snapshot of the list. The picture is rastered near
// cfg.ThumbnailMax, downscaled to it and PNG encoded as base64.
func (l *List) AsSnapshot(cfg TraceConfig) (*Snapshot, error) {
	s := &Snapshot{
		LayerRect:   l.layerRect,
		OpCount:     l.opCount,
		GPUSuitable: l.allGPUSuitable,
		MemoryBytes: l.ApproximateMemoryUsage(),
	}
	if l.picture != nil {
		s.GPUSuitable = l.picture.SuitableForGPURasterization()
	}
	if cfg.IncludeItems {
		for op := range l.items.All() {
			item := ItemSnapshot{
				Kind:        op.Kind().String(),
				OpCount:     paint.OpCount(op),
				GPUSuitable: paint.GPUSuitable(op),
			}
			if r, ok := paint.Bounds(op); ok {
				item.Bounds = &r
			}
			s.Items = append(s.Items, item)
		}
	}
	if cfg.IncludePicture && l.finalized && !l.layerRect.Empty() {
		img := l.rasterImage(cfg.ThumbnailMax)
		img = thumbnail(img, cfg.ThumbnailMax)
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("displaylist: encode snapshot: %w", err)
		}
		s.PictureBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
		s.PictureSize = img.Bounds().Size()
	}
	return s, nil
}

// EmitTraceSnapshot sends a snapshot to the configured sink, if any.
func (l *List) EmitTraceSnapshot() {
	cfg := l.settings.Trace
	if cfg.Sink == nil {
		return
	}
	s, err := l.AsSnapshot(cfg)
	if err != nil {
		Logger().Warn("displaylist: trace snapshot failed", "err", err)
		return
	}
	cfg.Sink.TraceSnapshot(s)
}

// rasterImage rasters the list at no more than twice maxSide on its longest
// side, so memory stays bounded by the thumbnail size rather than the layer
// size. The extra resolution is smoothed away by thumbnail.
func (l *List) rasterImage(maxSide int) image.Image {
	size := l.layerRect.Size()
	scale := 1.0
	if longest := max(size.X, size.Y); maxSide > 0 && longest > 2*maxSide {
		scale = float64(2*maxSide) / float64(longest)
	}
	w := max(1, int(math.Round(float64(size.X)*scale)))
	h := max(1, int(math.Round(float64(size.Y)*scale)))
	c := raster.New(w, h)
	c.Scale(scale, scale)
	c.Translate(-float64(l.layerRect.Min.X), -float64(l.layerRect.Min.Y))
	l.Raster(c, nil, image.Rectangle{}, 1)
	return c.Image()
}

// thumbnail scales img down so its longest side is at most maxSide.
func thumbnail(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	longest := max(b.Dx(), b.Dy())
	if maxSide <= 0 || longest <= maxSide {
		return img
	}
	w := max(1, b.Dx()*maxSide/longest)
	h := max(1, b.Dy()*maxSide/longest)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// SlogSink logs a summary of each snapshot at debug level.
type SlogSink struct {
	// Logger defaults to the package logger.
	Logger *slog.Logger
}

// TraceSnapshot implements TraceSink.
func (s SlogSink) TraceSnapshot(snap *Snapshot) {
	l := s.Logger
	if l == nil {
		l = Logger()
	}
	l.Debug("displaylist: snapshot",
		"layer_rect", snap.LayerRect.String(),
		"op_count", snap.OpCount,
		"gpu_suitable", snap.GPUSuitable,
		"memory_bytes", snap.MemoryBytes,
		"items", len(snap.Items),
		"picture_bytes", len(snap.PictureBase64),
	)
}

// JSONSink writes each snapshot as one JSON document per line.
// It is safe for concurrent use.
type JSONSink struct {
	mu  sync.Mutex
	enc *json.Encoder
	err error
}

// NewJSONSink creates a sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// TraceSnapshot implements TraceSink.
func (s *JSONSink) TraceSnapshot(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	s.err = s.enc.Encode(snap)
}

// Err returns the first write error, if any.
func (s *JSONSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
