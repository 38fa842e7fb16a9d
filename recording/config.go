package recording

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/displaylist"
)

// Default policy values.
const (
	// DefaultPixelRecordDistance is how far beyond the visible rectangle
	// content is recorded, in layer pixels.
	DefaultPixelRecordDistance = 8000

	// DefaultHysteresisSkirt is how far a new viewport may reach past the
	// recorded one before a new recording is forced.
	DefaultHysteresisSkirt = 512

	// DefaultSolidColorMaxOps is the op count above which solid color
	// analysis is skipped.
	DefaultSolidColorMaxOps = 10
)

// Config holds the policy of a Source. The zero value is not useful; start
// from DefaultConfig.
type Config struct {
	PixelRecordDistance int `toml:"pixel_record_distance"`
	HysteresisSkirt     int `toml:"hysteresis_skirt"`
	SolidColorMaxOps    int `toml:"solid_color_max_ops"`

	// SlowDownRasterScaleFactor repeats every recording this many times.
	// Values above one are a benchmarking aid.
	SlowDownRasterScaleFactor int `toml:"slow_down_raster_scale_factor"`

	// ClearCanvasWithDebugColor makes raster sources clear tiles with
	// DebugClearColor so unpainted area stands out.
	ClearCanvasWithDebugColor bool `toml:"clear_canvas_with_debug_color"`

	// List is used for every list the painter creates.
	List displaylist.Settings `toml:"list"`
}

// DefaultConfig returns the default policy.
func DefaultConfig() Config {
	return Config{
		PixelRecordDistance:       DefaultPixelRecordDistance,
		HysteresisSkirt:           DefaultHysteresisSkirt,
		SolidColorMaxOps:          DefaultSolidColorMaxOps,
		SlowDownRasterScaleFactor: 1,
		List:                      displaylist.DefaultSettings(),
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.PixelRecordDistance < 0:
		return fmt.Errorf("recording: pixel_record_distance must not be negative, got %d", c.PixelRecordDistance)
	case c.HysteresisSkirt < 0:
		return fmt.Errorf("recording: hysteresis_skirt must not be negative, got %d", c.HysteresisSkirt)
	case c.SolidColorMaxOps < 0:
		return fmt.Errorf("recording: solid_color_max_ops must not be negative, got %d", c.SolidColorMaxOps)
	case c.SlowDownRasterScaleFactor < 0:
		return fmt.Errorf("recording: slow_down_raster_scale_factor must not be negative, got %d", c.SlowDownRasterScaleFactor)
	case c.List.ProcessThreshold < 0:
		return fmt.Errorf("recording: list.process_threshold must not be negative, got %d", c.List.ProcessThreshold)
	}
	return nil
}

// LoadConfig decodes TOML from r on top of DefaultConfig. Unknown keys
// are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("recording: decode config: %w", err)
	}
	return finishLoad(cfg, md)
}

// LoadConfigFile reads a TOML config file on top of DefaultConfig.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("recording: read config %s: %w", path, err)
	}
	return finishLoad(cfg, md)
}

func finishLoad(cfg Config, md toml.MetaData) (Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("recording: unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WriteConfig encodes cfg as TOML.
func WriteConfig(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("recording: encode config: %w", err)
	}
	return nil
}
