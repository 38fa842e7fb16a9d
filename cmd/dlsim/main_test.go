package main

import (
	"bufio"
	"bytes"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gg"
)

func TestLoadScenario(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"minimal", "[[frame]]\nscroll_y = 0\n", ""},
		{"no frames", "width = 100\n", "no frames"},
		{"bad scale", "scale = 0.0\n[[frame]]\n", "scale must be positive"},
		{"unknown key", "hieght = 10\n[[frame]]\n", "unknown scenario key"},
		{"bad recording", "[recording]\nhysteresis_skirt = -4\n[[frame]]\n", "hysteresis_skirt"},
	}
	for _, tt := range tests {
		sc, err := loadScenario(strings.NewReader(tt.input))
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%s: loadScenario() error = %v", tt.name, err)
			} else if sc.Width != 800 || sc.Recording.HysteresisSkirt != 512 {
				t.Errorf("%s: defaults not applied: %+v", tt.name, sc)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: loadScenario() error = %v, want containing %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestVisibleClampedToLayer(t *testing.T) {
	sc := &Scenario{Width: 100, Height: 500, ViewportWidth: 100, ViewportHeight: 200}
	if got, want := sc.Visible(Frame{ScrollY: 400}), image.Rect(0, 400, 100, 500); got != want {
		t.Errorf("Visible() = %v, want %v", got, want)
	}
}

func TestRun(t *testing.T) {
	for _, direct := range []bool{false, true} {
		dir := t.TempDir()
		opts := options{
			scenario: filepath.Join("testdata", "scroll.toml"),
			output:   filepath.Join(dir, "frame.png"),
			trace:    filepath.Join(dir, "trace.jsonl"),
			backend:  "raster",
			workers:  2,
			direct:   direct,
		}
		var logs bytes.Buffer
		if err := run(opts, log.New(&logs, "", 0)); err != nil {
			t.Fatalf("direct=%v: run() error = %v", direct, err)
		}

		f, err := os.Open(opts.output)
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("png.Decode() error = %v", err)
		}
		if img.Bounds().Size() != image.Pt(320, 200) {
			t.Errorf("direct=%v: image size = %v, want 320x200", direct, img.Bounds().Size())
		}
		// Row 22 (y 880..920) has no dot; scroll 900 puts it at the top.
		want := gg.HSL(float64(22*23%360), 0.6, 0.55)
		got := gg.FromColor(img.At(10, 5))
		if abs(got.R-want.R) > 0.02 || abs(got.G-want.G) > 0.02 || abs(got.B-want.B) > 0.02 {
			t.Errorf("direct=%v: pixel = %+v, want %+v", direct, got, want)
		}

		if n := strings.Count(logs.String(), "frame "); n != 5 {
			t.Errorf("direct=%v: log has %d frame lines, want 5:\n%s", direct, n, logs.String())
		}
		if !strings.Contains(logs.String(), "frame 1: visible=(0,60)-(320,260) updated=false") {
			t.Errorf("direct=%v: small scroll re-recorded:\n%s", direct, logs.String())
		}

		trace, err := os.Open(opts.trace)
		if err != nil {
			t.Fatal(err)
		}
		lines := 0
		sc := bufio.NewScanner(trace)
		sc.Buffer(nil, 1<<22)
		for sc.Scan() {
			lines++
		}
		trace.Close()
		// Frames 0, 2 and 3 record.
		if lines != 3 {
			t.Errorf("direct=%v: trace has %d snapshots, want 3", direct, lines)
		}
	}
}

func TestRunMissingScenario(t *testing.T) {
	err := run(options{scenario: filepath.Join(t.TempDir(), "none.toml")}, log.New(&bytes.Buffer{}, "", 0))
	if err == nil {
		t.Error("run() with missing scenario should fail")
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
