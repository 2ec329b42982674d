// Package config loads viewer configuration from YAML, layered over
// embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"kerf-view/viewport"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Input   InputConfig   `yaml:"input"`
	Grid    GridConfig    `yaml:"grid"`
	Drawing DrawingConfig `yaml:"drawing"`
	Offset  OffsetConfig  `yaml:"offset"`
	Trace   TraceConfig   `yaml:"trace"`
}

// WindowConfig holds the initial window setup.
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// CameraConfig tunes the viewport camera.
type CameraConfig struct {
	ScaleFactor   float64 `yaml:"scale_factor"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
	InitialZoom   float64 `yaml:"initial_zoom"`
	ZoomFloor     float64 `yaml:"zoom_floor"`
	ZoomCeiling   float64 `yaml:"zoom_ceiling"`
	DampingScale  float64 `yaml:"damping_scale"`
}

// Params converts the section to camera parameters.
func (c CameraConfig) Params() viewport.Params {
	return viewport.Params{
		ScaleFactor:   c.ScaleFactor,
		PixelsPerUnit: c.PixelsPerUnit,
		InitialZoom:   c.InitialZoom,
		Zoom: viewport.ZoomParams{
			Floor:        c.ZoomFloor,
			Ceiling:      c.ZoomCeiling,
			DampingScale: c.DampingScale,
		},
	}
}

// InputConfig maps device input to camera deltas.
type InputConfig struct {
	WheelScale     float64 `yaml:"wheel_scale"`
	KeyZoomStep    float64 `yaml:"key_zoom_step"`
	ButtonZoomStep float64 `yaml:"button_zoom_step"`
}

// GridConfig controls the background grid.
type GridConfig struct {
	Spacing         float64 `yaml:"spacing"`
	MajorEvery      int     `yaml:"major_every"`
	MinPixelSpacing float64 `yaml:"min_pixel_spacing"`
}

// DrawingConfig controls drawing loading and display.
type DrawingConfig struct {
	Watch          bool    `yaml:"watch"`
	DebounceMS     int     `yaml:"debounce_ms"`
	ContourEpsilon float64 `yaml:"contour_epsilon"`
	ArcSegments    int     `yaml:"arc_segments"`
}

// Debounce returns the reload debounce window.
func (d DrawingConfig) Debounce() time.Duration {
	return time.Duration(d.DebounceMS) * time.Millisecond
}

// OffsetConfig points at the external geometry/offset program.
type OffsetConfig struct {
	Command  string   `yaml:"command"`
	Args     []string `yaml:"args"`
	Distance float64  `yaml:"distance"`
	TimeoutS int      `yaml:"timeout_s"`
}

// Timeout returns the per-run limit for the offset program.
func (o OffsetConfig) Timeout() time.Duration {
	return time.Duration(o.TimeoutS) * time.Second
}

// TraceConfig controls input trace recording.
type TraceConfig struct {
	Record string `yaml:"record"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads the YAML file at path over the embedded defaults. An empty
// path yields the defaults alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.ScaleFactor <= 0 {
		errs = append(errs, fmt.Errorf("camera: scale_factor must be positive, got %v", c.Camera.ScaleFactor))
	}
	if c.Camera.PixelsPerUnit < 0 {
		errs = append(errs, fmt.Errorf("camera: pixels_per_unit must not be negative, got %v", c.Camera.PixelsPerUnit))
	}
	if c.Camera.ZoomFloor <= 0 {
		errs = append(errs, fmt.Errorf("camera: zoom_floor must be positive, got %v", c.Camera.ZoomFloor))
	}
	if c.Camera.ZoomCeiling <= c.Camera.ZoomFloor {
		errs = append(errs, fmt.Errorf("camera: zoom_ceiling %v must exceed zoom_floor %v", c.Camera.ZoomCeiling, c.Camera.ZoomFloor))
	}
	if c.Camera.DampingScale <= 0 {
		errs = append(errs, fmt.Errorf("camera: damping_scale must be positive, got %v", c.Camera.DampingScale))
	}
	if c.Grid.Spacing <= 0 || c.Grid.MajorEvery <= 0 {
		errs = append(errs, fmt.Errorf("grid: spacing and major_every must be positive"))
	}
	if c.Drawing.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("drawing: debounce_ms must not be negative, got %d", c.Drawing.DebounceMS))
	}
	if c.Drawing.ArcSegments < 4 {
		errs = append(errs, fmt.Errorf("drawing: arc_segments must be at least 4, got %d", c.Drawing.ArcSegments))
	}
	if c.Offset.TimeoutS < 0 {
		errs = append(errs, fmt.Errorf("offset: timeout_s must not be negative, got %d", c.Offset.TimeoutS))
	}
	return errors.Join(errs...)
}

// WriteYAML saves the configuration.
func (c *Config) WriteYAML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
