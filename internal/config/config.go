// ABOUTME: Capture and rendering settings with global + local YAML merge
// ABOUTME: Local values override global; flags override both in cmd/termlens

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/termlens/internal/frame"
)

// Renderer names accepted in settings and flags.
const (
	RendererANSI = "ansi"
	RendererTUI  = "tui"
)

// Settings holds the merged configuration for one run.
type Settings struct {
	App     string `yaml:"app,omitempty"`     // GUI command to run and capture
	Width   int    `yaml:"width,omitempty"`   // capture width in pixels
	Height  int    `yaml:"height,omitempty"`  // capture height in pixels
	Scale   int    `yaml:"scale,omitempty"`   // downscale factor applied to the cell grid
	Display int    `yaml:"display,omitempty"` // nested X display number

	Renderer  string `yaml:"renderer,omitempty"`   // "ansi" or "tui"
	Ramp      string `yaml:"ramp,omitempty"`       // preset name
	RampChars string `yaml:"ramp_chars,omitempty"` // literal ramp, overrides preset

	// Cell aspect in pixels; the output grid is width/(cell_width*scale)
	// by height/(cell_height*scale), floored.
	CellWidth  int `yaml:"cell_width,omitempty"`
	CellHeight int `yaml:"cell_height,omitempty"`

	InProcessScale bool   `yaml:"in_process_scale,omitempty"` // scale here instead of in ffmpeg
	FFmpegPath     string `yaml:"ffmpeg_path,omitempty"`
	XephyrPath     string `yaml:"xephyr_path,omitempty"`
	StatsFile      string `yaml:"stats_file,omitempty"` // NDJSON per-frame events
}

// Defaults mirrors the original tool's built-in values.
func Defaults() *Settings {
	return &Settings{
		Width:      800,
		Height:     600,
		Scale:      2,
		Display:    1,
		Renderer:   RendererANSI,
		Ramp:       "classic",
		CellWidth:  8,
		CellHeight: 16,
		FFmpegPath: "ffmpeg",
		XephyrPath: "Xephyr",
	}
}

// Load reads and merges defaults, global, and directory-local settings.
func Load(dir string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	local, err := loadFile(LocalConfigFile(dir))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading local config: %w", err)
	}

	merged := merge(Defaults(), global)
	merged = merge(merged, local)
	return merged, nil
}

// loadFile reads a Settings from a YAML file. Returns the zero value
// and the stat error if the file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays non-zero values of over onto base.
func merge(base, over *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if over == nil {
		return base
	}

	result := *base

	if over.App != "" {
		result.App = over.App
	}
	if over.Width != 0 {
		result.Width = over.Width
	}
	if over.Height != 0 {
		result.Height = over.Height
	}
	if over.Scale != 0 {
		result.Scale = over.Scale
	}
	if over.Display != 0 {
		result.Display = over.Display
	}
	if over.Renderer != "" {
		result.Renderer = over.Renderer
	}
	if over.Ramp != "" {
		result.Ramp = over.Ramp
	}
	if over.RampChars != "" {
		result.RampChars = over.RampChars
	}
	if over.CellWidth != 0 {
		result.CellWidth = over.CellWidth
	}
	if over.CellHeight != 0 {
		result.CellHeight = over.CellHeight
	}
	if over.InProcessScale {
		result.InProcessScale = true
	}
	if over.FFmpegPath != "" {
		result.FFmpegPath = over.FFmpegPath
	}
	if over.XephyrPath != "" {
		result.XephyrPath = over.XephyrPath
	}
	if over.StatsFile != "" {
		result.StatsFile = over.StatsFile
	}

	return &result
}

// Validate checks the merged settings.
func (s *Settings) Validate() error {
	if s.Width < 1 || s.Height < 1 {
		return fmt.Errorf("capture geometry %dx%d: both dimensions must be positive", s.Width, s.Height)
	}
	if s.Scale < 1 {
		return fmt.Errorf("scale factor %d: must be at least 1", s.Scale)
	}
	if s.CellWidth < 1 || s.CellHeight < 1 {
		return fmt.Errorf("cell aspect %dx%d: both dimensions must be positive", s.CellWidth, s.CellHeight)
	}
	if s.Renderer != RendererANSI && s.Renderer != RendererTUI {
		return fmt.Errorf("unknown renderer %q (want %q or %q)", s.Renderer, RendererANSI, RendererTUI)
	}
	if _, err := s.OutputGeometry(); err != nil {
		return err
	}
	return nil
}

// CaptureGeometry returns the nested server's screen size.
func (s *Settings) CaptureGeometry() (frame.Geometry, error) {
	return frame.NewGeometry(s.Width, s.Height)
}

// OutputGeometry derives the cell grid size from capture size, cell
// aspect, and scale factor. Division floors; a dimension that floors to
// zero is a configuration error, not a ragged frame at runtime.
func (s *Settings) OutputGeometry() (frame.Geometry, error) {
	w := s.Width / (s.CellWidth * s.Scale)
	h := s.Height / (s.CellHeight * s.Scale)
	if w < 1 || h < 1 {
		return frame.Geometry{}, fmt.Errorf(
			"derived cell grid %dx%d from %dx%d at scale %d: too small, lower the scale factor", w, h, s.Width, s.Height, s.Scale)
	}
	return frame.NewGeometry(w, h)
}
