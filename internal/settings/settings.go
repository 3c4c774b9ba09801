// Package settings holds the persisted application settings and the
// shared store that notifies consumers of changes.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/versepaper/versepaper/internal/effect"
)

// Layout specifies the poem layout options.
type Layout struct {
	Orientation  string  `yaml:"orientation"`             // "vertical" or "horizontal"
	FontFile     string  `yaml:"font_file,omitempty"`     // path to a TTF/OTF; empty skips text rendering
	FontSize     float64 `yaml:"font_size,omitempty"`     // 0 = derived from canvas height
	CharSpacing  float64 `yaml:"char_spacing"`            // em fraction between characters
	LineSpacing  float64 `yaml:"line_spacing"`            // em fraction between columns/lines
	TitleOffset  float64 `yaml:"title_offset,omitempty"`  // pixels
	AuthorOffset float64 `yaml:"author_offset,omitempty"` // pixels
}

// Settings is the full persisted configuration.
type Settings struct {
	Effect     string  `yaml:"effect"` // wave | bubbles | blobs
	Seed       int64   `yaml:"seed"`
	Variation  float64 `yaml:"variation"`
	Background string  `yaml:"background"` // hex color
	DarkTheme  bool    `yaml:"dark_theme"`
	Watermark  bool    `yaml:"watermark"`

	Layout Layout `yaml:"layout"`

	// RefreshMinutes is the periodic refresh interval in whole minutes.
	// Values <= 0 disable the periodic trigger.
	RefreshMinutes int `yaml:"refresh_minutes"`

	FitMode   string `yaml:"fit_mode"`
	OutputDir string `yaml:"output_dir,omitempty"`

	// WallpaperCommand is the external setter invoked with the image
	// path, for example "feh --bg-fill %s". Empty uses the in-memory
	// port (dry run).
	WallpaperCommand string `yaml:"wallpaper_command,omitempty"`
}

// Default returns the standard settings. The seed is zero until
// EnsureSeed runs.
func Default() Settings {
	return Settings{
		Effect:     "blobs",
		Variation:  0,
		Background: effect.TraditionalColors[9].Hex, // 黛蓝
		Watermark:  true,
		Layout: Layout{
			Orientation: "vertical",
			CharSpacing: 0.25,
			LineSpacing: 0.75,
		},
		RefreshMinutes: 30,
		FitMode:        "fill",
	}
}

// EnsureSeed creates the persisted seed and background pick from the
// entropy source if the seed is still unset. It returns true if the
// settings changed. This is the only place non-seeded entropy enters the
// system; every later render is reproducible from the stored values.
func (s *Settings) EnsureSeed(entropy effect.EntropySource) bool {
	if s.Seed != 0 {
		return false
	}
	v := entropy()
	if v == 0 {
		v = 1
	}
	s.Seed = v
	s.Background = effect.PickTraditional(v).Hex
	return true
}

// Validate checks field values and fills derivable defaults in place.
func (s *Settings) Validate() error {
	if _, err := effect.ParseKind(s.Effect); err != nil {
		return err
	}
	switch s.Layout.Orientation {
	case "vertical", "horizontal":
	case "":
		s.Layout.Orientation = "vertical"
	default:
		return fmt.Errorf("settings: unknown orientation %q", s.Layout.Orientation)
	}
	if s.Layout.FontSize < 0 {
		return fmt.Errorf("settings: negative font size %v", s.Layout.FontSize)
	}
	return nil
}

// Load reads settings from a yaml file.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: read %s: %w", path, err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save writes settings to a yaml file, creating parent directories.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("settings: create dir: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("settings: write %s: %w", path, err)
	}
	return nil
}
