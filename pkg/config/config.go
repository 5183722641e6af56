// Package config handles loading and saving dsv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/dsv/config.yaml
//   - Data:    ~/.local/share/dsv/ (gallery database, saved records)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CanvasConfig holds canvas geometry settings.
type CanvasConfig struct {
	Width  int     `yaml:"width,omitempty"`
	Height int     `yaml:"height,omitempty"`
	Radius float64 `yaml:"radius,omitempty"` // node circle radius
}

// AnimationConfig holds playback preferences.
type AnimationConfig struct {
	Speed    float64 `yaml:"speed,omitempty"`     // duration divisor, 1.0 = nominal
	DepthLen float64 `yaml:"depth_len,omitempty"` // vertical spacing between levels
}

// Config is the top-level configuration for dsv.
type Config struct {
	Canvas      CanvasConfig    `yaml:"canvas,omitempty"`
	Animation   AnimationConfig `yaml:"animation,omitempty"`
	RecordDir   string          `yaml:"record_dir,omitempty"`   // where saved records land
	GalleryDB   string          `yaml:"gallery_db,omitempty"`   // path to the gallery database
	DefaultType string          `yaml:"default_type,omitempty"` // structure type preselected in the wizard
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:  1280,
			Height: 800,
			Radius: 30,
		},
		Animation: AnimationConfig{
			Speed:    1.0,
			DepthLen: 90,
		},
	}
}

// ConfigDir returns the XDG config directory for dsv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "dsv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dsv")
}

// DataDir returns the XDG data directory for dsv.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "dsv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "dsv")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Animation.Speed <= 0 {
		cfg.Animation.Speed = 1.0
	}
	cfg.RecordDir = expandHome(cfg.RecordDir)
	cfg.GalleryDB = expandHome(cfg.GalleryDB)

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ResolvedRecordDir returns the record directory, falling back to the XDG
// data directory.
func (c Config) ResolvedRecordDir() string {
	if c.RecordDir != "" {
		return c.RecordDir
	}
	return filepath.Join(DataDir(), "records")
}

// ResolvedGalleryDB returns the gallery database path, falling back to the
// XDG data directory.
func (c Config) ResolvedGalleryDB() string {
	if c.GalleryDB != "" {
		return c.GalleryDB
	}
	return filepath.Join(DataDir(), "gallery.db")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
