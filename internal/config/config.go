package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// GridConfig sets the editor's starting grid.
type GridConfig struct {
	DefaultWidth  int    `yaml:"default_width"`
	DefaultHeight int    `yaml:"default_height"`
	MaxDimension  int    `yaml:"max_dimension"`
	CellSize      int    `yaml:"cell_size"` // px per cell side
	PaintColor    string `yaml:"paint_color"`
}

// ExportConfig tells the editor where frame sequences go.
type ExportConfig struct {
	URL   string `yaml:"url"`
	Shape string `yaml:"shape"` // "nested" or "flat"
}

// ServerConfig configures spritepad-server.
type ServerConfig struct {
	Port      int    `yaml:"port"`
	OutputDir string `yaml:"output_dir"`
	DBPath    string `yaml:"db_path"`
}

// RetentionConfig enables periodic deletion of old exports. An empty
// schedule disables it.
type RetentionConfig struct {
	Schedule string        `yaml:"schedule"`
	MaxAge   time.Duration `yaml:"max_age"`
}

// Config holds the application configuration
type Config struct {
	Paths     *Paths          `yaml:"-"`
	Grid      GridConfig      `yaml:"grid"`
	Export    ExportConfig    `yaml:"export"`
	Server    ServerConfig    `yaml:"server"`
	Retention RetentionConfig `yaml:"retention"`
}

// DefaultConfig returns the default configuration
func DefaultConfig(paths *Paths) *Config {
	return &Config{
		Paths: paths,
		Grid: GridConfig{
			DefaultWidth:  9,
			DefaultHeight: 9,
			MaxDimension:  20,
			CellSize:      50,
			PaintColor:    "#ffffff",
		},
		Export: ExportConfig{
			URL:   "http://localhost:3000/output",
			Shape: "nested",
		},
		Server: ServerConfig{
			Port:      3000,
			OutputDir: paths.OutputDir,
			DBPath:    paths.DBPath,
		},
	}
}

// Load reads the default paths and layers the config file and the
// environment on top of the defaults.
func Load() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig(paths)
	if err := cfg.LoadFile(paths.ConfigPath); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges the YAML file at path into c. A missing file is not an
// error; keys absent from the file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from PORT, SPRITEPAD_OUTPUT_DIR,
// SPRITEPAD_EXPORT_URL and SPRITEPAD_DB.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid PORT %q", v)
		}
		c.Server.Port = port
	}
	if v := getenv("SPRITEPAD_OUTPUT_DIR"); v != "" {
		c.Server.OutputDir = v
	}
	if v := getenv("SPRITEPAD_EXPORT_URL"); v != "" {
		c.Export.URL = v
	}
	if v := getenv("SPRITEPAD_DB"); v != "" {
		c.Server.DBPath = v
	}
	return nil
}
