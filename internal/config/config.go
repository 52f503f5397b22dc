// Package config handles tool configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable paths and conversion settings.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Convert ConvertConfig `yaml:"convert"`
	Logging LoggingConfig `yaml:"logging"`
}

// GameConfig holds paths into the game installation.
type GameConfig struct {
	// DataDir is the game data directory holding texture files.
	DataDir string `yaml:"data_dir"`
	// ItemTable is the path to the material-definition table (items.json).
	ItemTable string `yaml:"item_table"`
}

// ConvertConfig holds mesh conversion settings.
type ConvertConfig struct {
	// TileSize is the world-unit size of one texture tile for UV projection.
	TileSize float64 `yaml:"tile_size"`
	// GridOffset is the positional correction applied before projecting,
	// aligning projected coordinates to the voxel grid.
	GridOffset float64 `yaml:"grid_offset"`
	// FlatColors reduces every base-color texture to a single averaged color.
	FlatColors bool `yaml:"flat_colors"`
	// SwapUpAxis converts Z-up exports to Y-up before the other transforms.
	SwapUpAxis bool `yaml:"swap_up_axis"`
	// Transforms is the ordered transform sequence to run.
	Transforms []string `yaml:"transforms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			TileSize:   2.0,
			GridOffset: 0.125,
			Transforms: []string{"basecolors", "textures", "uvs", "emissive", "separate"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir    string
	ItemTable  string
	FlatColors bool
	Transforms []string
	LogLevel   string
}

// Load reads a YAML config file (when path is non-empty) on top of defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Resolve applies CLI flag overrides and fills remaining defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.DataDir != "" {
		c.Game.DataDir = flags.DataDir
	}
	if flags.ItemTable != "" {
		c.Game.ItemTable = flags.ItemTable
	}
	if flags.FlatColors {
		c.Convert.FlatColors = true
	}
	if len(flags.Transforms) > 0 {
		c.Convert.Transforms = flags.Transforms
	}
	if flags.LogLevel != "" {
		c.Logging.Level = flags.LogLevel
	}

	if c.Game.DataDir == "" {
		c.Game.DataDir = os.Getenv("GAME_PATH")
	}
	if c.Game.ItemTable == "" && c.Game.DataDir != "" {
		c.Game.ItemTable = filepath.Join(c.Game.DataDir, "items.json")
	}
	if c.Convert.TileSize <= 0 {
		c.Convert.TileSize = 2.0
	}
	if len(c.Convert.Transforms) == 0 {
		c.Convert.Transforms = Default().Convert.Transforms
	}
}

// Validate checks that required paths exist. Called once at setup;
// failures here abort the run before any document is touched.
func (c *Config) Validate() error {
	if c.Game.DataDir == "" {
		return fmt.Errorf("config: game data directory not set (use -game or GAME_PATH)")
	}
	info, err := os.Stat(c.Game.DataDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("config: game data directory not found: %s", c.Game.DataDir)
	}
	if _, err := os.Stat(c.Game.ItemTable); err != nil {
		return fmt.Errorf("config: item table not found: %s", c.Game.ItemTable)
	}
	return nil
}

func findConfigFile() string {
	candidates := []string{
		"./dumesh.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "dumesh", "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
