// Package config loads covergen settings from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is tried relative to the working directory when no
// --config flag is given.
const DefaultPath = "covergen.toml"

type Config struct {
	Engine EngineConfig `toml:"engine"`
	Output OutputConfig `toml:"output"`
	Run    RunConfig    `toml:"run"`
}

type EngineConfig struct {
	Name      string `toml:"name"`
	MagickBin string `toml:"magick_bin"`
}

type OutputConfig struct {
	Dir      string `toml:"dir"`
	Template string `toml:"template"`
}

type RunConfig struct {
	Concurrency int    `toml:"concurrency"`
	Report      string `toml:"report"`
}

// Default returns the built in settings.
func Default() Config {
	return Config{
		Engine: EngineConfig{Name: "magick"},
		Output: OutputConfig{Dir: "cards", Template: "template.png"},
		Run:    RunConfig{Concurrency: 1},
	}
}

// Load reads the TOML file at path on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOptional loads path if it exists and falls back to the defaults
// when it does not. Every other failure is still reported.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		def := Default()
		return &def, nil
	}
	return cfg, err
}
