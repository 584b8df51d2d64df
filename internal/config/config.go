package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServerURL = "http://localhost:5000"
	DefaultListen    = ":5000"
	DefaultDataDir   = ".kolam"
	DefaultWidth     = 80
	DefaultHeight    = 24
	DefaultSpeed     = 1.0
	DefaultTheme     = "festival"
)

type Config struct {
	ServerURL string       `yaml:"server_url"`
	Listen    string       `yaml:"listen"`
	DataDir   string       `yaml:"data_dir"`
	Canvas    CanvasConfig `yaml:"canvas"`
	Speed     float64      `yaml:"speed"`
	Theme     string       `yaml:"theme"`
}

type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		ServerURL: DefaultServerURL,
		Listen:    DefaultListen,
		DataDir:   DefaultDataDir,
		Canvas: CanvasConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Speed: DefaultSpeed,
		Theme: DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values that would stall playback or produce an
// unusable canvas.
func (c *Config) Validate() error {
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %g", c.Speed)
	}
	if c.Canvas.Width < 10 || c.Canvas.Height < 5 {
		return fmt.Errorf("canvas too small: %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	return nil
}
