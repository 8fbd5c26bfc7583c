package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Player   PlayerConfig   `yaml:"player" envPrefix:"PLAYER_"`
	World    WorldConfig    `yaml:"world" envPrefix:"WORLD_"`
	Frontend FrontendConfig `yaml:"frontend" envPrefix:"FRONTEND_"`
	Logging  LoggingConfig  `yaml:"logging" envPrefix:"LOG_"`
	Export   ExportConfig   `yaml:"export" envPrefix:"EXPORT_"`
}

type PlayerConfig struct {
	Height      float64 `yaml:"height" env:"HEIGHT"`
	Speed       float64 `yaml:"speed" env:"SPEED"`
	JumpImpulse float64 `yaml:"jump_impulse" env:"JUMP_IMPULSE"`
}

type WorldConfig struct {
	Projects string `yaml:"projects" env:"PROJECTS"`
	Seed     int64  `yaml:"seed" env:"SEED"`
}

type FrontendConfig struct {
	// Mode is auto, window or console.
	Mode        string  `yaml:"mode" env:"MODE"`
	TPS         int     `yaml:"tps" env:"TPS"`
	Sensitivity float64 `yaml:"sensitivity" env:"SENSITIVITY"`
	FreeCamera  bool    `yaml:"free_camera" env:"FREE_CAMERA"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	File   string `yaml:"file" env:"FILE"`
	Format string `yaml:"format" env:"FORMAT"`
}

type ExportConfig struct {
	Dir string `yaml:"dir" env:"DIR"`
}

const (
	ModeAuto    = "auto"
	ModeWindow  = "window"
	ModeConsole = "console"

	envPrefix = "FOLIO_"
)

func Default() *Config {
	return &Config{
		Player: PlayerConfig{
			Height:      1.8,
			Speed:       12,
			JumpImpulse: 20,
		},
		World: WorldConfig{
			Projects: "projects.json",
			Seed:     1,
		},
		Frontend: FrontendConfig{
			Mode:        ModeAuto,
			TPS:         60,
			Sensitivity: 0.002,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path on top of Default. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithEnv is Load, tolerating a missing file, followed by FOLIO_*
// environment overrides and validation.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Player.Height <= 0 {
		return fmt.Errorf("player.height must be positive, got %v", c.Player.Height)
	}
	if c.Player.Speed <= 0 {
		return fmt.Errorf("player.speed must be positive, got %v", c.Player.Speed)
	}
	if c.Player.JumpImpulse < 0 {
		return fmt.Errorf("player.jump_impulse must not be negative, got %v", c.Player.JumpImpulse)
	}
	if !(c.Frontend.Sensitivity > 0) {
		return fmt.Errorf("frontend.sensitivity must be positive, got %v", c.Frontend.Sensitivity)
	}
	if c.Frontend.TPS <= 0 {
		return fmt.Errorf("frontend.tps must be positive, got %d", c.Frontend.TPS)
	}
	switch c.Frontend.Mode {
	case ModeAuto, ModeWindow, ModeConsole:
	default:
		return fmt.Errorf("frontend.mode %q is not one of auto, window, console", c.Frontend.Mode)
	}
	return nil
}
