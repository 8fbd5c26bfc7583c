package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoad 使用表驱动测试覆盖配置加载的核心场景
func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		createFile bool
		content    string
		wantErr    bool
		validate   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:       "正常加载有效YAML",
			createFile: true,
			content: `player:
  height: 2.0
  speed: 8
  jump_impulse: 15
world:
  projects: "data/projects.json"
  seed: 9
frontend:
  mode: "console"
  tps: 30
  sensitivity: 0.004
  free_camera: true
logging:
  level: "debug"
  file: "folio.log"
export:
  dir: "out"
`,
			validate: func(t *testing.T, cfg *Config, err error) {
				if cfg.Player.Height != 2.0 || cfg.Player.Speed != 8 || cfg.Player.JumpImpulse != 15 {
					t.Errorf("Player = %+v", cfg.Player)
				}
				if cfg.World.Projects != "data/projects.json" || cfg.World.Seed != 9 {
					t.Errorf("World = %+v", cfg.World)
				}
				if cfg.Frontend.Mode != ModeConsole || cfg.Frontend.TPS != 30 || !cfg.Frontend.FreeCamera {
					t.Errorf("Frontend = %+v", cfg.Frontend)
				}
				if cfg.Logging.Level != "debug" || cfg.Logging.File != "folio.log" {
					t.Errorf("Logging = %+v", cfg.Logging)
				}
				if cfg.Export.Dir != "out" {
					t.Errorf("Export.Dir = %q, 期望 %q", cfg.Export.Dir, "out")
				}
			},
		},
		{
			name:       "部分字段保留默认值",
			createFile: true,
			content: `player:
  speed: 20
`,
			validate: func(t *testing.T, cfg *Config, err error) {
				if cfg.Player.Speed != 20 {
					t.Errorf("Player.Speed = %v, 期望 20", cfg.Player.Speed)
				}
				if cfg.Player.Height != 1.8 || cfg.Player.JumpImpulse != 20 {
					t.Errorf("默认值被覆盖: %+v", cfg.Player)
				}
				if cfg.Frontend.TPS != 60 {
					t.Errorf("Frontend.TPS = %d, 期望 60", cfg.Frontend.TPS)
				}
			},
		},
		{
			name:       "文件不存在",
			createFile: false,
			wantErr:    true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if !os.IsNotExist(err) {
					t.Errorf("期望文件不存在错误，实际: %v", err)
				}
			},
		},
		{
			name:       "YAML格式错误",
			createFile: true,
			content: `player:
  height: [1.8
`,
			wantErr: true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if err == nil || !strings.Contains(err.Error(), "yaml") {
					t.Errorf("期望返回YAML解析错误，实际: %v", err)
				}
			},
		},
		{
			name:       "空文件",
			createFile: true,
			content:    "",
			validate: func(t *testing.T, cfg *Config, err error) {
				if *cfg != *Default() {
					t.Errorf("空文件应得到默认配置，实际 %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if tt.createFile {
				if err := os.WriteFile(configPath, []byte(tt.content), 0o644); err != nil {
					t.Fatalf("创建测试配置文件失败: %v", err)
				}
			}

			cfg, err := Load(configPath)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg == nil {
				t.Fatalf("Load() 返回了 nil 配置")
			}
			if tt.validate != nil {
				tt.validate(t, cfg, err)
			}
		})
	}
}

func TestLoadWithEnv_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadWithEnv() error = %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadWithEnv_EnvOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("player:\n  speed: 5\nfrontend:\n  mode: window\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FOLIO_PLAYER_SPEED", "14")
	t.Setenv("FOLIO_FRONTEND_MODE", "console")
	t.Setenv("FOLIO_LOG_LEVEL", "warn")
	t.Setenv("FOLIO_WORLD_PROJECTS", "/srv/projects.json")

	cfg, err := LoadWithEnv(configPath)
	if err != nil {
		t.Fatalf("LoadWithEnv() error = %v", err)
	}
	if cfg.Player.Speed != 14 {
		t.Errorf("Player.Speed = %v, 期望 14", cfg.Player.Speed)
	}
	if cfg.Frontend.Mode != ModeConsole {
		t.Errorf("Frontend.Mode = %q, 期望 console", cfg.Frontend.Mode)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, 期望 warn", cfg.Logging.Level)
	}
	if cfg.World.Projects != "/srv/projects.json" {
		t.Errorf("World.Projects = %q", cfg.World.Projects)
	}
}

func TestLoadWithEnv_BadEnvValue(t *testing.T) {
	t.Setenv("FOLIO_FRONTEND_TPS", "fast")
	if _, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("LoadWithEnv() 应该拒绝非法的 TPS")
	}
}

func TestLoadWithEnv_ZeroSensitivity(t *testing.T) {
	t.Setenv("FOLIO_FRONTEND_SENSITIVITY", "0")
	if _, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("LoadWithEnv() with zero sensitivity = nil error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero height", func(c *Config) { c.Player.Height = 0 }},
		{"negative speed", func(c *Config) { c.Player.Speed = -1 }},
		{"negative jump", func(c *Config) { c.Player.JumpImpulse = -1 }},
		{"zero tps", func(c *Config) { c.Frontend.TPS = 0 }},
		{"unknown mode", func(c *Config) { c.Frontend.Mode = "vr" }},
		{"zero sensitivity", func(c *Config) { c.Frontend.Sensitivity = 0 }},
		{"negative sensitivity", func(c *Config) { c.Frontend.Sensitivity = -0.002 }},
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("Validate() = nil, want error")
			}
		})
	}
}
