package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test camera defaults
	if cfg.Camera.FOVDegrees != 90 {
		t.Errorf("expected fov 90, got %f", cfg.Camera.FOVDegrees)
	}
	if cfg.Camera.Near != 0.1 {
		t.Errorf("expected near 0.1, got %f", cfg.Camera.Near)
	}
	if cfg.Camera.Far != 1000 {
		t.Errorf("expected far 1000, got %f", cfg.Camera.Far)
	}
	if cfg.Camera.MaxPitchDegrees != 89 {
		t.Errorf("expected max pitch 89, got %f", cfg.Camera.MaxPitchDegrees)
	}

	// Test scene defaults
	if cfg.Scene.Demo != "orbit" {
		t.Errorf("expected demo 'orbit', got %s", cfg.Scene.Demo)
	}
	if cfg.Scene.Duration != 0 {
		t.Errorf("expected duration 0, got %v", cfg.Scene.Duration)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  background:
    r: 32
    g: 32
    b: 48

camera:
  fov_degrees: 75
  near: 0.5
  far: 500
  move_speed: 4
  mouse_sensitivity: 0.001
  max_pitch_degrees: 80
  motion_threshold: 100

scene:
  demo: "keyframe"
  duration: 60s

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.Background.G != 32 {
		t.Errorf("expected background green 32, got %d", cfg.Graphics.Background.G)
	}

	if cfg.Camera.FOVDegrees != 75 {
		t.Errorf("expected fov 75, got %f", cfg.Camera.FOVDegrees)
	}
	if cfg.Camera.MoveSpeed != 4 {
		t.Errorf("expected move speed 4, got %f", cfg.Camera.MoveSpeed)
	}
	if cfg.Camera.MotionThreshold != 100 {
		t.Errorf("expected motion threshold 100, got %f", cfg.Camera.MotionThreshold)
	}

	if cfg.Scene.Demo != "keyframe" {
		t.Errorf("expected demo 'keyframe', got %s", cfg.Scene.Demo)
	}
	if cfg.Scene.Duration != 60*time.Second {
		t.Errorf("expected duration 60s, got %v", cfg.Scene.Duration)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "demo flag",
			setup: func() {
				*flagDemo = "keyframe"
			},
			verify: func(cfg *Config) {
				if cfg.Scene.Demo != "keyframe" {
					t.Errorf("expected demo 'keyframe', got %s", cfg.Scene.Demo)
				}
			},
			teardown: func() {
				*flagDemo = ""
			},
		},
		{
			name: "mesh flag",
			setup: func() {
				*flagMesh = "part.stl"
			},
			verify: func(cfg *Config) {
				if cfg.Scene.Mesh != "part.stl" {
					t.Errorf("expected mesh 'part.stl', got %s", cfg.Scene.Mesh)
				}
			},
			teardown: func() {
				*flagMesh = ""
			},
		},
		{
			name: "duration flag",
			setup: func() {
				*flagDuration = 30 * time.Second
			},
			verify: func(cfg *Config) {
				if cfg.Scene.Duration != 30*time.Second {
					t.Errorf("expected duration 30s, got %v", cfg.Scene.Duration)
				}
			},
			teardown: func() {
				*flagDuration = 0
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 640
	cfg.Scene.Demo = "keyframe"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Graphics.Width != 640 {
		t.Errorf("expected width 640 after round trip, got %d", loaded.Graphics.Width)
	}
	if loaded.Scene.Demo != "keyframe" {
		t.Errorf("expected demo 'keyframe' after round trip, got %s", loaded.Scene.Demo)
	}
}
