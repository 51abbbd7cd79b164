// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	Fullscreen bool         `yaml:"fullscreen"`
	VSync      bool         `yaml:"vsync"`
	Background ColourConfig `yaml:"background"`
}

// ColourConfig is an RGB colour in the 0-255 range.
type ColourConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// CameraConfig holds first-person camera settings. Angles are in degrees
// here and converted to radians at the engine boundary.
type CameraConfig struct {
	FOVDegrees       float32 `yaml:"fov_degrees"`
	Near             float32 `yaml:"near"`
	Far              float32 `yaml:"far"`
	MoveSpeed        float32 `yaml:"move_speed"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	MaxPitchDegrees  float32 `yaml:"max_pitch_degrees"`
	MotionThreshold  float32 `yaml:"motion_threshold"`
}

// SceneConfig selects what the viewer shows.
type SceneConfig struct {
	Demo     string        `yaml:"demo"`     // "orbit" or "keyframe"
	Mesh     string        `yaml:"mesh"`     // optional STL path shown instead of a demo
	Duration time.Duration `yaml:"duration"` // 0 runs until quit
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Background: ColourConfig{R: 16, G: 16, B: 24},
		},
		Camera: CameraConfig{
			FOVDegrees:       90,
			Near:             0.1,
			Far:              1000,
			MoveSpeed:        10,
			MouseSensitivity: 0.0025,
			MaxPitchDegrees:  89,
			MotionThreshold:  200,
		},
		Scene: SceneConfig{
			Demo:     "orbit",
			Duration: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
