// Package viewer implements the main frame loop: poll input, advance the
// scene, project, and draw.
package viewer

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/wireview/internal/config"
	"github.com/Faultbox/wireview/internal/engine/camera"
	"github.com/Faultbox/wireview/internal/engine/input"
	"github.com/Faultbox/wireview/internal/engine/object"
	"github.com/Faultbox/wireview/internal/engine/projection"
	"github.com/Faultbox/wireview/internal/engine/scene"
	"github.com/Faultbox/wireview/internal/engine/window"
)

const degToRad = math32.Pi / 180

// Viewer owns the window, camera, and projection pipeline for one scene.
type Viewer struct {
	config   *config.Config
	log      *zap.Logger
	window   *window.Window
	camera   *camera.FirstPerson
	pipeline *projection.Pipeline
	scene    *scene.Scene
	running  bool
}

// New creates a viewer showing the given scene.
func New(cfg *config.Config, sc *scene.Scene, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	v := &Viewer{
		config: cfg,
		log:    log,
		scene:  sc,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "wireview",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Background: backgroundColour(cfg),
		GrabMouse:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	camCfg := camera.DefaultConfig()
	camCfg.FOV = cfg.Camera.FOVDegrees * degToRad
	camCfg.Near = cfg.Camera.Near
	camCfg.Far = cfg.Camera.Far
	camCfg.MoveSpeed = cfg.Camera.MoveSpeed
	camCfg.Sensitivity = cfg.Camera.MouseSensitivity
	camCfg.MaxPitch = cfg.Camera.MaxPitchDegrees * degToRad
	camCfg.MotionThreshold = cfg.Camera.MotionThreshold
	v.camera = camera.New(camCfg)

	width, height := v.window.Size()
	v.pipeline = projection.New(camCfg.FOV, camCfg.Near, camCfg.Far, projection.Viewport{
		Width:  width,
		Height: height,
	})

	log.Info("viewer initialized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float32("fov_degrees", cfg.Camera.FOVDegrees),
	)

	return v, nil
}

// Camera returns the viewer's first-person camera.
func (v *Viewer) Camera() *camera.FirstPerson {
	return v.camera
}

// Run drives the frame loop until quit, or until the configured scene
// duration elapses.
func (v *Viewer) Run() error {
	v.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	v.log.Info("starting frame loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		elapsed := now.Sub(start)
		if v.config.Scene.Duration > 0 && elapsed >= v.config.Scene.Duration {
			v.log.Info("scene duration elapsed", zap.Duration("duration", elapsed))
			break
		}

		// 1. Process input
		events := v.window.Poll()
		for _, event := range events {
			switch event.Type {
			case input.EventQuit:
				v.running = false
			case input.EventWindowResize:
				v.pipeline.Resize(event.Width, event.Height)
				v.log.Debug("window resized",
					zap.Int("width", event.Width),
					zap.Int("height", event.Height),
				)
			}
		}
		if !v.running {
			break
		}
		v.camera.HandleInput(events, dt)

		// 2. Advance animations
		faults := v.scene.Advance(float32(elapsed.Seconds()))
		for _, f := range faults {
			v.log.Warn("object frozen after motion fault",
				zap.String("object", f.ID),
				zap.Error(f.Err),
			)
		}

		// 3. Render
		if err := v.window.Clear(); err != nil {
			return fmt.Errorf("clear error: %w", err)
		}
		v.scene.Draw(v.pipeline, v.camera.ViewMatrix(), v.window)
		v.window.Present()

		// FPS counter
		frameCount++
		if now.Sub(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = now
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.window != nil {
		v.window.Close()
	}
}

func backgroundColour(cfg *config.Config) object.Colour {
	bg := cfg.Graphics.Background
	return object.Colour{R: bg.R, G: bg.G, B: bg.B}
}
