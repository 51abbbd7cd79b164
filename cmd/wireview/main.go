// Package main is the entry point for the wireview scene viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/wireview/internal/config"
	"github.com/Faultbox/wireview/internal/engine/scene"
	"github.com/Faultbox/wireview/internal/logger"
	"github.com/Faultbox/wireview/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== wireview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	sc, start, err := buildScene(cfg)
	if err != nil {
		logger.Error("failed to build scene", zap.Error(err))
		os.Exit(1)
	}

	v, err := viewer.New(cfg, sc, logger.Log)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	cam := v.Camera()
	cam.Position = start.Position
	cam.Yaw = start.Yaw
	cam.Pitch = start.Pitch

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

// buildScene picks the scene from config: an STL mesh if one was given,
// otherwise the named demo.
func buildScene(cfg *config.Config) (*scene.Scene, startPose, error) {
	if cfg.Scene.Mesh != "" {
		return meshScene(cfg.Scene.Mesh, logger.Log)
	}

	switch cfg.Scene.Demo {
	case "orbit":
		return orbitScene(logger.Log)
	case "keyframe":
		return keyframeScene(logger.Log)
	default:
		return nil, startPose{}, fmt.Errorf("unknown demo %q (want orbit or keyframe)", cfg.Scene.Demo)
	}
}
