// Package main is the entry point for the magnifier viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/magnifier/internal/config"
	"github.com/Faultbox/magnifier/internal/logger"
	"github.com/Faultbox/magnifier/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, path, err := config.Load()
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

	logger.Info("=== Magnifier ===", zap.String("config", path))
	logger.Sugar.Debugf("Config: %+v", cfg)

	// First run: leave a default file behind so there is something to edit.
	if path == "" {
		if err := config.Default().Save(); err != nil {
			logger.Warn("could not write default config", zap.Error(err))
		} else {
			path = config.DefaultPath()
			logger.Info("wrote default config", zap.String("path", path))
		}
	}

	v, err := viewer.New(cfg, path)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
