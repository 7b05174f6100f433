// Package main is the entry point for the Wild West scene.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/wildwest/internal/config"
	"github.com/Faultbox/wildwest/internal/game"
	"github.com/Faultbox/wildwest/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.WriteFile(path); err != nil {
			logger.Error("write config", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("config written", zap.String("path", path))
		logger.Sync()
		return
	}

	logger.Info("=== The Wild West ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("game error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("game closed normally")
	logger.Sync()
}

func run(cfg *config.Config) error {
	g, err := game.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	defer g.Close()

	return g.Run()
}
