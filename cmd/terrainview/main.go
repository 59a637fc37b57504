// terrainview flies a camera over a generated or DEM-backed heightfield with its
// vegetation and moveables.
package main

import (
	"fmt"
	"os"

	"github.com/xlab/closer"
	"go.uber.org/zap"

	"github.com/Faultbox/highland/internal/config"
	"github.com/Faultbox/highland/internal/game"
	"github.com/Faultbox/highland/internal/game/world"
	"github.com/Faultbox/highland/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
		fileCfg.JSON = cfg.Logging.LogJSON
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	// GL state belongs to the main thread, so an interrupt only flushes the log.
	closer.Bind(logger.Sync)

	logger.Info("=== Highland terrain viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	w, err := world.Load(cfg)
	if err != nil {
		logger.Error("failed to build world", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	g, err := game.New(cfg, w)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	runErr := g.Run()
	g.Close()
	if runErr != nil {
		logger.Error("viewer error", zap.Error(runErr))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
	closer.Close()
}
