package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile    = flag.String("log-file", "", "Also write logs to this file")
	flagDEM        = flag.String("dem", "", "Path to an ASCII DEM grid")
	flagSeed       = flag.Int64("seed", 0, "World seed (0 keeps the configured seed)")
	flagWater      = flag.Float64("water", -1, "Water level for plant placement (negative keeps the configured level)")
	flagDrawDist   = flag.Float64("draw-distance", 0, "Terrain draw box half-extent (0 keeps the configured distance)")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config. Zero or negative values
// leave the file settings alone.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagDEM != "" {
		cfg.World.DEMPath = *flagDEM
	}
	if *flagSeed != 0 {
		cfg.World.Seed = *flagSeed
	}
	if *flagWater >= 0 {
		cfg.Vegetation.WaterLevel = float32(*flagWater)
	}
	if *flagDrawDist > 0 {
		cfg.Terrain.DrawDistance = float32(*flagDrawDist)
	}

	switch {
	case *flagWindowed:
		cfg.Graphics.Fullscreen = false
	case *flagFullscreen:
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
