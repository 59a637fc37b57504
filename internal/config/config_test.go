package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Terrain.TileVertices != 100 {
		t.Errorf("expected 100 tile vertices, got %d", cfg.Terrain.TileVertices)
	}
	if cfg.Terrain.VertexSpacing != 10 {
		t.Errorf("expected vertex spacing 10, got %f", cfg.Terrain.VertexSpacing)
	}
	if cfg.Terrain.BlendSeamNormals {
		t.Error("expected seam normal blending to be off by default")
	}

	if cfg.Vegetation.TrialsPerTile != 1000 {
		t.Errorf("expected 1000 trials per tile, got %d", cfg.Vegetation.TrialsPerTile)
	}
	if cfg.Vegetation.ClearRadius != 10 {
		t.Errorf("expected clear radius 10, got %f", cfg.Vegetation.ClearRadius)
	}

	if cfg.Moveables.TileSize != 32 {
		t.Errorf("expected moveables tile size 32, got %f", cfg.Moveables.TileSize)
	}
	if cfg.Moveables.ViewDistance != 736 {
		t.Errorf("expected moveables view distance 736, got %f", cfg.Moveables.ViewDistance)
	}

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
world:
  dem_path: "maps/valley.asc"
  seed: 42

terrain:
  tile_vertices: 33
  vertex_spacing: 5
  blend_seam_normals: true

vegetation:
  trials_per_tile: 250
  water_level: 12.5
  species_file: "species.csv"

moveables:
  tile_size: 16
  view_distance: 200

graphics:
  width: 1920
  height: 1080
  sim_hz: 120

logging:
  level: "debug"
  log_file: "highland.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.World.DEMPath != filepath.Join(tmpDir, "maps", "valley.asc") || cfg.World.Seed != 42 {
		t.Errorf("unexpected world config: %+v", cfg.World)
	}
	if cfg.Terrain.TileVertices != 33 || cfg.Terrain.VertexSpacing != 5 || !cfg.Terrain.BlendSeamNormals {
		t.Errorf("unexpected terrain config: %+v", cfg.Terrain)
	}
	if cfg.Vegetation.TrialsPerTile != 250 || cfg.Vegetation.WaterLevel != 12.5 {
		t.Errorf("unexpected vegetation config: %+v", cfg.Vegetation)
	}
	if cfg.Vegetation.SpeciesFile != filepath.Join(tmpDir, "species.csv") {
		t.Errorf("expected species file, got %q", cfg.Vegetation.SpeciesFile)
	}
	if cfg.Moveables.TileSize != 16 || cfg.Moveables.ViewDistance != 200 {
		t.Errorf("unexpected moveables config: %+v", cfg.Moveables)
	}
	if cfg.Graphics.Width != 1920 || cfg.Graphics.SimHz != 120 {
		t.Errorf("unexpected graphics config: %+v", cfg.Graphics)
	}
	// Untouched keys keep their defaults.
	if cfg.Terrain.DrawDistance != 6000 {
		t.Errorf("expected default draw distance, got %f", cfg.Terrain.DrawDistance)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "highland.log" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
terrain:
  tile_vertices: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "typo.yaml")
	yamlContent := `
terrain:
  tile_vertice: 33
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for unknown key, got nil")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load, got %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("empty file changed the defaults: %+v", cfg)
	}
}

func TestLoadFromFileAbsolutePaths(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	dem := filepath.Join(t.TempDir(), "abs.asc")
	yamlContent := "world:\n  dem_path: \"" + filepath.ToSlash(dem) + "\"\n"
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.World.DEMPath != filepath.ToSlash(dem) {
		t.Errorf("absolute path rewritten: got %q, want %q", cfg.World.DEMPath, dem)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tile vertices", func(c *Config) { c.Terrain.TileVertices = 1 }},
		{"vertex spacing", func(c *Config) { c.Terrain.VertexSpacing = 0 }},
		{"trials", func(c *Config) { c.Vegetation.TrialsPerTile = -1 }},
		{"clear radius", func(c *Config) { c.Vegetation.ClearRadius = -1 }},
		{"moveables tile size", func(c *Config) { c.Moveables.TileSize = 0 }},
		{"synth size", func(c *Config) { c.World.SynthCols = 1 }},
		{"near far", func(c *Config) { c.Camera.Far = c.Camera.Near }},
		{"log level", func(c *Config) { c.Logging.Level = "chatty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.World.Seed = 99
	cfg.Terrain.BlendSeamNormals = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	back, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if back.World.Seed != 99 || !back.Terrain.BlendSeamNormals {
		t.Errorf("round trip lost values: %+v %+v", back.World, back.Terrain)
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

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "highland.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find highland.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "dem flag",
			setup: func() { *flagDEM = "terrain.asc" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.World.DEMPath != "terrain.asc" {
					t.Errorf("expected dem path terrain.asc, got %s", cfg.World.DEMPath)
				}
			},
			teardown: func() { *flagDEM = "" },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 7 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.World.Seed != 7 {
					t.Errorf("expected seed 7, got %d", cfg.World.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name:  "water flag",
			setup: func() { *flagWater = 5 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Vegetation.WaterLevel != 5 {
					t.Errorf("expected water level 5, got %v", cfg.Vegetation.WaterLevel)
				}
			},
			teardown: func() { *flagWater = -1 },
		},
		{
			name:  "draw distance and log file flags",
			setup: func() {
				*flagDrawDist = 900
				*flagLogFile = "view.log"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.DrawDistance != 900 {
					t.Errorf("expected draw distance 900, got %v", cfg.Terrain.DrawDistance)
				}
				if cfg.Logging.LogFile != "view.log" {
					t.Errorf("expected log file view.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() {
				*flagDrawDist = 0
				*flagLogFile = ""
			},
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
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
			tt.verify(t, cfg)
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

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}
