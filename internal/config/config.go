// Package config handles world and viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/highland/internal/logger"
)

// ErrInvalidConfig is wrapped by Validate failures.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Vegetation VegetationConfig `yaml:"vegetation"`
	Moveables  MoveablesConfig  `yaml:"moveables"`
	Camera     CameraConfig     `yaml:"camera"`
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WorldConfig selects the elevation source.
type WorldConfig struct {
	DEMPath string `yaml:"dem_path"` // ASCII grid; empty means synthesize one
	Seed    int64  `yaml:"seed"`     // vegetation sampling and synthetic DEM seed

	SynthCols      int     `yaml:"synth_cols"`
	SynthRows      int     `yaml:"synth_rows"`
	SynthAmplitude float32 `yaml:"synth_amplitude"`
}

// TerrainConfig holds heightfield tiling settings.
type TerrainConfig struct {
	TileVertices     int     `yaml:"tile_vertices"`      // vertices per tile edge
	VertexSpacing    float32 `yaml:"vertex_spacing"`     // world units between vertices
	DrawDistance     float32 `yaml:"draw_distance"`      // terrain draw box half-extent
	BlendSeamNormals bool    `yaml:"blend_seam_normals"` // smooth vertex normals across tile edges
	TextureRepeat    float32 `yaml:"texture_repeat"`     // texture repeats per tile edge
}

// VegetationConfig holds plant sampling settings.
type VegetationConfig struct {
	TrialsPerTile  int     `yaml:"trials_per_tile"`
	WaterLevel     float32 `yaml:"water_level"`
	DetailDistance float32 `yaml:"detail_distance"`
	ClearRadius    float32 `yaml:"clear_radius"` // plant removal box half-extent around flattened vertices
	SpeciesFile    string  `yaml:"species_file"` // optional CSV species table
}

// MoveablesConfig holds object grid settings.
type MoveablesConfig struct {
	TileSize     float32 `yaml:"tile_size"`
	ViewDistance float32 `yaml:"view_distance"` // local window half-extent
}

// CameraConfig holds projection and fly-camera settings.
type CameraConfig struct {
	FOVYDegrees float32 `yaml:"fov_y_degrees"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	MoveSpeed   float32 `yaml:"move_speed"` // world units per second
	TurnSpeed   float32 `yaml:"turn_speed"` // radians per second
}

// GraphicsConfig holds display and loop timing settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	SimHz      int  `yaml:"sim_hz"`   // fixed simulation steps per second
	DrawFPS    int  `yaml:"draw_fps"` // draw throttle
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	LogJSON bool   `yaml:"log_json"` // JSON lines in LogFile
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			DEMPath:        "",
			Seed:           1,
			SynthCols:      595,
			SynthRows:      595,
			SynthAmplitude: 400,
		},
		Terrain: TerrainConfig{
			TileVertices:     100,
			VertexSpacing:    10,
			DrawDistance:     6000,
			BlendSeamNormals: false,
			TextureRepeat:    16,
		},
		Vegetation: VegetationConfig{
			TrialsPerTile:  1000,
			WaterLevel:     0,
			DetailDistance: 1500,
			ClearRadius:    10,
		},
		Moveables: MoveablesConfig{
			TileSize:     32,
			ViewDistance: 736,
		},
		Camera: CameraConfig{
			FOVYDegrees: 60,
			Near:        1,
			Far:         20000,
			MoveSpeed:   400,
			TurnSpeed:   1.5,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			SimHz:      60,
			DrawFPS:    60,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			LogJSON: false,
		},
	}
}

// Validate rejects settings the world builders cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Terrain.TileVertices < 2:
		return fmt.Errorf("%w: terrain.tile_vertices must be >= 2, got %d", ErrInvalidConfig, c.Terrain.TileVertices)
	case c.Terrain.VertexSpacing <= 0:
		return fmt.Errorf("%w: terrain.vertex_spacing must be > 0", ErrInvalidConfig)
	case c.Vegetation.TrialsPerTile < 0:
		return fmt.Errorf("%w: vegetation.trials_per_tile must be >= 0", ErrInvalidConfig)
	case c.Vegetation.ClearRadius < 0:
		return fmt.Errorf("%w: vegetation.clear_radius must be >= 0", ErrInvalidConfig)
	case c.Moveables.TileSize <= 0:
		return fmt.Errorf("%w: moveables.tile_size must be > 0", ErrInvalidConfig)
	case c.Moveables.ViewDistance < 0:
		return fmt.Errorf("%w: moveables.view_distance must be >= 0", ErrInvalidConfig)
	case c.World.DEMPath == "" && (c.World.SynthCols < 2 || c.World.SynthRows < 2):
		return fmt.Errorf("%w: world.synth_cols/synth_rows must be >= 2", ErrInvalidConfig)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera near/far must satisfy 0 < near < far", ErrInvalidConfig)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	return nil
}
