// Package world ties the terrain, vegetation and moveables grids into one world and
// runs the per-frame culling and the terrain edits against it.
package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/highland/internal/config"
	"github.com/Faultbox/highland/internal/engine/camera"
	"github.com/Faultbox/highland/internal/engine/terrain"
	"github.com/Faultbox/highland/internal/game/moveables"
	"github.com/Faultbox/highland/internal/game/vegetation"
	"github.com/Faultbox/highland/internal/logger"
	"github.com/Faultbox/highland/pkg/formats"
)

// ErrNoTerrain is returned when a world is built without a heightfield.
var ErrNoTerrain = errors.New("world has no terrain")

// Options configure the grids built on top of the terrain.
type Options struct {
	Vegetation   vegetation.BuildOptions
	Moveables    moveables.Options
	DrawDistance float32 // terrain draw box half-extent
}

// DefaultOptions returns the reference grid settings.
func DefaultOptions() Options {
	return Options{
		Vegetation:   vegetation.DefaultBuildOptions(),
		Moveables:    moveables.DefaultOptions(),
		DrawDistance: 6000,
	}
}

// World owns every spatial grid of a session. It is driven from a single goroutine:
// edits happen between frames, never while a frame is being culled or drawn.
type World struct {
	Terrain    *terrain.Terrain
	Vegetation *vegetation.Grid
	Moveables  *moveables.Grid

	Frustum camera.Frustum
	Boxes   *camera.Boxes

	visible []int
	log     *zap.Logger
}

// New builds the vegetation and moveables grids over ter.
func New(ter *terrain.Terrain, opts Options) (*World, error) {
	if ter == nil {
		return nil, ErrNoTerrain
	}

	veg, err := vegetation.Build(ter, opts.Vegetation)
	if err != nil {
		return nil, fmt.Errorf("building vegetation: %w", err)
	}

	extentX, extentZ := ter.Extent()
	mov, err := moveables.New(extentX, extentZ, opts.Moveables)
	if err != nil {
		return nil, fmt.Errorf("building moveables grid: %w", err)
	}

	w := &World{
		Terrain:    ter,
		Vegetation: veg,
		Moveables:  mov,
		Boxes:      camera.NewBoxes(opts.DrawDistance, 0, nil),
		log:        logger.Named("world"),
	}
	w.log.Info("world ready",
		zap.Int("tiles", ter.NumTiles()),
		zap.Float32("extentX", extentX),
		zap.Float32("extentZ", extentZ),
		zap.Int("plants", veg.PlantCount()))
	return w, nil
}

// FromDEM builds the terrain from dem and then the rest of the world.
func FromDEM(dem *formats.DEM, terrainOpts terrain.Options, opts Options) (*World, error) {
	ter, err := terrain.FromDEM(dem, terrainOpts)
	if err != nil {
		return nil, fmt.Errorf("building terrain: %w", err)
	}
	return New(ter, opts)
}

// Load builds a world from configuration. Without a DEM path a synthetic DEM is generated.
func Load(cfg *config.Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dem, err := loadDEM(cfg)
	if err != nil {
		return nil, err
	}

	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	done := logger.Timed("world", "world built")
	w, err := FromDEM(dem, TerrainOptions(cfg), opts)
	if err != nil {
		return nil, err
	}
	done(zap.Int("tiles", w.Terrain.NumTiles()))
	return w, nil
}

func loadDEM(cfg *config.Config) (*formats.DEM, error) {
	log := logger.Named("world")
	if cfg.World.DEMPath == "" {
		log.Info("synthesizing elevation",
			zap.Int("cols", cfg.World.SynthCols),
			zap.Int("rows", cfg.World.SynthRows),
			zap.Int64("seed", cfg.World.Seed))
		return terrain.SynthesizeDEM(cfg.World.SynthCols, cfg.World.SynthRows,
			cfg.Terrain.VertexSpacing, cfg.World.SynthAmplitude, cfg.World.Seed), nil
	}

	dem, err := formats.ParseDEMFile(cfg.World.DEMPath)
	if err != nil {
		return nil, fmt.Errorf("loading DEM: %w", err)
	}
	stats := dem.Stats()
	log.Info("DEM loaded",
		zap.String("path", cfg.World.DEMPath),
		zap.Int("cols", dem.Cols),
		zap.Int("rows", dem.Rows),
		zap.Float64("min", stats.Min),
		zap.Float64("max", stats.Max),
		zap.Int("filled", dem.Filled))
	return dem, nil
}

// TerrainOptions maps the terrain section of cfg.
func TerrainOptions(cfg *config.Config) terrain.Options {
	return terrain.Options{
		Layout: terrain.Layout{
			TileVertices: cfg.Terrain.TileVertices,
			Spacing:      cfg.Terrain.VertexSpacing,
		},
		BlendSeamNormals: cfg.Terrain.BlendSeamNormals,
		TextureRepeat:    cfg.Terrain.TextureRepeat,
	}
}

// OptionsFromConfig maps the vegetation and moveables sections of cfg, loading the
// species table when one is configured.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	species := vegetation.DefaultSpecies()
	if cfg.Vegetation.SpeciesFile != "" {
		var err error
		species, err = vegetation.LoadSpeciesFile(cfg.Vegetation.SpeciesFile)
		if err != nil {
			return Options{}, err
		}
	}

	return Options{
		Vegetation: vegetation.BuildOptions{
			Trials:         cfg.Vegetation.TrialsPerTile,
			WaterLevel:     cfg.Vegetation.WaterLevel,
			Seed:           uint64(cfg.World.Seed),
			Species:        species,
			DetailDistance: cfg.Vegetation.DetailDistance,
			ClearRadius:    cfg.Vegetation.ClearRadius,
		},
		Moveables: moveables.Options{
			TileSize:     cfg.Moveables.TileSize,
			ViewDistance: cfg.Moveables.ViewDistance,
		},
		DrawDistance: cfg.Terrain.DrawDistance,
	}, nil
}
