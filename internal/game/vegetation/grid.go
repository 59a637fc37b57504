package vegetation

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/highland/internal/engine/camera"
	"github.com/Faultbox/highland/internal/engine/terrain"
	"github.com/Faultbox/highland/internal/game/items"
	"github.com/Faultbox/highland/internal/logger"
	"github.com/Faultbox/highland/pkg/math"
)

// Grid errors.
var (
	ErrPlantCountMismatch = errors.New("plant count changed while regrouping")
	ErrNilTerrain         = errors.New("nil terrain")
	ErrOffMap             = errors.New("position is off the map")
)

// Plant is one placed plant instance.
type Plant struct {
	Position math.Vec3
	Yaw      float32 // degrees
	Species  uint8
}

// Tile holds the plants and ground items of one terrain tile.
type Tile struct {
	Index    int
	Row, Col int
	Corner   math.Vec2
	Center   math.Vec2
	Plants   []Plant // grouped by species, ascending
	Items    []items.Item
}

// BuildOptions control plant sampling.
type BuildOptions struct {
	Trials         int     // sampling trials per tile
	WaterLevel     float32 // samples at or below this height are rejected
	Seed           uint64
	Species        []Species
	DetailDistance float32
	ClearRadius    float32 // half size of the box cleared around a flattened vertex
}

// DefaultBuildOptions returns the reference sampling parameters.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Trials:         1000,
		WaterLevel:     0,
		Seed:           1,
		Species:        DefaultSpecies(),
		DetailDistance: 500,
		ClearRadius:    10,
	}
}

// Grid is the vegetation tile grid. It shares row/col topology with the terrain.
type Grid struct {
	terrain.Grid

	Side        float32
	Species     []Species
	Tiles       []Tile
	ClearRadius float32
	WaterLevel  float32
	Boxes       *camera.Boxes

	window [9]int
}

// Build samples plants over every tile of ter.
func Build(ter *terrain.Terrain, opts BuildOptions) (*Grid, error) {
	if ter == nil {
		return nil, ErrNilTerrain
	}
	if len(opts.Species) == 0 {
		opts.Species = DefaultSpecies()
	}
	if err := validateSpecies(opts.Species); err != nil {
		return nil, err
	}
	if opts.Trials < 0 {
		opts.Trials = 0
	}

	g := newGrid(ter, opts)
	side := g.Side

	counts := make([]int, len(opts.Species))
	total := 0
	for i := range g.Tiles {
		tile := &g.Tiles[i]
		rng := rand.New(rand.NewPCG(opts.Seed, uint64(tile.Index)))

		var plants []Plant
		for range opts.Trials {
			x := tile.Corner.X + rng.Float32()*side
			z := tile.Corner.Y + rng.Float32()*side
			p, _, ok := ter.SurfaceAt(x, z)
			if !ok || p.Y <= opts.WaterLevel {
				continue
			}
			species, ok := pickSpecies(opts.Species, p.Y, rng)
			if !ok {
				continue
			}
			plants = append(plants, Plant{
				Position: p,
				Yaw:      rng.Float32() * 360,
				Species:  species,
			})
		}

		grouped, err := regroup(plants, len(opts.Species))
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", tile.Index, err)
		}
		tile.Plants = grouped
		for _, p := range grouped {
			counts[p.Species]++
		}
		total += len(grouped)
	}

	log := logger.Named("vegetation")
	for i, s := range opts.Species {
		log.Debug("species placed", zap.String("species", s.Name), zap.Int("count", counts[i]))
	}
	log.Info("vegetation built",
		zap.Int("tiles", len(g.Tiles)),
		zap.Int("plants", total),
		zap.Int("trialsPerTile", opts.Trials))

	return g, nil
}

// NewEmpty creates a grid aligned with ter holding no plants.
func NewEmpty(ter *terrain.Terrain, opts BuildOptions) (*Grid, error) {
	if ter == nil {
		return nil, ErrNilTerrain
	}
	if len(opts.Species) == 0 {
		opts.Species = DefaultSpecies()
	}
	if err := validateSpecies(opts.Species); err != nil {
		return nil, err
	}
	return newGrid(ter, opts), nil
}

func newGrid(ter *terrain.Terrain, opts BuildOptions) *Grid {
	noDraw := make([]float32, len(opts.Species))
	for i, s := range opts.Species {
		noDraw[i] = s.NoDrawDistance
	}

	g := &Grid{
		Grid:        ter.Grid,
		Side:        ter.TileSide(),
		Species:     opts.Species,
		Tiles:       make([]Tile, ter.NumTiles()),
		ClearRadius: opts.ClearRadius,
		WaterLevel:  opts.WaterLevel,
		Boxes:       camera.NewBoxes(0, opts.DetailDistance, noDraw),
	}
	for i := range g.window {
		g.window[i] = terrain.Invalid
	}
	for i := range g.Tiles {
		src := ter.Tile(i)
		g.Tiles[i] = Tile{
			Index:  i,
			Row:    src.Row,
			Col:    src.Col,
			Corner: src.Corner,
			Center: src.Center,
		}
	}
	return g
}

// regroup bucket-sorts plants by species, keeping the sampled order inside each bucket.
func regroup(plants []Plant, numSpecies int) ([]Plant, error) {
	if len(plants) == 0 {
		return nil, nil
	}

	buckets := make([]int, numSpecies+1)
	for _, p := range plants {
		if int(p.Species) >= numSpecies {
			return nil, fmt.Errorf("%w: species %d out of range", ErrPlantCountMismatch, p.Species)
		}
		buckets[p.Species+1]++
	}
	for i := 1; i <= numSpecies; i++ {
		buckets[i] += buckets[i-1]
	}

	out := make([]Plant, len(plants))
	next := buckets[:numSpecies]
	placed := 0
	for _, p := range plants {
		out[next[p.Species]] = p
		next[p.Species]++
		placed++
	}

	if placed != len(plants) || buckets[numSpecies] != len(plants) {
		return nil, fmt.Errorf("%w: %d in, %d out", ErrPlantCountMismatch, len(plants), placed)
	}
	return out, nil
}

// Tile returns the tile at index, or nil when out of range.
func (g *Grid) Tile(index int) *Tile {
	if !g.Valid(index) {
		return nil
	}
	return &g.Tiles[index]
}

// Locate returns the tile containing world (x, z).
func (g *Grid) Locate(x, z float32) (int, bool) {
	if x < 0 || z < 0 {
		return terrain.Invalid, false
	}
	col := int(x / g.Side)
	row := int(z / g.Side)
	// The far map edge belongs to the last tile.
	if col == g.Cols && x <= float32(g.Cols)*g.Side {
		col = g.Cols - 1
	}
	if row == g.Rows && z <= float32(g.Rows)*g.Side {
		row = g.Rows - 1
	}
	index := g.Index(row, col)
	return index, index != terrain.Invalid
}

// PlantCount returns the number of plants across all tiles.
func (g *Grid) PlantCount() int {
	n := 0
	for i := range g.Tiles {
		n += len(g.Tiles[i].Plants)
	}
	return n
}

// SpeciesRuns returns, for each species, the [start, end) range of its plants in tile.Plants.
func (t *Tile) SpeciesRuns(numSpecies int) [][2]int {
	runs := make([][2]int, numSpecies)
	i := 0
	for s := range numSpecies {
		start := i
		for i < len(t.Plants) && int(t.Plants[i].Species) == s {
			i++
		}
		runs[s] = [2]int{start, i}
	}
	return runs
}
