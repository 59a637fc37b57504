// terraintool inspects and exports the heightfield, vegetation and moveables of a world
// without opening a window.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Faultbox/highland/internal/config"
	"github.com/Faultbox/highland/internal/engine/debug"
	"github.com/Faultbox/highland/internal/engine/terrain"
	"github.com/Faultbox/highland/internal/game/ui"
	"github.com/Faultbox/highland/internal/game/world"
	"github.com/Faultbox/highland/internal/logger"
	"github.com/Faultbox/highland/pkg/formats"
	"github.com/Faultbox/highland/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "surface":
		cmdSurface(args)
	case "raycast":
		cmdRaycast(args)
	case "flatten":
		cmdFlatten(args)
	case "path":
		cmdPath(args)
	case "dump":
		cmdDump(args)
	case "export":
		cmdExport(args)
	case "minimap":
		cmdMinimap(args)
	case "gen-dem":
		cmdGenDEM(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terraintool - heightfield world utility

Usage:
  terraintool <command> [options] [args]

World options (every command except gen-dem):
  -config <file.yaml>   Config file (defaults otherwise)
  -dem <file.asc>       ASCII DEM grid (synthetic terrain otherwise)
  -seed <n>             World seed
  -v                    Log world construction

Commands:
  info                              Show terrain and vegetation summary
  surface <x> <z>                   Surface height and normal at a point
  raycast <ox> <oy> <oz> <dx> <dy> <dz>
                                    First terrain hit along origin + d*t
  flatten <x> <z> <xw> <zw> [yaw]   Flatten a footprint and report the edit
  path <x0> <z0> <x1> <z1>          Walkable route over the moveables grid
  dump <out.bin> [-verify]          Write the binary plant layout
  export <out.csv>                  Write every plant as CSV
  minimap <out.png> [-size n]       Render the elevation minimap
  gen-dem <out.asc> [-cols n] [-rows n] [-cell f] [-amp f] [-seed n]
                                    Write a synthetic ASCII DEM

Examples:
  terraintool info -dem island.asc
  terraintool surface -seed 7 2500 3100
  terraintool flatten 3000 3000 40 40 30
  terraintool minimap -size 512 map.png`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func usage(line string) {
	fmt.Fprintln(os.Stderr, "Usage: terraintool "+line)
	os.Exit(1)
}

// worldFlags registers the world options on fs.
type worldFlags struct {
	config  *string
	dem     *string
	seed    *int64
	verbose *bool
}

func addWorldFlags(fs *flag.FlagSet) worldFlags {
	return worldFlags{
		config:  fs.String("config", "", "Config file"),
		dem:     fs.String("dem", "", "ASCII DEM grid"),
		seed:    fs.Int64("seed", 0, "World seed (0 keeps the configured seed)"),
		verbose: fs.Bool("v", false, "Log world construction"),
	}
}

func (f worldFlags) load() *world.World {
	level := "warn"
	if *f.verbose {
		level = "info"
	}
	if err := logger.Init(level, ""); err != nil {
		fail("%v", err)
	}

	cfg := config.Default()
	if *f.config != "" {
		loaded, err := config.LoadFile(*f.config)
		if err != nil {
			fail("%v", err)
		}
		cfg = loaded
	}
	if *f.dem != "" {
		cfg.World.DEMPath = *f.dem
	}
	if *f.seed != 0 {
		cfg.World.Seed = *f.seed
	}

	w, err := world.Load(cfg)
	if err != nil {
		fail("%v", err)
	}
	return w
}

func floatArgs(fs *flag.FlagSet, n int) []float32 {
	out := make([]float32, n)
	for i := range n {
		v, err := strconv.ParseFloat(fs.Arg(i), 32)
		if err != nil {
			fail("argument %d: %v", i+1, err)
		}
		out[i] = float32(v)
	}
	return out
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	wf := addWorldFlags(fs)
	fs.Parse(args)

	w := wf.load()
	ter := w.Terrain
	extentX, extentZ := ter.Extent()

	lo, hi := ter.Tiles[0].MinY, ter.Tiles[0].MaxY
	for i := range ter.Tiles {
		lo = min(lo, ter.Tiles[i].MinY)
		hi = max(hi, ter.Tiles[i].MaxY)
	}

	fmt.Printf("Tiles:     %d x %d (%d)\n", ter.Cols, ter.Rows, ter.NumTiles())
	fmt.Printf("Tile size: %d vertices, %.1f units\n", ter.TileVertices, ter.TileSide())
	fmt.Printf("Extent:    %.1f x %.1f\n", extentX, extentZ)
	fmt.Printf("Height:    %.1f .. %.1f\n", lo, hi)
	fmt.Printf("Moveables: %d x %d tiles of %.1f, window %d\n",
		w.Moveables.Cols, w.Moveables.Rows, w.Moveables.TileSize, w.Moveables.WindowSide())
	fmt.Printf("Plants:    %d\n", w.Vegetation.PlantCount())
	fmt.Println()
	fmt.Println("Plants by species:")

	counts := make([]int, len(w.Vegetation.Species))
	for i := range w.Vegetation.Tiles {
		for _, p := range w.Vegetation.Tiles[i].Plants {
			counts[p.Species]++
		}
	}
	for i, s := range w.Vegetation.Species {
		fmt.Printf("  %-10s %d\n", s.Name, counts[i])
	}
}

func cmdSurface(args []string) {
	fs := flag.NewFlagSet("surface", flag.ExitOnError)
	wf := addWorldFlags(fs)
	fs.Parse(args)
	if fs.NArg() < 2 {
		usage("surface <x> <z>")
	}
	v := floatArgs(fs, 2)

	w := wf.load()
	p, n, ok := w.Terrain.SurfaceAt(v[0], v[1])
	if !ok {
		fail("(%.2f, %.2f) is off the map", v[0], v[1])
	}
	tile, _ := w.Terrain.Locate(v[0], v[1])
	fmt.Printf("Tile:   %d\n", tile)
	fmt.Printf("Height: %.3f\n", p.Y)
	fmt.Printf("Normal: (%.4f, %.4f, %.4f)\n", n.X, n.Y, n.Z)
}

func cmdRaycast(args []string) {
	fs := flag.NewFlagSet("raycast", flag.ExitOnError)
	wf := addWorldFlags(fs)
	fs.Parse(args)
	if fs.NArg() < 6 {
		usage("raycast <ox> <oy> <oz> <dx> <dy> <dz>")
	}
	v := floatArgs(fs, 6)

	w := wf.load()
	origin := math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	ray := math.Vec3{X: v[3], Y: v[4], Z: v[5]}
	hit, ok := w.Terrain.Raycast(origin, ray)
	if !ok {
		fmt.Println("No hit")
		return
	}
	fmt.Printf("Point:  (%.3f, %.3f, %.3f)\n", hit.Point.X, hit.Point.Y, hit.Point.Z)
	fmt.Printf("Normal: (%.4f, %.4f, %.4f)\n", hit.Normal.X, hit.Normal.Y, hit.Normal.Z)
	fmt.Printf("T:      %.4f\n", hit.T)
	fmt.Printf("Quad:   tile %d row %d col %d\n", hit.Quad.Tile, hit.Quad.Row, hit.Quad.Col)
}

func cmdFlatten(args []string) {
	fs := flag.NewFlagSet("flatten", flag.ExitOnError)
	wf := addWorldFlags(fs)
	dumpPath := fs.String("dump", "", "Write the plant layout after flattening")
	fs.Parse(args)
	if fs.NArg() < 4 {
		usage("flatten <x> <z> <xw> <zw> [yaw]")
	}
	v := floatArgs(fs, 4)
	var yaw float32
	if fs.NArg() > 4 {
		f, err := strconv.ParseFloat(fs.Arg(4), 32)
		if err != nil {
			fail("yaw: %v", err)
		}
		yaw = float32(f)
	}

	w := wf.load()
	before := w.Vegetation.PlantCount()
	res, ok, err := w.Flatten(math.Vec2{X: v[0], Y: v[1]}, v[2], v[3], yaw)
	if err != nil {
		fail("%v", err)
	}
	if !ok {
		fail("(%.2f, %.2f) is off the map", v[0], v[1])
	}
	fmt.Printf("Height:   %.3f\n", res.Height)
	fmt.Printf("Vertices: %d\n", res.Vertices)
	fmt.Printf("Tiles:    %v\n", res.Tiles)
	fmt.Printf("Plants:   %d -> %d (%d removed)\n", before, w.Vegetation.PlantCount(), res.PlantsRemoved)

	if *dumpPath != "" {
		if err := w.Vegetation.WriteDumpFile(*dumpPath); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Wrote %s\n", *dumpPath)
	}
}

func cmdPath(args []string) {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	wf := addWorldFlags(fs)
	slope := fs.Float64("slope", 35, "Steepest walkable slope in degrees")
	fs.Parse(args)
	if fs.NArg() < 4 {
		usage("path <x0> <z0> <x1> <z1>")
	}
	v := floatArgs(fs, 4)

	w := wf.load()
	wm := w.NewWalkMap(w.Vegetation.WaterLevel, float32(*slope))
	route := wm.FindPath(math.Vec3{X: v[0], Z: v[1]}, math.Vec3{X: v[2], Z: v[3]})
	if route == nil {
		fmt.Println("No path")
		return
	}
	for i, p := range route {
		fmt.Printf("%4d  (%.1f, %.1f, %.1f)\n", i, p.X, p.Y, p.Z)
	}
}

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	wf := addWorldFlags(fs)
	verify := fs.Bool("verify", false, "Read the file back and compare")
	fs.Parse(args)
	if fs.NArg() < 1 {
		usage("dump <out.bin> [-verify]")
	}
	path := fs.Arg(0)

	w := wf.load()
	if err := w.Vegetation.WriteDumpFile(path); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s: %d tiles, %d plants\n", path, w.Vegetation.NumTiles(), w.Vegetation.PlantCount())

	if !*verify {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		fail("%v", err)
	}
	defer f.Close()
	got, err := formats.ReadPlantDump(f)
	if err != nil {
		fail("verify: %v", err)
	}

	var want, read bytes.Buffer
	if err := formats.WritePlantDump(&want, w.Vegetation.ToDump()); err != nil {
		fail("verify: %v", err)
	}
	if err := formats.WritePlantDump(&read, got); err != nil {
		fail("verify: %v", err)
	}
	if !bytes.Equal(want.Bytes(), read.Bytes()) {
		fail("verify: %s does not match the layout (%d plants read)", path, got.PlantCount())
	}
	fmt.Println("Verified")
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	wf := addWorldFlags(fs)
	fs.Parse(args)
	if fs.NArg() < 1 {
		usage("export <out.csv>")
	}

	w := wf.load()
	f, err := os.Create(fs.Arg(0))
	if err != nil {
		fail("%v", err)
	}
	defer f.Close()
	if err := w.Vegetation.ExportCSV(f); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %d plants to %s\n", w.Vegetation.PlantCount(), fs.Arg(0))
}

func cmdMinimap(args []string) {
	fs := flag.NewFlagSet("minimap", flag.ExitOnError)
	wf := addWorldFlags(fs)
	size := fs.Int("size", 512, "Edge length in pixels")
	res := fs.Float64("res", 40, "World units per sample")
	plants := fs.Bool("plants", false, "Mark every plant")
	fs.Parse(args)
	if fs.NArg() < 1 {
		usage("minimap <out.png> [-size n]")
	}

	w := wf.load()
	m := ui.NewMinimap()
	m.Size = *size
	m.Resolution = float32(*res)
	m.WaterLevel = w.Vegetation.WaterLevel
	m.ShowPlants = *plants

	extentX, extentZ := w.Terrain.Extent()
	img := m.Render(w, math.Vec3{X: extentX / 2, Z: extentZ / 2})
	if err := debug.WritePNG(fs.Arg(0), img); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s\n", fs.Arg(0))
}

func cmdGenDEM(args []string) {
	fs := flag.NewFlagSet("gen-dem", flag.ExitOnError)
	cols := fs.Int("cols", 595, "Samples per row")
	rows := fs.Int("rows", 595, "Rows")
	cell := fs.Float64("cell", 10, "Cell size in world units")
	amp := fs.Float64("amp", 400, "Peak elevation")
	seed := fs.Int64("seed", 1, "Noise seed")
	fs.Parse(args)
	if fs.NArg() < 1 {
		usage("gen-dem <out.asc> [-cols n] [-rows n] [-cell f] [-amp f] [-seed n]")
	}

	dem := terrain.SynthesizeDEM(*cols, *rows, float32(*cell), float32(*amp), *seed)
	f, err := os.Create(fs.Arg(0))
	if err != nil {
		fail("%v", err)
	}
	defer f.Close()
	if err := formats.WriteDEM(f, dem); err != nil {
		fail("%v", err)
	}
	stats := dem.Stats()
	fmt.Printf("Wrote %s: %d x %d, %.1f .. %.1f\n", fs.Arg(0), dem.Cols, dem.Rows, stats.Min, stats.Max)
}
