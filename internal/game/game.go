// Package game runs the viewer: a fixed-step simulation of the fly camera and world
// edits, and a throttled draw of the culled terrain, vegetation and moveables.
package game

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/highland/internal/config"
	"github.com/Faultbox/highland/internal/engine/camera"
	"github.com/Faultbox/highland/internal/engine/debug"
	"github.com/Faultbox/highland/internal/engine/input"
	"github.com/Faultbox/highland/internal/engine/lighting"
	"github.com/Faultbox/highland/internal/engine/renderer"
	"github.com/Faultbox/highland/internal/engine/window"
	"github.com/Faultbox/highland/internal/game/moveables"
	"github.com/Faultbox/highland/internal/game/ui"
	"github.com/Faultbox/highland/internal/game/vegetation"
	"github.com/Faultbox/highland/internal/game/world"
	"github.com/Faultbox/highland/internal/logger"
	"github.com/Faultbox/highland/pkg/math"
)

const (
	maxCatchUp      = 250 * time.Millisecond
	contourInterval = 25
	debugLift       = 0.5
)

// Game is the main viewer instance.
type Game struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	mesh     *renderer.TerrainMesh

	sim       *Sim
	grid      *debug.TileGridRenderer
	snapshots *debug.Snapshots
	minimap   *ui.Minimap

	showGrid     bool
	showContours bool
	showBounds   bool
	showPlants   bool

	contours     []float32
	contourTile  int
	contoursDirt bool
}

// New opens the window and uploads w.
func New(cfg *config.Config, w *world.World) (*Game, error) {
	g := &Game{
		cfg:          cfg,
		log:          logger.Named("game"),
		showPlants:   true,
		contourTile:  -1,
		contoursDirt: true,
	}
	g.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("simHz", cfg.Graphics.SimHz),
		zap.Int("drawFPS", cfg.Graphics.DrawFPS))

	var err error
	g.window, err = window.New(window.Config{
		Title:      "highland",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	g.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		WaterLevel: cfg.Vegetation.WaterLevel,
		LightDir:   lighting.DefaultSun().Direction(),
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.mesh, err = g.renderer.NewTerrainMesh(w.Terrain)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("uploading terrain: %w", err)
	}

	g.input = input.New()
	g.sim = NewSim(w, newCamera(cfg, w))
	g.grid = debug.NewTileGridRenderer(w.Terrain)
	g.snapshots = debug.NewSnapshots(".", "highland")
	g.minimap = ui.NewMinimap()
	g.minimap.WaterLevel = cfg.Vegetation.WaterLevel

	g.log.Info("viewer initialized")
	return g, nil
}

func newCamera(cfg *config.Config, w *world.World) *camera.FlyCamera {
	extentX, extentZ := w.Terrain.Extent()
	cam := camera.NewFlyCamera(math.Vec3{X: extentX / 2, Y: 200, Z: extentZ / 2})
	cam.FOVY = cfg.Camera.FOVYDegrees * gomath.Pi / 180
	cam.Near = cfg.Camera.Near
	cam.Far = cfg.Camera.Far
	cam.MoveSpeed = cfg.Camera.MoveSpeed
	cam.TurnSpeed = cfg.Camera.TurnSpeed
	if y, ok := w.Terrain.HeightAt(cam.Position.X, cam.Position.Z); ok {
		cam.Position.Y = y + 200
	}
	return cam
}

// Run simulates at SimHz and draws at most DrawFPS frames per second until quit.
func (g *Game) Run() error {
	g.running = true

	step := time.Second / time.Duration(max(1, g.cfg.Graphics.SimHz))
	drawEvery := time.Second / time.Duration(max(1, g.cfg.Graphics.DrawFPS))

	last := time.Now()
	var lastDraw time.Time
	var acc time.Duration
	frames := 0
	fpsTimer := last

	g.log.Info("starting loop", zap.Duration("step", step), zap.Duration("drawEvery", drawEvery))

	for g.running {
		now := time.Now()
		acc = min(acc+now.Sub(last), maxCatchUp)
		last = now

		if g.input.Update() {
			break
		}
		g.handleEvents()

		for acc >= step {
			g.sim.Step(g.input.Controls(), float32(step.Seconds()))
			acc -= step
		}

		if now.Sub(lastDraw) < drawEvery {
			sdl.Delay(1)
			continue
		}
		lastDraw = now
		g.draw()
		g.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			cam := g.sim.Camera.Position
			g.window.SetTitle(fmt.Sprintf("highland - %d fps - (%.0f, %.0f, %.0f)", frames, cam.X, cam.Y, cam.Z))
			g.log.Debug("fps", zap.Int("frames", frames), zap.Uint64("ticks", g.sim.Ticks))
			frames = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (g *Game) handleEvents() {
	for _, ev := range g.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			g.renderer.Resize(ev.Width, ev.Height)
		case input.EventKeyDown:
			g.handleKey(ev.Key)
		}
	}
}

func (g *Game) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		g.running = false
	case sdl.SCANCODE_G:
		g.showGrid = !g.showGrid
	case sdl.SCANCODE_C:
		g.showContours = !g.showContours
	case sdl.SCANCODE_B:
		g.showBounds = !g.showBounds
	case sdl.SCANCODE_V:
		g.showPlants = !g.showPlants
	case sdl.SCANCODE_F:
		res, err := g.sim.FlattenTarget()
		if err != nil {
			g.log.Warn("flatten failed", zap.Error(err))
			return
		}
		g.contoursDirt = true
		g.minimap.Invalidate()
		g.log.Info("flattened", zap.Float32("height", res.Height), zap.Int("plantsRemoved", res.PlantsRemoved))
	case sdl.SCANCODE_P:
		obj, err := g.sim.PlaceTarget(moveables.KindCrate)
		if err != nil {
			g.log.Warn("place failed", zap.Error(err))
			return
		}
		g.log.Info("placed", zap.Stringer("kind", obj.Kind), zap.Float32("x", obj.Position.X), zap.Float32("z", obj.Position.Z))
	case sdl.SCANCODE_E:
		n, err := g.sim.PickUpTarget()
		if err != nil {
			g.log.Warn("pick up incomplete", zap.Int("taken", n), zap.Error(err))
			return
		}
		g.log.Info("picked up", zap.Int("taken", n), zap.Int("stacks", g.sim.Inventory.Len()))
	case sdl.SCANCODE_I:
		obj, ok := g.sim.PickMoveable()
		if !ok {
			g.log.Info("nothing to inspect")
			return
		}
		fields := []zap.Field{zap.Stringer("kind", obj.Kind), zap.Float32("x", obj.Position.X), zap.Float32("z", obj.Position.Z)}
		if obj.Inventory != nil {
			fields = append(fields, zap.Int("stacks", obj.Inventory.Len()))
		}
		g.log.Info("inspect", fields...)
	case sdl.SCANCODE_M:
		img := g.minimap.Render(g.sim.World, g.sim.Camera.Position)
		if path, err := g.snapshots.Save(img); err != nil {
			g.log.Warn("minimap snapshot failed", zap.Error(err))
		} else {
			g.log.Info("minimap saved", zap.String("path", path))
		}
	case sdl.SCANCODE_F12:
		pixels, w, h := g.renderer.ReadPixels()
		if path, err := g.snapshots.SaveFramebuffer(pixels, w, h); err != nil {
			g.log.Warn("snapshot failed", zap.Error(err))
		} else {
			g.log.Info("snapshot saved", zap.String("path", path))
		}
	}
}

func (g *Game) draw() {
	cam := g.sim.Camera
	aspect := g.window.Aspect()
	view := g.sim.World.Update(cam, aspect)
	viewProj := renderer.ViewProjection(renderer.Projection(cam.FOVY, aspect, cam.Near, cam.Far), cam.ViewMatrix())

	g.renderer.Begin()
	g.renderer.DrawTerrain(g.mesh, view.Visible, viewProj)

	if g.showPlants {
		veg := g.sim.World.Vegetation
		g.renderer.DrawPoints(plantPoints(veg, view.Visible, vegetation.DrawBillboard), 3, viewProj)
		g.renderer.DrawPoints(plantPoints(veg, veg.DetailTiles(), vegetation.DrawDetail), 6, viewProj)
	}
	g.renderer.DrawLines(moveableLines(g.sim.World.Moveables, view.Moveables), viewProj)

	if g.showGrid {
		g.renderer.DrawLines(lineData(g.grid.GenerateGridLines(view.Visible, debugLift)), viewProj)
	}
	if g.showBounds {
		g.renderer.DrawLines(colorize(debug.GenerateTileBounds(g.sim.World.Terrain, view.Visible), boundsColor), viewProj)
	}
	if g.showContours {
		g.renderer.DrawLines(g.contourLines(view), viewProj)
	}
}

// contourLines traces the detail window again when the camera changes tile or the
// terrain was edited.
func (g *Game) contourLines(view world.View) []float32 {
	if !g.contoursDirt && view.CameraTile == g.contourTile {
		return g.contours
	}
	g.contourTile = view.CameraTile
	g.contoursDirt = false

	verts, abandoned, err := g.grid.GenerateContours(g.sim.World.Vegetation.DetailTiles(), contourInterval, debugLift)
	if err != nil {
		g.log.Warn("contours failed", zap.Error(err))
		g.contours = nil
		return nil
	}
	if len(abandoned) > 0 {
		g.log.Debug("contour tiles skipped", zap.Ints("tiles", abandoned))
	}
	g.contours = lineData(verts)
	return g.contours
}

// Close releases GL and window resources.
func (g *Game) Close() {
	g.log.Info("closing viewer")
	if g.mesh != nil {
		g.mesh.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
