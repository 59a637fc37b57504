// Package renderer draws the terrain tiles, debug lines and object markers with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/highland/internal/engine/shader"
	"github.com/Faultbox/highland/internal/logger"
)

// Config holds renderer settings.
type Config struct {
	Width      int
	Height     int
	WaterLevel float32
	LightDir   [3]float32
}

// Renderer owns the GL programs and the dynamic line and point buffers.
type Renderer struct {
	config Config
	log    *zap.Logger

	terrainProgram uint32
	terrainVP      int32
	terrainLight   int32
	terrainWater   int32

	lineProgram uint32
	lineVP      int32

	pointProgram uint32
	pointVP      int32
	pointSize    int32

	lineVAO, lineVBO uint32
	lineCap          int
}

// New initialises GL and compiles the programs. A GL context must be current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	if cfg.LightDir == [3]float32{} {
		cfg.LightDir = [3]float32{-0.4, -1, -0.3}
	}

	r := &Renderer{config: cfg, log: logger.Named("renderer")}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.55, 0.70, 0.85, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	if r.terrainProgram, err = shader.CompileProgram(shader.TerrainVertex, shader.TerrainFragment); err != nil {
		return nil, fmt.Errorf("terrain program: %w", err)
	}
	r.terrainVP = shader.MustUniform(r.terrainProgram, "uViewProj")
	r.terrainLight = shader.Uniform(r.terrainProgram, "uLightDir")
	r.terrainWater = shader.Uniform(r.terrainProgram, "uWaterLevel")

	if r.lineProgram, err = shader.CompileProgram(shader.LineVertex, shader.LineFragment); err != nil {
		r.Close()
		return nil, fmt.Errorf("line program: %w", err)
	}
	r.lineVP = shader.MustUniform(r.lineProgram, "uViewProj")

	if r.pointProgram, err = shader.CompileProgram(shader.PointVertex, shader.LineFragment); err != nil {
		r.Close()
		return nil, fmt.Errorf("point program: %w", err)
	}
	r.pointVP = shader.MustUniform(r.pointProgram, "uViewProj")
	r.pointSize = shader.Uniform(r.pointProgram, "uPointSize")

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	return r, nil
}

// Close releases the programs and buffers.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	for _, p := range []uint32{r.terrainProgram, r.lineProgram, r.pointProgram} {
		if p != 0 {
			gl.DeleteProgram(p)
		}
	}
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawTerrain draws the given tiles of mesh.
func (r *Renderer) DrawTerrain(mesh *TerrainMesh, tiles []int, viewProj mgl32.Mat4) {
	gl.UseProgram(r.terrainProgram)
	gl.UniformMatrix4fv(r.terrainVP, 1, false, &viewProj[0])
	gl.Uniform3f(r.terrainLight, r.config.LightDir[0], r.config.LightDir[1], r.config.LightDir[2])
	gl.Uniform1f(r.terrainWater, r.config.WaterLevel)
	mesh.draw(tiles)
}

// DrawLines draws interleaved xyz rgb vertices as a line list.
func (r *Renderer) DrawLines(vertices []float32, viewProj mgl32.Mat4) {
	if r.upload(vertices) == 0 {
		return
	}
	gl.UseProgram(r.lineProgram)
	gl.UniformMatrix4fv(r.lineVP, 1, false, &viewProj[0])
	gl.BindVertexArray(r.lineVAO)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/6))
	gl.BindVertexArray(0)
}

// DrawPoints draws interleaved xyz rgb vertices as sized points.
func (r *Renderer) DrawPoints(vertices []float32, size float32, viewProj mgl32.Mat4) {
	if r.upload(vertices) == 0 {
		return
	}
	gl.UseProgram(r.pointProgram)
	gl.UniformMatrix4fv(r.pointVP, 1, false, &viewProj[0])
	gl.Uniform1f(r.pointSize, size)
	gl.BindVertexArray(r.lineVAO)
	gl.DrawArrays(gl.POINTS, 0, int32(len(vertices)/6))
	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// upload streams vertices into the shared dynamic buffer, growing it as needed.
func (r *Renderer) upload(vertices []float32) int {
	if len(vertices) < 6 {
		return 0
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	if len(vertices) > r.lineCap {
		r.lineCap = len(vertices) * 2
		gl.BufferData(gl.ARRAY_BUFFER, r.lineCap*4, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return len(vertices)
}
