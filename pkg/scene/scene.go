package scene

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/wirecube/pkg/math3d"
	"github.com/taigrr/wirecube/pkg/models"
	"github.com/taigrr/wirecube/pkg/render"
)

// Spring constants for easing the spin rate when auto-spin is toggled.
// Damping 1 is critically damped (no overshoot).
const (
	spinFrequency = 4.0
	spinDamping   = 1.0
)

// Palette colors the three segment groups and the viewport frame.
type Palette struct {
	Background render.Color
	Grid       render.Color
	Axes       render.Color
	Model      render.Color
	// Frame outlines the viewport when it does not cover the surface.
	Frame render.Color
}

// DefaultPalette is used by the viewer and snapshot renderer.
var DefaultPalette = Palette{
	Background: render.RGB(30, 30, 40),
	Grid:       render.RGB(70, 70, 85),
	Axes:       render.ColorYellow,
	Model:      render.ColorWhite,
	Frame:      render.RGB(110, 110, 130),
}

// Scene is the mutable per-frame state built from a Config. It is not safe
// for concurrent use.
type Scene struct {
	cfg Config

	rotate math3d.Vec3 // current model rotation in degrees

	// spinRate scales SpinDegPerSec; it is eased toward 1 or 0 by the spring.
	spinRate   float64
	spinAccel  float64
	spinSpring harmonica.Spring

	mesh       *models.Mesh
	meshLines  []math3d.Line3
	meshBounds render.AABB
}

// New creates a scene from a resolved config. fps is the rate at which
// Update will be called.
func New(cfg Config, fps int) *Scene {
	if fps <= 0 {
		fps = 60
	}
	s := &Scene{
		cfg:        cfg,
		rotate:     vec3(cfg.RotateDeg),
		spinSpring: harmonica.NewSpring(harmonica.FPS(fps), spinFrequency, spinDamping),
	}
	if cfg.AutoSpin {
		s.spinRate = 1
	}
	return s
}

// Config returns the settings the scene was built from, with the current
// projection mode and auto-spin state.
func (s *Scene) Config() Config {
	return s.cfg
}

// LoadModel loads a glTF/GLB file and draws its edges with the cube.
func (s *Scene) LoadModel(path string) error {
	mesh, err := models.LoadGLB(path)
	if err != nil {
		return fmt.Errorf("load model %s: %w", path, err)
	}
	s.SetMesh(mesh)
	render.Logger().Info("model loaded",
		slog.String("path", path),
		slog.Int("vertices", mesh.VertexCount()),
		slog.Int("edges", mesh.EdgeCount()),
		slog.Any("center", s.meshBounds.Center()),
		slog.Any("size", s.meshBounds.Size()),
	)
	return nil
}

// SetMesh replaces the loaded model with a copy of m; nil removes it.
// Bounds are recomputed from the vertices, so m may be built without
// calling CalculateBounds.
func (s *Scene) SetMesh(m *models.Mesh) {
	s.mesh, s.meshLines, s.meshBounds = nil, nil, render.AABB{}
	if m == nil {
		return
	}
	s.mesh = m.Clone()
	s.mesh.CalculateBounds()
	s.meshLines = s.mesh.Lines()
	s.meshBounds = render.NewAABB(s.mesh.GetBounds())
}

// Mesh returns the scene's copy of the loaded model, if any.
func (s *Scene) Mesh() *models.Mesh {
	return s.mesh
}

// Perspective reports whether the perspective projection is active.
func (s *Scene) Perspective() bool {
	return s.cfg.Perspective
}

// SetPerspective switches between perspective and orthographic projection.
func (s *Scene) SetPerspective(on bool) {
	if s.cfg.Perspective == on {
		return
	}
	s.cfg.Perspective = on
	render.Logger().Info("projection changed", slog.Bool("perspective", on))
}

// AutoSpin reports whether auto-spin is on.
func (s *Scene) AutoSpin() bool {
	return s.cfg.AutoSpin
}

// ToggleAutoSpin flips auto-spin and returns the new state. The spin rate
// eases to its new target rather than jumping.
func (s *Scene) ToggleAutoSpin() bool {
	s.cfg.AutoSpin = !s.cfg.AutoSpin
	render.Logger().Info("auto-spin changed", slog.Bool("on", s.cfg.AutoSpin))
	return s.cfg.AutoSpin
}

// Rotation returns the current model rotation in degrees.
func (s *Scene) Rotation() math3d.Vec3 {
	return s.rotate
}

// Update advances the animation by dt seconds. It should be called once per
// frame at the fps given to New.
func (s *Scene) Update(dt float64) {
	target := 0.0
	if s.cfg.AutoSpin {
		target = 1
	}
	s.spinRate, s.spinAccel = s.spinSpring.Update(s.spinRate, s.spinAccel, target)

	step := float32(s.spinRate * dt)
	s.rotate = s.rotate.Add(vec3(s.cfg.SpinDegPerSec).Scale(step))
}

// ModelMatrix returns T * Rz * Ry * Rx * S for the current transform.
func (s *Scene) ModelMatrix() math3d.Mat4 {
	return math3d.ModelMatrix(vec3(s.cfg.Translate), s.rotate, vec3(s.cfg.Scale))
}

// ViewMatrix places the whole scene in front of the eye.
func (s *Scene) ViewMatrix() math3d.Mat4 {
	return math3d.ModelMatrix(vec3(s.cfg.ViewTranslate), vec3(s.cfg.ViewRotateDeg), math3d.One3())
}

// ProjectionMatrix builds the active projection for a surface of
// width x height pixels.
func (s *Scene) ProjectionMatrix(width, height int) (math3d.Mat4, error) {
	aspect := float32(1)
	if height != 0 {
		aspect = float32(width) / float32(height)
	}

	var (
		p   math3d.Mat4
		err error
	)
	if s.cfg.Perspective {
		p, err = math3d.Perspective(s.cfg.FovY, aspect, s.cfg.Near, s.cfg.Far)
	} else {
		halfH := s.cfg.OrthoHeight * 0.5
		halfW := halfH * aspect
		p, err = math3d.Orthographic(-halfW, halfW, -halfH, halfH, s.cfg.Near, s.cfg.Far)
	}
	if err != nil {
		return math3d.Mat4{}, fmt.Errorf("projection: %w", err)
	}
	return p, nil
}

// Viewport converts the normalized viewport to pixels for a surface of
// width x height. Width and height are at least one pixel.
func (s *Scene) Viewport(width, height int) render.Viewport {
	w, h := float32(width), float32(height)
	vp := s.cfg.Viewport
	return render.Viewport{
		X: vp.X * w,
		Y: vp.Y * h,
		W: max(1, vp.W*w),
		H: max(1, vp.H*h),
	}
}

func (s *Scene) gridLines() []math3d.Line3 {
	if !s.cfg.ShowGrid {
		return nil
	}
	return models.GridXZ(s.cfg.GridExtent, s.cfg.GridStep)
}

func (s *Scene) axisLines() []math3d.Line3 {
	if !s.cfg.ShowAxes {
		return nil
	}
	return models.Axis(s.cfg.AxisLength)
}

// WorldLines returns the world-fixed segments: axes, then grid.
func (s *Scene) WorldLines() []math3d.Line3 {
	return append(s.axisLines(), s.gridLines()...)
}

// ModelLines returns the segments that follow the model transform: the
// cube, then the loaded model.
func (s *Scene) ModelLines() []math3d.Line3 {
	var lines []math3d.Line3
	if s.cfg.ShowCube {
		lines = append(lines, models.Cube(s.cfg.CubeSize)...)
	}
	return append(lines, s.meshLines...)
}

// modelBounds is the object-space box around ModelLines.
func (s *Scene) modelBounds() render.AABB {
	var cube render.AABB
	if s.cfg.ShowCube {
		h := s.cfg.CubeSize / 2
		cube = render.NewAABB(math3d.V3(-h, -h, -h), math3d.V3(h, h, h))
	}
	switch {
	case s.mesh == nil:
		return cube
	case !s.cfg.ShowCube:
		return s.meshBounds
	}
	return cube.Union(s.meshBounds)
}

// Draw renders one frame into w: the world group under the view matrix,
// then the model group under view * model. A viewport smaller than the
// surface is outlined first.
func (s *Scene) Draw(w *render.Wireframe, pal Palette) error {
	fb := w.Framebuffer()
	proj, err := s.ProjectionMatrix(fb.Width, fb.Height)
	if err != nil {
		return err
	}
	vp := s.Viewport(fb.Width, fb.Height)
	view := s.ViewMatrix()

	w.Begin(pal.Background)
	if vp != render.FullViewport(fb.Width, fb.Height) {
		fb.DrawRectOutline(int(vp.X), int(vp.Y), int(vp.W), int(vp.H), pal.Frame)
	}

	world := s.WorldLines()
	axes := len(s.axisLines())
	w.DrawLines(world[:axes], view, proj, vp, pal.Axes)
	w.DrawLines(world[axes:], view, proj, vp, pal.Grid)

	model := view.Mul(s.ModelMatrix())
	w.DrawBounded(s.ModelLines(), s.modelBounds(), model, proj, vp, pal.Model)
	w.End()
	return nil
}
