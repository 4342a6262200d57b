package render

import (
	"log/slog"

	"github.com/taigrr/wirecube/pkg/math3d"
)

// Wireframe draws groups of object-space segments into a framebuffer.
// Each group shares one model matrix; a frame is usually two groups, the
// world-fixed grid and axes and the model that follows its own transform.
type Wireframe struct {
	fb *Framebuffer

	// Per-frame counters, reset by Begin.
	Submitted int
	Drawn     int
	Culled    int
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(fb *Framebuffer) *Wireframe {
	return &Wireframe{fb: fb}
}

// Framebuffer returns the draw target.
func (w *Wireframe) Framebuffer() *Framebuffer {
	return w.fb
}

// Begin clears the framebuffer and resets the frame counters.
func (w *Wireframe) Begin(bg Color) {
	w.fb.Clear(bg)
	w.Submitted = 0
	w.Drawn = 0
	w.Culled = 0
}

// DrawLines projects lines through proj*model into vp and draws the
// survivors. It returns the number of segments drawn.
func (w *Wireframe) DrawLines(lines []math3d.Line3, model, proj math3d.Mat4, vp Viewport, color Color) int {
	n := w.fb.DrawSegments(Project(lines, model, proj, vp), color)
	w.Submitted += len(lines)
	w.Drawn += n
	return n
}

// DrawBounded is DrawLines with a whole-group early out: when bounds, the
// object-space box around lines, is entirely outside the view volume the
// lines are counted as submitted but never projected.
func (w *Wireframe) DrawBounded(lines []math3d.Line3, bounds AABB, model, proj math3d.Mat4, vp Viewport, color Color) int {
	if len(lines) > 0 && bounds.Outside(proj.Mul(model)) {
		w.Submitted += len(lines)
		w.Culled += len(lines)
		return 0
	}
	return w.DrawLines(lines, model, proj, vp, color)
}

// End logs the frame counters at debug level.
func (w *Wireframe) End() {
	Logger().Debug("frame drawn",
		slog.Int("submitted", w.Submitted),
		slog.Int("drawn", w.Drawn),
		slog.Int("culled", w.Culled),
	)
}
