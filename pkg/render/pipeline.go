// Package render turns object-space line segments into pixel-space segments
// and draws them into a software framebuffer.
//
// The pipeline stages are Model -> Projection (clip space) -> perspective
// divide (NDC) -> trivial reject -> viewport -> pixel.
package render

import (
	"iter"

	"github.com/taigrr/wirecube/pkg/math3d"
)

// Viewport is a pixel sub-rectangle of the output surface. X and Y are the
// offsets of its top-left corner; W and H are expected to be at least 1.
type Viewport struct {
	X, Y, W, H float32
}

// FullViewport covers a whole width x height surface.
func FullViewport(width, height int) Viewport {
	return Viewport{W: float32(width), H: float32(height)}
}

// ToPixel maps an NDC position to top-left-origin pixel coordinates.
func (vp Viewport) ToPixel(ndc math3d.Vec3) math3d.Vec2 {
	sx := (ndc.X*0.5+0.5)*vp.W + vp.X
	syUp := (ndc.Y*0.5+0.5)*vp.H + vp.Y // bottom-left origin
	sy := (vp.Y + vp.H) - (syUp - vp.Y)
	return math3d.V2(sx, sy)
}

// Segment is a pixel-space line segment.
type Segment struct {
	A, B math3d.Vec2
}

// TrivialReject reports whether both NDC endpoints lie outside the same face
// of the [-1,1] cube. Segments that are only partly outside are kept whole.
func TrivialReject(a, b math3d.Vec3) bool {
	switch {
	case a.X < -1 && b.X < -1,
		a.X > 1 && b.X > 1,
		a.Y < -1 && b.Y < -1,
		a.Y > 1 && b.Y > 1,
		a.Z < -1 && b.Z < -1,
		a.Z > 1 && b.Z > 1:
		return true
	}
	return false
}

// Project returns the pixel-space segments for lines under model and proj,
// in input order, skipping trivially rejected ones. proj*model is composed
// once per call. The sequence is lazy: each range re-runs the projection.
func Project(lines []math3d.Line3, model, proj math3d.Mat4, vp Viewport) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		pm := proj.Mul(model)
		for _, l := range lines {
			seg, ok := projectLine(pm, l, vp)
			if !ok {
				continue
			}
			if !yield(seg) {
				return
			}
		}
	}
}

func projectLine(pm math3d.Mat4, l math3d.Line3, vp Viewport) (Segment, bool) {
	aNDC := pm.MulVec4(math3d.Point(l.A)).Homogenized()
	bNDC := pm.MulVec4(math3d.Point(l.B)).Homogenized()

	if TrivialReject(aNDC, bNDC) {
		return Segment{}, false
	}

	return Segment{vp.ToPixel(aNDC), vp.ToPixel(bNDC)}, true
}
