package render

import (
	"github.com/taigrr/wirecube/pkg/math3d"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// BoundsOf returns the box around every endpoint in lines. The zero box is
// returned for an empty slice.
func BoundsOf(lines []math3d.Line3) AABB {
	if len(lines) == 0 {
		return AABB{}
	}
	b := AABB{Min: lines[0].A, Max: lines[0].A}
	for _, l := range lines {
		b.Min = b.Min.Min(l.A).Min(l.B)
		b.Max = b.Max.Max(l.A).Max(l.B)
	}
	return b
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the eight corners of the box.
func (b AABB) Corners() [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// Transform returns the AABB around b after transformation by m.
func (b AABB) Transform(m math3d.Mat4) AABB {
	corners := b.Corners()
	out := AABB{Min: m.MulPoint(corners[0]), Max: m.MulPoint(corners[0])}
	for _, c := range corners[1:] {
		p := m.MulPoint(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// Union returns the box around both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// cullMargin widens the clip planes for Outside, relative to w. A corner
// within it of a plane may still homogenize onto the NDC boundary.
const cullMargin = 1e-5

// Outside reports whether every segment inside the box would be dropped by
// TrivialReject under the composite pm. It holds when all eight corners are
// in front of the eye (w > 0) and beyond the same clip plane; both tests are
// linear in clip space, so they carry over to the whole box. A box that
// reaches behind the eye is never reported outside.
func (b AABB) Outside(pm math3d.Mat4) bool {
	var clip [8]math3d.Vec4
	for i, c := range b.Corners() {
		clip[i] = pm.MulVec4(math3d.Point(c))
		if !(clip[i].W > math3d.Epsilon) {
			return false
		}
	}

	const k = 1 + cullMargin
	planes := [6]func(v math3d.Vec4) bool{
		func(v math3d.Vec4) bool { return v.X < -v.W*k },
		func(v math3d.Vec4) bool { return v.X > v.W*k },
		func(v math3d.Vec4) bool { return v.Y < -v.W*k },
		func(v math3d.Vec4) bool { return v.Y > v.W*k },
		func(v math3d.Vec4) bool { return v.Z < -v.W*k },
		func(v math3d.Vec4) bool { return v.Z > v.W*k },
	}
	for _, beyond := range planes {
		all := true
		for _, v := range clip {
			if !beyond(v) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
