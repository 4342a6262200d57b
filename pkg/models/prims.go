package models

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/wirecube/pkg/math3d"
)

// cubeEdges indexes the corners returned by cubeCorners: the back face,
// the front face, then the four edges joining them.
var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func cubeCorners(h float32) [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h},
	}
}

// Cube returns the 12 edges of an axis-aligned cube of the given edge
// length centered on the origin.
func Cube(size float32) []math3d.Line3 {
	v := cubeCorners(size / 2)
	lines := make([]math3d.Line3, 0, len(cubeEdges))
	for _, e := range cubeEdges {
		lines = append(lines, math3d.L3(v[e[0]], v[e[1]]))
	}
	return lines
}

// CubeMesh is Cube as an indexed mesh.
func CubeMesh(size float32) *Mesh {
	m := NewMesh("cube")
	for _, c := range cubeCorners(size / 2) {
		m.AddVertex(c)
	}
	for _, e := range cubeEdges {
		m.AddEdge(e[0], e[1])
	}
	m.CalculateBounds()
	return m
}

// Axis returns six segments from the origin to +-length along X, Y and Z,
// in that order.
func Axis(length float32) []math3d.Line3 {
	o := math3d.Zero3()
	return []math3d.Line3{
		math3d.L3(o, math3d.V3(length, 0, 0)),
		math3d.L3(o, math3d.V3(-length, 0, 0)),
		math3d.L3(o, math3d.V3(0, length, 0)),
		math3d.L3(o, math3d.V3(0, -length, 0)),
		math3d.L3(o, math3d.V3(0, 0, length)),
		math3d.L3(o, math3d.V3(0, 0, -length)),
	}
}

// GridXZ returns a square grid on the y=0 plane. With N = ceil(extent/step)
// it holds lines at i*step for i in [-N, N], parallel to Z and to X, each
// spanning +-N*step: 2(2N+1) segments. A non-positive step yields none.
func GridXZ(extent, step float32) []math3d.Line3 {
	if !(step > 0) {
		return nil
	}
	n := int(math32.Ceil(extent / step))
	if n < 0 {
		n = 0
	}
	span := float32(n) * step

	lines := make([]math3d.Line3, 0, 2*(2*n+1))
	for i := -n; i <= n; i++ {
		p := float32(i) * step
		lines = append(lines,
			math3d.L3(math3d.V3(p, 0, -span), math3d.V3(p, 0, span)),
			math3d.L3(math3d.V3(-span, 0, p), math3d.V3(span, 0, p)),
		)
	}
	return lines
}
