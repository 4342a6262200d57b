// Package models provides wire primitives and model loading for wirecube.
package models

import (
	"github.com/taigrr/wirecube/pkg/math3d"
)

// Edge holds two vertex indices. Edges stored in a Mesh always have
// V[0] < V[1].
type Edge struct {
	V [2]int
}

// Mesh is an indexed edge set: shared vertices plus the unique edges
// between them.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Edges    []Edge

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3

	seen map[Edge]struct{}
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Edges:    make([]Edge, 0),
		seen:     make(map[Edge]struct{}),
	}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v math3d.Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddEdge records the edge a-b unless it is degenerate, out of range or
// already present in either direction. It reports whether the edge was added.
func (m *Mesh) AddEdge(a, b int) bool {
	if a == b || a < 0 || b < 0 || a >= len(m.Vertices) || b >= len(m.Vertices) {
		return false
	}
	if a > b {
		a, b = b, a
	}
	e := Edge{V: [2]int{a, b}}
	if m.seen == nil {
		m.seen = make(map[Edge]struct{})
	}
	if _, ok := m.seen[e]; ok {
		return false
	}
	m.seen[e] = struct{}{}
	m.Edges = append(m.Edges, e)
	return true
}

// AddTriangle records the three edges of triangle a-b-c.
func (m *Mesh) AddTriangle(a, b, c int) {
	m.AddEdge(a, b)
	m.AddEdge(b, c)
	m.AddEdge(c, a)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// EdgeCount returns the number of unique edges.
func (m *Mesh) EdgeCount() int {
	return len(m.Edges)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulPoint(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it uniformly so its largest
// dimension equals size. Flat or empty meshes are only centered.
func (m *Mesh) Fit(size float32) {
	if len(m.Vertices) == 0 {
		return
	}
	m.CalculateBounds()

	d := m.Size()
	largest := max(d.X, d.Y, d.Z)
	s := float32(1)
	if largest > math3d.Epsilon {
		s = size / largest
	}
	c := m.Center()
	m.Transform(math3d.ScaleUniform(s).Mul(math3d.Translate(-c.X, -c.Y, -c.Z)))
}

// Lines returns one object-space segment per edge.
func (m *Mesh) Lines() []math3d.Line3 {
	lines := make([]math3d.Line3, len(m.Edges))
	for i, e := range m.Edges {
		lines[i] = math3d.L3(m.Vertices[e.V[0]], m.Vertices[e.V[1]])
	}
	return lines
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Edges:     make([]Edge, len(m.Edges)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
		seen:      make(map[Edge]struct{}, len(m.Edges)),
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Edges, m.Edges)
	for _, e := range m.Edges {
		clone.seen[e] = struct{}{}
	}
	return clone
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
