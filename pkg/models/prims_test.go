package models

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/taigrr/wirecube/pkg/math3d"
)

func vec3Approx(a, b math3d.Vec3, eps float32) bool {
	return math32.Abs(a.X-b.X) <= eps && math32.Abs(a.Y-b.Y) <= eps && math32.Abs(a.Z-b.Z) <= eps
}

func TestCube(t *testing.T) {
	lines := Cube(2)
	if len(lines) != 12 {
		t.Fatalf("Cube(2) has %d edges, want 12", len(lines))
	}

	seen := make(map[[2]math3d.Vec3]bool)
	for _, l := range lines {
		for _, p := range []math3d.Vec3{l.A, l.B} {
			for _, c := range []float32{p.X, p.Y, p.Z} {
				if c != 1 && c != -1 {
					t.Fatalf("corner %v not at +-1", p)
				}
			}
		}
		// Every edge is axis-aligned with length 2.
		if d := l.B.Sub(l.A).Len(); math32.Abs(d-2) > 1e-5 {
			t.Errorf("edge %v-%v has length %v", l.A, l.B, d)
		}
		key := [2]math3d.Vec3{l.A, l.B}
		if seen[key] || seen[[2]math3d.Vec3{l.B, l.A}] {
			t.Errorf("duplicate edge %v", key)
		}
		seen[key] = true
	}
}

func TestCubeMesh(t *testing.T) {
	m := CubeMesh(4)
	if m.VertexCount() != 8 || m.EdgeCount() != 12 {
		t.Fatalf("CubeMesh: %d vertices, %d edges", m.VertexCount(), m.EdgeCount())
	}
	if m.BoundsMin != math3d.V3(-2, -2, -2) || m.BoundsMax != math3d.V3(2, 2, 2) {
		t.Errorf("bounds = %v .. %v", m.BoundsMin, m.BoundsMax)
	}
	lines := m.Lines()
	want := Cube(4)
	for i := range want {
		flipped := math3d.L3(want[i].B, want[i].A)
		if lines[i] != want[i] && lines[i] != flipped {
			t.Errorf("edge %d = %v, want %v", i, lines[i], want[i])
		}
	}
}

func TestAxis(t *testing.T) {
	lines := Axis(5)
	if len(lines) != 6 {
		t.Fatalf("Axis(5) has %d segments, want 6", len(lines))
	}
	want := []math3d.Vec3{
		math3d.V3(5, 0, 0), math3d.V3(-5, 0, 0),
		math3d.V3(0, 5, 0), math3d.V3(0, -5, 0),
		math3d.V3(0, 0, 5), math3d.V3(0, 0, -5),
	}
	for i, l := range lines {
		if l.A != math3d.Zero3() {
			t.Errorf("segment %d starts at %v, want origin", i, l.A)
		}
		if l.B != want[i] {
			t.Errorf("segment %d ends at %v, want %v", i, l.B, want[i])
		}
	}
}

func TestGridXZ(t *testing.T) {
	tests := []struct {
		name         string
		extent, step float32
		n            int
	}{
		{"unit step", 8, 1, 8},
		{"rounds up", 2.5, 1, 3},
		{"half step", 1, 0.5, 2},
		{"zero extent", 0, 1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lines := GridXZ(tc.extent, tc.step)
			if want := 2 * (2*tc.n + 1); len(lines) != want {
				t.Fatalf("%d segments, want %d", len(lines), want)
			}
			span := float32(tc.n) * tc.step
			for _, l := range lines {
				if l.A.Y != 0 || l.B.Y != 0 {
					t.Fatalf("segment %v off the y=0 plane", l)
				}
				along := l.B.Sub(l.A)
				if math32.Abs(along.Len()-2*span) > 1e-5 {
					t.Errorf("segment %v spans %v, want %v", l, along.Len(), 2*span)
				}
			}
		})
	}

	for _, step := range []float32{0, -1} {
		if lines := GridXZ(8, step); len(lines) != 0 {
			t.Errorf("GridXZ(8, %v) returned %d segments", step, len(lines))
		}
	}
}

func TestMeshEdgeDedupe(t *testing.T) {
	m := NewMesh("tri")
	a := m.AddVertex(math3d.V3(0, 0, 0))
	b := m.AddVertex(math3d.V3(1, 0, 0))
	c := m.AddVertex(math3d.V3(0, 1, 0))

	m.AddTriangle(a, b, c)
	m.AddTriangle(c, b, a)
	if m.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", m.EdgeCount())
	}
	if m.AddEdge(a, a) {
		t.Error("degenerate edge added")
	}
	if m.AddEdge(a, 7) {
		t.Error("out of range edge added")
	}
	for _, e := range m.Edges {
		if e.V[0] >= e.V[1] {
			t.Errorf("edge %v not ordered", e.V)
		}
	}
}

func TestMeshTransformAndFit(t *testing.T) {
	m := CubeMesh(2)
	m.Transform(math3d.Translate(10, 0, 0))
	if !vec3Approx(m.Center(), math3d.V3(10, 0, 0), 1e-5) {
		t.Errorf("center after translate = %v", m.Center())
	}

	m.Fit(1)
	if !vec3Approx(m.Center(), math3d.Zero3(), 1e-5) {
		t.Errorf("center after fit = %v", m.Center())
	}
	if !vec3Approx(m.Size(), math3d.V3(1, 1, 1), 1e-5) {
		t.Errorf("size after fit = %v", m.Size())
	}
}

func TestMeshClone(t *testing.T) {
	m := CubeMesh(2)
	c := m.Clone()
	c.Vertices[0] = math3d.V3(9, 9, 9)
	if m.Vertices[0] == c.Vertices[0] {
		t.Error("clone shares vertex storage")
	}
	if c.AddEdge(0, 1) {
		t.Error("clone lost its edge set")
	}
}
