package render

import (
	"slices"
	"testing"

	"github.com/chewxy/math32"
	"github.com/taigrr/wirecube/pkg/math3d"
)

func vec2Approx(a, b math3d.Vec2, eps float32) bool {
	return math32.Abs(a.X-b.X) <= eps && math32.Abs(a.Y-b.Y) <= eps
}

func TestViewportToPixel(t *testing.T) {
	tests := []struct {
		name     string
		vp       Viewport
		ndc      math3d.Vec3
		expected math3d.Vec2
	}{
		{"bottom-left corner", Viewport{0, 0, 800, 600}, math3d.V3(-1, -1, 0), math3d.V2(0, 600)},
		{"top-right corner", Viewport{0, 0, 800, 600}, math3d.V3(1, 1, 0), math3d.V2(800, 0)},
		{"center", Viewport{0, 0, 800, 600}, math3d.V3(0, 0, 0.5), math3d.V2(400, 300)},
		{"offset top-left", Viewport{100, 50, 400, 300}, math3d.V3(-1, 1, 0), math3d.V2(100, 50)},
		{"offset bottom-left", Viewport{100, 50, 400, 300}, math3d.V3(-1, -1, 0), math3d.V2(100, 350)},
		{"offset top-right", Viewport{100, 50, 400, 300}, math3d.V3(1, 1, 0), math3d.V2(500, 50)},
		{"outside keeps going", Viewport{0, 0, 100, 100}, math3d.V3(3, -3, 0), math3d.V2(200, 200)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.vp.ToPixel(tc.ndc); !vec2Approx(got, tc.expected, 1e-4) {
				t.Errorf("ToPixel(%v) = %v, want %v", tc.ndc, got, tc.expected)
			}
		})
	}
}

func TestTrivialReject(t *testing.T) {
	tests := []struct {
		name     string
		a, b     math3d.Vec3
		expected bool
	}{
		{"both left", math3d.V3(-2, 0, 0), math3d.V3(-1.5, 0, 0), true},
		{"one left", math3d.V3(-2, 0, 0), math3d.V3(0, 0, 0), false},
		{"both right", math3d.V3(1.1, 0, 0), math3d.V3(5, 0.5, 0), true},
		{"both below", math3d.V3(0, -3, 0), math3d.V3(0.5, -1.01, 0), true},
		{"both above", math3d.V3(0, 2, 0), math3d.V3(0, 2, 0), true},
		{"both behind near", math3d.V3(0, 0, -1.5), math3d.V3(0, 0, -2), true},
		{"both past far", math3d.V3(0, 0, 1.2), math3d.V3(0.3, 0.3, 1.01), true},
		{"straddles x", math3d.V3(-2, 0, 0), math3d.V3(2, 0, 0), false},
		{"different faces", math3d.V3(-2, 0, 0), math3d.V3(0, 2, 0), false},
		{"on the boundary", math3d.V3(-1, 1, -1), math3d.V3(-1, 1, 1), false},
		{"inside", math3d.V3(0.1, 0.2, 0.3), math3d.V3(-0.5, 0.5, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TrivialReject(tc.a, tc.b); got != tc.expected {
				t.Errorf("TrivialReject(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.expected)
			}
			// Orientation doesn't matter.
			if got := TrivialReject(tc.b, tc.a); got != tc.expected {
				t.Errorf("TrivialReject(%v, %v) = %v, want %v", tc.b, tc.a, got, tc.expected)
			}
		})
	}
}

func TestProjectIdentityKeepsOrderAndRejects(t *testing.T) {
	lines := []math3d.Line3{
		math3d.L3(math3d.V3(-1, -1, 0), math3d.V3(1, 1, 0)),
		math3d.L3(math3d.V3(-2, 0, 0), math3d.V3(-1.5, 0, 0)), // rejected
		math3d.L3(math3d.V3(-2, 0, 0), math3d.V3(0, 0, 0)),    // kept unclipped
		math3d.L3(math3d.V3(0, 0, 0), math3d.V3(0, 1, 0)),
	}
	vp := Viewport{0, 0, 800, 600}

	got := slices.Collect(Project(lines, math3d.Identity(), math3d.Identity(), vp))
	want := []Segment{
		{math3d.V2(0, 600), math3d.V2(800, 0)},
		{math3d.V2(-400, 300), math3d.V2(400, 300)},
		{math3d.V2(400, 300), math3d.V2(400, 0)},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d segments, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !vec2Approx(got[i].A, want[i].A, 1e-4) || !vec2Approx(got[i].B, want[i].B, 1e-4) {
			t.Errorf("segment %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProjectPerspective(t *testing.T) {
	proj, err := math3d.Perspective(90, 4.0/3, 0.1, 100)
	if err != nil {
		t.Fatal(err)
	}
	model := math3d.Translate(0, 0, -5)
	vp := Viewport{0, 0, 800, 600}

	t.Run("origin projects to viewport center", func(t *testing.T) {
		lines := []math3d.Line3{math3d.L3(math3d.Zero3(), math3d.V3(0, 5, 0))}
		got := slices.Collect(Project(lines, model, proj, vp))
		if len(got) != 1 {
			t.Fatalf("got %d segments, want 1", len(got))
		}
		if !vec2Approx(got[0].A, math3d.V2(400, 300), 1e-3) {
			t.Errorf("A = %v, want (400, 300)", got[0].A)
		}
		// fov 90: y=5 at distance 5 is the top edge.
		if !vec2Approx(got[0].B, math3d.V2(400, 0), 1e-2) {
			t.Errorf("B = %v, want (400, 0)", got[0].B)
		}
	})

	t.Run("segment behind the camera is rejected", func(t *testing.T) {
		lines := []math3d.Line3{math3d.L3(math3d.V3(-1, 0, 3), math3d.V3(1, 0, 5))}
		got := slices.Collect(Project(lines, math3d.Identity(), proj, vp))
		if len(got) != 0 {
			t.Errorf("got %v, want nothing", got)
		}
	})

	t.Run("composite equals per-stage transform", func(t *testing.T) {
		p := math3d.V3(0.3, -0.7, 1.1)
		rot := math3d.ModelMatrix(math3d.V3(0, 0, -6), math3d.V3(10, 20, 30), math3d.One3())
		lines := []math3d.Line3{math3d.L3(p, p)}
		got := slices.Collect(Project(lines, rot, proj, vp))
		if len(got) != 1 {
			t.Fatalf("got %d segments, want 1", len(got))
		}
		clip := proj.MulVec4(rot.MulVec4(math3d.Point(p)))
		want := vp.ToPixel(clip.Homogenized())
		if !vec2Approx(got[0].A, want, 1e-2) {
			t.Errorf("got %v, want %v", got[0].A, want)
		}
	})
}

func TestProjectIsLazyAndRepeatable(t *testing.T) {
	lines := []math3d.Line3{
		math3d.L3(math3d.V3(0, 0, 0), math3d.V3(0.5, 0, 0)),
		math3d.L3(math3d.V3(0, 0, 0), math3d.V3(0, 0.5, 0)),
		math3d.L3(math3d.V3(0, 0, 0), math3d.V3(0.5, 0.5, 0)),
	}
	seq := Project(lines, math3d.Identity(), math3d.Identity(), FullViewport(10, 10))

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) || len(first) != 3 {
		t.Errorf("ranging twice gave %v then %v", first, second)
	}

	n := 0
	for range seq {
		n++
		if n == 1 {
			break
		}
	}
	if n != 1 {
		t.Errorf("early break visited %d segments", n)
	}
}

func TestProjectNonFinitePropagates(t *testing.T) {
	model := math3d.Identity()
	model.Set(0, 0, math32.NaN())
	lines := []math3d.Line3{math3d.L3(math3d.V3(1, 0, 0), math3d.V3(0.5, 0, 0))}

	got := slices.Collect(Project(lines, model, math3d.Identity(), FullViewport(10, 10)))
	if len(got) != 1 {
		t.Fatalf("got %d segments, want the NaN segment passed through", len(got))
	}
	if !math32.IsNaN(got[0].A.X) {
		t.Errorf("A.X = %v, want NaN", got[0].A.X)
	}
}

func BenchmarkProject(b *testing.B) {
	lines := make([]math3d.Line3, 0, 256)
	for i := range 256 {
		x := float32(i%16) - 8
		z := float32(i/16) - 8
		lines = append(lines, math3d.L3(math3d.V3(x, 0, z), math3d.V3(x+1, 0, z)))
	}
	proj, _ := math3d.Perspective(60, 16.0/9, 0.1, 100)
	model := math3d.ModelMatrix(math3d.V3(0, -2, -10), math3d.V3(0, 30, 0), math3d.One3())
	vp := FullViewport(320, 180)

	for b.Loop() {
		for range Project(lines, model, proj, vp) {
		}
	}
}
