// Package scene holds the demo scene around the wireframe pipeline: its
// configuration, the animated model transform and the segment groups drawn
// each frame.
package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/taigrr/wirecube/pkg/math3d"
	"github.com/taigrr/wirecube/pkg/render"
)

// Limits applied by Resolve.
const (
	MinFovY = 10
	MaxFovY = 120
)

// Viewport is a sub-rectangle of the output surface in normalized [0,1]
// units. X and Y offset it from the top-left corner.
type Viewport struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	W float32 `json:"w"`
	H float32 `json:"h"`
}

// Config holds every scene setting. Vectors are [x, y, z] arrays in JSON.
type Config struct {
	// Projection
	Perspective bool    `json:"perspective"`
	FovY        float32 `json:"fov_y"`
	OrthoHeight float32 `json:"ortho_height"` // total height of the ortho box
	Near        float32 `json:"near"`
	Far         float32 `json:"far"`

	Viewport Viewport `json:"viewport"`

	// Modeling transform, applied as T * Rz * Ry * Rx * S
	Translate     [3]float32 `json:"translate"`
	RotateDeg     [3]float32 `json:"rotate_deg"`
	Scale         [3]float32 `json:"scale"`
	AutoSpin      bool       `json:"auto_spin"`
	SpinDegPerSec [3]float32 `json:"spin_deg_per_sec"`

	// View placement shared by every group
	ViewTranslate [3]float32 `json:"view_translate"`
	ViewRotateDeg [3]float32 `json:"view_rotate_deg"`

	// Primitives
	ShowCube   bool    `json:"show_cube"`
	CubeSize   float32 `json:"cube_size"`
	ShowAxes   bool    `json:"show_axes"`
	AxisLength float32 `json:"axis_length"`
	ShowGrid   bool    `json:"show_grid"`
	GridExtent float32 `json:"grid_extent"`
	GridStep   float32 `json:"grid_step"`

	// Model is an optional glTF/GLB file drawn with the cube.
	Model string `json:"model,omitempty"`
}

// Default returns the stock scene: a spinning 2-unit cube above a grid.
func Default() Config {
	return Config{
		Perspective:   true,
		FovY:          60,
		OrthoHeight:   4,
		Near:          0.1,
		Far:           100,
		Viewport:      Viewport{X: 0, Y: 0, W: 1, H: 1},
		Translate:     [3]float32{0, 2, 6},
		Scale:         [3]float32{1, 1, 1},
		AutoSpin:      true,
		SpinDegPerSec: [3]float32{0, 45, 0},
		ViewTranslate: [3]float32{0, 0, -14},
		ViewRotateDeg: [3]float32{20, 0, 0},
		ShowCube:      true,
		CubeSize:      2,
		ShowAxes:      true,
		AxisLength:    5,
		ShowGrid:      true,
		GridExtent:    8,
		GridStep:      1,
	}
}

// LoadConfig reads a JSON config file. Fields missing from the file keep
// their Default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Ortho  bool
	NoSpin bool
	FovY   float32
	Model  string
}

// Resolve applies flag overrides, then pulls out-of-range values back into
// their valid range, logging a warning for each one it changes.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Ortho {
		c.Perspective = false
	}
	if flags.NoSpin {
		c.AutoSpin = false
	}
	if flags.FovY > 0 {
		c.FovY = flags.FovY
	}
	if flags.Model != "" {
		c.Model = flags.Model
	}

	log := render.Logger()
	def := Default()

	if fov := clamp(c.FovY, MinFovY, MaxFovY); fov != c.FovY {
		log.Warn("fov_y out of range, clamped", "value", c.FovY, "clamped", fov)
		c.FovY = fov
	}
	if !(c.OrthoHeight > 0) {
		log.Warn("ortho_height must be positive, using default", "value", c.OrthoHeight, "default", def.OrthoHeight)
		c.OrthoHeight = def.OrthoHeight
	}
	if !(c.Near > 0) || !(c.Far > c.Near) {
		log.Warn("need 0 < near < far, using defaults", "near", c.Near, "far", c.Far)
		c.Near, c.Far = def.Near, def.Far
	}

	vp := Viewport{
		X: clamp(c.Viewport.X, 0, 1),
		Y: clamp(c.Viewport.Y, 0, 1),
		W: clamp(c.Viewport.W, 0, 1),
		H: clamp(c.Viewport.H, 0, 1),
	}
	if vp != c.Viewport {
		log.Warn("viewport outside [0,1], clamped", "value", c.Viewport, "clamped", vp)
		c.Viewport = vp
	}
}

// clamp limits v to [lo, hi]; NaN maps to lo.
func clamp(v, lo, hi float32) float32 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func vec3(a [3]float32) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}
