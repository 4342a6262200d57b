package math3d

// Vec2 is a 2D point, used for pixel-space coordinates.
type Vec2 struct {
	X, Y float32
}

// V2 creates a new Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{x, y}
}
