package math3d

// Vec4 represents a homogeneous 3D coordinate.
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 creates a new Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// Point lifts v to a homogeneous point (w=1).
func Point(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// Direction lifts v to a homogeneous direction (w=0), which ignores translation.
func Direction(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 0}
}

// XYZ returns the Vec3 portion, ignoring W.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Homogenized performs the perspective divide from clip space to NDC.
// When |W| < Epsilon the xyz part is returned undivided.
func (v Vec4) Homogenized() Vec3 {
	if v.W > -Epsilon && v.W < Epsilon {
		return Vec3{v.X, v.Y, v.Z}
	}
	invW := 1 / v.W
	return Vec3{v.X * invW, v.Y * invW, v.Z * invW}
}

// Add returns the vector sum.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns the vector difference.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Scale returns the scalar product.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Dot returns the dot product.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4) Dot(b Vec4) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}
