package math3d

// Line3 is an object-space line segment. Drawing A→B and B→A is equivalent.
type Line3 struct {
	A, B Vec3
}

// L3 creates a new Line3.
func L3(a, b Vec3) Line3 {
	return Line3{a, b}
}

// Transform returns the segment with both endpoints transformed as points by m.
func (l Line3) Transform(m Mat4) Line3 {
	return Line3{m.MulPoint(l.A), m.MulPoint(l.B)}
}
