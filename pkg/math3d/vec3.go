// Package math3d provides the single-precision vector and matrix algebra
// behind the wirecube pipeline.
//
// Matrices use the column-vector convention (result = M * v) and every
// angle argument is in degrees.
package math3d

import "github.com/chewxy/math32"

// Epsilon is the magnitude below which a divisor is treated as zero.
const Epsilon = 1e-8

// Vec3 represents a 3D point or direction.
type Vec3 struct {
	X, Y, Z float32
}

// V3 creates a new Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// One3 returns (1, 1, 1).
func One3() Vec3 {
	return Vec3{1, 1, 1}
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Negate returns the negated vector.
func (a Vec3) Negate() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float32) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Div returns a / s. A divisor with |s| < Epsilon leaves a unchanged.
func (a Vec3) Div(s float32) Vec3 {
	if s > -Epsilon && s < Epsilon {
		return a
	}
	inv := 1 / s
	return Vec3{a.X * inv, a.Y * inv, a.Z * inv}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// LenSq returns the squared length (no square root).
func (a Vec3) LenSq() float32 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// Len returns the length, computed with SqrtNR.
func (a Vec3) Len() float32 {
	return SqrtNR(a.LenSq())
}

// Normalize returns the unit vector in the same direction.
// Vectors shorter than Epsilon are returned unchanged.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l <= Epsilon {
		return a
	}
	return a.Div(l)
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec3) Lerp(b Vec3, t float32) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{
		math32.Min(a.X, b.X),
		math32.Min(a.Y, b.Y),
		math32.Min(a.Z, b.Z),
	}
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{
		math32.Max(a.X, b.X),
		math32.Max(a.Y, b.Y),
		math32.Max(a.Z, b.Z),
	}
}

// maxSqrtIterations bounds SqrtNR. In float32 the last steps can bounce
// between two neighbouring values that differ by more than Epsilon.
const maxSqrtIterations = 128

// SqrtNR returns the square root of n by Newton-Raphson iteration, starting
// from n and stopping once successive guesses differ by less than Epsilon.
// Non-positive input yields 0.
func SqrtNR(n float32) float32 {
	if n <= 0 {
		return 0
	}
	guess := n
	for range maxSqrtIterations {
		next := (guess + n/guess) / 2
		if math32.Abs(next-guess) < Epsilon {
			return next
		}
		guess = next
	}
	return guess
}
