package math3d

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Mat4 is a 4x4 matrix stored in column-major order and applied to column
// vectors (result = M * v).
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
//
// For an affine transform the translation lives in the last column
// (indices 12, 13, 14).
type Mat4 [16]float32

// ErrInvalidProjection is returned by the projection builders when their
// parameters would produce non-finite matrix entries.
var ErrInvalidProjection = errors.New("invalid projection parameters")

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(tx, ty, tz float32) Mat4 {
	m := Identity()
	m.Set(0, 3, tx)
	m.Set(1, 3, ty)
	m.Set(2, 3, tz)
	return m
}

// Scale creates a scaling matrix.
func Scale(sx, sy, sz float32) Mat4 {
	m := Identity()
	m.Set(0, 0, sx)
	m.Set(1, 1, sy)
	m.Set(2, 2, sz)
	return m
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float32) Mat4 {
	return Scale(s, s, s)
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * (math32.Pi / 180)
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(degrees float32) Mat4 {
	s, c := math32.Sincos(Radians(degrees))
	m := Identity()
	m.Set(1, 1, c)
	m.Set(1, 2, -s)
	m.Set(2, 1, s)
	m.Set(2, 2, c)
	return m
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(degrees float32) Mat4 {
	s, c := math32.Sincos(Radians(degrees))
	m := Identity()
	m.Set(0, 0, c)
	m.Set(0, 2, s)
	m.Set(2, 0, -s)
	m.Set(2, 2, c)
	return m
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(degrees float32) Mat4 {
	s, c := math32.Sincos(Radians(degrees))
	m := Identity()
	m.Set(0, 0, c)
	m.Set(0, 1, -s)
	m.Set(1, 0, s)
	m.Set(1, 1, c)
	return m
}

// ModelMatrix composes T * Rz * Ry * Rx * S: scale is applied first, then
// rotation about X, Y and Z, then translation.
func ModelMatrix(translate, rotateDeg, scale Vec3) Mat4 {
	t := Translate(translate.X, translate.Y, translate.Z)
	rx := RotateX(rotateDeg.X)
	ry := RotateY(rotateDeg.Y)
	rz := RotateZ(rotateDeg.Z)
	s := Scale(scale.X, scale.Y, scale.Z)
	return t.Mul(rz.Mul(ry.Mul(rx.Mul(s))))
}

// Perspective creates a right-handed perspective projection with the camera
// looking down -Z. fovY is the vertical field of view in degrees and aspect
// is width/height.
func Perspective(fovY, aspect, near, far float32) (Mat4, error) {
	switch {
	case !(fovY > 0 && fovY < 180):
		return Mat4{}, fmt.Errorf("%w: fov %v outside (0, 180)", ErrInvalidProjection, fovY)
	case !(aspect > 0):
		return Mat4{}, fmt.Errorf("%w: aspect %v must be positive", ErrInvalidProjection, aspect)
	case near == far:
		return Mat4{}, fmt.Errorf("%w: near and far are both %v", ErrInvalidProjection, near)
	}

	tanHalf := math32.Tan(Radians(fovY) * 0.5)
	rng := far - near

	var m Mat4
	m.Set(0, 0, 1/(aspect*tanHalf))
	m.Set(1, 1, 1/tanHalf)
	m.Set(2, 2, -(far+near)/rng)
	m.Set(2, 3, -(2*far*near)/rng)
	m.Set(3, 2, -1)
	return m, nil
}

// Orthographic creates a projection mapping the box
// [left,right]x[bottom,top]x[near,far] onto the [-1,1] cube.
func Orthographic(left, right, bottom, top, near, far float32) (Mat4, error) {
	switch {
	case right == left:
		return Mat4{}, fmt.Errorf("%w: left and right are both %v", ErrInvalidProjection, left)
	case top == bottom:
		return Mat4{}, fmt.Errorf("%w: bottom and top are both %v", ErrInvalidProjection, bottom)
	case near == far:
		return Mat4{}, fmt.Errorf("%w: near and far are both %v", ErrInvalidProjection, near)
	}

	m := Identity()
	m.Set(0, 0, 2/(right-left))
	m.Set(1, 1, 2/(top-bottom))
	m.Set(2, 2, 2/(near-far))
	m.Set(0, 3, -(right+left)/(right-left))
	m.Set(1, 3, -(top+bottom)/(top-bottom))
	m.Set(2, 3, (far+near)/(far-near))
	return m, nil
}

// Mul multiplies two matrices: a * b. Applying the result to v equals
// applying b first and then a.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float32
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulVec4 transforms a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulPoint transforms v as a point (w=1) and homogenizes the result.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.MulVec4(Point(v)).Homogenized()
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float32 {
	return m[row+col*4]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float32) {
	m[row+col*4] = val
}

// String formats the matrix as four bracketed rows.
func (m Mat4) String() string {
	var sb strings.Builder
	for row := range 4 {
		fmt.Fprintf(&sb, "[%g, %g, %g, %g]\n", m.Get(row, 0), m.Get(row, 1), m.Get(row, 2), m.Get(row, 3))
	}
	return sb.String()
}
