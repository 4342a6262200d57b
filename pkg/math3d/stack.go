package math3d

// TransformStack composes nested transforms. Push saves the current matrix,
// the builder methods post-multiply it, and Pop restores the last save.
//
// A TransformStack is not safe for concurrent use.
type TransformStack struct {
	saved   []Mat4
	current Mat4
}

// NewTransformStack returns a stack whose current matrix is the identity.
func NewTransformStack() *TransformStack {
	return &TransformStack{current: Identity()}
}

// Current returns the current matrix.
func (s *TransformStack) Current() Mat4 {
	return s.current
}

// Depth returns the number of saved matrices.
func (s *TransformStack) Depth() int {
	return len(s.saved)
}

// LoadIdentity resets the current matrix. Saved matrices are kept.
func (s *TransformStack) LoadIdentity() {
	s.current = Identity()
}

// Push saves a copy of the current matrix.
func (s *TransformStack) Push() {
	s.saved = append(s.saved, s.current)
}

// Pop restores the most recently saved matrix. Popping an empty stack
// leaves the current matrix unchanged.
func (s *TransformStack) Pop() {
	n := len(s.saved)
	if n == 0 {
		return
	}
	s.current = s.saved[n-1]
	s.saved = s.saved[:n-1]
}

// Mult sets current to current * m.
func (s *TransformStack) Mult(m Mat4) {
	s.current = s.current.Mul(m)
}

// Translate post-multiplies a translation.
func (s *TransformStack) Translate(x, y, z float32) {
	s.Mult(Translate(x, y, z))
}

// Scale post-multiplies a scale.
func (s *TransformStack) Scale(x, y, z float32) {
	s.Mult(Scale(x, y, z))
}

// RotateX post-multiplies a rotation about X, in degrees.
func (s *TransformStack) RotateX(degrees float32) {
	s.Mult(RotateX(degrees))
}

// RotateY post-multiplies a rotation about Y, in degrees.
func (s *TransformStack) RotateY(degrees float32) {
	s.Mult(RotateY(degrees))
}

// RotateZ post-multiplies a rotation about Z, in degrees.
func (s *TransformStack) RotateZ(degrees float32) {
	s.Mult(RotateZ(degrees))
}
