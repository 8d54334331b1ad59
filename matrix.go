package arm

import (
	"github.com/setanarut/vec"
)

// Matrix represents a 2D affine transformation using a 2x3 matrix.
//
// The transformation matrix is represented as follows:
//
//	| a  c  tx |   -> X' = a * X + c * Y + tx
//	| b  d  ty |   -> Y' = b * X + d * Y + ty
//
// Bones only ever need rigid matrices (rotation plus translation); the
// general form is kept for viewport mapping.
type Matrix struct {
	a, b, c, d, tx, ty float64
}

// NewMatrixIdentity returns the identity transformation.
func NewMatrixIdentity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// NewMatrixTranspose returns a new transformation matrix in transposed order.
func NewMatrixTranspose(a, c, tx, b, d, ty float64) Matrix {
	return Matrix{a, b, c, d, tx, ty}
}

// Inverse returns the inverse of this matrix m.
func (m Matrix) Inverse() Matrix {
	invDet := 1.0 / (m.a*m.d - m.c*m.b)
	return NewMatrixTranspose(
		m.d*invDet, -m.c*invDet, (m.c*m.ty-m.tx*m.d)*invDet,
		-m.b*invDet, m.a*invDet, (m.tx*m.b-m.a*m.ty)*invDet,
	)
}

// Mult multiplies m and m2. The result applies m2 first, then m.
func (m Matrix) Mult(m2 Matrix) Matrix {
	return NewMatrixTranspose(
		m.a*m2.a+m.c*m2.b, m.a*m2.c+m.c*m2.d, m.a*m2.tx+m.c*m2.ty+m.tx,
		m.b*m2.a+m.d*m2.b, m.b*m2.c+m.d*m2.d, m.b*m2.tx+m.d*m2.ty+m.ty,
	)
}

// NewMatrixTranslate returns a new transformation matrix with translation
func NewMatrixTranslate(translate vec.Vec2) Matrix {
	return NewMatrixTranspose(
		1, 0, translate.X,
		0, 1, translate.Y,
	)
}

// NewMatrixRotate returns a new rigid transformation with rotation
func NewMatrixRotate(rotation float64) Matrix {
	rot := vec.ForAngle(rotation)
	return NewMatrixTranspose(
		rot.X, -rot.Y, 0,
		rot.Y, rot.X, 0,
	)
}

// NewMatrixRigid creates a new rigid transformation that rotates by
// rotation and then translates by translate.
//
// Rigid transformation, or rigid motion, refers to a transformation that
// preserves the shape and size of objects while allowing them to change
// position and orientation in space.
func NewMatrixRigid(translate vec.Vec2, rotation float64) Matrix {
	rot := vec.ForAngle(rotation)
	return NewMatrixTranspose(
		rot.X, -rot.Y, translate.X,
		rot.Y, rot.X, translate.Y,
	)
}

// NewMatrixRigidInverse returns the inverse of a given rigid transformation.
// It is cheaper than Inverse but only valid for rigid matrices.
func NewMatrixRigidInverse(m Matrix) Matrix {
	return NewMatrixTranspose(
		m.d, -m.c, m.c*m.ty-m.tx*m.d,
		-m.b, m.a, m.tx*m.b-m.a*m.ty,
	)
}

// NewMatrixOrtho maps the bounding box bb onto the square [-1, 1] x [-1, 1].
func NewMatrixOrtho(bb BB) Matrix {
	return NewMatrixTranspose(
		2.0/(bb.R-bb.L), 0.0, -(bb.R+bb.L)/(bb.R-bb.L),
		0.0, 2.0/(bb.T-bb.B), -(bb.T+bb.B)/(bb.T-bb.B),
	)
}

// NewMatrixScale returns a new transformation with scaling
func NewMatrixScale(scaleX, scaleY float64) Matrix {
	return NewMatrixTranspose(
		scaleX, 0, 0,
		0, scaleY, 0,
	)
}

// Apply applies the transformation to the point p.
func (m Matrix) Apply(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m.a*p.X + m.c*p.Y + m.tx,
		Y: m.b*p.X + m.d*p.Y + m.ty,
	}
}

// ApplyVector applies the linear part of the transformation to v, ignoring
// the translation.
func (m Matrix) ApplyVector(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m.a*v.X + m.c*v.Y,
		Y: m.b*v.X + m.d*v.Y,
	}
}
