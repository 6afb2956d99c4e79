// Package curve25519 wraps the edwards25519 group with a strategy type that
// selects between constant-time and variable-time implementations of each
// operation at compile time.
package curve25519

import "unsafe"

// PointOperations is the set of group operations a strategy provides. The
// implementing types are zero-size; callers pick one as a type parameter and
// every operation on the wrapping key types routes through it.
type PointOperations interface {
	Add(v *Point, p, q *Point) *Point
	Subtract(v *Point, p, q *Point) *Point

	ScalarBaseMult(v *Point, x *Scalar) *Point

	ScalarMult(v *Point, x *Scalar, q *Point) *Point
	ScalarMultPrecomputed(v *Point, x *Scalar, q *Generator) *Point

	DoubleScalarBaseMult(v *Point, a *Scalar, A *Point, b *Scalar) *Point

	MultiScalarMult(v *Point, scalars []*Scalar, points []*Point) *Point

	IsSmallOrder(v *Point) bool
	IsTorsionFree(v *Point) bool
}

// Strategies must stay stateless so that PublicKey[T] conversions never
// carry data across.
func assertSize[T PointOperations]() {
	var t T
	if unsafe.Sizeof(t) != 0 {
		panic("curve25519: PointOperations implementation must be zero-size")
	}
}
