package curve25519

// VarTimeOperations implements variable time operations for edwards25519
// points. Some operations may be implemented as constant time operations if
// no variable time alternative exists.
//
// Unsafe to use with private data or scalars.
type VarTimeOperations struct{}

func (e VarTimeOperations) Add(v *Point, p, q *Point) *Point {
	return v.Add(p, q)
}

func (e VarTimeOperations) Subtract(v *Point, p, q *Point) *Point {
	return v.Subtract(p, q)
}

func (e VarTimeOperations) Double(v *Point, x *Point) *Point {
	return v.Double(x)
}

func (e VarTimeOperations) Negate(v *Point, x *Point) *Point {
	return v.Negate(x)
}

func (e VarTimeOperations) MultByCofactor(v *Point, x *Point) *Point {
	return v.MultByCofactor(x)
}

func (e VarTimeOperations) ScalarBaseMult(v *Point, x *Scalar) *Point {
	return v.VarTimeScalarBaseMult(x)
}

func (e VarTimeOperations) ScalarMult(v *Point, x *Scalar, q *Point) *Point {
	return v.VarTimeScalarMult(x, q)
}

func (e VarTimeOperations) ScalarMultPrecomputed(v *Point, x *Scalar, q *Generator) *Point {
	return v.VarTimeScalarMultPrecomputed(x, q.Table)
}

func (e VarTimeOperations) DoubleScalarBaseMult(v *Point, a *Scalar, A *Point, b *Scalar) *Point {
	return v.VarTimeDoubleScalarBaseMult(a, A, b)
}

func (e VarTimeOperations) DoubleScalarMult(v *Point, a *Scalar, A *Point, b *Scalar, B *Point) *Point {
	aA := new(Point).VarTimeScalarMult(a, A)
	bB := new(Point).VarTimeScalarMult(b, B)
	return v.Add(aA, bB)
}

// MultiScalarMult picks Straus or Pippenger based on the input size.
func (e VarTimeOperations) MultiScalarMult(v *Point, scalars []*Scalar, points []*Point) *Point {
	return v.VarTimeMultiScalarMult(scalars, points)
}

// MultiScalarMultMaybe is like MultiScalarMult, but returns nil when any
// entry of points is nil.
func (e VarTimeOperations) MultiScalarMultMaybe(v *Point, scalars []*Scalar, points []*Point) *Point {
	return v.VarTimeMultiScalarMultMaybe(scalars, points)
}

func (e VarTimeOperations) IsSmallOrder(v *Point) bool {
	return v.IsSmallOrder()
}

func (e VarTimeOperations) IsTorsionFree(v *Point) bool {
	return v.IsTorsionFree()
}

var _ PointOperations = VarTimeOperations{}

//nolint:gochecknoinits
func init() {
	assertSize[VarTimeOperations]()
}
