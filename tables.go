package edwards25519

import (
	"crypto/subtle"
)

// A precomputed lookup table for fixed-window scalar multiplication.
// Each table holds odd multiples {1P, 3P, 5P, ...} of its base point and is
// read-only after FromP3.

// projLookupTable holds odd multiples 1P..15P in cached projective form,
// indexed by signed radix-16 digit magnitude. Lookups are constant time.
type projLookupTable struct {
	points [8]projCached
}

// affineLookupTable is the affine counterpart of projLookupTable, used for
// the precomputed basepoint tables. Lookups are constant time.
type affineLookupTable struct {
	points [8]affineCached
}

// nafLookupTable5 holds odd multiples 1P..15P for width-5 NAF digits.
// Lookups are variable time.
type nafLookupTable5 struct {
	points [8]projCached
}

// nafLookupTable8 holds odd multiples 1P..127P in affine form for width-8
// NAF digits. Lookups are variable time.
type nafLookupTable8 struct {
	points [64]affineCached
}

// Constructors.

// FromP3 fills the table with odd multiples of q.
func (v *projLookupTable) FromP3(q *Point) {
	// Goal: v.points[i] = (2*i+1)*Q, i.e., Q, 3Q, 5Q, ..., 15Q
	// This is the same strategy as in the dalek implementation:
	// https://github.com/dalek-cryptography/curve25519-dalek/blob/master/src/window.rs#L187
	v.points[0].FromP3(q)
	tmpP3 := Point{}
	tmpP1xP1 := projP1xP1{}
	for i := 0; i < 7; i++ {
		// Compute (i+1)*Q as Q + i*Q and convert to a projCached
		// This is needlessly complicated because the API has explicit
		// receivers instead of creating stack objects and relying on RVO
		v.points[i+1].FromP3(tmpP3.fromP1xP1(tmpP1xP1.Add(q, &v.points[i])))
	}
}

func (v *affineLookupTable) FromP3(q *Point) {
	// Goal: v.points[i] = (2*i+1)*Q, i.e., Q, 3Q, 5Q, ..., 15Q
	v.points[0].FromP3(q)
	tmpP3 := Point{}
	tmpP1xP1 := projP1xP1{}
	for i := 0; i < 7; i++ {
		// Compute (i+1)*Q as Q + i*Q
		v.points[i+1].FromP3(tmpP3.fromP1xP1(tmpP1xP1.AddAffine(q, &v.points[i])))
	}
}

func (v *nafLookupTable5) FromP3(q *Point) {
	// Goal: v.points[i] = (2*i+1)*Q, i.e., Q, 3Q, 5Q, ..., 15Q
	v.points[0].FromP3(q)
	q2 := Point{}
	q2.Add(q, q)
	tmpP3 := Point{}
	tmpP1xP1 := projP1xP1{}
	for i := 0; i < 7; i++ {
		v.points[i+1].FromP3(tmpP3.fromP1xP1(tmpP1xP1.Add(&q2, &v.points[i])))
	}
}

func (v *nafLookupTable8) FromP3(q *Point) {
	v.points[0].FromP3(q)
	q2 := Point{}
	q2.Add(q, q)
	tmpP3 := Point{}
	tmpP1xP1 := projP1xP1{}
	for i := 0; i < 63; i++ {
		v.points[i+1].FromP3(tmpP3.fromP1xP1(tmpP1xP1.AddAffine(&q2, &v.points[i])))
	}
}

// Selectors.

// SelectInto sets dest to x*Q, where -8 <= x <= 8, in constant time: it
// reads every table entry and keeps no secret-dependent access pattern.
func (v *projLookupTable) SelectInto(dest *projCached, x int8) {
	// Compute xabs = |x|
	xmask := x >> 7
	xabs := uint8((x + xmask) ^ xmask)

	dest.Zero()
	for j := 1; j <= 8; j++ {
		// Set dest = j*Q if |x| = j
		cond := subtle.ConstantTimeByteEq(xabs, uint8(j))
		dest.Select(&v.points[j-1], dest, cond)
	}
	// Now dest = |x|*Q, conditionally negate to get x*Q
	dest.CondNeg(int(xmask & 1))
}

// SelectInto sets dest to x*Q, where -8 <= x <= 8, in constant time.
func (v *affineLookupTable) SelectInto(dest *affineCached, x int8) {
	xmask := x >> 7
	xabs := uint8((x + xmask) ^ xmask)

	dest.Zero()
	for j := 1; j <= 8; j++ {
		// Set dest = j*Q if |x| = j
		cond := subtle.ConstantTimeByteEq(xabs, uint8(j))
		dest.Select(&v.points[j-1], dest, cond)
	}
	// Now dest = |x|*Q, conditionally negate to get x*Q
	dest.CondNeg(int(xmask & 1))
}

// SelectInto sets dest to x*Q, where x is odd and 0 < x < 2^4. Variable
// time, for public digits only.
func (v *nafLookupTable5) SelectInto(dest *projCached, x int8) {
	*dest = v.points[x/2]
}

// SelectInto sets dest to x*Q, where x is odd and 0 < x < 2^7. Variable
// time, for public digits only.
func (v *nafLookupTable8) SelectInto(dest *affineCached, x int8) {
	*dest = v.points[x/2]
}

// PrecomputedTable is a set of precomputed odd multiples of a fixed point,
// for use with VarTimeScalarMultPrecomputed. Build one per long-lived
// generator and share it freely: it is read-only after construction.
type PrecomputedTable struct {
	point Point
	table nafLookupTable8
}

// PointTablePrecompute builds a PrecomputedTable of p.
func PointTablePrecompute(p *Point) *PrecomputedTable {
	checkInitialized(p)
	t := new(PrecomputedTable)
	t.point.Set(p)
	t.table.FromP3(p)
	return t
}

// Point returns the point the table was built from.
func (t *PrecomputedTable) Point() *Point {
	return new(Point).Set(&t.point)
}
