package edwards25519

import "git.gammaspectra.live/P2Pool/edwards25519/field"

// BytesMontgomery converts v to a point on the birationally-equivalent
// Curve25519 Montgomery curve, and returns its canonical 32 bytes encoding
// according to RFC 7748.
//
// Note that BytesMontgomery only encodes the u-coordinate, so v and -v encode
// to the same value. If v is the identity point, BytesMontgomery returns 32
// zero bytes, analogously to the X25519 function.
func (v *Point) BytesMontgomery() []byte {
	// This function is outlined to make the allocations inline in the caller
	// rather than happen on the heap.
	var buf [32]byte
	return v.bytesMontgomery(&buf)
}

func (v *Point) bytesMontgomery(buf *[32]byte) []byte {
	checkInitialized(v)

	// RFC 7748, Section 4.1 provides the bilinear map to calculate the
	// Montgomery u-coordinate
	//
	//              u = (1 + y) / (1 - y)
	//
	// where y = Y / Z.

	var y, recip, u field.Element

	y.Multiply(&v.y, y.Invert(&v.z))        // y = Y / Z
	recip.Invert(recip.Subtract(feOne, &y)) // r = 1/(1 - y)
	u.Multiply(u.Add(feOne, &y), &recip)    // u = (1 + y)*r

	copy(buf[:], u.Bytes())
	return buf[:]
}

// MultByCofactor sets v = 8 * p, and returns v.
func (v *Point) MultByCofactor(p *Point) *Point {
	checkInitialized(p)
	result := projP1xP1{}
	pp := (&projP2{}).FromP3(p)
	result.Double(pp)
	pp.FromP1xP1(&result)
	result.Double(pp)
	pp.FromP1xP1(&result)
	result.Double(pp)
	return v.fromP1xP1(&result)
}

// MultByPrimeOrder sets v = l * p, where l is the order of the scalar field,
// and returns v. If and only if p is the identity or a point of order two,
// four, or eight, v will be set to the identity. v and p may alias.
func (v *Point) MultByPrimeOrder(p *Point) *Point {
	checkInitialized(p)

	// The sequence of 34 additions and 248 doublings is an addition chain
	// for l generated with github.com/mmcloughlin/addchain v0.4.0.
	var t0, t1, t2, t3, t4, t5, t6, t7, t8, t9, tA, tB, tC, q = new(Point),
		new(Point), new(Point), new(Point), new(Point), new(Point), new(Point),
		new(Point), new(Point), new(Point), new(Point), new(Point), new(Point),
		new(Point)

	q.Set(p)
	tA.Add(q, q)
	t4.Add(q, tA)
	t2.Add(q, t4)
	q.Add(tA, t2)
	t1.Add(tA, q)
	t5.Add(t4, t1)
	t3.Add(t1, t1)
	t0.Add(t3, t3)
	t8.Add(q, t0)
	t0.Add(t0, t0)
	t7.Add(t3, t0)
	tB.Add(t4, t7)
	t3.Add(t3, tB)
	t9.Add(t2, t3)
	t6.Add(t2, t9)
	t4.Add(t0, tB)
	t2.Add(t2, t4)
	t8.Add(t8, t2)
	t0.Add(t0, t4)
	t7.Add(t7, t2)
	q.Add(q, t7)
	t1.Add(t1, q)
	tC.Add(t5, t1)
	for s := 0; s < 126; s++ {
		tC.Add(tC, tC)
	}
	tB.Add(tB, tC)
	for s := 0; s < 9; s++ {
		tB.Add(tB, tB)
	}
	tA.Add(tA, tB)
	tA.Add(t1, tA)
	for s := 0; s < 7; s++ {
		tA.Add(tA, tA)
	}
	t9.Add(t9, tA)
	for s := 0; s < 9; s++ {
		t9.Add(t9, t9)
	}
	t9.Add(t1, t9)
	for s := 0; s < 11; s++ {
		t9.Add(t9, t9)
	}
	t8.Add(t8, t9)
	for s := 0; s < 8; s++ {
		t8.Add(t8, t8)
	}
	t7.Add(t7, t8)
	for s := 0; s < 9; s++ {
		t7.Add(t7, t7)
	}
	t6.Add(t6, t7)
	for s := 0; s < 6; s++ {
		t6.Add(t6, t6)
	}
	t5.Add(t5, t6)
	for s := 0; s < 14; s++ {
		t5.Add(t5, t5)
	}
	t4.Add(t4, t5)
	for s := 0; s < 10; s++ {
		t4.Add(t4, t4)
	}
	t3.Add(t3, t4)
	for s := 0; s < 9; s++ {
		t3.Add(t3, t3)
	}
	t2.Add(t2, t3)
	for s := 0; s < 10; s++ {
		t2.Add(t2, t2)
	}
	t1.Add(t1, t2)
	for s := 0; s < 8; s++ {
		t1.Add(t1, t1)
	}
	t0.Add(t0, t1)
	for s := 0; s < 8; s++ {
		t0.Add(t0, t0)
	}
	return v.Add(q, t0)
}

// IsSmallOrder reports whether p is in the torsion subgroup of order eight.
// Only the identity and seven other points satisfy this.
func (p *Point) IsSmallOrder() bool {
	var check Point
	return check.MultByCofactor(p).IsIdentity() == 1
}

// IsTorsionFree reports whether p is in the prime-order subgroup generated
// by the canonical generator.
func (p *Point) IsTorsionFree() bool {
	var check Point
	return check.MultByPrimeOrder(p).IsIdentity() == 1
}

// Given k > 0, set s = s**(2**k).
func (s *Scalar) pow2k(k int) {
	for i := 0; i < k; i++ {
		s.Multiply(s, s)
	}
}

// Invert sets s to the inverse of a nonzero scalar t, and returns s.
//
// If t is zero, Invert returns zero.
func (s *Scalar) Invert(t *Scalar) *Scalar {
	// Uses a hardcoded sliding window of width 4 to compute t**(l-2).
	var table [8]Scalar
	var tt Scalar
	tt.Multiply(t, t)
	table[0] = *t
	for i := 0; i < 7; i++ {
		table[i+1].Multiply(&table[i], &tt)
	}
	// Now table = [t**1, t**3, t**5, t**7, t**9, t**11, t**13, t**15]
	// so t**k = table[k/2] for odd k.
	//
	// Each window digit (count, coeff) of l-2 becomes a pow2k run followed
	// by a table multiplication, with the squaring before the lookup folded
	// into the run as pow2k(count+1).

	*s = table[1/2]
	s.pow2k(127 + 1)
	s.Multiply(s, &table[1/2])
	s.pow2k(4 + 1)
	s.Multiply(s, &table[9/2])
	s.pow2k(3 + 1)
	s.Multiply(s, &table[11/2])
	s.pow2k(3 + 1)
	s.Multiply(s, &table[13/2])
	s.pow2k(3 + 1)
	s.Multiply(s, &table[15/2])
	s.pow2k(4 + 1)
	s.Multiply(s, &table[7/2])
	s.pow2k(4 + 1)
	s.Multiply(s, &table[15/2])
	s.pow2k(3 + 1)
	s.Multiply(s, &table[5/2])
	s.pow2k(3 + 1)
	s.Multiply(s, &table[1/2])
	s.pow2k(4 + 1)
	s.Multiply(s, &table[15/2])
	s.pow2k(4 + 1)
	s.Multiply(s, &table[15/2])
	s.pow2k(4 + 1)
	s.Multiply(s, &table[7/2])
	s.pow2k(3 + 1)
	s.Multiply(s, &table[3/2])
	s.pow2k(4 + 1)
	s.Multiply(s, &table[11/2])
	s.pow2k(5 + 1)
	s.Multiply(s, &table[11/2])
	s.pow2k(9 + 1)
	s.Multiply(s, &table[9/2])
	s.pow2k(3 + 1)
	s.Multiply(s, &table[3/2])
	s.pow2k(4 + 1)
	s.Multiply(s, &table[3/2])
	s.pow2k(4 + 1)
	s.Multiply(s, &table[3/2])
	s.pow2k(4 + 1)
	s.Multiply(s, &table[9/2])
	s.pow2k(3 + 1)
	s.Multiply(s, &table[7/2])
	s.pow2k(3 + 1)
	s.Multiply(s, &table[3/2])
	s.pow2k(3 + 1)
	s.Multiply(s, &table[13/2])
	s.pow2k(3 + 1)
	s.Multiply(s, &table[7/2])
	s.pow2k(4 + 1)
	s.Multiply(s, &table[9/2])
	s.pow2k(3 + 1)
	s.Multiply(s, &table[15/2])
	s.pow2k(4 + 1)
	s.Multiply(s, &table[11/2])

	return s
}
