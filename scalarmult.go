package edwards25519

import "sync"

// basepointTablePrecomp holds the 32 radix-16 tables of B*16^(2i) used by
// the constant-time ScalarBaseMult. Built on first use, read-only after.
var basepointTablePrecomp struct {
	table    [32]affineLookupTable
	initOnce sync.Once
}

func basepointTable() *[32]affineLookupTable {
	basepointTablePrecomp.initOnce.Do(func() {
		p := NewGeneratorPoint()
		for i := 0; i < 32; i++ {
			basepointTablePrecomp.table[i].FromP3(p)
			for j := 0; j < 8; j++ {
				p.Add(p, p)
			}
		}
	})
	return &basepointTablePrecomp.table
}

// basepointNafTablePrecomp holds the width-8 NAF table of the basepoint used
// by the variable-time basepoint paths.
var basepointNafTablePrecomp struct {
	table    nafLookupTable8
	initOnce sync.Once
}

func basepointNafTable() *nafLookupTable8 {
	basepointNafTablePrecomp.initOnce.Do(func() {
		basepointNafTablePrecomp.table.FromP3(NewGeneratorPoint())
	})
	return &basepointNafTablePrecomp.table
}

// ScalarBaseMult sets v = x * B, where B is the canonical generator, and
// returns v.
//
// The scalar multiplication is done in constant time.
func (v *Point) ScalarBaseMult(x *Scalar) *Point {
	table := basepointTable()

	// Write x = sum(x_i * 16^i) so  x*B = sum( B*x_i*16^i )
	// as described in the Ed25519 paper
	//
	// Group even and odd coefficients
	// x*B     = x_0*16^0*B + x_2*16^2*B + ... + x_62*16^62*B
	//         + x_1*16^1*B + x_3*16^3*B + ... + x_63*16^63*B
	// x*B     = x_0*16^0*B + x_2*16^2*B + ... + x_62*16^62*B
	//    + 16*(x_1*16^0*B + x_3*16^2*B + ... + x_63*16^62*B)
	//
	// We use a lookup table for each i to get x_i*16^(2*i)*B
	// and do four doublings to multiply by 16.
	digits := x.signedRadix16()

	multiple := &affineCached{}
	tmp1 := &projP1xP1{}
	tmp2 := &projP2{}

	// Accumulate the odd components first
	v.Set(NewIdentityPoint())
	for i := 1; i < 64; i += 2 {
		table[i/2].SelectInto(multiple, digits[i])
		tmp1.AddAffine(v, multiple)
		v.fromP1xP1(tmp1)
	}

	// Multiply by 16
	tmp2.FromP3(v)       // tmp2 =    v in P2 coords
	tmp1.Double(tmp2)    // tmp1 =  2*v in P1xP1 coords
	tmp2.FromP1xP1(tmp1) // tmp2 =  2*v in P2 coords
	tmp1.Double(tmp2)    // tmp1 =  4*v in P1xP1 coords
	tmp2.FromP1xP1(tmp1) // tmp2 =  4*v in P2 coords
	tmp1.Double(tmp2)    // tmp1 =  8*v in P1xP1 coords
	tmp2.FromP1xP1(tmp1) // tmp2 =  8*v in P2 coords
	tmp1.Double(tmp2)    // tmp1 = 16*v in P1xP1 coords
	v.fromP1xP1(tmp1)    // now v = 16*(odd components)

	// Accumulate the even components
	for i := 0; i < 64; i += 2 {
		table[i/2].SelectInto(multiple, digits[i])
		tmp1.AddAffine(v, multiple)
		v.fromP1xP1(tmp1)
	}

	return v
}

// ScalarMult sets v = x * q, and returns v. v and q may alias.
//
// The scalar multiplication is done in constant time: the table accesses
// and the add-per-digit schedule never depend on the digit values.
func (v *Point) ScalarMult(x *Scalar, q *Point) *Point {
	checkInitialized(q)

	var table projLookupTable
	table.FromP3(q)

	// Write x = sum(x_i * 16^i)
	// so  x*Q = sum( Q*x_i*16^i )
	//         = Q*x_0 + 16*(Q*x_1 + 16*( ... + Q*x_63) ... )
	//           <------compute inside out---------
	//
	// We use the lookup table to get the x_i*Q values
	// and do four doublings to compute 16*Q
	digits := x.signedRadix16()

	// Unwrap first loop iteration to save computing 16*identity
	multiple := &projCached{}
	tmp1 := &projP1xP1{}
	tmp2 := &projP2{}
	table.SelectInto(multiple, digits[63])

	v.Set(NewIdentityPoint())
	tmp1.Add(v, multiple) // tmp1 = x_63*Q in P1xP1 coords
	for i := 62; i >= 0; i-- {
		tmp2.FromP1xP1(tmp1) // tmp2 =    (prev) in P2 coords
		tmp1.Double(tmp2)    // tmp1 =  2*(prev) in P1xP1 coords
		tmp2.FromP1xP1(tmp1) // tmp2 =  2*(prev) in P2 coords
		tmp1.Double(tmp2)    // tmp1 =  4*(prev) in P1xP1 coords
		tmp2.FromP1xP1(tmp1) // tmp2 =  4*(prev) in P2 coords
		tmp1.Double(tmp2)    // tmp1 =  8*(prev) in P1xP1 coords
		tmp2.FromP1xP1(tmp1) // tmp2 =  8*(prev) in P2 coords
		tmp1.Double(tmp2)    // tmp1 = 16*(prev) in P1xP1 coords
		v.fromP1xP1(tmp1)    //    v = 16*(prev) in P3 coords
		table.SelectInto(multiple, digits[i])
		tmp1.Add(v, multiple) // tmp1 = x_i*Q + 16*(prev) in P1xP1 coords
	}
	v.fromP1xP1(tmp1)
	return v
}

// VarTimeScalarBaseMult sets v = x * B, where B is the canonical generator,
// and returns v.
//
// Execution time depends on the scalar; x must not be secret.
func (v *Point) VarTimeScalarBaseMult(x *Scalar) *Point {
	return v.varTimeScalarMultNaf8(x, basepointNafTable())
}

// VarTimeScalarMult sets v = x * q, and returns v.
//
// Execution time depends on the inputs; x must not be secret.
func (v *Point) VarTimeScalarMult(x *Scalar, q *Point) *Point {
	checkInitialized(q)

	var table nafLookupTable5
	table.FromP3(q)
	naf := x.nonAdjacentForm(5)

	// Find the first nonzero coefficient.
	i := 255
	for j := i; j >= 0; j-- {
		if naf[j] != 0 {
			i = j
			break
		}
	}

	multiple := &projCached{}
	tmp1 := &projP1xP1{}
	tmp2 := &projP2{}
	tmp2.Zero()

	for ; i >= 0; i-- {
		tmp1.Double(tmp2)

		if naf[i] > 0 {
			v.fromP1xP1(tmp1)
			table.SelectInto(multiple, naf[i])
			tmp1.Add(v, multiple)
		} else if naf[i] < 0 {
			v.fromP1xP1(tmp1)
			table.SelectInto(multiple, -naf[i])
			tmp1.Sub(v, multiple)
		}

		tmp2.FromP1xP1(tmp1)
	}

	return v.fromP2(tmp2)
}

// VarTimeScalarMultPrecomputed sets v = x * T, where T is a table built with
// PointTablePrecompute, and returns v.
//
// Execution time depends on the inputs; x must not be secret.
func (v *Point) VarTimeScalarMultPrecomputed(x *Scalar, t *PrecomputedTable) *Point {
	return v.varTimeScalarMultNaf8(x, &t.table)
}

func (v *Point) varTimeScalarMultNaf8(x *Scalar, table *nafLookupTable8) *Point {
	naf := x.nonAdjacentForm(8)

	i := 255
	for j := i; j >= 0; j-- {
		if naf[j] != 0 {
			i = j
			break
		}
	}

	multiple := &affineCached{}
	tmp1 := &projP1xP1{}
	tmp2 := &projP2{}
	tmp2.Zero()

	for ; i >= 0; i-- {
		tmp1.Double(tmp2)

		if naf[i] > 0 {
			v.fromP1xP1(tmp1)
			table.SelectInto(multiple, naf[i])
			tmp1.AddAffine(v, multiple)
		} else if naf[i] < 0 {
			v.fromP1xP1(tmp1)
			table.SelectInto(multiple, -naf[i])
			tmp1.SubAffine(v, multiple)
		}

		tmp2.FromP1xP1(tmp1)
	}

	return v.fromP2(tmp2)
}

// VarTimeDoubleScalarBaseMult sets v = a * A + b * B, where B is the
// canonical generator, and returns v.
//
// Execution time depends on the inputs; a and b must not be secret.
func (v *Point) VarTimeDoubleScalarBaseMult(a *Scalar, A *Point, b *Scalar) *Point {
	checkInitialized(A)

	// Similarly to the single variable-base path, but with a joint scan of
	// both NAFs, sharing the doublings between the two terms. The basepoint
	// term affords the wider window because its table is precomputed.
	var aTable nafLookupTable5
	aTable.FromP3(A)
	bTable := basepointNafTable()

	aNaf := a.nonAdjacentForm(5)
	bNaf := b.nonAdjacentForm(8)

	// Find the first nonzero coefficient.
	i := 255
	for j := i; j >= 0; j-- {
		if aNaf[j] != 0 || bNaf[j] != 0 {
			i = j
			break
		}
	}

	multA := &projCached{}
	multB := &affineCached{}
	tmp1 := &projP1xP1{}
	tmp2 := &projP2{}
	tmp2.Zero()

	for ; i >= 0; i-- {
		tmp1.Double(tmp2)

		// Only update v if we need to add to the accumulator.
		if aNaf[i] > 0 {
			v.fromP1xP1(tmp1)
			aTable.SelectInto(multA, aNaf[i])
			tmp1.Add(v, multA)
		} else if aNaf[i] < 0 {
			v.fromP1xP1(tmp1)
			aTable.SelectInto(multA, -aNaf[i])
			tmp1.Sub(v, multA)
		}

		if bNaf[i] > 0 {
			v.fromP1xP1(tmp1)
			bTable.SelectInto(multB, bNaf[i])
			tmp1.AddAffine(v, multB)
		} else if bNaf[i] < 0 {
			v.fromP1xP1(tmp1)
			bTable.SelectInto(multB, -bNaf[i])
			tmp1.SubAffine(v, multB)
		}

		tmp2.FromP1xP1(tmp1)
	}

	return v.fromP2(tmp2)
}
