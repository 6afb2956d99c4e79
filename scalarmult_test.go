package edwards25519

import (
	"testing"
)

func TestScalarBaseMult(t *testing.T) {
	B := NewGeneratorPoint()

	t.Run("One", func(t *testing.T) {
		var p Point
		p.ScalarBaseMult(new(Scalar).SetUint64(1))
		if p.Equal(B) != 1 {
			t.Error("1*B != B")
		}
	})

	t.Run("Zero", func(t *testing.T) {
		var p Point
		p.ScalarBaseMult(NewScalar())
		if p.IsIdentity() != 1 {
			t.Error("0*B != identity")
		}
	})

	t.Run("MatchesScalarMult", func(t *testing.T) {
		for _, s := range testScalars(t, 8) {
			var base, generic Point
			base.ScalarBaseMult(s)
			generic.ScalarMult(s, B)
			if base.Equal(&generic) != 1 {
				t.Errorf("ScalarBaseMult != ScalarMult(B) for %x", s.Bytes())
			}
		}
	})
}

func TestScalarMultDistributes(t *testing.T) {
	scalars := testScalars(t, 8)

	for i, a := range scalars {
		b := scalars[(i+1)%len(scalars)]

		var sum Scalar
		sum.Add(a, b)

		var left, aB, bB, right Point
		left.ScalarBaseMult(&sum)
		aB.ScalarBaseMult(a)
		bB.ScalarBaseMult(b)
		right.Add(&aB, &bB)

		if left.Equal(&right) != 1 {
			t.Errorf("(a+b)*B != a*B + b*B at %d", i)
		}

		// a*(b*B) == (a*b)*B
		var prod Scalar
		prod.Multiply(a, b)
		left.ScalarMult(a, &bB)
		right.ScalarBaseMult(&prod)
		if left.Equal(&right) != 1 {
			t.Errorf("a*(b*B) != (a*b)*B at %d", i)
		}
	}
}

func TestVarTimeScalarMult(t *testing.T) {
	B := NewGeneratorPoint()
	q := new(Point).Double(B)

	for _, s := range scalarsWithEdgeCases(t) {
		var ct, vt Point
		ct.ScalarMult(s, q)
		vt.VarTimeScalarMult(s, q)
		if ct.Equal(&vt) != 1 {
			t.Errorf("variable-time result differs for %x", s.Bytes())
		}

		ct.ScalarBaseMult(s)
		vt.VarTimeScalarBaseMult(s)
		if ct.Equal(&vt) != 1 {
			t.Errorf("variable-time basepoint result differs for %x", s.Bytes())
		}
	}
}

func TestScalarMultPrecomputed(t *testing.T) {
	B := NewGeneratorPoint()
	q := new(Point).MultByCofactor(B)
	table := PointTablePrecompute(q)

	if table.Point().Equal(q) != 1 {
		t.Error("PrecomputedTable does not round trip its point")
	}

	for _, s := range scalarsWithEdgeCases(t) {
		var ct, vt Point
		ct.ScalarMult(s, q)
		vt.VarTimeScalarMultPrecomputed(s, table)
		if ct.Equal(&vt) != 1 {
			t.Errorf("precomputed result differs for %x", s.Bytes())
		}
	}
}

func TestVarTimeDoubleScalarBaseMult(t *testing.T) {
	B := NewGeneratorPoint()
	A := new(Point).Double(B)
	scalars := testScalars(t, 8)

	for i, a := range scalars {
		b := scalars[(i+1)%len(scalars)]

		var aA, bB, expected, got Point
		aA.ScalarMult(a, A)
		bB.ScalarBaseMult(b)
		expected.Add(&aA, &bB)

		got.VarTimeDoubleScalarBaseMult(a, A, b)
		if got.Equal(&expected) != 1 {
			t.Errorf("a*A + b*B mismatch at %d", i)
		}
	}
}

func BenchmarkScalarBaseMult(b *testing.B) {
	var p Point
	s := testScalars(b, 1)[0]

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.ScalarBaseMult(s)
	}
}

func BenchmarkScalarMult(b *testing.B) {
	var p Point
	s := testScalars(b, 1)[0]
	B := NewGeneratorPoint()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.ScalarMult(s, B)
	}
}

func BenchmarkVarTimeScalarMult(b *testing.B) {
	var p Point
	s := testScalars(b, 1)[0]
	B := NewGeneratorPoint()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.VarTimeScalarMult(s, B)
	}
}
