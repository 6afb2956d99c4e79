package curve25519

import (
	"testing"

	"git.gammaspectra.live/P2Pool/edwards25519"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
)

func assertKeysEqual[T PointOperations](t *testing.T, expected, got *PublicKey[T]) {
	t.Helper()
	if got == nil || got.Equal(expected) != 1 {
		t.Fatalf("expected %s, got %s", expected, got)
	}
}

func TestPointOperations(t *testing.T) {
	spec.Run(t, "ConstantTime", testOperations[ConstantTimeOperations], spec.Report(report.Terminal{}))
	spec.Run(t, "VarTime", testOperations[VarTimeOperations], spec.Report(report.Terminal{}))
	spec.Run(t, "VarTimeCounter", testOperations[VarTimeCounterOperations], spec.Report(report.Terminal{}))
}

func testOperations[T PointOperations](t *testing.T, when spec.G, it spec.S) {
	var (
		two   = (&PrivateKeyBytes{2}).Scalar()
		three = (&PrivateKeyBytes{3}).Scalar()
		five  = (&PrivateKeyBytes{5}).Scalar()

		base     = FromPoint[T](edwards25519.NewGeneratorPoint())
		identity = FromPoint[T](edwards25519.NewIdentityPoint())
	)

	it("multiplies the basepoint", func() {
		expected := new(PublicKey[T]).ScalarMult(five, base)
		assertKeysEqual(t, expected, new(PublicKey[T]).ScalarBaseMult(five))
	})

	it("adds and subtracts", func() {
		sum := new(PublicKey[T]).Add(
			new(PublicKey[T]).ScalarBaseMult(two),
			new(PublicKey[T]).ScalarBaseMult(three),
		)
		assertKeysEqual(t, new(PublicKey[T]).ScalarBaseMult(five), sum)
		assertKeysEqual(t, base, new(PublicKey[T]).Subtract(
			new(PublicKey[T]).ScalarBaseMult(three),
			new(PublicKey[T]).ScalarBaseMult(two),
		))
	})

	it("uses precomputed generator tables", func() {
		expected := new(PublicKey[T]).ScalarMult(three, base)
		assertKeysEqual(t, expected, new(PublicKey[T]).ScalarMultPrecomputed(three, BaseGenerator))
	})

	it("combines double scalar multiplications", func() {
		A := new(PublicKey[T]).ScalarBaseMult(two)

		// 3*(2*B) + 5*B = 11*B
		expected := new(PublicKey[T]).ScalarBaseMult((&PrivateKeyBytes{11}).Scalar())
		assertKeysEqual(t, expected, new(PublicKey[T]).DoubleScalarBaseMult(three, A, five))
	})

	it("sums multiple scalar multiplications", func() {
		points := []*PublicKey[T]{
			base,
			new(PublicKey[T]).ScalarBaseMult(two),
			new(PublicKey[T]).ScalarBaseMult(three),
		}
		scalars := []*Scalar{five, three, two}

		// 5*B + 3*(2*B) + 2*(3*B) = 17*B
		expected := new(PublicKey[T]).ScalarBaseMult((&PrivateKeyBytes{17}).Scalar())
		assertKeysEqual(t, expected, new(PublicKey[T]).MultiScalarMult(scalars, points))
	})

	it("clears torsion with the cofactor", func() {
		expected := new(PublicKey[T]).ScalarBaseMult((&PrivateKeyBytes{8}).Scalar())
		assertKeysEqual(t, expected, new(PublicKey[T]).MultByCofactor(base))
	})

	it("classifies subgroup membership", func() {
		if !base.IsTorsionFree() {
			t.Fatal("generator must be torsion free")
		}
		if base.IsSmallOrder() {
			t.Fatal("generator is not small order")
		}
		if !identity.IsSmallOrder() {
			t.Fatal("identity is small order")
		}
	})

	it("converts between strategies", func() {
		v := To[VarTimeOperations](base)
		assertKeysEqual(t, FromPoint[VarTimeOperations](edwards25519.NewGeneratorPoint()), v)
		assertKeysEqual(t, base, To[T](v))
	})
}

func TestVarTimeCounterReport(t *testing.T) {
	VarTimeCounterOperationsReset()

	var k PublicKey[VarTimeCounterOperations]
	base := FromPoint[VarTimeCounterOperations](edwards25519.NewGeneratorPoint())

	k.Add(base, base)
	k.Add(base, base)
	k.Subtract(base, base)
	k.ScalarBaseMult((&PrivateKeyBytes{2}).Scalar())
	k.ScalarMult((&PrivateKeyBytes{2}).Scalar(), base)
	base.IsTorsionFree()

	counts := make(map[string]float64)
	VarTimeCounterOperationsReport(1, func(v float64, metric string) {
		counts[metric] = v
	})

	if counts["AddSub/op"] != 3 {
		t.Errorf("expected 3 AddSub/op, got %v", counts["AddSub/op"])
	}
	if counts["ScalarMult/op"] != 2 {
		t.Errorf("expected 2 ScalarMult/op, got %v", counts["ScalarMult/op"])
	}
	if counts["Torsion/op"] != 1 {
		t.Errorf("expected 1 Torsion/op, got %v", counts["Torsion/op"])
	}

	VarTimeCounterOperationsReset()
	VarTimeCounterOperationsReport(1, func(v float64, metric string) {
		if v != 0 {
			t.Errorf("expected %s reset to zero, got %v", metric, v)
		}
	})
}
