package edwards25519

import (
	"encoding/hex"
	"errors"
	"testing"

	"git.gammaspectra.live/P2Pool/edwards25519/field"
)

func decodePoint(tb testing.TB, s string) *Point {
	tb.Helper()
	buf, err := hex.DecodeString(s)
	if err != nil {
		tb.Fatal(err)
	}
	p, err := new(Point).SetBytes(buf)
	if err != nil {
		tb.Fatal(err)
	}
	return p
}

func TestGeneratorEncoding(t *testing.T) {
	// 4/5 in little endian with a positive x
	const expected = "5866666666666666666666666666666666666666666666666666666666666666"
	if got := hex.EncodeToString(NewGeneratorPoint().Bytes()); got != expected {
		t.Errorf("generator encodes as %s, want %s", got, expected)
	}
}

func TestIdentityEncoding(t *testing.T) {
	const expected = "0100000000000000000000000000000000000000000000000000000000000000"
	if got := hex.EncodeToString(NewIdentityPoint().Bytes()); got != expected {
		t.Errorf("identity encodes as %s, want %s", got, expected)
	}
	if NewIdentityPoint().IsIdentity() != 1 {
		t.Error("identity not recognized")
	}
	if NewGeneratorPoint().IsIdentity() != 0 {
		t.Error("generator reported as identity")
	}
}

func TestSetBytesRejections(t *testing.T) {
	for _, tc := range []struct {
		name string
		hex  string
		err  error
	}{
		// y = p, reduced encoding would be zero
		{"y equal to p", "edffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f", ErrInvalidEncoding},
		// y = p + 1, reduced encoding would be one
		{"y above p", "eeffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f", ErrInvalidEncoding},
		// y = 2 gives a non-square x^2
		{"no square root", "0200000000000000000000000000000000000000000000000000000000000000", ErrNotOnCurve},
		{"no square root with sign", "0200000000000000000000000000000000000000000000000000000000000080", ErrNotOnCurve},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf, err := hex.DecodeString(tc.hex)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := new(Point).SetBytes(buf); !errors.Is(err, tc.err) {
				t.Errorf("got %v, want %v", err, tc.err)
			}
		})
	}

	if _, err := new(Point).SetBytes(make([]byte, 31)); err == nil {
		t.Error("expected error for short input")
	}

	// y = p - 1 is reduced and on the curve
	if _, err := new(Point).SetBytes(mustDecodeHexBytes(t, "ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")); err != nil {
		t.Errorf("y = p-1 rejected: %v", err)
	}
}

func mustDecodeHexBytes(tb testing.TB, s string) []byte {
	tb.Helper()
	buf, err := hex.DecodeString(s)
	if err != nil {
		tb.Fatal(err)
	}
	return buf
}

func TestBytesRoundTrip(t *testing.T) {
	B := NewGeneratorPoint()
	p := NewIdentityPoint()
	for i := 0; i < 32; i++ {
		p.Add(p, B)
		buf := p.Bytes()
		q, err := new(Point).SetBytes(buf)
		if err != nil {
			t.Fatal(err)
		}
		if p.Equal(q) != 1 {
			t.Fatalf("round trip failed at %d", i)
		}
	}
}

func TestGroupLaws(t *testing.T) {
	B := NewGeneratorPoint()
	I := NewIdentityPoint()

	twoB := decodePoint(t, "c9a3f86aae465f0e56513864510f3997561fa2c9e85ea21dc2292309f3cd6022")
	eightB := decodePoint(t, "b4b937fca95b2f1e93e41e62fc3c78818ff38a66096fad6e7973e5c90006d321")

	t.Run("Doubling", func(t *testing.T) {
		var d, a Point
		d.Double(B)
		a.Add(B, B)
		if d.Equal(twoB) != 1 || a.Equal(twoB) != 1 {
			t.Error("B+B != 2B")
		}
	})

	t.Run("Cofactor", func(t *testing.T) {
		var c Point
		if c.MultByCofactor(B); c.Equal(eightB) != 1 {
			t.Error("MultByCofactor(B) != 8B")
		}
	})

	t.Run("Identity", func(t *testing.T) {
		var s Point
		if s.Add(B, I); s.Equal(B) != 1 {
			t.Error("B + 0 != B")
		}
		if s.Subtract(B, B); s.Equal(I) != 1 {
			t.Error("B - B != 0")
		}
	})

	t.Run("Negation", func(t *testing.T) {
		var n, s Point
		n.Negate(B)
		if s.Add(B, &n); s.Equal(I) != 1 {
			t.Error("B + (-B) != 0")
		}
	})

	t.Run("Commutativity", func(t *testing.T) {
		var ab, ba Point
		ab.Add(twoB, eightB)
		ba.Add(eightB, twoB)
		if ab.Equal(&ba) != 1 {
			t.Error("2B + 8B != 8B + 2B")
		}
	})

	t.Run("Associativity", func(t *testing.T) {
		var left, right, tmp Point
		left.Add(tmp.Add(B, twoB), eightB)
		right.Add(B, tmp.Add(twoB, eightB))
		if left.Equal(&right) != 1 {
			t.Error("(B+2B)+8B != B+(2B+8B)")
		}
	})
}

func TestExtendedCoordinates(t *testing.T) {
	B := NewGeneratorPoint()
	X, Y, Z, T := B.ExtendedCoordinates()

	q, err := new(Point).SetExtendedCoordinates(X, Y, Z, T)
	if err != nil {
		t.Fatal(err)
	}
	if q.Equal(B) != 1 {
		t.Error("SetExtendedCoordinates(ExtendedCoordinates(B)) != B")
	}

	// mangled T breaks the curve equation
	Tbad := field.SqrtM1()
	if _, err := new(Point).SetExtendedCoordinates(X, Y, Z, Tbad); err == nil {
		t.Error("expected error for inconsistent coordinates")
	}
}

func TestTorsion(t *testing.T) {
	B := NewGeneratorPoint()
	I := NewIdentityPoint()

	if !B.IsTorsionFree() {
		t.Error("generator reported as torsioned")
	}
	if !I.IsTorsionFree() {
		t.Error("identity reported as torsioned")
	}
	if !I.IsSmallOrder() {
		t.Error("identity not small order")
	}
	if B.IsSmallOrder() {
		t.Error("generator reported as small order")
	}

	var lB Point
	if lB.MultByPrimeOrder(B); lB.IsIdentity() != 1 {
		t.Error("l*B != identity")
	}

	// MultByPrimeOrder must not clobber its argument
	q := NewGeneratorPoint()
	lB.MultByPrimeOrder(q)
	if q.Equal(B) != 1 {
		t.Error("MultByPrimeOrder modified its argument")
	}
}

func TestUninitializedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on uninitialized Point")
		}
	}()
	var p, zero Point
	p.Add(&zero, &zero)
}

func TestBatchBytes(t *testing.T) {
	B := NewGeneratorPoint()
	points := []*Point{NewIdentityPoint(), B, new(Point).Double(B), new(Point).MultByCofactor(B)}
	out := make([][32]byte, len(points))

	BatchBytes(points, out)
	for i, p := range points {
		var single [32]byte
		copy(single[:], p.Bytes())
		if out[i] != single {
			t.Errorf("batch encoding %d differs: %x != %x", i, out[i], single)
		}
	}

	BatchBytesMontgomery(points, out)
	for i, p := range points {
		var single [32]byte
		copy(single[:], p.BytesMontgomery())
		if out[i] != single {
			t.Errorf("batch Montgomery encoding %d differs: %x != %x", i, out[i], single)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on mismatched lengths")
		}
	}()
	BatchBytes(points, out[:1])
}
