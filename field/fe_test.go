package field

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"math/big"
	"testing"
)

var fieldPrime = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 255)
	return p.Sub(p, big.NewInt(19))
}()

func mustDecodeHex(tb testing.TB, s string) []byte {
	tb.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		tb.Fatal(err)
	}
	return b
}

// deterministic pseudo-random elements for property tests
func testElements(tb testing.TB, n int) []*Element {
	tb.Helper()
	out := make([]*Element, 0, n)
	seed := []byte("edwards25519 field test")
	for len(out) < n {
		sum := sha512.Sum512(seed)
		seed = sum[:]
		e, err := new(Element).SetBytes(sum[:32])
		if err != nil {
			tb.Fatal(err)
		}
		out = append(out, e)
	}
	return out
}

func bigFromElement(e *Element) *big.Int {
	buf := e.Bytes()
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return new(big.Int).SetBytes(buf)
}

func TestSetBytesRoundTrip(t *testing.T) {
	for _, e := range testElements(t, 32) {
		buf := e.Bytes()
		e2, err := new(Element).SetBytes(buf)
		if err != nil {
			t.Fatal(err)
		}
		if e.Equal(e2) != 1 {
			t.Errorf("SetBytes(Bytes(e)) != e for %x", buf)
		}
		if bigFromElement(e).Cmp(fieldPrime) >= 0 {
			t.Errorf("Bytes returned unreduced value %x", buf)
		}
	}

	// The top bit of the encoding is ignored on input and always cleared on
	// output.
	buf := mustDecodeHex(t, "c0ffee00000000000000000000000000000000000000000000000000000000f1")
	e, err := new(Element).SetBytes(buf)
	if err != nil {
		t.Fatal(err)
	}
	buf[31] &= 0x7f
	masked, _ := new(Element).SetBytes(buf)
	if e.Equal(masked) != 1 {
		t.Error("high bit of input not masked")
	}

	if _, err := new(Element).SetBytes(make([]byte, 31)); err == nil {
		t.Error("expected error for short input")
	}
}

func TestArithmeticAgainstBig(t *testing.T) {
	elems := testElements(t, 16)
	mod := func(x *big.Int) *big.Int { return x.Mod(x, fieldPrime) }

	for i, a := range elems {
		b := elems[(i+1)%len(elems)]
		bigA, bigB := bigFromElement(a), bigFromElement(b)

		var got Element
		if got.Add(a, b); bigFromElement(&got).Cmp(mod(new(big.Int).Add(bigA, bigB))) != 0 {
			t.Errorf("Add mismatch at %d", i)
		}
		if got.Subtract(a, b); bigFromElement(&got).Cmp(mod(new(big.Int).Sub(bigA, bigB))) != 0 {
			t.Errorf("Subtract mismatch at %d", i)
		}
		if got.Multiply(a, b); bigFromElement(&got).Cmp(mod(new(big.Int).Mul(bigA, bigB))) != 0 {
			t.Errorf("Multiply mismatch at %d", i)
		}
		if got.Square(a); bigFromElement(&got).Cmp(mod(new(big.Int).Mul(bigA, bigA))) != 0 {
			t.Errorf("Square mismatch at %d", i)
		}
		if got.Negate(a); bigFromElement(&got).Cmp(mod(new(big.Int).Neg(bigA))) != 0 {
			t.Errorf("Negate mismatch at %d", i)
		}
	}
}

func TestInvert(t *testing.T) {
	var one, got Element
	one.One()

	for _, e := range testElements(t, 16) {
		got.Invert(e)
		got.Multiply(&got, e)
		if got.Equal(&one) != 1 {
			t.Errorf("e * e^-1 != 1")
		}
	}

	var zero Element
	got.Invert(&zero)
	if got.Equal(&zero) != 1 {
		t.Error("Invert(0) != 0")
	}
}

func TestSqrtM1(t *testing.T) {
	var sq, minusOne, one Element
	one.One()
	minusOne.Negate(&one)
	sq.Square(SqrtM1())
	if sq.Equal(&minusOne) != 1 {
		t.Error("SqrtM1^2 != -1")
	}
}

func TestSqrtRatio(t *testing.T) {
	elems := testElements(t, 16)
	exp := new(big.Int).Rsh(new(big.Int).Sub(fieldPrime, big.NewInt(1)), 1)

	for i, v := range elems {
		// u = r^2 * v is always square over v
		r := elems[(i+1)%len(elems)]
		var u Element
		u.Square(r)
		u.Multiply(&u, v)

		var root Element
		_, wasSquare := root.SqrtRatio(&u, v)
		if wasSquare != 1 {
			t.Fatalf("square ratio reported non-square at %d", i)
		}
		var check Element
		check.Square(&root)
		check.Multiply(&check, v)
		if check.Equal(&u) != 1 {
			t.Errorf("root^2 * v != u at %d", i)
		}
		if root.IsNegative() != 0 {
			t.Errorf("SqrtRatio returned negative root at %d", i)
		}

		// Multiplying u by sqrt(-1) flips its quadratic residuosity over v.
		var uNotSquare Element
		uNotSquare.Multiply(&u, SqrtM1())
		ratio := new(big.Int).Mul(bigFromElement(&uNotSquare), new(big.Int).ModInverse(bigFromElement(v), fieldPrime))
		ratio.Mod(ratio, fieldPrime)
		if new(big.Int).Exp(ratio, exp, fieldPrime).Cmp(big.NewInt(1)) == 0 {
			t.Fatalf("test setup: ratio unexpectedly square at %d", i)
		}
		if _, wasSquare := root.SqrtRatio(&uNotSquare, v); wasSquare != 0 {
			t.Errorf("non-square ratio reported square at %d", i)
		}
	}

	var zero, v, root Element
	if _, wasSquare := root.SqrtRatio(&zero, elems[0]); wasSquare != 1 || root.Equal(&zero) != 1 {
		t.Error("SqrtRatio(0, v) should be (0, 1)")
	}
	if _, wasSquare := root.SqrtRatio(v.One(), &zero); wasSquare != 0 {
		t.Error("SqrtRatio(u, 0) should report non-square")
	}
}

func TestSelectSwap(t *testing.T) {
	elems := testElements(t, 2)
	a, b := elems[0], elems[1]

	var c, d Element
	c.Select(a, b, 1)
	d.Select(a, b, 0)
	if c.Equal(a) != 1 || d.Equal(b) != 1 {
		t.Error("Select failed")
	}

	c.Swap(&d, 0)
	if c.Equal(a) != 1 || d.Equal(b) != 1 {
		t.Error("Swap with cond 0 should not swap")
	}
	c.Swap(&d, 1)
	if c.Equal(b) != 1 || d.Equal(a) != 1 {
		t.Error("Swap with cond 1 should swap")
	}
}

func TestBatchInvert(t *testing.T) {
	elems := testElements(t, 8)

	singles := make([]Element, len(elems))
	batch := make([]*Element, len(elems))
	for i, e := range elems {
		singles[i].Invert(e)
		cp := *e
		batch[i] = &cp
	}
	// a zero in the middle must be skipped and left untouched
	var zero Element
	batch = append(batch, &zero)

	BatchInvert(batch...)

	for i := range singles {
		if batch[i].Equal(&singles[i]) != 1 {
			t.Errorf("batch inverse %d differs from single inverse", i)
		}
	}
	if zero.Equal(new(Element).Zero()) != 1 {
		t.Error("BatchInvert modified a zero input")
	}
}

func TestBytesFixedVectors(t *testing.T) {
	// p encodes as zero once reduced
	e, err := new(Element).SetBytes(mustDecodeHex(t, "edffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(e.Bytes(), make([]byte, 32)) {
		t.Errorf("p did not reduce to zero: %x", e.Bytes())
	}

	// p+1 encodes as one
	e, err = new(Element).SetBytes(mustDecodeHex(t, "eeffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"))
	if err != nil {
		t.Fatal(err)
	}
	if e.Equal(new(Element).One()) != 1 {
		t.Errorf("p+1 did not reduce to one: %x", e.Bytes())
	}
}
