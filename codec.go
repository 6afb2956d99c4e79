package edwards25519

import (
	"crypto/subtle"
	"errors"

	"git.gammaspectra.live/P2Pool/edwards25519/field"
)

// Compressed point encoding: 32 bytes, bits 0..254 hold the canonical
// little-endian y coordinate, bit 255 holds the sign of x.

// ErrInvalidEncoding is returned by SetBytes when the encoded y coordinate
// is not canonically reduced (y >= p).
var ErrInvalidEncoding = errors.New("edwards25519: invalid point encoding: non-canonical y coordinate")

// ErrNotOnCurve is returned by SetBytes when the encoding does not
// correspond to any point on the curve.
var ErrNotOnCurve = errors.New("edwards25519: invalid point encoding: not on curve")

// SetBytes sets v = x, where x is a 32-byte compressed encoding of a curve
// point. If x does not decode to a valid point, SetBytes returns nil and an
// error, and the receiver is unchanged.
//
// Unlike the lenient field element decoder, SetBytes rejects encodings whose
// y coordinate is not canonically reduced. It accepts the non-canonical
// encoding of the identity with the sign bit set ("negative zero"), as the
// reference implementations do; callers that need a bijective codec must
// compare the re-encoded bytes, as the curve25519 front-end does.
func (v *Point) SetBytes(x []byte) (*Point, error) {
	// Decoding works as follows:
	//
	//   1. Interpret bits 0..254 as y, rejecting y >= p.
	//   2. Compute x² = (y² - 1) / (d·y² + 1) from the curve equation.
	//   3. Take the square root of the ratio; if none exists the bytes do
	//      not name a curve point.
	//   4. Pick the root whose sign matches bit 255.
	y, err := new(field.Element).SetBytes(x)
	if err != nil {
		return nil, ErrInvalidEncoding
	}

	// SetBytes masked the sign bit away; a canonical y re-encodes to the
	// input with the sign bit cleared.
	if subtle.ConstantTimeByteEq(y.Bytes()[31], x[31]&0x7f) != 1 ||
		subtle.ConstantTimeCompare(y.Bytes()[:31], x[:31]) != 1 {
		return nil, ErrInvalidEncoding
	}

	// u = y² - 1, w = d·y² + 1, x = ±sqrt(u/w)
	y2 := new(field.Element).Square(y)
	u := new(field.Element).Subtract(y2, feOne)
	w := new(field.Element).Multiply(y2, d)
	w.Add(w, feOne)
	xx, wasSquare := new(field.Element).SqrtRatio(u, w)
	if wasSquare == 0 {
		return nil, ErrNotOnCurve
	}

	// Pick the sign requested by bit 255. SqrtRatio returned the
	// nonnegative root, so a set sign bit means negating.
	xxNeg := new(field.Element).Negate(xx)
	xx.Select(xxNeg, xx, int(x[31]>>7))

	v.x.Set(xx)
	v.y.Set(y)
	v.z.One()
	v.t.Multiply(xx, y) // xy = T/Z

	return v, nil
}

// Bytes returns the canonical 32-byte compressed encoding of v.
func (v *Point) Bytes() []byte {
	// Outlined so the array allocation stays on the caller's stack.
	var buf [32]byte
	return v.bytes(&buf)
}

func (v *Point) bytes(buf *[32]byte) []byte {
	checkInitialized(v)

	var zInv, x, y field.Element
	zInv.Invert(&v.z)       // zInv = 1 / Z
	x.Multiply(&v.x, &zInv) // x = X / Z
	y.Multiply(&v.y, &zInv) // y = Y / Z

	copy(buf[:], y.Bytes())
	buf[31] |= byte(x.IsNegative() << 7)

	return buf[:]
}
