package edwards25519

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"
)

// Scalar is an integer modulo
//
//	l = 2^252 + 27742317777372353535851937790883648493
//
// the prime order of the edwards25519 group.
//
// A Scalar always holds its canonical 32-byte little-endian encoding; the
// arithmetic methods unpack it into limb form, operate, and repack, so the
// represented value never leaves [0, l). Once handed to a caller a Scalar is
// treated as immutable: operations write to their receiver only.
//
// The zero value is a valid zero scalar.
type Scalar struct {
	s [32]byte
}

// scalarOrderBytes is the canonical little-endian encoding of l.
var scalarOrderBytes = [32]byte{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

// NewScalar returns a new zero Scalar.
func NewScalar() *Scalar {
	return &Scalar{}
}

// Set sets s = x, and returns s.
func (s *Scalar) Set(x *Scalar) *Scalar {
	*s = *x
	return s
}

// SetUint64 sets s = x, and returns s.
func (s *Scalar) SetUint64(x uint64) *Scalar {
	*s = Scalar{}
	binary.LittleEndian.PutUint64(s.s[:8], x)
	return s
}

// SetCanonicalBytes sets s = x, where x is a 32-byte little-endian encoding
// of s, and returns s. If x is not a canonical encoding of s (the value is
// not reduced modulo l), SetCanonicalBytes returns nil and an error, and the
// receiver is unchanged.
func (s *Scalar) SetCanonicalBytes(x []byte) (*Scalar, error) {
	if len(x) != 32 {
		return nil, errors.New("edwards25519: invalid scalar length")
	}
	if !isReduced(x) {
		return nil, errors.New("edwards25519: invalid scalar encoding")
	}
	copy(s.s[:], x)
	return s, nil
}

// isReduced returns whether the given scalar encoding is strictly below the
// group order l.
func isReduced(x []byte) bool {
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] > scalarOrderBytes[i]:
			return false
		case x[i] < scalarOrderBytes[i]:
			return true
		}
	}
	return false
}

// SetUniformBytes sets s = x mod l, where x is a 64-byte little-endian
// integer, and returns s. The output distribution is uniform when x is
// uniform, which makes this the right way to derive a scalar from a hash or
// other wide random string.
//
// If x is not of the right length, SetUniformBytes returns nil and an error,
// and the receiver is unchanged.
func (s *Scalar) SetUniformBytes(x []byte) (*Scalar, error) {
	if len(x) != 64 {
		return nil, errors.New("edwards25519: invalid SetUniformBytes input length")
	}
	var wide [64]byte
	copy(wide[:], x)
	var us unpackedScalar
	us.fromBytesWide(&wide)
	us.toBytes(&s.s)
	return s, nil
}

// SetBytesWithClamping applies the Ed25519 buffer pruning of RFC 8032,
// Section 5.1.5 to x, interprets the result as a little-endian integer, and
// reduces it modulo l. Provided for compatibility with legacy key material;
// new designs should use SetUniformBytes.
//
// If x is not 32 bytes long, SetBytesWithClamping returns nil and an error,
// and the receiver is unchanged.
func (s *Scalar) SetBytesWithClamping(x []byte) (*Scalar, error) {
	if len(x) != 32 {
		return nil, errors.New("edwards25519: invalid SetBytesWithClamping input length")
	}
	var wide [64]byte
	copy(wide[:], x)
	wide[0] &= 248
	wide[31] &= 63
	wide[31] |= 64
	var us unpackedScalar
	us.fromBytesWide(&wide)
	us.toBytes(&s.s)
	return s, nil
}

// Bytes returns the canonical 32-byte little-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	// Outlined so the array allocation stays on the caller's stack.
	var out [32]byte
	return s.bytes(&out)
}

func (s *Scalar) bytes(out *[32]byte) []byte {
	copy(out[:], s.s[:])
	return out[:]
}

// Equal returns 1 if s and t are equal, and 0 otherwise, in constant time.
func (s *Scalar) Equal(t *Scalar) int {
	return subtle.ConstantTimeCompare(s.s[:], t.s[:])
}

// Add sets s = x + y mod l, and returns s.
func (s *Scalar) Add(x, y *Scalar) *Scalar {
	var ux, uy unpackedScalar
	ux.fromBytes(&x.s)
	uy.fromBytes(&y.s)
	ux.add(&ux, &uy)
	ux.toBytes(&s.s)
	return s
}

// Subtract sets s = x - y mod l, and returns s.
func (s *Scalar) Subtract(x, y *Scalar) *Scalar {
	var ux, uy unpackedScalar
	ux.fromBytes(&x.s)
	uy.fromBytes(&y.s)
	ux.sub(&ux, &uy)
	ux.toBytes(&s.s)
	return s
}

// Negate sets s = -x mod l, and returns s.
func (s *Scalar) Negate(x *Scalar) *Scalar {
	return s.Subtract(&Scalar{}, x)
}

// Multiply sets s = x * y mod l, and returns s.
func (s *Scalar) Multiply(x, y *Scalar) *Scalar {
	var ux, uy unpackedScalar
	ux.fromBytes(&x.s)
	uy.fromBytes(&y.s)
	ux.mul(&ux, &uy)
	ux.toBytes(&s.s)
	return s
}

// MultiplyAdd sets s = x * y + z mod l, and returns s.
func (s *Scalar) MultiplyAdd(x, y, z *Scalar) *Scalar {
	// Make a copy of z in case it aliases s.
	zCopy := new(Scalar).Set(z)
	return s.Multiply(x, y).Add(s, zCopy)
}

// Digit expansions. These are pure derived views of the scalar: calling them
// never changes s, and equal scalars always produce equal expansions.

// signedRadix16 returns the 64 signed radix-16 digits d of s, with
// -8 <= d < 8, such that s = sum(d[i] * 16^i). The expansion has purely
// data-independent control flow, so it is safe for secret scalars.
func (s *Scalar) signedRadix16() [64]int8 {
	if s.s[31] > 127 {
		panic("edwards25519: scalar has high bit set illegally")
	}

	var digits [64]int8

	// Raw nibbles first.
	for i := 0; i < 32; i++ {
		digits[2*i] = int8(s.s[i] & 15)
		digits[2*i+1] = int8((s.s[i] >> 4) & 15)
	}

	// Recenter coefficients from [0,16) to [-8,8): when a digit exceeds 8,
	// subtract 16 from it and carry one into the next digit, preserving the
	// total value. The top digit never overflows because s < 2^255.
	for i := 0; i < 63; i++ {
		carry := (digits[i] + 8) >> 4
		digits[i] -= carry << 4
		digits[i+1] += carry
	}

	return digits
}

// nonAdjacentForm returns the width-w non-adjacent form of s: 256 signed
// digits, each zero or odd with magnitude below 2^(w-1), with no two nonzero
// digits within w positions of each other.
//
// The expansion branches on digit values and must only be used with public
// scalars.
func (s *Scalar) nonAdjacentForm(w uint) [256]int8 {
	if s.s[31] > 127 {
		panic("edwards25519: scalar has high bit set illegally")
	}
	if w < 2 {
		panic("edwards25519: w must be at least 2 by the definition of NAF")
	} else if w > 8 {
		panic("edwards25519: NAF digits must fit in int8")
	}

	var naf [256]int8
	var digits [5]uint64

	for i := 0; i < 4; i++ {
		digits[i] = binary.LittleEndian.Uint64(s.s[i*8:])
	}

	width := uint64(1 << w)
	windowMask := width - 1

	pos := uint(0)
	carry := uint64(0)
	for pos < 256 {
		indexU64 := pos / 64
		indexBit := pos % 64
		var bitBuf uint64
		if indexBit < 64-w {
			// This window's bits are contained in a single u64
			bitBuf = digits[indexU64] >> indexBit
		} else {
			// Combine the current 64 bits with bits from the next 64
			bitBuf = (digits[indexU64] >> indexBit) | (digits[1+indexU64] << (64 - indexBit))
		}

		// Add carry into the current window
		window := carry + (bitBuf & windowMask)

		if window&1 == 0 {
			// If the window value is even, preserve the carry and continue.
			// Why is the carry preserved?
			// If carry == 0 and window & 1 == 0,
			//    then the next carry should be 0
			// If carry == 1 and window & 1 == 0,
			//    then bit_buf & 1 == 1 so the next carry should be 1
			pos += 1
			continue
		}

		if window < width/2 {
			carry = 0
			naf[pos] = int8(window)
		} else {
			carry = 1
			naf[pos] = int8(window) - int8(width)
		}

		pos += w
	}
	return naf
}

// toRadix2w returns the signed radix-2^w representation of s for the
// Pippenger window widths, 6 <= w <= 8: digits d with |d| <= 2^(w-1) such
// that s = sum(d[i] * 2^(w*i)). The second return value is the number of
// digits used; for w = 8 a final carry digit is appended past the
// ceil(256/w) windows.
//
// Variable time only in w, not in the scalar value, but used exclusively on
// the variable-time Pippenger path.
func (s *Scalar) toRadix2w(w uint) (digits [43]int8, count int) {
	if w < 6 || w > 8 {
		panic("edwards25519: radix-2^w digits only implemented for w in [6, 8]")
	}

	var words [4]uint64
	for i := 0; i < 4; i++ {
		words[i] = binary.LittleEndian.Uint64(s.s[i*8:])
	}

	radix := uint64(1) << w
	windowMask := radix - 1

	digitsCount := (256 + int(w) - 1) / int(w)

	carry := uint64(0)
	for i := 0; i < digitsCount; i++ {
		// Construct a buffer of bits of the scalar, starting at bitOffset.
		bitOffset := i * int(w)
		u64Idx := bitOffset / 64
		bitIdx := uint(bitOffset % 64)

		var bitBuf uint64
		if bitIdx < 64-w || u64Idx == 3 {
			// This window's bits are contained in a single u64,
			// or it's the last u64 anyway.
			bitBuf = words[u64Idx] >> bitIdx
		} else {
			bitBuf = (words[u64Idx] >> bitIdx) | (words[u64Idx+1] << (64 - bitIdx))
		}

		// Read the actual coefficient value from the window
		coef := carry + (bitBuf & windowMask) // coef in [0, 2^w)

		// Recenter coefficients from [0,2^w) to [-2^w/2, 2^w/2)
		carry = (coef + (radix / 2)) >> w
		digits[i] = int8(int64(coef) - int64(carry<<w))
	}

	// For w < 8, we can fold the final carry onto the last digit d,
	// because d < 2^w/2 so d + carry*2^w = d + 1*2^w < 2^(w+1) < 2^8.
	//
	// For w = 8, we can't fit carry*2^w into an int8. This should
	// not happen anyways, because the final carry will be 0 for
	// reduced scalars, but Scalar invariant allows 255-bit scalars.
	// To handle this, we expand the size_hint by 1 when w=8,
	// and set the 33rd digit to the carry value.
	if w == 8 {
		digits[digitsCount] = int8(carry)
		digitsCount++
	} else {
		digits[digitsCount-1] += int8(carry << w)
	}

	return digits, digitsCount
}
