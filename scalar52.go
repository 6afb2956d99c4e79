package edwards25519

import (
	"encoding/binary"
	"math/big"

	"lukechampine.com/uint128"
)

// unpackedScalar is a scalar unpacked into five 52-bit limbs for arithmetic.
// Products of limbs are held in 128-bit accumulators, following the 64-bit
// serial backend of curve25519-dalek.
type unpackedScalar [5]uint64

const low52BitMask = (1 << 52) - 1

var (
	// scL holds the group order l in 52-bit limbs.
	scL unpackedScalar
	// scLFactor = -l^(-1) mod 2^52, the Montgomery reduction factor.
	scLFactor uint64
	// scR = 2^260 mod l and scRR = (2^260)^2 mod l, the Montgomery radix
	// and its square.
	scR, scRR unpackedScalar
)

// The Montgomery constants are a fixed function of l. Deriving them from the
// canonical order encoding at startup keeps a single source of truth; they
// are never written again.
//
//nolint:gochecknoinits
func init() {
	l := bigFromLittleEndian(scalarOrderBytes[:])
	scL = limbsFromBig(l)

	r52 := new(big.Int).Lsh(big.NewInt(1), 52)
	inv := new(big.Int).ModInverse(l, r52)
	scLFactor = new(big.Int).Sub(r52, inv).Uint64() & low52BitMask

	r := new(big.Int).Lsh(big.NewInt(1), 260)
	r.Mod(r, l)
	scR = limbsFromBig(r)

	rr := new(big.Int).Mul(r, r)
	rr.Mod(rr, l)
	scRR = limbsFromBig(rr)
}

func bigFromLittleEndian(x []byte) *big.Int {
	buf := make([]byte, len(x))
	for i := range x {
		buf[len(x)-1-i] = x[i]
	}
	return new(big.Int).SetBytes(buf)
}

func limbsFromBig(x *big.Int) (s unpackedScalar) {
	v := new(big.Int).Set(x)
	mask := big.NewInt(low52BitMask)
	for i := range s {
		s[i] = new(big.Int).And(v, mask).Uint64()
		v.Rsh(v, 52)
	}
	return s
}

// fromBytes unpacks a 32-byte little-endian integer, not necessarily
// reduced, into limb form.
func (s *unpackedScalar) fromBytes(x *[32]byte) *unpackedScalar {
	var words [4]uint64
	for i := 0; i < 4; i++ {
		words[i] = binary.LittleEndian.Uint64(x[i*8:])
	}

	s[0] = words[0] & low52BitMask
	s[1] = ((words[0] >> 52) | (words[1] << 12)) & low52BitMask
	s[2] = ((words[1] >> 40) | (words[2] << 24)) & low52BitMask
	s[3] = ((words[2] >> 28) | (words[3] << 36)) & low52BitMask
	s[4] = words[3] >> 16

	return s
}

// fromBytesWide sets s to the 64-byte little-endian integer x reduced
// modulo l. The value is split as x = lo + hi*2^260 and each half is
// carried into the Montgomery domain and back, which performs the
// reduction with two multiplications.
func (s *unpackedScalar) fromBytesWide(x *[64]byte) *unpackedScalar {
	var words [8]uint64
	for i := 0; i < 8; i++ {
		words[i] = binary.LittleEndian.Uint64(x[i*8:])
	}

	var lo, hi unpackedScalar
	lo[0] = words[0] & low52BitMask
	lo[1] = ((words[0] >> 52) | (words[1] << 12)) & low52BitMask
	lo[2] = ((words[1] >> 40) | (words[2] << 24)) & low52BitMask
	lo[3] = ((words[2] >> 28) | (words[3] << 36)) & low52BitMask
	lo[4] = ((words[3] >> 16) | (words[4] << 48)) & low52BitMask
	hi[0] = (words[4] >> 4) & low52BitMask
	hi[1] = ((words[4] >> 56) | (words[5] << 8)) & low52BitMask
	hi[2] = ((words[5] >> 44) | (words[6] << 20)) & low52BitMask
	hi[3] = ((words[6] >> 32) | (words[7] << 32)) & low52BitMask
	hi[4] = words[7] >> 20

	lo.montgomeryMul(&lo, &scR)  // (lo * R) / R = lo
	hi.montgomeryMul(&hi, &scRR) // (hi * R^2) / R = hi * R = hi * 2^260

	return s.add(&lo, &hi)
}

// toBytes packs the reduced limbs of s into their canonical 32-byte
// little-endian encoding.
func (s *unpackedScalar) toBytes(out *[32]byte) {
	binary.LittleEndian.PutUint64(out[0:], s[0]|s[1]<<52)
	binary.LittleEndian.PutUint64(out[8:], s[1]>>12|s[2]<<40)
	binary.LittleEndian.PutUint64(out[16:], s[2]>>24|s[3]<<28)
	binary.LittleEndian.PutUint64(out[24:], s[3]>>36|s[4]<<16)
}

// add sets s = a + b mod l, and returns s.
func (s *unpackedScalar) add(a, b *unpackedScalar) *unpackedScalar {
	var sum unpackedScalar
	carry := uint64(0)
	for i := 0; i < 5; i++ {
		carry = a[i] + b[i] + (carry >> 52)
		sum[i] = carry & low52BitMask
	}

	// a and b are reduced, so the sum is below 2l and one conditional
	// subtraction brings it back into range.
	return s.sub(&sum, &scL)
}

// sub sets s = a - b mod l, and returns s.
func (s *unpackedScalar) sub(a, b *unpackedScalar) *unpackedScalar {
	borrow := uint64(0)
	for i := 0; i < 5; i++ {
		borrow = a[i] - (b[i] + (borrow >> 63))
		s[i] = borrow & low52BitMask
	}

	// Conditionally add l if the difference underflowed, without branching
	// on the sign.
	underflowMask := ((borrow >> 63) ^ 1) - 1
	carry := uint64(0)
	for i := 0; i < 5; i++ {
		carry = (carry >> 52) + s[i] + (scL[i] & underflowMask)
		s[i] = carry & low52BitMask
	}

	return s
}

// m returns the 104-bit product of two 52-bit limbs.
func m(x, y uint64) uint128.Uint128 {
	return uint128.From64(x).Mul64(y)
}

// mulInternal computes the full 9-limb schoolbook product of a and b.
// Column sums stay well below 2^128: each is at most five 104-bit terms.
func mulInternal(a, b *unpackedScalar) [9]uint128.Uint128 {
	var z [9]uint128.Uint128

	z[0] = m(a[0], b[0])
	z[1] = m(a[0], b[1]).Add(m(a[1], b[0]))
	z[2] = m(a[0], b[2]).Add(m(a[1], b[1])).Add(m(a[2], b[0]))
	z[3] = m(a[0], b[3]).Add(m(a[1], b[2])).Add(m(a[2], b[1])).Add(m(a[3], b[0]))
	z[4] = m(a[0], b[4]).Add(m(a[1], b[3])).Add(m(a[2], b[2])).Add(m(a[3], b[1])).Add(m(a[4], b[0]))
	z[5] = m(a[1], b[4]).Add(m(a[2], b[3])).Add(m(a[3], b[2])).Add(m(a[4], b[1]))
	z[6] = m(a[2], b[4]).Add(m(a[3], b[3])).Add(m(a[4], b[2]))
	z[7] = m(a[3], b[4]).Add(m(a[4], b[3]))
	z[8] = m(a[4], b[4])

	return z
}

// montgomeryReduce sets s = (limbs / R) mod l, where R = 2^260, consuming
// the 9-limb product of two unpacked scalars.
func (s *unpackedScalar) montgomeryReduce(limbs *[9]uint128.Uint128) *unpackedScalar {
	// Interleaved Montgomery reduction: in the first phase each column i
	// picks the factor n[i] that zeroes the low 52 bits, in the second the
	// surviving columns shift down by R.
	var n [5]uint64
	var carry uint128.Uint128

	sum := limbs[0]
	for i := 0; i < 5; i++ {
		if i > 0 {
			sum = carry.Add(limbs[i])
			for j := 1; j <= i && j < 5; j++ {
				sum = sum.Add(m(n[i-j], scL[j]))
			}
		}
		n[i] = (sum.Lo * scLFactor) & low52BitMask
		carry = sum.Add(m(n[i], scL[0])).Rsh(52)
	}

	var r unpackedScalar
	for i := 5; i < 9; i++ {
		sum = carry.Add(limbs[i])
		for j := i - 4; j <= 4; j++ {
			sum = sum.Add(m(n[i-j], scL[j]))
		}
		r[i-5] = sum.Lo & low52BitMask
		carry = sum.Rsh(52)
	}
	r[4] = carry.Lo

	// The result may still be >= l; one conditional subtraction fixes it.
	return s.sub(&r, &scL)
}

// montgomeryMul sets s = (a * b) / R mod l, and returns s.
func (s *unpackedScalar) montgomeryMul(a, b *unpackedScalar) *unpackedScalar {
	limbs := mulInternal(a, b)
	return s.montgomeryReduce(&limbs)
}

// mul sets s = a * b mod l, and returns s.
func (s *unpackedScalar) mul(a, b *unpackedScalar) *unpackedScalar {
	// ab/R, then times RR/R, cancels the Montgomery factor exactly.
	limbs := mulInternal(a, b)
	ab := new(unpackedScalar).montgomeryReduce(&limbs)
	return s.montgomeryMul(ab, &scRR)
}
