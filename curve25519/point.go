package curve25519

import (
	"bytes"
	"encoding/binary"

	"git.gammaspectra.live/P2Pool/edwards25519"
	"git.gammaspectra.live/P2Pool/edwards25519/field"
)

type Point = edwards25519.Point

// DecodeCompressedPoint decompresses a canonically-encoded Ed25519 point.
//
// The underlying SetBytes accepts the single non-canonical encoding of the
// negative of the identity, where y is reduced but the sign bit of a zero x
// is set. This function additionally bans it by requiring the decoded point
// to re-encode to the input bytes, so each of the 8*l curve points has
// exactly one accepted encoding.
//
// This does not check that the point is in the prime-order subgroup.
// Torsioned points have a canonical encoding too; use IsTorsionFree to
// verify subgroup membership.
//
// Constant time.
func DecodeCompressedPoint[T PointOperations, S ~[PublicKeySize]byte](r *PublicKey[T], buf S) *PublicKey[T] {
	if r == nil {
		return nil
	}

	_, err := r.p.SetBytes(buf[:])
	if err != nil {
		return nil
	}

	if !bytes.Equal(r.p.Bytes(), buf[:]) {
		return nil
	}
	return r
}

// DecodeMontgomeryPoint lifts a Montgomery u-coordinate and a sign bit to an
// Ed25519 point. Returns nil for u = -1, which maps to the excluded point at
// infinity.
//
// Constant time.
func DecodeMontgomeryPoint[T PointOperations](r *PublicKey[T], u *field.Element, sign int) *PublicKey[T] {
	if u == nil || u.Equal(feNegativeOne) == 1 {
		return nil
	}

	var tmp1, tmp2 field.Element

	// The birational map is y = (u-1)/(u+1).
	var y field.Element
	y.Multiply(
		tmp1.Subtract(u, feOne),
		tmp2.Invert(tmp2.Add(u, feOne)),
	)

	var yBytes [32]byte
	copy(yBytes[:], y.Bytes())
	yBytes[31] ^= byte(sign << 7)

	return DecodeCompressedPoint(r, yBytes)
}

func elementFromUint64(x uint64) *field.Element {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:], x)

	e, err := new(field.Element).SetBytes(b[:])
	if err != nil {
		panic(err)
	}
	return e
}

var (
	feOne         = new(field.Element).One()
	feNegativeOne = new(field.Element).Negate(feOne)
)
