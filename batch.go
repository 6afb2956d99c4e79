package edwards25519

import "git.gammaspectra.live/P2Pool/edwards25519/field"

// BatchBytes encodes each point into the matching entry of out, sharing a
// single field inversion across the whole batch. Both slices must have the
// same length.
func BatchBytes(points []*Point, out [][32]byte) {
	if len(points) != len(out) {
		panic("edwards25519: called BatchBytes with different size inputs")
	}
	checkInitialized(points...)

	zInvs := make([]field.Element, len(points))
	ptrs := make([]*field.Element, len(points))
	for i, p := range points {
		zInvs[i].Set(&p.z)
		ptrs[i] = &zInvs[i]
	}
	field.BatchInvert(ptrs...)

	var x, y field.Element
	for i, p := range points {
		x.Multiply(&p.x, &zInvs[i])
		y.Multiply(&p.y, &zInvs[i])

		copy(out[i][:], y.Bytes())
		out[i][31] |= byte(x.IsNegative() << 7)
	}
}

// BatchBytesMontgomery encodes the Montgomery u-coordinate of each point
// into the matching entry of out, sharing a single field inversion across
// the whole batch. Identity points encode as 32 zero bytes. Both slices must
// have the same length.
func BatchBytesMontgomery(points []*Point, out [][32]byte) {
	if len(points) != len(out) {
		panic("edwards25519: called BatchBytesMontgomery with different size inputs")
	}
	checkInitialized(points...)

	// Projectively, u = (1 + y) / (1 - y) = (Z + Y) / (Z - Y). For the
	// identity Z - Y is zero, BatchInvert leaves it zero, and the product
	// below encodes the expected all-zero bytes.
	denoms := make([]field.Element, len(points))
	ptrs := make([]*field.Element, len(points))
	for i, p := range points {
		denoms[i].Subtract(&p.z, &p.y)
		ptrs[i] = &denoms[i]
	}
	field.BatchInvert(ptrs...)

	var u, num field.Element
	for i, p := range points {
		num.Add(&p.z, &p.y)
		u.Multiply(&num, &denoms[i])
		copy(out[i][:], u.Bytes())
	}
}
