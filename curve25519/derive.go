package curve25519

import "golang.org/x/crypto/sha3"

// DeriveScalar hashes data with Keccak-256 and reduces the digest into k,
// the CryptoNote hash_to_scalar construction.
func DeriveScalar(k *Scalar, data ...[]byte) *Scalar {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		_, _ = h.Write(b)
	}

	var buf [PrivateKeySize]byte
	h.Sum(buf[:0])
	BytesToScalar32(k, buf)
	return k
}

// DeriveScalarWide hashes data with Keccak-512 and reduces the 64-byte
// digest into k. The wide reduction keeps the output distribution within
// 2^-128 of uniform.
func DeriveScalarWide(k *Scalar, data ...[]byte) *Scalar {
	h := sha3.NewLegacyKeccak512()
	for _, b := range data {
		_, _ = h.Write(b)
	}

	var buf [64]byte
	h.Sum(buf[:0])
	BytesToScalar64(k, buf)
	return k
}
