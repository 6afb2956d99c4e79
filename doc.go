// Package edwards25519 implements group logic for the twisted Edwards curve
//
//	-x^2 + y^2 = 1 + -(121665/121666)*x^2*y^2
//
// over GF(2^255-19), better known as the Edwards form of Curve25519 and the
// curve used by the Ed25519 signature scheme.
//
// The package provides constant-time and variable-time scalar multiplication
// and multi-scalar multiplication. Multi-scalar multiplication selects
// between Straus's method for small batches and Pippenger's bucket method
// for large ones. All operations are pure: independent calls share nothing
// but read-only curve constants and are safe to run concurrently.
package edwards25519
