package curve25519

import (
	"database/sql/driver"
	"errors"

	fasthex "github.com/tmthrgd/go-hex"
)

const PrivateKeySize = 32

var ZeroPrivateKeyBytes = PrivateKeyBytes{}

// PrivateKeyBytes is the canonical little-endian encoding of a scalar. It is
// the storage and wire form; use Scalar to get an arithmetic value.
type PrivateKeyBytes [PrivateKeySize]byte

func (k *PrivateKeyBytes) Slice() []byte {
	return (*k)[:]
}

// Scalar decodes k into a Scalar. Returns nil if k is not reduced modulo the
// group order; see UnreducedScalar for legacy encodings that may not be.
func (k *PrivateKeyBytes) Scalar() *Scalar {
	secret, _ := new(Scalar).SetCanonicalBytes((*k)[:])
	return secret
}

func (k *PrivateKeyBytes) String() string {
	return fasthex.EncodeToString(k.Slice())
}

// Scan implements sql.Scanner. NULL and empty values leave k unchanged.
func (k *PrivateKeyBytes) Scan(src any) error {
	switch buf := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(buf) == 0 {
			return nil
		}
		if len(buf) != PrivateKeySize {
			return errors.New("invalid key size")
		}
		copy((*k)[:], buf)
		return nil
	default:
		return errors.New("invalid type")
	}
}

// Value implements driver.Valuer. Zero keys store as NULL.
func (k *PrivateKeyBytes) Value() (driver.Value, error) {
	if *k == ZeroPrivateKeyBytes {
		return nil, nil
	}
	return []byte((*k)[:]), nil
}

func (k *PrivateKeyBytes) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || len(b) == 2 {
		return nil
	}

	if len(b) != PrivateKeySize*2+2 {
		return errors.New("wrong key size")
	}

	_, err := fasthex.Decode(k[:], b[1:len(b)-1])
	return err
}

func (k *PrivateKeyBytes) MarshalJSON() ([]byte, error) {
	var buf [PrivateKeySize*2 + 2]byte
	buf[0] = '"'
	buf[PrivateKeySize*2+1] = '"'
	fasthex.Encode(buf[1:], k[:])
	return buf[:], nil
}
