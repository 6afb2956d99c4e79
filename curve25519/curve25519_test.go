package curve25519

import (
	"crypto/sha512"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

var bigOrder = func() *big.Int {
	order, _ := new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
	return order
}()

func bigFromLE(buf []byte) *big.Int {
	be := make([]byte, len(buf))
	for i := range buf {
		be[len(buf)-1-i] = buf[i]
	}
	return new(big.Int).SetBytes(be)
}

func mustBytes32(tb testing.TB, s string) (out [32]byte) {
	tb.Helper()
	buf, err := hex.DecodeString(s)
	if err != nil || len(buf) != 32 {
		tb.Fatalf("bad test vector %q", s)
	}
	copy(out[:], buf)
	return out
}

const generatorHex = "5866666666666666666666666666666666666666666666666666666666666666"

func TestScalarReduce32(t *testing.T) {
	seed := []byte("sc_reduce32")
	for i := 0; i < 32; i++ {
		sum := sha512.Sum512(seed)
		seed = sum[:]

		var buf PrivateKeyBytes
		copy(buf[:], sum[:32])
		expected := new(big.Int).Mod(bigFromLE(buf[:]), bigOrder)

		ScalarReduce32(&buf)
		require.Zero(t, bigFromLE(buf[:]).Cmp(expected), "reduction mismatch at %d", i)
		require.True(t, ScalarIsReduced32(buf))
	}

	// all-ones input
	var ones PrivateKeyBytes
	for i := range ones {
		ones[i] = 0xff
	}
	expected := new(big.Int).Mod(bigFromLE(ones[:]), bigOrder)
	ScalarReduce32(&ones)
	require.Zero(t, bigFromLE(ones[:]).Cmp(expected))
}

func TestScalarBounds(t *testing.T) {
	assert.True(t, ScalarIsReduced32(PrivateKeyBytes{}))
	assert.True(t, ScalarIsLimit32(PrivateKeyBytes{1}))

	lMinusOne := PrivateKeyBytes(basepointOrder)
	lMinusOne[0]--
	assert.True(t, ScalarIsReduced32(lMinusOne))
	assert.False(t, ScalarIsReduced32(PrivateKeyBytes(basepointOrder)))

	limitMinusOne := PrivateKeyBytes(limit)
	limitMinusOne[0]--
	assert.True(t, ScalarIsLimit32(limitMinusOne))
	assert.False(t, ScalarIsLimit32(PrivateKeyBytes(limit)))
}

func TestDecodeCompressedPoint(t *testing.T) {
	gen := mustBytes32(t, generatorHex)

	k := DecodeCompressedPoint(new(ConstantTimePublicKey), PublicKeyBytes(gen))
	require.NotNil(t, k)
	assert.Equal(t, generatorHex, k.String())

	for name, raw := range map[string]string{
		"non-canonical y": "edffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
		"not on curve":    "0200000000000000000000000000000000000000000000000000000000000000",
		"negative zero":   "0100000000000000000000000000000000000000000000000000000000000080",
	} {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, DecodeCompressedPoint(new(ConstantTimePublicKey), mustBytes32(t, raw)))
		})
	}

	assert.Nil(t, DecodeCompressedPoint[ConstantTimeOperations](nil, PublicKeyBytes(gen)))
}

func TestDecodeMontgomeryPoint(t *testing.T) {
	// u = 9 is the Curve25519 basepoint and maps to the Ed25519 generator
	u := elementFromUint64(9)
	k := DecodeMontgomeryPoint(new(VarTimePublicKey), u, 0)
	require.NotNil(t, k)
	assert.Equal(t, generatorHex, k.String())

	// round trip back through the birational map
	m := k.Montgomery()
	assert.Equal(t, "0900000000000000000000000000000000000000000000000000000000000000", m.String())

	assert.Nil(t, DecodeMontgomeryPoint(new(VarTimePublicKey), feNegativeOne, 0))
	assert.Nil(t, DecodeMontgomeryPoint[VarTimeOperations](new(VarTimePublicKey), nil, 0))
}

func TestKeyCodecs(t *testing.T) {
	type wire struct {
		Pub  PublicKeyBytes   `json:"pub"`
		Priv PrivateKeyBytes  `json:"priv"`
		Raw  UnreducedScalar  `json:"raw"`
		All  []PublicKeyBytes `json:"all"`
	}

	in := wire{
		Pub:  PublicKeyBytes(mustBytes32(t, generatorHex)),
		Priv: PrivateKeyBytes{7},
		Raw:  UnreducedScalar{0xff, 1, 2, 3},
		All:  []PublicKeyBytes{ZeroPublicKeyBytes, PublicKeyBytes(mustBytes32(t, generatorHex))},
	}

	buf, err := json.Marshal(&in)
	require.NoError(t, err)
	assert.Contains(t, string(buf), `"pub":"`+generatorHex+`"`)

	var out wire
	require.NoError(t, json.Unmarshal(buf, &out))
	assert.Equal(t, in, out)

	t.Run("SQL", func(t *testing.T) {
		v, err := in.Pub.Value()
		require.NoError(t, err)

		var back PublicKeyBytes
		require.NoError(t, back.Scan(v))
		assert.Equal(t, in.Pub, back)

		// zero keys store as NULL
		v, err = ZeroPublicKeyBytes.Value()
		require.NoError(t, err)
		assert.Nil(t, v)

		assert.Error(t, back.Scan("not bytes"))
		assert.Error(t, back.Scan([]byte{1, 2, 3}))

		v, err = in.Priv.Value()
		require.NoError(t, err)

		var priv PrivateKeyBytes
		require.NoError(t, priv.Scan(v))
		assert.Equal(t, in.Priv, priv)

		v, err = ZeroPrivateKeyBytes.Value()
		require.NoError(t, err)
		assert.Nil(t, v)

		assert.Error(t, priv.Scan(42))
		assert.Error(t, priv.Scan([]byte{1, 2, 3}))
	})
}

func TestPrivateKeyScalar(t *testing.T) {
	priv := PrivateKeyBytes{7}
	s := priv.Scalar()
	require.NotNil(t, s)
	assert.Zero(t, bigFromLE(s.Bytes()).Cmp(big.NewInt(7)))

	// the group order itself is not a canonical encoding
	order := PrivateKeyBytes(mustBytes32(t, "edd3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010"))
	assert.Nil(t, order.Scalar())
}

func TestUnreducedScalar(t *testing.T) {
	// high bit clear: straight sc_reduce32
	low := UnreducedScalar{5}
	var got Scalar
	low.ScalarVarTime(&got)
	assert.Zero(t, bigFromLE(got.Bytes()).Cmp(big.NewInt(5)))

	// high bit set: evaluated through the width-5 NAF, still the value mod l
	for _, raw := range []UnreducedScalar{
		{0: 0, 31: 0x80}, // 2^255
		{0: 5, 31: 0x80}, // 2^255 + 5
		{0: 0xee, 30: 3, 31: 0x90},
	} {
		expected := new(big.Int).Mod(bigFromLE(raw[:]), bigOrder)
		raw.ScalarVarTime(&got)
		assert.Zero(t, bigFromLE(got.Bytes()).Cmp(expected), "mismatch for %s", raw.String())
	}
}

func TestDeriveScalar(t *testing.T) {
	data := []byte("derive test input")

	var k Scalar
	DeriveScalar(&k, data)

	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	expected := new(big.Int).Mod(bigFromLE(h.Sum(nil)), bigOrder)
	assert.Zero(t, bigFromLE(k.Bytes()).Cmp(expected))

	var wide Scalar
	DeriveScalarWide(&wide, data)

	hw := sha3.NewLegacyKeccak512()
	hw.Write(data)
	expectedWide := new(big.Int).Mod(bigFromLE(hw.Sum(nil)), bigOrder)
	assert.Zero(t, bigFromLE(wide.Bytes()).Cmp(expectedWide))

	// multi-chunk writes hash the concatenation
	var k2 Scalar
	DeriveScalar(&k2, data[:6], data[6:])
	assert.Equal(t, 1, k.Equal(&k2))
}

func TestBatchBytesWrapper(t *testing.T) {
	pubs := make([]*VarTimePublicKey, 8)
	prev := DecodeCompressedPoint(new(VarTimePublicKey), mustBytes32(t, generatorHex))
	for i := range pubs {
		pubs[i] = prev
		prev = new(VarTimePublicKey).Add(prev, prev)
	}

	out := make([]PublicKeyBytes, len(pubs))
	BatchBytes(pubs, out)
	for i, p := range pubs {
		assert.Equal(t, p.Bytes(), out[i], "batch encoding %d", i)
	}

	mOut := make([]MontgomeryPoint, len(pubs))
	BatchMontgomeryBytes(pubs, mOut)
	for i, p := range pubs {
		assert.Equal(t, p.Montgomery(), mOut[i], "batch Montgomery encoding %d", i)
	}
}
