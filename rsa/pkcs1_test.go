package rsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonsec/cryptonum/bignum"
	"github.com/halcyonsec/cryptonum/der"
)

func TestPublicKeyDERRoundTrip(t *testing.T) {
	priv := testKey(t)

	enc := MarshalPKCS1PublicKey(&priv.PublicKey)
	pub, err := ParsePKCS1PublicKey(enc)
	require.NoError(t, err)

	assert.True(t, pub.N.Equal(priv.N))
	assert.True(t, pub.E.Equal(priv.E))
	assert.Equal(t, enc, MarshalPKCS1PublicKey(pub), "re-marshal must be byte-identical")
}

func TestPrivateKeyDERRoundTrip(t *testing.T) {
	priv := testKey(t)

	enc, err := MarshalPKCS1PrivateKey(priv)
	require.NoError(t, err)

	parsed, err := ParsePKCS1PrivateKey(enc)
	require.NoError(t, err)
	assert.True(t, parsed.N.Equal(priv.N))
	assert.True(t, parsed.D.Equal(priv.D))
	assert.True(t, parsed.P.Equal(priv.P))
	assert.True(t, parsed.Q.Equal(priv.Q))

	enc2, err := MarshalPKCS1PrivateKey(parsed)
	require.NoError(t, err)
	assert.Equal(t, enc, enc2)
}

func TestMarshalPrivateRequiresPrivateMaterial(t *testing.T) {
	priv := testKey(t)
	pubOnly := &PrivateKey{PublicKey: priv.PublicKey}

	_, err := MarshalPKCS1PrivateKey(pubOnly)
	assert.ErrorIs(t, err, ErrMissingPrivateKey)
}

// mutateField re-encodes the private key with one INTEGER field replaced.
func mutateField(t *testing.T, enc []byte, index int, v *bignum.Nat) []byte {
	t.Helper()
	root, err := der.Decode(enc)
	require.NoError(t, err)
	root.Children[index] = natNode(v)
	return root.Encode()
}

func TestParsePrivateKeyCrossChecksFields(t *testing.T) {
	priv := testKey(t)
	enc, err := MarshalPKCS1PrivateKey(priv)
	require.NoError(t, err)

	one := bignum.NatFromUint64(1)
	// Index 0 is the version; 1..8 are n, e, d, p, q, dP, dQ, qInv.
	for idx := 1; idx <= 8; idx++ {
		bad := mutateField(t, enc, idx, priv.N.Add(bignum.NatFromUint64(uint64(idx))).Add(one))
		_, err := ParsePKCS1PrivateKey(bad)
		assert.ErrorIs(t, err, ErrKeyMismatch, "field %d accepted despite mismatch", idx)
	}
}

func TestParsePrivateKeyUnsupportedVersion(t *testing.T) {
	priv := testKey(t)
	enc, err := MarshalPKCS1PrivateKey(priv)
	require.NoError(t, err)

	bad := mutateField(t, enc, 0, bignum.NatFromUint64(1))
	_, err = ParsePKCS1PrivateKey(bad)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestParseRejectsMalformedStructures(t *testing.T) {
	cases := map[string][]byte{
		"not a sequence":  der.Int([]byte{0x01}).Encode(),
		"too few fields":  der.Seq(der.Int([]byte{0x00})).Encode(),
		"wrong leaf kind": der.Seq(der.OctStr([]byte{1}), der.Int([]byte{3})).Encode(),
		"empty integer":   der.Seq(der.Int(nil), der.Int([]byte{3})).Encode(),
		"negative n":      der.Seq(der.Int([]byte{0x80}), der.Int([]byte{3})).Encode(),
	}
	for name, enc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePKCS1PublicKey(enc)
			assert.ErrorIs(t, err, ErrInvalidKeyEncoding)
		})
	}

	_, err := ParsePKCS1PublicKey([]byte{0x30, 0x05, 0x02})
	assert.Error(t, err, "truncated DER must fail")
}

func TestNatNodeSignednessPadding(t *testing.T) {
	// 0x80 has its top bit set; the DER INTEGER gains a leading zero so it
	// stays positive.
	n := natNode(bignum.NatFromUint64(0x80))
	assert.Equal(t, []byte{0x00, 0x80}, n.Value)

	got, err := natFromNode(n)
	require.NoError(t, err)
	assert.True(t, got.Equal(bignum.NatFromUint64(0x80)))

	// Zero encodes as a single zero octet.
	assert.Equal(t, []byte{0x00}, natNode(bignum.NatFromUint64(0)).Value)
}
