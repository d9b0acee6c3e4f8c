package rsa

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	priv := testKey(t)
	msg := []byte("the quick brown fox")

	for _, scheme := range []Scheme{SchemeSHA1, SchemeSHA256, SchemeSHA384, SchemeSHA512} {
		t.Run(scheme.String(), func(t *testing.T) {
			sig, err := Sign(priv, scheme, msg)
			require.NoError(t, err)
			assert.Len(t, sig, priv.Size())

			assert.True(t, Verify(&priv.PublicKey, scheme, msg, sig))
		})
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	priv := testKey(t)
	msg := []byte("payload under signature")

	sig, err := Sign(priv, SchemeSHA256, msg)
	require.NoError(t, err)

	// Flip one bit in the message.
	tampered := append([]byte(nil), msg...)
	tampered[3] ^= 0x01
	assert.False(t, Verify(&priv.PublicKey, SchemeSHA256, tampered, sig))

	// Flip one bit in the signature.
	badSig := append([]byte(nil), sig...)
	badSig[len(badSig)/2] ^= 0x80
	assert.False(t, Verify(&priv.PublicKey, SchemeSHA256, msg, badSig))

	// Wrong scheme.
	assert.False(t, Verify(&priv.PublicKey, SchemeSHA512, msg, sig))
}

func TestVerifyRejectsWrongLengthBeforeExponentiation(t *testing.T) {
	priv := testKey(t)
	msg := []byte("msg")

	sig, err := Sign(priv, SchemeSHA256, msg)
	require.NoError(t, err)

	assert.False(t, Verify(&priv.PublicKey, SchemeSHA256, msg, sig[:len(sig)-1]))
	assert.False(t, Verify(&priv.PublicKey, SchemeSHA256, msg, append(sig, 0x00)))
	assert.False(t, Verify(&priv.PublicKey, SchemeSHA256, msg, nil))
}

func TestSignDigest(t *testing.T) {
	priv := testKey(t)
	digest := sha256.Sum256([]byte("pre-hashed input"))

	sig, err := SignDigest(priv, SchemeSHA256, digest[:])
	require.NoError(t, err)
	assert.True(t, VerifyDigest(&priv.PublicKey, SchemeSHA256, digest[:], sig))

	// Signing and verifying must agree with the non-prehashed path.
	sig2, err := Sign(priv, SchemeSHA256, []byte("pre-hashed input"))
	require.NoError(t, err)
	assert.Equal(t, sig, sig2, "EMSA-PKCS1-v1.5 signatures are deterministic")
}

func TestSignDigestLengthMismatch(t *testing.T) {
	priv := testKey(t)

	_, err := SignDigest(priv, SchemeSHA256, make([]byte, 20))
	assert.ErrorIs(t, err, ErrDigestLength)

	assert.False(t, VerifyDigest(&priv.PublicKey, SchemeSHA256, make([]byte, 20), make([]byte, priv.Size())))
}

func TestSignRequiresPrivateKey(t *testing.T) {
	priv := testKey(t)
	pubOnly := &PrivateKey{PublicKey: priv.PublicKey}

	_, err := Sign(pubOnly, SchemeSHA256, []byte("x"))
	assert.ErrorIs(t, err, ErrMissingPrivateKey)
}

func TestUnknownScheme(t *testing.T) {
	priv := testKey(t)

	_, err := Sign(priv, Scheme(99), []byte("x"))
	assert.Error(t, err)
	assert.False(t, Verify(&priv.PublicKey, Scheme(99), []byte("x"), make([]byte, priv.Size())))
}

func TestDigestInfoEncoding(t *testing.T) {
	// The SHA-256 DigestInfo prefix is a fixed, well-known byte string.
	wantPrefix := []byte{
		0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
		0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20,
	}
	digest := sha256.Sum256([]byte("abc"))
	info := SchemeSHA256.digestInfo(digest[:])
	require.Len(t, info, len(wantPrefix)+sha256.Size)
	assert.Equal(t, wantPrefix, info[:len(wantPrefix)])
	assert.Equal(t, digest[:], info[len(wantPrefix):])
}
