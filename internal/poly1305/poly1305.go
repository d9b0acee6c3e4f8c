// Package poly1305 implements the Poly1305 one-time authenticator
// (RFC 8439, section 2.5) for the AEAD construction. The key must be used
// for a single message only.
//
// The arithmetic runs on math/big rather than the bignum engine so the
// authenticator stays independent of the arbitrary-precision core.
package poly1305

import (
	"crypto/subtle"
	"math/big"
)

// TagSize is the authenticator output length in bytes.
const TagSize = 16

// KeySize is the one-time key length in bytes.
const KeySize = 32

// prime is 2^130 - 5.
var prime, _ = new(big.Int).SetString("3fffffffffffffffffffffffffffffffb", 16)

// clamp masks the r half of the key as required by the algorithm.
var clamp, _ = new(big.Int).SetString("0ffffffc0ffffffc0ffffffc0fffffff", 16)

var mask128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Sum computes the authenticator of msg under key and writes it to out.
func Sum(out *[TagSize]byte, msg []byte, key *[KeySize]byte) {
	r := leToInt(key[:16])
	r.And(r, clamp)
	s := leToInt(key[16:])

	h := new(big.Int)
	n := new(big.Int)
	for len(msg) > 0 {
		chunk := msg
		if len(chunk) > 16 {
			chunk = chunk[:16]
		}
		msg = msg[len(chunk):]

		// Each chunk becomes the little-endian value with one extra high
		// bit appended, so short trailing chunks are unambiguous.
		leToIntInto(n, chunk)
		n.SetBit(n, len(chunk)*8, 1)

		h.Add(h, n)
		h.Mul(h, r)
		h.Mod(h, prime)
	}

	h.Add(h, s)
	h.And(h, mask128)

	var be [TagSize]byte
	h.FillBytes(be[:])
	for i := 0; i < TagSize; i++ {
		out[i] = be[TagSize-1-i]
	}
}

// Verify reports whether mac is the authenticator of msg under key, using
// a full-length constant-time comparison.
func Verify(mac *[TagSize]byte, msg []byte, key *[KeySize]byte) bool {
	var want [TagSize]byte
	Sum(&want, msg, key)
	return subtle.ConstantTimeCompare(mac[:], want[:]) == 1
}

func leToInt(b []byte) *big.Int {
	return leToIntInto(new(big.Int), b)
}

func leToIntInto(dst *big.Int, b []byte) *big.Int {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	return dst.SetBytes(be)
}
