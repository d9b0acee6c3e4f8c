package rsa

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"
	"hash"

	"github.com/halcyonsec/cryptonum/bignum"
	"github.com/halcyonsec/cryptonum/der"
)

// Scheme pairs a hash algorithm with its DigestInfo object identifier for
// EMSA-PKCS1-v1.5 signatures.
type Scheme int

const (
	SchemeSHA1 Scheme = iota + 1
	SchemeSHA256
	SchemeSHA384
	SchemeSHA512
)

var schemeData = map[Scheme]struct {
	name string
	size int
	oid  []byte
	hash func() hash.Hash
}{
	SchemeSHA1:   {"SHA-1", sha1.Size, []byte{0x2b, 0x0e, 0x03, 0x02, 0x1a}, sha1.New},
	SchemeSHA256: {"SHA-256", sha256.Size, []byte{0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01}, sha256.New},
	SchemeSHA384: {"SHA-384", sha512.Size384, []byte{0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x02}, sha512.New384},
	SchemeSHA512: {"SHA-512", sha512.Size, []byte{0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x03}, sha512.New},
}

func (s Scheme) String() string {
	if d, ok := schemeData[s]; ok {
		return d.name
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// Size returns the scheme's digest length in bytes.
func (s Scheme) Size() int { return schemeData[s].size }

func (s Scheme) valid() bool {
	_, ok := schemeData[s]
	return ok
}

func (s Scheme) digest(msg []byte) []byte {
	h := schemeData[s].hash()
	h.Write(msg)
	return h.Sum(nil)
}

// digestInfo wraps a digest in the ASN.1 DigestInfo structure:
// SEQUENCE { SEQUENCE { OID, NULL }, OCTET STRING (digest) }.
func (s Scheme) digestInfo(digest []byte) []byte {
	return der.Seq(
		der.Seq(der.OID(schemeData[s].oid), der.Null()),
		der.OctStr(digest),
	).Encode()
}

// emsaEncode builds the EMSA-PKCS1-v1.5 block:
// 0x00 0x01 <0xFF padding> 0x00 <DigestInfo>.
func (s Scheme) emsaEncode(digest []byte, k int) ([]byte, error) {
	info := s.digestInfo(digest)
	if k < len(info)+11 {
		return nil, ErrMessageTooLong
	}
	em := make([]byte, k)
	em[1] = 0x01
	for i := 2; i < k-len(info)-1; i++ {
		em[i] = 0xff
	}
	copy(em[k-len(info):], info)
	return em, nil
}

// Sign hashes msg with the scheme's hash and signs the digest.
func Sign(priv *PrivateKey, scheme Scheme, msg []byte) ([]byte, error) {
	if !scheme.valid() {
		return nil, fmt.Errorf("rsa: unknown signature scheme %d", int(scheme))
	}
	return SignDigest(priv, scheme, scheme.digest(msg))
}

// SignDigest signs a pre-hashed digest: the EMSA-PKCS1-v1.5 block is
// raised to d mod n and left-zero-padded to the key's byte length.
func SignDigest(priv *PrivateKey, scheme Scheme, digest []byte) ([]byte, error) {
	if priv == nil || priv.D == nil {
		return nil, ErrMissingPrivateKey
	}
	if !scheme.valid() {
		return nil, fmt.Errorf("rsa: unknown signature scheme %d", int(scheme))
	}
	if len(digest) != scheme.Size() {
		return nil, ErrDigestLength
	}
	k := priv.Size()
	em, err := scheme.emsaEncode(digest, k)
	if err != nil {
		return nil, err
	}
	m := bignum.NatFromBytes(em)
	sig := m.ModExp(priv.D, priv.N)
	return sig.FillBytes(make([]byte, k)), nil
}

// Verify hashes msg and verifies the signature against it.
func Verify(pub *PublicKey, scheme Scheme, msg, sig []byte) bool {
	if !scheme.valid() {
		return false
	}
	return VerifyDigest(pub, scheme, scheme.digest(msg), sig)
}

// VerifyDigest recomputes the expected EMSA-PKCS1-v1.5 block and compares
// it against sig^e mod n. A signature whose length does not match the key
// size is rejected before any modular exponentiation. Mismatch is a normal
// false result, not an error.
func VerifyDigest(pub *PublicKey, scheme Scheme, digest, sig []byte) bool {
	if !scheme.valid() || len(digest) != scheme.Size() {
		return false
	}
	k := pub.Size()
	if len(sig) != k {
		return false
	}
	s := bignum.NatFromBytes(sig)
	if s.Cmp(pub.N) >= 0 {
		return false
	}
	want, err := scheme.emsaEncode(digest, k)
	if err != nil {
		return false
	}
	got := s.ModExp(pub.E, pub.N).FillBytes(make([]byte, k))
	return subtle.ConstantTimeCompare(got, want) == 1
}
