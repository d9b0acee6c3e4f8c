package rsa

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/halcyonsec/cryptonum/bignum"
)

// PublicExponent is the fixed public exponent used by key generation.
const PublicExponent = 65537

// randReader is the random source used for key generation and padding.
// It defaults to nil (which uses crypto/rand) but can be overridden for
// testing.
var randReader io.Reader

func randSource() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// PublicKey holds the modulus and public exponent. Keys are immutable
// after construction.
type PublicKey struct {
	N *bignum.Nat
	E *bignum.Nat
}

// Size returns the modulus length in bytes; ciphertexts and signatures
// are exactly this long.
func (pub *PublicKey) Size() int { return (pub.N.BitLen() + 7) / 8 }

// PrivateKey holds the full private key material. D is the private
// exponent; P and Q are the prime factors of N.
type PrivateKey struct {
	PublicKey
	D *bignum.Nat
	P *bignum.Nat
	Q *bignum.Nat
}

// DP returns d mod (p-1), the first CRT reduced exponent.
func (priv *PrivateKey) DP() *bignum.Nat {
	return priv.D.Mod(priv.P.Sub(one()))
}

// DQ returns d mod (q-1), the second CRT reduced exponent.
func (priv *PrivateKey) DQ() *bignum.Nat {
	return priv.D.Mod(priv.Q.Sub(one()))
}

// QInv returns q^-1 mod p, the CRT coefficient.
func (priv *PrivateKey) QInv() (*bignum.Nat, error) {
	inv, ok := bignum.ModInverse(priv.Q, priv.P)
	if !ok {
		return nil, fmt.Errorf("%w: q is not invertible mod p", ErrKeyMismatch)
	}
	return inv, nil
}

func one() *bignum.Nat { return bignum.NatFromUint64(1) }

// GenerateKey creates a key with a modulus of roughly the given bit size:
// two random odd primes of half the width are drawn by rejection sampling,
// e is fixed to 65537 and d is its inverse mod (p-1)(q-1). Generation
// blocks until enough prime candidates have been tried; callers needing
// cancellation must wrap it externally.
func GenerateKey(bits int) (*PrivateKey, error) {
	if bits < 64 {
		return nil, fmt.Errorf("rsa: key size %d too small", bits)
	}
	p, err := randomPrime(bits / 2)
	if err != nil {
		return nil, err
	}
	q, err := randomPrime(bits / 2)
	if err != nil {
		return nil, err
	}
	for p.Equal(q) {
		if q, err = randomPrime(bits / 2); err != nil {
			return nil, err
		}
	}

	n := p.Mul(q)
	e := bignum.NatFromUint64(PublicExponent)
	phi := p.Sub(one()).Mul(q.Sub(one()))
	d, ok := bignum.ModInverse(e, phi)
	if !ok {
		return nil, fmt.Errorf("%w: e not coprime to phi(n)", ErrKeyMismatch)
	}
	return &PrivateKey{
		PublicKey: PublicKey{N: n, E: e},
		D:         d,
		P:         p,
		Q:         q,
	}, nil
}

// randomPrime draws odd candidates of exactly the given bit width until
// one passes the primality test.
func randomPrime(bits int) (*bignum.Nat, error) {
	for {
		cand, err := bignum.RandNatExact(bits)
		if err != nil {
			return nil, err
		}
		cand = cand.Or(one()) // force odd
		prime, err := bignum.IsPrime(cand, 0)
		if err != nil {
			return nil, err
		}
		if prime {
			return cand, nil
		}
	}
}

// NewPrivateKey builds a key from raw parameters and validates every one
// of them against the others: n against p*q, d against e^-1 mod phi, and
// the supplied CRT values against recomputed ones. Inconsistent input is
// rejected with ErrKeyMismatch rather than trusted.
func NewPrivateKey(n, e, d, p, q, dP, dQ, qInv *bignum.Nat) (*PrivateKey, error) {
	if !p.Mul(q).Equal(n) {
		return nil, fmt.Errorf("%w: n != p*q", ErrKeyMismatch)
	}
	phi := p.Sub(one()).Mul(q.Sub(one()))
	wantD, ok := bignum.ModInverse(e, phi)
	if !ok {
		return nil, fmt.Errorf("%w: e not coprime to phi(n)", ErrKeyMismatch)
	}
	if !wantD.Equal(d) {
		return nil, fmt.Errorf("%w: d is not the inverse of e", ErrKeyMismatch)
	}
	priv := &PrivateKey{
		PublicKey: PublicKey{N: n, E: e},
		D:         d,
		P:         p,
		Q:         q,
	}
	if !priv.DP().Equal(dP) {
		return nil, fmt.Errorf("%w: dP != d mod (p-1)", ErrKeyMismatch)
	}
	if !priv.DQ().Equal(dQ) {
		return nil, fmt.Errorf("%w: dQ != d mod (q-1)", ErrKeyMismatch)
	}
	wantQInv, err := priv.QInv()
	if err != nil {
		return nil, err
	}
	if !wantQInv.Equal(qInv) {
		return nil, fmt.Errorf("%w: qInv != q^-1 mod p", ErrKeyMismatch)
	}
	return priv, nil
}

// Encrypt computes c = m^e mod n after applying the padding capability.
// The ciphertext is always exactly pub.Size() bytes.
func Encrypt(pub *PublicKey, pad Padding, msg []byte) ([]byte, error) {
	k := pub.Size()
	em, err := pad.Pad(msg, k)
	if err != nil {
		return nil, err
	}
	m := bignum.NatFromBytes(em)
	if m.Cmp(pub.N) >= 0 {
		return nil, ErrMessageTooLong
	}
	c := m.ModExp(pub.E, pub.N)
	return c.FillBytes(make([]byte, k)), nil
}

// Decrypt computes m = c^d mod n and removes the padding. A key without a
// private exponent is a usage error reported as ErrMissingPrivateKey.
func Decrypt(priv *PrivateKey, pad Padding, ciphertext []byte) ([]byte, error) {
	if priv == nil || priv.D == nil {
		return nil, ErrMissingPrivateKey
	}
	k := priv.Size()
	if len(ciphertext) != k {
		return nil, ErrDecryption
	}
	c := bignum.NatFromBytes(ciphertext)
	if c.Cmp(priv.N) >= 0 {
		return nil, ErrDecryption
	}
	m := c.ModExp(priv.D, priv.N)
	return pad.Unpad(m.FillBytes(make([]byte, k)))
}
