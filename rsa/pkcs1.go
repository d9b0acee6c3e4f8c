package rsa

import (
	"fmt"

	"github.com/halcyonsec/cryptonum/bignum"
	"github.com/halcyonsec/cryptonum/der"
)

// natNode encodes a Nat as a DER INTEGER. DER integers are signed, so a
// value whose top bit is set gains a leading zero octet.
func natNode(n *bignum.Nat) *der.Node {
	b := n.Bytes()
	if len(b) == 0 {
		b = []byte{0x00}
	} else if b[0]&0x80 != 0 {
		b = append([]byte{0x00}, b...)
	}
	return der.Int(b)
}

func natFromNode(node *der.Node) (*bignum.Nat, error) {
	if node.Kind != der.KindInteger {
		return nil, fmt.Errorf("%w: expected INTEGER, got tag 0x%02x", ErrInvalidKeyEncoding, byte(node.Kind))
	}
	if len(node.Value) == 0 {
		return nil, fmt.Errorf("%w: empty INTEGER", ErrInvalidKeyEncoding)
	}
	if node.Value[0]&0x80 != 0 {
		return nil, fmt.Errorf("%w: negative INTEGER", ErrInvalidKeyEncoding)
	}
	return bignum.NatFromBytes(node.Value), nil
}

// MarshalPKCS1PublicKey encodes the key as
// SEQUENCE { INTEGER n, INTEGER e }.
func MarshalPKCS1PublicKey(pub *PublicKey) []byte {
	return der.Seq(natNode(pub.N), natNode(pub.E)).Encode()
}

// ParsePKCS1PublicKey decodes a SEQUENCE { INTEGER n, INTEGER e } key.
func ParsePKCS1PublicKey(data []byte) (*PublicKey, error) {
	root, err := der.Decode(data)
	if err != nil {
		return nil, err
	}
	if root.Kind != der.KindSequence || len(root.Children) != 2 {
		return nil, fmt.Errorf("%w: expected SEQUENCE of two INTEGERs", ErrInvalidKeyEncoding)
	}
	n, err := natFromNode(root.Children[0])
	if err != nil {
		return nil, err
	}
	e, err := natFromNode(root.Children[1])
	if err != nil {
		return nil, err
	}
	return &PublicKey{N: n, E: e}, nil
}

// MarshalPKCS1PrivateKey encodes the key as the nine-field PKCS#1 RSA
// private key structure (version 0, n, e, d, p, q, dP, dQ, qInv). The CRT
// fields are always present.
func MarshalPKCS1PrivateKey(priv *PrivateKey) ([]byte, error) {
	if priv == nil || priv.D == nil || priv.P == nil || priv.Q == nil {
		return nil, ErrMissingPrivateKey
	}
	qInv, err := priv.QInv()
	if err != nil {
		return nil, err
	}
	return der.Seq(
		der.Int([]byte{0x00}), // version: two-prime
		natNode(priv.N),
		natNode(priv.E),
		natNode(priv.D),
		natNode(priv.P),
		natNode(priv.Q),
		natNode(priv.DP()),
		natNode(priv.DQ()),
		natNode(qInv),
	).Encode(), nil
}

// ParsePKCS1PrivateKey decodes the nine-field PKCS#1 structure and
// re-derives and cross-checks every private field before accepting the
// key; an encoding that decodes cleanly but carries inconsistent values is
// rejected with ErrKeyMismatch.
func ParsePKCS1PrivateKey(data []byte) (*PrivateKey, error) {
	root, err := der.Decode(data)
	if err != nil {
		return nil, err
	}
	if root.Kind != der.KindSequence || len(root.Children) != 9 {
		return nil, fmt.Errorf("%w: expected SEQUENCE of nine INTEGERs", ErrInvalidKeyEncoding)
	}
	version, err := natFromNode(root.Children[0])
	if err != nil {
		return nil, err
	}
	if !version.IsZero() {
		return nil, fmt.Errorf("%w: version %v", ErrUnsupportedVersion, version)
	}
	fields := make([]*bignum.Nat, 8)
	for i := range fields {
		if fields[i], err = natFromNode(root.Children[i+1]); err != nil {
			return nil, err
		}
	}
	return NewPrivateKey(fields[0], fields[1], fields[2], fields[3],
		fields[4], fields[5], fields[6], fields[7])
}
