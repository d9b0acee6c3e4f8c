package bignum

import (
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the random source used for sampling. It defaults to nil
// (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func randSource() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// RandNat returns a uniform random value of at most bits bits: whole words
// are filled from the generator and the final partial word is masked.
func RandNat(bits int) (*Nat, error) {
	if bits <= 0 {
		panic("bignum: random width must be positive")
	}
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(randSource(), buf); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	if rem := bits % 8; rem != 0 {
		buf[0] &= byte(1)<<rem - 1
	}
	return NatFromBytes(buf), nil
}

// RandNatExact returns a uniform random value of exactly bits bits, i.e.
// with the top bit set.
func RandNatExact(bits int) (*Nat, error) {
	n, err := RandNat(bits)
	if err != nil {
		return nil, err
	}
	return n.Or(natOne.Lsh(bits - 1)), nil
}

// RandNatBelow returns a uniform random value in [0, limit) by rejection
// sampling at the limit's bit width. It panics for a zero limit.
func RandNatBelow(limit *Nat) (*Nat, error) {
	if limit.IsZero() {
		panic("bignum: random limit must be positive")
	}
	bits := limit.BitLen()
	for {
		n, err := RandNat(bits)
		if err != nil {
			return nil, err
		}
		if n.Cmp(limit) < 0 {
			return n, nil
		}
	}
}
