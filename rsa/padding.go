package rsa

import (
	"bytes"
	"fmt"
	"io"
)

// Padding turns a message into an encryption block of the key's size and
// back. Implementations are stateless; the same value can be shared across
// goroutines.
type Padding interface {
	// Pad encodes msg into a block of exactly k bytes.
	Pad(msg []byte, k int) ([]byte, error)
	// Unpad recovers the message from a decrypted block.
	Unpad(em []byte) ([]byte, error)
}

// PaddingUnsafe treats the message bytes directly as the RSA input with no
// padding at all. Raw RSA is deterministic and malleable; it exists for
// interoperability and tests, not for production use. Unpadding strips all
// leading zero bytes, so a message that itself starts with 0x00 does not
// round-trip.
var PaddingUnsafe Padding = paddingUnsafe{}

// PaddingRaw left-pads the message with zero bytes to the block size. It
// keeps the EME-PKCS1-v1.5 length margin (block >= len+11) so messages
// remain transferable between the two paddings. Zero padding is
// indistinguishable from leading zero bytes of the message, so those are
// stripped on unpadding; callers with zero-prefixed messages need
// PaddingPKCS1v15.
var PaddingRaw Padding = paddingRaw{}

// PaddingPKCS1v15 is EME-PKCS1-v1.5: 0x00 0x02, at least eight random
// nonzero bytes, 0x00, message. Encryption is randomized per call.
var PaddingPKCS1v15 Padding = paddingPKCS1v15{}

type paddingUnsafe struct{}

func (paddingUnsafe) Pad(msg []byte, k int) ([]byte, error) {
	if len(msg) > k {
		return nil, ErrMessageTooLong
	}
	em := make([]byte, k)
	copy(em[k-len(msg):], msg)
	return em, nil
}

func (paddingUnsafe) Unpad(em []byte) ([]byte, error) {
	return bytes.TrimLeft(em, "\x00"), nil
}

type paddingRaw struct{}

func (paddingRaw) Pad(msg []byte, k int) ([]byte, error) {
	if k < len(msg)+11 {
		return nil, ErrMessageTooLong
	}
	em := make([]byte, k)
	copy(em[k-len(msg):], msg)
	return em, nil
}

func (paddingRaw) Unpad(em []byte) ([]byte, error) {
	return bytes.TrimLeft(em, "\x00"), nil
}

type paddingPKCS1v15 struct{}

func (paddingPKCS1v15) Pad(msg []byte, k int) ([]byte, error) {
	if k < len(msg)+11 {
		return nil, ErrMessageTooLong
	}
	em := make([]byte, k)
	em[1] = 0x02
	ps := em[2 : k-len(msg)-1]
	if err := fillNonzero(ps); err != nil {
		return nil, fmt.Errorf("rsa: padding randomness: %w", err)
	}
	copy(em[k-len(msg):], msg)
	return em, nil
}

func (paddingPKCS1v15) Unpad(em []byte) ([]byte, error) {
	if len(em) < 11 || em[0] != 0x00 || em[1] != 0x02 {
		return nil, ErrDecryption
	}
	sep := bytes.IndexByte(em[2:], 0x00)
	if sep < 8 {
		// No separator, or fewer than eight padding bytes.
		return nil, ErrDecryption
	}
	return em[2+sep+1:], nil
}

// fillNonzero fills ps with random nonzero bytes.
func fillNonzero(ps []byte) error {
	if len(ps) == 0 {
		return nil
	}
	buf := make([]byte, len(ps))
	i := 0
	for i < len(ps) {
		if _, err := io.ReadFull(randSource(), buf); err != nil {
			return err
		}
		for _, b := range buf {
			if b != 0 {
				ps[i] = b
				i++
				if i == len(ps) {
					break
				}
			}
		}
	}
	return nil
}
