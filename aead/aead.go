package aead

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20"

	"github.com/halcyonsec/cryptonum/internal/poly1305"
)

const (
	// KeySize is the cipher key length in bytes.
	KeySize = 32
	// TagSize is the Poly1305 authenticator length in bytes.
	TagSize = poly1305.TagSize
	// NonceSize is the nonce length of the base ChaCha20 construction.
	NonceSize = chacha20.NonceSize
	// NonceSizeX is the nonce length of the XChaCha20 variant.
	NonceSizeX = chacha20.NonceSizeX
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrAuthentication is returned when the tag does not match. It is a
	// normal outcome for tampered input, not a fatal condition, and it is
	// the only failure an Open caller can observe about the content.
	ErrAuthentication = errors.New("aead: message authentication failed")

	// ErrInvalidKeySize is returned for a key that is not 32 bytes.
	ErrInvalidKeySize = errors.New("aead: invalid key size")

	// ErrInvalidNonceSize is returned when the nonce length does not match
	// the chosen cipher's contract.
	ErrInvalidNonceSize = errors.New("aead: invalid nonce size")
)

// StreamCipher is the externally supplied cipher capability: a one-time
// keystream instance already bound to a key and nonce.
type StreamCipher interface {
	XORKeyStream(dst, src []byte)
}

// CipherFactory produces a fresh StreamCipher for a key/nonce pair. Each
// Seal or Open call consumes exactly the instances it creates; no state
// persists between calls.
type CipherFactory func(key, nonce []byte) (StreamCipher, error)

// AEAD is an authenticated-encryption construction layered on a stream
// cipher and a Poly1305 one-time authenticator. Values are stateless per
// invocation and safe for concurrent use.
type AEAD struct {
	key       []byte
	nonceSize int
	newCipher CipherFactory
}

// New returns the base construction over ChaCha20 with 12-byte nonces.
func New(key []byte) (*AEAD, error) {
	return NewWithCipher(key, NonceSize, chachaFactory)
}

// NewX returns the XChaCha20 variant. It differs from New only in the
// stream-cipher capability handed in: the cipher derives a sub-key/
// sub-nonce pair from the 24-byte nonce before running the same keystream.
func NewX(key []byte) (*AEAD, error) {
	return NewWithCipher(key, NonceSizeX, chachaFactory)
}

// NewWithCipher builds the construction over an arbitrary cipher
// capability. The nonce size is validated per call against the value given
// here, i.e. against the collaborator's actual contract.
func NewWithCipher(key []byte, nonceSize int, factory CipherFactory) (*AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &AEAD{key: k, nonceSize: nonceSize, newCipher: factory}, nil
}

func chachaFactory(key, nonce []byte) (StreamCipher, error) {
	return chacha20.NewUnauthenticatedCipher(key, nonce)
}

// Seal encrypts plaintext and authenticates it together with aad,
// returning ciphertext with the 16-byte tag appended. The keystream's
// first 64-byte block carries the one-time authenticator subkey; it is
// consumed and discarded so the payload starts at the second block.
func (a *AEAD) Seal(nonce, plaintext, aad []byte) ([]byte, error) {
	if len(nonce) != a.nonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), a.nonceSize)
	}
	c, err := a.newCipher(a.key, nonce)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 64+len(plaintext)+TagSize)
	copy(buf[64:], plaintext)
	c.XORKeyStream(buf[:64+len(plaintext)], buf[:64+len(plaintext)])

	var subkey [poly1305.KeySize]byte
	copy(subkey[:], buf[:32])
	ciphertext := buf[64 : 64+len(plaintext)]

	var tag [TagSize]byte
	poly1305.Sum(&tag, macData(ciphertext, aad), &subkey)
	copy(buf[64+len(plaintext):], tag[:])

	return buf[64:], nil
}

// Open verifies the tag and decrypts. The expected tag is recomputed from
// the supplied ciphertext and aad and compared with a full-length
// constant-time comparison before any decryption; on mismatch no partial
// plaintext is produced.
func (a *AEAD) Open(nonce, ciphertext, aad []byte) ([]byte, error) {
	if len(nonce) != a.nonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), a.nonceSize)
	}
	if len(ciphertext) < TagSize {
		return nil, ErrAuthentication
	}
	body := ciphertext[:len(ciphertext)-TagSize]
	var tag [TagSize]byte
	copy(tag[:], ciphertext[len(ciphertext)-TagSize:])

	subkey, err := a.subkey(nonce)
	if err != nil {
		return nil, err
	}
	if !poly1305.Verify(&tag, macData(body, aad), &subkey) {
		return nil, ErrAuthentication
	}

	c, err := a.newCipher(a.key, nonce)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 64+len(body))
	copy(buf[64:], body)
	c.XORKeyStream(buf, buf)
	return buf[64:], nil
}

// subkey derives the one-time authenticator key: the stream cipher run
// over a zero block, truncated to 32 bytes. It is rederived per call and
// never stored.
func (a *AEAD) subkey(nonce []byte) ([poly1305.KeySize]byte, error) {
	var subkey [poly1305.KeySize]byte
	c, err := a.newCipher(a.key, nonce)
	if err != nil {
		return subkey, err
	}
	var block [64]byte
	c.XORKeyStream(block[:], block[:])
	copy(subkey[:], block[:32])
	return subkey, nil
}

// macData frames the authenticator input: ciphertext, then associated
// data, each zero-padded to a 16-byte boundary, followed by their
// little-endian 64-bit lengths.
func macData(ciphertext, aad []byte) []byte {
	out := make([]byte, 0, len(ciphertext)+len(aad)+48)
	out = append(out, ciphertext...)
	out = append(out, pad16(len(ciphertext))...)
	out = append(out, aad...)
	out = append(out, pad16(len(aad))...)
	var lengths [16]byte
	binary.LittleEndian.PutUint64(lengths[:8], uint64(len(ciphertext)))
	binary.LittleEndian.PutUint64(lengths[8:], uint64(len(aad)))
	return append(out, lengths[:]...)
}

func pad16(n int) []byte {
	if rem := n % 16; rem != 0 {
		return make([]byte, 16-rem)
	}
	return nil
}
