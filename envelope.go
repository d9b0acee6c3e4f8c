package cryptonum

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"github.com/halcyonsec/cryptonum/aead"
	"github.com/halcyonsec/cryptonum/internal/encoding"
	"github.com/halcyonsec/cryptonum/rsa"
)

// PayloadVersion is the current sealed payload format version.
const PayloadVersion = 1

// AlgSuite is the canonical string naming the algorithms of a sealed
// payload: RSA key transport around a ChaCha20-Poly1305 body.
const AlgSuite = "RSA-PKCS1v15:ChaCha20-Poly1305"

const (
	contentKeySize = aead.KeySize
	nonceSize      = aead.NonceSize
	// keyBlockSize is the RSA-encrypted block: content key plus nonce.
	keyBlockSize = contentKeySize + nonceSize
)

// randReader is the random source for content keys and nonces. It
// defaults to nil (which uses crypto/rand) but can be overridden for
// testing.
var randReader io.Reader

func randSource() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// SealedPayload is the wire form of an RSA+AEAD hybrid envelope. Binary
// fields are URL-safe base64 without padding.
type SealedPayload struct {
	// V is the payload format version.
	V int `json:"v"`
	// Alg names the algorithm suite used.
	Alg string `json:"alg"`
	// EncKey is the RSA-encrypted content key and nonce.
	EncKey string `json:"enc_key"`
	// AAD is the associated data, authenticated but not encrypted.
	AAD string `json:"aad"`
	// Ciphertext is the AEAD output: body followed by the 16-byte tag.
	Ciphertext string `json:"ciphertext"`
}

// Marshal encodes the payload as JSON.
func (p *SealedPayload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// ParseSealedPayload decodes a JSON payload and checks its version and
// algorithm suite. Field contents are validated later, at open time.
func ParseSealedPayload(data []byte) (*SealedPayload, error) {
	var p SealedPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if p.V != PayloadVersion {
		return nil, fmt.Errorf("%w: version %d", ErrInvalidPayload, p.V)
	}
	if p.Alg != AlgSuite {
		return nil, fmt.Errorf("%w: algorithm %q", ErrInvalidPayload, p.Alg)
	}
	if p.EncKey == "" || p.Ciphertext == "" {
		return nil, fmt.Errorf("%w: missing required field", ErrInvalidPayload)
	}
	return &p, nil
}

// Seal encrypts plaintext to the holder of the RSA key: a fresh content
// key and nonce encrypt and authenticate the body (and aad), and are
// themselves encrypted to the public key with EME-PKCS1-v1.5. Every call
// draws a fresh key and nonce, so a payload is never sealed twice alike.
func Seal(pub *rsa.PublicKey, plaintext, aad []byte) (*SealedPayload, error) {
	keyBlock := make([]byte, keyBlockSize)
	if _, err := io.ReadFull(randSource(), keyBlock); err != nil {
		return nil, fmt.Errorf("generate content key: %w", err)
	}
	contentKey, nonce := keyBlock[:contentKeySize], keyBlock[contentKeySize:]

	a, err := aead.New(contentKey)
	if err != nil {
		return nil, err
	}
	ciphertext, err := a.Seal(nonce, plaintext, aad)
	if err != nil {
		return nil, err
	}

	encKey, err := rsa.Encrypt(pub, rsa.PaddingPKCS1v15, keyBlock)
	if err != nil {
		return nil, fmt.Errorf("encrypt content key: %w", err)
	}

	return &SealedPayload{
		V:          PayloadVersion,
		Alg:        AlgSuite,
		EncKey:     encoding.ToBase64URL(encKey),
		AAD:        encoding.ToBase64URL(aad),
		Ciphertext: encoding.ToBase64URL(ciphertext),
	}, nil
}

// Open reverses Seal. Malformed payload structure surfaces as
// ErrInvalidPayload; every cryptographic failure, whether in the key
// transport or the body tag, surfaces as the single ErrDecryptionFailed.
func Open(priv *rsa.PrivateKey, p *SealedPayload) ([]byte, error) {
	if p.V != PayloadVersion || p.Alg != AlgSuite {
		return nil, fmt.Errorf("%w: wrong version or algorithm", ErrInvalidPayload)
	}
	// Seal emits unpadded URL-safe base64, but envelopes produced by other
	// implementations sometimes arrive padded or in the standard alphabet.
	encKey, err := encoding.FromBase64Lenient(p.EncKey)
	if err != nil {
		return nil, fmt.Errorf("%w: enc_key: %v", ErrInvalidPayload, err)
	}
	aad, err := encoding.FromBase64Lenient(p.AAD)
	if err != nil {
		return nil, fmt.Errorf("%w: aad: %v", ErrInvalidPayload, err)
	}
	ciphertext, err := encoding.FromBase64Lenient(p.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext: %v", ErrInvalidPayload, err)
	}

	keyBlock, err := rsa.Decrypt(priv, rsa.PaddingPKCS1v15, encKey)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if len(keyBlock) != keyBlockSize {
		return nil, ErrDecryptionFailed
	}

	a, err := aead.New(keyBlock[:contentKeySize])
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	plaintext, err := a.Open(keyBlock[contentKeySize:], ciphertext, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
