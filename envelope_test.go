package cryptonum

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/halcyonsec/cryptonum/rsa"
)

var (
	envKeyOnce sync.Once
	envKey     *rsa.PrivateKey
)

// envTestKey returns a shared 512-bit key. Small for speed; large
// enough to transport a 44-byte content key block.
func envTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	envKeyOnce.Do(func() {
		k, err := rsa.GenerateKey(512)
		if err != nil {
			t.Fatalf("GenerateKey: %v", err)
		}
		envKey = k
	})
	return envKey
}

func TestSealOpenRoundTrip(t *testing.T) {
	priv := envTestKey(t)
	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	aad := []byte("header-v1")

	payload, err := Seal(&priv.PublicKey, plaintext, aad)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if payload.V != PayloadVersion {
		t.Errorf("version = %d, want %d", payload.V, PayloadVersion)
	}
	if payload.Alg != AlgSuite {
		t.Errorf("alg = %q, want %q", payload.Alg, AlgSuite)
	}

	got, err := Open(priv, payload)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("Open = %q, want %q", got, plaintext)
	}
}

func TestSealOpenEmpty(t *testing.T) {
	priv := envTestKey(t)

	payload, err := Seal(&priv.PublicKey, nil, nil)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	got, err := Open(priv, payload)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Open = %q, want empty", got)
	}
}

func TestSealFreshKeys(t *testing.T) {
	priv := envTestKey(t)
	plaintext := []byte("same message")

	p1, err := Seal(&priv.PublicKey, plaintext, nil)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	p2, err := Seal(&priv.PublicKey, plaintext, nil)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if p1.EncKey == p2.EncKey {
		t.Error("two seals produced the same encrypted key block")
	}
	if p1.Ciphertext == p2.Ciphertext {
		t.Error("two seals produced the same ciphertext")
	}
}

func TestOpenTamperedCiphertext(t *testing.T) {
	priv := envTestKey(t)

	payload, err := Seal(&priv.PublicKey, []byte("secret"), []byte("aad"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	// Swap in a ciphertext sealed under a different content key.
	other, err := Seal(&priv.PublicKey, []byte("secret"), []byte("aad"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	payload.Ciphertext = other.Ciphertext

	if _, err := Open(priv, payload); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Open = %v, want ErrDecryptionFailed", err)
	}
}

func TestOpenTamperedAAD(t *testing.T) {
	priv := envTestKey(t)

	payload, err := Seal(&priv.PublicKey, []byte("secret"), []byte("aad"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	payload.AAD = "ZGFh" // "daa"

	if _, err := Open(priv, payload); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Open = %v, want ErrDecryptionFailed", err)
	}
}

func TestOpenTamperedKeyBlock(t *testing.T) {
	priv := envTestKey(t)

	payload, err := Seal(&priv.PublicKey, []byte("secret"), nil)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	// A key block sealed for a different key fails uniformly.
	wrong, err := rsa.GenerateKey(512)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if _, err := Open(wrong, payload); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Open = %v, want ErrDecryptionFailed", err)
	}
}

func TestOpenInvalidBase64(t *testing.T) {
	priv := envTestKey(t)

	payload, err := Seal(&priv.PublicKey, []byte("secret"), nil)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	payload.EncKey = "!!not-base64!!"

	if _, err := Open(priv, payload); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("Open = %v, want ErrInvalidPayload", err)
	}
}

func TestParseSealedPayload(t *testing.T) {
	priv := envTestKey(t)

	payload, err := Seal(&priv.PublicKey, []byte("round trip"), []byte("aad"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	data, err := payload.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	parsed, err := ParseSealedPayload(data)
	if err != nil {
		t.Fatalf("ParseSealedPayload: %v", err)
	}
	got, err := Open(priv, parsed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if string(got) != "round trip" {
		t.Errorf("Open = %q, want %q", got, "round trip")
	}
}

func TestParseSealedPayloadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{`},
		{"wrong version", `{"v":2,"alg":"RSA-PKCS1v15:ChaCha20-Poly1305","enc_key":"AA","aad":"","ciphertext":"AA"}`},
		{"wrong alg", `{"v":1,"alg":"RSA-OAEP:AES-GCM","enc_key":"AA","aad":"","ciphertext":"AA"}`},
		{"missing enc_key", `{"v":1,"alg":"RSA-PKCS1v15:ChaCha20-Poly1305","aad":"","ciphertext":"AA"}`},
		{"missing ciphertext", `{"v":1,"alg":"RSA-PKCS1v15:ChaCha20-Poly1305","enc_key":"AA","aad":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSealedPayload([]byte(tt.data)); !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("ParseSealedPayload = %v, want ErrInvalidPayload", err)
			}
		})
	}
}

func TestSealRandFailure(t *testing.T) {
	priv := envTestKey(t)

	randReader = bytes.NewReader(nil)
	defer func() { randReader = nil }()

	if _, err := Seal(&priv.PublicKey, []byte("x"), nil); err == nil {
		t.Error("Seal succeeded with exhausted random source")
	}
}
