package cryptonum

import "errors"

// Sentinel errors for errors.Is() checks.
var (
	// ErrInvalidPayload is returned when a sealed payload is structurally
	// invalid: bad JSON, missing fields, bad encoding, or an unsupported
	// version or algorithm suite.
	ErrInvalidPayload = errors.New("cryptonum: invalid sealed payload")

	// ErrDecryptionFailed is returned when opening a payload fails for any
	// cryptographic reason. The cause is deliberately not broken down:
	// callers cannot tell a bad key transport from a bad tag.
	ErrDecryptionFailed = errors.New("cryptonum: decryption failed")
)
