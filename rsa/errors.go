package rsa

import "errors"

// Sentinel errors for errors.Is() checks.
var (
	// ErrMessageTooLong is returned when a message does not fit the chosen
	// padding at the key's size.
	ErrMessageTooLong = errors.New("rsa: message too long for key size")

	// ErrDecryption is returned when decryption fails. The cause is not
	// broken down further to avoid a padding oracle.
	ErrDecryption = errors.New("rsa: decryption error")

	// ErrMissingPrivateKey is returned when signing or decryption is
	// attempted without private key material.
	ErrMissingPrivateKey = errors.New("rsa: operation requires a private key")

	// ErrKeyMismatch is returned when supplied key parameters are
	// inconsistent with each other.
	ErrKeyMismatch = errors.New("rsa: inconsistent key parameters")

	// ErrInvalidKeyEncoding is returned when a DER key structure has the
	// wrong shape.
	ErrInvalidKeyEncoding = errors.New("rsa: invalid key encoding")

	// ErrUnsupportedVersion is returned for a private key encoding with a
	// version tag other than 0 (two-prime).
	ErrUnsupportedVersion = errors.New("rsa: unsupported key version")

	// ErrDigestLength is returned when a pre-hashed digest does not match
	// the scheme's hash size.
	ErrDigestLength = errors.New("rsa: digest length does not match scheme")
)
