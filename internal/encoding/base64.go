// Package encoding holds the byte/string codecs shared by the sealed
// payload wire format.
package encoding

import (
	"encoding/base64"
)

// ToBase64URL encodes bytes to URL-safe base64 without padding, the
// encoding used for every binary field of a sealed payload.
func ToBase64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// FromBase64URL decodes unpadded URL-safe base64.
func FromBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

// FromBase64Lenient decodes base64 in any of the common dialects. Payloads
// produced elsewhere sometimes arrive padded or in the standard alphabet.
func FromBase64Lenient(s string) ([]byte, error) {
	if data, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	if data, err := base64.URLEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	if data, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.StdEncoding.DecodeString(s)
}
