// Package rsa implements the RSA public-key primitive on top of the
// bignum arithmetic engine and the der codec.
//
// # Keys
//
// [GenerateKey] draws two random primes and fixes e = 65537.
// [NewPrivateKey] is a validating constructor: every supplied parameter,
// including the CRT values, is recomputed and cross-checked, so a key that
// constructs successfully is internally consistent. Keys are immutable
// once built. [ParsePKCS1PrivateKey] goes through the same validation, so
// imported key material is never merely trusted.
//
// # Encryption and signatures
//
// Encryption padding is a capability: [PaddingUnsafe] (raw, deterministic,
// not for production), [PaddingRaw] (zero padding) and [PaddingPKCS1v15]
// (EME-PKCS1-v1.5, randomized per call). Signatures use EMSA-PKCS1-v1.5
// with a [Scheme] selecting the hash and its DigestInfo identifier.
// Verification returns a plain bool and rejects wrong-length signatures
// before performing any modular exponentiation.
package rsa
