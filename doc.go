// Package cryptonum is a self-contained cryptographic numerics stack:
// arbitrary-precision integers, number theory, DER encoding, the RSA
// primitive, and ChaCha20-Poly1305 authenticated encryption.
//
// The subpackages compose bottom-up: bignum provides the integer
// engine, der the encoding layer, rsa and aead the primitives. This
// root package ties them together into a hybrid envelope that seals a
// message body under a fresh content key and transports that key under
// an RSA public key.
//
// Basic usage:
//
//	priv, err := rsa.GenerateKey(2048)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	payload, err := cryptonum.Seal(&priv.PublicKey, []byte("hello"), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plaintext, err := cryptonum.Open(priv, payload)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(string(plaintext))
package cryptonum
