// Package aead implements an authenticated-encryption construction in the
// ChaCha20-Poly1305 family.
//
// The construction is layered on a pluggable stream-cipher capability: a
// one-time Poly1305 subkey is derived by running the cipher over a zero
// block, the payload is encrypted starting at the cipher's second 64-byte
// block, and the tag authenticates ciphertext and associated data
// together. [New] wires in ChaCha20 with 12-byte nonces, [NewX] the
// XChaCha20 variant with 24-byte nonces; [NewWithCipher] accepts any other
// collaborator together with its nonce contract.
//
// Every call is stateless: the subkey is rederived from the key and nonce
// on each Seal or Open and discarded afterwards. Nonces must never repeat
// under the same key.
package aead
