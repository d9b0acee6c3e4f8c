// Package der implements the tag/length/value binary codec used to
// serialize structured key material.
//
// The supported subset is the canonical DER encoding of SEQUENCE, INTEGER,
// OBJECT IDENTIFIER, NULL, BIT STRING and OCTET STRING. Indefinite lengths
// and non-minimal long-form lengths are rejected. For every well-formed
// node n, Decode(n.Encode()) reproduces n, and for canonical input b,
// Decode(b).Encode() reproduces b byte for byte.
//
// Decoding treats the input as untrusted: truncation, unknown tags and
// malformed lengths surface as errors, never as panics.
package der
