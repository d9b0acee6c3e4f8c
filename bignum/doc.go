// Package bignum implements the arbitrary-precision integer engine and the
// number-theory layer built on it.
//
// # Representation
//
// A [Nat] is an unsigned value stored as a little-endian sequence of
// machine words, normalized after every operation so that equal values
// have identical representations. An [Int] pairs a sign with a Nat
// magnitude; a zero magnitude always reads as positive. Both are immutable
// value types: every operation returns a fresh value, so concurrent use of
// any value is safe without locking.
//
// # Number theory
//
// On top of the ring operations the package provides binary modular
// exponentiation ([Nat.ModExp]), the extended Euclidean modular inverse
// ([ModInverse]), binary GCD ([GCD]), Miller-Rabin primality testing
// ([IsPrime]) and uniform random sampling ([RandNat], [RandNatExact],
// [RandNatBelow]). Primality is deterministic below a tabulated bound and
// probabilistic above it.
//
// # Error contract
//
// Violated preconditions (division by zero, unsigned subtraction below
// zero, modular inverse against a modulus <= 1) indicate programmer error,
// not untrusted input, and panic. Operations touching the random source
// return an error only when that source fails.
package bignum
