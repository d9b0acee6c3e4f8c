package bignum

// ModExp returns x^e mod m using binary square-and-multiply, reducing after
// every multiplication to bound operand growth. It panics when m is zero.
// A modulus of 1 always yields 0; an exponent of 0 yields 1.
func (x *Nat) ModExp(e, m *Nat) *Nat {
	if m.IsZero() {
		panic("bignum: modular exponentiation with zero modulus")
	}
	if m.Equal(natOne) {
		return &Nat{}
	}
	if e.IsZero() {
		return natOne.clone()
	}
	base := x.Mod(m)
	result := natOne.clone()
	for i := e.BitLen() - 1; i >= 0; i-- {
		result = result.Mul(result).Mod(m)
		if e.Bit(i) == 1 {
			result = result.Mul(base).Mod(m)
		}
	}
	return result
}

// ModInverse returns the multiplicative inverse of a modulo m, normalized
// into [0, m), using the extended Euclidean algorithm. ok is false when
// gcd(a, m) != 1 and no inverse exists. It panics for m <= 1, which is a
// usage error rather than untrusted input.
func ModInverse(a, m *Nat) (inv *Nat, ok bool) {
	if m.Cmp(natOne) <= 0 {
		panic("bignum: modular inverse requires modulus > 1")
	}
	r0, r1 := IntFromNat(m), IntFromNat(a.Mod(m))
	t0, t1 := IntFromInt64(0), IntFromInt64(1)
	for !r1.IsZero() {
		q, r := r0.QuoRem(r1)
		r0, r1 = r1, r
		t0, t1 = t1, t0.Sub(q.Mul(t1))
	}
	if !r0.Equal(IntFromInt64(1)) {
		return nil, false
	}
	if t0.Sign() < 0 {
		t0 = t0.Add(IntFromNat(m))
	}
	return t0.Nat(), true
}

// GCD returns the greatest common divisor of a and b by binary GCD: strip
// the common power of two, then repeatedly strip trailing zeros from the
// larger operand and subtract, restoring the common factor at the end.
func GCD(a, b *Nat) *Nat {
	if a.IsZero() {
		return b.clone()
	}
	if b.IsZero() {
		return a.clone()
	}
	za, zb := a.TrailingZeroBits(), b.TrailingZeroBits()
	k := za
	if zb < k {
		k = zb
	}
	a = a.Rsh(za)
	b = b.Rsh(zb)
	for {
		if a.Cmp(b) < 0 {
			a, b = b, a
		}
		a = a.Sub(b)
		if a.IsZero() {
			return b.Lsh(k)
		}
		a = a.Rsh(a.TrailingZeroBits())
	}
}
