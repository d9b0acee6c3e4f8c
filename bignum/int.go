package bignum

// Int is a signed arbitrary-precision integer: a sign paired with an
// unsigned magnitude. A zero magnitude always carries a positive sign, so
// there is no negative zero and Equal is representation equality.
type Int struct {
	neg bool
	abs *Nat
}

// IntFromNat returns the nonnegative Int with magnitude x.
func IntFromNat(x *Nat) *Int { return &Int{abs: x.clone()} }

// IntFromInt64 returns the Int representing v.
func IntFromInt64(v int64) *Int {
	if v < 0 {
		return &Int{neg: true, abs: NatFromUint64(uint64(-v))}
	}
	return &Int{abs: NatFromUint64(uint64(v))}
}

func makeInt(neg bool, abs *Nat) *Int {
	if abs.IsZero() {
		neg = false
	}
	return &Int{neg: neg, abs: abs}
}

// Sign returns -1, 0, or +1.
func (x *Int) Sign() int {
	switch {
	case x.abs.IsZero():
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// IsZero reports whether x is zero.
func (x *Int) IsZero() bool { return x.abs.IsZero() }

// Abs returns the magnitude of x as a Nat.
func (x *Int) Abs() *Nat { return x.abs.clone() }

// Nat returns the value as a Nat. It panics if x is negative.
func (x *Int) Nat() *Nat {
	if x.neg {
		panic("bignum: negative value has no unsigned form")
	}
	return x.abs.clone()
}

// Neg returns -x.
func (x *Int) Neg() *Int { return makeInt(!x.neg, x.abs.clone()) }

// Cmp compares x and y, returning -1, 0, or +1.
func (x *Int) Cmp(y *Int) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	case x.neg:
		return y.abs.Cmp(x.abs)
	}
	return x.abs.Cmp(y.abs)
}

// Equal reports whether x and y represent the same value.
func (x *Int) Equal(y *Int) bool { return x.Cmp(y) == 0 }

// Add returns x + y. Same-sign operands add magnitudes and keep the sign;
// opposite-sign operands compare magnitudes to decide which subtracts from
// which and which sign survives.
func (x *Int) Add(y *Int) *Int {
	if x.neg == y.neg {
		return makeInt(x.neg, x.abs.Add(y.abs))
	}
	switch x.abs.Cmp(y.abs) {
	case 0:
		return &Int{abs: &Nat{}}
	case 1:
		return makeInt(x.neg, x.abs.Sub(y.abs))
	}
	return makeInt(y.neg, y.abs.Sub(x.abs))
}

// Sub returns x - y, defined as x + (-y) so unsigned underflow cannot occur.
func (x *Int) Sub(y *Int) *Int { return x.Add(y.Neg()) }

// Mul returns x * y.
func (x *Int) Mul(y *Int) *Int {
	return makeInt(x.neg != y.neg, x.abs.Mul(y.abs))
}

// QuoRem returns the quotient and remainder of x / y with the quotient
// truncated toward zero and the remainder taking the dividend's sign.
// It panics when y is zero.
func (x *Int) QuoRem(y *Int) (q, r *Int) {
	qn, rn := x.abs.DivMod(y.abs)
	return makeInt(x.neg != y.neg, qn), makeInt(x.neg, rn)
}

// Lsh returns x << n.
func (x *Int) Lsh(n int) *Int { return makeInt(x.neg, x.abs.Lsh(n)) }

// Rsh returns x >> n, shifting the magnitude (arithmetic shift of the
// absolute value, not two's complement).
func (x *Int) Rsh(n int) *Int { return makeInt(x.neg, x.abs.Rsh(n)) }

// Not returns the two's-complement bitwise NOT of x, i.e. -(x+1).
func (x *Int) Not() *Int {
	return x.Add(IntFromInt64(1)).Neg()
}

// String returns the decimal representation of x.
func (x *Int) String() string {
	if x.neg {
		return "-" + x.abs.String()
	}
	return x.abs.String()
}
