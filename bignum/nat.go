package bignum

import "math/bits"

// Word is the fixed-width storage unit of the arithmetic core.
type Word uint

const (
	wordBits  = bits.UintSize
	wordBytes = wordBits / 8
	maxWord   = ^Word(0)
)

// Nat is an unsigned arbitrary-precision integer. The value is stored as a
// little-endian sequence of words with no trailing zero word; the empty
// sequence represents zero. Operations never mutate their receiver or
// operands and always return a normalized result.
type Nat struct {
	limbs []Word
}

var natZero = &Nat{}
var natOne = &Nat{limbs: []Word{1}}

// NatFromUint64 returns the Nat representing v.
func NatFromUint64(v uint64) *Nat {
	if v == 0 {
		return &Nat{}
	}
	if wordBits == 64 || v <= uint64(maxWord) {
		return &Nat{limbs: []Word{Word(v)}}
	}
	return &Nat{limbs: []Word{Word(v), Word(v >> 32)}}
}

// NatFromBytes interprets b as a big-endian unsigned integer.
func NatFromBytes(b []byte) *Nat {
	limbs := make([]Word, (len(b)+wordBytes-1)/wordBytes)
	for i := 0; i < len(b); i++ {
		d := b[len(b)-1-i]
		limbs[i/wordBytes] |= Word(d) << (uint(i%wordBytes) * 8)
	}
	return &Nat{limbs: norm(limbs)}
}

// Bytes returns the value as a minimal big-endian byte slice. Zero encodes
// as an empty slice.
func (x *Nat) Bytes() []byte {
	if len(x.limbs) == 0 {
		return nil
	}
	n := (x.BitLen() + 7) / 8
	return x.FillBytes(make([]byte, n))
}

// FillBytes writes the value into buf as a left-zero-padded big-endian
// integer and returns buf. It panics if the value does not fit.
func (x *Nat) FillBytes(buf []byte) []byte {
	if x.BitLen() > len(buf)*8 {
		panic("bignum: value does not fit in buffer")
	}
	for i := range buf {
		buf[i] = 0
	}
	for i := 0; i < len(buf); i++ {
		w := i / wordBytes
		if w >= len(x.limbs) {
			break
		}
		buf[len(buf)-1-i] = byte(x.limbs[w] >> (uint(i%wordBytes) * 8))
	}
	return buf
}

// Uint64 returns the value as a uint64. ok is false if it does not fit.
func (x *Nat) Uint64() (v uint64, ok bool) {
	if x.BitLen() > 64 {
		return 0, false
	}
	for i := len(x.limbs) - 1; i >= 0; i-- {
		v = v<<(wordBits-1)<<1 | uint64(x.limbs[i])
	}
	return v, true
}

// IsZero reports whether x is zero.
func (x *Nat) IsZero() bool { return len(x.limbs) == 0 }

// Word returns word i of the little-endian representation, or 0 beyond the
// stored length.
func (x *Nat) Word(i int) Word {
	if i < 0 || i >= len(x.limbs) {
		return 0
	}
	return x.limbs[i]
}

// Words returns the number of stored words.
func (x *Nat) Words() int { return len(x.limbs) }

// Bit returns bit i of x, or 0 beyond the bit length.
func (x *Nat) Bit(i int) uint {
	w := i / wordBits
	if i < 0 || w >= len(x.limbs) {
		return 0
	}
	return uint(x.limbs[w]>>(uint(i)%wordBits)) & 1
}

// BitLen returns the length of x in bits; zero has bit length 0.
func (x *Nat) BitLen() int {
	if len(x.limbs) == 0 {
		return 0
	}
	return (len(x.limbs)-1)*wordBits + bits.Len(uint(x.limbs[len(x.limbs)-1]))
}

// TrailingZeroBits returns the number of consecutive zero bits at the least
// significant end of x. It panics for zero.
func (x *Nat) TrailingZeroBits() int {
	if len(x.limbs) == 0 {
		panic("bignum: trailing zeros of zero value")
	}
	for i, w := range x.limbs {
		if w != 0 {
			return i*wordBits + bits.TrailingZeros(uint(w))
		}
	}
	panic("bignum: non-normalized value")
}

// Cmp compares x and y, returning -1, 0, or +1.
func (x *Nat) Cmp(y *Nat) int {
	if len(x.limbs) != len(y.limbs) {
		if len(x.limbs) < len(y.limbs) {
			return -1
		}
		return 1
	}
	for i := len(x.limbs) - 1; i >= 0; i-- {
		if x.limbs[i] != y.limbs[i] {
			if x.limbs[i] < y.limbs[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Equal reports whether x and y represent the same value.
func (x *Nat) Equal(y *Nat) bool { return x.Cmp(y) == 0 }

func (x *Nat) clone() *Nat {
	limbs := make([]Word, len(x.limbs))
	copy(limbs, x.limbs)
	return &Nat{limbs: limbs}
}

// norm strips trailing (most-significant) zero words. Every operation runs
// it before handing out a result.
func norm(limbs []Word) []Word {
	i := len(limbs)
	for i > 0 && limbs[i-1] == 0 {
		i--
	}
	return limbs[:i]
}

func addWW(x, y, carry Word) (sum, cout Word) {
	s, c := bits.Add(uint(x), uint(y), uint(carry))
	return Word(s), Word(c)
}

func subWW(x, y, borrow Word) (diff, bout Word) {
	d, b := bits.Sub(uint(x), uint(y), uint(borrow))
	return Word(d), Word(b)
}

// mulAddWWW returns x*y + c as a double word. The high word cannot
// overflow: (B-1)^2 + (B-1) < B^2.
func mulAddWWW(x, y, c Word) (hi, lo Word) {
	h, l := bits.Mul(uint(x), uint(y))
	l, cc := bits.Add(l, uint(c), 0)
	return Word(h + cc), Word(l)
}

// addAt adds x into z starting at word index i, propagating the carry
// through the rest of z. z must be long enough to absorb the carry.
func addAt(z, x []Word, i int) {
	c := Word(0)
	for j, xj := range x {
		z[i+j], c = addWW(z[i+j], xj, c)
	}
	for k := i + len(x); c != 0; k++ {
		z[k], c = addWW(z[k], 0, c)
	}
}

// addVV sets z = x + y for equal-length slices and returns the carry.
func addVV(z, x, y []Word) (c Word) {
	for i := range z {
		z[i], c = addWW(x[i], y[i], c)
	}
	return
}

// subMulVVW sets z -= x*y for equal-length z, x and returns the borrow.
func subMulVVW(z, x []Word, y Word) (borrow Word) {
	for i := range z {
		hi, lo := mulAddWWW(x[i], y, borrow)
		var b Word
		z[i], b = subWW(z[i], lo, 0)
		borrow = hi + b
	}
	return
}

// Add returns x + y.
func (x *Nat) Add(y *Nat) *Nat { return x.AddAt(y, 0) }

// AddAt returns x + y*BASE^shift, i.e. y added in starting at word index
// shift. Callers accumulating partial products use it to avoid padding
// operands with zero words.
func (x *Nat) AddAt(y *Nat, shift int) *Nat {
	if shift < 0 {
		panic("bignum: negative word shift")
	}
	if y.IsZero() {
		return x.clone()
	}
	n := len(x.limbs)
	if m := shift + len(y.limbs); m > n {
		n = m
	}
	z := make([]Word, n+1)
	copy(z, x.limbs)
	addAt(z, y.limbs, shift)
	return &Nat{limbs: norm(z)}
}

// Sub returns x - y. It panics if the result would be negative; unsigned
// subtraction that can underflow is a usage error (signed callers go
// through Int, which never hits this).
func (x *Nat) Sub(y *Nat) *Nat { return x.SubAt(y, 0) }

// SubAt returns x - y*BASE^shift, with the same underflow contract as Sub.
func (x *Nat) SubAt(y *Nat, shift int) *Nat {
	if shift < 0 {
		panic("bignum: negative word shift")
	}
	if y.IsZero() {
		return x.clone()
	}
	z := make([]Word, len(x.limbs))
	copy(z, x.limbs)
	b := Word(0)
	for j, yj := range y.limbs {
		i := shift + j
		if i >= len(z) {
			panic("bignum: underflow in unsigned subtraction")
		}
		z[i], b = subWW(z[i], yj, b)
	}
	for k := shift + len(y.limbs); b != 0; k++ {
		if k >= len(z) {
			panic("bignum: underflow in unsigned subtraction")
		}
		z[k], b = subWW(z[k], 0, b)
	}
	return &Nat{limbs: norm(z)}
}

// MulWord returns x * y for a single-word multiplier.
func (x *Nat) MulWord(y Word) *Nat {
	if y == 0 || x.IsZero() {
		return &Nat{}
	}
	z := make([]Word, len(x.limbs)+1)
	c := Word(0)
	for i, xi := range x.limbs {
		c, z[i] = mulAddWWW(xi, y, c)
	}
	z[len(x.limbs)] = c
	return &Nat{limbs: norm(z)}
}

// Mul returns x * y.
func (x *Nat) Mul(y *Nat) *Nat {
	if x.IsZero() || y.IsZero() {
		return &Nat{}
	}
	z := make([]Word, len(x.limbs)+len(y.limbs))
	for i, xi := range x.limbs {
		if xi == 0 {
			continue
		}
		c := Word(0)
		for j, yj := range y.limbs {
			hi, lo := mulAddWWW(xi, yj, z[i+j])
			var cc Word
			lo, cc = addWW(lo, c, 0)
			z[i+j] = lo
			c = hi + cc
		}
		z[i+len(y.limbs)] = c
	}
	return &Nat{limbs: norm(z)}
}

// Lsh returns x << n.
func (x *Nat) Lsh(n int) *Nat {
	if n < 0 {
		panic("bignum: negative shift")
	}
	if x.IsZero() || n == 0 {
		return x.clone()
	}
	words, rem := n/wordBits, uint(n%wordBits)
	z := make([]Word, len(x.limbs)+words+1)
	if rem == 0 {
		copy(z[words:], x.limbs)
	} else {
		c := Word(0)
		for i, xi := range x.limbs {
			z[words+i] = xi<<rem | c
			c = xi >> (wordBits - rem)
		}
		z[words+len(x.limbs)] = c
	}
	return &Nat{limbs: norm(z)}
}

// Rsh returns x >> n.
func (x *Nat) Rsh(n int) *Nat {
	if n < 0 {
		panic("bignum: negative shift")
	}
	words, rem := n/wordBits, uint(n%wordBits)
	if words >= len(x.limbs) {
		return &Nat{}
	}
	src := x.limbs[words:]
	z := make([]Word, len(src))
	if rem == 0 {
		copy(z, src)
	} else {
		for i := range src {
			z[i] = src[i] >> rem
			if i+1 < len(src) {
				z[i] |= src[i+1] << (wordBits - rem)
			}
		}
	}
	return &Nat{limbs: norm(z)}
}

// And returns x & y.
func (x *Nat) And(y *Nat) *Nat {
	n := len(x.limbs)
	if len(y.limbs) < n {
		n = len(y.limbs)
	}
	z := make([]Word, n)
	for i := range z {
		z[i] = x.limbs[i] & y.limbs[i]
	}
	return &Nat{limbs: norm(z)}
}

// Or returns x | y.
func (x *Nat) Or(y *Nat) *Nat {
	if len(x.limbs) < len(y.limbs) {
		x, y = y, x
	}
	z := make([]Word, len(x.limbs))
	copy(z, x.limbs)
	for i := range y.limbs {
		z[i] |= y.limbs[i]
	}
	return &Nat{limbs: z}
}

// Xor returns x ^ y.
func (x *Nat) Xor(y *Nat) *Nat {
	if len(x.limbs) < len(y.limbs) {
		x, y = y, x
	}
	z := make([]Word, len(x.limbs))
	copy(z, x.limbs)
	for i := range y.limbs {
		z[i] ^= y.limbs[i]
	}
	return &Nat{limbs: norm(z)}
}

// NotIn returns the bitwise complement of x within the given bit width.
// It panics if x does not fit in width bits.
func (x *Nat) NotIn(width int) *Nat {
	if x.BitLen() > width {
		panic("bignum: value wider than complement width")
	}
	n := (width + wordBits - 1) / wordBits
	z := make([]Word, n)
	for i := range z {
		z[i] = ^x.Word(i)
	}
	if rem := uint(width % wordBits); rem != 0 {
		z[n-1] &= Word(1)<<rem - 1
	}
	return &Nat{limbs: norm(z)}
}

// divW divides x by a single nonzero word, returning quotient and remainder.
func (x *Nat) divW(d Word) (*Nat, Word) {
	z := make([]Word, len(x.limbs))
	r := Word(0)
	for i := len(x.limbs) - 1; i >= 0; i-- {
		q, rr := bits.Div(uint(r), uint(x.limbs[i]), uint(d))
		z[i] = Word(q)
		r = Word(rr)
	}
	return &Nat{limbs: norm(z)}, r
}

// DivMod returns the quotient and remainder of x / y. It panics when y is
// zero; division by zero is a usage error, not recoverable input.
func (x *Nat) DivMod(y *Nat) (q, r *Nat) {
	if y.IsZero() {
		panic("bignum: division by zero")
	}
	if x.Cmp(y) < 0 {
		return &Nat{}, x.clone()
	}
	if len(y.limbs) == 1 {
		q, rw := x.divW(y.limbs[0])
		return q, NatFromUint64(uint64(rw))
	}
	return x.divLarge(y)
}

// Mod returns x mod y, reusing the division routine.
func (x *Nat) Mod(y *Nat) *Nat {
	_, r := x.DivMod(y)
	return r
}

// divLarge performs schoolbook long division a word at a time. The divisor
// is first shifted so its leading word has the high bit set, which bounds
// the 2-word-by-1-word quotient estimate to at most two over the true
// digit; the estimate is corrected by add-back (try q, then q-1, then q-2).
func (x *Nat) divLarge(y *Nat) (*Nat, *Nat) {
	shift := wordBits - bits.Len(uint(y.limbs[len(y.limbs)-1]))
	v := y.Lsh(shift).limbs
	n := len(v)

	us := x.Lsh(shift)
	u := make([]Word, len(us.limbs)+1)
	copy(u, us.limbs)

	m := len(u) - 1 - n
	q := make([]Word, m+1)
	vTop := v[n-1]

	for j := m; j >= 0; j-- {
		qhat := maxWord
		if u[j+n] < vTop {
			hq, _ := bits.Div(uint(u[j+n]), uint(u[j+n-1]), uint(vTop))
			qhat = Word(hq)
		}
		if qhat != 0 {
			borrow := subMulVVW(u[j:j+n], v, qhat)
			var b Word
			u[j+n], b = subWW(u[j+n], borrow, 0)
			for b != 0 {
				qhat--
				c := addVV(u[j:j+n], u[j:j+n], v)
				var c2 Word
				u[j+n], c2 = addWW(u[j+n], c, 0)
				b -= c2
			}
		}
		q[j] = qhat
	}

	rem := (&Nat{limbs: norm(u[:n])}).Rsh(shift)
	return &Nat{limbs: norm(q)}, rem
}

// modW returns x mod d for a single nonzero word.
func (x *Nat) modW(d Word) Word {
	r := Word(0)
	for i := len(x.limbs) - 1; i >= 0; i-- {
		_, rr := bits.Div(uint(r), uint(x.limbs[i]), uint(d))
		r = Word(rr)
	}
	return r
}

// String returns the decimal representation of x.
func (x *Nat) String() string {
	if x.IsZero() {
		return "0"
	}
	var digits []byte
	t := x.clone()
	for !t.IsZero() {
		var r Word
		t, r = t.divW(10)
		digits = append(digits, '0'+byte(r))
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}
