package bignum

// smallPrimes is the trial-division table. The first seven entries double
// as the deterministic Miller-Rabin witness ladder.
var smallPrimes = []Word{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
	59, 61, 67, 71, 73, 79, 83, 89, 97,
}

// mrThresholds[i] is the smallest composite that passes Miller-Rabin for
// the witness set smallPrimes[:i+1]. Below a threshold, testing those
// witnesses is a deterministic primality proof.
var mrThresholds = []uint64{
	2047,
	1373653,
	25326001,
	3215031751,
	2152302898747,
	3474749660383,
	341550071728321,
}

const defaultRounds = 10

// IsPrime reports whether n is prime. Values below the tabulated bound are
// decided deterministically by the witness ladder; larger values run
// rounds random-witness Miller-Rabin trials (10 when rounds <= 0), so a
// true result is "probably prime" for them. The error is non-nil only when
// the random source fails.
func IsPrime(n *Nat, rounds int) (bool, error) {
	if n.Cmp(natOne) <= 0 {
		return false, nil
	}
	for _, p := range smallPrimes {
		pn := NatFromUint64(uint64(p))
		if n.Equal(pn) {
			return true, nil
		}
		if n.modW(p) == 0 {
			return false, nil
		}
	}
	if v, ok := n.Uint64(); ok && v <= mrThresholds[len(mrThresholds)-1] {
		for i, limit := range mrThresholds {
			if v < limit {
				for _, p := range smallPrimes[:i+1] {
					if !millerRabin(n, NatFromUint64(uint64(p))) {
						return false, nil
					}
				}
				return true, nil
			}
		}
	}
	if rounds <= 0 {
		rounds = defaultRounds
	}
	// Witnesses are drawn uniformly from [2, n-2].
	three := NatFromUint64(3)
	span := n.Sub(three)
	two := NatFromUint64(2)
	for i := 0; i < rounds; i++ {
		a, err := RandNatBelow(span)
		if err != nil {
			return false, err
		}
		if !millerRabin(n, a.Add(two)) {
			return false, nil
		}
	}
	return true, nil
}

// millerRabin runs one Miller-Rabin trial of n with the given base. n must
// be odd and greater than 3. Write n-1 = d*2^r; the base passes if
// base^d == 1 or == n-1, or if some of the r-1 subsequent squarings
// reaches n-1.
func millerRabin(n, base *Nat) bool {
	nm1 := n.Sub(natOne)
	r := nm1.TrailingZeroBits()
	d := nm1.Rsh(r)

	x := base.ModExp(d, n)
	if x.Equal(natOne) || x.Equal(nm1) {
		return true
	}
	for i := 0; i < r-1; i++ {
		x = x.Mul(x).Mod(n)
		if x.Equal(nm1) {
			return true
		}
	}
	return false
}
