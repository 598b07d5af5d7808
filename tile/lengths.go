package tile

import "math/bits"

// Length returns the number of decimal digits in v (0 has length 1).
func Length(v uint64) int {
	if v == 0 {
		return 1
	}
	n := 0
	for v > 0 {
		n++
		v /= 10
	}
	return n
}

// Pow10 returns 10^n. Callers are responsible for keeping n small enough
// not to overflow uint64 (n <= 19 is always safe).
func Pow10(n int) uint64 {
	r := uint64(1)
	for i := 0; i < n; i++ {
		r *= 10
	}
	return r
}

// squareAtLeast reports whether fmax*fmax >= bound, computed via a 128-bit
// multiply so it is exact even when fmax*fmax would overflow uint64 —
// which happens whenever MAX is near the type's max value.
func squareAtLeast(fmax, bound uint64) bool {
	hi, lo := bits.Mul64(fmax, fmax)
	if hi != 0 {
		return true
	}
	return lo >= bound
}

// square64 returns fmax*fmax, saturating at math.MaxUint64 on overflow.
func square64(fmax uint64) uint64 {
	hi, lo := bits.Mul64(fmax, fmax)
	if hi != 0 {
		return ^uint64(0)
	}
	return lo
}

// sizingForLength computes C_size (the fingerprint cache size) and PA
// (the sub-indexing constant) for an even product length L:
// C_size = 10^ceil(L/3), PA = 10^floor(L/3), or C_size when floor(L/3) < 3.
func sizingForLength(l int) (cSize, pa uint64) {
	ceilThird := (l + 2) / 3
	floorThird := l / 3
	cSize = Pow10(ceilThird)
	if floorThird < 3 {
		pa = cSize
	} else {
		pa = Pow10(floorThird)
	}
	return cSize, pa
}
