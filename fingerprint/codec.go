// Package fingerprint implements the digit-multiset codec and its cache.
//
// A fingerprint packs the nonzero-digit multiset of a decimal integer into
// a single machine word such that two fingerprints can be compared for
// multiset equality with a handful of additions instead of per-digit
// modulo/division. Two encodings are provided — Wide (one 7-bit field per
// digit 1..9, packed into a uint64) and Narrow (a base-11 positional number
// packed into a uint32) — selected by the caller at cache-construction time
// and carried through the kernel as a type parameter so the hot loop never
// branches on which encoding is active.
package fingerprint

// Value is the set of fingerprint representations the kernel can be
// instantiated over. Arithmetic composition is plain integer addition for
// both: Wide never carries between 7-bit fields within the operating
// range, and Narrow never carries between base-11 digits for the same
// reason (see codec_test.go for the saturation check).
type Value interface {
	~uint64 | ~uint32
}

// Wide is the 64-bit encoding: one 7-bit field per nonzero digit 1..9.
type Wide uint64

// Narrow is the 32-bit encoding: nine base-11 digits, one count per
// nonzero digit 1..9.
type Narrow uint32

// NarrowBase is the positional base used by the Narrow encoding,
// B = floor(2^(32/9)) = 11.
const NarrowBase = 11

// FromWide computes the Wide fingerprint of n by decomposing it into
// decimal digits and accumulating one 7-bit field per nonzero digit.
//
//go:inline
func FromWide(n uint64) Wide {
	var f Wide
	for n > 0 {
		d := n % 10
		n /= 10
		if d != 0 {
			f += Wide(1) << ((d - 1) * 7)
		}
	}
	return f
}

// FromNarrow computes the Narrow fingerprint of n by tallying per-digit
// counts and packing them as base-11 digits.
//
//go:inline
func FromNarrow(n uint64) Narrow {
	var cnt [10]uint32
	for n > 0 {
		d := n % 10
		n /= 10
		cnt[d]++
	}
	var f Narrow
	mul := Narrow(1)
	for d := 1; d <= 9; d++ {
		f += Narrow(cnt[d]) * mul
		mul *= NarrowBase
	}
	return f
}

// SaturatedWide and SaturatedNarrow report whether any digit field of n's
// fingerprint would overflow during accumulation — i.e. whether any
// nonzero digit of n occurs more than B-1 times, where B is 128 for Wide
// and NarrowBase for Narrow. Used only
// by tests; the operating ranges this engine targets (product length
// L <= 20) never come close to that many repeats of a single digit.
func SaturatedWide(n uint64) bool {
	var cnt [10]int
	for n > 0 {
		cnt[n%10]++
		n /= 10
	}
	for d := 1; d <= 9; d++ {
		if cnt[d] > 127 {
			return true
		}
	}
	return false
}

func SaturatedNarrow(n uint64) bool {
	var cnt [10]int
	for n > 0 {
		cnt[n%10]++
		n /= 10
	}
	for d := 1; d <= 9; d++ {
		if cnt[d] > NarrowBase-1 {
			return true
		}
	}
	return false
}
