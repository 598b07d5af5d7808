// Package kernel implements the fang-enumeration kernel: the per-length
// inner loop that walks candidate multiplier/multiplicand pairs for one
// tile's product subrange, applies the mod-9 and trailing-zero filters,
// and feeds confirmed fang pairs into a worker's scratch AVL tree.
//
// This is the hot path of the whole engine: a tight, allocation-free
// numeric loop with incremental digit-index bookkeeping. It has no
// third-party-library surface — a digit-multiset sieve over a custom
// fixed-width codec isn't something any general-purpose library offers —
// so it stays on the standard library by necessity, not by default.
package kernel

import (
	"github.com/jaskij/helsing/avltree"
	"github.com/jaskij/helsing/fingerprint"
	"github.com/jaskij/helsing/reslist"
)

// Pair is one confirmed fang pair, collected in the kernel's native
// descending-m/ascending-k emission order rather than the tree's
// ascending-value order. This is the raw-pair shape the count-pairs and
// dump-pairs output modes read: those modes have no use for value dedup
// or ascending order, so a product with several fang pairs contributes
// one Pair per pair instead of being collapsed to one value.
type Pair struct {
	Multiplier, Multiplicand, Product uint64
}

// Scratch is one worker's per-tile working state: an AVL tree accumulating
// in-flight products, the result list that tree drains into, and the raw
// pairs collected alongside it when CollectPairs is set. It is reused
// across tiles via Reset, never shared across goroutines.
type Scratch struct {
	Tree    *avltree.Tree
	Pending *reslist.List
	Pairs   []Pair
}

// NewScratch returns an empty scratch state.
func NewScratch() *Scratch {
	return &Scratch{Tree: avltree.New(), Pending: reslist.New()}
}

// Reset prepares the scratch state for a new tile. The tree's backing
// arena is kept (truncated, not freed); the pending list and pair slice
// are replaced since their previous contents were just handed off to a
// tile.
func (s *Scratch) Reset() {
	s.Tree.Reset()
	s.Pending = reslist.New()
	s.Pairs = nil
}

// Params bounds one kernel run: a half-open-in-spirit, closed-in-practice
// product subrange [Pmin, Pmax] of a single even decimal length, the
// largest admissible fang Fmax for that length, and the sub-indexing
// constant PA that splits an L-digit value into thirds for cache
// lookups.
type Params struct {
	Pmin, Pmax   uint64
	Fmax         uint64
	PA           uint64
	MinFangPairs uint8

	// CollectPairs, if set, appends every confirmed fang pair to
	// scratch.Pairs as it is found. The tree is fed either way (cleanup
	// still runs, to bound memory); this only controls whether the raw,
	// undeduplicated pairs are also kept for the caller to read back
	// from scratch.Pairs once Run returns.
	CollectPairs bool
}

// Run enumerates every valid fang pair in p.Pmin..p.Pmax and inserts each
// resulting product into scratch.Tree, draining sealed nodes into
// scratch.Pending as it goes. F is the fingerprint encoding the caller's
// Cache was built with — Wide or Narrow — instantiated once per matrix
// so the comparison in the hot inner loop never branches on which
// encoding is active.
func Run[F fingerprint.Value](p Params, cache *fingerprint.Cache[F], scratch *Scratch) {
	if p.Pmin > p.Pmax || p.Fmax == 0 {
		scratch.Tree.Cleanup(0, scratch.Pending, p.MinFangPairs)
		return
	}

	ms := ceilSqrt(p.Pmin)
	if ms == 0 {
		ms = 1
	}
	Ms := floorSqrt(p.Pmax)
	pa := p.PA
	paSq := pa * pa

	for m := p.Fmax; m >= ms; m-- {
		runOuter(m, Ms, p, cache, scratch, pa, paSq)
		if m == ms {
			break
		}
	}

	scratch.Tree.Cleanup(0, scratch.Pending, p.MinFangPairs)
}

func runOuter[F fingerprint.Value](m, Ms uint64, p Params, cache *fingerprint.Cache[F], scratch *Scratch, pa, paSq uint64) {
	if m%9 == 1 {
		return
	}

	var kmax uint64
	if m >= Ms {
		kmax = p.Pmax / m
	} else {
		kmax = m
	}
	kmin := ceilDiv(p.Pmin, m)
	for kmin <= kmax && (m+kmin)%9 != (m*kmin)%9 {
		kmin++
	}

	// m*kmax is the largest product reachable at this multiplier,
	// whether or not any candidate k actually survived the mod-9 pair
	// filter above — cleanup below needs this bound regardless, so it
	// is computed unconditionally.
	boundary := m * kmax

	if kmin <= kmax {
		enumerate(m, kmin, kmax, p, cache, scratch, pa, paSq)
	}

	if m < Ms && m%10 == 0 {
		scratch.Tree.Cleanup(boundary, scratch.Pending, p.MinFangPairs)
	}
}

func enumerate[F fingerprint.Value](m, kmin, kmax uint64, p Params, cache *fingerprint.Cache[F], scratch *Scratch, pa, paSq uint64) {
	prod := m * kmin
	klo := kmin % pa
	khi := kmin / pa
	plo := prod % pa
	phi1 := (prod / pa) % pa
	phi2 := prod / paSq

	step := 9 * m
	stepLo := step % pa
	stepHi := step / pa

	fm := cache.Lookup(m)

	for k := kmin; k <= kmax; k += 9 {
		ffang := fm + cache.Lookup(khi) + cache.Lookup(klo)
		fprod := cache.Lookup(phi2) + cache.Lookup(phi1) + cache.Lookup(plo)

		if ffang == fprod && !(m%10 == 0 && k%10 == 0) {
			scratch.Tree.Insert(prod)
			if p.CollectPairs {
				scratch.Pairs = append(scratch.Pairs, Pair{Multiplier: m, Multiplicand: k, Product: prod})
			}
		}

		klo += 9
		if klo >= pa {
			klo -= pa
			khi++
		}

		carry := uint64(0)
		plo += stepLo
		if plo >= pa {
			plo -= pa
			carry = 1
		}
		phi1 += stepHi + carry
		for phi1 >= pa {
			phi1 -= pa
			phi2++
		}

		prod += step
	}
}
