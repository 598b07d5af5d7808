package kernel

import (
	"sort"
	"testing"

	"github.com/jaskij/helsing/fingerprint"
)

func runRange(t *testing.T, pmin, pmax, fmax, pa uint64) []uint64 {
	t.Helper()
	cache := fingerprint.New(fingerprint.FromWide, pa)
	scratch := NewScratch()
	Run(Params{Pmin: pmin, Pmax: pmax, Fmax: fmax, PA: pa, MinFangPairs: 1}, cache, scratch)

	var got []uint64
	scratch.Pending.Each(func(v uint64) { got = append(got, v) })
	return got
}

func TestFourDigitVampireNumbers(t *testing.T) {
	// The well-known set of 4-digit vampire numbers: 1260, 1395, 1435,
	// 1530, 1827, 2187, 6880. Each has one fang pair; the kernel only
	// tries k <= m, so 6880 = 86x80 is not found a second time as 80x86.
	got := runRange(t, 1000, 9999, 100, 100)

	want := []uint64{1260, 1395, 1435, 1530, 1827, 2187, 6880}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFourDigitVampiresBelowTwoThousand(t *testing.T) {
	got := runRange(t, 1000, 1999, 100, 100)
	want := []uint64{1260, 1395, 1435, 1530, 1827}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNoTrailingZeroPairAccepted(t *testing.T) {
	// 1000 = 10 x 100 is not length-matched and both candidate fangs
	// with trailing zeros must never produce a hit; more directly,
	// 126000 = 210 x 600 would fail the "not both end in zero" rule.
	// Exercise this by checking that every emitted product in a wider
	// range has at most one fang ending in zero.
	cache := fingerprint.New(fingerprint.FromWide, 100)
	scratch := NewScratch()
	Run(Params{
		Pmin: 100000, Pmax: 999999, Fmax: 1000, PA: 100, MinFangPairs: 1,
		CollectPairs: true,
	}, cache, scratch)

	for _, pr := range scratch.Pairs {
		m, k, p := pr.Multiplier, pr.Multiplicand, pr.Product
		if m*k != p {
			t.Errorf("pair (%d, %d) product %d, want %d", m, k, m*k, p)
		}
		if m%10 == 0 && k%10 == 0 {
			t.Errorf("pair (%d, %d) has both fangs trailing-zero", m, k)
		}
	}
}

func TestSixDigitVampireCount(t *testing.T) {
	got := runRange(t, 100000, 999999, 1000, 100)
	if len(got) != 148 {
		t.Fatalf("got %d distinct vampire numbers, want 148", len(got))
	}
	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i] < got[j] }) {
		t.Fatalf("result not ascending: %v", got)
	}
}
