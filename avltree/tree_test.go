package avltree

import (
	"testing"

	"github.com/jaskij/helsing/reslist"
)

func collect(l *reslist.List) []uint64 {
	var out []uint64
	l.Each(func(v uint64) { out = append(out, v) })
	return out
}

func TestInsertMergesDuplicates(t *testing.T) {
	tr := New()
	tr.Insert(10)
	tr.Insert(10)
	tr.Insert(10)
	if got := tr.Size(); got != 1 {
		t.Fatalf("Size() = %d, want 1", got)
	}

	out := reslist.New()
	tr.Cleanup(0, out, 3)
	got := collect(out)
	if len(got) != 1 || got[0] != 10 {
		t.Fatalf("Cleanup with minPairs=3 = %v, want [10]", got)
	}
}

func TestCleanupMinFangPairsFilter(t *testing.T) {
	tr := New()
	tr.Insert(5) // one pair
	tr.Insert(7)
	tr.Insert(7) // two pairs

	out := reslist.New()
	tr.Cleanup(0, out, 2)
	got := collect(out)
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("Cleanup with minPairs=2 = %v, want [7]", got)
	}
}

func TestCleanupAscendingOrder(t *testing.T) {
	tr := New()
	values := []uint64{50, 10, 30, 20, 40, 5, 45}
	for _, v := range values {
		tr.Insert(v)
	}

	out := reslist.New()
	tr.Cleanup(0, out, 1)
	got := collect(out)

	want := []uint64{5, 10, 20, 30, 40, 45, 50}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestCleanupThresholdPartialDrain(t *testing.T) {
	tr := New()
	for _, v := range []uint64{1, 5, 10, 15, 20, 25} {
		tr.Insert(v)
	}

	out := reslist.New()
	tr.Cleanup(15, out, 1)
	got := collect(out)
	want := []uint64{15, 20, 25}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	if tr.Size() != 3 {
		t.Fatalf("tree should still hold the 3 values below threshold, got size %d", tr.Size())
	}

	tr.Cleanup(0, out, 1)
	got = collect(out)
	want = []uint64{1, 5, 10, 15, 20, 25}
	if len(got) != len(want) {
		t.Fatalf("full drain got %v, want %v", got, want)
	}
}

func TestResetReusesArena(t *testing.T) {
	tr := New()
	for i := uint64(0); i < 50; i++ {
		tr.Insert(i)
	}
	tr.Reset()
	if tr.Size() != 0 {
		t.Fatalf("Size() after Reset = %d, want 0", tr.Size())
	}
	tr.Insert(1)
	if tr.Size() != 1 {
		t.Fatalf("Size() after reuse = %d, want 1", tr.Size())
	}
}
