package reslist

import "testing"

func TestAddWithinSingleBucketReadsAscending(t *testing.T) {
	l := New()
	// Simulate avltree.Cleanup's descending emission order.
	for _, v := range []uint64{50, 40, 30, 20, 10} {
		l.Add(v)
	}
	var got []uint64
	l.Each(func(v uint64) { got = append(got, v) })

	want := []uint64{10, 20, 30, 40, 50}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestAddAcrossBucketBoundary(t *testing.T) {
	l := New()
	total := BucketCapacity + 3
	// Descending overall, as Cleanup would emit across multiple cleanup
	// calls whose thresholds decrease over the kernel's run.
	for i := total; i >= 1; i-- {
		l.Add(uint64(i))
	}
	if l.Size() != total {
		t.Fatalf("Size() = %d, want %d", l.Size(), total)
	}

	var got []uint64
	l.Each(func(v uint64) { got = append(got, v) })
	for i := 1; i <= total; i++ {
		if got[i-1] != uint64(i) {
			t.Fatalf("got[%d] = %d, want %d", i-1, got[i-1], i)
		}
	}
}

func TestEmptyList(t *testing.T) {
	l := New()
	if l.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", l.Size())
	}
	called := false
	l.Each(func(uint64) { called = true })
	if called {
		t.Fatal("Each should not invoke fn on an empty list")
	}
}
