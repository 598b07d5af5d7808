// Package reslist implements an ordered, append-only result handle: a
// singly-linked sequence of fixed-capacity buckets holding the vampire
// numbers confirmed within one tile.
//
// avltree.Tree.Cleanup feeds this list in descending value order (it
// visits the tree right-to-left). A bucket stores whatever is Add-ed to
// it in forward slot order, which means a single bucket's contents are
// also descending internally; Each reads a bucket back-to-front to
// recover ascending order within it. Buckets themselves are prepended to
// the list head as they fill, so the head is always the most-recently
// created bucket — the one holding the smallest values, since Cleanup's
// draining threshold only decreases as the kernel's outer loop proceeds.
// Walking the list head-to-tail therefore visits bucket value-bands from
// smallest to largest, and each band reads ascending internally: the
// flattened sequence is globally ascending, satisfying the tile-ordering
// invariant without any sort step.
package reslist

// BucketCapacity bounds how many values one bucket node holds before a
// new one is linked in ahead of it.
const BucketCapacity = 100

type bucket struct {
	values [BucketCapacity]uint64
	n      int
	next   *bucket
}

// List is a worker-local, single-owner result handle. It is never shared
// across goroutines while being written; ownership transfers to a Tile
// exactly once, at commit time.
type List struct {
	head *bucket
	size int
}

// New returns an empty result list.
func New() *List {
	return &List{}
}

// Add appends a confirmed vampire number. Values must be added in the
// descending order avltree.Tree.Cleanup produces; see the package doc for
// why that yields ascending output.
func (l *List) Add(v uint64) {
	if l.head == nil || l.head.n == BucketCapacity {
		l.head = &bucket{next: l.head}
	}
	l.head.values[l.head.n] = v
	l.head.n++
	l.size++
}

// Size reports the number of values held.
func (l *List) Size() int { return l.size }

// Each calls fn once per value, in ascending order.
func (l *List) Each(fn func(uint64)) {
	for b := l.head; b != nil; b = b.next {
		for i := b.n - 1; i >= 0; i-- {
			fn(b.values[i])
		}
	}
}
