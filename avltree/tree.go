// Package avltree implements the height-balanced product-dedup tree used
// by one worker's scratch state while processing a single tile.
//
// Nodes live in a growable arena and are addressed by Handle (an arena
// index) rather than by pointer, with a next-linked freelist for O(1)
// slot reuse — no per-node heap allocation, no GC pressure from a tile
// that inserts millions of products. A tree is never shared across
// goroutines; it is reset and reused by its owning worker between tiles
// via Reset, which truncates the arena instead of freeing individual
// nodes.
package avltree

import "github.com/jaskij/helsing/reslist"

// Handle is an arena index; 0 is the first arena slot. nilHandle (-1)
// represents an absent child.
type Handle int32

const nilHandle Handle = -1

type node struct {
	value  uint64
	pairs  uint8
	height int8
	left   Handle
	right  Handle
}

// Tree is an AVL tree keyed by product value, with each node additionally
// counting how many distinct fang pairs produced that value.
type Tree struct {
	nodes    []node
	freeHead Handle
	root     Handle
}

// New returns an empty tree ready for use.
func New() *Tree {
	return &Tree{freeHead: nilHandle, root: nilHandle}
}

// Reset clears the tree for reuse by a new tile, keeping the arena's
// backing storage so the next tile's inserts don't reallocate.
func (t *Tree) Reset() {
	t.nodes = t.nodes[:0]
	t.freeHead = nilHandle
	t.root = nilHandle
}

// Size reports the number of distinct values currently held.
func (t *Tree) Size() int { return len(t.nodes) - t.freeCount() }

func (t *Tree) freeCount() int {
	n := 0
	for h := t.freeHead; h != nilHandle; h = t.nodes[h].left {
		n++
	}
	return n
}

func (t *Tree) alloc(value uint64) Handle {
	if t.freeHead != nilHandle {
		h := t.freeHead
		n := &t.nodes[h]
		t.freeHead = n.left
		*n = node{value: value, pairs: 1, height: 1, left: nilHandle, right: nilHandle}
		return h
	}
	t.nodes = append(t.nodes, node{value: value, pairs: 1, height: 1, left: nilHandle, right: nilHandle})
	return Handle(len(t.nodes) - 1)
}

// free returns a node's slot to the freelist, reusing the left field as
// the next-free link (the node is dead, so its children pointers are no
// longer meaningful).
func (t *Tree) free(h Handle) {
	n := &t.nodes[h]
	n.left = t.freeHead
	t.freeHead = h
}

//go:inline
func (t *Tree) height(h Handle) int8 {
	if h == nilHandle {
		return 0
	}
	return t.nodes[h].height
}

func (t *Tree) updateHeight(h Handle) {
	n := &t.nodes[h]
	lh, rh := t.height(n.left), t.height(n.right)
	if lh > rh {
		n.height = lh + 1
	} else {
		n.height = rh + 1
	}
}

func (t *Tree) balanceFactor(h Handle) int {
	n := &t.nodes[h]
	return int(t.height(n.left)) - int(t.height(n.right))
}

func (t *Tree) rotateLeft(h Handle) Handle {
	n := &t.nodes[h]
	r := n.right
	rn := &t.nodes[r]
	n.right = rn.left
	rn.left = h
	t.updateHeight(h)
	t.updateHeight(r)
	return r
}

func (t *Tree) rotateRight(h Handle) Handle {
	n := &t.nodes[h]
	l := n.left
	ln := &t.nodes[l]
	n.left = ln.right
	ln.right = h
	t.updateHeight(h)
	t.updateHeight(l)
	return l
}

func (t *Tree) rebalance(h Handle) Handle {
	t.updateHeight(h)
	switch bf := t.balanceFactor(h); {
	case bf > 1:
		if t.balanceFactor(t.nodes[h].left) < 0 {
			t.nodes[h].left = t.rotateLeft(t.nodes[h].left)
		}
		return t.rotateRight(h)
	case bf < -1:
		if t.balanceFactor(t.nodes[h].right) > 0 {
			t.nodes[h].right = t.rotateRight(t.nodes[h].right)
		}
		return t.rotateLeft(h)
	default:
		return h
	}
}

// Insert records one fang pair producing value. A duplicate value merges
// by incrementing that node's fang-pair count rather than creating a new
// node.
func (t *Tree) Insert(value uint64) {
	t.root = t.insert(t.root, value)
}

func (t *Tree) insert(h Handle, value uint64) Handle {
	if h == nilHandle {
		return t.alloc(value)
	}
	n := &t.nodes[h]
	switch {
	case value == n.value:
		n.pairs++
		return h
	case value < n.value:
		// insert may grow the arena, so n must not be used after it.
		left := t.insert(n.left, value)
		t.nodes[h].left = left
	default:
		right := t.insert(n.right, value)
		t.nodes[h].right = right
	}
	return t.rebalance(h)
}

// Cleanup detaches and frees every node with value >= threshold, appending
// each detached node whose fang-pair count is >= minPairs to out. Nodes
// are visited right-to-left (descending value order); combined with
// reslist.List's reverse-of-insertion bucket storage, this yields an
// ascending flattened sequence — see reslist's doc comment for the other
// half of that contract. Threshold 0 drains the entire tree.
func (t *Tree) Cleanup(threshold uint64, out *reslist.List, minPairs uint8) {
	t.root = t.cleanup(t.root, threshold, out, minPairs)
}

func (t *Tree) cleanup(h Handle, threshold uint64, out *reslist.List, minPairs uint8) Handle {
	if h == nilHandle {
		return nilHandle
	}
	n := &t.nodes[h]
	if n.value >= threshold {
		// Every value in the right subtree exceeds n.value, so it all
		// qualifies unconditionally — drain it whole before this node.
		t.drainAll(n.right, out, minPairs)
		if n.pairs >= minPairs {
			out.Add(n.value)
		}
		left := n.left
		t.free(h)
		return t.cleanup(left, threshold, out, minPairs)
	}
	// n.value < threshold: this node and its whole left subtree are kept
	// (every left value is <= n.value < threshold). Only the right
	// subtree can still hold values >= threshold.
	n.right = t.cleanup(n.right, threshold, out, minPairs)
	return t.rebalance(h)
}

// drainAll unconditionally empties a subtree in descending value order.
func (t *Tree) drainAll(h Handle, out *reslist.List, minPairs uint8) {
	if h == nilHandle {
		return
	}
	n := &t.nodes[h]
	right, left := n.right, n.left
	t.drainAll(right, out, minPairs)
	if n.pairs >= minPairs {
		out.Add(n.value)
	}
	t.free(h)
	t.drainAll(left, out, minPairs)
}
