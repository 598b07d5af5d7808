// Package checksum implements the optional result-checksum collaborator
// a run can fold its emitted values into, for comparing two runs over the
// same range without diffing their full output. The kernel, tree, and
// tile packages have no notion of checksumming at all — they only ever
// see a Checksum through the worker pool's commit loop — so this
// package, and the no-op default main wires in when checksumming is
// disabled, live entirely on their own.
package checksum

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// Checksum folds each distinct emitted vampire number into a running
// digest. Fold is called once per distinct value at commit time (never
// once per fang pair — a value with three fang pairs folds once), in
// ascending value order, so Sum is deterministic across thread counts.
type Checksum interface {
	Fold(v uint64)
	Sum() [32]byte
}

// Noop is wired in when checksumming is disabled. Its Fold is a true
// no-op, so enabling/disabling checksumming costs nothing on the commit
// path beyond one interface-method dispatch — and that dispatch happens
// in the commit loop, never in the kernel's hot inner loop.
type Noop struct{}

func (Noop) Fold(uint64)   {}
func (Noop) Sum() [32]byte { return [32]byte{} }

// Blake2b folds each value's big-endian bytes into a running blake2b-256
// hash. It is the default concrete collaborator when checksumming is
// requested via --checksum.
type Blake2b struct {
	h hash.Hash
}

// NewBlake2b constructs a fresh Blake2b checksum collaborator.
func NewBlake2b() *Blake2b {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only errors on a bad key length, and we pass
		// nil; this is unreachable.
		panic(err)
	}
	return &Blake2b{h: h}
}

func (b *Blake2b) Fold(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, _ = b.h.Write(buf[:])
}

func (b *Blake2b) Sum() [32]byte {
	var out [32]byte
	copy(out[:], b.h.Sum(nil))
	return out
}
