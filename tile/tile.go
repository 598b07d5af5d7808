package tile

import (
	"github.com/jaskij/helsing/kernel"
	"github.com/jaskij/helsing/reslist"
)

// Tile is a contiguous half-open-in-spirit, closed-in-practice product
// subrange plus its pending/complete result.
//
// Result is nil while the tile has not yet been handed its worker's
// result, and again after Matrix.Commit's ordered loop has emitted it and
// dropped the reference. A worker that finishes a tile with zero confirmed vampire
// numbers still stores a non-nil, empty *reslist.List: "processed,
// nothing found" and "not processed yet" must never be the same value.
//
// Pairs holds the raw, undeduplicated fang pairs collected alongside
// Result when the run's mode needs them; nil otherwise.
type Tile struct {
	Lmin, Lmax uint64
	Result     *reslist.List
	Pairs      []kernel.Pair
}
