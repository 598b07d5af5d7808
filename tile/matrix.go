package tile

import (
	"sync"

	"github.com/jaskij/helsing/kernel"
	"github.com/jaskij/helsing/reslist"
)

// TileSizePolicy selects how a matrix divides its range into tiles.
type TileSizePolicy int

const (
	// AutoTileSize divides the range into roughly 4*threads+2 tiles,
	// capped at MaxTileSize.
	AutoTileSize TileSizePolicy = iota
	// SingleTile processes the whole range as one tile.
	SingleTile
)

// DefaultMaxTileSize caps how large a single auto-sized tile can grow:
// 10^11 - 1.
const DefaultMaxTileSize uint64 = 99_999_999_999

// Matrix is the ordered array of tiles covering one even-digit-length
// subrange, plus the two-mutex bookkeeping the worker pool's assign/
// commit protocol runs tiles through.
//
// Invariant, true at every observation point: 0 <= nextCommit <=
// nextAssign <= len(Tiles). Tiles[i].Result != nil iff i < nextAssign,
// tile i has been processed by some worker, and i >= nextCommit (the
// commit loop drops a tile's Result once it has been emitted).
type Matrix struct {
	Tiles     []Tile
	Fmax      uint64 // largest admissible fang for this matrix's length
	PA        uint64
	CacheSize uint64

	rmu        sync.Mutex
	wmu        sync.Mutex
	nextAssign int
	nextCommit int
}

// NewMatrix builds the tile array covering [lmin, lmax], where lmax has
// already been normalized by the driver to the end of a single even
// decimal length. threads and policy determine the tile size;
// maxTileSize of 0 selects DefaultMaxTileSize.
func NewMatrix(lmin, lmax uint64, threads int, policy TileSizePolicy, maxTileSize uint64) *Matrix {
	if maxTileSize == 0 {
		maxTileSize = DefaultMaxTileSize
	}

	l := Length(lmax)
	fangLen := l / 2
	fmax := Pow10(fangLen)
	cSize, pa := sizingForLength(l)

	if !squareAtLeast(fmax, lmax) {
		if sq := square64(fmax); sq < lmax {
			lmax = sq
		}
	}

	m := &Matrix{Fmax: fmax, PA: pa, CacheSize: cSize}

	span := lmax - lmin + 1
	var tileSize uint64
	switch policy {
	case SingleTile:
		tileSize = span
	default:
		denom := uint64(4*threads + 2)
		tileSize = span / denom
		if tileSize < 1 {
			tileSize = 1
		}
		if tileSize > maxTileSize {
			tileSize = maxTileSize
		}
	}

	for start := lmin; start <= lmax; {
		end := start + tileSize - 1
		if end > lmax || end < start {
			end = lmax
		}
		m.Tiles = append(m.Tiles, Tile{Lmin: start, Lmax: end})
		if end == lmax {
			break
		}
		start = end + 1
	}

	return m
}

// AcquireTile hands the next unassigned tile to a worker, or reports
// false once every tile has been assigned.
func (m *Matrix) AcquireTile() (idx int, t Tile, ok bool) {
	m.rmu.Lock()
	defer m.rmu.Unlock()
	if m.nextAssign >= len(m.Tiles) {
		return 0, Tile{}, false
	}
	idx = m.nextAssign
	t = m.Tiles[idx]
	m.nextAssign++
	return idx, t, true
}

// Commit stores result and pairs for tile idx (transferring ownership
// from the worker) and then drains every contiguously-ready tile
// starting at nextCommit, in ascending index order, invoking onCommit
// for each before dropping its result/pairs references. onCommit runs
// under the commit mutex, so the output stream, checksum, counter, and
// checkpoint writer it touches never need locks of their own — this is
// also why raw pair emission is driven from here rather than from
// inside the kernel's per-tile hot loop, where multiple workers run
// concurrently with no shared lock at all.
func (m *Matrix) Commit(idx int, result *reslist.List, pairs []kernel.Pair, onCommit func(Tile)) {
	m.wmu.Lock()
	defer m.wmu.Unlock()
	m.Tiles[idx].Result = result
	m.Tiles[idx].Pairs = pairs
	for m.nextCommit < len(m.Tiles) && m.Tiles[m.nextCommit].Result != nil {
		onCommit(m.Tiles[m.nextCommit])
		m.Tiles[m.nextCommit].Result = nil
		m.Tiles[m.nextCommit].Pairs = nil
		m.nextCommit++
	}
}

// Done reports whether every tile has been committed.
func (m *Matrix) Done() bool {
	m.wmu.Lock()
	defer m.wmu.Unlock()
	return m.nextCommit >= len(m.Tiles)
}
