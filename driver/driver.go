// Package driver walks the even-decimal-length subranges covering a
// user-supplied [min, max] interval, standing up one tile.Matrix and
// worker.Pool per subrange and tearing them down before advancing.
// Odd-length subranges are stepped over silently: no even-length fang
// pair can ever produce an odd-length product.
package driver

import (
	"fmt"

	"github.com/jaskij/helsing/checkpoint"
	"github.com/jaskij/helsing/debug"
	"github.com/jaskij/helsing/fingerprint"
	"github.com/jaskij/helsing/tile"
	"github.com/jaskij/helsing/worker"
)

// Config bundles the knobs the CLI/config layer resolves before a run
// starts. Sink's collaborators (output encoder, checksum, checkpoint
// store) are constructed by main and passed down as plain values, never
// as package-level globals.
type Config struct {
	Min, Max     uint64
	Threads      int
	Policy       tile.TileSizePolicy
	MaxTileSize  uint64
	MinFangPairs uint8
	UseNarrow    bool
	Checkpoint   *checkpoint.Store
}

// Totals reports the two distinct quantities a run accumulates: how many
// distinct vampire numbers were found (after tree dedup) and how many
// raw fang pairs were confirmed (before dedup — a number with several
// fang pairs contributes one to Pairs per pair).
type Totals struct {
	Vampires uint64
	Pairs    uint64
}

// Run walks every even-length subrange of [cfg.Min, cfg.Max], processing
// each with a fresh matrix and worker pool, until the range is exhausted,
// control.Stopped() is observed between subranges, or a sink collaborator
// fails. It returns the totals accumulated up to that point, plus a
// non-nil error if a write failure cut the run short. Callers that want
// to resume from a prior checkpoint should seed sink.Counter/
// sink.PairCounter before calling Run.
func Run(cfg Config, sink worker.Sink) (Totals, error) {
	counter := sink.Counter
	if counter == nil {
		counter = &worker.Counter{}
		sink.Counter = counter
	}
	pairCounter := sink.PairCounter
	if pairCounter == nil {
		pairCounter = &worker.Counter{}
		sink.PairCounter = pairCounter
	}

	lmin := cfg.Min
	for lmin <= cfg.Max {
		length := tile.Length(lmin)
		if length%2 != 0 {
			lmin = tile.Pow10(length)
			continue
		}

		lmax := cfg.Max
		if length < 20 && tile.Pow10(length)-1 < cfg.Max {
			lmax = tile.Pow10(length) - 1
		}

		debug.DropMessage("SEARCH", fmt.Sprintf("Checking interval: [%d, %d]", lmin, lmax))

		m := tile.NewMatrix(lmin, lmax, cfg.Threads, cfg.Policy, cfg.MaxTileSize)

		pool := worker.Pool{
			Threads:      cfg.Threads,
			UseNarrow:    cfg.UseNarrow,
			MinFangPairs: cfg.MinFangPairs,
		}
		if cfg.UseNarrow {
			pool.Cache32 = fingerprint.New(fingerprint.FromNarrow, m.CacheSize)
		} else {
			pool.Cache64 = fingerprint.New(fingerprint.FromWide, m.CacheSize)
		}

		runSink := sink
		if cfg.Checkpoint != nil {
			runSink.Checkpoint = func(committedLmax, count, pairs uint64) error {
				return cfg.Checkpoint.Commit(committedLmax, count, pairs)
			}
		}

		if err := worker.Run(m, pool, runSink); err != nil {
			return Totals{Vampires: counter.Value(), Pairs: pairCounter.Value()}, err
		}

		if !m.Done() {
			// control.Stopped() cut the run short mid-matrix; stop
			// walking further subranges too.
			break
		}

		if lmax == cfg.Max {
			break
		}
		lmin = lmax + 1
	}

	return Totals{Vampires: counter.Value(), Pairs: pairCounter.Value()}, nil
}
