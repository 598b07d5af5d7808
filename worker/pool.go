// Package worker implements the two-mutex worker pool protocol: a fixed
// number of goroutines pulling tiles from a shared *tile.Matrix, running
// the kernel against each, and committing results back to the matrix in
// strictly ascending tile-index order.
//
// Every goroutine pulls tiles from the matrix's shared rmu-guarded cursor
// until none remain, rather than being handed a fixed sector up front —
// tile counts routinely exceed thread counts, so a dynamic pull keeps
// every goroutine busy even when some tiles take far longer than others.
//
// A write failure from any sink collaborator is fatal: Run stops every
// worker and returns the first such error rather than letting the rest
// of the range process against output or a checkpoint file it can no
// longer trust.
package worker

import (
	"fmt"
	"sync"

	"github.com/jaskij/helsing/checksum"
	"github.com/jaskij/helsing/control"
	"github.com/jaskij/helsing/fingerprint"
	"github.com/jaskij/helsing/helserr"
	"github.com/jaskij/helsing/kernel"
	"github.com/jaskij/helsing/tile"
)

// Counter accumulates a running total — distinct vampire numbers emitted
// (Sink.Counter) or fang pairs collected (Sink.PairCounter) — for the
// checkpoint writer and the end-of-run "Found: N" message.
// Only ever touched from inside the matrix's wmu critical section, so it
// needs no atomic operations despite being shared across workers.
type Counter struct {
	n uint64
}

func (c *Counter) Add(n int) {
	c.n += uint64(n)
}

func (c *Counter) Value() uint64 {
	return c.n
}

// Seed sets the counter's starting value, for resuming from a prior
// checkpoint's recorded count before any tiles are committed.
func (c *Counter) Seed(n uint64) {
	c.n = n
}

// Sink bundles the collaborators the commit loop drives once per
// committed tile, in order: pair emission, output encoder, checksum,
// counters, checkpoint. Any field may be a no-op implementation
// (output.New with CountPairs/CountVampires mode already no-ops on
// Value/Pair as appropriate; checksum.Noop no-ops Fold); Checkpoint may
// be nil to disable checkpointing entirely.
type Sink struct {
	EmitValue   func(v uint64) error
	EmitPair    func(multiplier, multiplicand, product uint64) error
	Checksum    checksum.Checksum
	Counter     *Counter
	PairCounter *Counter
	Checkpoint  func(lmax, count, pairs uint64) error
}

// Pool runs a fixed number of worker goroutines against one matrix.
type Pool struct {
	Threads int
	Cache64 *fingerprint.Cache[fingerprint.Wide]
	Cache32 *fingerprint.Cache[fingerprint.Narrow]
	// UseNarrow selects the 32-bit narrow fingerprint kernel
	// instantiation over the default 64-bit wide one.
	UseNarrow    bool
	MinFangPairs uint8
}

// Run drains m's tiles using p.Threads goroutines, invoking sink's
// collaborators for every value or pair the kernel confirms, in
// ascending tile-commit order. Run returns once every tile has been
// committed, control.Stopped() causes every worker to exit early (in
// that case the matrix's nextCommit will be less than len(Tiles)), or
// one of sink's collaborators returns an error — in the latter case Run
// calls control.Stop() itself and returns the first such error, wrapped
// in helserr.ErrIO, once every in-flight tile has finished committing.
func Run(m *tile.Matrix, p Pool, sink Sink) error {
	var (
		mu       sync.Mutex
		firstErr error
	)
	recordErr := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			control.Stop()
		}
		mu.Unlock()
	}

	var wg sync.WaitGroup
	threads := p.Threads
	if threads < 1 {
		threads = 1
	}
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runWorker(m, p, sink, recordErr)
		}()
	}
	wg.Wait()
	return firstErr
}

func runWorker(m *tile.Matrix, p Pool, sink Sink, recordErr func(error)) {
	scratch := kernel.NewScratch()
	for {
		if control.Stopped() {
			return
		}
		idx, t, ok := m.AcquireTile()
		if !ok {
			return
		}

		scratch.Reset()
		params := kernel.Params{
			Pmin:         t.Lmin,
			Pmax:         t.Lmax,
			Fmax:         m.Fmax,
			PA:           m.PA,
			MinFangPairs: p.MinFangPairs,
			CollectPairs: sink.EmitPair != nil,
		}

		if p.UseNarrow {
			kernel.Run(params, p.Cache32, scratch)
		} else {
			kernel.Run(params, p.Cache64, scratch)
		}

		result, pairs := scratch.Pending, scratch.Pairs
		m.Commit(idx, result, pairs, func(committed tile.Tile) {
			// Pairs are flushed here, under the commit mutex, rather
			// than from inside the kernel's hot loop: multiple workers
			// run kernel.Run concurrently on different tiles, and
			// onCommit is the one place a tile's output is guaranteed
			// to run with no other tile's output interleaved. Errors
			// from any collaborator are recorded here too, for the
			// same reason — recordErr's own lock aside, this keeps
			// every error that can occur for this tile on one path.
			for _, pr := range committed.Pairs {
				if sink.EmitPair != nil {
					if err := sink.EmitPair(pr.Multiplier, pr.Multiplicand, pr.Product); err != nil {
						recordErr(fmt.Errorf("emit pair: %w", helserr.ErrIO))
					}
				}
			}
			if sink.PairCounter != nil {
				sink.PairCounter.Add(len(committed.Pairs))
			}
			committed.Result.Each(func(v uint64) {
				if sink.EmitValue != nil {
					if err := sink.EmitValue(v); err != nil {
						recordErr(fmt.Errorf("emit value: %w", helserr.ErrIO))
					}
				}
				if sink.Checksum != nil {
					sink.Checksum.Fold(v)
				}
			})
			if sink.Counter != nil {
				sink.Counter.Add(committed.Result.Size())
			}
			if sink.Checkpoint != nil {
				var cnt, pairCnt uint64
				if sink.Counter != nil {
					cnt = sink.Counter.Value()
				}
				if sink.PairCounter != nil {
					pairCnt = sink.PairCounter.Value()
				}
				if err := sink.Checkpoint(committed.Lmax, cnt, pairCnt); err != nil {
					recordErr(err)
				}
			}
		})
	}
}
