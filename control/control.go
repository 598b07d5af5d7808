// control.go — cooperative shutdown signaling for the worker pool
// ============================================================================
// SYSTEM CONTROL ORCHESTRATION
// ============================================================================
//
// A single atomic flag polled by many goroutines with no mutex — cheap
// enough to check between every tile without contention. Backed by
// atomic.Bool rather than a raw uint32 write/read pair, since Stop() and
// Stopped() run on different goroutines and need a defined happens-before
// edge, not just eventual visibility.
//
// Threading model:
//   • main's signal handler calls Stop() on SIGINT/SIGTERM
//   • worker goroutines poll Stopped() between tiles
//   • a worker that has already started a tile finishes it and commits
//     before honoring the stop request, so the matrix's ordered-commit
//     invariant is never violated by an early exit

package control

import "sync/atomic"

var stop atomic.Bool

// Stop requests that every worker finish its in-flight tile and exit.
// Safe to call from a signal handler.
func Stop() {
	stop.Store(true)
}

// Stopped reports whether shutdown has been requested.
func Stopped() bool {
	return stop.Load()
}

// Reset clears the shutdown flag. Used between independent driver runs,
// e.g. in tests.
func Reset() {
	stop.Store(false)
}
