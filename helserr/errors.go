// Package helserr defines the search engine's error taxonomy: a small set
// of sentinel errors distinguishing why a run failed, wrapped with
// fmt.Errorf("%w", ...) context where a specific bad value helps the
// stderr message. Surfaced by main through debug.DropError and mapped to
// the process's exit code.
//
// There is no error propagation inside the kernel, tree, or tile
// packages — those cannot fail. Every helserr value originates at a
// boundary: argument parsing, capacity checks against the chosen
// fingerprint encoding, or file I/O for checkpoints and output.
package helserr

import "errors"

// Sentinel errors, one per taxonomy class. Wrap with fmt.Errorf("...: %w",
// ErrInputParse) to attach the offending value; callers that only need the
// class can still match with errors.Is.
var (
	// ErrInputParse: an argument isn't a valid decimal integer, doesn't
	// fit in a uint64, or names an unknown setting value.
	ErrInputParse = errors.New("input parse error")

	// ErrInputRange: MIN > MAX.
	ErrInputRange = errors.New("input range error")

	// ErrCapacityExceeded: MAX exceeds the safety limit for the chosen
	// fingerprint encoding (wide: 20 digits, narrow: 10 digits).
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrAllocation: out-of-memory or an arena that could not grow.
	ErrAllocation = errors.New("allocation failure")

	// ErrIO: a write failed, on stdout/output encoder or on the
	// checkpoint file.
	ErrIO = errors.New("io error")
)

// ExitCode maps an error to the process exit code its taxonomy class is
// assigned, or 1 for any error not wrapping one of the sentinels above
// (and 0 for a nil error).
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInputParse), errors.Is(err, ErrInputRange):
		return 2
	case errors.Is(err, ErrCapacityExceeded):
		return 3
	default:
		return 1
	}
}
