// Package checkpoint persists and resumes search progress to a
// line-oriented text file: the first line is "MIN MAX", every later line
// is "lmax_committed vampire_count_so_far pair_count_so_far" for one
// committed tile. Kept human-readable and appendable line-by-line
// as tiles are committed, rather than a binary block, so a stalled or
// killed run's progress can be inspected with a text editor.
package checkpoint

import (
	"bufio"
	"fmt"
	"os"

	"github.com/jaskij/helsing/helserr"
)

// Store wraps the checkpoint file's append-mode handle. A Store's Commit
// is always called from inside the worker pool's wmu critical section, so
// it needs no lock of its own.
type Store struct {
	f *os.File
}

// Open creates path if absent (writing the "MIN MAX" header line) or
// opens it for appending if present. min and max are only written on
// creation; an existing file's header is left untouched.
func Open(path string, min, max uint64) (*Store, error) {
	_, statErr := os.Stat(path)
	exists := statErr == nil

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint %s: %w", path, helserr.ErrIO)
	}

	s := &Store{f: f}
	if !exists {
		if _, err := fmt.Fprintf(f, "%d %d\n", min, max); err != nil {
			f.Close()
			return nil, fmt.Errorf("write checkpoint header: %w", helserr.ErrIO)
		}
	}
	return s, nil
}

// Commit appends one "lmax count pairs" line recording that every product
// up to and including lmax (the Lmax of the tile just committed) has been
// committed, with count total vampire numbers and pairs total fang
// pairs found so far.
func (s *Store) Commit(lmax, count, pairs uint64) error {
	if _, err := fmt.Fprintf(s.f, "%d %d %d\n", lmax, count, pairs); err != nil {
		return fmt.Errorf("write checkpoint line: %w", helserr.ErrIO)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("sync checkpoint: %w", helserr.ErrIO)
	}
	return nil
}

// Close closes the underlying file.
func (s *Store) Close() error {
	return s.f.Close()
}

// Resume describes where a driver should pick up after loading a prior
// checkpoint file.
type Resume struct {
	Min, Max uint64
	// LastLmax is the highest committed tile's lmax, or Min-1 if the
	// file has no progress lines yet.
	LastLmax uint64
	// Count is the vampire-number counter to resume from.
	Count uint64
	// Pairs is the fang-pair counter to resume from.
	Pairs uint64
}

// Load reads an existing checkpoint file and reports where to resume.
// Load does not hold the file open for further writes; callers that want
// to keep appending should call Open afterward.
func Load(path string) (Resume, error) {
	f, err := os.Open(path)
	if err != nil {
		return Resume{}, fmt.Errorf("open checkpoint %s: %w", path, helserr.ErrIO)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return Resume{}, fmt.Errorf("read checkpoint header: %w", helserr.ErrIO)
	}
	var r Resume
	if _, err := fmt.Sscanf(sc.Text(), "%d %d", &r.Min, &r.Max); err != nil {
		return Resume{}, fmt.Errorf("parse checkpoint header: %w", helserr.ErrInputParse)
	}
	r.LastLmax = r.Min - 1

	for sc.Scan() {
		var lmax, count, pairs uint64
		if _, err := fmt.Sscanf(sc.Text(), "%d %d %d", &lmax, &count, &pairs); err != nil {
			return Resume{}, fmt.Errorf("parse checkpoint line: %w", helserr.ErrInputParse)
		}
		r.LastLmax = lmax
		r.Count = count
		r.Pairs = pairs
	}
	if err := sc.Err(); err != nil {
		return Resume{}, fmt.Errorf("scan checkpoint: %w", helserr.ErrIO)
	}
	return r, nil
}
