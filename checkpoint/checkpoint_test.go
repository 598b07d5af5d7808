package checkpoint

import (
	"path/filepath"
	"testing"
)

func TestOpenWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ckpt.txt")

	s, err := Open(path, 1000, 9999)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Commit(1999, 0, 0); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(path, 5555, 6666)
	if err != nil {
		t.Fatalf("re-Open: %v", err)
	}
	if err := s2.Commit(2999, 3, 4); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	s2.Close()

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Min != 1000 || r.Max != 9999 {
		t.Errorf("header = (%d, %d), want (1000, 9999) — re-Open must not overwrite it", r.Min, r.Max)
	}
	if r.LastLmax != 2999 || r.Count != 3 || r.Pairs != 4 {
		t.Errorf("resume = (%d, %d, %d), want (2999, 3, 4)", r.LastLmax, r.Count, r.Pairs)
	}
}

func TestLoadWithNoProgressLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ckpt.txt")

	s, err := Open(path, 1000, 9999)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Close()

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.LastLmax != 999 {
		t.Errorf("LastLmax = %d, want 999 (Min-1)", r.LastLmax)
	}
	if r.Count != 0 {
		t.Errorf("Count = %d, want 0", r.Count)
	}
}
