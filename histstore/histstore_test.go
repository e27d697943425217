package histstore

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStoreAppendAndLoadOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	for _, line := range []string{"one", "two", "three"} {
		if err := s.Append(ctx, line); err != nil {
			t.Fatalf("Append(%q): %v", line, err)
		}
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStoreReopenLoadsSameLines(t *testing.T) {
	// Reopening the same database file and loading again returns the
	// same lines in the same order as a Load before the reopen.
	path := filepath.Join(t.TempDir(), "hist.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	s.Append(ctx, "a")
	s.Append(ctx, "b")

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	reloaded, err := s2.Load(ctx)
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if len(reloaded) != len(loaded) {
		t.Fatalf("got %v after reopen, want %v", reloaded, loaded)
	}
	for i := range loaded {
		if reloaded[i] != loaded[i] {
			t.Errorf("entry %d: got %q, want %q", i, reloaded[i], loaded[i])
		}
	}
}

func TestStoreLoadEmptyIsEmptySlice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
