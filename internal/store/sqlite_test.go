package store

import (
	"bytes"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "boardwalk.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := openTestStore(t)

	// Missing key reports absence, not an error
	if _, ok, err := s.Load(ProjectsKey); err != nil || ok {
		t.Fatalf("Load on empty store = ok=%v err=%v, want absent", ok, err)
	}

	value := []byte(`[{"id":"p1"}]`)
	if err := s.Save(ProjectsKey, value); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	got, ok, err := s.Load(ProjectsKey)
	if err != nil || !ok {
		t.Fatalf("Load after save = ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Load returned %q, want %q", got, value)
	}
}

func TestSQLiteOverwrite(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save(ProjectsKey, []byte("old")); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if err := s.Save(ProjectsKey, []byte("new")); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}

	got, ok, err := s.Load(ProjectsKey)
	if err != nil || !ok {
		t.Fatalf("Load = ok=%v err=%v", ok, err)
	}
	if string(got) != "new" {
		t.Errorf("Load returned %q after overwrite, want \"new\"", got)
	}
}

func TestSQLiteRemove(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save(ProjectsKey, []byte("data")); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if err := s.Remove(ProjectsKey); err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}
	if _, ok, err := s.Load(ProjectsKey); err != nil || ok {
		t.Errorf("Load after remove = ok=%v err=%v, want absent", ok, err)
	}

	// Removing a missing key is a no-op
	if err := s.Remove("missing"); err != nil {
		t.Errorf("Remove on missing key returned %v", err)
	}
}

func TestSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boardwalk.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if err := s.Save(ProjectsKey, []byte("persisted")); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	// A second Open on the same file sees the data and re-runs
	// migrations without error
	s, err = Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer s.Close()

	got, ok, err := s.Load(ProjectsKey)
	if err != nil || !ok || string(got) != "persisted" {
		t.Errorf("Load after reopen = %q ok=%v err=%v", got, ok, err)
	}
}
