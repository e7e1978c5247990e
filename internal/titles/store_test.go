package titles

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadStripsNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.txt")
	if err := os.WriteFile(path, []byte("Song A\r\n\nSong B -> /watch?v=1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"Song A", "", "Song B -> /watch?v=1"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines (%q), want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q want %q", i, lines[i], want[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected no lines, got %q", lines)
	}
}

func TestSaveWritesNewlineTerminatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "titles.txt")
	if err := Save(path, []string{"Song A -> https://example.test/watch?x", "-Song B"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "Song A -> https://example.test/watch?x\n-Song B\n"
	if string(data) != want {
		t.Fatalf("got %q want %q", data, want)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be gone, stat err=%v", err)
	}

	lines, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lines) != 2 || lines[1] != "-Song B" {
		t.Fatalf("unexpected reload %q", lines)
	}
}

func TestAppendCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "titles.txt")
	if err := Append(path, []string{"Song A"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := Append(path, []string{"Song B"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	lines, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lines) != 2 || lines[0] != "Song A" || lines[1] != "Song B" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestLockIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.txt")
	first, err := Lock(path)
	if err != nil {
		t.Fatalf("first Lock: %v", err)
	}

	if _, err := Lock(path); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	second, err := Lock(path)
	if err != nil {
		t.Fatalf("Lock after release: %v", err)
	}
	if second.Path() != path+".lock" {
		t.Fatalf("unexpected lock path %q", second.Path())
	}
	_ = second.Unlock()
}

func TestUnlockNil(t *testing.T) {
	var l *FileLock
	if err := l.Unlock(); err != nil {
		t.Fatalf("nil Unlock returned %v", err)
	}
}
