package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBackupCopiesContentAndMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "titles.txt")
	if err := os.WriteFile(src, []byte("Song A\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	dst, err := Backup(src)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if dst != src+BackupSuffix {
		t.Fatalf("unexpected backup path %q", dst)
	}
	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "Song A\n" {
		t.Fatalf("unexpected backup content %q (%v)", got, err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestBackupMissingSource(t *testing.T) {
	dst, err := Backup(filepath.Join(t.TempDir(), "missing.txt"))
	if err != nil || dst != "" {
		t.Fatalf("expected silent no-op, got %q, %v", dst, err)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.mp4")
	dst := filepath.Join(dir, "a.mp3")
	if err := os.WriteFile(src, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("expected source gone, got %v", err)
	}
	if got, _ := os.ReadFile(dst); string(got) != "data" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestMoveFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := MoveFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	content := make([]byte, 64*1024)
	for i := range content {
		content[i] = byte(i)
	}
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatalf("CopyFileVerified: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(content) {
		t.Fatalf("size mismatch: got %d want %d", len(got), len(content))
	}
}

func TestCopyFileVerified_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFileVerified(filepath.Join(dir, "nope"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}
