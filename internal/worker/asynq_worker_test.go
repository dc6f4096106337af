package worker

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCleanupMediaFilesRemovesOnlyExpired(t *testing.T) {
	dir := t.TempDir()

	oldFile := filepath.Join(dir, "old.jpg")
	if err := os.WriteFile(oldFile, []byte("old"), 0o644); err != nil {
		t.Fatalf("write old file failed: %v", err)
	}
	oldTime := time.Now().AddDate(0, 0, -40)
	if err := os.Chtimes(oldFile, oldTime, oldTime); err != nil {
		t.Fatalf("set old file mtime failed: %v", err)
	}

	freshFile := filepath.Join(dir, "fresh.jpg")
	if err := os.WriteFile(freshFile, []byte("fresh"), 0o644); err != nil {
		t.Fatalf("write fresh file failed: %v", err)
	}

	removed, err := cleanupMediaFiles(dir, time.Now().AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed want 1 got %d", removed)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Fatalf("old file should be removed")
	}
	if _, err := os.Stat(freshFile); err != nil {
		t.Fatalf("fresh file should be kept: %v", err)
	}
}

func TestCleanupMediaFilesMissingDir(t *testing.T) {
	removed, err := cleanupMediaFiles(filepath.Join(t.TempDir(), "missing"), time.Now())
	if err != nil {
		t.Fatalf("missing dir should be tolerated, got %v", err)
	}
	if removed != 0 {
		t.Fatalf("removed want 0 got %d", removed)
	}
}
