package hashutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestSHA256KnownDigest(t *testing.T) {
	path := writeTestFile(t, "a.txt", "hello")

	cache := NewCache()
	got, err := cache.SHA256(path)
	if err != nil {
		t.Fatalf("SHA256: %v", err)
	}
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("digest = %s, want %s", got, want)
	}
	if cache.Len() != 1 {
		t.Errorf("cache size = %d, want 1", cache.Len())
	}
}

func TestSHA256CachesUnchangedFiles(t *testing.T) {
	path := writeTestFile(t, "a.txt", "hello")
	cache := NewCache()

	first, err := cache.SHA256(path)
	if err != nil {
		t.Fatalf("first SHA256: %v", err)
	}
	second, err := cache.SHA256(path)
	if err != nil {
		t.Fatalf("second SHA256: %v", err)
	}
	if first != second {
		t.Errorf("digests differ: %s vs %s", first, second)
	}
}

func TestChanged(t *testing.T) {
	path := writeTestFile(t, "a.txt", "hello")
	cache := NewCache()

	changed, err := cache.Changed(path)
	if err != nil {
		t.Fatalf("Changed: %v", err)
	}
	if !changed {
		t.Error("uncached file reported unchanged")
	}

	if _, err := cache.SHA256(path); err != nil {
		t.Fatalf("SHA256: %v", err)
	}
	changed, err = cache.Changed(path)
	if err != nil {
		t.Fatalf("Changed: %v", err)
	}
	if changed {
		t.Error("unchanged file reported changed")
	}

	// Grow the file and backdate nothing; size alone must trip it.
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	changed, err = cache.Changed(path)
	if err != nil {
		t.Fatalf("Changed: %v", err)
	}
	if !changed {
		t.Error("modified file reported unchanged")
	}
}

func TestSHA256RecomputesAfterMtimeChange(t *testing.T) {
	path := writeTestFile(t, "a.txt", "hello")
	cache := NewCache()
	if _, err := cache.SHA256(path); err != nil {
		t.Fatalf("SHA256: %v", err)
	}

	// Same size, different content and mtime.
	if err := os.WriteFile(path, []byte("olleh"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got, err := cache.SHA256(path)
	if err != nil {
		t.Fatalf("SHA256: %v", err)
	}
	want := "0baf982fcab396fdb1c6d82f8f1eb0d2aea9cdd347fb244cf0b2c748df350069"
	if got != want {
		t.Errorf("digest = %s, want recomputed digest %s", got, want)
	}
}

func TestSHA256MissingFile(t *testing.T) {
	cache := NewCache()
	if _, err := cache.SHA256(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("SHA256 of a missing file did not error")
	}
}
