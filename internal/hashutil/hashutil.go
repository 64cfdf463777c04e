// Package hashutil computes streaming SHA-256 digests of source files, with
// a size+mtime cache so repeated exports of an unchanged file skip the read.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type fileInfo struct {
	size  int64
	mtime time.Time
	hash  string
}

// Cache is a thread-safe hash cache keyed by path, invalidated by file size
// or modification time changes.
type Cache struct {
	mu      sync.Mutex
	entries map[string]fileInfo
}

// NewCache returns an empty hash cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]fileInfo)}
}

// SHA256 returns the hex digest of the file, serving from cache when the
// file's size and mtime are unchanged since the last computation.
func (c *Cache) SHA256(path string) (string, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	c.mu.Lock()
	cached, ok := c.entries[path]
	c.mu.Unlock()
	if ok && cached.size == stat.Size() && cached.mtime.Equal(stat.ModTime()) {
		return cached.hash, nil
	}

	hash, err := sha256File(path)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[path] = fileInfo{size: stat.Size(), mtime: stat.ModTime(), hash: hash}
	c.mu.Unlock()
	return hash, nil
}

// Changed reports whether the file differs from the state captured by the
// last SHA256 call. Unknown paths count as changed.
func (c *Cache) Changed(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return true, fmt.Errorf("stat %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	cached, ok := c.entries[path]
	if !ok {
		return true, nil
	}
	return cached.size != stat.Size() || !cached.mtime.Equal(stat.ModTime()), nil
}

// Len returns the number of cached digests.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// sha256File streams the file through the digest in 1 MiB chunks.
func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, 1<<20)); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
