package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// cacheDir returns the per-user optui cache directory.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "op-tui"), nil
}

// defaultCachePath returns <user cache dir>/op-tui/items.json, creating
// the directory owner-only if needed.
func defaultCachePath() (string, error) {
	dir, err := cacheDir()
	if err != nil {
		return "", fmt.Errorf("finding cache dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}
	return filepath.Join(dir, "items.json"), nil
}
