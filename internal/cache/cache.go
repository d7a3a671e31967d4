// Package cache persists the transformed item collection between runs.
//
// The cache holds titles and op:// references only, never secret values,
// but it still maps out what a vault contains, so the file is always
// written owner-only (0600).
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/benaskins/optui/internal/item"
)

// ErrNotFound is returned by Load when the cache file does not exist.
var ErrNotFound = errors.New("cache file not found")

// Write replaces the cache file at path with items.
// The collection is marshaled before anything touches disk and lands via
// a 0600 temp file renamed over path, so a failed write leaves the previous
// cache in place. The parent directory must already exist.
func Write(items []item.Item, path string) error {
	if items == nil {
		items = []item.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("writing cache %s: %w", path, err)
	}
	// WriteFile keeps the mode of a stale temp file left by an earlier crash.
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("restricting cache %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing cache %s: %w", path, err)
	}
	return nil
}

// Load reads the cache file at path.
// A missing file yields an error matching ErrNotFound; every other failure
// (permissions, corrupt JSON) is returned as-is and is not retryable by
// refetching.
func Load(path string) ([]item.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	defer f.Close()

	var items []item.Item
	if err := json.NewDecoder(f).Decode(&items); err != nil {
		return nil, fmt.Errorf("parsing cache %s: %w", path, err)
	}
	return items, nil
}

// Remove deletes the cache file. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing cache: %w", err)
	}
	return nil
}
