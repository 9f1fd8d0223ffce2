// Package storage persists chunks: the raw dump file, zstd archives and a
// badger-backed library of named worlds.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"mini-voxel/internal/world"
)

// SaveFile writes the raw dump of c to path. The file is replaced atomically.
func SaveFile(path string, c *world.Chunk) error {
	if c == nil {
		return fmt.Errorf("save %s: nil chunk", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, c.Bytes(), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// LoadFile reads a raw dump with the given dimensions.
func LoadFile(path string, dims world.Dims) (*world.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := world.LoadChunk(dims, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
