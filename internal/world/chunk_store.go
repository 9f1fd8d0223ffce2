package world

import "fmt"

// NewChunk allocates a zero-filled (all air) chunk.
func NewChunk(dims Dims) (*Chunk, error) {
	if !dims.Valid() {
		return nil, fmt.Errorf("%w: dimensions %s", ErrInvalidChunkData, dims)
	}
	return newChunk(dims), nil
}

// MustNewChunk is NewChunk for dimensions known to be valid. It panics otherwise.
func MustNewChunk(dims Dims) *Chunk {
	c, err := NewChunk(dims)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadChunk wraps a raw grid dump. The buffer must hold exactly one known block id
// per cell in Index order; it is copied, so the caller keeps ownership of data.
func LoadChunk(dims Dims, data []byte) (*Chunk, error) {
	if !dims.Valid() {
		return nil, fmt.Errorf("%w: dimensions %s", ErrInvalidChunkData, dims)
	}
	if len(data) != dims.Volume() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %s", ErrInvalidChunkData, len(data), dims.Volume(), dims)
	}
	c := newChunk(dims)
	for i, b := range data {
		bt := BlockType(b)
		if !bt.Valid() {
			return nil, fmt.Errorf("%w: byte %d: %w: %d", ErrInvalidChunkData, i, ErrInvalidBlockType, b)
		}
		c.blocks[i] = bt
	}
	return c, nil
}

// Bytes dumps the grid as raw bytes in Index order, one byte per cell, no header.
func (c *Chunk) Bytes() []byte {
	out := make([]byte, len(c.blocks))
	for i, b := range c.blocks {
		out[i] = byte(b)
	}
	return out
}
