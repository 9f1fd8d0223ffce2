package world

import "fmt"

const (
	// Default chunk dimensions used by the editor
	ChunkSizeX = 32
	ChunkSizeY = 32
	ChunkSizeZ = 32

	// MaxChunkDim bounds each dimension so the volume always fits in memory and an int.
	MaxChunkDim = 1024
)

// Dims are the fixed dimensions of a chunk grid.
type Dims struct {
	X, Y, Z int
}

// DefaultDims returns the 32x32x32 editor chunk size.
func DefaultDims() Dims {
	return Dims{ChunkSizeX, ChunkSizeY, ChunkSizeZ}
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.X, d.Y, d.Z)
}

// Volume is the number of cells in the grid.
func (d Dims) Volume() int {
	return d.X * d.Y * d.Z
}

// Valid reports whether every dimension is in [1, MaxChunkDim].
func (d Dims) Valid() bool {
	return d.X > 0 && d.Y > 0 && d.Z > 0 &&
		d.X <= MaxChunkDim && d.Y <= MaxChunkDim && d.Z <= MaxChunkDim
}

// Contains reports whether (x, y, z) lies inside [0,X)×[0,Y)×[0,Z).
func (d Dims) Contains(x, y, z int) bool {
	return x >= 0 && x < d.X && y >= 0 && y < d.Y && z >= 0 && z < d.Z
}

// Index converts local coordinates into the flat grid index.
// x varies fastest, then y, then z. This is the only place the layout is defined.
func (d Dims) Index(x, y, z int) int {
	return x + d.X*y + d.X*d.Y*z
}

// Chunk is a dense grid of block types. It is not safe for concurrent mutation.
type Chunk struct {
	dims    Dims
	blocks  []BlockType
	version uint64
	dirty   bool
}

func newChunk(dims Dims) *Chunk {
	return &Chunk{
		dims:   dims,
		blocks: make([]BlockType, dims.Volume()),
		dirty:  true,
	}
}

// Dims returns the grid dimensions.
func (c *Chunk) Dims() Dims {
	return c.dims
}

// InBounds reports whether the coordinate addresses a stored cell.
func (c *Chunk) InBounds(x, y, z int) bool {
	return c.dims.Contains(x, y, z)
}

// Get returns the block at (x, y, z). Anything outside the grid reads as air.
func (c *Chunk) Get(x, y, z int) BlockType {
	if !c.dims.Contains(x, y, z) {
		return BlockTypeAir
	}
	return c.blocks[c.dims.Index(x, y, z)]
}

// GetAt is Get for a Coord.
func (c *Chunk) GetAt(p Coord) BlockType {
	return c.Get(p.X, p.Y, p.Z)
}

// IsSolid reports whether the block at (x, y, z) is anything but air.
func (c *Chunk) IsSolid(x, y, z int) bool {
	return c.Get(x, y, z) != BlockTypeAir
}

// IsAir checks if the block at the specified local coordinates is air
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.Get(x, y, z) == BlockTypeAir
}

// Set writes a block. Unlike Get, writes outside the grid fail with ErrOutOfBounds.
// The grid is left untouched on error.
func (c *Chunk) Set(x, y, z int, bt BlockType) error {
	if !c.dims.Contains(x, y, z) {
		return fmt.Errorf("%w: (%d,%d,%d) outside %s", ErrOutOfBounds, x, y, z, c.dims)
	}
	if !bt.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidBlockType, uint8(bt))
	}
	idx := c.dims.Index(x, y, z)
	if c.blocks[idx] != bt {
		c.blocks[idx] = bt
		c.touch()
	}
	return nil
}

// SetAt is Set for a Coord.
func (c *Chunk) SetAt(p Coord, bt BlockType) error {
	return c.Set(p.X, p.Y, p.Z, bt)
}

// FillLayer sets every (x, z) cell of layer y to bt.
func (c *Chunk) FillLayer(y int, bt BlockType) error {
	if y < 0 || y >= c.dims.Y {
		return fmt.Errorf("%w: layer %d outside [0,%d)", ErrOutOfBounds, y, c.dims.Y)
	}
	if !bt.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidBlockType, uint8(bt))
	}
	changed := false
	for z := 0; z < c.dims.Z; z++ {
		for x := 0; x < c.dims.X; x++ {
			idx := c.dims.Index(x, y, z)
			if c.blocks[idx] != bt {
				c.blocks[idx] = bt
				changed = true
			}
		}
	}
	if changed {
		c.touch()
	}
	return nil
}

// Count returns how many cells hold bt.
func (c *Chunk) Count(bt BlockType) int {
	n := 0
	for _, b := range c.blocks {
		if b == bt {
			n++
		}
	}
	return n
}

// ActiveBlocks returns the coordinates of all non-air blocks in z, y, x order.
func (c *Chunk) ActiveBlocks() []Coord {
	var positions []Coord
	for z := 0; z < c.dims.Z; z++ {
		for y := 0; y < c.dims.Y; y++ {
			for x := 0; x < c.dims.X; x++ {
				if c.blocks[c.dims.Index(x, y, z)] != BlockTypeAir {
					positions = append(positions, Coord{x, y, z})
				}
			}
		}
	}
	return positions
}

// HighestSolid returns the y of the topmost solid cell in column (x, z), or -1.
func (c *Chunk) HighestSolid(x, z int) int {
	for y := c.dims.Y - 1; y >= 0; y-- {
		if c.IsSolid(x, y, z) {
			return y
		}
	}
	return -1
}

// Clone returns an independent copy of the grid.
func (c *Chunk) Clone() *Chunk {
	out := newChunk(c.dims)
	copy(out.blocks, c.blocks)
	return out
}

// Version increases on every mutation that changes the grid.
func (c *Chunk) Version() uint64 {
	return c.version
}

// IsDirty returns whether the chunk has been modified since the last SetClean
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// SetClean marks the chunk as clean (not modified)
func (c *Chunk) SetClean() {
	c.dirty = false
}

func (c *Chunk) touch() {
	c.version++
	c.dirty = true
}
