package meshing

import "mini-voxel/internal/world"

// Cache keeps the last mesh built for a chunk and rebuilds it only after the
// chunk changed or a different chunk is passed in.
type Cache struct {
	builder *Builder
	chunk   *world.Chunk
	version uint64
	mesh    Mesh
	valid   bool
	builds  int
}

// NewCache wraps b. A nil builder uses NewBuilder().
func NewCache(b *Builder) *Cache {
	if b == nil {
		b = NewBuilder()
	}
	return &Cache{builder: b}
}

// Get returns the mesh for c and whether it had to be regenerated.
func (mc *Cache) Get(c *world.Chunk) (Mesh, bool) {
	if mc.valid && mc.chunk == c && c != nil && c.Version() == mc.version {
		return mc.mesh, false
	}
	mc.mesh = mc.builder.Build(c)
	mc.chunk = c
	mc.valid = true
	mc.builds++
	if c != nil {
		mc.version = c.Version()
		c.SetClean()
	}
	return mc.mesh, true
}

// Invalidate forces the next Get to rebuild.
func (mc *Cache) Invalidate() {
	mc.valid = false
}

// Builds returns how many times the cache has regenerated its mesh.
func (mc *Cache) Builds() int {
	return mc.builds
}
