package meshing

import (
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"
)

const (
	// Floats per vertex before the texture weight vector (pos.xyz + uv)
	baseStride = 5

	verticesPerFace = 6
)

// Mesh is a flat triangle list. Each vertex is Stride floats:
// position (3, chunk-local), uv (2), then one weight per texture layer.
type Mesh struct {
	Vertices []float32
	Stride   int
	Faces    int
}

// VertexCount returns the number of vertices in the mesh.
func (m Mesh) VertexCount() int {
	if m.Stride == 0 {
		return 0
	}
	return len(m.Vertices) / m.Stride
}

// TriangleCount returns the number of triangles in the mesh.
func (m Mesh) TriangleCount() int {
	return m.VertexCount() / 3
}

// Builder turns a chunk into a culled-face mesh. The zero value is not usable;
// call NewBuilder.
type Builder struct {
	Layers LayerTable
	UVs    FaceUVTable
}

// NewBuilder returns a builder with one texture layer per solid block type and
// full-square UVs on every face.
func NewBuilder() *Builder {
	return &Builder{
		Layers: DefaultLayers(),
		UVs:    DefaultFaceUVs(),
	}
}

// Stride is the number of floats per emitted vertex.
func (b *Builder) Stride() int {
	return baseStride + b.Layers.Len()
}

// Build emits two triangles for every solid-to-non-solid boundary face.
// Cells are visited z outer, y middle, x inner and faces in BlockFace order, so
// the output is identical for identical grids. Neighbours outside the grid read
// as air, which exposes the chunk's outer shell.
func (b *Builder) Build(c *world.Chunk) Mesh {
	defer profiling.Track("meshing.Build")()

	stride := b.Stride()
	mesh := Mesh{Stride: stride}
	if c == nil {
		return mesh
	}

	d := c.Dims()
	vertices := make([]float32, 0, 1024)
	for z := 0; z < d.Z; z++ {
		for y := 0; y < d.Y; y++ {
			for x := 0; x < d.X; x++ {
				bt := c.Get(x, y, z)
				if bt == world.BlockTypeAir {
					continue
				}
				layer := b.Layers.Layer(bt)
				for f := BlockFace(0); f < NumFaces; f++ {
					n := faces[f].normal
					if c.IsSolid(x+n[0], y+n[1], z+n[2]) {
						continue
					}
					vertices = b.emitFace(vertices, f, x, y, z, layer)
					mesh.Faces++
				}
			}
		}
	}
	mesh.Vertices = vertices
	return mesh
}

func (b *Builder) emitFace(dst []float32, f BlockFace, x, y, z, layer int) []float32 {
	def := &faces[f]
	uvs := &b.UVs[f]
	nLayers := b.Layers.Len()
	fx, fy, fz := float32(x), float32(y), float32(z)
	for _, i := range quadOrder {
		corner := def.corners[i]
		dst = append(dst,
			fx+corner[0], fy+corner[1], fz+corner[2],
			uvs[i][0], uvs[i][1],
		)
		for l := 0; l < nLayers; l++ {
			if l == layer {
				dst = append(dst, 1)
			} else {
				dst = append(dst, 0)
			}
		}
	}
	return dst
}
