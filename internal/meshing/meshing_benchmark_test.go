package meshing

import (
	"testing"

	"mini-voxel/internal/world"

	"github.com/stretchr/testify/require"
)

func BenchmarkBuildFullSurface(b *testing.B) {
	d := world.DefaultDims()
	c := newChunk(b, d)
	require.NoError(b, c.FillLayer(d.Y-1, world.BlockTypeGrass))
	builder := NewBuilder()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = builder.Build(c)
	}
}

func BenchmarkBuildGenerated(b *testing.B) {
	c := newChunk(b, world.Dims{X: 64, Y: 64, Z: 64})
	require.NoError(b, world.NewGenerator(world.DefaultGenSettings()).Populate(c))
	builder := NewBuilder()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = builder.Build(c)
	}
}

func BenchmarkWorkerPool(b *testing.B) {
	chunks := make([]*world.Chunk, 16)
	for i := range chunks {
		chunks[i] = newChunk(b, world.DefaultDims())
		s := world.DefaultGenSettings()
		s.Seed = int64(i)
		require.NoError(b, world.NewGenerator(s).Populate(chunks[i]))
	}
	pool := NewWorkerPool(4, len(chunks), nil)
	defer pool.Shutdown()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pool.BuildAll(chunks); err != nil {
			b.Fatal(err)
		}
	}
}
