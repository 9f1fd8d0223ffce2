package meshing

import (
	"testing"

	"mini-voxel/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolBuildAll(t *testing.T) {
	pool := NewWorkerPool(3, 2, nil)
	defer pool.Shutdown()

	var chunks []*world.Chunk
	for n := 0; n < 8; n++ {
		c := newChunk(t, world.Dims{X: 8, Y: 1, Z: 1})
		for x := 0; x < n; x += 2 {
			require.NoError(t, c.Set(x, 0, 0, world.BlockTypeStone))
		}
		chunks = append(chunks, c)
	}

	meshes, err := pool.BuildAll(chunks)
	require.NoError(t, err)
	require.Len(t, meshes, len(chunks))
	for i, m := range meshes {
		assert.Equal(t, NewBuilder().Build(chunks[i]), m, "chunk %d", i)
	}
}

func TestWorkerPoolNilChunk(t *testing.T) {
	pool := NewWorkerPool(1, 1, nil)
	defer pool.Shutdown()

	_, err := pool.BuildAll([]*world.Chunk{nil})
	assert.ErrorIs(t, err, world.ErrInvalidChunkData)
}

func TestWorkerPoolShutdown(t *testing.T) {
	pool := NewWorkerPool(2, 0, nil)
	pool.Shutdown()

	results := make(chan MeshResult, 1)
	assert.False(t, pool.SubmitJobBlocking(MeshJob{Chunk: newChunk(t, world.Dims{X: 1, Y: 1, Z: 1}), ResultChan: results}))
	assert.Equal(t, 0, pool.GetQueueLength())
}
