package physics

import (
	"testing"

	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func makeChunkForPhysics(b *testing.B) *world.Chunk {
	c := newChunk(b, world.DefaultDims())
	if err := world.NewGenerator(world.DefaultGenSettings()).Populate(c); err != nil {
		b.Fatalf("populate: %v", err)
	}
	return c
}

func BenchmarkCollides(b *testing.B) {
	c := makeChunkForPhysics(b)
	pos := mgl32.Vec3{16, 20, 16}
	box := DefaultBox()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Collides(pos, box, c)
	}
}

func BenchmarkRaycast(b *testing.B) {
	c := makeChunkForPhysics(b)
	origin := mgl32.Vec3{16, 24, 16}
	dir := mgl32.Vec3{0.3, -1, 0.2}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Raycast(origin, dir, MaxReachDistance, c, DefaultStepSize)
	}
}

func BenchmarkBodyStep(b *testing.B) {
	c := makeChunkForPhysics(b)
	p := DefaultParams()
	body := Body{Position: mgl32.Vec3{16, 30, 16}}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		body.Velocity[0] = 4
		body.Step(tick, p, c)
	}
}
