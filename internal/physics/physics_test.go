package physics

import (
	"testing"

	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = float32(1.0 / 20.0)

func newChunk(t testing.TB, d world.Dims) *world.Chunk {
	t.Helper()
	c, err := world.NewChunk(d)
	require.NoError(t, err)
	return c
}

func TestBoxInsideAirCellNeverCollides(t *testing.T) {
	c := newChunk(t, world.Dims{X: 3, Y: 3, Z: 3})
	for y := 0; y < 3; y++ {
		require.NoError(t, c.FillLayer(y, world.BlockTypeStone))
	}
	require.NoError(t, c.Set(1, 1, 1, world.BlockTypeAir))

	small := Box{HalfWidth: 0.2, Up: 0.2, Down: 0.2}
	for _, p := range []mgl32.Vec3{{1.5, 1.5, 1.5}, {1.25, 1.3, 1.7}, {1.75, 1.75, 1.25}} {
		assert.False(t, Collides(p, small, c), "pos %v", p)
	}

	empty := newChunk(t, world.Dims{X: 3, Y: 3, Z: 3})
	assert.False(t, Collides(mgl32.Vec3{1.5, 1.5, 1.5}, DefaultBox(), empty))
}

func TestBoxOverlappingSolidCollides(t *testing.T) {
	c := newChunk(t, world.Dims{X: 4, Y: 4, Z: 4})
	require.NoError(t, c.Set(2, 1, 2, world.BlockTypeDirt))
	box := Box{HalfWidth: 0.3, Up: 0.3, Down: 0.3}

	assert.True(t, Collides(mgl32.Vec3{2.5, 1.5, 2.5}, box, c), "centred in the cell")
	assert.True(t, Collides(mgl32.Vec3{1.8, 1.5, 2.5}, box, c), "overlapping from -x")
	assert.True(t, Collides(mgl32.Vec3{2.5, 2.2, 2.5}, box, c), "overlapping from above")
	assert.False(t, Collides(mgl32.Vec3{1.6, 1.5, 2.5}, box, c), "clear of the cell")
}

func TestCollisionOutsideGridIsAir(t *testing.T) {
	c := newChunk(t, world.Dims{X: 2, Y: 2, Z: 2})
	for y := 0; y < 2; y++ {
		require.NoError(t, c.FillLayer(y, world.BlockTypeStone))
	}
	assert.False(t, Collides(mgl32.Vec3{-5, 1, 1}, DefaultBox(), c))
	assert.False(t, Collides(mgl32.Vec3{1, 10, 1}, DefaultBox(), c))
	assert.True(t, Collides(mgl32.Vec3{-0.1, 1, 1}, DefaultBox(), c), "box reaches into x=0")
	assert.False(t, Collides(mgl32.Vec3{1, 1, 1}, DefaultBox(), nil))
}

func TestFeetOnBlockTopDoNotCollide(t *testing.T) {
	c := newChunk(t, world.Dims{X: 3, Y: 4, Z: 3})
	require.NoError(t, c.FillLayer(0, world.BlockTypeStone))
	box := DefaultBox()

	standing := mgl32.Vec3{1.5, 1 + landingGap + box.Down, 1.5}
	assert.False(t, Collides(standing, box, c))
	sunk := mgl32.Vec3{1.5, 0.99 + box.Down, 1.5}
	assert.True(t, Collides(sunk, box, c))
}

func TestIntersectsCell(t *testing.T) {
	box := DefaultBox()
	pos := mgl32.Vec3{1.5, 1 + box.Down + landingGap, 1.5}
	assert.True(t, IntersectsCell(pos, box, world.Coord{X: 1, Y: 1, Z: 1}))
	assert.True(t, IntersectsCell(pos, box, world.Coord{X: 1, Y: 2, Z: 1}))
	assert.False(t, IntersectsCell(pos, box, world.Coord{X: 1, Y: 0, Z: 1}), "block under the feet")
	assert.False(t, IntersectsCell(pos, box, world.Coord{X: 2, Y: 1, Z: 1}))
}

func TestBodyFallsAndLands(t *testing.T) {
	c := newChunk(t, world.Dims{X: 4, Y: 12, Z: 4})
	require.NoError(t, c.FillLayer(0, world.BlockTypeStone))
	p := DefaultParams()
	b := Body{Position: mgl32.Vec3{2, 9, 2}}

	for i := 0; i < 200 && !b.OnGround; i++ {
		b.Step(tick, p, c)
	}
	require.True(t, b.OnGround)
	assert.InDelta(t, 1.0, b.Feet(p), 1e-3)
	assert.Zero(t, b.Velocity.Y())

	// Standing still stays put and grounded.
	for i := 0; i < 20; i++ {
		b.Step(tick, p, c)
	}
	assert.True(t, b.OnGround)
	assert.InDelta(t, 1.0, b.Feet(p), 1e-3)
}

func TestSettleYStaysAboveTopAtAnyHeight(t *testing.T) {
	down := DefaultBox().Down
	for _, top := range []float32{1, 512, 1001, 1023, world.MaxChunkDim, 4096} {
		y := settleY(top, down)
		assert.Greater(t, y-down, top, "top %v", top)
		assert.Less(t, y-down-top, float32(1e-3), "top %v", top)
	}
}

func TestBodyLandsNearTopOfTallestChunk(t *testing.T) {
	c := newChunk(t, world.Dims{X: 1, Y: world.MaxChunkDim, Z: 1})
	require.NoError(t, c.Set(0, 1000, 0, world.BlockTypeStone))
	p := DefaultParams()
	b := Body{Position: mgl32.Vec3{0.5, 1003 + p.Box.Down, 0.5}}

	for i := 0; i < 200 && !b.OnGround; i++ {
		b.Step(tick, p, c)
	}
	require.True(t, b.OnGround)
	assert.Greater(t, b.Feet(p), float32(1001))
	assert.False(t, Collides(b.Position, p.Box, c))

	for i := 0; i < 20; i++ {
		b.Step(tick, p, c)
	}
	assert.True(t, b.OnGround)
	assert.InDelta(t, 1001.0, b.Feet(p), 1e-3)
}

func TestTerminalVelocity(t *testing.T) {
	c := newChunk(t, world.Dims{X: 2, Y: 2, Z: 2})
	p := DefaultParams()
	b := Body{Position: mgl32.Vec3{1, 1000, 1}}
	for i := 0; i < 200; i++ {
		b.Step(tick, p, c)
	}
	assert.Equal(t, -p.TerminalVelocity, b.Velocity.Y())
	assert.False(t, b.OnGround)
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	c := newChunk(t, world.Dims{X: 4, Y: 12, Z: 4})
	require.NoError(t, c.FillLayer(0, world.BlockTypeStone))
	p := DefaultParams()
	b := Body{Position: mgl32.Vec3{2, 6, 2}}

	assert.False(t, b.Jump(p), "airborne jump must be ignored")
	for i := 0; i < 200 && !b.OnGround; i++ {
		b.Step(tick, p, c)
	}
	require.True(t, b.OnGround)

	require.True(t, b.Jump(p))
	assert.Equal(t, p.JumpVelocity, b.Velocity.Y())
	assert.False(t, b.OnGround)
	assert.False(t, b.Jump(p), "no double jump")

	start := b.Feet(p)
	b.Step(tick, p, c)
	assert.Greater(t, b.Feet(p), start)
}

func TestCeilingStopsJump(t *testing.T) {
	c := newChunk(t, world.Dims{X: 4, Y: 8, Z: 4})
	require.NoError(t, c.FillLayer(0, world.BlockTypeStone))
	require.NoError(t, c.FillLayer(3, world.BlockTypeStone))
	p := DefaultParams()
	b := Body{Position: mgl32.Vec3{2, 1 + landingGap + p.Box.Down, 2}, OnGround: true}

	require.True(t, b.Jump(p))
	hitCeiling := false
	for i := 0; i < 40; i++ {
		blocked := b.Step(tick, p, c)
		_, max := p.Box.Bounds(b.Position)
		require.Less(t, max.Y(), float32(3), "head entered the ceiling")
		if blocked[1] && !b.OnGround {
			hitCeiling = true
			assert.Zero(t, b.Velocity.Y())
		}
	}
	assert.True(t, hitCeiling)
}

func TestSlidingAlongWall(t *testing.T) {
	d := world.Dims{X: 6, Y: 6, Z: 12}
	c := newChunk(t, d)
	for z := 0; z < d.Z; z++ {
		for y := 0; y < d.Y; y++ {
			require.NoError(t, c.Set(3, y, z, world.BlockTypeStone))
		}
	}
	p := DefaultParams()
	p.Gravity = 0
	b := Body{Position: mgl32.Vec3{2.5, 3, 2}}

	for i := 0; i < 20; i++ {
		b.Velocity = mgl32.Vec3{4, 0, 4}
		blocked := b.Step(tick, p, c)
		if blocked[0] {
			assert.Zero(t, b.Velocity.X())
		}
		assert.False(t, blocked[2])
	}
	assert.Less(t, b.Position.X()+p.Box.HalfWidth, float32(3))
	assert.InDelta(t, 2+20*4*tick, b.Position.Z(), 1e-3, "z movement is not blocked by the x wall")
}

func TestAxesAreTestedAgainstUnmovedPosition(t *testing.T) {
	c := newChunk(t, world.Dims{X: 6, Y: 6, Z: 6})
	// A single block diagonal to the body: moving x alone or z alone is free.
	require.NoError(t, c.Set(3, 2, 3, world.BlockTypeStone))
	p := DefaultParams()
	p.Gravity = 0
	p.Box = Box{HalfWidth: 0.3, Up: 0.3, Down: 0.3}
	b := Body{Position: mgl32.Vec3{2.5, 2.5, 2.5}, Velocity: mgl32.Vec3{5, 0, 5}}

	blocked := b.Step(tick, p, c)
	assert.Equal(t, [3]bool{false, false, false}, blocked)
	assert.InDelta(t, 2.75, b.Position.X(), 1e-5)
	assert.InDelta(t, 2.75, b.Position.Z(), 1e-5)
}

func TestMaxStepDistanceClampsMoves(t *testing.T) {
	c := newChunk(t, world.Dims{X: 2, Y: 2, Z: 2})
	p := DefaultParams()
	p.Gravity = 0
	b := Body{Position: mgl32.Vec3{0, 0, 0}, Velocity: mgl32.Vec3{100, 0, -100}}
	b.Step(1, p, c)
	assert.Equal(t, float32(p.MaxStepDistance), b.Position.X())
	assert.Equal(t, float32(-p.MaxStepDistance), b.Position.Z())

	b.Step(0, p, c)
	assert.Equal(t, float32(p.MaxStepDistance), b.Position.X(), "zero dt is a no-op")
}
