package physics

import (
	"math"

	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Box is the player's collision volume relative to its eye point: HalfWidth on
// x and z, Up above the eye and Down below it.
type Box struct {
	HalfWidth float32
	Up        float32
	Down      float32
}

// DefaultBox is a 0.6 wide, 1.8 tall player whose eye sits 1.62 above the feet.
func DefaultBox() Box {
	return Box{HalfWidth: 0.3, Up: 0.18, Down: 1.62}
}

// Bounds returns the min and max corners of the box centred on pos.
func (b Box) Bounds(pos mgl32.Vec3) (min, max mgl32.Vec3) {
	min = mgl32.Vec3{pos.X() - b.HalfWidth, pos.Y() - b.Down, pos.Z() - b.HalfWidth}
	max = mgl32.Vec3{pos.X() + b.HalfWidth, pos.Y() + b.Up, pos.Z() + b.HalfWidth}
	return min, max
}

// Collides reports whether any cell covered by the box at pos is solid. The
// covered range is floor(min)..floor(max) on each axis; cells outside the grid
// are air.
func Collides(pos mgl32.Vec3, box Box, c *world.Chunk) bool {
	if c == nil {
		return false
	}
	min, max := box.Bounds(pos)
	minX, maxX := floorInt(min.X()), floorInt(max.X())
	minY, maxY := floorInt(min.Y()), floorInt(max.Y())
	minZ, maxZ := floorInt(min.Z()), floorInt(max.Z())

	// Clip to the grid; everything else reads as air anyway.
	d := c.Dims()
	minX, maxX = clipRange(minX, maxX, d.X)
	minY, maxY = clipRange(minY, maxY, d.Y)
	minZ, maxZ = clipRange(minZ, maxZ, d.Z)

	for z := minZ; z <= maxZ; z++ {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				if c.IsSolid(x, y, z) {
					return true
				}
			}
		}
	}
	return false
}

// IntersectsCell reports whether the box at pos overlaps the unit cell p.
// Touching faces do not count.
func IntersectsCell(pos mgl32.Vec3, box Box, p world.Coord) bool {
	min, max := box.Bounds(pos)
	cx, cy, cz := float32(p.X), float32(p.Y), float32(p.Z)
	return min.X() < cx+1 && max.X() > cx &&
		min.Y() < cy+1 && max.Y() > cy &&
		min.Z() < cz+1 && max.Z() > cz
}

// CellAt returns the grid cell containing the point.
func CellAt(p mgl32.Vec3) world.Coord {
	return world.Coord{X: floorInt(p.X()), Y: floorInt(p.Y()), Z: floorInt(p.Z())}
}

func floorInt(v float32) int {
	f := math.Floor(float64(v))
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

// clipRange intersects [lo, hi] with [0, size). An empty result has lo > hi.
func clipRange(lo, hi, size int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > size-1 {
		hi = size - 1
	}
	return lo, hi
}
