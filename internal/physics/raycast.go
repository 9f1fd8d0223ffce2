package physics

import (
	"math"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0

	// DefaultStepSize is the marching distance between samples. Features thinner
	// than this along the ray can be skipped.
	DefaultStepSize = 0.02

	// maxSampleIndex bounds how far along the ray a sample may lie, in steps.
	maxSampleIndex = 1 << 31
)

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      world.Coord
	AdjacentPosition world.Coord
	Distance         float32
	Hit              bool
	// HasAdjacent is false when the very first sample was already solid.
	HasAdjacent bool
}

// Raycast marches from origin along dir in fixed steps and stops at the first
// solid cell within maxDist. Only the stretch of the ray that crosses the grid
// box is sampled, so an unbounded maxDist is allowed and a ray that never
// reaches the grid misses at once. A zero direction, non-positive distance or
// step never hits.
func Raycast(origin, dir mgl32.Vec3, maxDist float32, c *world.Chunk, step float32) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	result := RaycastResult{}
	if c == nil || !(maxDist > 0) || !(step > 0) || !finite(origin) || !finite(dir) {
		return result
	}
	if dir.Len() == 0 {
		return result
	}
	dir = dir.Normalize()

	first, steps, ok := sampleRange(origin, dir, c.Dims(), maxDist, step)
	if !ok {
		return result
	}
	entered := false
	var last world.Coord
	hasLast := false

	for i := first; i <= steps; i++ {
		dist := float32(i) * step
		cell := CellAt(origin.Add(dir.Mul(dist)))

		if c.InBounds(cell.X, cell.Y, cell.Z) {
			entered = true
		} else if entered {
			break
		}

		if c.IsSolid(cell.X, cell.Y, cell.Z) {
			result.Hit = true
			result.HitPosition = cell
			result.AdjacentPosition = last
			result.HasAdjacent = hasLast
			result.Distance = dist
			return result
		}

		last = cell
		hasLast = true
	}

	return result
}

// CastRay returns the first solid cell along the ray.
func CastRay(origin, dir mgl32.Vec3, maxDist float32, c *world.Chunk, step float32) (world.Coord, bool) {
	r := Raycast(origin, dir, maxDist, c, step)
	return r.HitPosition, r.Hit
}

// CastRayLastEmpty returns the last non-solid cell visited before the first
// solid hit: the cell a new block goes into when placing against the face in view.
func CastRayLastEmpty(origin, dir mgl32.Vec3, maxDist float32, c *world.Chunk, step float32) (world.Coord, bool) {
	r := Raycast(origin, dir, maxDist, c, step)
	if !r.Hit || !r.HasAdjacent {
		return world.Coord{}, false
	}
	return r.AdjacentPosition, true
}

// sampleRange returns the first and last sample index that can land inside
// the grid box, found with a slab test against [0, size) on each axis. The
// first index is one sample before entry so the cell preceding the grid is
// still visited. ok is false when the ray never crosses the box.
func sampleRange(origin, dir mgl32.Vec3, d world.Dims, maxDist, step float32) (first, last int, ok bool) {
	enter, exit := 0.0, math.Inf(1)
	size := [3]int{d.X, d.Y, d.Z}
	for a := 0; a < 3; a++ {
		o, v, hi := float64(origin[a]), float64(dir[a]), float64(size[a])
		if v == 0 {
			if o < 0 || o >= hi {
				return 0, 0, false
			}
			continue
		}
		t1, t2 := -o/v, (hi-o)/v
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		enter = math.Max(enter, t1)
		exit = math.Min(exit, t2)
	}
	s := float64(step)
	if enter > exit || enter > float64(maxDist) || exit/s > maxSampleIndex {
		return 0, 0, false
	}

	first = int(enter/s) - 1
	if first < 0 {
		first = 0
	}
	// One sample past the far face absorbs float32 rounding there.
	last = int(exit/s) + 1
	if float64(maxDist)/s < float64(last) {
		last = int(maxDist / step)
	}
	return first, last, true
}

func finite(v mgl32.Vec3) bool {
	for _, f := range v {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return false
		}
	}
	return true
}
