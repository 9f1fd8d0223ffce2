package physics

import (
	"math"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	Gravity          = 32.0
	TerminalVelocity = 78.4
	JumpVelocity     = 9.4

	// MaxStepDistance bounds the distance moved along one axis in one tick.
	MaxStepDistance = 0.5

	// landingGap keeps settled feet strictly above the cell boundary so the
	// floor-based cell range does not reach into the ground. Near
	// world.MaxChunkDim the float32 spacing (about 1.2e-4 at 1024) exceeds it,
	// so settleY widens it to the next representable height.
	landingGap = 1e-4
)

// Params are the movement constants a body is integrated with.
type Params struct {
	Box              Box
	Gravity          float32
	TerminalVelocity float32 // maximum downward speed, positive
	JumpVelocity     float32
	MaxStepDistance  float32 // 0 disables the per-axis clamp
}

// DefaultParams returns the walker's standard movement constants.
func DefaultParams() Params {
	return Params{
		Box:              DefaultBox(),
		Gravity:          Gravity,
		TerminalVelocity: TerminalVelocity,
		JumpVelocity:     JumpVelocity,
		MaxStepDistance:  MaxStepDistance,
	}
}

// Body is a point with velocity that collides as a Box.
type Body struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	OnGround bool
}

// Jump applies the jump impulse. It is only honoured while grounded.
func (b *Body) Jump(p Params) bool {
	if !b.OnGround {
		return false
	}
	b.Velocity[1] = p.JumpVelocity
	b.OnGround = false
	return true
}

// Step advances the body by dt seconds. Gravity accelerates the vertical
// velocity down to the terminal speed. Each axis move is then tested on its own
// against the unmoved position on the other two axes, so a wall blocks only
// the axis that hits it and the body slides along it. Blocked axes lose their
// velocity; a blocked downward move lands the body on the cell below.
// It returns which axes were blocked.
func (b *Body) Step(dt float32, p Params, c *world.Chunk) (blocked [3]bool) {
	defer profiling.Track("physics.Step")()
	if !(dt > 0) {
		return blocked
	}

	b.Velocity[1] -= p.Gravity * dt
	if b.Velocity[1] < -p.TerminalVelocity {
		b.Velocity[1] = -p.TerminalVelocity
	}

	origin := b.Position
	moved := origin
	for axis := 0; axis < 3; axis++ {
		delta := b.Velocity[axis] * dt
		if p.MaxStepDistance > 0 {
			delta = clampAbs(delta, p.MaxStepDistance)
		}
		if delta == 0 {
			continue
		}

		candidate := origin
		candidate[axis] += delta
		if !Collides(candidate, p.Box, c) {
			moved[axis] = candidate[axis]
			if axis == 1 {
				b.OnGround = false
			}
			continue
		}

		blocked[axis] = true
		b.Velocity[axis] = 0
		if axis != 1 {
			continue
		}
		if delta < 0 {
			b.OnGround = true
			// Settle onto the top of the cell that stopped us.
			top := float32(math.Floor(float64(candidate[1]-p.Box.Down))) + 1
			settled := origin
			settled[1] = settleY(top, p.Box.Down)
			if settled[1] <= origin[1] && !Collides(settled, p.Box, c) {
				moved[1] = settled[1]
			}
		} else {
			b.OnGround = false
		}
	}
	b.Position = moved
	return blocked
}

// settleY returns the body y that rests the feet just above top.
func settleY(top, down float32) float32 {
	y := top + landingGap + down
	for y-down <= top {
		y = math.Nextafter32(y, float32(math.Inf(1)))
	}
	return y
}

// Feet returns the y of the bottom of the body's box.
func (b *Body) Feet(p Params) float32 {
	return b.Position[1] - p.Box.Down
}

func clampAbs(v, limit float32) float32 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
