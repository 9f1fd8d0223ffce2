package game

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/physics"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// ErrCellOccupied is returned when a placement would overlap the player.
var ErrCellOccupied = errors.New("cell occupied by player")

const (
	slowMeshThreshold = 20 * time.Millisecond

	// spawnClearance lifts a spawned body just off the ground so the first
	// tick lands it.
	spawnClearance = 0.01
)

// Input is the per-tick player intent. Move is the horizontal wish velocity
// in blocks per second; its Y component is ignored.
type Input struct {
	Move mgl32.Vec3
	Jump bool
}

// Session owns one chunk, the player body moving through it and the cached
// mesh of the chunk.
type Session struct {
	ID uuid.UUID

	cfg    *config.Config
	params physics.Params
	chunk  *world.Chunk
	body   physics.Body
	meshes *meshing.Cache
	clock  *FixedStep
	logger *slog.Logger

	ticks uint64
}

// NewSession validates cfg and wraps c. A nil cfg uses config.Default(), a
// nil chunk starts empty at the configured size and a nil logger uses
// slog.Default().
func NewSession(cfg *config.Config, c *world.Chunk, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		var err error
		if c, err = world.NewChunk(cfg.Chunk.Dims()); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New()
	s := &Session{
		ID:     id,
		cfg:    cfg,
		params: cfg.PhysicsParams(),
		chunk:  c,
		meshes: meshing.NewCache(nil),
		clock:  NewFixedStep(cfg.Physics.TickRate),
		logger: logger.With("session", id.String()),
	}
	s.logger.Info("session started", "dims", c.Dims().String(), "solid", c.Dims().Volume()-c.Count(world.BlockTypeAir))
	return s, nil
}

func (s *Session) Chunk() *world.Chunk { return s.chunk }

// Body returns the player body. Callers may reposition it between ticks.
func (s *Session) Body() *physics.Body { return &s.body }

func (s *Session) Config() *config.Config { return s.cfg }

func (s *Session) Params() physics.Params { return s.params }

// Ticks returns how many ticks have run.
func (s *Session) Ticks() uint64 { return s.ticks }

// Eye is the ray origin for targeting, the body position.
func (s *Session) Eye() mgl32.Vec3 { return s.body.Position }

// MeshBuilds returns how often the mesh has been regenerated.
func (s *Session) MeshBuilds() int { return s.meshes.Builds() }

// Dump returns the raw dump of the current grid.
func (s *Session) Dump() []byte { return s.chunk.Bytes() }

// Target casts from the eye along dir with the configured reach and step.
func (s *Session) Target(dir mgl32.Vec3) physics.RaycastResult {
	return physics.Raycast(s.Eye(), dir, s.cfg.Raycast.MaxDistance, s.chunk, s.cfg.Raycast.Step)
}

// Tick advances the body by dt seconds with the given intent.
func (s *Session) Tick(dt float32, in Input) {
	defer profiling.Track("game.Tick")()

	if in.Jump {
		s.body.Jump(s.params)
	}
	s.body.Velocity[0] = in.Move.X()
	s.body.Velocity[2] = in.Move.Z()
	s.body.Step(dt, s.params, s.chunk)
	s.ticks++
}

// Advance runs as many fixed ticks as elapsed wall time allows and returns
// how many ran.
func (s *Session) Advance(elapsed time.Duration, in Input) int {
	n := s.clock.Advance(elapsed)
	dt := float32(s.clock.Step().Seconds())
	for i := 0; i < n; i++ {
		s.Tick(dt, in)
	}
	return n
}

// Mesh returns the chunk mesh, rebuilding it only after the chunk changed.
func (s *Session) Mesh() meshing.Mesh {
	profiling.ResetFrame()
	start := time.Now()
	m, rebuilt := s.meshes.Get(s.chunk)
	if !rebuilt {
		return m
	}
	took := time.Since(start)
	s.logger.Debug("mesh rebuilt", "faces", m.Faces, "vertices", m.VertexCount(), "took", took)
	if took > slowMeshThreshold {
		s.logger.Warn("slow mesh build", "took", took, "top", profiling.TopN(3))
	}
	return m
}

// BreakBlock clears the first solid cell along dir from the eye.
func (s *Session) BreakBlock(dir mgl32.Vec3) (world.Coord, bool, error) {
	r := s.Target(dir)
	if !r.Hit {
		return world.Coord{}, false, nil
	}
	was := s.chunk.GetAt(r.HitPosition)
	if err := s.chunk.SetAt(r.HitPosition, world.BlockTypeAir); err != nil {
		profiling.RejectedEdits.WithLabelValues("break").Inc()
		return r.HitPosition, false, err
	}
	profiling.BlockEdits.WithLabelValues("break").Inc()
	s.logger.Debug("block broken", "pos", r.HitPosition.String(), "was", was.String())
	return r.HitPosition, true, nil
}

// PlaceBlock puts bt into the last empty cell before the first solid hit
// along dir. Cells outside the grid or overlapping the player are refused.
func (s *Session) PlaceBlock(dir mgl32.Vec3, bt world.BlockType) (world.Coord, bool, error) {
	if !bt.IsSolid() {
		profiling.RejectedEdits.WithLabelValues("place").Inc()
		return world.Coord{}, false, fmt.Errorf("%w: cannot place %s", world.ErrInvalidBlockType, bt)
	}
	r := s.Target(dir)
	if !r.Hit || !r.HasAdjacent {
		return world.Coord{}, false, nil
	}

	cell := r.AdjacentPosition
	if !s.chunk.InBounds(cell.X, cell.Y, cell.Z) {
		profiling.RejectedEdits.WithLabelValues("place").Inc()
		return cell, false, fmt.Errorf("%w: %s", world.ErrOutOfBounds, cell)
	}
	if physics.IntersectsCell(s.body.Position, s.params.Box, cell) {
		profiling.RejectedEdits.WithLabelValues("place").Inc()
		return cell, false, fmt.Errorf("%w: %s", ErrCellOccupied, cell)
	}
	if err := s.chunk.SetAt(cell, bt); err != nil {
		profiling.RejectedEdits.WithLabelValues("place").Inc()
		return cell, false, err
	}
	profiling.BlockEdits.WithLabelValues("place").Inc()
	s.logger.Debug("block placed", "pos", cell.String(), "block", bt.String())
	return cell, true, nil
}

// ReplaceChunk swaps in a new grid wholesale. The body keeps its position.
func (s *Session) ReplaceChunk(c *world.Chunk) error {
	if c == nil {
		return fmt.Errorf("%w: nil chunk", world.ErrInvalidChunkData)
	}
	s.chunk = c
	s.meshes.Invalidate()
	profiling.BlockEdits.WithLabelValues("load").Inc()
	s.logger.Info("chunk replaced", "dims", c.Dims().String())
	return nil
}

// LoadWorld replaces the grid with a raw dump of the current dimensions.
// On error the current grid is kept.
func (s *Session) LoadWorld(data []byte) error {
	c, err := world.LoadChunk(s.chunk.Dims(), data)
	if err != nil {
		profiling.RejectedEdits.WithLabelValues("load").Inc()
		s.logger.Warn("world load rejected", "err", err)
		return err
	}
	return s.ReplaceChunk(c)
}

// Spawn puts the body on top of the highest solid cell of the centre column,
// or on the grid floor when the column is empty, and returns its position.
func (s *Session) Spawn() mgl32.Vec3 {
	d := s.chunk.Dims()
	cx, cz := d.X/2, d.Z/2
	feet := float32(s.chunk.HighestSolid(cx, cz) + 1)

	s.body = physics.Body{
		Position: mgl32.Vec3{float32(cx) + 0.5, feet + spawnClearance + s.params.Box.Down, float32(cz) + 0.5},
	}
	s.logger.Debug("spawned", "pos", s.body.Position)
	return s.body.Position
}
