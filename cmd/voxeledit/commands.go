package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"mini-voxel/internal/game"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/physics"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/storage"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/common/expfmt"
)

func subFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseSub(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return fs.Args(), nil
}

func (e *env) loadChunk(path string) (*world.Chunk, error) {
	return storage.LoadFile(path, e.cfg.Chunk.Dims())
}

func cmdNew(e *env, args []string) error {
	if err := needArgs(args, 1); err != nil {
		return err
	}
	c, err := world.NewChunk(e.cfg.Chunk.Dims())
	if err != nil {
		return err
	}
	if err := storage.SaveFile(args[0], c); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "created %s (%s)\n", args[0], c.Dims())
	return nil
}

func cmdGen(e *env, args []string) error {
	settings := e.cfg.Generator.Settings()
	fs := subFlags("gen")
	seed := fs.Int64("seed", settings.Seed, "noise seed")
	mode := fs.String("mode", string(settings.Mode), "flat or noise")
	rest, err := parseSub(fs, args)
	if err != nil {
		return err
	}
	if err := needArgs(rest, 1); err != nil {
		return err
	}
	settings.Seed = *seed
	settings.Mode = world.GenMode(*mode)

	c, err := world.NewChunk(e.cfg.Chunk.Dims())
	if err != nil {
		return err
	}
	if err := world.NewGenerator(settings).Populate(c); err != nil {
		return err
	}
	if err := storage.SaveFile(rest[0], c); err != nil {
		return err
	}
	e.logger.Info("generated", "out", rest[0], "seed", settings.Seed, "mode", settings.Mode)
	fmt.Fprintf(e.out, "generated %s: %d solid cells\n", rest[0], c.Dims().Volume()-c.Count(world.BlockTypeAir))
	return nil
}

func cmdSet(e *env, args []string) error {
	if err := needArgs(args, 3); err != nil {
		return err
	}
	p, err := world.ParseCoord(args[1])
	if err != nil {
		return err
	}
	bt, err := world.ParseBlockType(args[2])
	if err != nil {
		return err
	}
	c, err := e.loadChunk(args[0])
	if err != nil {
		return err
	}
	if err := c.SetAt(p, bt); err != nil {
		profiling.RejectedEdits.WithLabelValues("set").Inc()
		return err
	}
	profiling.BlockEdits.WithLabelValues("set").Inc()
	return storage.SaveFile(args[0], c)
}

func cmdFill(e *env, args []string) error {
	if err := needArgs(args, 3); err != nil {
		return err
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: layer %q", world.ErrInvalidCoordinate, args[1])
	}
	bt, err := world.ParseBlockType(args[2])
	if err != nil {
		return err
	}
	c, err := e.loadChunk(args[0])
	if err != nil {
		return err
	}
	if err := c.FillLayer(y, bt); err != nil {
		profiling.RejectedEdits.WithLabelValues("fill").Inc()
		return err
	}
	profiling.BlockEdits.WithLabelValues("fill").Inc()
	return storage.SaveFile(args[0], c)
}

func cmdMesh(e *env, args []string) error {
	fs := subFlags("mesh")
	objPath := fs.String("obj", "", "also write the mesh as Wavefront OBJ (single file only)")
	rest, err := parseSub(fs, args)
	if err != nil {
		return err
	}
	if len(rest) == 0 || (*objPath != "" && len(rest) != 1) {
		return fmt.Errorf("%w: mesh takes one file with -obj, otherwise one or more", errUsage)
	}

	chunks := make([]*world.Chunk, len(rest))
	for i, path := range rest {
		if chunks[i], err = e.loadChunk(path); err != nil {
			return err
		}
	}
	pool := meshing.NewWorkerPool(runtime.NumCPU(), len(chunks), nil)
	defer pool.Shutdown()
	meshes, err := pool.BuildAll(chunks)
	if err != nil {
		return err
	}

	for i, m := range meshes {
		if len(meshes) > 1 {
			fmt.Fprintf(e.out, "%s: ", rest[i])
		}
		fmt.Fprintf(e.out, "faces=%d triangles=%d vertices=%d floats=%d stride=%d\n",
			m.Faces, m.TriangleCount(), m.VertexCount(), len(m.Vertices), m.Stride)
	}

	if *objPath == "" {
		return nil
	}
	f, err := os.Create(*objPath)
	if err != nil {
		return err
	}
	if err := writeOBJ(f, meshes[0]); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cmdPick(e *env, args []string) error {
	if err := needArgs(args, 3); err != nil {
		return err
	}
	origin, err := parseVec3(args[1])
	if err != nil {
		return err
	}
	dir, err := parseVec3(args[2])
	if err != nil {
		return err
	}
	c, err := e.loadChunk(args[0])
	if err != nil {
		return err
	}

	r := physics.Raycast(origin, dir, e.cfg.Raycast.MaxDistance, c, e.cfg.Raycast.Step)
	if !r.Hit {
		fmt.Fprintln(e.out, "miss")
		return nil
	}
	fmt.Fprintf(e.out, "hit %s %s distance=%.2f", r.HitPosition, c.GetAt(r.HitPosition), r.Distance)
	if r.HasAdjacent {
		fmt.Fprintf(e.out, " place=%s", r.AdjacentPosition)
	}
	fmt.Fprintln(e.out)
	return nil
}

func cmdExport(e *env, args []string) error {
	if err := needArgs(args, 2); err != nil {
		return err
	}
	c, err := e.loadChunk(args[0])
	if err != nil {
		return err
	}
	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	if err := storage.WriteArchive(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cmdImport(e *env, args []string) error {
	if err := needArgs(args, 2); err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	c, err := storage.ReadArchive(f, e.cfg.Chunk.Dims())
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return storage.SaveFile(args[1], c)
}

func cmdSave(e *env, args []string) error {
	if err := needArgs(args, 2); err != nil {
		return err
	}
	c, err := e.loadChunk(args[0])
	if err != nil {
		return err
	}
	s, err := e.worldStore()
	if err != nil {
		return err
	}
	if err := s.Save(args[1], c); err != nil {
		return err
	}
	e.logger.Info("world saved", "name", args[1], "dims", c.Dims().String())
	return nil
}

func cmdLoad(e *env, args []string) error {
	if err := needArgs(args, 2); err != nil {
		return err
	}
	s, err := e.worldStore()
	if err != nil {
		return err
	}
	c, err := s.Load(args[0])
	if err != nil {
		return err
	}
	return storage.SaveFile(args[1], c)
}

func cmdList(e *env, args []string) error {
	if err := needArgs(args, 0); err != nil {
		return err
	}
	s, err := e.worldStore()
	if err != nil {
		return err
	}
	names, err := s.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(e.out, name)
	}
	return nil
}

func cmdDelete(e *env, args []string) error {
	if err := needArgs(args, 1); err != nil {
		return err
	}
	s, err := e.worldStore()
	if err != nil {
		return err
	}
	return s.Delete(args[0])
}

func cmdSimulate(e *env, args []string) error {
	fs := subFlags("simulate")
	move := fs.String("move", "0,0", "horizontal wish velocity x,z in blocks/s")
	jump := fs.Bool("jump", false, "hold jump")
	realtime := fs.Bool("realtime", false, "pace ticks at the configured tick rate")
	rest, err := parseSub(fs, args)
	if err != nil {
		return err
	}
	if err := needArgs(rest, 2); err != nil {
		return err
	}
	ticks, err := strconv.Atoi(rest[1])
	if err != nil || ticks < 0 {
		return fmt.Errorf("%w: ticks %q", errUsage, rest[1])
	}
	mx, mz, err := parsePair(*move)
	if err != nil {
		return err
	}

	c, err := e.loadChunk(rest[0])
	if err != nil {
		return err
	}
	s, err := game.NewSession(e.cfg, c, e.logger)
	if err != nil {
		return err
	}
	s.Spawn()

	in := game.Input{Move: mgl32.Vec3{mx, 0, mz}, Jump: *jump}
	dt := e.cfg.Physics.TickDuration()
	clock := game.NewFixedStep(e.cfg.Physics.TickRate)
	for i := 0; i < ticks; i++ {
		if *realtime {
			clock.Wait()
		}
		s.Tick(dt, in)
	}

	b := s.Body()
	fmt.Fprintf(e.out, "ticks=%d pos=%.3f,%.3f,%.3f vel=%.3f,%.3f,%.3f ground=%v\n",
		s.Ticks(), b.Position.X(), b.Position.Y(), b.Position.Z(),
		b.Velocity.X(), b.Velocity.Y(), b.Velocity.Z(), b.OnGround)
	return nil
}

// cmdStats optionally exercises a chunk file and prints the metrics registry
// in the Prometheus text format.
func cmdStats(e *env, args []string) error {
	if len(args) > 1 {
		return needArgs(args, 1)
	}
	if len(args) == 1 {
		c, err := e.loadChunk(args[0])
		if err != nil {
			return err
		}
		s, err := game.NewSession(e.cfg, c, e.logger)
		if err != nil {
			return err
		}
		s.Spawn()
		s.Mesh()
		s.Target(mgl32.Vec3{0, -1, 0})
		s.Tick(e.cfg.Physics.TickDuration(), game.Input{})
		fmt.Fprintf(e.out, "# frame: %s\n", profilingSummary())
	}

	families, err := profiling.Registry().Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(e.out, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func profilingSummary() string {
	if top := profiling.TopN(5); top != "" {
		return top
	}
	return "none"
}

func parseVec3(s string) (mgl32.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("%w: want x,y,z, got %q", errUsage, s)
	}
	var v mgl32.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("%w: %q", errUsage, s)
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parsePair(s string) (float32, float32, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: want x,z, got %q", errUsage, s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", errUsage, s)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", errUsage, s)
	}
	return float32(a), float32(b), nil
}
