package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mini-voxel/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t      *testing.T
	dir    string
	config string
}

func newHarness(t *testing.T) *harness {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "voxel.yaml")
	body := "chunk: {size_x: 8, size_y: 8, size_z: 8}\n" +
		"generator: {mode: flat, sea_level: 2, base_height: 3}\n" +
		"storage: {path: " + filepath.Join(dir, "library") + "}\n" +
		"log: {level: warn}\n"
	require.NoError(t, os.WriteFile(cfg, []byte(body), 0o644))
	return &harness{t: t, dir: dir, config: cfg}
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

// run executes one command with a fresh env, like a separate process would.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	e := &env{out: &out}
	defer e.close()
	err := run(e, append([]string{"-config", h.config}, args...), &errOut)
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "voxeledit %s", strings.Join(args, " "))
	return out
}

func TestNewSetAndMesh(t *testing.T) {
	h := newHarness(t)
	file := h.path("a.dat")

	out := h.mustRun("new", file)
	assert.Contains(t, out, "8x8x8")

	h.mustRun("set", file, "1,2,3", "stone")
	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Len(t, raw, 512)
	assert.Equal(t, byte(world.BlockTypeStone), raw[1+8*2+64*3])

	out = h.mustRun("mesh", file)
	assert.Contains(t, out, "faces=6 triangles=12 vertices=36")

	obj := h.path("a.obj")
	h.mustRun("mesh", "-obj", obj, file)
	data, err := os.ReadFile(obj)
	require.NoError(t, err)
	assert.Equal(t, 36, strings.Count(string(data), "\nv ")+boolToInt(strings.HasPrefix(string(data), "v ")))
	assert.Equal(t, 12, strings.Count(string(data), "\nf "))

	empty := h.path("b.dat")
	h.mustRun("new", empty)
	out = h.mustRun("mesh", file, empty)
	assert.Equal(t, file+": faces=6 triangles=12 vertices=36 floats=396 stride=11\n"+
		empty+": faces=0 triangles=0 vertices=0 floats=0 stride=11\n", out)

	_, err = h.run("mesh", "-obj", obj, file, empty)
	assert.ErrorIs(t, err, errUsage)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestSetRejectsBadInput(t *testing.T) {
	h := newHarness(t)
	file := h.path("a.dat")
	h.mustRun("new", file)

	_, err := h.run("set", file, "8,0,0", "stone")
	assert.ErrorIs(t, err, world.ErrOutOfBounds)
	_, err = h.run("set", file, "0,0,0", "lava")
	assert.ErrorIs(t, err, world.ErrInvalidBlockType)
	_, err = h.run("set", file, "0,0", "stone")
	assert.ErrorIs(t, err, world.ErrInvalidCoordinate)
	_, err = h.run("set", file)
	assert.ErrorIs(t, err, errUsage)
}

func TestGenFillAndPick(t *testing.T) {
	h := newHarness(t)
	file := h.path("flat.dat")
	out := h.mustRun("gen", file)
	assert.Contains(t, out, "generated")

	h.mustRun("fill", file, "6", "wood")
	out = h.mustRun("pick", file, "4.5,5.5,4.5", "0,1,0")
	assert.Contains(t, out, "hit 4,6,4 wood")
	assert.Contains(t, out, "place=4,5,4")

	out = h.mustRun("pick", file, "4.5,5.5,4.5", "1,0,0")
	assert.Equal(t, "miss\n", out)

	_, err := h.run("fill", file, "9", "wood")
	assert.ErrorIs(t, err, world.ErrOutOfBounds)
}

func TestExportImport(t *testing.T) {
	h := newHarness(t)
	file, archive, back := h.path("w.dat"), h.path("w.vxz"), h.path("back.dat")
	h.mustRun("gen", "-mode", "flat", file)
	h.mustRun("export", file, archive)
	h.mustRun("import", archive, back)

	a, err := os.ReadFile(file)
	require.NoError(t, err)
	b, err := os.ReadFile(back)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWorldLibrary(t *testing.T) {
	h := newHarness(t)
	file := h.path("w.dat")
	h.mustRun("gen", file)
	h.mustRun("save", file, "beta")
	h.mustRun("save", file, "alpha")

	assert.Equal(t, "alpha\nbeta\n", h.mustRun("list"))

	out := h.path("restored.dat")
	h.mustRun("load", "alpha", out)
	a, _ := os.ReadFile(file)
	b, _ := os.ReadFile(out)
	assert.Equal(t, a, b)

	h.mustRun("delete", "beta")
	assert.Equal(t, "alpha\n", h.mustRun("list"))
	_, err := h.run("load", "beta", out)
	assert.Error(t, err)
}

func TestSimulate(t *testing.T) {
	h := newHarness(t)
	file := h.path("w.dat")
	h.mustRun("gen", file)

	out := h.mustRun("simulate", file, "40")
	assert.Contains(t, out, "ticks=40")
	assert.Contains(t, out, "ground=true")

	out = h.mustRun("simulate", "-move", "1,0", file, "10")
	assert.Contains(t, out, "ticks=10")

	_, err := h.run("simulate", file, "many")
	assert.ErrorIs(t, err, errUsage)
}

func TestStats(t *testing.T) {
	h := newHarness(t)
	file := h.path("w.dat")
	h.mustRun("gen", file)
	out := h.mustRun("stats", file)
	assert.Contains(t, out, "voxel_operation_duration_seconds")
	assert.Contains(t, out, `op="meshing.Build"`)
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("explode")
	assert.ErrorIs(t, err, errUsage)
	_, err = h.run()
	assert.ErrorIs(t, err, errUsage)
}
