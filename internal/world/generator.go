package world

import (
	"fmt"
	"math"

	"github.com/ojrac/opensimplex-go"
)

// GenMode selects how a chunk is populated.
type GenMode string

const (
	GenModeFlat  GenMode = "flat"
	GenModeNoise GenMode = "noise"
)

// GenSettings parameterise terrain generation. Heights are in cells.
type GenSettings struct {
	Seed        int64
	Mode        GenMode
	SeaLevel    int
	BaseHeight  int
	Amplitude   float64
	Scale       float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Trees       bool
}

// DefaultGenSettings returns gentle hills around y=10 with a sea at y=8.
func DefaultGenSettings() GenSettings {
	return GenSettings{
		Seed:        1,
		Mode:        GenModeNoise,
		SeaLevel:    8,
		BaseHeight:  10,
		Amplitude:   6,
		Scale:       1.0 / 24.0,
		Octaves:     3,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Trees:       true,
	}
}

// Generator handles terrain generation logic.
type Generator struct {
	settings GenSettings
	noise    opensimplex.Noise
}

// NewGenerator creates a generator. The same settings always produce the same chunk.
func NewGenerator(settings GenSettings) *Generator {
	if settings.Octaves <= 0 {
		settings.Octaves = 1
	}
	return &Generator{
		settings: settings,
		noise:    opensimplex.New(settings.Seed),
	}
}

// HeightAt computes the surface height (block Y) at local X,Z.
func (g *Generator) HeightAt(x, z int) int {
	s := g.settings
	if s.Mode == GenModeFlat {
		return s.BaseHeight
	}
	fx := float64(x) * s.Scale
	fz := float64(z) * s.Scale
	amp, freq, total, norm := 1.0, 1.0, 0.0, 0.0
	for i := 0; i < s.Octaves; i++ {
		total += g.noise.Eval2(fx*freq, fz*freq) * amp
		norm += amp
		amp *= s.Persistence
		freq *= s.Lacunarity
	}
	if norm > 0 {
		total /= norm
	}
	return int(math.Floor(float64(s.BaseHeight) + total*s.Amplitude))
}

// Populate overwrites c with generated terrain.
func (g *Generator) Populate(c *Chunk) error {
	if g.settings.Mode == GenModeFlat {
		return g.populateFlat(c)
	}
	if g.settings.Mode != GenModeNoise {
		return fmt.Errorf("unknown generator mode %q", g.settings.Mode)
	}

	d := c.Dims()
	for z := 0; z < d.Z; z++ {
		for x := 0; x < d.X; x++ {
			top := clamp(g.HeightAt(x, z), 0, d.Y-1)
			beach := top <= g.settings.SeaLevel
			for y := 0; y < d.Y; y++ {
				bt := BlockTypeAir
				switch {
				case y == top && beach:
					bt = BlockTypeSand
				case y == top:
					bt = BlockTypeGrass
				case y < top && y >= top-3:
					bt = BlockTypeDirt
					if beach {
						bt = BlockTypeSand
					}
				case y < top:
					bt = BlockTypeStone
				case y <= g.settings.SeaLevel:
					bt = BlockTypeWater
				}
				if err := c.Set(x, y, z, bt); err != nil {
					return err
				}
			}
		}
	}
	if g.settings.Trees {
		return g.plantTrees(c)
	}
	return nil
}

func (g *Generator) populateFlat(c *Chunk) error {
	d := c.Dims()
	for y := 0; y < d.Y; y++ {
		bt := BlockTypeAir
		switch {
		case y < g.settings.BaseHeight-3:
			bt = BlockTypeStone
		case y < g.settings.BaseHeight:
			bt = BlockTypeDirt
		case y == g.settings.BaseHeight:
			bt = BlockTypeGrass
		}
		if err := c.FillLayer(y, bt); err != nil {
			return err
		}
	}
	return nil
}

// plantTrees places short wood trunks on grass where a high-frequency noise
// sample peaks. Trunks keep one cell away from the chunk edge.
func (g *Generator) plantTrees(c *Chunk) error {
	const trunk = 3
	d := c.Dims()
	for z := 1; z < d.Z-1; z++ {
		for x := 1; x < d.X-1; x++ {
			top := c.HighestSolid(x, z)
			if top < 0 || c.Get(x, top, z) != BlockTypeGrass || top+trunk >= d.Y {
				continue
			}
			if g.noise.Eval2(float64(x)*0.9+1000, float64(z)*0.9-1000) < 0.55 {
				continue
			}
			for y := top + 1; y <= top+trunk; y++ {
				if err := c.Set(x, y, z, BlockTypeWood); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
