package world

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coord is an integer cell coordinate inside (or outside) a chunk.
type Coord struct {
	X, Y, Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Z)
}

// Add returns c offset by (dx, dy, dz).
func (c Coord) Add(dx, dy, dz int) Coord {
	return Coord{c.X + dx, c.Y + dy, c.Z + dz}
}

// ParseCoord parses an "x,y,z" triple. Whitespace around components is ignored.
func ParseCoord(s string) (Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Coord{}, fmt.Errorf("%w: %q needs three components", ErrInvalidCoordinate, s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Coord{}, fmt.Errorf("%w: %q: component %d is not an integer", ErrInvalidCoordinate, s, i)
		}
		v[i] = n
	}
	return Coord{v[0], v[1], v[2]}, nil
}

// CoordFromFloats converts a numeric triple into a Coord. Every component must be
// a finite integral value that fits in an int.
func CoordFromFloats(vals []float64) (Coord, error) {
	if len(vals) != 3 {
		return Coord{}, fmt.Errorf("%w: got %d components", ErrInvalidCoordinate, len(vals))
	}
	var v [3]int
	for i, f := range vals {
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return Coord{}, fmt.Errorf("%w: component %d = %v", ErrInvalidCoordinate, i, f)
		}
		if f > math.MaxInt32 || f < math.MinInt32 {
			return Coord{}, fmt.Errorf("%w: component %d = %v overflows", ErrInvalidCoordinate, i, f)
		}
		v[i] = int(f)
	}
	return Coord{v[0], v[1], v[2]}, nil
}
