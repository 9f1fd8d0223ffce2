package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoord(t *testing.T) {
	p, err := ParseCoord(" 1, -2 ,3")
	require.NoError(t, err)
	assert.Equal(t, Coord{1, -2, 3}, p)
	assert.Equal(t, "1,-2,3", p.String())

	for _, bad := range []string{"", "1,2", "1,2,3,4", "1.5,2,3", "a,b,c"} {
		_, err := ParseCoord(bad)
		assert.ErrorIs(t, err, ErrInvalidCoordinate, "%q", bad)
	}
}

func TestCoordFromFloats(t *testing.T) {
	p, err := CoordFromFloats([]float64{4, 0, -7})
	require.NoError(t, err)
	assert.Equal(t, Coord{4, 0, -7}, p)

	bad := [][]float64{
		{1, 2},
		{1, 2, 3, 4},
		{0.5, 0, 0},
		{0, math.NaN(), 0},
		{0, 0, math.Inf(1)},
		{1e12, 0, 0},
	}
	for _, v := range bad {
		_, err := CoordFromFloats(v)
		assert.ErrorIs(t, err, ErrInvalidCoordinate, "%v", v)
	}
}
