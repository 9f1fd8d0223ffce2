package meshing

import (
	"fmt"

	"mini-voxel/internal/world"
)

// LayerTable maps block types to diffuse texture layers. Air has no layer (-1).
type LayerTable struct {
	layers [world.NumBlockTypes]int
	count  int
}

// DefaultLayers gives every solid block type its own layer, in enumeration order.
func DefaultLayers() LayerTable {
	var t LayerTable
	t.layers[world.BlockTypeAir] = -1
	for i, bt := range world.SolidBlockTypes() {
		t.layers[bt] = i
	}
	t.count = world.NumBlockTypes - 1
	return t
}

// NewLayerTable builds a table from an explicit block → layer mapping. Solid block
// types missing from the map sample layer 0. The layer count is the highest
// index plus one.
func NewLayerTable(m map[world.BlockType]int) (LayerTable, error) {
	var t LayerTable
	t.layers[world.BlockTypeAir] = -1
	for _, bt := range world.SolidBlockTypes() {
		t.layers[bt] = 0
	}
	t.count = 1
	for bt, layer := range m {
		if !bt.Valid() || bt == world.BlockTypeAir {
			return LayerTable{}, fmt.Errorf("%w: %v has no texture", world.ErrInvalidBlockType, bt)
		}
		if layer < 0 {
			return LayerTable{}, fmt.Errorf("negative texture layer %d for %v", layer, bt)
		}
		t.layers[bt] = layer
		if layer+1 > t.count {
			t.count = layer + 1
		}
	}
	return t, nil
}

// Len is the number of texture layers, i.e. the width of the weight vector.
func (t LayerTable) Len() int {
	return t.count
}

// Layer returns the texture layer for bt, or -1 for air.
func (t LayerTable) Layer(bt world.BlockType) int {
	if !bt.Valid() {
		return 0
	}
	return t.layers[bt]
}
