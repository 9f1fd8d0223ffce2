package world

import (
	"fmt"
	"strconv"
	"strings"
)

type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeStone
	BlockTypeDirt
	BlockTypeWater
	BlockTypeSand
	BlockTypeWood

	// NumBlockTypes is the size of the enumeration, Air included.
	NumBlockTypes = int(BlockTypeWood) + 1
)

var blockNames = [NumBlockTypes]string{
	BlockTypeAir:   "air",
	BlockTypeGrass: "grass",
	BlockTypeStone: "stone",
	BlockTypeDirt:  "dirt",
	BlockTypeWater: "water",
	BlockTypeSand:  "sand",
	BlockTypeWood:  "wood",
}

// Valid reports whether bt is a member of the block enumeration.
func (bt BlockType) Valid() bool {
	return int(bt) < NumBlockTypes
}

// IsSolid reports whether the block occupies its cell. Air is the only non-solid type.
func (bt BlockType) IsSolid() bool {
	return bt != BlockTypeAir
}

func (bt BlockType) String() string {
	if !bt.Valid() {
		return fmt.Sprintf("block(%d)", uint8(bt))
	}
	return blockNames[bt]
}

// SolidBlockTypes returns every non-air block type in enumeration order.
func SolidBlockTypes() []BlockType {
	out := make([]BlockType, 0, NumBlockTypes-1)
	for i := 1; i < NumBlockTypes; i++ {
		out = append(out, BlockType(i))
	}
	return out
}

// ParseBlockType accepts a block name ("stone") or its numeric id ("2").
func ParseBlockType(s string) (BlockType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range blockNames {
		if n == name {
			return BlockType(i), nil
		}
	}
	if id, err := strconv.Atoi(name); err == nil && id >= 0 && id < NumBlockTypes {
		return BlockType(id), nil
	}
	return BlockTypeAir, fmt.Errorf("%w: %q", ErrInvalidBlockType, s)
}
