package world

import "errors"

var (
	// ErrInvalidChunkData is returned when a buffer cannot be interpreted as a chunk grid.
	ErrInvalidChunkData = errors.New("invalid chunk data")
	// ErrOutOfBounds is returned by writes addressed outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidBlockType is returned for identifiers outside the block enumeration.
	ErrInvalidBlockType = errors.New("invalid block type")
	// ErrInvalidCoordinate is returned for malformed coordinate triples.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)
