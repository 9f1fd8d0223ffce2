package storage

import (
	"bufio"
	"fmt"
	"io"

	"mini-voxel/internal/world"

	"github.com/klauspost/compress/zstd"
)

// ArchiveExt is the conventional extension of a compressed dump.
const ArchiveExt = ".vxz"

// WriteArchive writes the zstd-compressed raw dump of c to w.
func WriteArchive(w io.Writer, c *world.Chunk) error {
	if c == nil {
		return fmt.Errorf("archive: nil chunk")
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := enc.Write(c.Bytes()); err != nil {
		enc.Close()
		return fmt.Errorf("archive: %w", err)
	}
	return enc.Close()
}

// ReadArchive decompresses an archive and loads it with the given dimensions.
// Anything but exactly one dump's worth of bytes is invalid chunk data.
func ReadArchive(r io.Reader, dims world.Dims) (*world.Chunk, error) {
	if !dims.Valid() {
		return nil, fmt.Errorf("%w: dims %s", world.ErrInvalidChunkData, dims)
	}
	dec, err := zstd.NewReader(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	// Read one byte past the expected size to detect trailing data.
	limit := int64(dims.Volume()) + 1
	data, err := io.ReadAll(io.LimitReader(dec, limit))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", world.ErrInvalidChunkData, err)
	}
	return world.LoadChunk(dims, data)
}
