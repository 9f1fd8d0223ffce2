package main

import (
	"bufio"
	"fmt"
	"io"

	"mini-voxel/internal/meshing"
)

// writeOBJ writes positions and texture coordinates of m as a Wavefront OBJ.
// Vertices are not shared, so every triangle references three fresh indices.
func writeOBJ(w io.Writer, m meshing.Mesh) error {
	bw := bufio.NewWriter(w)
	n := m.VertexCount()
	for i := 0; i < n; i++ {
		v := m.Vertices[i*m.Stride:]
		fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2])
	}
	for i := 0; i < n; i++ {
		v := m.Vertices[i*m.Stride:]
		fmt.Fprintf(bw, "vt %g %g\n", v[3], v[4])
	}
	for i := 1; i+2 <= n; i += 3 {
		fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", i, i, i+1, i+1, i+2, i+2)
	}
	return bw.Flush()
}
