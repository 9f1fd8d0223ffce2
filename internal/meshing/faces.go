package meshing

// BlockFace identifies a face of a block
type BlockFace int

const (
	FaceEast BlockFace = iota // +X
	FaceWest                  // -X
	FaceTop                   // +Y
	FaceBottom                // -Y
	FaceNorth                 // +Z
	FaceSouth                 // -Z

	NumFaces = 6
)

func (f BlockFace) String() string {
	switch f {
	case FaceEast:
		return "east"
	case FaceWest:
		return "west"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	default:
		return "unknown"
	}
}

// faceDef describes one cube face: the neighbour that hides it and its four
// corners in the unit cube, counter-clockwise when seen from outside.
type faceDef struct {
	normal  [3]int
	corners [4][3]float32
}

var faces = [NumFaces]faceDef{
	FaceEast:   {normal: [3]int{1, 0, 0}, corners: [4][3]float32{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
	FaceWest:   {normal: [3]int{-1, 0, 0}, corners: [4][3]float32{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	FaceTop:    {normal: [3]int{0, 1, 0}, corners: [4][3]float32{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}},
	FaceBottom: {normal: [3]int{0, -1, 0}, corners: [4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	FaceNorth:  {normal: [3]int{0, 0, 1}, corners: [4][3]float32{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	FaceSouth:  {normal: [3]int{0, 0, -1}, corners: [4][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
}

// Normal returns the outward unit normal of the face.
func (f BlockFace) Normal() [3]int {
	return faces[f].normal
}

// quadOrder splits a quad v0..v3 into triangles (v0,v1,v2) and (v2,v3,v0).
var quadOrder = [6]int{0, 1, 2, 2, 3, 0}

// FaceUVTable holds the texture coordinates of each face corner, indexed like
// the corners above.
type FaceUVTable [NumFaces][4][2]float32

// DefaultFaceUVs maps every face onto the full [0,1] texture square, upright on
// the side faces and unmirrored when seen from outside.
func DefaultFaceUVs() FaceUVTable {
	return FaceUVTable{
		FaceEast:   {{1, 0}, {1, 1}, {0, 1}, {0, 0}},
		FaceWest:   {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		FaceTop:    {{0, 0}, {0, 1}, {1, 1}, {1, 0}},
		FaceBottom: {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		FaceNorth:  {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		FaceSouth:  {{1, 0}, {1, 1}, {0, 1}, {0, 0}},
	}
}
