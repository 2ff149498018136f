package mesh

// Vertex is a 3D vertex with a per-face normal, laid out to match the
// lit-surface pipeline's vertex buffer: position at shader location 0,
// normal at location 1, both Float32x3.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// QuadVertex is a 2D vertex for the full-viewport quad: one Float32x2
// position at shader location 0.
type QuadVertex struct {
	Position [2]float32
}

// Quad covers the whole viewport in clip space, in triangle-strip order.
var Quad = []QuadVertex{
	{Position: [2]float32{-1, -1}},
	{Position: [2]float32{1, -1}},
	{Position: [2]float32{-1, 1}},
	{Position: [2]float32{1, 1}},
}

// CubeVertices holds 24 vertices (4 per face) so each face carries its own
// normal.
var CubeVertices = []Vertex{
	// +X
	{Position: [3]float32{1, -1, -1}, Normal: [3]float32{1, 0, 0}},
	{Position: [3]float32{1, 1, -1}, Normal: [3]float32{1, 0, 0}},
	{Position: [3]float32{1, 1, 1}, Normal: [3]float32{1, 0, 0}},
	{Position: [3]float32{1, -1, 1}, Normal: [3]float32{1, 0, 0}},
	// -X
	{Position: [3]float32{-1, -1, 1}, Normal: [3]float32{-1, 0, 0}},
	{Position: [3]float32{-1, 1, 1}, Normal: [3]float32{-1, 0, 0}},
	{Position: [3]float32{-1, 1, -1}, Normal: [3]float32{-1, 0, 0}},
	{Position: [3]float32{-1, -1, -1}, Normal: [3]float32{-1, 0, 0}},
	// +Y
	{Position: [3]float32{-1, 1, -1}, Normal: [3]float32{0, 1, 0}},
	{Position: [3]float32{-1, 1, 1}, Normal: [3]float32{0, 1, 0}},
	{Position: [3]float32{1, 1, 1}, Normal: [3]float32{0, 1, 0}},
	{Position: [3]float32{1, 1, -1}, Normal: [3]float32{0, 1, 0}},
	// -Y
	{Position: [3]float32{-1, -1, 1}, Normal: [3]float32{0, -1, 0}},
	{Position: [3]float32{-1, -1, -1}, Normal: [3]float32{0, -1, 0}},
	{Position: [3]float32{1, -1, -1}, Normal: [3]float32{0, -1, 0}},
	{Position: [3]float32{1, -1, 1}, Normal: [3]float32{0, -1, 0}},
	// +Z
	{Position: [3]float32{-1, -1, 1}, Normal: [3]float32{0, 0, 1}},
	{Position: [3]float32{1, -1, 1}, Normal: [3]float32{0, 0, 1}},
	{Position: [3]float32{1, 1, 1}, Normal: [3]float32{0, 0, 1}},
	{Position: [3]float32{-1, 1, 1}, Normal: [3]float32{0, 0, 1}},
	// -Z
	{Position: [3]float32{1, -1, -1}, Normal: [3]float32{0, 0, -1}},
	{Position: [3]float32{-1, -1, -1}, Normal: [3]float32{0, 0, -1}},
	{Position: [3]float32{-1, 1, -1}, Normal: [3]float32{0, 0, -1}},
	{Position: [3]float32{1, 1, -1}, Normal: [3]float32{0, 0, -1}},
}

// CubeIndices is 6 faces x 2 triangles x 3 indices.
var CubeIndices = []uint16{
	0, 1, 2, 0, 2, 3, // +X
	4, 5, 6, 4, 6, 7, // -X
	8, 9, 10, 8, 10, 11, // +Y
	12, 13, 14, 12, 14, 15, // -Y
	16, 17, 18, 16, 18, 19, // +Z
	20, 21, 22, 20, 22, 23, // -Z
}
