package geometry

// Adjacency is the triangle-vertex bipartite adjacency of one primitive's
// index buffer: each triangle knows its 3 vertices, each vertex its incident
// triangles.
type Adjacency struct {
	VerticesPerTriangle [][3]int
	TrianglesPerVertex  map[int][]int
}

// BuildAdjacency reads the index buffer in consecutive triples. A trailing
// partial triple is ignored.
func BuildAdjacency(indices []uint32) *Adjacency {
	triCount := len(indices) / 3
	adj := &Adjacency{
		VerticesPerTriangle: make([][3]int, triCount),
		TrianglesPerVertex:  make(map[int][]int),
	}
	for t := 0; t < triCount; t++ {
		for i := 0; i < 3; i++ {
			v := int(indices[t*3+i])
			adj.VerticesPerTriangle[t][i] = v
			adj.TrianglesPerVertex[v] = append(adj.TrianglesPerVertex[v], t)
		}
	}
	return adj
}

// VertexIDs returns the distinct vertex ids referenced by the index buffer.
func (a *Adjacency) VertexIDs() []int {
	ids := make([]int, 0, len(a.TrianglesPerVertex))
	for v := range a.TrianglesPerVertex {
		ids = append(ids, v)
	}
	return ids
}
