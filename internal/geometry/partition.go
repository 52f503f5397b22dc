package geometry

// Classification tags an island as structural voxel geometry or a
// free-standing element candidate.
type Classification int

const (
	Isolated Classification = iota
	Structural
)

func (c Classification) String() string {
	if c == Structural {
		return "structural"
	}
	return "isolated"
}

// Island is a maximal set of triangles connected through shared positions.
type Island struct {
	// Triangles holds triangle ids in visitation order.
	Triangles []int
	Class     Classification

	// voxelConnections counts triangles with at least 2 vertices matching
	// the reference set.
	voxelConnections int
}

// structuralThreshold is the minimum number of voxel-connected triangles for
// an island to classify as structural. A single coincidental shared point
// must not misclassify genuinely separate geometry.
const structuralThreshold = 2

// Partition splits a primitive's triangles into islands. Triangles are
// adjacent when any of their vertices share a rounded position, not only when
// they share literal indices. When ref is non-nil, each island is classified
// against it; with a nil ref every island is isolated.
//
// The result is a strict partition of the triangle set and is independent of
// traversal order.
func Partition(indices []uint32, positions [][3]float32, ref ReferenceSet) []Island {
	adj := BuildAdjacency(indices)
	posIndex := BuildPositionIndex(positions, adj.VertexIDs())

	// Key per referenced vertex, computed once.
	keys := make(map[int]Key, len(adj.TrianglesPerVertex))
	for v := range adj.TrianglesPerVertex {
		keys[v] = PositionKey(positions[v])
	}

	triCount := len(adj.VerticesPerTriangle)
	visited := make([]bool, triCount)
	var islands []Island

	// Seeds are taken in ascending triangle order so the island list is
	// deterministic; membership does not depend on it.
	queue := make([]int, 0, 64)
	for seed := 0; seed < triCount; seed++ {
		if visited[seed] {
			continue
		}

		island := Island{}
		queue = queue[:0]
		queue = append(queue, seed)
		visited[seed] = true

		for len(queue) > 0 {
			tri := queue[0]
			queue = queue[1:]
			island.Triangles = append(island.Triangles, tri)

			matched := 0
			for _, v := range adj.VerticesPerTriangle[tri] {
				k := keys[v]
				if ref != nil && ref.Contains(k) {
					matched++
				}
				// Hop through every vertex stored at this position.
				for _, dup := range posIndex[k] {
					for _, next := range adj.TrianglesPerVertex[dup] {
						if !visited[next] {
							visited[next] = true
							queue = append(queue, next)
						}
					}
				}
			}
			if matched >= 2 {
				island.voxelConnections++
			}
		}

		if ref != nil && island.voxelConnections >= structuralThreshold {
			island.Class = Structural
		}
		islands = append(islands, island)
	}

	return islands
}

// VoxelConnections exposes the connection count for diagnostics.
func (i *Island) VoxelConnections() int {
	return i.voxelConnections
}
