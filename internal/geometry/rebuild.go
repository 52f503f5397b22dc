package geometry

// Buffers holds one primitive's vertex attribute arrays. Normals and UVs may
// be nil when the source primitive lacks them.
type Buffers struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Indices   []uint32
}

// Rebuild materializes the given triangle set as freshly allocated,
// contiguously indexed buffers. Vertices are re-indexed from 0 in order of
// first use; per-vertex position, normal and UV data is preserved. Seam
// duplicates are kept as stored, not merged.
func (b *Buffers) Rebuild(triangles []int) *Buffers {
	out := &Buffers{
		Indices: make([]uint32, 0, len(triangles)*3),
	}
	if b.Normals != nil {
		out.Normals = make([][3]float32, 0)
	}
	if b.UVs != nil {
		out.UVs = make([][2]float32, 0)
	}

	remap := make(map[uint32]uint32)
	for _, tri := range triangles {
		for i := 0; i < 3; i++ {
			old := b.Indices[tri*3+i]
			local, ok := remap[old]
			if !ok {
				local = uint32(len(out.Positions))
				remap[old] = local
				out.Positions = append(out.Positions, b.Positions[old])
				if b.Normals != nil {
					out.Normals = append(out.Normals, b.Normals[old])
				}
				if b.UVs != nil {
					out.UVs = append(out.UVs, b.UVs[old])
				}
			}
			out.Indices = append(out.Indices, local)
		}
	}

	return out
}

// TriangleCount returns the number of whole triangles in the index buffer.
func (b *Buffers) TriangleCount() int {
	return len(b.Indices) / 3
}
