package transform

import "github.com/wolfe-labs/DU-Mesh-Transformer/internal/document"

// SwapUpAxis converts a Z-up export to Y-up by rotating every position and
// normal. The swap is recorded on the pipeline state so the UV projector
// compensates with its uniform sign flip.
type SwapUpAxis struct{}

func (*SwapUpAxis) Name() string { return "swapaxis" }

func (*SwapUpAxis) Apply(s *State) error {
	for _, mesh := range s.Doc.Meshes {
		for _, prim := range mesh.Primitives {
			b, err := document.ReadBuffers(s.Doc, prim)
			if err != nil {
				continue
			}
			for i, p := range b.Positions {
				b.Positions[i] = [3]float32{p[0], p[2], -p[1]}
			}
			document.WritePositions(s.Doc, prim, b.Positions)
			if b.Normals != nil {
				for i, n := range b.Normals {
					b.Normals[i] = [3]float32{n[0], n[2], -n[1]}
				}
				document.WriteNormals(s.Doc, prim, b.Normals)
			}
		}
	}
	s.AxisSwapped = true
	return nil
}
