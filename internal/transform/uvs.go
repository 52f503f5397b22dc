package transform

import (
	"fmt"

	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/document"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/geometry"
)

// GenerateUVs runs the triplanar projector on every primitive lacking a
// TEXCOORD_0 attribute. Primitives that already carry UVs are skipped, so
// the transform is idempotent.
type GenerateUVs struct{}

func (*GenerateUVs) Name() string { return "uvs" }

func (*GenerateUVs) Apply(s *State) error {
	cfg := geometry.Projection{
		TileSize:    s.Convert.TileSize,
		GridOffset:  s.Convert.GridOffset,
		AxisSwapped: s.AxisSwapped,
	}

	for _, mesh := range s.Doc.Meshes {
		for _, prim := range mesh.Primitives {
			if document.HasUVs(prim) {
				continue
			}
			b, err := document.ReadBuffers(s.Doc, prim)
			if err != nil {
				s.Observer.Warn(fmt.Sprintf("uvs: primitive unreadable, skipping projection: %v", err))
				continue
			}
			if b.Normals == nil {
				// Nothing to project onto.
				s.Observer.Warn(fmt.Sprintf("uvs: primitive of %q has no normals, skipping projection", mesh.Name))
				continue
			}
			uvs := geometry.ProjectUVs(b.Positions, b.Normals, b.Indices, cfg)
			document.WriteUVs(s.Doc, prim, uvs)
		}
	}
	return nil
}
