package transform

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/document"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/geometry"
)

// SeparateElements partitions every primitive of the document's single mesh
// into islands and splits free-standing element geometry away from the
// structural voxel shell. Structural islands are merged back into one
// rebuilt primitive on the existing mesh; each isolated island becomes its
// own mesh and node.
type SeparateElements struct{}

func (*SeparateElements) Name() string { return "separate" }

func (*SeparateElements) Apply(s *State) error {
	doc := s.Doc

	// Structural classification only makes sense against one exported
	// mesh with material information; anything else is left as-is.
	if len(doc.Meshes) != 1 {
		s.Observer.Warn(fmt.Sprintf("separate: expected exactly one mesh, found %d; skipping", len(doc.Meshes)))
		return nil
	}
	if len(doc.Materials) == 0 {
		s.Observer.Warn("separate: document has no materials; skipping")
		return nil
	}

	mesh := doc.Meshes[0]
	subjects := append([]*gltf.Primitive(nil), mesh.Primitives...)

	buffers := make(map[*gltf.Primitive]*geometry.Buffers, len(subjects))
	for i, prim := range subjects {
		b, err := document.ReadBuffers(doc, prim)
		if err != nil {
			s.Observer.Warn(fmt.Sprintf("separate: primitive %d unreadable, excluded from separation: %v", i, err))
			continue
		}
		buffers[prim] = b
	}

	for _, prim := range subjects {
		b := buffers[prim]
		if b == nil {
			continue
		}
		matName := document.MaterialName(doc, prim)

		// Known structural positions: every vertex of every primitive
		// not sharing the subject's material.
		ref := geometry.NewReferenceSet()
		for _, other := range subjects {
			if other == prim || buffers[other] == nil {
				continue
			}
			if sameMaterial(prim, other) {
				continue
			}
			ref.AddAll(buffers[other].Positions)
		}

		islands := geometry.Partition(b.Indices, b.Positions, ref)
		for _, island := range islands {
			s.Observer.Island(matName, len(island.Triangles), island.Class == geometry.Structural)
		}

		// A single structural island is the whole primitive already.
		if len(islands) == 1 && islands[0].Class == geometry.Structural {
			continue
		}

		var structural []int
		isolated := 0
		for _, island := range islands {
			if island.Class == geometry.Structural {
				structural = append(structural, island.Triangles...)
				continue
			}
			isolated++
			rebuilt := b.Rebuild(island.Triangles)
			name := isolatedName(mesh.Name, matName, isolated)
			document.AddMeshNode(doc, name, &gltf.Mesh{
				Primitives: []*gltf.Primitive{document.NewPrimitive(doc, rebuilt, prim.Material)},
			})
		}
		if len(structural) > 0 {
			rebuilt := b.Rebuild(structural)
			mesh.Primitives = append(mesh.Primitives, document.NewPrimitive(doc, rebuilt, prim.Material))
		}

		document.RemovePrimitive(mesh, prim)
	}

	document.PruneEmptyMeshes(doc)
	return nil
}

func sameMaterial(a, b *gltf.Primitive) bool {
	if a.Material == nil || b.Material == nil {
		return a.Material == b.Material
	}
	return *a.Material == *b.Material
}

// isolatedName names a split-off island mesh after its source mesh and
// material. Islands after the first of a material carry an ordinal so names
// stay unique within the scene.
func isolatedName(meshName, matName string, ordinal int) string {
	if meshName == "" {
		meshName = matName
	}
	if ordinal > 1 {
		return fmt.Sprintf("%s: %s (Isolated %d)", meshName, matName, ordinal)
	}
	return fmt.Sprintf("%s: %s (Isolated)", meshName, matName)
}
