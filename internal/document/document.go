// Package document wraps the glTF document model with the narrow read/write
// surface the transforms need: accessor IO, primitive disposal and scene
// pruning.
package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/geometry"
)

// Open loads a .gltf or .glb file.
func Open(path string) (*gltf.Document, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("document: open %s: %w", path, err)
	}
	return doc, nil
}

// Save serializes the document; the container format follows the target
// extension (.glb is binary, anything else the JSON form).
func Save(doc *gltf.Document, path string) error {
	var err error
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("document: save %s: %w", path, err)
	}
	return nil
}

// HasUVs reports whether the primitive carries a TEXCOORD_0 attribute.
func HasUVs(prim *gltf.Primitive) bool {
	_, ok := prim.Attributes[gltf.TEXCOORD_0]
	return ok
}

// ReadBuffers extracts the primitive's attribute and index buffers. Normals
// and UVs are nil when the primitive lacks them; a primitive without indices
// or positions is rejected.
func ReadBuffers(doc *gltf.Document, prim *gltf.Primitive) (*geometry.Buffers, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("document: primitive has no position attribute")
	}
	if prim.Indices == nil {
		return nil, fmt.Errorf("document: primitive has no index buffer")
	}

	b := &geometry.Buffers{}
	var err error

	b.Positions, err = modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("document: read positions: %w", err)
	}
	b.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return nil, fmt.Errorf("document: read indices: %w", err)
	}
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		b.Normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("document: read normals: %w", err)
		}
	}
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		b.UVs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("document: read texcoords: %w", err)
		}
	}

	return b, nil
}

// WriteUVs stores a fresh TEXCOORD_0 accessor on the primitive.
func WriteUVs(doc *gltf.Document, prim *gltf.Primitive, uvs [][2]float32) {
	prim.Attributes[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, uvs)
}

// WritePositions replaces the primitive's POSITION accessor.
func WritePositions(doc *gltf.Document, prim *gltf.Primitive, positions [][3]float32) {
	prim.Attributes[gltf.POSITION] = modeler.WritePosition(doc, positions)
}

// WriteNormals replaces the primitive's NORMAL accessor.
func WriteNormals(doc *gltf.Document, prim *gltf.Primitive, normals [][3]float32) {
	prim.Attributes[gltf.NORMAL] = modeler.WriteNormal(doc, normals)
}

// NewPrimitive materializes rebuilt buffers as a primitive with fresh
// accessors, sharing the given material.
func NewPrimitive(doc *gltf.Document, b *geometry.Buffers, material *uint32) *gltf.Primitive {
	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: modeler.WritePosition(doc, b.Positions),
		},
		Indices:  gltf.Index(modeler.WriteIndices(doc, b.Indices)),
		Material: material,
	}
	if b.Normals != nil {
		prim.Attributes[gltf.NORMAL] = modeler.WriteNormal(doc, b.Normals)
	}
	if b.UVs != nil {
		prim.Attributes[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, b.UVs)
	}
	return prim
}

// MaterialName returns the name of the primitive's material, or "".
func MaterialName(doc *gltf.Document, prim *gltf.Primitive) string {
	if prim.Material == nil {
		return ""
	}
	return doc.Materials[*prim.Material].Name
}

// AddMeshNode appends a mesh and a node referencing it to the document and
// registers the node in the default scene. Returns the node index.
func AddMeshNode(doc *gltf.Document, name string, mesh *gltf.Mesh) uint32 {
	mesh.Name = name
	doc.Meshes = append(doc.Meshes, mesh)
	meshIdx := uint32(len(doc.Meshes) - 1)

	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(meshIdx)})
	nodeIdx := uint32(len(doc.Nodes) - 1)

	if len(doc.Scenes) > 0 {
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, nodeIdx)
	}
	return nodeIdx
}

// RemovePrimitive detaches a primitive from its mesh.
func RemovePrimitive(mesh *gltf.Mesh, prim *gltf.Primitive) {
	for i, p := range mesh.Primitives {
		if p == prim {
			mesh.Primitives = append(mesh.Primitives[:i], mesh.Primitives[i+1:]...)
			return
		}
	}
}

// PruneEmptyMeshes removes meshes left with zero primitives, along with
// nodes referencing them, remapping every index that shifts.
func PruneEmptyMeshes(doc *gltf.Document) {
	meshRemap := make(map[uint32]uint32)
	var meshes []*gltf.Mesh
	for i, mesh := range doc.Meshes {
		if len(mesh.Primitives) == 0 {
			continue
		}
		meshRemap[uint32(i)] = uint32(len(meshes))
		meshes = append(meshes, mesh)
	}
	if len(meshes) == len(doc.Meshes) {
		return
	}
	doc.Meshes = meshes

	// Drop nodes whose mesh disappeared, remap the rest.
	nodeRemap := make(map[uint32]uint32)
	var nodes []*gltf.Node
	for i, node := range doc.Nodes {
		if node.Mesh != nil {
			newIdx, ok := meshRemap[*node.Mesh]
			if !ok {
				continue
			}
			node.Mesh = gltf.Index(newIdx)
		}
		nodeRemap[uint32(i)] = uint32(len(nodes))
		nodes = append(nodes, node)
	}
	doc.Nodes = nodes

	for _, node := range doc.Nodes {
		node.Children = remapIndices(node.Children, nodeRemap)
	}
	for _, scene := range doc.Scenes {
		scene.Nodes = remapIndices(scene.Nodes, nodeRemap)
	}
}

func remapIndices(indices []uint32, remap map[uint32]uint32) []uint32 {
	out := indices[:0]
	for _, idx := range indices {
		if newIdx, ok := remap[idx]; ok {
			out = append(out, newIdx)
		}
	}
	return out
}
