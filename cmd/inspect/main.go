// inspect prints the structure of a scene export: nodes, meshes, primitives,
// materials, and the island breakdown of every primitive.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/document"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/geometry"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: inspect <file.glb|file.gltf>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	doc, err := document.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d nodes, %d meshes, %d materials, %d textures\n",
		path, len(doc.Nodes), len(doc.Meshes), len(doc.Materials), len(doc.Textures))

	for mi, mesh := range doc.Meshes {
		fmt.Printf("mesh %d %q: %d primitives\n", mi, mesh.Name, len(mesh.Primitives))
		for pi, prim := range mesh.Primitives {
			b, err := document.ReadBuffers(doc, prim)
			if err != nil {
				fmt.Printf("  primitive %d: unreadable: %v\n", pi, err)
				continue
			}

			uvs := "no UVs"
			if document.HasUVs(prim) {
				uvs = "has UVs"
			}
			fmt.Printf("  primitive %d: material %q, %d vertices, %d triangles, %s\n",
				pi, document.MaterialName(doc, prim), len(b.Positions), b.TriangleCount(), uvs)

			islands := geometry.Partition(b.Indices, b.Positions, nil)
			for ii, island := range islands {
				fmt.Printf("    island %d: %d triangles\n", ii, len(island.Triangles))
			}
		}
	}
}
