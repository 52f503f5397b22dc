// texdump resolves one material's texture slots and dumps each one as a
// WebP file for inspection, after the same transforms the pipeline applies.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"

	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/config"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/itemdb"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/texture"
)

func main() {
	gameDir := flag.String("game", "", "Game data directory (default: $GAME_PATH)")
	items := flag.String("items", "", "Path to items.json (default: <game>/items.json)")
	material := flag.String("material", "", "Material identifier to dump")
	outDir := flag.String("out", ".", "Output directory")

	flag.Parse()

	if *material == "" {
		fmt.Fprintln(os.Stderr, "Usage: texdump -material <id> [-game <dir>] [-out <dir>]")
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.Resolve(config.Flags{DataDir: *gameDir, ItemTable: *items})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	table, err := itemdb.Load(cfg.Game.ItemTable)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	def := table.Lookup(*material)
	if def == nil {
		fmt.Fprintf(os.Stderr, "Error: no item table entry for %q\n", *material)
		os.Exit(1)
	}

	dumped := 0
	for _, slot := range itemdb.Slots {
		rel, ok := def.Textures[slot]
		if !ok {
			continue
		}
		path := filepath.Join(cfg.Game.DataDir, filepath.FromSlash(rel))

		img, err := texture.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if slot == itemdb.SlotMRAO {
			texture.SwapMRAOChannels(img)
		}

		out := filepath.Join(*outDir, fmt.Sprintf("%s_%s.webp", def.Id, slot))
		f, err := os.Create(out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := nativewebp.Encode(f, img, nil); err != nil {
			f.Close()
			fmt.Fprintf(os.Stderr, "Error encoding %s: %v\n", out, err)
			os.Exit(1)
		}
		f.Close()

		fmt.Printf("%s: %s -> %s\n", slot, rel, out)
		dumped++
	}

	if dumped == 0 {
		fmt.Printf("material %q has no textures\n", def.Id)
	}
}
