// Package texture implements the texture resolution pipeline: per-material
// slot lookup, decode and channel transforms, and the two-level cache that
// guarantees at most one decode per distinct file and per distinct material.
package texture

import (
	"bytes"
	"fmt"
	"image/png"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/itemdb"
)

// Bundle holds the resolved texture handles for one material's four slots.
// Unfilled slots stay nil.
type Bundle struct {
	Color    *uint32
	Normal   *uint32
	MRAO     *uint32
	Emissive *uint32
	// FlatColor is the averaged base color recorded in flat-color mode,
	// normalized to 0.0-1.0.
	FlatColor *[3]float64
}

// Resolver loads material textures into the document. Both caches live for
// one conversion run; the resolver is not safe for concurrent use.
type Resolver struct {
	doc        *gltf.Document
	dataDir    string
	flatColors bool

	byPath     map[string]uint32
	byMaterial map[string]*Bundle
	flatByTex  map[uint32][3]float64
	decodes    int

	// Notify, when set, observes every slot resolution.
	Notify func(path string, cached bool)
}

// NewResolver creates a resolver bound to one document and one game data
// directory.
func NewResolver(doc *gltf.Document, dataDir string, flatColors bool) *Resolver {
	return &Resolver{
		doc:        doc,
		dataDir:    dataDir,
		flatColors: flatColors,
		byPath:     make(map[string]uint32),
		byMaterial: make(map[string]*Bundle),
		flatByTex:  make(map[uint32][3]float64),
	}
}

// Resolve returns the texture bundle for a material definition, computing it
// on first access and reusing it afterwards. A missing or malformed texture
// file fails the whole conversion.
func (r *Resolver) Resolve(def *itemdb.MaterialDefinition) (*Bundle, error) {
	if bundle, ok := r.byMaterial[def.Id]; ok {
		return bundle, nil
	}

	bundle := &Bundle{}
	for _, slot := range itemdb.Slots {
		rel, ok := def.Textures[slot]
		if !ok {
			continue
		}
		path := filepath.Join(r.dataDir, filepath.FromSlash(rel))

		if texIdx, ok := r.byPath[path]; ok {
			// Same file backs another material's slot: reuse the
			// texture under a merged name instead of re-decoding.
			tex := r.doc.Textures[texIdx]
			tex.Name = mergeNames(tex.Name, def.Title)
			bundle.set(slot, texIdx)
			if flat, ok := r.flatByTex[texIdx]; ok && slot == itemdb.SlotColor {
				c := flat
				bundle.FlatColor = &c
			}
			if r.Notify != nil {
				r.Notify(path, true)
			}
			continue
		}

		texIdx, err := r.load(path, slot, def, bundle)
		if err != nil {
			return nil, err
		}
		bundle.set(slot, texIdx)
		if r.Notify != nil {
			r.Notify(path, false)
		}
	}

	r.byMaterial[def.Id] = bundle
	return bundle, nil
}

// load decodes one texture file, applies the slot transforms and embeds the
// result in the document. Runs once per distinct file.
func (r *Resolver) load(path string, slot itemdb.TextureSlot, def *itemdb.MaterialDefinition, bundle *Bundle) (uint32, error) {
	img, err := Load(path)
	if err != nil {
		return 0, err
	}
	r.decodes++

	if slot == itemdb.SlotMRAO {
		SwapMRAOChannels(img)
	}
	if r.flatColors && slot == itemdb.SlotColor {
		c := FlatColor(img)
		bundle.FlatColor = &c
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return 0, fmt.Errorf("texture: encode %s: %w", path, err)
	}

	name := def.Title
	imgIdx, err := modeler.WriteImage(r.doc, name, "image/png", &buf)
	if err != nil {
		return 0, fmt.Errorf("texture: embed %s: %w", path, err)
	}
	r.doc.Textures = append(r.doc.Textures, &gltf.Texture{
		Name:   name,
		Source: gltf.Index(imgIdx),
	})
	texIdx := uint32(len(r.doc.Textures) - 1)

	r.byPath[path] = texIdx
	if bundle.FlatColor != nil && slot == itemdb.SlotColor {
		r.flatByTex[texIdx] = *bundle.FlatColor
	}
	return texIdx, nil
}

// DecodeCount returns how many files have actually been decoded.
func (r *Resolver) DecodeCount() int {
	return r.decodes
}

func (b *Bundle) set(slot itemdb.TextureSlot, texIdx uint32) {
	idx := texIdx
	switch slot {
	case itemdb.SlotColor:
		b.Color = &idx
	case itemdb.SlotNormal:
		b.Normal = &idx
	case itemdb.SlotMRAO:
		b.MRAO = &idx
	case itemdb.SlotEmissive:
		b.Emissive = &idx
	}
}
