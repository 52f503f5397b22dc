package transform

import "github.com/qmuntal/gltf"

// Textures resolves each material's texture bundle and attaches the handles
// to the corresponding material slots. In flat-color mode the averaged color
// replaces the base-color texture.
type Textures struct{}

func (*Textures) Name() string { return "textures" }

func (*Textures) Apply(s *State) error {
	for _, mat := range s.Doc.Materials {
		def := s.Items.Lookup(mat.Name)
		if def == nil || len(def.Textures) == 0 {
			continue
		}

		bundle, err := s.Resolver.Resolve(def)
		if err != nil {
			return err
		}

		if mat.PBRMetallicRoughness == nil {
			mat.PBRMetallicRoughness = &gltf.PBRMetallicRoughness{}
		}
		pbr := mat.PBRMetallicRoughness

		switch {
		case bundle.FlatColor != nil:
			c := *bundle.FlatColor
			pbr.BaseColorFactor = &[4]float32{float32(c[0]), float32(c[1]), float32(c[2]), 1}
		case bundle.Color != nil:
			pbr.BaseColorTexture = &gltf.TextureInfo{Index: *bundle.Color}
		}
		if bundle.Normal != nil {
			mat.NormalTexture = &gltf.NormalTexture{Index: gltf.Index(*bundle.Normal)}
		}
		if bundle.MRAO != nil {
			pbr.MetallicRoughnessTexture = &gltf.TextureInfo{Index: *bundle.MRAO}
		}
		if bundle.Emissive != nil {
			mat.EmissiveTexture = &gltf.TextureInfo{Index: *bundle.Emissive}
		}
	}
	return nil
}
