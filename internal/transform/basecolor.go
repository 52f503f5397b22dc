package transform

import "github.com/qmuntal/gltf"

// BaseColors sets every material's base-color factor from the item table
// albedo. Materials without a table entry are left untouched.
type BaseColors struct{}

func (*BaseColors) Name() string { return "basecolors" }

func (*BaseColors) Apply(s *State) error {
	for _, mat := range s.Doc.Materials {
		def := s.Items.Lookup(mat.Name)
		if def == nil {
			continue
		}
		if mat.PBRMetallicRoughness == nil {
			mat.PBRMetallicRoughness = &gltf.PBRMetallicRoughness{}
		}
		mat.PBRMetallicRoughness.BaseColorFactor = &[4]float32{
			float32(def.Albedo[0]),
			float32(def.Albedo[1]),
			float32(def.Albedo[2]),
			1,
		}
	}
	return nil
}
