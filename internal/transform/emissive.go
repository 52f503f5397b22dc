package transform

import "strings"

// Emissive tunes emissive factors after texture resolution: materials with a
// resolved emissive map glow at full strength, glowing categories without
// one fall back to their albedo.
type Emissive struct{}

func (*Emissive) Name() string { return "emissive" }

func (*Emissive) Apply(s *State) error {
	for _, mat := range s.Doc.Materials {
		if mat.EmissiveTexture != nil {
			mat.EmissiveFactor = [3]float32{1, 1, 1}
			continue
		}
		def := s.Items.Lookup(mat.Name)
		if def == nil || !glowing(def.Category) {
			continue
		}
		mat.EmissiveFactor = [3]float32{
			float32(def.Albedo[0]),
			float32(def.Albedo[1]),
			float32(def.Albedo[2]),
		}
	}
	return nil
}

func glowing(category string) bool {
	category = strings.ToLower(category)
	return strings.Contains(category, "emissive") || strings.Contains(category, "luminescent")
}
