package itemdb

// TextureSlot names one of the four material texture slots.
type TextureSlot string

const (
	SlotColor    TextureSlot = "color"
	SlotNormal   TextureSlot = "normal"
	SlotMRAO     TextureSlot = "mrao"
	SlotEmissive TextureSlot = "emissive"
)

// Slots lists every texture slot in resolution order.
var Slots = []TextureSlot{SlotColor, SlotNormal, SlotMRAO, SlotEmissive}

// MaterialDefinition holds one material parsed from the item table.
type MaterialDefinition struct {
	Id       string
	Title    string
	Category string
	// Albedo is the base color in the 0.0-1.0 range.
	Albedo [3]float64
	// Textures maps a slot to a texture path relative to the game data dir.
	Textures map[TextureSlot]string
}
