package itemdb

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// jsonItem matches one entry of the items.json schema.
type jsonItem struct {
	Title    string     `json:"title"`
	Category string     `json:"category"`
	Albedo   [3]float64 `json:"albedo"`
	Textures struct {
		Color    string `json:"color"`
		Normal   string `json:"normal"`
		MRAO     string `json:"mrao"`
		Emissive string `json:"emissive"`
	} `json:"textures"`
}

// Table maps a normalized material identifier to its definition.
type Table struct {
	entries map[string]*MaterialDefinition
}

// Load reads items.json and returns the material table.
func Load(jsonPath string) (*Table, error) {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("itemdb: read %s: %w", jsonPath, err)
	}

	var items map[string]jsonItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("itemdb: parse %s: %w", jsonPath, err)
	}

	table := &Table{entries: make(map[string]*MaterialDefinition, len(items))}
	for id, item := range items {
		def := &MaterialDefinition{
			Id:       id,
			Title:    item.Title,
			Category: item.Category,
			Albedo:   item.Albedo,
			Textures: make(map[TextureSlot]string),
		}
		if item.Textures.Color != "" {
			def.Textures[SlotColor] = item.Textures.Color
		}
		if item.Textures.Normal != "" {
			def.Textures[SlotNormal] = item.Textures.Normal
		}
		if item.Textures.MRAO != "" {
			def.Textures[SlotMRAO] = item.Textures.MRAO
		}
		if item.Textures.Emissive != "" {
			def.Textures[SlotEmissive] = item.Textures.Emissive
		}
		table.entries[normalize(id)] = def
	}

	return table, nil
}

// NewTable builds a table directly from definitions.
func NewTable(defs ...*MaterialDefinition) *Table {
	table := &Table{entries: make(map[string]*MaterialDefinition, len(defs))}
	for _, def := range defs {
		table.entries[normalize(def.Id)] = def
	}
	return table
}

// Lookup resolves a material name exported with the scene to its definition.
// Returns nil when the table has no matching entry.
func (t *Table) Lookup(name string) *MaterialDefinition {
	return t.entries[normalize(name)]
}

// Len returns the number of table entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// normalize strips the decoration the exporter adds to material names
// (suffix counters like ".001", surrounding whitespace, case).
func normalize(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndex(name, "."); i > 0 {
		suffix := name[i+1:]
		if len(suffix) > 0 && strings.Trim(suffix, "0123456789") == "" {
			name = name[:i]
		}
	}
	return strings.ToLower(name)
}
