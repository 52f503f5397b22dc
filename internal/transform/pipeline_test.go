package transform

import (
	"errors"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/itemdb"
)

func TestNewPipelineUnknownTransform(t *testing.T) {
	if _, err := New([]string{"basecolors", "nope"}); err == nil {
		t.Error("expected error for unknown transform name")
	}
}

type failingTransform struct{}

func (failingTransform) Name() string       { return "boom" }
func (failingTransform) Apply(*State) error { return errors.New("boom") }

type countingTransform struct {
	calls *int
}

func (countingTransform) Name() string { return "count" }
func (c countingTransform) Apply(*State) error {
	*c.calls++
	return nil
}

func TestPipelineFailFast(t *testing.T) {
	calls := 0
	p := &Pipeline{transforms: []Transform{
		countingTransform{&calls},
		failingTransform{},
		countingTransform{&calls},
	}}

	err := p.Run(&State{Doc: gltf.NewDocument(), Items: itemdb.NewTable()})
	if err == nil {
		t.Fatal("expected pipeline error")
	}
	if calls != 1 {
		t.Errorf("expected the queue to abort after the failure, got %d calls", calls)
	}
}

func TestBaseColors(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Materials = []*gltf.Material{
		{Name: "Steel"},
		{Name: "Unknown"},
	}

	items := itemdb.NewTable(&itemdb.MaterialDefinition{
		Id:     "Steel",
		Albedo: [3]float64{0.5, 0.25, 0.125},
	})
	s := &State{Doc: doc, Items: items, Observer: NopObserver{}}

	if err := (&BaseColors{}).Apply(s); err != nil {
		t.Fatal(err)
	}

	pbr := doc.Materials[0].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		t.Fatal("expected base color factor set for Steel")
	}
	want := [4]float32{0.5, 0.25, 0.125, 1}
	if *pbr.BaseColorFactor != want {
		t.Errorf("expected %v, got %v", want, *pbr.BaseColorFactor)
	}

	// Lookup misses are skipped silently, not an error.
	if doc.Materials[1].PBRMetallicRoughness != nil {
		t.Error("expected unknown material untouched")
	}
}

func TestEmissive(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Materials = []*gltf.Material{
		{Name: "WithMap", EmissiveTexture: &gltf.TextureInfo{Index: 0}},
		{Name: "GlowNoMap"},
		{Name: "Plain"},
	}

	items := itemdb.NewTable(
		&itemdb.MaterialDefinition{Id: "GlowNoMap", Category: "emissive glass", Albedo: [3]float64{0.1, 0.3, 0.9}},
		&itemdb.MaterialDefinition{Id: "Plain", Category: "metal"},
	)
	s := &State{Doc: doc, Items: items, Observer: NopObserver{}}

	if err := (&Emissive{}).Apply(s); err != nil {
		t.Fatal(err)
	}

	if doc.Materials[0].EmissiveFactor != [3]float32{1, 1, 1} {
		t.Errorf("expected full-strength factor with a map, got %v", doc.Materials[0].EmissiveFactor)
	}
	want := [3]float32{0.1, 0.3, 0.9}
	if doc.Materials[1].EmissiveFactor != want {
		t.Errorf("expected albedo factor for glowing category, got %v", doc.Materials[1].EmissiveFactor)
	}
	if doc.Materials[2].EmissiveFactor != [3]float32{} {
		t.Errorf("expected plain material untouched, got %v", doc.Materials[2].EmissiveFactor)
	}
}
