package texture

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/itemdb"
)

func writePNG(t *testing.T, dir, name string, c [4]uint8) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:], c[:])
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestResolveDeduplicatesSharedFiles(t *testing.T) {
	dir := t.TempDir()
	shared := writePNG(t, dir, "shared_normal.png", [4]uint8{128, 128, 255, 255})

	doc := gltf.NewDocument()
	r := NewResolver(doc, dir, false)

	a := &itemdb.MaterialDefinition{
		Id: "MatA", Title: "ShinySteel",
		Textures: map[itemdb.TextureSlot]string{itemdb.SlotNormal: shared},
	}
	b := &itemdb.MaterialDefinition{
		Id: "MatB", Title: "MatteSteel",
		Textures: map[itemdb.TextureSlot]string{itemdb.SlotNormal: shared},
	}

	bundleA, err := r.Resolve(a)
	if err != nil {
		t.Fatalf("Resolve(a): %v", err)
	}
	bundleB, err := r.Resolve(b)
	if err != nil {
		t.Fatalf("Resolve(b): %v", err)
	}

	if r.DecodeCount() != 1 {
		t.Errorf("expected exactly 1 decode, got %d", r.DecodeCount())
	}
	if bundleA.Normal == nil || bundleB.Normal == nil {
		t.Fatal("expected normal slot resolved for both materials")
	}
	if *bundleA.Normal != *bundleB.Normal {
		t.Errorf("expected shared texture handle, got %d and %d", *bundleA.Normal, *bundleB.Normal)
	}
	if len(doc.Textures) != 1 {
		t.Errorf("expected 1 document texture, got %d", len(doc.Textures))
	}
	if doc.Textures[0].Name != "ShinyMatteSteel" {
		t.Errorf("expected merged name ShinyMatteSteel, got %q", doc.Textures[0].Name)
	}
}

func TestResolveCachesPerMaterial(t *testing.T) {
	dir := t.TempDir()
	color := writePNG(t, dir, "color.png", [4]uint8{255, 0, 0, 255})

	doc := gltf.NewDocument()
	r := NewResolver(doc, dir, false)

	def := &itemdb.MaterialDefinition{
		Id: "Mat", Title: "Red",
		Textures: map[itemdb.TextureSlot]string{itemdb.SlotColor: color},
	}

	first, err := r.Resolve(def)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Resolve(def)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("expected the same bundle instance on repeat resolution")
	}
	if r.DecodeCount() != 1 {
		t.Errorf("expected 1 decode, got %d", r.DecodeCount())
	}
}

func TestResolveMissingFileFails(t *testing.T) {
	doc := gltf.NewDocument()
	r := NewResolver(doc, t.TempDir(), false)

	def := &itemdb.MaterialDefinition{
		Id: "Mat", Title: "Broken",
		Textures: map[itemdb.TextureSlot]string{itemdb.SlotColor: "missing.png"},
	}
	if _, err := r.Resolve(def); err == nil {
		t.Error("expected error for missing texture file")
	}
}

func TestResolveFlatColor(t *testing.T) {
	dir := t.TempDir()
	color := writePNG(t, dir, "green.png", [4]uint8{0, 255, 0, 255})

	doc := gltf.NewDocument()
	r := NewResolver(doc, dir, true)

	def := &itemdb.MaterialDefinition{
		Id: "Mat", Title: "Green",
		Textures: map[itemdb.TextureSlot]string{itemdb.SlotColor: color},
	}

	bundle, err := r.Resolve(def)
	if err != nil {
		t.Fatal(err)
	}
	if bundle.FlatColor == nil {
		t.Fatal("expected flat color recorded")
	}
	c := *bundle.FlatColor
	if c[0] > 0.01 || c[1] < 0.99 || c[2] > 0.01 {
		t.Errorf("expected pure green, got %v", c)
	}
}

func TestResolveNotify(t *testing.T) {
	dir := t.TempDir()
	shared := writePNG(t, dir, "n.png", [4]uint8{128, 128, 255, 255})

	doc := gltf.NewDocument()
	r := NewResolver(doc, dir, false)

	type event struct {
		path   string
		cached bool
	}
	var events []event
	r.Notify = func(path string, cached bool) {
		events = append(events, event{path, cached})
	}

	defA := &itemdb.MaterialDefinition{Id: "A", Title: "A",
		Textures: map[itemdb.TextureSlot]string{itemdb.SlotNormal: shared}}
	defB := &itemdb.MaterialDefinition{Id: "B", Title: "B",
		Textures: map[itemdb.TextureSlot]string{itemdb.SlotNormal: shared}}

	if _, err := r.Resolve(defA); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Resolve(defB); err != nil {
		t.Fatal(err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].cached || !events[1].cached {
		t.Errorf("expected miss then hit, got %+v", events)
	}
}
