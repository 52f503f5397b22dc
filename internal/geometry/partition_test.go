package geometry

import (
	"math/rand"
	"sort"
	"testing"
)

// quad builds two triangles covering a unit quad in the XY plane at the given
// origin, appending to the buffers. Vertices are duplicated per triangle the
// way seam-splitting exporters store them.
func quad(b *Buffers, x, y float32) {
	base := uint32(len(b.Positions))
	corners := [4][3]float32{
		{x, y, 0}, {x + 1, y, 0}, {x + 1, y + 1, 0}, {x, y + 1, 0},
	}
	// Triangle 1: 0,1,2. Triangle 2: 0,2,3 with its own vertex copies.
	for _, c := range [][3]float32{corners[0], corners[1], corners[2], corners[0], corners[2], corners[3]} {
		b.Positions = append(b.Positions, c)
	}
	b.Indices = append(b.Indices, base, base+1, base+2, base+3, base+4, base+5)
}

func sortedIslands(islands []Island) [][]int {
	out := make([][]int, len(islands))
	for i, is := range islands {
		tris := append([]int(nil), is.Triangles...)
		sort.Ints(tris)
		out[i] = tris
	}
	sort.Slice(out, func(a, b int) bool { return out[a][0] < out[b][0] })
	return out
}

func TestPartitionCompleteAndDisjoint(t *testing.T) {
	b := &Buffers{}
	quad(b, 0, 0)
	quad(b, 0, 1) // shares an edge with the first quad (duplicated vertices)
	quad(b, 10, 10)

	islands := Partition(b.Indices, b.Positions, nil)

	if len(islands) != 2 {
		t.Fatalf("expected 2 islands, got %d", len(islands))
	}

	seen := make(map[int]int)
	total := 0
	for _, is := range islands {
		for _, tri := range is.Triangles {
			seen[tri]++
			total++
		}
	}
	if total != b.TriangleCount() {
		t.Errorf("expected %d triangles across islands, got %d", b.TriangleCount(), total)
	}
	for tri, count := range seen {
		if count != 1 {
			t.Errorf("triangle %d appears in %d islands", tri, count)
		}
	}
}

func TestPartitionHopsThroughDuplicatedPositions(t *testing.T) {
	b := &Buffers{}
	quad(b, 0, 0)
	quad(b, 1, 0) // adjacent through shared positions only, no shared indices

	islands := Partition(b.Indices, b.Positions, nil)
	if len(islands) != 1 {
		t.Fatalf("expected 1 island through position duplicates, got %d", len(islands))
	}
	if len(islands[0].Triangles) != 4 {
		t.Errorf("expected 4 triangles, got %d", len(islands[0].Triangles))
	}
}

func TestPartitionOrderIndependence(t *testing.T) {
	b := &Buffers{}
	quad(b, 0, 0)
	quad(b, 1, 0)
	quad(b, 5, 5)
	quad(b, 5, 6)
	quad(b, -3, 2)

	want := sortedIslands(Partition(b.Indices, b.Positions, nil))

	// Reversed triangle order.
	rev := &Buffers{Positions: b.Positions}
	for tri := b.TriangleCount() - 1; tri >= 0; tri-- {
		rev.Indices = append(rev.Indices, b.Indices[tri*3], b.Indices[tri*3+1], b.Indices[tri*3+2])
	}
	got := Partition(rev.Indices, rev.Positions, nil)
	if len(got) != len(want) {
		t.Fatalf("reversed order: expected %d islands, got %d", len(want), len(got))
	}

	// Shuffled triangle order, with a fixed seed.
	rng := rand.New(rand.NewSource(7))
	perm := rng.Perm(b.TriangleCount())
	shuf := &Buffers{Positions: b.Positions}
	for _, tri := range perm {
		shuf.Indices = append(shuf.Indices, b.Indices[tri*3], b.Indices[tri*3+1], b.Indices[tri*3+2])
	}
	got = Partition(shuf.Indices, shuf.Positions, nil)
	if len(got) != len(want) {
		t.Fatalf("shuffled order: expected %d islands, got %d", len(want), len(got))
	}

	// Island sizes must match as multisets.
	sizes := func(islands [][]int) []int {
		out := make([]int, len(islands))
		for i, is := range islands {
			out[i] = len(is)
		}
		sort.Ints(out)
		return out
	}
	wantSizes := sizes(want)
	gotSizes := sizes(sortedIslands(got))
	for i := range wantSizes {
		if wantSizes[i] != gotSizes[i] {
			t.Errorf("island size mismatch at %d: want %d, got %d", i, wantSizes[i], gotSizes[i])
		}
	}
}

func TestClassificationThreshold(t *testing.T) {
	b := &Buffers{}
	quad(b, 0, 0)

	// 3 of the 4 quad corners coincide with reference positions: both
	// triangles reach the 2-vertex threshold, so the island is structural.
	ref := NewReferenceSet()
	ref.Add([3]float32{0, 0, 0})
	ref.Add([3]float32{1, 0, 0})
	ref.Add([3]float32{1, 1, 0})

	islands := Partition(b.Indices, b.Positions, ref)
	if len(islands) != 1 {
		t.Fatalf("expected 1 island, got %d", len(islands))
	}
	if islands[0].Class != Structural {
		t.Errorf("expected structural, got %s (connections=%d)", islands[0].Class, islands[0].VoxelConnections())
	}

	// Only one corner in the reference set: neither triangle reaches 2
	// matched vertices, the island stays isolated.
	ref = NewReferenceSet()
	ref.Add([3]float32{0, 0, 0})
	islands = Partition(b.Indices, b.Positions, ref)
	if islands[0].Class != Isolated {
		t.Errorf("expected isolated with a single touching point, got %s", islands[0].Class)
	}

	// Two reference corners both on the first triangle: that triangle
	// counts one voxel connection, still below the island threshold of 2.
	ref = NewReferenceSet()
	ref.Add([3]float32{1, 0, 0})
	ref.Add([3]float32{1, 1, 0})
	islands = Partition(b.Indices, b.Positions, ref)
	if islands[0].VoxelConnections() != 1 {
		t.Errorf("expected 1 voxel connection, got %d", islands[0].VoxelConnections())
	}
	if islands[0].Class != Isolated {
		t.Errorf("expected isolated below threshold, got %s", islands[0].Class)
	}

	// No reference set: always isolated.
	islands = Partition(b.Indices, b.Positions, nil)
	if islands[0].Class != Isolated {
		t.Errorf("expected isolated without a reference set, got %s", islands[0].Class)
	}
}

func TestClassificationSingleTriangleBelowThreshold(t *testing.T) {
	// One triangle fully inside the reference set counts one voxel
	// connection; the island threshold needs two, so it stays isolated.
	b := &Buffers{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	ref := NewReferenceSet()
	ref.AddAll(b.Positions)

	islands := Partition(b.Indices, b.Positions, ref)
	if len(islands) != 1 {
		t.Fatalf("expected 1 island, got %d", len(islands))
	}
	if islands[0].Class != Isolated {
		t.Errorf("expected isolated for a single connected triangle, got %s", islands[0].Class)
	}
}

func TestRebuild(t *testing.T) {
	b := &Buffers{}
	quad(b, 0, 0)
	quad(b, 10, 10)
	b.Normals = make([][3]float32, len(b.Positions))
	b.UVs = make([][2]float32, len(b.Positions))
	for i := range b.Normals {
		b.Normals[i] = [3]float32{0, 0, 1}
		b.UVs[i] = [2]float32{float32(i), float32(i)}
	}

	// Rebuild the second quad (triangles 2 and 3).
	out := b.Rebuild([]int{2, 3})

	if out.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", out.TriangleCount())
	}
	if len(out.Positions) != 6 {
		t.Errorf("expected 6 local vertices, got %d", len(out.Positions))
	}
	if len(out.Normals) != 6 || len(out.UVs) != 6 {
		t.Errorf("expected normals and UVs carried over, got %d/%d", len(out.Normals), len(out.UVs))
	}
	// Local indices start at zero and stay in range.
	for _, idx := range out.Indices {
		if int(idx) >= len(out.Positions) {
			t.Errorf("index %d out of range %d", idx, len(out.Positions))
		}
	}
	if out.Indices[0] != 0 {
		t.Errorf("expected re-indexing from 0, got %d", out.Indices[0])
	}
	// Geometry preserved: first rebuilt vertex is the quad's first corner.
	if out.Positions[0] != [3]float32{10, 10, 0} {
		t.Errorf("unexpected first position: %v", out.Positions[0])
	}
	// UVs preserved per source vertex (vertex 6 was the first of quad 2).
	if out.UVs[0] != [2]float32{6, 6} {
		t.Errorf("unexpected first UV: %v", out.UVs[0])
	}
}
