package geometry

import "github.com/wolfe-labs/DU-Mesh-Transformer/internal/mathutil"

// Projection configures the triplanar UV projector.
type Projection struct {
	// TileSize is the world-unit size of one texture tile.
	TileSize float64
	// GridOffset is subtracted from every position component before
	// projecting, aligning coordinates to the source voxel grid.
	GridOffset float64
	// AxisSwapped flips the projection uniformly when an up-axis swap ran
	// earlier, so projections stay consistent either way.
	AxisSwapped bool
}

// cardinal face directions, in tie-break order: the first direction with the
// maximal normal alignment wins.
var cardinals = [6]mathutil.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// ProjectUVs assigns a 2D texture coordinate to every vertex referenced by
// the index buffer. Per vertex, the cardinal direction best aligned with its
// normal selects the projection plane; the corrected position is projected
// onto that plane and scaled into tile-relative UV space.
//
// Vertices shared by multiple triangles are revisited; the last write wins,
// which converges to the same value for a consistent face direction.
func ProjectUVs(positions, normals [][3]float32, indices []uint32, cfg Projection) [][2]float32 {
	uvs := make([][2]float32, len(positions))

	tile := cfg.TileSize
	if tile <= 0 {
		tile = 1
	}

	for _, idx := range indices {
		v := int(idx)
		dir := faceDirection(mathutil.FromF32(normals[v]))

		p := mathutil.FromF32(positions[v])
		p = p.Sub(mathutil.Vec3{cfg.GridOffset, cfg.GridOffset, cfg.GridOffset})

		u, w := projectPlane(p, dir)
		if cfg.AxisSwapped {
			u, w = -u, -w
		}

		uvs[v] = [2]float32{
			float32(u / tile),
			// Texture V grows downward, world Y grows upward.
			float32(-(w / tile)),
		}
	}

	return uvs
}

// faceDirection returns the index into cardinals of the direction most
// aligned with the normal.
func faceDirection(n mathutil.Vec3) int {
	best := 0
	bestDot := cardinals[0].Dot(n)
	for i := 1; i < len(cardinals); i++ {
		if d := cardinals[i].Dot(n); d > bestDot {
			best = i
			bestDot = d
		}
	}
	return best
}

// projectPlane maps the 3D position onto the 2D plane orthogonal to the face
// direction. Lateral faces project on Z/Y, vertical faces on X/Z and
// longitudinal faces on X/Y; the sign flips keep textures unmirrored when
// viewed from outside the surface.
func projectPlane(p mathutil.Vec3, dir int) (u, v float64) {
	switch dir {
	case 0: // +X
		return -p[2], p[1]
	case 1: // -X
		return p[2], p[1]
	case 2: // +Y
		return p[0], p[2]
	case 3: // -Y
		return p[0], -p[2]
	case 4: // +Z
		return p[0], p[1]
	default: // -Z
		return -p[0], p[1]
	}
}
