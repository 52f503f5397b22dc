// Package geometry implements the mesh partitioning and projection core:
// position-keyed connectivity, island discovery and classification, island
// rebuilding and triplanar UV projection.
package geometry

import "fmt"

// Key identifies a 3D position rounded to 3 decimal places. Exporters
// duplicate vertices at UV and normal seams; two vertices with equal keys are
// the same point for connectivity purposes regardless of their indices.
type Key string

// PositionKey builds the rounded lookup key for a vertex position.
func PositionKey(p [3]float32) Key {
	return Key(fmt.Sprintf("%.3f|%.3f|%.3f", p[0], p[1], p[2]))
}

// PositionIndex maps a position key to every vertex id stored at that
// position.
type PositionIndex map[Key][]int

// BuildPositionIndex indexes the given vertex ids by their rounded position.
// When ids is nil, every vertex in positions is indexed.
func BuildPositionIndex(positions [][3]float32, ids []int) PositionIndex {
	idx := make(PositionIndex)
	if ids == nil {
		for v := range positions {
			k := PositionKey(positions[v])
			idx[k] = append(idx[k], v)
		}
		return idx
	}
	for _, v := range ids {
		k := PositionKey(positions[v])
		idx[k] = append(idx[k], v)
	}
	return idx
}

// ReferenceSet is the set of position keys belonging to known structural
// (voxel) geometry. Built once per separation pass, read-only afterward.
type ReferenceSet map[Key]struct{}

// NewReferenceSet creates an empty reference set.
func NewReferenceSet() ReferenceSet {
	return make(ReferenceSet)
}

// Add records one position.
func (r ReferenceSet) Add(p [3]float32) {
	r[PositionKey(p)] = struct{}{}
}

// AddAll records every position in the slice.
func (r ReferenceSet) AddAll(positions [][3]float32) {
	for _, p := range positions {
		r.Add(p)
	}
}

// Contains reports whether the set holds the given key.
func (r ReferenceSet) Contains(k Key) bool {
	_, ok := r[k]
	return ok
}
