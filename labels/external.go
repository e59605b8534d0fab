// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

// ViewState describes the camera for the current frame. Camera/view
// matrix computation itself is an external collaborator; the engine only
// consumes the already-computed viewport size and zoom.
type ViewState struct {
	ViewportSize Vec2
	Zoom         float32
}

// TileID identifies a vector tile in the standard XYZ pyramid.
type TileID struct {
	X, Y, Z int32
}

// Parent returns the tile's parent at Z-1.
func (id TileID) Parent() TileID {
	return TileID{X: id.X >> 1, Y: id.Y >> 1, Z: id.Z - 1}
}

// Child returns one of the tile's four children at Z+1, index in [0,4).
func (id TileID) Child(index int) TileID {
	return TileID{
		X: id.X*2 + int32(index&1),
		Y: id.Y*2 + int32((index>>1)&1),
		Z: id.Z + 1,
	}
}

// LabelMesh exposes the labels owned by a tile or marker mesh for a
// given style. It stands in for the original engine's LabelSet,
// reached via Tile.Mesh/Marker.Mesh; font rasterization and vertex
// buffer layout for the mesh itself are out of scope here.
type LabelMesh interface {
	Labels() []Label
}

// StyleCategory classifies a Style for dispatch, replacing the original
// engine's dynamic_cast<TextStyle*>/dynamic_cast<PointStyle*> checks.
type StyleCategory int

const (
	StyleOther StyleCategory = iota
	StyleText
	StylePoint
)

// StyleID identifies a style within the active style sheet.
type StyleID int32

// Style is the style-sheet entry a tile or marker's mesh was built
// against. Style evaluation itself (parsing filters/expressions) is out
// of scope.
type Style interface {
	ID() StyleID
	Category() StyleCategory
}

// Tile is a loaded vector tile, as produced by the (external) tile
// parsing/caching subsystem.
type Tile interface {
	ID() TileID
	SourceID() int32
	MVP() Mat4
	IsProxy() bool
	Mesh(style Style) (LabelMesh, bool)
}

// TileCache looks up a tile by source and tile ID, used only for proxy
// discovery during zoom transitions (spec.md §4.9).
type TileCache interface {
	Contains(sourceID int32, id TileID) (Tile, bool)
}

// Marker is a user-authored point or line annotation that participates
// in label placement exactly like a tile label, but is not tied to a
// tile. Marker authoring itself is out of scope.
type Marker interface {
	StyleID() StyleID
	Mesh() LabelMesh
	ModelViewProjectionMatrix() Mat4
}
