// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

// identityMVP is the 4x4 identity matrix: WorldToScreen reduces to the
// plain NDC-to-viewport mapping, letting tests pick world coordinates
// that land on exact, easy-to-reason-about screen pixels.
var identityMVP = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// worldForScreen returns the world-space point that WorldToScreen(identityMVP, ...)
// projects to screen under viewport, the inverse of its NDC/viewport math.
func worldForScreen(screen, viewport Vec2) Vec2 {
	return Vec2{
		X: 2*screen.X/viewport.X - 1,
		Y: 1 - 2*screen.Y/viewport.Y,
	}
}

// fakeStyle is a minimal Style for tests: one style category, matched by
// id only.
type fakeStyle struct {
	id  StyleID
	cat StyleCategory
}

func (s fakeStyle) ID() StyleID             { return s.id }
func (s fakeStyle) Category() StyleCategory { return s.cat }

// fakeMesh is a minimal LabelMesh holding a fixed label slice.
type fakeMesh struct {
	labels []Label
}

func (m fakeMesh) Labels() []Label { return m.labels }

// fakeTile is a minimal Tile for tests.
type fakeTile struct {
	id     TileID
	source int32
	mvp    Mat4
	proxy  bool
	meshes map[StyleID]fakeMesh
}

func newFakeTile(id TileID, source int32) *fakeTile {
	return &fakeTile{id: id, source: source, mvp: identityMVP, meshes: make(map[StyleID]fakeMesh)}
}

func (t *fakeTile) withLabels(style StyleID, lbls ...Label) *fakeTile {
	t.meshes[style] = fakeMesh{labels: lbls}
	return t
}

func (t *fakeTile) ID() TileID       { return t.id }
func (t *fakeTile) SourceID() int32  { return t.source }
func (t *fakeTile) MVP() Mat4        { return t.mvp }
func (t *fakeTile) IsProxy() bool    { return t.proxy }
func (t *fakeTile) Mesh(style Style) (LabelMesh, bool) {
	m, ok := t.meshes[style.ID()]
	if !ok {
		return nil, false
	}
	return m, true
}

// fakeTileCacheKey identifies a cached tile by source and id.
type fakeTileCacheKey struct {
	source int32
	id     TileID
}

// fakeTileCache is a minimal TileCache for tests.
type fakeTileCache struct {
	tiles map[fakeTileCacheKey]Tile
}

func newFakeTileCache() *fakeTileCache {
	return &fakeTileCache{tiles: make(map[fakeTileCacheKey]Tile)}
}

func (c *fakeTileCache) put(source int32, id TileID, tile Tile) {
	c.tiles[fakeTileCacheKey{source: source, id: id}] = tile
}

func (c *fakeTileCache) Contains(sourceID int32, id TileID) (Tile, bool) {
	t, ok := c.tiles[fakeTileCacheKey{source: sourceID, id: id}]
	return t, ok
}

// emptyTextLabels is a shared, empty quad container: tests only assert on
// occlusion/state/anchor outcomes, never on emitted glyph vertices, so
// every test label can safely point at the same empty container instead
// of each needing its own real one.
var emptyTextLabels = &TextLabels{}

// newPointLabel creates a collidable point label targeting the given
// screen position under identityMVP, with the given priority and
// dimension.
func newPointLabel(viewport, screen, dim Vec2, priority uint32) *TextLabel {
	opts := DefaultOptions()
	opts.Priority = priority
	return NewTextLabel(KindPoint, WorldTransform{P0: worldForScreen(screen, viewport)}, opts, VertexAttributes{}, dim, emptyTextLabels, [4]Range{}, AlignNone, 0)
}
