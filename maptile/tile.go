// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package maptile

import "github.com/gogpu/gg/labels"

// styleMesh is one style's worth of labels within a tile.
type styleMesh struct {
	labels []labels.Label
}

// Labels implements labels.LabelMesh.
func (m *styleMesh) Labels() []labels.Label { return m.labels }

// Tile is a loaded vector tile: a fixed MVP matrix and, per style, the
// label mesh built from that style's layer during tile construction.
// Tile is immutable once built; rebuilding a tile (e.g. after a style
// sheet reload) means constructing a new Tile and replacing the cache
// entry, not mutating this one in place.
type Tile struct {
	id       labels.TileID
	sourceID int32
	mvp      labels.Mat4
	isProxy  bool
	meshes   map[labels.StyleID]*styleMesh
}

// NewTile creates an empty tile at id, sourced from sourceID, with the
// given model-view-projection matrix. Use AddLabels to populate each
// style's mesh before the tile is handed to the engine.
func NewTile(id labels.TileID, sourceID int32, mvp labels.Mat4) *Tile {
	return &Tile{
		id:       id,
		sourceID: sourceID,
		mvp:      mvp,
		meshes:   make(map[labels.StyleID]*styleMesh),
	}
}

// MarkProxy flags the tile as standing in for a tile at the requested
// zoom level that isn't loaded yet (spec.md §4.9).
func (t *Tile) MarkProxy(proxy bool) { t.isProxy = proxy }

// AddLabels appends lbls to the mesh for style, creating it if absent.
func (t *Tile) AddLabels(style labels.StyleID, lbls ...labels.Label) {
	m, ok := t.meshes[style]
	if !ok {
		m = &styleMesh{}
		t.meshes[style] = m
	}
	m.labels = append(m.labels, lbls...)
}

// ID implements labels.Tile.
func (t *Tile) ID() labels.TileID { return t.id }

// SourceID implements labels.Tile.
func (t *Tile) SourceID() int32 { return t.sourceID }

// MVP implements labels.Tile.
func (t *Tile) MVP() labels.Mat4 { return t.mvp }

// IsProxy implements labels.Tile.
func (t *Tile) IsProxy() bool { return t.isProxy }

// Mesh implements labels.Tile: it returns the label mesh built for
// style's id, or (nil, false) if this tile's source never produced a
// layer for that style (spec.md §7, "no mesh for tile×style: silently
// skipped").
func (t *Tile) Mesh(style labels.Style) (labels.LabelMesh, bool) {
	m, ok := t.meshes[style.ID()]
	if !ok {
		return nil, false
	}
	return m, true
}
