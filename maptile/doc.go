// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package maptile provides a concrete vector-tile and tile cache backing
// the labels package's Tile/TileCache interfaces: a loaded tile's
// per-style label meshes, and an LRU cache keyed by (source, tile id)
// used to discover proxy tiles while zooming (labels.Engine's §4.9
// proxy-transition skipping).
package maptile
