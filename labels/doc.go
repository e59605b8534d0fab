// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package labels implements the label placement and occlusion engine for a
// vector-tile map renderer built on gogpu/gg.
//
// On every frame the engine receives a changing set of candidate
// text/point labels coming from tiles and markers, projects them into
// screen space, and decides which labels are visible, which are hidden by
// higher-priority neighbors, and how each one fades in or out over time.
// The output is a set of screen-space vertex quads pushed into
// per-texture-atlas meshes that a downstream renderer draws.
//
// The engine is synchronous and single-threaded: one call to
// [Engine.UpdateLabelSet] runs to completion on one goroutine before mesh
// upload. Vector-tile parsing, style evaluation, font rasterization, GPU
// mesh upload, and camera/view matrix computation are external
// collaborators reached only through the interfaces in external.go and
// mesh.go.
package labels
