// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

import (
	"github.com/gogpu/gg/gpucore"
	"github.com/gogpu/gg/text/msdf"
)

// Fixed-point and alpha quantization constants for vertex emission
// (spec.md §4.11, property P7).
const (
	positionScale = 4.0
	alphaScale    = 65535.0
)

// VertexState is the per-quad shared state applied to every vertex of a
// glyph quad.
type VertexState struct {
	SelectionColor uint32
	Fill           uint32
	Stroke         uint32
	Alpha          uint16
	FontScale      uint16
}

// Vertex is a single textured glyph-quad vertex, positioned in
// fixed-point screen space. Dequantizing Pos by 1/positionScale
// reproduces the screen position within 0.25px (P7).
type Vertex struct {
	Pos [2]int16
	UV  [2]float32
	VertexState
}

// QuadMesh is the atlas-scoped mesh a text style holds per texture
// atlas. PushQuad reserves the next four vertices and returns them for
// the caller to fill in; GPU buffer upload of the underlying mesh is
// out of scope and lives in the downstream renderer.
type QuadMesh interface {
	PushQuad() *[4]Vertex
}

// AtlasRefs is the set of atlas textures a TextLabels container's glyph
// quads reference, released together when the container is destroyed.
type AtlasRefs []gpucore.TextureID

// FontContext releases atlas texture references when a TextLabels
// container is released. The font context is the sole owner of atlases
// and reference-counts them; label code only increments/decrements that
// count by constructing and releasing TextLabels containers.
type FontContext interface {
	ReleaseAtlas(refs AtlasRefs)
}

// GlyphQuad is one glyph's local-space quad within a TextLabels
// container: four corner offsets (before rotation/translation to the
// label's screen position) paired with atlas UVs and an atlas index,
// derived from an msdf.Region produced by the font rasterizer.
type GlyphQuad struct {
	Pos   [4]Vec2
	UV    [4]Vec2
	Atlas int
}

// QuadFromRegion builds a GlyphQuad for a glyph occupying the local
// rectangle [x, x+w] x [y, y+h], sampling the atlas region produced by
// msdf.AtlasManager.Get.
func QuadFromRegion(x, y, w, h float32, r msdf.Region) GlyphQuad {
	return GlyphQuad{
		Pos: [4]Vec2{
			{x, y + h},
			{x + w, y + h},
			{x + w, y},
			{x, y},
		},
		UV: [4]Vec2{
			{r.U0, r.V1},
			{r.U1, r.V1},
			{r.U1, r.V0},
			{r.U0, r.V0},
		},
		Atlas: r.AtlasIndex,
	}
}

// VertexAttributes holds the fill/stroke/selection-color/font-scale
// state shared by every glyph quad of a TextLabel. The preferred
// alignment is passed to NewTextLabel separately.
type VertexAttributes struct {
	SelectionColor uint32
	Fill           uint32
	Stroke         uint32
	FontScale      uint16
}

// TextLabels owns the glyph quads shared by one or more text ranges of a
// single styled label instance (e.g. the three alignments of a
// point label's text) and the atlas references those quads draw from.
// Labels hold only a non-owning back reference to their TextLabels
// container; the container is released once, by its owner (typically
// the tile or marker mesh), not by the labels themselves.
type TextLabels struct {
	Quads []GlyphQuad

	// Meshes maps an atlas index (GlyphQuad.Atlas) to the mesh that
	// owns its vertex buffer, mirroring the original engine's
	// style.getMeshes().
	Meshes map[int]QuadMesh

	fontContext FontContext
	atlasRefs   AtlasRefs
	released    bool
}

// NewTextLabels creates a container for quads sampling the given atlas
// references and drawing into meshes, releasing the references via fc
// when Release is called.
func NewTextLabels(quads []GlyphQuad, meshes map[int]QuadMesh, refs AtlasRefs, fc FontContext) *TextLabels {
	return &TextLabels{Quads: quads, Meshes: meshes, fontContext: fc, atlasRefs: refs}
}

// Release returns the container's atlas references to the font context.
// Safe to call more than once; only the first call has effect.
func (t *TextLabels) Release() {
	if t.released || t.fontContext == nil {
		return
	}
	t.fontContext.ReleaseAtlas(t.atlasRefs)
	t.released = true
}

// AtlasRefCounter is a minimal FontContext backed by an
// msdf.AtlasManager: it reference-counts atlas texture ids so that a texture
// is only eligible for eviction once every TextLabels container
// referencing it has been released. Atlas eviction policy itself belongs
// to the msdf package and is out of scope here.
type AtlasRefCounter struct {
	manager  *msdf.AtlasManager
	counts   map[gpucore.TextureID]int
}

// NewAtlasRefCounter wraps an msdf.AtlasManager for use as a label
// FontContext.
func NewAtlasRefCounter(manager *msdf.AtlasManager) *AtlasRefCounter {
	return &AtlasRefCounter{manager: manager, counts: make(map[gpucore.TextureID]int)}
}

// Acquire increments the reference count for each atlas texture id and
// returns it as an AtlasRefs suitable for a TextLabels container.
func (c *AtlasRefCounter) Acquire(ids []gpucore.TextureID) AtlasRefs {
	refs := make(AtlasRefs, len(ids))
	for i, id := range ids {
		c.counts[id]++
		refs[i] = id
	}
	return refs
}

// ReleaseAtlas implements FontContext.
func (c *AtlasRefCounter) ReleaseAtlas(refs AtlasRefs) {
	for _, id := range refs {
		if n, ok := c.counts[id]; ok {
			if n <= 1 {
				delete(c.counts, id)
			} else {
				c.counts[id] = n - 1
			}
		}
	}
}

// RefCount reports the current reference count for an atlas texture id,
// primarily for tests.
func (c *AtlasRefCounter) RefCount(id gpucore.TextureID) int {
	return c.counts[id]
}
