// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

// CurvedLabel samples a polyline and places one oriented segment per
// sample, each carrying its own glyph quads. spec.md specifies this
// variant as a capability rather than in full detail (§2, §4.4); this
// implementation follows the same contract as TextLabel (Update/OBBs/
// AddVerticesToMesh/WorldLineLength2) plus CandidatePriority, the one
// method unique to curved labels used by the priority sort's tie-break
// rule (spec.md §4.5 rule 9).
type CurvedLabel struct {
	*baseLabel

	worldPoints []Vec2 // polyline vertices in tile mercator space
	textLabels  *TextLabels
	fontAttrib  VertexAttributes
	priority    float32

	// segmentQuads[i] is the glyph-quad range (into textLabels.Quads)
	// drawn along segment i of the sampled screen-space polyline.
	segmentQuads []Range
}

// NewCurvedLabel creates a curved label that samples worldPoints (at
// least two points) and draws segmentQuads[i] along the i-th segment.
// hash is the label's content hash, used only to break priority-sort ties
// (spec.md §3, §4.5 rule 8).
func NewCurvedLabel(worldPoints []Vec2, opts Options, attrib VertexAttributes, dim Vec2,
	labelsContainer *TextLabels, segmentQuads []Range, candidatePriority float32, hash uint64) *CurvedLabel {

	c := &CurvedLabel{
		baseLabel:    newBaseLabel(KindCurved, dim, opts),
		worldPoints:  worldPoints,
		textLabels:   labelsContainer,
		fontAttrib:   attrib,
		priority:     candidatePriority,
		segmentQuads: segmentQuads,
	}
	c.selectionColor = attrib.SelectionColor
	c.hash = hash
	return c
}

// CandidatePriority overrides baseLabel's zero default; it is an
// upstream-computed score (e.g. how well the sampled polyline follows
// the original line geometry) used only to break ties between two
// curved labels in the priority sort.
func (c *CurvedLabel) CandidatePriority() float32 { return c.priority }

// Update projects every polyline vertex into screen space, pushing one
// point per vertex onto transform: a non-restartable, finite sequence of
// sample points sized to len(worldPoints) rather than the fixed
// two-entry sequence point and line labels write (spec.md §4.4). It
// aborts the label for this frame if any vertex is clipped.
func (c *CurvedLabel) Update(mvp Mat4, view ViewState, transform *ScreenTransform) bool {
	if len(c.worldPoints) < 2 {
		return false
	}
	for _, wp := range c.worldPoints {
		sp, clipped := WorldToScreen(mvp, wp.X, wp.Y, view.ViewportSize)
		if clipped {
			return false
		}
		transform.Push(sp)
	}
	c.screenCenter = transform.View().At(transform.View().Len() / 2)
	return true
}

// OBBs emits one oriented box per sampled screen-space segment, each
// axis-aligned to that segment's direction.
func (c *CurvedLabel) OBBs(transform TransformView, arena *OBBArena, r *Range, appendRange bool) {
	dim := c.dim.Sub(c.options.Buffer)
	if c.occludedLastFrame {
		dim = dim.Add(Vec2{ActivationDistanceThreshold, ActivationDistanceThreshold})
	}

	n := max(transform.Len()-1, 0)
	if appendRange {
		r.Start = -1
		r.Length = 0
	}
	for i := 0; i < n; i++ {
		p0, p1 := transform.At(i), transform.At(i+1)
		d := p1.Sub(p0)
		length := d.Length()
		if length == 0 {
			continue
		}
		axis := Vec2{d.X / length, d.Y / length}
		mid := Vec2{(p0.X + p1.X) * 0.5, (p0.Y + p1.Y) * 0.5}
		obb := NewOBB(mid, axis, length*0.5, dim.Y*0.5)

		if appendRange {
			idx := arena.Append(obb)
			if r.Start < 0 {
				r.Start = idx
			}
			r.Length++
		} else if i < r.Length {
			arena.Set(r.Start+i, obb)
		}
	}
}

// AddVerticesToMesh draws each segment's glyph-quad range at that
// segment's sampled position/rotation. screenSize is part of the Label
// interface (TextLabel uses it to clamp its emitted quad to the
// viewport) but a curved label's segments are already clipped per
// vertex during Update, so it goes unused here.
func (c *CurvedLabel) AddVerticesToMesh(transform TransformView, screenSize Vec2) {
	if !c.VisibleState() || c.textLabels == nil {
		return
	}
	state := VertexState{
		SelectionColor: c.fontAttrib.SelectionColor,
		Fill:           c.fontAttrib.Fill,
		Stroke:         c.fontAttrib.Stroke,
		Alpha:          uint16(c.alpha * alphaScale),
		FontScale:      c.fontAttrib.FontScale,
	}
	n := transform.Len()
	for i := 0; i < len(c.segmentQuads) && i+1 < n; i++ {
		p0, p1 := transform.At(i), transform.At(i+1)
		d := p1.Sub(p0)
		length := d.Length()
		if length == 0 {
			continue
		}
		rotation := Vec2{d.X / length, -d.Y / length}
		sp := Vec2{(p0.X + p1.X) * 0.5 * positionScale, (p0.Y + p1.Y) * 0.5 * positionScale}

		tr := c.segmentQuads[i]
		for _, quad := range c.textLabels.Quads[tr.Start:tr.End()] {
			mesh, ok := c.textLabels.Meshes[quad.Atlas]
			if !ok {
				continue
			}
			verts := mesh.PushQuad()
			for j, p := range quad.Pos {
				off := RotateBy(p, rotation)
				verts[j].Pos = [2]int16{
					int16(sp.X + off.X*positionScale),
					int16(sp.Y + off.Y*positionScale),
				}
				verts[j].UV = [2]float32{quad.UV[j].X, quad.UV[j].Y}
				verts[j].VertexState = state
			}
		}
	}
}
