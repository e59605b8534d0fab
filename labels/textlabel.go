// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

// TextLabel is the point- and line-anchored text label variant: it
// projects one (point) or two (line) world anchors to a single screen
// position and rotation, and draws glyph quads from a shared TextLabels
// container. It is grounded directly on the original engine's
// TextLabel::updateScreenTransform/obbs/addVerticesToMesh.
type TextLabel struct {
	*baseLabel

	worldTransform WorldTransform
	textLabels     *TextLabels
	// textRanges indexes Quads by TextAlign (AlignNone is unused as an
	// index; AlignCenter/Left/Right each name a contiguous run of quads
	// within the shared container).
	textRanges        [4]Range
	fontAttrib        VertexAttributes
	preferedAlignment TextAlign
	textRangeIndex    int
}

// NewTextLabel creates a point or line text label. kind must be
// KindPoint, KindLine, or KindDebug. textRanges maps each TextAlign
// value to the run of quads within labelsContainer active for that
// alignment; an empty range at the preferred alignment falls back to
// textRanges[AlignCenter]. hash is the label's content hash (e.g. of its
// shaped text), used only to break priority-sort ties between two labels
// that are otherwise identical (spec.md §3, §4.5 rule 8).
func NewTextLabel(kind Kind, transform WorldTransform, opts Options, attrib VertexAttributes,
	dim Vec2, labelsContainer *TextLabels, textRanges [4]Range, preferedAlignment TextAlign, hash uint64) *TextLabel {

	// Every kind keeps the RepeatDistance configured in opts; no per-kind
	// override is applied here.
	t := &TextLabel{
		baseLabel:         newBaseLabel(kind, dim, opts),
		worldTransform:    transform,
		textLabels:        labelsContainer,
		textRanges:        textRanges,
		fontAttrib:        attrib,
		preferedAlignment: preferedAlignment,
	}
	t.selectionColor = attrib.SelectionColor
	t.hash = hash
	t.applyAnchor(opts.Anchors[0])
	return t
}

// applyAnchor selects the active text range for anchor and recomputes
// the anchor offset from the label's (and its parent's) dimension.
func (t *TextLabel) applyAnchor(anchor Anchor) {
	align := t.preferedAlignment
	if align == AlignNone {
		align = AlignFromAnchor(anchor)
	}
	t.textRangeIndex = int(align)
	if t.textRanges[t.textRangeIndex].Length == 0 {
		t.textRangeIndex = int(AlignCenter)
	}

	offset := t.dim
	if t.parent != nil {
		offset = offset.Add(t.parent.Dimension())
	}
	dir := anchor.Direction()
	t.anchor = Vec2{dir.X * offset.X * 0.5, dir.Y * offset.Y * 0.5}
}

// ApplyAnchor implements Label: it selects the text range and anchor
// offset for a, the same step NextAnchor performs after advancing the
// anchor index.
func (t *TextLabel) ApplyAnchor(a Anchor) {
	t.applyAnchor(a)
}

// NextAnchor advances the anchor and reapplies it so the text range and
// anchor offset stay consistent with the new anchor, per spec.md §4.4.
func (t *TextLabel) NextAnchor() bool {
	if !t.baseLabel.NextAnchor() {
		return false
	}
	t.applyAnchor(t.options.Anchors[t.anchorIndex])
	return true
}

// Update projects the label's world anchor(s) into screen space. For
// point labels this is a single projected point plus options.Offset;
// for line labels it projects both endpoints, aborts if either is
// clipped or the projected segment is too short relative to the label's
// width, and centers the label on the segment midpoint.
func (t *TextLabel) Update(mvp Mat4, view ViewState, transform *ScreenTransform) bool {
	switch t.kind {
	case KindPoint, KindDebug:
		sp, clipped := WorldToScreen(mvp, t.worldTransform.P0.X, t.worldTransform.P0.Y, view.ViewportSize)
		if clipped {
			return false
		}
		t.screenCenter = sp
		transform.Push(sp.Add(t.options.Offset))
		transform.Push(Vec2{1, 0})
		return true

	case KindLine:
		ap0, clipped0 := WorldToScreen(mvp, t.worldTransform.P0.X, t.worldTransform.P0.Y, view.ViewportSize)
		ap2, clipped2 := WorldToScreen(mvp, t.worldTransform.P2.X, t.worldTransform.P2.Y, view.ViewportSize)
		if clipped0 || clipped2 {
			return false
		}

		length := ap2.Sub(ap0).Length()
		minLength := t.dim.X * 0.7
		if length < minLength {
			return false
		}

		midWorld := Vec2{
			X: (t.worldTransform.P0.X + t.worldTransform.P2.X) * 0.5,
			Y: (t.worldTransform.P0.Y + t.worldTransform.P2.Y) * 0.5,
		}
		sp, clippedMid := WorldToScreen(mvp, midWorld.X, midWorld.Y, view.ViewportSize)
		if clippedMid {
			return false
		}

		var d Vec2
		if ap0.X <= ap2.X {
			d = ap2.Sub(ap0)
		} else {
			d = ap0.Sub(ap2)
		}
		rotation := Vec2{d.X / length, -d.Y / length}

		t.screenCenter = sp
		transform.Push(sp.Add(RotateBy(t.options.Offset, rotation)))
		transform.Push(rotation)
		return true
	}
	return false
}

// WorldLineLength2 returns the squared world-space segment length for
// line labels, used by the priority sort's tie-break rule (spec.md
// §4.5 rule 7). Point labels return 0.
func (t *TextLabel) WorldLineLength2() float32 {
	if t.kind != KindLine {
		return 0
	}
	d := t.worldTransform.P0.Sub(t.worldTransform.P2)
	return d.Length2()
}

// OBBs (re-)emits the label's single collision OBB for its current
// anchor. Dimensions shrink by options.Buffer, grow by
// ActivationDistanceThreshold when the label was occluded last frame
// (hysteresis, P6), and shrink by 4px when the label's debug state is
// dead (a debug-only affordance carried over from the original engine).
func (t *TextLabel) OBBs(transform TransformView, arena *OBBArena, r *Range, appendRange bool) {
	dim := t.dim.Sub(t.options.Buffer)
	if t.occludedLastFrame {
		dim = dim.Add(Vec2{ActivationDistanceThreshold, ActivationDistanceThreshold})
	}
	if t.state == StateDead {
		dim = dim.Sub(Vec2{4, 4})
	}

	rotation := transform.Rotation()
	obb := NewOBB(transform.Position().Add(t.anchor), Vec2{rotation.X, -rotation.Y}, dim.X*0.5, dim.Y*0.5)

	if appendRange {
		r.Start = arena.Append(obb)
		r.Length = 1
		return
	}
	arena.Set(r.Start, obb)
	r.Length = 1
}

// AddVerticesToMesh writes the active text range's glyph quads into the
// atlas-specific meshes, culling each quad against an expanded screen
// AABB and encoding positions as fixed-point 16-bit integers scaled by
// positionScale (spec.md §4.11, property P7).
func (t *TextLabel) AddVerticesToMesh(transform TransformView, screenSize Vec2) {
	if !t.VisibleState() {
		return
	}

	state := VertexState{
		SelectionColor: t.fontAttrib.SelectionColor,
		Fill:           t.fontAttrib.Fill,
		Stroke:         t.fontAttrib.Stroke,
		Alpha:          uint16(t.alpha * alphaScale),
		FontScale:      t.fontAttrib.FontScale,
	}

	rotation := transform.Rotation()
	rotate := rotation.X != 1

	sp := transform.Position().Add(t.anchor)
	spFixed := Vec2{sp.X * positionScale, sp.Y * positionScale}

	minX := -t.dim.Y * positionScale
	minY := minX
	maxX := (screenSize.X + t.dim.Y) * positionScale
	maxY := (screenSize.Y + t.dim.Y) * positionScale

	tr := t.textRanges[t.textRangeIndex]
	for _, quad := range t.textLabels.Quads[tr.Start:tr.End()] {
		var pos [4][2]int16
		visible := false
		for i, p := range quad.Pos {
			var off Vec2
			if rotate {
				off = RotateBy(p, rotation)
			} else {
				off = p
			}
			px := spFixed.X + off.X*positionScale
			py := spFixed.Y + off.Y*positionScale
			pos[i] = [2]int16{int16(px), int16(py)}
			if !visible && px > minX && px < maxX && py > minY && py < maxY {
				visible = true
			}
		}
		if !visible {
			continue
		}

		mesh, ok := t.textLabels.Meshes[quad.Atlas]
		if !ok {
			continue
		}
		verts := mesh.PushQuad()
		for i := range verts {
			verts[i].Pos = pos[i]
			verts[i].UV = [2]float32{quad.UV[i].X, quad.UV[i].Y}
			verts[i].VertexState = state
		}
	}
}
