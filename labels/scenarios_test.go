// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

import "testing"

var scenarioViewport = Vec2{800, 600}

func TestScenarioPriorityOcclusion(t *testing.T) {
	style := fakeStyle{id: 1, cat: StyleText}
	hi := newPointLabel(scenarioViewport, Vec2{400, 300}, Vec2{80, 20}, 0)
	lo := newPointLabel(scenarioViewport, Vec2{420, 305}, Vec2{80, 20}, 1)

	tile := newFakeTile(TileID{X: 0, Y: 0, Z: 10}, 1).withLabels(style.id, hi, lo)
	engine := NewEngine()
	engine.UpdateLabelSet(ViewState{ViewportSize: scenarioViewport, Zoom: 10}, 1000, []Style{style}, []Tile{tile}, nil, newFakeTileCache())

	if hi.IsOccluded() {
		t.Fatal("expected higher-priority label to remain unoccluded")
	}
	if !lo.IsOccluded() {
		t.Fatal("expected lower-priority overlapping label to be occluded")
	}
}

func TestScenarioRepeatGroupSpacing(t *testing.T) {
	style := fakeStyle{id: 1, cat: StyleText}
	l1 := newPointLabel(scenarioViewport, Vec2{400, 300}, Vec2{6, 6}, 0)
	l2 := newPointLabel(scenarioViewport, Vec2{410, 300}, Vec2{6, 6}, 0)
	l3 := newPointLabel(scenarioViewport, Vec2{500, 300}, Vec2{6, 6}, 0)
	for _, l := range []*TextLabel{l1, l2, l3} {
		l.Options().RepeatGroup = 7
		l.Options().RepeatDistance = 50
	}

	tile := newFakeTile(TileID{X: 0, Y: 0, Z: 10}, 1).withLabels(style.id, l1, l2, l3)
	engine := NewEngine()
	engine.UpdateLabelSet(ViewState{ViewportSize: scenarioViewport, Zoom: 10}, 1000, []Style{style}, []Tile{tile}, nil, newFakeTileCache())

	if l1.IsOccluded() {
		t.Fatal("expected first label in the repeat group to be placed")
	}
	if !l2.IsOccluded() {
		t.Fatal("expected second label, within repeatDistance of the first, to be occluded")
	}
	if l3.IsOccluded() {
		t.Fatal("expected third label, outside repeatDistance, to be placed")
	}
}

func TestScenarioAnchorFallback(t *testing.T) {
	style := fakeStyle{id: 1, cat: StyleText}

	obstacle := newPointLabel(scenarioViewport, Vec2{400, 306}, Vec2{20, 10}, 0)
	primary := NewTextLabel(KindPoint,
		WorldTransform{P0: worldForScreen(Vec2{400, 300}, scenarioViewport)},
		func() Options {
			o := DefaultOptions()
			o.Anchors = []Anchor{AnchorCenter, AnchorTop}
			return o
		}(),
		VertexAttributes{}, Vec2{80, 20}, emptyTextLabels, [4]Range{}, AlignNone, 0)

	// obstacle must be resolved first: equal priority, same tile, so the
	// tie-break falls through to insertion order (seq).
	tile := newFakeTile(TileID{X: 0, Y: 0, Z: 10}, 1).withLabels(style.id, obstacle, primary)
	engine := NewEngine()
	engine.UpdateLabelSet(ViewState{ViewportSize: scenarioViewport, Zoom: 10}, 1000, []Style{style}, []Tile{tile}, nil, newFakeTileCache())

	if obstacle.IsOccluded() {
		t.Fatal("expected obstacle to be placed at its only anchor")
	}
	if primary.IsOccluded() {
		t.Fatal("expected primary label to fall back to an unoccluded anchor rather than stay occluded")
	}
	if primary.AnchorIndex() != 1 {
		t.Fatalf("anchorIndex = %d, want 1 (the fallback top anchor)", primary.AnchorIndex())
	}
	if got := primary.Anchor(); got.X != 0 || got.Y != -10 {
		t.Fatalf("anchor offset = %+v, want (0, -10)", got)
	}
}

func TestScenarioLineLabelTooShort(t *testing.T) {
	opts := DefaultOptions()
	label := NewTextLabel(KindLine,
		WorldTransform{
			P0: worldForScreen(Vec2{100, 100}, scenarioViewport),
			P2: worldForScreen(Vec2{150, 100}, scenarioViewport),
		},
		opts, VertexAttributes{}, Vec2{200, 20}, emptyTextLabels, [4]Range{}, AlignNone, 0)

	var arena TransformArena
	var r Range
	transform := NewScreenTransform(&arena, &r)
	view := ViewState{ViewportSize: scenarioViewport, Zoom: 10}

	if label.Update(identityMVP, view, transform) {
		t.Fatal("expected a segment shorter than 0.7*dim.X to be rejected")
	}
	if label.State() != StateNone {
		t.Fatalf("state = %v, want unchanged (None)", label.State())
	}
}

func TestScenarioFadeOutOnOcclusion(t *testing.T) {
	opts := DefaultOptions()
	opts.Transition = Transition{FadeInMs: 200, FadeOutMs: 250}
	label := NewTextLabel(KindPoint, WorldTransform{P0: Vec2{0, 0}}, opts, VertexAttributes{}, Vec2{50, 20}, emptyTextLabels, [4]Range{}, AlignNone, 0)

	label.Occlude(false)
	label.EvalState(1000) // reach Visible, alpha=1

	label.Occlude(true)
	needsUpdate := label.EvalState(100)

	if !needsUpdate {
		t.Fatal("expected fade-out to still need another tick")
	}
	if label.State() != StateFadingOut {
		t.Fatalf("state = %v, want FadingOut", label.State())
	}
	if label.Alpha() < 0.59 || label.Alpha() > 0.61 {
		t.Fatalf("alpha = %v, want ~0.6 (1 - 100/250)", label.Alpha())
	}
}

func TestScenarioProxySkipOnZoomIn(t *testing.T) {
	style := fakeStyle{id: 1, cat: StyleText}
	styles := []Style{style}
	cache := newFakeTileCache()

	parentID := TileID{X: 0, Y: 0, Z: 14}
	parentLabel := newPointLabel(scenarioViewport, Vec2{400, 300}, Vec2{30, 10}, 0)
	parentLabel.Options().RepeatGroup = 7
	parentTile := newFakeTile(parentID, 1).withLabels(style.id, parentLabel)
	cache.put(1, parentID, parentTile)

	engine := NewEngine()
	view1 := ViewState{ViewportSize: scenarioViewport, Zoom: 14}
	engine.UpdateLabelSet(view1, 1000, styles, []Tile{parentTile}, nil, cache)
	if !parentLabel.VisibleState() {
		t.Fatal("expected parent-tile label to reach a visible state in frame 1")
	}

	childID := parentID.Child(0)
	childLabel := newPointLabel(scenarioViewport, Vec2{400, 310}, Vec2{30, 10}, 0)
	childLabel.Options().RepeatGroup = 7
	childTile := newFakeTile(childID, 1)
	childTile.proxy = false
	childTile.withLabels(style.id, childLabel)

	view2 := ViewState{ViewportSize: scenarioViewport, Zoom: 15}
	engine.UpdateLabelSet(view2, 0, styles, []Tile{childTile}, nil, cache)

	if childLabel.State() != StateVisible || childLabel.Alpha() != 1 {
		t.Fatalf("state=%v alpha=%v, want the zoom-in proxy skip to force Visible/1 immediately", childLabel.State(), childLabel.Alpha())
	}
}
