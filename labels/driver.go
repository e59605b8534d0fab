// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

import "sort"

// LabelEntry is the per-frame bookkeeping record the frame driver builds
// during collection and consumes during sort and occlusion resolution.
// It carries just enough copied state (tile, proxy flag, priority, mvp)
// to avoid chasing the label or its tile on every comparison during sort
// and on every fade-only re-tick.
type LabelEntry struct {
	Label     Label
	Tile      Tile // nil for marker-sourced labels
	Proxy     bool
	Priority  uint32
	MVP       Mat4
	Transform Range
	OBBs      Range

	// seq is a monotonic creation id assigned during collection, used as
	// the sort's final tie-break in place of the original engine's raw
	// pointer address (spec.md §9 Design Notes: "document the chosen
	// replacement"). It also keeps the sort reproducible across runs with
	// identical input, independent of allocator behavior.
	seq int
}

func (e *LabelEntry) zoom() float32 {
	if e.Tile == nil {
		return 0
	}
	return float32(e.Tile.ID().Z)
}

// Engine is the frame driver: it orchestrates collection, sort,
// occlusion resolution, proxy-transition skipping, state evaluation, and
// mesh emission for one frame at a time (spec.md §4.10).
type Engine struct {
	config EngineConfig

	transforms TransformArena
	obbArena   OBBArena
	resolver   *Resolver

	entries         []*LabelEntry
	selectionLabels map[uint32]*LabelEntry
	nextSeq         int

	lastZoom     float32
	haveLastZoom bool

	needsUpdate bool
}

// NewEngine creates an Engine with the given configuration options
// applied over DefaultEngineConfig.
func NewEngine(opts ...EngineOption) *Engine {
	cfg := DefaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = newNopLogger()
	}
	return &Engine{
		config:          cfg,
		selectionLabels: make(map[uint32]*LabelEntry),
	}
}

// NeedsUpdate reports whether any label from the last pass still has an
// animation in flight (a fade) and therefore needs another tick even
// without new input.
func (e *Engine) NeedsUpdate() bool { return e.needsUpdate }

// DefaultAnchors returns the fallback anchor list a caller building
// Options for a new label should use when it has no opinion of its own,
// letting a host retune the fallback per Engine instance (e.g. one
// Engine per map view with different label density) instead of every
// call site hardcoding AnchorCenter.
func (e *Engine) DefaultAnchors() []Anchor { return e.config.DefaultAnchors }

// DefaultTransition returns the fallback fade timings a caller building
// Options for a new label should use when it has no opinion of its own.
func (e *Engine) DefaultTransition() Transition { return e.config.DefaultTransition }

// GetLabel resolves a selection color to the label and tile that drew
// it, for hit testing. It only matches labels currently in a visible
// state (fading in, visible, or fading out); picking a sleeping, dead or
// never-shown label is treated as a miss.
func (e *Engine) GetLabel(selectionColor uint32) (Label, Tile, bool) {
	entry, ok := e.selectionLabels[selectionColor]
	if !ok || !entry.Label.VisibleState() {
		return nil, nil, false
	}
	return entry.Label, entry.Tile, true
}

// UpdateLabelSet runs the full per-frame pass: collection, sort, proxy
// transition skipping, occlusion resolution, state evaluation, and mesh
// emission (spec.md §4.10).
func (e *Engine) UpdateLabelSet(view ViewState, dtMs float32, styles []Style, tiles []Tile, markers []Marker, tileCache TileCache) {
	e.transforms.Reset()
	e.obbArena.Reset()
	e.entries = e.entries[:0]
	for k := range e.selectionLabels {
		delete(e.selectionLabels, k)
	}
	if e.resolver == nil {
		e.resolver = NewResolver(&e.obbArena, &e.transforms, view.ViewportSize)
	}

	e.needsUpdate = false
	e.collect(view, dtMs, styles, tiles, markers, false)
	e.sortEntries()

	if e.haveLastZoom && int(e.lastZoom) != int(view.Zoom) {
		e.skipZoomTransitions(view, styles, tiles, tileCache)
	}
	e.lastZoom = view.Zoom
	e.haveLastZoom = true

	e.resolver.Reset(view.ViewportSize)
	e.resolver.Resolve(e.entries)

	for _, entry := range e.entries {
		if entry.Label.EvalState(dtMs) {
			e.needsUpdate = true
		}
		if e.visibleInViewport(entry, view) {
			entry.Label.AddVerticesToMesh(e.transforms.View(entry.Transform), view.ViewportSize)
		}
	}
}

// UpdateLabels runs a partial, fade-only pass: every label from the last
// full pass is re-projected (camera/viewport may have changed slightly,
// e.g. during an inertial pan) and its state is advanced, but the sort
// and occlusion decision from the last full pass are carried forward
// unchanged (spec.md §4.10 step 1, "unless this is a transition-only
// sub-frame, in which case keep").
func (e *Engine) UpdateLabels(view ViewState, dtMs float32) {
	e.transforms.Reset()
	e.obbArena.Reset()
	for k := range e.selectionLabels {
		delete(e.selectionLabels, k)
	}

	e.needsUpdate = false
	for _, entry := range e.entries {
		var r Range
		transform := NewScreenTransform(&e.transforms, &r)
		if !entry.Label.Update(entry.MVP, view, transform) {
			continue
		}
		entry.Transform = r

		if entry.Label.SelectionColor() != 0 {
			e.selectionLabels[entry.Label.SelectionColor()] = entry
		}
		if entry.Label.EvalState(dtMs) {
			e.needsUpdate = true
		}
		entry.Label.OBBs(transform.View(), &e.obbArena, &entry.OBBs, true)
		if e.visibleInViewport(entry, view) {
			entry.Label.AddVerticesToMesh(transform.View(), view.ViewportSize)
		}
	}
}

func (e *Engine) visibleInViewport(entry *LabelEntry, view ViewState) bool {
	if !entry.Label.VisibleState() {
		return false
	}
	viewport := AABB{MinX: 0, MinY: 0, MaxX: view.ViewportSize.X, MaxY: view.ViewportSize.Y}
	for i := 0; i < entry.OBBs.Length; i++ {
		if e.obbArena.At(entry.OBBs.Start + i).Extent().Intersects(viewport) {
			return true
		}
	}
	return false
}

// collect runs processLabelUpdate over every tile x style mesh and every
// marker, per spec.md §4.10 step 2.
func (e *Engine) collect(view ViewState, dtMs float32, styles []Style, tiles []Tile, markers []Marker, onlyTransitions bool) {
	for _, tile := range tiles {
		for _, style := range styles {
			mesh, ok := tile.Mesh(style)
			if !ok {
				e.config.logger.Debug("no mesh for tile x style, skipping", "tile", tile.ID(), "style", style.ID())
				continue
			}
			for _, label := range mesh.Labels() {
				e.processLabelUpdate(label, tile, tile.IsProxy(), tile.MVP(), view, dtMs, onlyTransitions)
			}
		}
	}
	for _, marker := range markers {
		mesh := marker.Mesh()
		if mesh == nil {
			continue
		}
		for _, label := range mesh.Labels() {
			e.processLabelUpdate(label, nil, false, marker.ModelViewProjectionMatrix(), view, dtMs, onlyTransitions)
		}
	}
}

// processLabelUpdate projects one label for this frame and either queues
// it for sorting/occlusion (it can occlude and isn't already settled) or
// evaluates its state and emits its quads immediately (spec.md §4.10
// step 2). Dead labels are skipped during collection unless debug
// draw-all mode is on.
func (e *Engine) processLabelUpdate(label Label, tile Tile, proxy bool, mvp Mat4, view ViewState, dtMs float32, onlyTransitions bool) {
	if label.State() == StateDead && !e.config.DrawAllLabels {
		return
	}

	var r Range
	transform := NewScreenTransform(&e.transforms, &r)
	if !label.Update(mvp, view, transform) {
		e.config.logger.Debug("label filtered this frame (clipped or segment too short)", "kind", label.Kind())
		return
	}

	if label.SelectionColor() != 0 {
		entry := &LabelEntry{Label: label, Tile: tile, Proxy: proxy, MVP: mvp, Transform: r, seq: e.nextSeq}
		e.nextSeq++
		e.selectionLabels[label.SelectionColor()] = entry
	}

	immediate := !label.CanOcclude() || (onlyTransitions && label.VisibleState())
	if immediate {
		if label.EvalState(dtMs) {
			e.needsUpdate = true
		}
		if label.VisibleState() {
			label.AddVerticesToMesh(transform.View(), view.ViewportSize)
		}
		return
	}

	e.entries = append(e.entries, &LabelEntry{
		Label:     label,
		Tile:      tile,
		Proxy:     proxy,
		Priority:  label.Options().Priority,
		MVP:       mvp,
		Transform: r,
		seq:       e.nextSeq,
	})
	e.nextSeq++
}

// sortEntries applies the stable lexicographic priority order of
// spec.md §4.5.
func (e *Engine) sortEntries() {
	sort.SliceStable(e.entries, func(i, j int) bool {
		return less(e.entries[i], e.entries[j])
	})
}

func less(a, b *LabelEntry) bool {
	if a.Proxy != b.Proxy {
		return !a.Proxy
	}
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if (a.Tile != nil) != (b.Tile != nil) {
		return a.Tile != nil
	}
	if a.Tile != nil && b.Tile != nil {
		if az, bz := a.zoom(), b.zoom(); az != bz {
			return az > bz
		}
	}
	if a.Label.OccludedLastFrame() != b.Label.OccludedLastFrame() {
		return !a.Label.OccludedLastFrame()
	}
	if a.Label.VisibleState() != b.Label.VisibleState() {
		return a.Label.VisibleState()
	}
	if a.Label.Kind() == KindLine && b.Label.Kind() == KindLine {
		if al, bl := a.Label.WorldLineLength2(), b.Label.WorldLineLength2(); al != bl {
			return al > bl
		}
	}
	if a.Label.Hash() != b.Label.Hash() {
		return a.Label.Hash() < b.Label.Hash()
	}
	if a.Label.Kind() == KindCurved && b.Label.Kind() == KindCurved {
		if ap, bp := a.Label.CandidatePriority(), b.Label.CandidatePriority(); ap != bp {
			return ap > bp
		}
	}
	return a.seq < b.seq
}

// skipZoomTransitions implements spec.md §4.9: while the integer zoom
// level changes, labels migrating between tile levels of detail skip
// their fade-in if a visually equivalent label was already visible in
// the proxy tile last frame. The proxy tile's labels are read straight
// off its own meshes rather than off this frame's entries, since a
// proxy tile is by definition not one of this frame's active tiles and
// so has no entry of its own this pass.
func (e *Engine) skipZoomTransitions(view ViewState, styles []Style, tiles []Tile, tileCache TileCache) {
	zoomingIn := e.lastZoom < view.Zoom

	for _, tile := range tiles {
		id := tile.ID()
		var proxyIDs []TileID
		if zoomingIn {
			proxyIDs = []TileID{id.Parent()}
		} else {
			proxyIDs = []TileID{id.Child(0), id.Child(1), id.Child(2), id.Child(3)}
		}

		var proxyTiles []Tile
		for _, pid := range proxyIDs {
			if proxy, ok := tileCache.Contains(tile.SourceID(), pid); ok {
				proxyTiles = append(proxyTiles, proxy)
			}
		}
		if len(proxyTiles) == 0 {
			continue
		}

		for _, style := range styles {
			mesh, ok := tile.Mesh(style)
			if !ok {
				continue
			}
			for _, l0 := range mesh.Labels() {
				if !l0.CanOcclude() || l0.Options().RepeatGroup == 0 || l0.State() != StateNone {
					continue
				}
				for _, proxyTile := range proxyTiles {
					e.skipAgainstProxy(l0, proxyTile, style)
				}
			}
		}
	}
}

func (e *Engine) skipAgainstProxy(l0 Label, proxyTile Tile, style Style) {
	mesh, ok := proxyTile.Mesh(style)
	if !ok {
		return
	}
	for _, l1 := range mesh.Labels() {
		if !l1.CanOcclude() || l1.Options().RepeatGroup != l0.Options().RepeatGroup {
			continue
		}
		if !l1.VisibleState() {
			continue
		}
		threshold := max(l0.Dimension().X, l0.Dimension().Y)
		if Distance2(l0.ScreenCenter(), l1.ScreenCenter()) < threshold*threshold {
			l0.SkipTransitions()
			return
		}
	}
}
