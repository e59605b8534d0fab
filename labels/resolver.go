// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

import "sort"

// Resolver runs the occlusion pass (spec.md §4.8) over a sorted slice of
// LabelEntry: priority order decides who gets first claim on screen
// space, and everyone after that either finds a clear anchor or gets
// occluded. It owns the spatial index and repeat-group bookkeeping for
// the frame; the OBB/transform arenas are supplied by the caller since
// they are also written during collection, before the resolver runs.
type Resolver struct {
	spatial      *SpatialIndex
	obbs         *OBBArena
	transforms   *TransformArena
	repeatGroups map[uint64][]Vec2
}

// NewResolver creates a resolver sharing the given arenas and a spatial
// index sized to viewport.
func NewResolver(obbs *OBBArena, transforms *TransformArena, viewport Vec2) *Resolver {
	return &Resolver{
		spatial:      NewSpatialIndex(viewport),
		obbs:         obbs,
		transforms:   transforms,
		repeatGroups: make(map[uint64][]Vec2),
	}
}

// Reset clears the spatial index and repeat-group map for a new frame.
// It does not touch the arenas; those are reset by the caller once, at
// the top of the frame, before collection runs.
func (r *Resolver) Reset(viewport Vec2) {
	r.spatial.Resize(viewport)
	for k := range r.repeatGroups {
		delete(r.repeatGroups, k)
	}
}

// Resolve runs §4.8 over entries, which must already be sorted by
// priority (§4.5) with parent entries preceding their children. Each
// entry's Label.Occlude flag reflects the outcome on return.
func (r *Resolver) Resolve(entries []*LabelEntry) {
	for i, e := range entries {
		label := e.Label
		opts := label.Options()

		if parent := label.Parent(); parent != nil && parent.IsOccluded() {
			label.Occlude(true)
			// No OBBs are emitted, but the range must still anchor to the
			// current arena length so ownerOf's binary search (which
			// assumes entries[:i].OBBs.Start is non-decreasing) stays
			// correct for entries processed after this one.
			e.OBBs = Range{Start: r.obbs.Len()}
			continue
		}

		label.OBBs(r.transforms.View(e.Transform), r.obbs, &e.OBBs, true)

		if opts.RepeatDistance > 0 && r.withinRepeatDistance(opts.RepeatGroup, label.ScreenCenter(), opts.RepeatDistance) {
			label.Occlude(true)
		} else {
			label.Occlude(r.testAgainstPlaced(entries, i, e))
		}

		startAnchor := label.AnchorIndex()
		for label.IsOccluded() {
			if !label.NextAnchor() {
				break
			}
			if label.AnchorIndex() == startAnchor {
				break
			}
			label.OBBs(r.transforms.View(e.Transform), r.obbs, &e.OBBs, false)
			label.Occlude(r.testAgainstPlaced(entries, i, e))
		}

		if label.IsOccluded() {
			if opts.Required {
				if parent := label.Parent(); parent != nil {
					parent.Occlude(true)
				}
			}
			continue
		}

		for j := 0; j < e.OBBs.Length; j++ {
			idx := e.OBBs.Start + j
			ext := r.obbs.At(idx).Extent()
			ext.Tag = idx
			r.spatial.Insert(ext)
		}
		if opts.RepeatGroup != 0 {
			r.repeatGroups[opts.RepeatGroup] = append(r.repeatGroups[opts.RepeatGroup], label.ScreenCenter())
		}
	}
}

// testAgainstPlaced reports whether any of entry e's current OBBs
// overlap a previously-placed label's OBB other than one belonging to
// e's own parent (P3: a label is never occluded by its own OBB nor by
// its parent's).
func (r *Resolver) testAgainstPlaced(entries []*LabelEntry, selfIndex int, e *LabelEntry) bool {
	parent := e.Label.Parent()
	occluded := false
	for j := 0; j < e.OBBs.Length && !occluded; j++ {
		self := r.obbs.At(e.OBBs.Start + j)
		query := self.Extent()
		r.spatial.Intersect(query, func(_, cand AABB) bool {
			otherIdx := cand.Tag
			if otherIdx >= e.OBBs.Start && otherIdx < e.OBBs.End() {
				return false
			}
			owner := r.ownerOf(entries, selfIndex, otherIdx)
			if owner != nil && owner.Label == parent {
				return false
			}
			if Intersect(self, r.obbs.At(otherIdx)) {
				occluded = true
				return true
			}
			return false
		}, true)
	}
	return occluded
}

// withinRepeatDistance reports whether any already-placed label sharing
// group is within repeatDistance pixels of center (squared-distance
// compare, §4.6).
func (r *Resolver) withinRepeatDistance(group uint64, center Vec2, repeatDistance float32) bool {
	threshold := repeatDistance * repeatDistance
	for _, placed := range r.repeatGroups[group] {
		if Distance2(center, placed) < threshold {
			return true
		}
	}
	return false
}

// ownerOf resolves an OBB arena index to the entry that emitted it:
// "OBB belongs to label" is the entry among entries[:upTo] (the ones
// already fully resolved, since only placed labels are in the spatial
// index) with the greatest OBBs.Start <= idx, found by binary search
// since arena ranges are allocated in non-decreasing order as entries
// are processed (spec.md §4.8).
func (r *Resolver) ownerOf(entries []*LabelEntry, upTo, idx int) *LabelEntry {
	candidates := entries[:upTo]
	n := sort.Search(len(candidates), func(i int) bool {
		return candidates[i].OBBs.Start > idx
	})
	if n == 0 {
		return nil
	}
	return candidates[n-1]
}
