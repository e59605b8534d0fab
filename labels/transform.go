// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

// Range is a handle into one of the per-frame arenas: a contiguous span
// of entries starting at Start with Length entries. Ranges never overlap
// across entries within a frame, and both arenas are cleared at the
// start of each frame.
type Range struct {
	Start, Length int
}

// End returns the exclusive end index of the range.
func (r Range) End() int { return r.Start + r.Length }

// TransformArena is a process-wide-per-frame append-only sequence of
// screen-space points. Point labels write two entries (position,
// rotation); curved labels write many (sampled spine points). It is
// reset, not reallocated, between frames, mirroring the pooling
// discipline of scene.EncodingPool: grow once, reuse forever.
type TransformArena struct {
	points []Vec2
}

// Reset truncates the arena for a new frame without releasing its
// backing array.
func (a *TransformArena) Reset() { a.points = a.points[:0] }

// Len returns the number of points currently stored.
func (a *TransformArena) Len() int { return len(a.points) }

func (a *TransformArena) append(p Vec2) int {
	a.points = append(a.points, p)
	return len(a.points) - 1
}

func (a *TransformArena) at(i int) Vec2 { return a.points[i] }

// View returns a read-only view over r, used by OBB emission and vertex
// emission once a label's transform has been written for the frame.
func (a *TransformArena) View(r Range) TransformView { return TransformView{arena: a, r: r} }

// ScreenTransform is a write cursor into a TransformArena for one
// label's projection this frame. It always appends: point and line
// labels push exactly two entries (position, rotation); curved labels
// push one per sampled spine point, a finite, non-restartable sequence
// (spec.md §4.4).
type ScreenTransform struct {
	arena *TransformArena
	r     *Range
}

// NewScreenTransform allocates a fresh, initially-empty range in arena
// that grows as the label's Update method pushes points into it.
func NewScreenTransform(arena *TransformArena, r *Range) *ScreenTransform {
	r.Start = arena.Len()
	r.Length = 0
	return &ScreenTransform{arena: arena, r: r}
}

// Push appends a screen-space point to the label's transform range.
func (t *ScreenTransform) Push(p Vec2) {
	t.arena.append(p)
	t.r.Length++
}

// Range returns the arena range written so far.
func (t *ScreenTransform) Range() Range { return *t.r }

// View returns a read-only view over the points written so far,
// equivalent to t.arena's View of t.Range().
func (t *ScreenTransform) View() TransformView { return t.arena.View(*t.r) }

// TransformView is a read-only window into a TransformArena's range,
// used by OBB emission and vertex emission after a label's Update has
// run for the frame.
type TransformView struct {
	arena *TransformArena
	r     Range
}

// Len returns the number of points in the view.
func (v TransformView) Len() int { return v.r.Length }

// At returns the i-th point in the view.
func (v TransformView) At(i int) Vec2 { return v.arena.at(v.r.Start + i) }

// Position returns entry 0: the label's screen position for point/line
// labels.
func (v TransformView) Position() Vec2 { return v.At(0) }

// Rotation returns entry 1: the label's rotation axis (cos, -sin) for
// point/line labels.
func (v TransformView) Rotation() Vec2 { return v.At(1) }

// OBBArena is a per-frame append-only sequence of oriented bounding
// boxes. A Range into this arena covers one box for point/line labels
// and many for curved labels (one per sampled segment).
type OBBArena struct {
	boxes []OBB
}

// Reset truncates the arena for a new frame.
func (a *OBBArena) Reset() { a.boxes = a.boxes[:0] }

// Len returns the number of boxes currently stored.
func (a *OBBArena) Len() int { return len(a.boxes) }

// Append adds a box and returns its index.
func (a *OBBArena) Append(o OBB) int {
	a.boxes = append(a.boxes, o)
	return len(a.boxes) - 1
}

// At returns the box at index i.
func (a *OBBArena) At(i int) OBB { return a.boxes[i] }

// Set overwrites the box at index i, used when anchor fallback re-emits
// OBBs into the same range instead of appending new ones.
func (a *OBBArena) Set(i int, o OBB) { a.boxes[i] = o }

// Slice returns the boxes within r. The returned slice is only valid
// until the next Reset.
func (a *OBBArena) Slice(r Range) []OBB { return a.boxes[r.Start:r.End()] }
