// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

// Kind tags which concrete variant a Label is. Dynamic dispatch on label
// kind is implemented as an interface rather than a tagged union, since
// Go has no virtual-method inheritance to replace; each variant
// (TextLabel for point and line kinds, CurvedLabel) embeds *baseLabel and
// implements the variant-specific methods itself.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindCurved
	KindDebug
)

// State is a label's position in its fade/visibility lifecycle.
type State int

const (
	StateNone State = iota
	StateFadingIn
	StateVisible
	StateFadingOut
	StateSleep
	StateDead
	StateOutOfScreen
)

// ActivationDistanceThreshold is added to a label's collision dimensions
// when it was occluded in the previous frame, so that a hidden label
// must clear a wider margin than a visible one to reappear (P6,
// spec.md §4.4 "OBB inflation").
const ActivationDistanceThreshold = 10.0

// Label is the behavior every placeable screen object implements. It
// replaces the original engine's virtual base class: each variant
// embeds *baseLabel for the shared state machine/options/parent
// bookkeeping and implements Update/OBBs/AddVerticesToMesh/
// WorldLineLength2/CandidatePriority itself.
type Label interface {
	Kind() Kind
	Dimension() Vec2
	Options() *Options
	State() State
	Alpha() float32

	IsOccluded() bool
	Occlude(occluded bool)
	OccludedLastFrame() bool
	VisibleState() bool
	CanOcclude() bool

	AnchorIndex() int
	NextAnchor() bool
	ApplyAnchor(a Anchor)

	ScreenCenter() Vec2

	Parent() Label
	SetParent(p Label)

	SelectionColor() uint32
	Hash() uint64

	EvalState(dtMs float32) bool
	SkipTransitions()

	// Update projects the label's world transform into screen space for
	// this frame, pushing two points (point and line labels,
	// position+rotation) or one per sampled vertex (curved labels) onto
	// transform. It returns false when the label must be dropped for this
	// frame (clipped, or a line label whose segment is too short) without
	// altering State.
	Update(mvp Mat4, view ViewState, transform *ScreenTransform) bool

	// OBBs (re-)emits the label's collision OBB(s) for its current anchor,
	// reading the screen transform written by Update, into arena at r.
	// When append is true a fresh range is allocated; otherwise the
	// existing range is overwritten in place (anchor fallback re-test).
	OBBs(transform TransformView, arena *OBBArena, r *Range, append bool)

	AddVerticesToMesh(transform TransformView, screenSize Vec2)

	WorldLineLength2() float32
	CandidatePriority() float32
}

// baseLabel holds the state machine, options, and parent/anchor
// bookkeeping shared by every label variant.
type baseLabel struct {
	kind    Kind
	dim     Vec2
	options Options

	state State
	alpha float32

	occluded          bool
	occludedLastFrame bool

	anchorIndex int
	anchor      Vec2 // current anchor offset from screen position

	parent Label

	selectionColor uint32
	hash           uint64

	screenCenter Vec2
}

func newBaseLabel(kind Kind, dim Vec2, opts Options) *baseLabel {
	if len(opts.Anchors) == 0 {
		opts.Anchors = []Anchor{AnchorCenter}
	}
	return &baseLabel{kind: kind, dim: dim, options: opts, state: StateNone}
}

func (b *baseLabel) Kind() Kind         { return b.kind }
func (b *baseLabel) Dimension() Vec2    { return b.dim }
func (b *baseLabel) Options() *Options  { return &b.options }
func (b *baseLabel) State() State       { return b.state }
func (b *baseLabel) Alpha() float32     { return b.alpha }
func (b *baseLabel) CanOcclude() bool   { return b.options.Collide }
func (b *baseLabel) ScreenCenter() Vec2 { return b.screenCenter }
func (b *baseLabel) Parent() Label      { return b.parent }
func (b *baseLabel) SetParent(p Label)  { b.parent = p }
func (b *baseLabel) SelectionColor() uint32 { return b.selectionColor }
func (b *baseLabel) Hash() uint64           { return b.hash }
func (b *baseLabel) AnchorIndex() int       { return b.anchorIndex }

// Anchor returns the label's current anchor offset from its screen
// position, for the debug overlay's wireframe rendering (spec.md §6).
func (b *baseLabel) Anchor() Vec2 { return b.anchor }

func (b *baseLabel) IsOccluded() bool { return b.occluded }

// Occlude sets (or clears) the current-frame occlusion flag. It does not
// by itself touch occludedLastFrame; that bookkeeping happens once per
// frame in EvalState, the same point the original marks it via the
// driver's end-of-frame pass.
func (b *baseLabel) Occlude(occluded bool) { b.occluded = occluded }

func (b *baseLabel) OccludedLastFrame() bool { return b.occludedLastFrame }

func (b *baseLabel) VisibleState() bool {
	return b.state == StateVisible || b.state == StateFadingIn || b.state == StateFadingOut
}

// NextAnchor advances the anchor index to the next anchor in the options'
// anchor list, wrapping around at the end. It returns false only when the
// list holds a single anchor; it does not detect a return to the starting
// anchor, so callers cycling through the list track that themselves (the
// resolver does). Variants with per-anchor state (TextLabel) override it
// to apply the new anchor.
func (b *baseLabel) NextAnchor() bool {
	if len(b.options.Anchors) <= 1 {
		return false
	}
	next := (b.anchorIndex + 1) % len(b.options.Anchors)
	b.anchorIndex = next
	return true
}

// ApplyAnchor is a no-op for variants with no per-anchor text-range
// selection (CurvedLabel); TextLabel overrides it to also reselect its
// active text range.
func (b *baseLabel) ApplyAnchor(a Anchor) {}

// CandidatePriority is 0 for every variant except CurvedLabel, which
// overrides it.
func (b *baseLabel) CandidatePriority() float32 { return 0 }

// WorldLineLength2 is 0 for every variant except TextLabel, which
// overrides it (and returns a non-zero length for line labels only).
func (b *baseLabel) WorldLineLength2() float32 { return 0 }

// EvalState advances the fade animation by dtMs and applies the
// occlusion-driven transitions of spec.md §4.3. It returns true while the
// label still needs another tick (it is fading in or fading out).
func (b *baseLabel) EvalState(dtMs float32) bool {
	if b.occluded {
		if b.state == StateVisible || b.state == StateFadingIn {
			b.state = StateFadingOut
		}
		if b.state == StateFadingOut {
			if b.options.Transition.FadeOutMs <= 0 {
				b.alpha = 0
			} else {
				b.alpha -= dtMs / b.options.Transition.FadeOutMs
			}
			if b.alpha <= 0 {
				b.alpha = 0
				b.state = StateSleep
			}
		}
		b.occludedLastFrame = true
		return b.state == StateFadingOut
	}

	// Placed this frame.
	b.occludedLastFrame = false

	switch b.state {
	case StateNone, StateSleep, StateOutOfScreen:
		b.state = StateFadingIn
		b.alpha = 0
	case StateFadingOut:
		// Reoccluded then unoccluded before fully faded: resume fading in
		// from the current alpha rather than popping to 1.
		b.state = StateFadingIn
	}

	if b.state == StateFadingIn {
		if b.options.Transition.FadeInMs <= 0 {
			b.alpha = 1
			b.state = StateVisible
		} else {
			b.alpha += dtMs / b.options.Transition.FadeInMs
			if b.alpha >= 1 {
				b.alpha = 1
				b.state = StateVisible
			}
		}
	} else {
		b.state = StateVisible
		b.alpha = 1
	}

	return b.state == StateFadingIn
}

// SkipTransitions forces state = visible, alpha = 1 on a label that
// already had a visually similar label in a proxy tile last frame,
// avoiding a visible pop (spec.md §4.3, §4.9).
func (b *baseLabel) SkipTransitions() {
	b.state = StateVisible
	b.alpha = 1
}
