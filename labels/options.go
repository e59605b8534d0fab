// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

// Anchor is one of the nine named offsets relative to a label's center
// that determines how its OBB sits around the screen position.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorTop
	AnchorBottom
	AnchorLeft
	AnchorRight
	AnchorTopLeft
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Direction returns the unit-ish direction the anchor displaces the
// label's center: e.g. AnchorTop pushes the box up so its bottom edge
// sits at the anchor point.
func (a Anchor) Direction() Vec2 {
	switch a {
	case AnchorTop:
		return Vec2{0, -1}
	case AnchorBottom:
		return Vec2{0, 1}
	case AnchorLeft:
		return Vec2{-1, 0}
	case AnchorRight:
		return Vec2{1, 0}
	case AnchorTopLeft:
		return Vec2{-1, -1}
	case AnchorTopRight:
		return Vec2{1, -1}
	case AnchorBottomLeft:
		return Vec2{-1, 1}
	case AnchorBottomRight:
		return Vec2{1, 1}
	default:
		return Vec2{0, 0}
	}
}

// TextAlign selects which pre-shaped text range is active for a given
// anchor: a label placed to the left of its point reads better with
// right-aligned text (aligned toward the point), and so on.
type TextAlign int

const (
	AlignNone TextAlign = iota
	AlignCenter
	AlignLeft
	AlignRight
)

// AlignFromAnchor maps an anchor to the text alignment that reads best
// when the label sits at that anchor.
func AlignFromAnchor(a Anchor) TextAlign {
	switch a {
	case AnchorLeft, AnchorTopLeft, AnchorBottomLeft:
		return AlignRight
	case AnchorRight, AnchorTopRight, AnchorBottomRight:
		return AlignLeft
	default:
		return AlignCenter
	}
}

// Transition holds the fade timings for a label, in milliseconds.
type Transition struct {
	SelectTimeMs float32
	FadeInMs     float32
	FadeOutMs    float32
}

// DefaultTransition returns the engine's default fade timings.
func DefaultTransition() Transition {
	return Transition{SelectTimeMs: 200, FadeInMs: 300, FadeOutMs: 300}
}

// Options configures placement and lifecycle behavior for a single
// label. Fields mirror the original engine's Label::Options one to one.
type Options struct {
	// Priority: lower value is higher priority.
	Priority uint32

	// Anchors is cycled for fallback placement; must be non-empty.
	Anchors []Anchor

	// Offset in screen pixels, rotated with the label axis for line
	// labels.
	Offset Vec2

	// Buffer is subtracted from dimensions for collision purposes only.
	Buffer Vec2

	// RepeatGroup is an equivalence key; 0 disables grouping.
	RepeatGroup uint64

	// RepeatDistance in pixels; 0 disables repeat culling.
	RepeatDistance float32

	// Required: if true and this label (as a child) is occluded, its
	// parent is occluded too.
	Required bool

	Transition Transition

	// Collide: participates in occlusion; non-colliding labels are
	// always placed.
	Collide bool
}

// DefaultOptions returns Options with a single center anchor, collision
// enabled, and the engine's default transition timings.
func DefaultOptions() Options {
	return Options{
		Priority:   0,
		Anchors:    []Anchor{AnchorCenter},
		Transition: DefaultTransition(),
		Collide:    true,
	}
}
