// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

import "log/slog"

// EngineOption configures an Engine during construction, following the
// same functional-options shape as gg.ContextOption.
type EngineOption func(*EngineConfig)

// EngineConfig holds an Engine's tunables. Every field has a spec-given
// default; callers only need EngineOption for the handful of values a
// production deployment might reasonably want to change.
type EngineConfig struct {
	// DefaultAnchors seeds Options.Anchors for callers that don't supply
	// their own anchor list.
	DefaultAnchors []Anchor

	// DefaultTransition seeds Options.Transition for callers that don't
	// supply their own fade timings.
	DefaultTransition Transition

	// DrawAllLabels disables the dead-state skip during collection, so a
	// debug overlay can still see every label regardless of lifecycle
	// state.
	DrawAllLabels bool

	logger *slog.Logger
}

// DefaultEngineConfig returns the engine's baseline configuration: a
// single center anchor, the standard fade timings, and debug draw-all
// disabled.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DefaultAnchors:    []Anchor{AnchorCenter},
		DefaultTransition: DefaultTransition(),
	}
}

// WithDefaultAnchors overrides the engine's fallback anchor list.
func WithDefaultAnchors(anchors ...Anchor) EngineOption {
	return func(c *EngineConfig) {
		c.DefaultAnchors = anchors
	}
}

// WithDefaultTransition overrides the engine's fallback fade timings.
func WithDefaultTransition(t Transition) EngineOption {
	return func(c *EngineConfig) {
		c.DefaultTransition = t
	}
}

// WithDrawAllLabels enables (or disables) debug draw-all mode.
func WithDrawAllLabels(enabled bool) EngineOption {
	return func(c *EngineConfig) {
		c.DrawAllLabels = enabled
	}
}
