// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

import (
	"io"
	"log/slog"
	"testing"
)

func TestEngineOptionsApply(t *testing.T) {
	e := NewEngine(
		WithDefaultAnchors(AnchorTop, AnchorBottom),
		WithDefaultTransition(Transition{FadeInMs: 123, FadeOutMs: 456}),
		WithDrawAllLabels(true),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	if got := e.DefaultAnchors(); len(got) != 2 || got[0] != AnchorTop || got[1] != AnchorBottom {
		t.Fatalf("DefaultAnchors() = %v, want [Top Bottom]", got)
	}
	if got := e.DefaultTransition(); got.FadeInMs != 123 || got.FadeOutMs != 456 {
		t.Fatalf("DefaultTransition() = %+v, want {123 456}", got)
	}
	if !e.config.DrawAllLabels {
		t.Fatal("expected DrawAllLabels option to stick")
	}
}

func TestDefaultEngineHasNopLogger(t *testing.T) {
	e := NewEngine()
	if e.config.logger == nil {
		t.Fatal("expected a non-nil default (no-op) logger")
	}
}
