// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package labels

import (
	"context"
	"log/slog"
)

// nopHandler discards every record; Enabled returns false so the caller
// skips attribute formatting entirely when no logger has been set,
// mirroring gg's own zero-cost-when-disabled logging discipline.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// WithLogger attaches a structured logger to an Engine. Filtered
// conditions (clipped projection, short segment, missing tile mesh) are
// logged at Debug level only when a logger has been set; by default an
// Engine logs nothing, since spec.md's error-handling design treats
// these as routine filtering, not failures worth a default log line.
func WithLogger(l *slog.Logger) EngineOption {
	return func(c *EngineConfig) {
		c.logger = l
	}
}
