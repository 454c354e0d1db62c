// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"log/slog"

	"github.com/bureau-foundation/orgbot/lib/config"
)

// newLogger builds the process logger: human-readable text on stderr
// for development, JSON on stdout everywhere else.
func newLogger(cfg *config.Config, stdout, stderr io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Environment == config.Development {
		return slog.New(slog.NewTextHandler(stderr, options))
	}
	return slog.New(slog.NewJSONHandler(stdout, options))
}
