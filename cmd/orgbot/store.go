// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/orgbot/lib/config"
	"github.com/bureau-foundation/orgbot/lib/processed"
)

// openStore opens the processed-set backend selected by cfg.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (processed.Store, error) {
	switch cfg.Backend {
	case config.FileBackend:
		store, err := processed.OpenFile(cfg.FilePath, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("processed set ready", "backend", cfg.Backend, "path", cfg.FilePath)
		return store, nil

	case config.SQLiteBackend:
		store, err := processed.OpenSQLite(ctx, cfg.DatabasePath, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("processed set ready", "backend", cfg.Backend, "path", cfg.DatabasePath)
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
