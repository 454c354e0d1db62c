// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package processed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/bureau-foundation/orgbot/lib/sqlitepool"
)

const schema = `
CREATE TABLE IF NOT EXISTS processed_requesters (
	requester_id TEXT PRIMARY KEY NOT NULL,
	processed_at TEXT NOT NULL
) WITHOUT ROWID;
`

// SQLiteStore is a Store backed by a SQLite table keyed on the
// requester identifier.
type SQLiteStore struct {
	pool   *sqlitepool.Pool
	path   string
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating if needed) the database at path and
// ensures the schema exists.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &StorageError{Op: "initialize", Path: path, Err: err}
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:   path,
		Logger: logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schema, nil)
		},
	})
	if err != nil {
		return nil, &StorageError{Op: "initialize", Path: path, Err: err}
	}

	// Force one connection through preparation so a bad path or schema
	// fails at startup rather than on the first event.
	if err := pool.WithConn(ctx, func(*sqlite.Conn) error { return nil }); err != nil {
		pool.Close()
		return nil, &StorageError{Op: "initialize", Path: path, Err: err}
	}

	return &SQLiteStore{pool: pool, path: path, logger: logger}, nil
}

// HasBeenProcessed reports whether a row exists for requesterID.
func (store *SQLiteStore) HasBeenProcessed(ctx context.Context, requesterID string) bool {
	if !validRequesterID(requesterID) {
		return false
	}

	found, err := store.contains(ctx, requesterID)
	if err != nil {
		store.logger.Error("checking processed requester",
			"requester", requesterID,
			"error", err,
		)
		return false
	}
	return found
}

// MarkAsProcessed records requesterID. Recording an already-present
// identifier succeeds without changing the stored row.
func (store *SQLiteStore) MarkAsProcessed(ctx context.Context, requesterID string) bool {
	if _, err := store.MarkIfAbsent(ctx, requesterID); err != nil {
		store.logger.Error("marking requester as processed",
			"requester", requesterID,
			"error", err,
		)
		return false
	}
	return true
}

// MarkIfAbsent atomically inserts requesterID unless it is already
// present. inserted is true only for the call that created the row, so
// among concurrent callers for the same identifier exactly one wins.
func (store *SQLiteStore) MarkIfAbsent(ctx context.Context, requesterID string) (inserted bool, err error) {
	if !validRequesterID(requesterID) {
		return false, fmt.Errorf("processed: malformed requester id %q", requesterID)
	}

	err = store.pool.WithConn(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn,
			`INSERT OR IGNORE INTO processed_requesters (requester_id, processed_at)
			 VALUES (?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))`,
			&sqlitex.ExecOptions{Args: []any{requesterID}},
		)
		if err != nil {
			return err
		}
		inserted = conn.Changes() > 0
		return nil
	})
	if err != nil {
		return false, &StorageError{Op: "append", Path: store.path, Err: err}
	}
	return inserted, nil
}

// Close closes the connection pool.
func (store *SQLiteStore) Close() error {
	return store.pool.Close()
}

func (store *SQLiteStore) contains(ctx context.Context, requesterID string) (bool, error) {
	found := false
	err := store.pool.WithConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			"SELECT 1 FROM processed_requesters WHERE requester_id = ? LIMIT 1",
			&sqlitex.ExecOptions{
				Args: []any{requesterID},
				ResultFunc: func(*sqlite.Stmt) error {
					found = true
					return nil
				},
			},
		)
	})
	if err != nil {
		return false, &StorageError{Op: "read", Path: store.path, Err: err}
	}
	return found, nil
}
