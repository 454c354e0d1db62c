// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sqlitepool

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const (
	// DefaultSize is one writer plus one concurrent reader.
	DefaultSize = 2

	// DefaultBusyTimeout is how long a connection waits for the write
	// lock before failing with SQLITE_BUSY.
	DefaultBusyTimeout = 5 * time.Second
)

// Config configures Open. Only Path is required.
type Config struct {
	// Path is the database file, created if absent. Its directory
	// must exist.
	Path string

	// Size is the number of pooled connections. Default: DefaultSize.
	Size int

	// BusyTimeout bounds lock waits. Default: DefaultBusyTimeout.
	BusyTimeout time.Duration

	// OnConnect runs once per connection after the pragmas, typically
	// to apply the schema. An error discards the connection and is
	// returned from WithConn.
	OnConnect func(conn *sqlite.Conn) error

	// Logger defaults to discarding output.
	Logger *slog.Logger
}

// Pool hands out SQLite connections one goroutine at a time.
type Pool struct {
	connections *sqlitex.Pool
	path        string
	logger      *slog.Logger
}

// Open returns a Pool for cfg.Path. Connections are created lazily, so
// an unusable database is first reported by WithConn.
func Open(cfg Config) (*Pool, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlitepool: Path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	size := cfg.Size
	if size <= 0 {
		size = DefaultSize
	}
	busyTimeout := cfg.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = DefaultBusyTimeout
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=FULL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout.Milliseconds()),
	}

	connections, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize: size,
		PrepareConn: func(conn *sqlite.Conn) error {
			for _, pragma := range pragmas {
				if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
					return fmt.Errorf("sqlitepool: %s: %w", pragma, err)
				}
			}
			if cfg.OnConnect == nil {
				return nil
			}
			if err := cfg.OnConnect(conn); err != nil {
				return fmt.Errorf("sqlitepool: preparing connection: %w", err)
			}
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sqlitepool: opening %s: %w", cfg.Path, err)
	}

	logger.Debug("sqlite pool opened", "path", cfg.Path, "size", size)
	return &Pool{connections: connections, path: cfg.Path, logger: logger}, nil
}

// Path returns the database file path.
func (pool *Pool) Path() string {
	return pool.path
}

// WithConn borrows a connection, runs fn with it, and returns it to
// the pool. It blocks until a connection is free or ctx is done. fn
// must not retain conn.
func (pool *Pool) WithConn(ctx context.Context, fn func(conn *sqlite.Conn) error) error {
	conn, err := pool.connections.Take(ctx)
	if err != nil {
		return fmt.Errorf("sqlitepool: taking connection: %w", err)
	}
	defer pool.connections.Put(conn)
	return fn(conn)
}

// Close closes every connection, waiting for borrowed ones to return.
func (pool *Pool) Close() error {
	if err := pool.connections.Close(); err != nil {
		pool.logger.Error("closing sqlite pool", "path", pool.path, "error", err)
		return fmt.Errorf("sqlitepool: closing %s: %w", pool.path, err)
	}
	pool.logger.Debug("sqlite pool closed", "path", pool.path)
	return nil
}
