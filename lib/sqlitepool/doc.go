// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool wraps zombiezen.com/go/sqlite's connection pool
// with the settings orgbot's durable state needs.
//
// Work runs inside [Pool.WithConn], which borrows a connection for the
// duration of one callback. A connection is never shared between
// goroutines.
//
// Every connection uses WAL journaling so reads do not block the
// writer, synchronous=FULL so a committed row survives power loss (the
// database is the only record of who has been onboarded), and a busy
// timeout so two racing events wait for the write lock instead of
// failing.
//
//	pool, err := sqlitepool.Open(sqlitepool.Config{
//	    Path: "./data/processed_users.db",
//	    OnConnect: func(conn *sqlite.Conn) error {
//	        return sqlitex.ExecuteScript(conn, schema, nil)
//	    },
//	})
package sqlitepool
