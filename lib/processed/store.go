// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package processed

import (
	"context"
	"fmt"
	"strings"
)

// Store is the durable processed-set capability the onboarding workflow
// depends on.
type Store interface {
	// HasBeenProcessed reports whether requesterID has been recorded.
	// Read failures are logged and reported as false.
	HasBeenProcessed(ctx context.Context, requesterID string) bool

	// MarkAsProcessed records requesterID and reports whether the
	// write succeeded.
	MarkAsProcessed(ctx context.Context, requesterID string) bool

	// Close releases the backing storage.
	Close() error
}

// StorageError reports a failure to reach or prepare the backing
// storage.
type StorageError struct {
	// Op is the operation that failed ("initialize", "read", "append").
	Op string
	// Path is the file or database path.
	Path string
	// Err is the underlying error.
	Err error
}

func (err *StorageError) Error() string {
	return fmt.Sprintf("processed: %s %s: %v", err.Op, err.Path, err.Err)
}

func (err *StorageError) Unwrap() error { return err.Err }

// validRequesterID rejects identifiers that cannot round-trip through a
// newline-delimited file. An empty identifier would match the empty
// string after the final line terminator.
func validRequesterID(requesterID string) bool {
	return requesterID != "" && !strings.ContainsAny(requesterID, "\r\n")
}
