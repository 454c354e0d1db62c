// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package processed

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// FileStore is a Store backed by a newline-delimited text file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

var _ Store = (*FileStore)(nil)

// OpenFile prepares the backing file at path, creating it (and its
// parent directory) empty if absent. Calling OpenFile on an existing
// file leaves its contents untouched. Returns a *StorageError if the
// filesystem cannot be reached.
func OpenFile(path string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &StorageError{Op: "initialize", Path: path, Err: err}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, &StorageError{Op: "initialize", Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return nil, &StorageError{Op: "initialize", Path: path, Err: err}
	}

	logger.Info("processed-set file ready", "path", path)
	return &FileStore{path: path, logger: logger}, nil
}

// HasBeenProcessed scans the file for a line exactly equal to
// requesterID.
func (store *FileStore) HasBeenProcessed(_ context.Context, requesterID string) bool {
	if !validRequesterID(requesterID) {
		return false
	}

	content, err := store.readLocked()
	if err != nil {
		store.logger.Error("checking processed requester",
			"requester", requesterID,
			"error", err,
		)
		return false
	}

	target := []byte(requesterID)
	for line := range bytes.SplitSeq(content, []byte{'\n'}) {
		if bytes.Equal(line, target) {
			return true
		}
	}
	return false
}

// MarkAsProcessed appends requesterID and a line terminator. It does
// not deduplicate: marking twice writes two lines.
func (store *FileStore) MarkAsProcessed(_ context.Context, requesterID string) bool {
	if !validRequesterID(requesterID) {
		store.logger.Error("refusing to record malformed requester id",
			"requester", requesterID,
		)
		return false
	}

	if err := store.appendLocked(requesterID + "\n"); err != nil {
		store.logger.Error("marking requester as processed",
			"requester", requesterID,
			"error", err,
		)
		return false
	}
	return true
}

// Close is a no-op: the file is opened per operation.
func (store *FileStore) Close() error { return nil }

// readLocked reads the whole file under a shared lock.
func (store *FileStore) readLocked() ([]byte, error) {
	file, err := os.Open(store.path)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: store.path, Err: err}
	}
	defer file.Close()

	if err := unix.Flock(int(file.Fd()), unix.LOCK_SH); err != nil {
		return nil, &StorageError{Op: "read", Path: store.path, Err: err}
	}
	defer unix.Flock(int(file.Fd()), unix.LOCK_UN)

	var buffer bytes.Buffer
	if _, err := buffer.ReadFrom(file); err != nil {
		return nil, &StorageError{Op: "read", Path: store.path, Err: err}
	}
	return buffer.Bytes(), nil
}

// appendLocked appends line under an exclusive lock and syncs it to
// disk before releasing the lock.
func (store *FileStore) appendLocked(line string) error {
	file, err := os.OpenFile(store.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &StorageError{Op: "append", Path: store.path, Err: err}
	}
	defer file.Close()

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX); err != nil {
		return &StorageError{Op: "append", Path: store.path, Err: err}
	}
	defer unix.Flock(int(file.Fd()), unix.LOCK_UN)

	if _, err := file.WriteString(line); err != nil {
		return &StorageError{Op: "append", Path: store.path, Err: err}
	}
	if err := file.Sync(); err != nil {
		return &StorageError{Op: "append", Path: store.path, Err: err}
	}
	return nil
}
