// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP body I/O.
//
// GitHub API responses and inbound Slack webhook payloads are small JSON
// documents. Every read of a body that came off the network goes through
// this package so that a misbehaving peer cannot make the bot allocate
// without bound.
package netutil

import (
	"errors"
	"fmt"
	"io"
)

// MaxResponseSize bounds reads of REST API response bodies: 8 MB.
// A GitHub user object is a couple of kilobytes.
const MaxResponseSize int64 = 8 << 20

// MaxRequestSize bounds reads of inbound webhook request bodies: 1 MB.
// Slack documents event payloads well below this.
const MaxRequestSize int64 = 1 << 20

// ErrBodyTooLarge is returned by ReadRequest when the body exceeds
// MaxRequestSize.
var ErrBodyTooLarge = errors.New("netutil: request body too large")

// ReadResponse reads an API response body up to MaxResponseSize bytes.
// Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// ReadRequest reads an inbound request body. Unlike ReadResponse it
// does not truncate silently: a body longer than MaxRequestSize fails
// with ErrBodyTooLarge, because a truncated body would fail signature
// verification with a misleading error.
func ReadRequest(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxRequestSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	if int64(len(data)) > MaxRequestSize {
		return nil, ErrBodyTooLarge
	}
	return data, nil
}
