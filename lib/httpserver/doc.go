// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package httpserver runs an http.Handler on a TCP listener with
// context-driven graceful shutdown. orgbot uses it to receive Slack
// Events API and interactivity callbacks when Socket Mode is not in
// use.
package httpserver
