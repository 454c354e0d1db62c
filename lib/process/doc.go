// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers. [Fatal] is the one
// legitimate raw write to stderr: it runs when configuration failed and
// the structured logger may not exist yet.
package process
