// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports what build of orgbot is running. Release
// builds inject [Version], [GitCommit], [GitDirty], and [BuildTime]
// through -ldflags -X; plain go builds fall back to the VCS stamp the
// toolchain embeds.
package version
