// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/bureau-foundation/orgbot/lib/version.Version=...".
var (
	// Version is the release version.
	Version = "0.1.0-dev"

	// GitCommit is the short SHA of the build. When not injected it is
	// read from the toolchain's VCS stamp.
	GitCommit = ""

	// GitDirty is "true" when the tree had uncommitted changes.
	GitDirty = ""

	// BuildTime is the UTC build timestamp.
	BuildTime = ""
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// build is the resolved stamp for this binary.
type build struct {
	commit string
	dirty  bool
	time   string
}

func resolve() build {
	resolved := build{commit: GitCommit, dirty: GitDirty == "true", time: BuildTime}
	if resolved.commit != "" {
		return resolved
	}

	if info, ok := readBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				resolved.commit = setting.Value
				if len(resolved.commit) > 12 {
					resolved.commit = resolved.commit[:12]
				}
			case "vcs.modified":
				resolved.dirty = setting.Value == "true"
			case "vcs.time":
				if resolved.time == "" {
					resolved.time = setting.Value
				}
			}
		}
	}
	if resolved.commit == "" {
		resolved.commit = "unknown"
	}
	if resolved.time == "" {
		resolved.time = "unknown"
	}
	return resolved
}

// Info returns "<version> (<commit>[-dirty], <build time>)".
func Info() string {
	resolved := resolve()
	dirty := ""
	if resolved.dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, resolved.commit, dirty, resolved.time)
}

// Fprint writes the --version output for binary to w: Info plus the Go
// toolchain and platform.
func Fprint(w io.Writer, binary string) {
	fmt.Fprintf(w, "%s %s\n  Go: %s\n  Platform: %s/%s\n",
		binary, Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
