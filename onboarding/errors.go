// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package onboarding

import "errors"

var (
	// ErrInvalidHandle means the candidate fails GitHub's username
	// grammar. No network call was made.
	ErrInvalidHandle = errors.New("onboarding: invalid GitHub username format")

	// ErrNotFound means GitHub has no user with that login.
	ErrNotFound = errors.New("onboarding: GitHub user not found")

	// ErrAlreadyInOrg means the invitee already belongs to the
	// organization.
	ErrAlreadyInOrg = errors.New("onboarding: user already in organization")

	// ErrService means GitHub could not be reached or answered with an
	// unexpected status or body.
	ErrService = errors.New("onboarding: GitHub service error")
)

// errorsIsAny reports whether err matches any of targets.
func errorsIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
