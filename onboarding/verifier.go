// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package onboarding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/orgbot/lib/github"
)

// Profile is the canonical GitHub profile a candidate handle resolves
// to. It is fetched fresh for every attempt.
type Profile struct {
	Login   string
	ID      int64
	HTMLURL string
}

// UserLookup resolves a login to a GitHub user. *github.Client
// implements it.
type UserLookup interface {
	GetUser(ctx context.Context, login string) (*github.User, error)
}

// Verifier resolves candidate handles against GitHub.
type Verifier struct {
	users  UserLookup
	logger *slog.Logger
}

// NewVerifier returns a Verifier. A nil logger discards output.
func NewVerifier(users UserLookup, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Verifier{users: users, logger: logger}
}

// Lookup resolves candidate to a Profile. Errors wrap ErrInvalidHandle
// (no network call made), ErrNotFound, or ErrService.
func (verifier *Verifier) Lookup(ctx context.Context, candidate string) (*Profile, error) {
	if !github.ValidLogin(candidate) {
		return nil, ErrInvalidHandle
	}

	user, err := verifier.users.GetUser(ctx, candidate)
	if err != nil {
		if github.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, candidate)
		}
		return nil, fmt.Errorf("%w: %w", ErrService, err)
	}

	return &Profile{
		Login:   user.Login,
		ID:      user.ID,
		HTMLURL: user.HTMLURL,
	}, nil
}

// CheckUsername returns the profile candidate resolves to, or nil if
// it is malformed, does not exist, or GitHub could not be asked.
func (verifier *Verifier) CheckUsername(ctx context.Context, candidate string) *Profile {
	profile, err := verifier.Lookup(ctx, candidate)
	if err != nil {
		level := slog.LevelDebug
		if !errorsIsAny(err, ErrInvalidHandle, ErrNotFound) {
			level = slog.LevelWarn
		}
		verifier.logger.Log(ctx, level, "username check failed",
			"candidate", candidate,
			"error", err,
		)
		return nil
	}
	return profile
}
