// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package onboarding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/orgbot/lib/github"
)

// Reason classifies a failed invitation.
type Reason string

const (
	// ReasonAlreadyInOrg: the invitee is already a member.
	ReasonAlreadyInOrg Reason = "ALREADY_IN_ORG"
	// ReasonGitHubError: any network or API failure.
	ReasonGitHubError Reason = "GITHUB_ERROR"
	// ReasonInvalidUsername: the handle fails the username grammar.
	ReasonInvalidUsername Reason = "INVALID_USERNAME"
)

// Outcome is the classified result of an invitation attempt.
type Outcome struct {
	Success bool
	// Reason is empty when Success is true.
	Reason Reason
	// Err is the underlying failure, for logging only.
	Err error
}

// InvitationCreator issues organization invitations. *github.Client
// implements it.
type InvitationCreator interface {
	CreateOrgInvitation(ctx context.Context, org string, request github.CreateInvitationRequest) (*github.Invitation, error)
}

// InviterConfig configures an Inviter.
type InviterConfig struct {
	// Org is the organization login.
	Org string
	// TeamID is the team every invitee joins.
	TeamID int64
	// Users resolves logins to numeric IDs.
	Users UserLookup
	// Invitations creates the invitation.
	Invitations InvitationCreator
	// Logger defaults to discarding output.
	Logger *slog.Logger
}

// Inviter issues organization invitations for confirmed handles.
type Inviter struct {
	org         string
	teamID      int64
	users       UserLookup
	invitations InvitationCreator
	logger      *slog.Logger
}

// NewInviter returns an Inviter.
func NewInviter(config InviterConfig) *Inviter {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Inviter{
		org:         config.Org,
		teamID:      config.TeamID,
		users:       config.Users,
		invitations: config.Invitations,
		logger:      logger,
	}
}

// SendInvite invites candidate to the organization and team. The
// handle is re-validated before any network call.
func (inviter *Inviter) SendInvite(ctx context.Context, candidate string) Outcome {
	outcome := inviter.sendInvite(ctx, candidate)
	if !outcome.Success {
		inviter.logger.Warn("invitation not sent",
			"candidate", candidate,
			"org", inviter.org,
			"reason", outcome.Reason,
			"error", outcome.Err,
		)
	}
	return outcome
}

func (inviter *Inviter) sendInvite(ctx context.Context, candidate string) Outcome {
	if !github.ValidLogin(candidate) {
		return Outcome{Reason: ReasonInvalidUsername, Err: ErrInvalidHandle}
	}

	user, err := inviter.users.GetUser(ctx, candidate)
	if err != nil {
		return Outcome{Reason: ReasonGitHubError, Err: fmt.Errorf("%w: resolving user id: %w", ErrService, err)}
	}

	invitation, err := inviter.invitations.CreateOrgInvitation(ctx, inviter.org, github.CreateInvitationRequest{
		InviteeID: user.ID,
		TeamIDs:   []int64{inviter.teamID},
	})
	if err != nil {
		if github.IsAlreadyMember(err) {
			return Outcome{Reason: ReasonAlreadyInOrg, Err: fmt.Errorf("%w: %w", ErrAlreadyInOrg, err)}
		}
		if github.IsValidationFailed(err) {
			// Any other 422 means GitHub refused the request itself, usually
			// a team ID outside the org or a token without admin:org.
			inviter.logger.Error("github rejected invitation request",
				"login", user.Login,
				"org", inviter.org,
				"team_id", inviter.teamID,
				"error", err,
			)
		}
		return Outcome{Reason: ReasonGitHubError, Err: fmt.Errorf("%w: %w", ErrService, err)}
	}

	inviter.logger.Info("invitation sent",
		"login", user.Login,
		"user_id", user.ID,
		"org", inviter.org,
		"team_id", inviter.teamID,
		"invitation_id", invitation.ID,
	)
	return Outcome{Success: true}
}
