// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package onboarding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// ProcessedSet is the durable record of requesters who have completed
// the flow. processed.Store implements it.
type ProcessedSet interface {
	HasBeenProcessed(ctx context.Context, requesterID string) bool
	MarkAsProcessed(ctx context.Context, requesterID string) bool
}

// ProfileChecker resolves candidate handles. *Verifier implements it.
type ProfileChecker interface {
	CheckUsername(ctx context.Context, candidate string) *Profile
}

// InviteSender issues invitations. *Inviter implements it.
type InviteSender interface {
	SendInvite(ctx context.Context, candidate string) Outcome
}

// WorkflowConfig configures a Workflow.
type WorkflowConfig struct {
	Processed ProcessedSet
	Verifier  ProfileChecker
	Inviter   InviteSender

	// AdminUserID, when set, is mentioned in invitation failure replies.
	AdminUserID string

	// Logger defaults to discarding output.
	Logger *slog.Logger
}

// Workflow runs the onboarding conversation. Each handler processes one
// inbound event to completion; Workflow holds no per-conversation state
// and is safe for concurrent use to the extent its collaborators are.
type Workflow struct {
	processed   ProcessedSet
	verifier    ProfileChecker
	inviter     InviteSender
	adminUserID string
	logger      *slog.Logger
}

// NewWorkflow returns a Workflow.
func NewWorkflow(config WorkflowConfig) *Workflow {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Workflow{
		processed:   config.Processed,
		verifier:    config.Verifier,
		inviter:     config.Inviter,
		adminUserID: config.AdminUserID,
		logger:      logger,
	}
}

// HandleMessage handles a username claim. Messages outside direct
// conversations are dropped without touching the store or GitHub. The
// returned error reports only failures to deliver a reply.
func (workflow *Workflow) HandleMessage(ctx context.Context, message Message, replier Replier) error {
	logger := workflow.logger.With(
		"request_id", message.RequestID,
		"requester", message.RequesterID,
	)

	if message.ChannelKind != DirectMessage {
		logger.Debug("ignoring message outside direct conversation",
			"channel_kind", message.ChannelKind,
		)
		return nil
	}

	if workflow.processed.HasBeenProcessed(ctx, message.RequesterID) {
		logger.Info("requester already processed")
		return replier.Reply(ctx, message.Thread, ReplyAlreadyProcessed)
	}

	candidate := strings.TrimSpace(message.Text)
	if candidate == "" {
		return replier.Reply(ctx, message.Thread, ReplyEmptyUsername)
	}

	logger.Debug("checking candidate username", "candidate", candidate)
	profile := workflow.verifier.CheckUsername(ctx, candidate)
	if profile == nil {
		logger.Info("candidate username rejected", "candidate", candidate)
		return replier.Reply(ctx, message.Thread, ReplyInvalidUsername)
	}

	logger.Info("asking for profile confirmation",
		"login", profile.Login,
		"github_id", profile.ID,
	)
	if err := replier.Prompt(ctx, message.Thread, NewPrompt(profile)); err != nil {
		logger.Error("sending confirmation prompt", "error", err)
		if replyErr := replier.Reply(ctx, message.Thread, ReplyPromptFailed); replyErr != nil {
			return fmt.Errorf("sending confirmation prompt: %w (fallback reply: %v)", err, replyErr)
		}
		return fmt.Errorf("sending confirmation prompt: %w", err)
	}
	return nil
}

// HandleConfirm handles the confirm button. The login to invite is
// action.Value, as embedded in the prompt.
//
// The requester is recorded when the invitation is sent and when GitHub
// reports the user is already a member; either way the flow is
// complete. Any other failure leaves the requester unrecorded so they
// can try again.
func (workflow *Workflow) HandleConfirm(ctx context.Context, action Action, replier Replier) error {
	logger := workflow.logger.With(
		"request_id", action.RequestID,
		"requester", action.RequesterID,
		"login", action.Value,
	)

	// A second click on an old prompt must not issue a second invite.
	if workflow.processed.HasBeenProcessed(ctx, action.RequesterID) {
		logger.Info("requester already processed, ignoring confirmation")
		return replier.Reply(ctx, action.Thread, ReplyAlreadyProcessed)
	}

	outcome := workflow.inviter.SendInvite(ctx, action.Value)

	switch {
	case outcome.Success:
		workflow.record(ctx, logger, action.RequesterID)
		return replier.Reply(ctx, action.Thread, ReplyInviteSent(action.Value))

	case outcome.Reason == ReasonAlreadyInOrg:
		workflow.record(ctx, logger, action.RequesterID)
		return replier.Reply(ctx, action.Thread, ReplyAlreadyInOrg)

	default:
		logger.Error("invitation failed",
			"reason", outcome.Reason,
			"error", outcome.Err,
		)
		return replier.Reply(ctx, action.Thread, ReplyInviteFailed(workflow.adminUserID))
	}
}

// HandleDecline handles the deny button by asking for another username.
func (workflow *Workflow) HandleDecline(ctx context.Context, action Action, replier Replier) error {
	workflow.logger.Info("requester declined profile",
		"request_id", action.RequestID,
		"requester", action.RequesterID,
	)
	return replier.Reply(ctx, action.Thread, ReplyDeclined)
}

// record marks requesterID as processed. A failed write is logged but
// does not change the reply: the invitation already went out.
func (workflow *Workflow) record(ctx context.Context, logger *slog.Logger, requesterID string) {
	if !workflow.processed.MarkAsProcessed(ctx, requesterID) {
		logger.Error("failed to record requester as processed; a repeat request will not be blocked")
		return
	}
	logger.Info("requester recorded as processed")
}
