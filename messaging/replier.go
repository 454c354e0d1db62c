// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"log/slog"

	"github.com/slack-go/slack"

	"github.com/bureau-foundation/orgbot/onboarding"
)

// Poster sends a message through the Slack Web API. *slack.Client
// implements it.
type Poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Replier posts workflow replies into Slack threads. It implements
// onboarding.Replier.
type Replier struct {
	poster Poster
	logger *slog.Logger
}

// NewReplier returns a Replier that posts through poster. A nil logger
// discards output.
func NewReplier(poster Poster, logger *slog.Logger) *Replier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Replier{poster: poster, logger: logger}
}

// Reply posts text into thread. Text is sent unescaped so mentions
// like <@U123> render.
func (replier *Replier) Reply(ctx context.Context, thread onboarding.Thread, text string) error {
	return replier.post(ctx, thread, slack.MsgOptionText(text, false))
}

// Prompt posts a confirmation prompt into thread. The plain text
// doubles as the notification fallback for clients that cannot render
// blocks.
func (replier *Replier) Prompt(ctx context.Context, thread onboarding.Thread, prompt onboarding.Prompt) error {
	return replier.post(ctx, thread,
		slack.MsgOptionText(prompt.Text, false),
		slack.MsgOptionBlocks(PromptBlocks(prompt)...),
	)
}

func (replier *Replier) post(ctx context.Context, thread onboarding.Thread, options ...slack.MsgOption) error {
	if thread.Timestamp != "" {
		options = append(options, slack.MsgOptionTS(thread.Timestamp))
	}
	channel, timestamp, err := replier.poster.PostMessageContext(ctx, thread.ChannelID, options...)
	if err != nil {
		replier.logFailure(thread, err)
		return &PostError{Channel: thread.ChannelID, Err: err}
	}
	replier.logger.Debug("posted slack message",
		"channel", channel,
		"ts", timestamp,
		"thread_ts", thread.Timestamp,
	)
	return nil
}

func (replier *Replier) logFailure(thread onboarding.Thread, err error) {
	logger := replier.logger.With("channel", thread.ChannelID, "thread_ts", thread.Timestamp)
	if retryAfter, limited := RetryAfter(err); limited {
		logger.Warn("slack rate limited message", "retry_after", retryAfter)
		return
	}
	switch code := slackErrorCode(err); {
	case IsSlackError(err, ErrCodeInvalidAuth), IsSlackError(err, ErrCodeNotInChannel), IsSlackError(err, ErrCodeChannelNotFound):
		logger.Error("slack refused message; check the bot token and its channel access",
			"code", code,
		)
	case IsSlackError(err, ErrCodeInvalidBlocks):
		logger.Error("slack rejected message blocks", "code", code)
	default:
		logger.Warn("posting slack message failed", "code", code, "error", err)
	}
}
